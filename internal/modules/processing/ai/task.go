package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/revyse/core/internal/models"
	"github.com/revyse/core/internal/pkg/taskqueue"
)

// TaskTypeFlashcardsBatch identifies async batch flashcard generation.
const TaskTypeFlashcardsBatch = "ai:flashcards_batch"

// EnqueueFlashcardsBatch queues a batch flashcard generation (or returns
// the existing dedup task) and starts executing it immediately.
func (s *Service) EnqueueFlashcardsBatch(ctx context.Context, payload BatchPayload) (*taskqueue.Task, error) {
	if s.taskSvc == nil {
		return nil, errors.New("task queue is not configured")
	}
	if len(payload.MaterialIDs) == 0 {
		return nil, errors.New("material ids are required")
	}

	dedupKey := fmt.Sprintf("%s:%s:%d", payload.UserID, strings.Join(payload.MaterialIDs, ","), payload.Count)
	task, err := s.taskSvc.Enqueue(ctx, TaskTypeFlashcardsBatch, payload, dedupKey, payload.UserID)
	if err != nil {
		return nil, err
	}

	// fire and forget, a crash mid-run leaves the task marked running
	if task.Status == taskqueue.TaskPending {
		go s.executeFlashcardsBatch(context.Background(), task.ID, payload)
	}

	return task, nil
}

func (s *Service) executeFlashcardsBatch(ctx context.Context, taskID string, payload BatchPayload) {
	s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskRunning, nil, "")

	if s.db == nil {
		s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, "storage is not configured")
		return
	}

	var mats []models.MaterialModel
	err := s.db.
		Where("id IN ? AND user_id = ?", payload.MaterialIDs, payload.UserID).
		Find(&mats).Error
	if err != nil {
		s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, err.Error())
		return
	}
	if len(mats) != len(payload.MaterialIDs) {
		s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, "some materials not found")
		return
	}

	byID := make(map[string]models.MaterialModel, len(mats))
	for _, m := range mats {
		byID[m.ID] = m
	}

	inputs := make([]BatchMaterial, 0, len(payload.MaterialIDs))
	for _, id := range payload.MaterialIDs {
		m := byID[id]
		if strings.TrimSpace(m.ExtractedText) == "" {
			s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, fmt.Sprintf("material %s has no extracted text", id))
			return
		}
		inputs = append(inputs, BatchMaterial{ID: id, Content: m.ExtractedText})
	}

	sets, meta, err := s.GenerateFlashcardsBatch(ctx, inputs, payload.Count)
	if err != nil {
		s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, err.Error())
		return
	}

	created := 0
	for i, cards := range sets {
		rows := make([]models.FlashcardModel, 0, len(cards))
		for _, card := range cards {
			rows = append(rows, models.FlashcardModel{
				Owned:      models.Owned{UserID: payload.UserID},
				MaterialID: inputs[i].ID,
				Front:      card.Front,
				Back:       card.Back,
			})
		}
		if err := s.db.Create(&rows).Error; err != nil {
			s.log.Warn("batch flashcards not persisted",
				zap.String("material_id", inputs[i].ID),
				zap.Error(err))
			continue
		}
		created += len(rows)
	}

	s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskCompleted, gin.H{
		"materials": len(sets),
		"cards":     created,
		"provider":  meta.Provider,
		"cache_hit": meta.CacheHit,
	}, "")
}
