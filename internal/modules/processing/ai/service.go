package ai

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/revyse/core/internal/models"
	"github.com/revyse/core/internal/pkg/llm"
	"github.com/revyse/core/internal/pkg/taskqueue"
)

// ErrProviderUnavailable is returned when every configured provider
// failed or timed out. Failures are never cached.
var ErrProviderUnavailable = errors.New("all AI providers unavailable")

const (
	defaultQuizQuestions  = 5
	maxQuizQuestions      = 20
	defaultFlashcardCount = 10
	defaultCallTimeout    = 30 * time.Second
)

// Service is the generation orchestrator: fingerprint, cache lookup,
// provider fallback, schema validation, usage accounting, cache write.
type Service struct {
	db        *gorm.DB
	providers []llm.Provider
	cache     Cache
	ledger    *Ledger
	taskSvc   *taskqueue.Service
	log       *zap.Logger
	timeout   time.Duration
}

// NewService wires the orchestrator. db and taskSvc may be nil; usage
// event persistence and async tasks are then disabled.
func NewService(db *gorm.DB, providers []llm.Provider, cache Cache, ledger *Ledger, taskSvc *taskqueue.Service, log *zap.Logger, timeout time.Duration) *Service {
	if cache == nil {
		cache = NewMemoryCache(0)
	}
	if ledger == nil {
		ledger = NewLedger()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Service{
		db:        db,
		providers: providers,
		cache:     cache,
		ledger:    ledger,
		taskSvc:   taskSvc,
		log:       log,
		timeout:   timeout,
	}
}

// GenerateSummary produces a summary of one material.
func (s *Service) GenerateSummary(ctx context.Context, content, summaryType string) (*SummaryArtifact, Meta, error) {
	if !models.ValidSummaryType(summaryType) {
		summaryType = models.SummaryBrief
	}
	system, prompt := buildSummaryPrompt(summaryType, content)

	art, meta, err := s.generate(ctx, genRequest{
		op:      OpSummary,
		content: content,
		params:  map[string]string{"type": summaryType},
		system:  system,
		prompt:  prompt,
		parse:   parseSummary,
	})
	if err != nil {
		return nil, meta, err
	}
	return art.Summary, meta, nil
}

// GenerateQuiz produces a quiz over one material.
func (s *Service) GenerateQuiz(ctx context.Context, content, difficulty string, count int) (*QuizArtifact, Meta, error) {
	if !models.ValidDifficulty(difficulty) {
		difficulty = models.DifficultyMedium
	}
	if count <= 0 {
		count = defaultQuizQuestions
	}
	if count > maxQuizQuestions {
		count = maxQuizQuestions
	}
	system, prompt := buildQuizPrompt(difficulty, count, content)

	art, meta, err := s.generate(ctx, genRequest{
		op:      OpQuiz,
		content: content,
		params: map[string]string{
			"difficulty": difficulty,
			"count":      strconv.Itoa(count),
		},
		system: system,
		prompt: prompt,
		parse:  parseQuiz,
	})
	if err != nil {
		return nil, meta, err
	}
	return art.Quiz, meta, nil
}

// GenerateFlashcards produces a flashcard set over one material.
func (s *Service) GenerateFlashcards(ctx context.Context, content string, count int) ([]FlashcardArtifact, Meta, error) {
	if count <= 0 {
		count = defaultFlashcardCount
	}
	if count > maxFlashcards {
		count = maxFlashcards
	}
	system, prompt := buildFlashcardsPrompt(count, content)

	art, meta, err := s.generate(ctx, genRequest{
		op:      OpFlashcards,
		content: content,
		params:  map[string]string{"count": strconv.Itoa(count)},
		system:  system,
		prompt:  prompt,
		parse:   parseFlashcards,
	})
	if err != nil {
		return nil, meta, err
	}
	return art.Flashcards, meta, nil
}

// GenerateFlashcardsBatch produces flashcard sets for several materials
// with a single provider call. The fingerprint covers the combined
// material set, so repeating an identical batch is a cache hit.
func (s *Service) GenerateFlashcardsBatch(ctx context.Context, materials []BatchMaterial, count int) ([][]FlashcardArtifact, Meta, error) {
	if len(materials) == 0 {
		return nil, Meta{}, errors.New("batch needs at least one material")
	}
	if count <= 0 {
		count = defaultFlashcardCount
	}
	if count > maxFlashcards {
		count = maxFlashcards
	}

	combined := make([]byte, 0, 256)
	for _, m := range materials {
		combined = append(combined, m.Content...)
		combined = append(combined, '\n')
		combined = append(combined, BatchSeparator...)
		combined = append(combined, '\n')
	}
	system, prompt := buildBatchFlashcardsPrompt(count, materials)
	want := len(materials)

	art, meta, err := s.generate(ctx, genRequest{
		op:      OpBatch,
		content: string(combined),
		params: map[string]string{
			"count": strconv.Itoa(count),
			"n":     strconv.Itoa(want),
		},
		system: system,
		prompt: prompt,
		parse: func(raw string) (*Artifact, error) {
			return parseBatchFlashcards(raw, want)
		},
	})
	if err != nil {
		return nil, meta, err
	}
	return art.BatchFlashcards, meta, nil
}

// GenerateNudge produces a motivational message. Nudges are personal and
// time-sensitive, so they bypass the cache entirely.
func (s *Service) GenerateNudge(ctx context.Context, name, streakContext string) (*NudgeArtifact, Meta, error) {
	system, prompt := buildNudgePrompt(name, streakContext)

	art, meta, err := s.generate(ctx, genRequest{
		op:       OpNudge,
		uncached: true,
		system:   system,
		prompt:   prompt,
		parse:    parseNudge,
	})
	if err != nil {
		return nil, meta, err
	}
	return art.Nudge, meta, nil
}

// GenerateOrientation produces a welcome message for a new user, cached
// per academic level.
func (s *Service) GenerateOrientation(ctx context.Context, academicLevel string) (*NudgeArtifact, Meta, error) {
	if !models.ValidAcademicLevel(academicLevel) {
		academicLevel = models.LevelCollege
	}
	system, prompt := buildOrientationPrompt(academicLevel)

	art, meta, err := s.generate(ctx, genRequest{
		op:     OpOrientation,
		params: map[string]string{"level": academicLevel},
		system: system,
		prompt: prompt,
		parse:  parseNudge,
	})
	if err != nil {
		return nil, meta, err
	}
	return art.Nudge, meta, nil
}

type genRequest struct {
	op       Operation
	content  string
	params   map[string]string
	uncached bool
	system   string
	prompt   string
	parse    func(string) (*Artifact, error)
}

func (s *Service) generate(ctx context.Context, req genRequest) (*Artifact, Meta, error) {
	if len(s.providers) == 0 {
		return nil, Meta{}, ErrProviderUnavailable
	}

	fp := Fingerprint(req.op, req.content, req.params)

	if !req.uncached {
		if art, ok := s.cache.Get(ctx, fp); ok {
			s.ledger.RecordHit()
			meta := Meta{CacheHit: true}
			s.recordUsageEvent(req.op, meta)
			return art, meta, nil
		}
		s.ledger.RecordMiss()
	}

	var lastErr error
	for _, p := range s.providers {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		resp, err := p.Generate(callCtx, llm.Request{System: req.system, Prompt: req.prompt})
		cancel()
		if err != nil {
			if llm.Transient(err) {
				s.log.Warn("provider failed, trying next",
					zap.String("provider", p.ID()),
					zap.String("operation", string(req.op)),
					zap.Error(err))
				lastErr = err
				continue
			}
			return nil, Meta{}, err
		}

		art, err := req.parse(resp.Text)
		if err != nil {
			s.log.Warn("provider returned malformed artifact, trying next",
				zap.String("provider", p.ID()),
				zap.String("operation", string(req.op)),
				zap.Error(err))
			lastErr = &llm.MalformedResponseError{Content: resp.Text, Err: err}
			continue
		}

		s.ledger.Record(p.ID(), p.ModelID(), resp.InputTokens, resp.OutputTokens)
		meta := Meta{
			Provider:     p.ID(),
			Model:        p.ModelID(),
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
			CostUSD:      llm.CostUSD(p.ModelID(), resp.InputTokens, resp.OutputTokens),
		}
		s.recordUsageEvent(req.op, meta)

		art.CreatedAt = time.Now()
		if !req.uncached {
			s.cache.Put(ctx, fp, art)
		}
		return art, meta, nil
	}

	if lastErr != nil {
		return nil, Meta{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, lastErr)
	}
	return nil, Meta{}, ErrProviderUnavailable
}

// recordUsageEvent persists one usage row, best effort.
func (s *Service) recordUsageEvent(op Operation, meta Meta) {
	if s.db == nil {
		return
	}
	event := models.UsageEventModel{
		Provider:     meta.Provider,
		Model:        meta.Model,
		Operation:    string(op),
		InputTokens:  meta.InputTokens,
		OutputTokens: meta.OutputTokens,
		CostUSD:      meta.CostUSD,
		CacheHit:     meta.CacheHit,
	}
	if err := s.db.Create(&event).Error; err != nil {
		s.log.Warn("usage event not persisted", zap.Error(err))
	}
}

// Usage returns the ledger snapshot.
func (s *Service) Usage() UsageSnapshot { return s.ledger.Snapshot() }

// ResetUsage zeroes the ledger.
func (s *Service) ResetUsage() { s.ledger.Reset() }

// CacheStats reports cache effectiveness.
func (s *Service) CacheStats(ctx context.Context) CacheStats { return s.cache.Stats(ctx) }

// ClearCache drops all cached artifacts.
func (s *Service) ClearCache(ctx context.Context) error { return s.cache.Clear(ctx) }

// PruneCache removes entries older than maxAge. Used by the cache-prune
// cron job.
func (s *Service) PruneCache(ctx context.Context, maxAge time.Duration) int {
	return s.cache.Prune(ctx, maxAge)
}
