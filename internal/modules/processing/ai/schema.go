package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/revyse/core/internal/models"
)

const maxFlashcards = 50

// unmarshalAIJSON parses provider output into out, tolerating stray code
// fences and surrounding prose.
func unmarshalAIJSON(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err == nil {
			return nil
		}
	}

	return fmt.Errorf("invalid JSON in provider response")
}

func parseSummary(raw string) (*Artifact, error) {
	var out SummaryArtifact
	if err := unmarshalAIJSON(raw, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Content) == "" {
		return nil, fmt.Errorf("summary content is empty")
	}
	out.Content = strings.TrimSpace(out.Content)
	return &Artifact{Summary: &out}, nil
}

func parseQuiz(raw string) (*Artifact, error) {
	var out QuizArtifact
	if err := unmarshalAIJSON(raw, &out); err != nil {
		return nil, err
	}
	if len(out.Questions) == 0 {
		return nil, fmt.Errorf("quiz has no questions")
	}

	for i := range out.Questions {
		q := &out.Questions[i]
		if strings.TrimSpace(q.Prompt) == "" {
			return nil, fmt.Errorf("question %d has an empty prompt", i+1)
		}
		if q.Points <= 0 {
			q.Points = 1
		}

		switch q.Kind {
		case models.QuestionMultipleChoice, models.QuestionTrueFalse:
			if err := validateObjectiveQuestion(q, i); err != nil {
				return nil, err
			}
		case models.QuestionShortAnswer, models.QuestionEssay:
			q.Options = nil
			q.CorrectAnswer = ""
		default:
			return nil, fmt.Errorf("question %d has unknown kind %q", i+1, q.Kind)
		}
	}
	return &Artifact{Quiz: &out}, nil
}

func validateObjectiveQuestion(q *QuizQuestionArtifact, idx int) error {
	if len(q.Options) < 2 {
		return fmt.Errorf("question %d needs at least 2 options", idx+1)
	}

	correct := ""
	correctCount := 0
	for _, opt := range q.Options {
		if strings.TrimSpace(opt.Text) == "" {
			return fmt.Errorf("question %d has an empty option", idx+1)
		}
		if opt.IsCorrect {
			correctCount++
			correct = opt.ID
		}
	}
	if correctCount != 1 {
		return fmt.Errorf("question %d has %d correct options, want exactly 1", idx+1, correctCount)
	}

	if strings.TrimSpace(q.CorrectAnswer) == "" {
		q.CorrectAnswer = correct
	} else if !strings.EqualFold(strings.TrimSpace(q.CorrectAnswer), correct) {
		return fmt.Errorf("question %d correct_answer disagrees with options", idx+1)
	}
	return nil
}

func parseFlashcards(raw string) (*Artifact, error) {
	var out struct {
		Flashcards []FlashcardArtifact `json:"flashcards"`
	}
	if err := unmarshalAIJSON(raw, &out); err != nil {
		return nil, err
	}
	cards, err := validateFlashcards(out.Flashcards)
	if err != nil {
		return nil, err
	}
	return &Artifact{Flashcards: cards}, nil
}

func parseBatchFlashcards(raw string, wantMaterials int) (*Artifact, error) {
	var out struct {
		Materials []struct {
			Flashcards []FlashcardArtifact `json:"flashcards"`
		} `json:"materials"`
	}
	if err := unmarshalAIJSON(raw, &out); err != nil {
		return nil, err
	}
	if len(out.Materials) != wantMaterials {
		return nil, fmt.Errorf("batch returned %d material sets, want %d", len(out.Materials), wantMaterials)
	}

	sets := make([][]FlashcardArtifact, 0, len(out.Materials))
	for i, m := range out.Materials {
		cards, err := validateFlashcards(m.Flashcards)
		if err != nil {
			return nil, fmt.Errorf("material %d: %w", i+1, err)
		}
		sets = append(sets, cards)
	}
	return &Artifact{BatchFlashcards: sets}, nil
}

func validateFlashcards(cards []FlashcardArtifact) ([]FlashcardArtifact, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("no flashcards in response")
	}
	if len(cards) > maxFlashcards {
		cards = cards[:maxFlashcards]
	}
	for i := range cards {
		cards[i].Front = strings.TrimSpace(cards[i].Front)
		cards[i].Back = strings.TrimSpace(cards[i].Back)
		if cards[i].Front == "" || cards[i].Back == "" {
			return nil, fmt.Errorf("flashcard %d has an empty side", i+1)
		}
	}
	return cards, nil
}

func parseNudge(raw string) (*Artifact, error) {
	var out NudgeArtifact
	if err := unmarshalAIJSON(raw, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Message) == "" {
		return nil, fmt.Errorf("nudge message is empty")
	}
	out.Message = strings.TrimSpace(out.Message)
	return &Artifact{Nudge: &out}, nil
}
