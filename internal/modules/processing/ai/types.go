package ai

import "time"

// Operation identifies a generation intent.
type Operation string

const (
	OpSummary     Operation = "summary"
	OpQuiz        Operation = "quiz"
	OpFlashcards  Operation = "flashcards"
	OpBatch       Operation = "flashcards_batch"
	OpNudge       Operation = "nudge"
	OpOrientation Operation = "orientation"
)

// Meta describes how an artifact was produced.
type Meta struct {
	Provider     string  `json:"provider"`
	Model        string  `json:"model"`
	CacheHit     bool    `json:"cache_hit"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
}

// SummaryArtifact is a generated summary.
type SummaryArtifact struct {
	Content string `json:"content"`
}

// QuizOptionArtifact is one selectable option of a generated question.
type QuizOptionArtifact struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuizQuestionArtifact is one generated question.
type QuizQuestionArtifact struct {
	Kind          string               `json:"kind"`
	Prompt        string               `json:"prompt"`
	Options       []QuizOptionArtifact `json:"options,omitempty"`
	CorrectAnswer string               `json:"correct_answer,omitempty"`
	Points        int                  `json:"points"`
}

// QuizArtifact is a generated quiz.
type QuizArtifact struct {
	Title     string                 `json:"title"`
	Questions []QuizQuestionArtifact `json:"questions"`
}

// FlashcardArtifact is one generated flashcard.
type FlashcardArtifact struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// NudgeArtifact is a generated motivational message.
type NudgeArtifact struct {
	Message string `json:"message"`
}

// Artifact is the cached unit of generated content. Exactly one of the
// payload fields is set, matching the operation that produced it.
type Artifact struct {
	Summary         *SummaryArtifact      `json:"summary,omitempty"`
	Quiz            *QuizArtifact         `json:"quiz,omitempty"`
	Flashcards      []FlashcardArtifact   `json:"flashcards,omitempty"`
	BatchFlashcards [][]FlashcardArtifact `json:"batch_flashcards,omitempty"`
	Nudge           *NudgeArtifact        `json:"nudge,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// BatchMaterial is one input of a batch flashcard generation.
type BatchMaterial struct {
	ID      string
	Content string
}

// BatchPayload is the task payload for async batch flashcard generation.
type BatchPayload struct {
	UserID      string   `json:"user_id"`
	MaterialIDs []string `json:"material_ids"`
	Count       int      `json:"count"`
}
