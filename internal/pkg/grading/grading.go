// Package grading scores quiz submissions against an immutable answer key.
// Objective question kinds are compared after normalization; subjective
// kinds are left ungraded for a later review path.
package grading

import "strings"

const (
	KindMultipleChoice = "multiple_choice"
	KindTrueFalse      = "true_false"
	KindShortAnswer    = "short_answer"
	KindEssay          = "essay"
)

// Question is one entry of the answer key. Options holds the valid
// values for objective kinds; an empty list disables the membership
// check.
type Question struct {
	ID            string
	Kind          string
	Points        int
	CorrectAnswer string
	Options       []string
}

// Answer is one submitted value.
type Answer struct {
	QuestionID string
	Value      string
}

// GradedAnswer is the per-answer outcome. IsCorrect stays nil for
// subjective kinds. Skipped marks answers referencing an unknown
// question or an option outside the key.
type GradedAnswer struct {
	QuestionID   string
	Value        string
	IsCorrect    *bool
	PointsEarned int
	Skipped      bool
}

// Result is the outcome of grading one submission.
type Result struct {
	Score    int
	MaxScore int
	Answers  []GradedAnswer
}

// Objective reports whether a question kind is auto-gradable.
func Objective(kind string) bool {
	return kind == KindMultipleChoice || kind == KindTrueFalse
}

// Grade scores a submission in a single pass. MaxScore sums the point
// values of every key question regardless of kind. Answers naming an
// unknown question, or an option the key does not offer, are skipped
// and flagged rather than failing the submission.
func Grade(answers []Answer, key []Question) Result {
	byID := make(map[string]Question, len(key))
	maxScore := 0
	for _, q := range key {
		byID[q.ID] = q
		maxScore += q.Points
	}

	result := Result{
		MaxScore: maxScore,
		Answers:  make([]GradedAnswer, 0, len(answers)),
	}

	for _, a := range answers {
		graded := GradedAnswer{QuestionID: a.QuestionID, Value: a.Value}

		q, ok := byID[a.QuestionID]
		if !ok {
			graded.Skipped = true
			result.Answers = append(result.Answers, graded)
			continue
		}

		if Objective(q.Kind) {
			if !validOption(q, a.Value) {
				graded.Skipped = true
				result.Answers = append(result.Answers, graded)
				continue
			}
			correct := normalize(a.Value) == normalize(q.CorrectAnswer)
			graded.IsCorrect = &correct
			if correct {
				graded.PointsEarned = q.Points
				result.Score += q.Points
			}
		}

		result.Answers = append(result.Answers, graded)
	}

	return result
}

func validOption(q Question, value string) bool {
	if len(q.Options) == 0 {
		return true
	}
	v := normalize(value)
	for _, opt := range q.Options {
		if v == normalize(opt) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
