package grading

import (
	"reflect"
	"testing"
)

func TestGradePartialSubmission(t *testing.T) {
	key := []Question{
		{ID: "q1", Kind: KindMultipleChoice, Points: 2, CorrectAnswer: "B"},
		{ID: "q2", Kind: KindMultipleChoice, Points: 2, CorrectAnswer: "A"},
		{ID: "q3", Kind: KindMultipleChoice, Points: 2, CorrectAnswer: "D"},
		{ID: "q4", Kind: KindEssay, Points: 5},
	}
	answers := []Answer{
		{QuestionID: "q1", Value: "B"},
		{QuestionID: "q2", Value: "C"},
		{QuestionID: "q3", Value: "D"},
		{QuestionID: "q4", Value: "Photosynthesis converts light into chemical energy."},
	}

	got := Grade(answers, key)
	if got.Score != 4 {
		t.Errorf("Score = %d, want 4", got.Score)
	}
	if got.MaxScore != 11 {
		t.Errorf("MaxScore = %d, want 11", got.MaxScore)
	}
	if len(got.Answers) != 4 {
		t.Fatalf("len(Answers) = %d, want 4", len(got.Answers))
	}

	essay := got.Answers[3]
	if essay.IsCorrect != nil {
		t.Errorf("essay IsCorrect = %v, want nil", *essay.IsCorrect)
	}
	if essay.PointsEarned != 0 {
		t.Errorf("essay PointsEarned = %d, want 0", essay.PointsEarned)
	}
}

func TestGradeNormalization(t *testing.T) {
	key := []Question{
		{ID: "q1", Kind: KindTrueFalse, Points: 1, CorrectAnswer: "True"},
	}
	answers := []Answer{
		{QuestionID: "q1", Value: "  true "},
	}

	got := Grade(answers, key)
	if got.Score != 1 {
		t.Errorf("Score = %d, want 1", got.Score)
	}
	if got.Answers[0].IsCorrect == nil || !*got.Answers[0].IsCorrect {
		t.Errorf("IsCorrect = %v, want true", got.Answers[0].IsCorrect)
	}
}

func TestGradeUnknownQuestionSkipped(t *testing.T) {
	key := []Question{
		{ID: "q1", Kind: KindMultipleChoice, Points: 1, CorrectAnswer: "A"},
	}
	answers := []Answer{
		{QuestionID: "q1", Value: "A"},
		{QuestionID: "missing", Value: "B"},
	}

	got := Grade(answers, key)
	if got.Score != 1 {
		t.Errorf("Score = %d, want 1", got.Score)
	}
	if len(got.Answers) != 2 {
		t.Fatalf("len(Answers) = %d, want 2", len(got.Answers))
	}
	if !got.Answers[1].Skipped {
		t.Errorf("unknown question answer not flagged as skipped")
	}
	if got.Answers[1].IsCorrect != nil {
		t.Errorf("skipped answer IsCorrect = %v, want nil", *got.Answers[1].IsCorrect)
	}
}

func TestGradeUnknownOptionSkipped(t *testing.T) {
	key := []Question{
		{ID: "q1", Kind: KindMultipleChoice, Points: 2, CorrectAnswer: "b", Options: []string{"a", "b", "c", "d"}},
		{ID: "q2", Kind: KindMultipleChoice, Points: 2, CorrectAnswer: "a", Options: []string{"a", "b"}},
	}
	answers := []Answer{
		{QuestionID: "q1", Value: "zzz-not-an-option"},
		{QuestionID: "q2", Value: "b"},
	}

	got := Grade(answers, key)
	if got.Score != 0 {
		t.Errorf("Score = %d, want 0", got.Score)
	}

	unknown := got.Answers[0]
	if !unknown.Skipped {
		t.Errorf("unknown option answer not flagged as skipped")
	}
	if unknown.IsCorrect != nil {
		t.Errorf("skipped answer IsCorrect = %v, want nil", *unknown.IsCorrect)
	}
	if unknown.PointsEarned != 0 {
		t.Errorf("skipped answer PointsEarned = %d, want 0", unknown.PointsEarned)
	}

	wrong := got.Answers[1]
	if wrong.Skipped {
		t.Errorf("valid wrong option flagged as skipped")
	}
	if wrong.IsCorrect == nil || *wrong.IsCorrect {
		t.Errorf("valid wrong option IsCorrect = %v, want false", wrong.IsCorrect)
	}
}

func TestGradeDoesNotMutateKey(t *testing.T) {
	key := []Question{
		{ID: "q1", Kind: KindMultipleChoice, Points: 3, CorrectAnswer: "A", Options: []string{"a", "b"}},
	}
	before := key[0]

	Grade([]Answer{{QuestionID: "q1", Value: "a"}}, key)

	if !reflect.DeepEqual(key[0], before) {
		t.Errorf("answer key mutated: %+v", key[0])
	}
}

func TestGradeEmptySubmission(t *testing.T) {
	key := []Question{
		{ID: "q1", Kind: KindMultipleChoice, Points: 2, CorrectAnswer: "A"},
		{ID: "q2", Kind: KindShortAnswer, Points: 3},
	}

	got := Grade(nil, key)
	if got.Score != 0 {
		t.Errorf("Score = %d, want 0", got.Score)
	}
	if got.MaxScore != 5 {
		t.Errorf("MaxScore = %d, want 5", got.MaxScore)
	}
	if len(got.Answers) != 0 {
		t.Errorf("len(Answers) = %d, want 0", len(got.Answers))
	}
}
