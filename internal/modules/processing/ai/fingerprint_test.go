package ai

import "testing"

func TestFingerprintStableAcrossParamOrder(t *testing.T) {
	a := Fingerprint(OpQuiz, "cell biology notes", map[string]string{
		"difficulty": "easy",
		"count":      "5",
	})
	b := Fingerprint(OpQuiz, "cell biology notes", map[string]string{
		"count":      "5",
		"difficulty": "easy",
	})
	if a != b {
		t.Errorf("fingerprints differ across param order: %q vs %q", a, b)
	}
}

func TestFingerprintStableAcrossWhitespace(t *testing.T) {
	a := Fingerprint(OpSummary, "the  mitochondria\n is the powerhouse", nil)
	b := Fingerprint(OpSummary, "the mitochondria is\tthe powerhouse", nil)
	if a != b {
		t.Errorf("fingerprints differ across whitespace: %q vs %q", a, b)
	}
}

func TestFingerprintChangesWithSemantics(t *testing.T) {
	base := Fingerprint(OpQuiz, "cell biology notes", map[string]string{"count": "5"})

	if got := Fingerprint(OpQuiz, "organic chemistry notes", map[string]string{"count": "5"}); got == base {
		t.Errorf("fingerprint unchanged for different content")
	}
	if got := Fingerprint(OpQuiz, "cell biology notes", map[string]string{"count": "10"}); got == base {
		t.Errorf("fingerprint unchanged for different params")
	}
	if got := Fingerprint(OpFlashcards, "cell biology notes", map[string]string{"count": "5"}); got == base {
		t.Errorf("fingerprint unchanged for different operation")
	}
}
