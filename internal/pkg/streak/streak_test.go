package streak

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestRecordFirstActivity(t *testing.T) {
	got := Record(State{}, t0)
	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", got.LongestStreak)
	}
	if got.TotalActiveDays != 1 {
		t.Errorf("TotalActiveDays = %d, want 1", got.TotalActiveDays)
	}
	if got.LastActivityAt == nil || !got.LastActivityAt.Equal(t0) {
		t.Errorf("LastActivityAt = %v, want %v", got.LastActivityAt, t0)
	}
}

func TestRecordSameDayIdempotent(t *testing.T) {
	s := Record(State{}, t0)
	got := Record(s, t0.Add(3*time.Hour))
	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.TotalActiveDays != 1 {
		t.Errorf("TotalActiveDays = %d, want 1", got.TotalActiveDays)
	}
	if got.LastActivityAt == nil || !got.LastActivityAt.Equal(t0.Add(3*time.Hour)) {
		t.Errorf("LastActivityAt = %v, want %v", got.LastActivityAt, t0.Add(3*time.Hour))
	}
}

func TestRecordNextDayWithinWindow(t *testing.T) {
	s := Record(State{}, t0)
	got := Record(s, t0.Add(23*time.Hour))
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
	if got.TotalActiveDays != 2 {
		t.Errorf("TotalActiveDays = %d, want 2", got.TotalActiveDays)
	}
}

func TestRecordResetAfterWindow(t *testing.T) {
	s := Record(State{}, t0)
	s = Record(s, t0.Add(23*time.Hour))
	got := Record(s, t0.Add(23*time.Hour).Add(25*time.Hour))
	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", got.LongestStreak)
	}
	if got.TotalActiveDays != 3 {
		t.Errorf("TotalActiveDays = %d, want 3", got.TotalActiveDays)
	}
}

func TestRecordLongestMonotonic(t *testing.T) {
	gaps := []time.Duration{
		23 * time.Hour,
		23 * time.Hour,
		25 * time.Hour,
		23 * time.Hour,
		2 * time.Hour,
		25 * time.Hour,
	}

	s := Record(State{}, t0)
	prev := s.LongestStreak
	now := t0
	for _, gap := range gaps {
		now = now.Add(gap)
		s = Record(s, now)
		if s.LongestStreak < prev {
			t.Fatalf("LongestStreak decreased: %d -> %d", prev, s.LongestStreak)
		}
		if s.LongestStreak < s.CurrentStreak {
			t.Fatalf("LongestStreak %d < CurrentStreak %d", s.LongestStreak, s.CurrentStreak)
		}
		prev = s.LongestStreak
	}
	if s.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", s.LongestStreak)
	}
}

func TestEvaluatePhases(t *testing.T) {
	s := Record(State{}, t0)

	tests := []struct {
		name string
		now  time.Time
		want Phase
	}{
		{"fresh activity", t0.Add(time.Hour), PhaseActive},
		{"approaching break", t0.Add(19 * time.Hour), PhaseAtRisk},
		{"at exact window edge", t0.Add(24 * time.Hour), PhaseAtRisk},
		{"past window", t0.Add(25 * time.Hour), PhaseBroken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(s, tt.now, DefaultAtRiskAfter)
			if got.Phase != tt.want {
				t.Errorf("Phase = %q, want %q", got.Phase, tt.want)
			}
		})
	}
}

func TestEvaluateNew(t *testing.T) {
	got := Evaluate(State{}, t0, DefaultAtRiskAfter)
	if got.Phase != PhaseNew {
		t.Errorf("Phase = %q, want %q", got.Phase, PhaseNew)
	}
	if got.TimeUntilBreak != 0 {
		t.Errorf("TimeUntilBreak = %v, want 0", got.TimeUntilBreak)
	}
}

func TestEvaluateCountdown(t *testing.T) {
	s := Record(State{}, t0)

	got := Evaluate(s, t0.Add(20*time.Hour), DefaultAtRiskAfter)
	if got.TimeUntilBreak != 4*time.Hour {
		t.Errorf("TimeUntilBreak = %v, want 4h", got.TimeUntilBreak)
	}

	got = Evaluate(s, t0.Add(30*time.Hour), DefaultAtRiskAfter)
	if got.TimeUntilBreak != 0 {
		t.Errorf("TimeUntilBreak = %v, want 0", got.TimeUntilBreak)
	}
}
