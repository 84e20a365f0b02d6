// Package streak derives continuous-activity streaks from timestamped
// events. A streak survives as long as consecutive activities are at most
// 24 hours apart; crossing into a new UTC calendar day within that window
// extends it by one.
package streak

import "time"

// BreakAfter is the rolling window an activity gap may span before the
// streak resets.
const BreakAfter = 24 * time.Hour

// DefaultAtRiskAfter marks how far into the window a streak is reported
// as at risk.
const DefaultAtRiskAfter = 18 * time.Hour

// State is a user's streak snapshot.
type State struct {
	CurrentStreak   int
	LongestStreak   int
	TotalActiveDays int
	LastActivityAt  *time.Time
}

// Phase classifies a streak relative to the break window.
type Phase string

const (
	PhaseNew    Phase = "new"
	PhaseActive Phase = "active"
	PhaseAtRisk Phase = "at_risk"
	PhaseBroken Phase = "broken"
)

// Status is the read-only view of a streak.
type Status struct {
	Phase          Phase
	TimeUntilBreak time.Duration
}

// Record applies an activity at now and returns the updated state.
// Repeated activity within the same UTC day and window is idempotent.
func Record(s State, now time.Time) State {
	next := s

	switch {
	case s.LastActivityAt == nil:
		next.CurrentStreak = 1
		next.TotalActiveDays++
	case now.Sub(*s.LastActivityAt) > BreakAfter:
		next.CurrentStreak = 1
		next.TotalActiveDays++
	case !sameDay(*s.LastActivityAt, now):
		next.CurrentStreak++
		next.TotalActiveDays++
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.LastActivityAt = &now
	return next
}

// Evaluate reports the streak phase at now without mutating state.
// A non-positive atRiskAfter falls back to DefaultAtRiskAfter.
func Evaluate(s State, now time.Time, atRiskAfter time.Duration) Status {
	if s.LastActivityAt == nil {
		return Status{Phase: PhaseNew}
	}
	if atRiskAfter <= 0 {
		atRiskAfter = DefaultAtRiskAfter
	}

	elapsed := now.Sub(*s.LastActivityAt)
	remaining := BreakAfter - elapsed
	if remaining < 0 {
		remaining = 0
	}

	phase := PhaseActive
	switch {
	case elapsed > BreakAfter:
		phase = PhaseBroken
	case elapsed > atRiskAfter:
		phase = PhaseAtRisk
	}
	return Status{Phase: phase, TimeUntilBreak: remaining}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
