// Package mastery implements the spaced-repetition state transition for
// flashcard reviews. Review is a pure function so callers load the card,
// apply the transition and persist the result.
package mastery

import (
	"errors"
	"time"
)

// MaxLevel is the highest mastery level a card can reach.
const MaxLevel = 5

// ErrInvalidRating is returned when the quality rating is outside [0,5].
var ErrInvalidRating = errors.New("quality rating must be between 0 and 5")

// State is the spaced-repetition state of a single flashcard.
type State struct {
	ReviewCount    int
	MasteryLevel   int
	LastReviewedAt *time.Time
}

// Review applies a quality rating to a card's state.
// Ratings of 4 or 5 raise the level, 2 and 3 leave it unchanged, 0 and 1
// lower it. The level is clamped to [0, MaxLevel].
func Review(s State, quality int, now time.Time) (State, error) {
	if quality < 0 || quality > MaxLevel {
		return s, ErrInvalidRating
	}

	next := s
	switch {
	case quality >= 4:
		if next.MasteryLevel < MaxLevel {
			next.MasteryLevel++
		}
	case quality <= 1:
		if next.MasteryLevel > 0 {
			next.MasteryLevel--
		}
	}

	next.ReviewCount++
	next.LastReviewedAt = &now
	return next, nil
}
