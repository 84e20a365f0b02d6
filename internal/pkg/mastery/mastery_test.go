package mastery

import (
	"errors"
	"testing"
	"time"
)

var reviewTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestReviewLevelAdjustment(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		quality int
		want    int
	}{
		{"high rating raises level", 2, 4, 3},
		{"perfect rating raises level", 2, 5, 3},
		{"medium rating keeps level", 2, 3, 2},
		{"low medium rating keeps level", 2, 2, 2},
		{"low rating lowers level", 2, 1, 1},
		{"zero rating lowers level", 2, 0, 1},
		{"level capped at max", 5, 5, 5},
		{"level floored at zero", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Review(State{MasteryLevel: tt.level}, tt.quality, reviewTime)
			if err != nil {
				t.Fatalf("Review() error = %v", err)
			}
			if got.MasteryLevel != tt.want {
				t.Errorf("MasteryLevel = %d, want %d", got.MasteryLevel, tt.want)
			}
		})
	}
}

func TestReviewCountAndTimestamp(t *testing.T) {
	got, err := Review(State{ReviewCount: 3, MasteryLevel: 1}, 3, reviewTime)
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if got.ReviewCount != 4 {
		t.Errorf("ReviewCount = %d, want 4", got.ReviewCount)
	}
	if got.LastReviewedAt == nil || !got.LastReviewedAt.Equal(reviewTime) {
		t.Errorf("LastReviewedAt = %v, want %v", got.LastReviewedAt, reviewTime)
	}
}

func TestReviewInvalidRating(t *testing.T) {
	for _, quality := range []int{-1, 6, 100} {
		prior := State{ReviewCount: 2, MasteryLevel: 3}
		got, err := Review(prior, quality, reviewTime)
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("Review(quality=%d) error = %v, want ErrInvalidRating", quality, err)
		}
		if got != prior {
			t.Errorf("Review(quality=%d) mutated state: %+v", quality, got)
		}
	}
}

func TestReviewBoundsUnderRepetition(t *testing.T) {
	s := State{}
	for i := 0; i < 10; i++ {
		var err error
		s, err = Review(s, 5, reviewTime)
		if err != nil {
			t.Fatalf("Review() error = %v", err)
		}
		if s.MasteryLevel < 0 || s.MasteryLevel > MaxLevel {
			t.Fatalf("MasteryLevel = %d out of bounds after %d reviews", s.MasteryLevel, i+1)
		}
	}
	if s.MasteryLevel != MaxLevel {
		t.Errorf("MasteryLevel = %d, want %d", s.MasteryLevel, MaxLevel)
	}

	s = State{MasteryLevel: MaxLevel}
	for i := 0; i < 10; i++ {
		var err error
		s, err = Review(s, 0, reviewTime)
		if err != nil {
			t.Fatalf("Review() error = %v", err)
		}
		if s.MasteryLevel < 0 {
			t.Fatalf("MasteryLevel = %d below zero after %d reviews", s.MasteryLevel, i+1)
		}
	}
	if s.MasteryLevel != 0 {
		t.Errorf("MasteryLevel = %d, want 0", s.MasteryLevel)
	}
}
