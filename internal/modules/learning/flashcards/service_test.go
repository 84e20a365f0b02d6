package flashcards

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revyse/core/internal/models"
	"github.com/revyse/core/internal/pkg/mastery"
)

// Concurrent reviews of one card are serialized by its row lock; with
// that serialization in place every review must land, none overwritten.
func TestApplyReviewConcurrentSerialized(t *testing.T) {
	const workers = 50

	card := &models.FlashcardModel{
		Front: "front",
		Back:  "back",
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(quality int) {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			if err := applyReview(card, quality, time.Now()); err != nil {
				t.Errorf("applyReview: %v", err)
			}
		}(i % 6)
	}
	wg.Wait()

	assert.Equal(t, workers, card.ReviewCount, "every review must be counted")
	assert.GreaterOrEqual(t, card.MasteryLevel, 0)
	assert.LessOrEqual(t, card.MasteryLevel, mastery.MaxLevel)
	require.NotNil(t, card.LastReviewedAt)
}

func TestApplyReviewAdvancesState(t *testing.T) {
	card := &models.FlashcardModel{}
	now := time.Now()

	require.NoError(t, applyReview(card, 5, now))
	assert.Equal(t, 1, card.ReviewCount)
	assert.Equal(t, 1, card.MasteryLevel)
	require.NotNil(t, card.LastReviewedAt)
	assert.True(t, card.LastReviewedAt.Equal(now))
}

func TestApplyReviewInvalidRatingLeavesCardUntouched(t *testing.T) {
	card := &models.FlashcardModel{ReviewCount: 3, MasteryLevel: 2}
	before := *card

	err := applyReview(card, 9, time.Now())
	require.ErrorIs(t, err, mastery.ErrInvalidRating)
	assert.Equal(t, before, *card)
}
