package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingRoundTripsThroughDatabase(t *testing.T) {
	for _, r := range AllRatings() {
		v, err := r.Value()
		require.NoError(t, err)

		var back Rating
		require.NoError(t, back.Scan(v))
		assert.Equal(t, r, back)
	}
}

func TestRatingRejectsUnknownValues(t *testing.T) {
	_, err := Rating(0).Value()
	assert.Error(t, err)

	var r Rating
	assert.Error(t, r.Scan("brilliant"))
	assert.Error(t, r.Scan(7))
}

func TestLearningStateLadderMembership(t *testing.T) {
	assert.True(t, StateNew.InLadder())
	assert.True(t, StateLearning.InLadder())
	assert.False(t, StateReview.InLadder())
	assert.False(t, StateMature.InLadder())
}

func TestItemCloneIsIndependent(t *testing.T) {
	step := 1
	item := Item{ID: "a", StepIndex: &step}

	clone := item.Clone()
	*clone.StepIndex = 5

	assert.Equal(t, 1, *item.StepIndex)
}
