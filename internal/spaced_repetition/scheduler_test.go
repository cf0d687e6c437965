package spaced_repetition

import (
	"testing"
	"time"

	"github.com/example/clozebot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestItem() models.Item {
	return models.NewItem("card-1", 1, 42, 1, 2.5, t0)
}

func reviewItem(intervalDays float64, ease float64) models.Item {
	it := newTestItem()
	it.State = models.StateReview
	it.StepIndex = nil
	it.EaseFactor = ease
	it.Interval = int(intervalDays * MinutesPerDay)
	it.Repetitions = 3
	return it
}

func stepOf(t *testing.T, it models.Item) int {
	t.Helper()
	require.NotNil(t, it.StepIndex, "StepIndex should be set")
	return *it.StepIndex
}

// --- Learning ladder ---

func TestNewItemGoodClimbsThenGraduates(t *testing.T) {
	cfg := models.DefaultConfig() // steps [1, 10], graduating interval 1 day

	first := Schedule(newTestItem(), models.Good, cfg, t0)
	assert.Equal(t, models.StateLearning, first.State)
	assert.Equal(t, 1, stepOf(t, first))
	assert.Equal(t, t0.Add(10*time.Minute), first.NextReview)

	second := Schedule(first, models.Good, cfg, t0)
	assert.Equal(t, models.StateReview, second.State)
	assert.Nil(t, second.StepIndex, "graduation must clear the step index")
	assert.Equal(t, MinutesPerDay, second.Interval)
	assert.Equal(t, 1, second.Repetitions)
	assert.Equal(t, t0.Add(24*time.Hour), second.NextReview)
}

func TestLearningAgainResetsToFirstStep(t *testing.T) {
	cfg := models.DefaultConfig()

	it := newTestItem()
	it.State = models.StateLearning
	step := 1
	it.StepIndex = &step
	it.Repetitions = 1

	out := Schedule(it, models.Again, cfg, t0)
	assert.Equal(t, models.StateLearning, out.State)
	assert.Equal(t, 0, stepOf(t, out))
	assert.Equal(t, 0, out.Repetitions)
	assert.Equal(t, 1, out.Lapses, "again while learning counts as a lapse")
	assert.InDelta(t, 2.3, out.EaseFactor, 1e-9)
	assert.Equal(t, t0.Add(1*time.Minute), out.NextReview)
}

func TestNewItemAgainDoesNotCountLapse(t *testing.T) {
	out := Schedule(newTestItem(), models.Again, models.DefaultConfig(), t0)
	assert.Equal(t, models.StateLearning, out.State)
	assert.Equal(t, 0, out.Lapses)
}

func TestLearningHardWaitsHalfAgainAsLong(t *testing.T) {
	cfg := models.DefaultConfig()

	it := newTestItem()
	it.State = models.StateLearning
	step := 1
	it.StepIndex = &step

	out := Schedule(it, models.Hard, cfg, t0)
	assert.Equal(t, models.StateLearning, out.State)
	assert.Equal(t, 1, stepOf(t, out), "hard stays on the current step")
	assert.Equal(t, t0.Add(15*time.Minute), out.NextReview) // 10m * 1.5
}

func TestLearningEasyGraduatesWithBonus(t *testing.T) {
	cfg := models.DefaultConfig() // easy bonus 1.3

	out := Schedule(newTestItem(), models.Easy, cfg, t0)
	assert.Equal(t, models.StateReview, out.State)
	assert.Nil(t, out.StepIndex)
	assert.Equal(t, int(1.3*MinutesPerDay), out.Interval)
	assert.Equal(t, 1, out.Repetitions)
	assert.InDelta(t, 2.65, out.EaseFactor, 1e-9)
}

func TestEmptyLadderGraduatesImmediately(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.LearningSteps = nil

	out := Schedule(newTestItem(), models.Good, cfg, t0)
	assert.Equal(t, models.StateReview, out.State)
	assert.Nil(t, out.StepIndex)
	assert.Equal(t, MinutesPerDay, out.Interval)
}

func TestStepPastShortenedLadderGraduates(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.LearningSteps = []int{1} // ladder shrank under the item

	it := newTestItem()
	it.State = models.StateLearning
	step := 3
	it.StepIndex = &step

	out := Schedule(it, models.Good, cfg, t0)
	assert.Equal(t, models.StateReview, out.State)
	assert.Nil(t, out.StepIndex)
}

// --- Graduated items ---

func TestReviewGoodMultipliesByEase(t *testing.T) {
	cfg := models.DefaultConfig() // interval multiplier 1.0

	it := reviewItem(1, 2.5)
	out := Schedule(it, models.Good, cfg, t0)

	assert.Equal(t, models.StateReview, out.State, "2.5 days is below the mature threshold")
	assert.Equal(t, int(2.5*MinutesPerDay), out.Interval)
	assert.InDelta(t, 2.5, out.EaseFactor, 1e-9, "good leaves ease unchanged")
	assert.Equal(t, 4, out.Repetitions)
	assert.Equal(t, t0.Add(time.Duration(2.5*24)*time.Hour), out.NextReview)
}

func TestReviewEasyTurnsMature(t *testing.T) {
	cfg := models.DefaultConfig()

	it := reviewItem(20, 2.0)
	out := Schedule(it, models.Easy, cfg, t0)

	// 20 * 2.0 * 1.3 = 52 days
	assert.Equal(t, models.StateMature, out.State)
	assert.Equal(t, 52*MinutesPerDay, out.Interval)
	assert.InDelta(t, 2.15, out.EaseFactor, 1e-9)
}

func TestReviewIntervalCappedAtMax(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.MaxInterval = 30

	it := reviewItem(20, 2.0)
	out := Schedule(it, models.Easy, cfg, t0)

	assert.Equal(t, 30*MinutesPerDay, out.Interval)
	assert.Equal(t, models.StateMature, out.State)
}

func TestReviewCapBelowMatureThresholdKeepsReviewState(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.MaxInterval = 10 // below the 21-day mature threshold

	it := reviewItem(8, 2.5)
	out := Schedule(it, models.Good, cfg, t0)

	// Maturity is judged on the capped interval, so the item can never
	// reach it under this configuration.
	assert.Equal(t, 10*MinutesPerDay, out.Interval)
	assert.Equal(t, models.StateReview, out.State)
}

func TestReviewHardAppliesHardMultiplier(t *testing.T) {
	cfg := models.DefaultConfig() // hard multiplier 1.2

	it := reviewItem(10, 2.5)
	out := Schedule(it, models.Hard, cfg, t0)

	assert.Equal(t, 12*MinutesPerDay, out.Interval)
	assert.InDelta(t, 2.35, out.EaseFactor, 1e-9)
	assert.Equal(t, 4, out.Repetitions)
	assert.Equal(t, models.StateReview, out.State)
}

func TestReviewAgainDemotesAndHalvesStoredInterval(t *testing.T) {
	cfg := models.DefaultConfig()

	it := reviewItem(8, 2.5)
	it.Lapses = 2
	out := Schedule(it, models.Again, cfg, t0)

	assert.Equal(t, models.StateLearning, out.State)
	assert.Equal(t, 0, out.Repetitions)
	assert.Equal(t, 3, out.Lapses)
	assert.InDelta(t, 2.3, out.EaseFactor, 1e-9)
	assert.Equal(t, 0, stepOf(t, out))
	// The stored interval halves as a decay marker...
	assert.Equal(t, 4*MinutesPerDay, out.Interval)
	// ...but the actual wait is the fixed 10-minute relearning step.
	assert.Equal(t, t0.Add(10*time.Minute), out.NextReview)
}

func TestReviewAgainIntervalFloorIsOneDay(t *testing.T) {
	it := reviewItem(1, 2.5)
	out := Schedule(it, models.Again, models.DefaultConfig(), t0)
	assert.Equal(t, MinutesPerDay, out.Interval)
}

// --- Invariants ---

func TestEaseNeverDropsBelowFloor(t *testing.T) {
	cfg := models.DefaultConfig()
	states := []models.LearningState{
		models.StateNew, models.StateLearning, models.StateReview, models.StateMature,
	}
	for _, state := range states {
		for _, rating := range models.AllRatings() {
			it := reviewItem(5, 1.31)
			it.State = state
			if state.InLadder() {
				step := 0
				it.StepIndex = &step
			}
			out := Schedule(it, rating, cfg, t0)
			assert.GreaterOrEqual(t, out.EaseFactor, EaseFloor,
				"state %v rating %v", state, rating)
		}
	}
}

func TestRepetitionsIncrementOnGraduatedSuccess(t *testing.T) {
	cfg := models.DefaultConfig()
	for _, rating := range []models.Rating{models.Hard, models.Good, models.Easy} {
		it := reviewItem(5, 2.5)
		out := Schedule(it, rating, cfg, t0)
		assert.Equal(t, it.Repetitions+1, out.Repetitions, "rating %v", rating)
	}
}

func TestNextReviewAlwaysSet(t *testing.T) {
	cfg := models.DefaultConfig()
	for _, rating := range models.AllRatings() {
		fromNew := Schedule(newTestItem(), rating, cfg, t0)
		assert.True(t, fromNew.NextReview.After(t0) || fromNew.NextReview.Equal(t0),
			"rating %v from new", rating)

		fromReview := Schedule(reviewItem(3, 2.5), rating, cfg, t0)
		assert.True(t, fromReview.NextReview.After(t0), "rating %v from review", rating)
	}
}

func TestScheduleDoesNotMutateInput(t *testing.T) {
	cfg := models.DefaultConfig()

	it := newTestItem()
	step := 1
	it.StepIndex = &step
	it.State = models.StateLearning

	before := it.Clone()
	for _, rating := range models.AllRatings() {
		Schedule(it, rating, cfg, t0)
	}

	assert.Equal(t, before.State, it.State)
	assert.Equal(t, before.EaseFactor, it.EaseFactor)
	assert.Equal(t, before.Interval, it.Interval)
	assert.Equal(t, *before.StepIndex, *it.StepIndex)
	assert.Equal(t, before.NextReview, it.NextReview)
}
