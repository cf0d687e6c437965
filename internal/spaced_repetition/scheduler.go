// Package spaced_repetition implements the scheduling core: a pure
// state-transition function from (item, rating, config) to the item's next
// state and due time. It performs no I/O and never mutates its inputs; the
// current time is always an explicit parameter.
package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/clozebot/pkg/models"
)

const (
	// MinutesPerDay converts between the minute unit items are stored in
	// and the day unit review-state configuration speaks in.
	MinutesPerDay = 24 * 60

	// EaseFloor is the hard lower bound on an item's ease factor.
	EaseFloor = 1.3

	// MatureThresholdDays classifies a graduated item as mature.
	MatureThresholdDays = 21

	// relearningStepMinutes is the fixed wait after forgetting a graduated
	// item. It is independent of the configured learning-step ladder.
	relearningStepMinutes = 10

	lapseEasePenalty = 0.2
	hardEasePenalty  = 0.15
	easyEaseBonus    = 0.15
	hardStepFactor   = 1.5
)

// Schedule applies one rating to an item and returns the updated item with
// its next review time set. The input item is left untouched.
func Schedule(item models.Item, rating models.Rating, cfg models.Config, now time.Time) models.Item {
	it := item.Clone()
	it.UpdatedAt = now

	if it.State.InLadder() {
		scheduleLadder(&it, rating, cfg, now)
	} else {
		scheduleGraduated(&it, rating, cfg, now)
	}
	return it
}

// scheduleLadder handles items in StateNew or StateLearning: short fixed
// waits climbed by good answers until the item graduates to day-scale
// intervals.
func scheduleLadder(it *models.Item, rating models.Rating, cfg models.Config, now time.Time) {
	steps := cfg.LearningSteps
	step := 0
	if it.StepIndex != nil {
		step = *it.StepIndex
	}

	// An empty ladder, or a step index past the end of a shortened ladder,
	// means there is nothing left to climb: graduate now.
	if len(steps) == 0 || (step >= len(steps) && rating != models.Again) {
		if rating == models.Easy {
			it.EaseFactor += easyEaseBonus
			graduate(it, float64(cfg.GraduatingInterval)*cfg.EasyBonus, now)
			return
		}
		graduate(it, float64(cfg.GraduatingInterval), now)
		return
	}

	switch rating {
	case models.Again:
		if it.State == models.StateLearning {
			it.Lapses++
		}
		it.State = models.StateLearning
		it.EaseFactor = math.Max(EaseFloor, it.EaseFactor-lapseEasePenalty)
		it.Repetitions = 0
		setStep(it, 0)
		it.NextReview = now.Add(time.Duration(steps[0]) * time.Minute)

	case models.Hard:
		// Stay on the current step but wait half again as long.
		it.State = models.StateLearning
		setStep(it, step)
		wait := time.Duration(float64(steps[step]) * hardStepFactor * float64(time.Minute))
		it.NextReview = now.Add(wait)

	case models.Good:
		next := step + 1
		if next >= len(steps) {
			graduate(it, float64(cfg.GraduatingInterval), now)
			return
		}
		it.State = models.StateLearning
		setStep(it, next)
		it.NextReview = now.Add(time.Duration(steps[next]) * time.Minute)

	case models.Easy:
		it.EaseFactor += easyEaseBonus
		graduate(it, float64(cfg.GraduatingInterval)*cfg.EasyBonus, now)
	}
}

// scheduleGraduated handles items in StateReview or StateMature: the
// interval grows multiplicatively, capped at the configured maximum.
func scheduleGraduated(it *models.Item, rating models.Rating, cfg models.Config, now time.Time) {
	days := float64(it.Interval) / MinutesPerDay

	if rating == models.Again {
		// Forgotten: demote to the ladder and halve the stored interval as
		// a decay marker. The halved interval stays dormant until the item
		// graduates again; the actual wait is the fixed relearning step.
		it.State = models.StateLearning
		it.EaseFactor = math.Max(EaseFloor, it.EaseFactor-lapseEasePenalty)
		it.Repetitions = 0
		it.Lapses++
		halved := days / 2
		if halved < 1 {
			halved = 1
		}
		it.Interval = int(math.Round(halved * MinutesPerDay))
		setStep(it, 0)
		it.NextReview = now.Add(relearningStepMinutes * time.Minute)
		return
	}

	switch rating {
	case models.Hard:
		days *= cfg.HardMultiplier
		it.EaseFactor = math.Max(EaseFloor, it.EaseFactor-hardEasePenalty)
	case models.Good:
		days *= it.EaseFactor * cfg.IntervalMultiplier
	case models.Easy:
		days *= it.EaseFactor * cfg.EasyBonus * cfg.IntervalMultiplier
		it.EaseFactor += easyEaseBonus
	}

	if max := float64(cfg.MaxInterval); days > max {
		days = max
	}

	it.Repetitions++
	it.StepIndex = nil
	if days >= MatureThresholdDays {
		it.State = models.StateMature
	} else {
		it.State = models.StateReview
	}
	it.Interval = int(math.Round(days * MinutesPerDay))
	it.NextReview = now.Add(time.Duration(it.Interval) * time.Minute)
}

// graduate moves an item off the ladder onto a day-scale interval.
func graduate(it *models.Item, days float64, now time.Time) {
	it.State = models.StateReview
	it.StepIndex = nil
	it.Repetitions = 1
	it.Interval = int(math.Round(days * MinutesPerDay))
	it.NextReview = now.Add(time.Duration(it.Interval) * time.Minute)
}

func setStep(it *models.Item, step int) {
	it.StepIndex = &step
}
