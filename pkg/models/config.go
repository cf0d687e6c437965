package models

// Config holds the scheduling parameters for a deck. Learning steps are in
// minutes; graduating and maximum intervals are in days. A config value is
// immutable for the duration of a single scheduling call.
type Config struct {
	LearningSteps      []int   `json:"learning_steps"`      // minutes
	GraduatingInterval int     `json:"graduating_interval"` // days
	EasyBonus          float64 `json:"easy_bonus"`
	HardMultiplier     float64 `json:"hard_multiplier"`
	IntervalMultiplier float64 `json:"interval_multiplier"`
	MaxInterval        int     `json:"max_interval"` // days
	DefaultEase        float64 `json:"default_ease"`
	NewPerSession      int     `json:"new_per_session"`
}

// DefaultConfig returns the scheduling defaults applied when a deck has no
// overrides.
func DefaultConfig() Config {
	return Config{
		LearningSteps:      []int{1, 10},
		GraduatingInterval: 1,
		EasyBonus:          1.3,
		HardMultiplier:     1.2,
		IntervalMultiplier: 1.0,
		MaxInterval:        36500,
		DefaultEase:        2.5,
		NewPerSession:      10,
	}
}
