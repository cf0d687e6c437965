package models

import (
	"database/sql/driver"
	"fmt"
)

// LearningState is the scheduling stage of an item. It selects which
// scheduler branch applies: step-ladder mode for StateNew/StateLearning,
// interval-multiplication mode for StateReview/StateMature.
type LearningState int

const (
	StateNew      LearningState = iota + 1 // never reviewed
	StateLearning                          // climbing the learning-step ladder
	StateReview                            // graduated, interval < 21 days
	StateMature                            // graduated, interval >= 21 days
)

var stateNames = [...]string{
	StateNew:      "new",
	StateLearning: "learning",
	StateReview:   "review",
	StateMature:   "mature",
}

var stateByName = map[string]LearningState{
	"new":      StateNew,
	"learning": StateLearning,
	"review":   StateReview,
	"mature":   StateMature,
}

// InLadder reports whether the state schedules via the learning-step ladder.
func (s LearningState) InLadder() bool {
	return s == StateNew || s == StateLearning
}

func (s LearningState) isValid() bool {
	return s >= StateNew && s <= StateMature
}

// String returns the lowercase name of the state.
// Invalid values render as "LearningState(n)".
func (s LearningState) String() string {
	if s.isValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("LearningState(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s LearningState) MarshalText() ([]byte, error) {
	if !s.isValid() {
		return nil, fmt.Errorf("invalid learning state: %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *LearningState) UnmarshalText(text []byte) error {
	v, ok := stateByName[string(text)]
	if !ok {
		return fmt.Errorf("invalid learning state: %q", text)
	}
	*s = v
	return nil
}

// Value implements driver.Valuer. States are stored as text.
func (s LearningState) Value() (driver.Value, error) {
	if !s.isValid() {
		return nil, fmt.Errorf("invalid learning state: %d", int(s))
	}
	return stateNames[s], nil
}

// Scan implements sql.Scanner.
func (s *LearningState) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into LearningState", src)
	}
}
