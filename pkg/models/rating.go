package models

import (
	"database/sql/driver"
	"fmt"
)

// Rating is the user's assessment of recall quality for a single review.
// It is a closed set: every scheduling branch is defined for exactly these
// four values, ordered from worst to best recall.
type Rating int

const (
	Again Rating = iota + 1 // failed to recall
	Hard                    // recalled with serious effort
	Good                    // recalled correctly
	Easy                    // recalled instantly
)

var ratingNames = [...]string{Again: "again", Hard: "hard", Good: "good", Easy: "easy"}

var ratingByName = map[string]Rating{
	"again": Again,
	"hard":  Hard,
	"good":  Good,
	"easy":  Easy,
}

// AllRatings returns the four ratings in ascending recall-quality order.
func AllRatings() [4]Rating {
	return [4]Rating{Again, Hard, Good, Easy}
}

// IsValid reports whether r is one of the four defined ratings.
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

// String returns the lowercase name of the rating.
// Invalid values render as "Rating(n)".
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// ParseRating maps a lowercase rating name back to its value.
func ParseRating(s string) (Rating, error) {
	r, ok := ratingByName[s]
	if !ok {
		return 0, fmt.Errorf("invalid rating: %q", s)
	}
	return r, nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid rating: %d", int(r))
	}
	return []byte(ratingNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	v, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Value implements driver.Valuer. Ratings are stored as text.
func (r Rating) Value() (driver.Value, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid rating: %d", int(r))
	}
	return ratingNames[r], nil
}

// Scan implements sql.Scanner.
func (r *Rating) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into Rating", src)
	}
}
