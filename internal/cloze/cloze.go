// Package cloze parses the deletion mini-language embedded in card text
// and expands one template into independently schedulable items.
//
// A deletion is written {{cK::TEXT}} or {{cK::TEXT::HINT}} where K is a
// positive integer slot number. TEXT and HINT may not contain ':' or '}';
// spans that break the grammar are left in the text as-is.
package cloze

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/example/clozebot/pkg/models"
)

// ErrNoDeletions is returned when a card text contains no valid deletions.
// Such a card has nothing to schedule and must be rejected at creation.
var ErrNoDeletions = errors.New("cloze: text contains no deletions")

var deletionPattern = regexp.MustCompile(`\{\{c([1-9][0-9]*)::([^:}]+)(?:::([^:}]+))?\}\}`)

// Deletion is one parsed {{cK::...}} span.
type Deletion struct {
	Slot   int    // the K grouping number
	Answer string // hidden text
	Hint   string // optional, shown in place of the answer when blanked
}

// Deletions scans the text left to right and returns every well-formed
// deletion in order of appearance. Multiple deletions may share a slot.
func Deletions(text string) []Deletion {
	matches := deletionPattern.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}
	out := make([]Deletion, 0, len(matches))
	for _, m := range matches {
		slot, err := strconv.Atoi(m[1])
		if err != nil {
			continue // unreachable given the pattern, but never crash on markup
		}
		out = append(out, Deletion{Slot: slot, Answer: m[2], Hint: m[3]})
	}
	return out
}

// Count returns the highest slot number present in the text. Deletions are
// numbered slots, so this is the number of items the text expands into,
// not the number of {{...}} spans.
func Count(text string) int {
	max := 0
	for _, d := range Deletions(text) {
		if d.Slot > max {
			max = d.Slot
		}
	}
	return max
}

// RenderQuestion renders the text with every deletion of the target slot
// blanked out (showing its hint if present) and every other deletion
// replaced by its plain answer text.
func RenderQuestion(text string, slot int) string {
	return render(text, slot, func(d Deletion) string {
		if d.Hint != "" {
			return "[" + d.Hint + "]"
		}
		return "[...]"
	})
}

// RenderAnswer renders the text with every deletion of the target slot
// revealed in bold and every other deletion replaced by its plain answer.
func RenderAnswer(text string, slot int) string {
	return render(text, slot, func(d Deletion) string {
		return "*" + d.Answer + "*"
	})
}

// render substitutes deletion spans, leaving all surrounding text intact.
func render(text string, slot int, target func(Deletion) string) string {
	return deletionPattern.ReplaceAllStringFunc(text, func(span string) string {
		m := deletionPattern.FindStringSubmatch(span)
		n, _ := strconv.Atoi(m[1])
		d := Deletion{Slot: n, Answer: m[2], Hint: m[3]}
		if d.Slot == slot {
			return target(d)
		}
		return d.Answer
	})
}

// Expand turns a cloze card into one item per slot, numbered 1..N where N
// is the highest slot in the text. Every item carries the whole template
// and differs only by its slot index; each is scheduled independently.
func Expand(card models.Card, userID int64, ease float64, now time.Time) ([]models.Item, error) {
	n := Count(card.Text)
	if n == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoDeletions, card.Text)
	}
	items := make([]models.Item, 0, n)
	for slot := 1; slot <= n; slot++ {
		items = append(items, models.NewItem(card.ID, card.DeckID, userID, slot, ease, now))
	}
	return items, nil
}
