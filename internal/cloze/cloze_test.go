package cloze

import (
	"testing"
	"time"

	"github.com/example/clozebot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ct0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestCountUsesMaxSlotNumber(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"{{c1::Paris}} is in {{c2::France}}", 2},
		{"{{c1::a}} and {{c1::b}} share a slot", 1},
		{"only {{c3::one}} span, numbered three", 3},
		{"no deletions here", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Count(tt.text), "text %q", tt.text)
	}
}

func TestDeletionsScanOrder(t *testing.T) {
	ds := Deletions("{{c2::beta}} then {{c1::alpha::first}}")
	require.Len(t, ds, 2)
	assert.Equal(t, Deletion{Slot: 2, Answer: "beta"}, ds[0])
	assert.Equal(t, Deletion{Slot: 1, Answer: "alpha", Hint: "first"}, ds[1])
}

func TestRenderQuestionHidesOnlyTargetSlot(t *testing.T) {
	text := "{{c1::Paris}} is in {{c2::France}}"
	assert.Equal(t, "[...] is in France", RenderQuestion(text, 1))
	assert.Equal(t, "Paris is in [...]", RenderQuestion(text, 2))
}

func TestRenderQuestionShowsHint(t *testing.T) {
	text := "{{c1::Paris::capital}} is in {{c2::France}}"
	assert.Equal(t, "[capital] is in France", RenderQuestion(text, 1))
}

func TestRenderAnswerBoldsTargetSlot(t *testing.T) {
	text := "{{c1::Paris}} is in {{c2::France}}"
	assert.Equal(t, "*Paris* is in France", RenderAnswer(text, 1))
	assert.Equal(t, "Paris is in *France*", RenderAnswer(text, 2))
}

func TestRenderSharedSlotTogether(t *testing.T) {
	text := "{{c1::Oslo}} and {{c1::Bergen}} are {{c2::Norwegian}}"
	assert.Equal(t, "[...] and [...] are Norwegian", RenderQuestion(text, 1))
	assert.Equal(t, "*Oslo* and *Bergen* are Norwegian", RenderAnswer(text, 1))
}

func TestRenderPreservesSurroundingText(t *testing.T) {
	text := "  leading {{c1::x}}  trailing\nnext line  "
	assert.Equal(t, "  leading [...]  trailing\nnext line  ", RenderQuestion(text, 1))
}

func TestMalformedMarkupPassesThrough(t *testing.T) {
	tests := []string{
		"{{c1:Paris}} single colon",  // missing separator
		"{{cX::Paris}} bad number",   // non-numeric slot
		"{{c0::Paris}} zero slot",    // slots start at one
		"{{c1::Paris unterminated",   // no closing braces
		"{{c1::}} empty answer",      // nothing to hide
	}
	for _, text := range tests {
		assert.Equal(t, 0, Count(text), "text %q", text)
		assert.Equal(t, text, RenderQuestion(text, 1), "text %q", text)
	}
}

func TestExpandCreatesOneItemPerSlot(t *testing.T) {
	card := models.Card{
		ID:     "card-1",
		DeckID: 7,
		Text:   "{{c1::Paris}} is in {{c2::France}}",
	}

	items, err := Expand(card, 42, 2.5, ct0)
	require.NoError(t, err)
	require.Len(t, items, 2)

	for i, item := range items {
		assert.Equal(t, "card-1", item.CardID)
		assert.Equal(t, int64(7), item.DeckID)
		assert.Equal(t, int64(42), item.UserID)
		assert.Equal(t, i+1, item.ClozeIndex)
		assert.Equal(t, models.StateNew, item.State)
		assert.Equal(t, 2.5, item.EaseFactor)
		assert.Equal(t, 0, item.Interval)
		assert.Equal(t, ct0, item.NextReview, "new items are due immediately")
		assert.NotEmpty(t, item.ID)
	}
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func TestExpandRejectsTextWithoutDeletions(t *testing.T) {
	card := models.Card{ID: "card-1", Text: "plain text"}
	_, err := Expand(card, 42, 2.5, ct0)
	assert.ErrorIs(t, err, ErrNoDeletions)
}
