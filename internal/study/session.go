package study

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/example/clozebot/internal/spaced_repetition"
	"github.com/example/clozebot/pkg/models"
)

// Store persists the outcome of one rating: the updated item and its
// review event together, so a crash can never leave the item's schedule
// inconsistent with its review history.
type Store interface {
	RecordReview(item models.Item, event models.ReviewEvent) error
}

// Session is the in-memory state of one study run: the queue, the cursor,
// and running counters. It is owned by a single chat and discarded when
// the queue is exhausted.
type Session struct {
	UserID int64

	queue   []models.StudyQueueEntry
	pos     int
	cfg     models.Config
	store   Store
	rng     *rand.Rand
	shownAt time.Time

	Answered int // total ratings recorded
	Lapsed   int // "again" ratings recorded
	NewSeen  int // new items introduced
}

// NewSession creates a session over an already-built queue.
func NewSession(userID int64, queue []models.StudyQueueEntry, cfg models.Config, store Store) *Session {
	return &Session{
		UserID: userID,
		queue:  queue,
		cfg:    cfg,
		store:  store,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Config returns the scheduling configuration the session was built with.
func (s *Session) Config() models.Config {
	return s.cfg
}

// Current returns the entry at the cursor, or false when the session is done.
func (s *Session) Current() (models.StudyQueueEntry, bool) {
	if s.pos >= len(s.queue) {
		return models.StudyQueueEntry{}, false
	}
	return s.queue[s.pos], true
}

// Remaining returns how many entries are left, including the current one.
func (s *Session) Remaining() int {
	if s.pos >= len(s.queue) {
		return 0
	}
	return len(s.queue) - s.pos
}

// MarkShown records when the current card's question was presented, so the
// response latency can be attached to the review event.
func (s *Session) MarkShown(now time.Time) {
	s.shownAt = now
}

// Answer applies the rating to the current item, persists the updated item
// together with its review event, advances the cursor, and on "again"
// splices the item back into the remaining queue. It returns the updated
// item.
func (s *Session) Answer(rating models.Rating, now time.Time) (models.Item, error) {
	entry, ok := s.Current()
	if !ok {
		return models.Item{}, fmt.Errorf("session for user %d has no current item", s.UserID)
	}

	updated := spaced_repetition.Schedule(entry.Item, rating, s.cfg, now)

	latency := 0
	if !s.shownAt.IsZero() && now.After(s.shownAt) {
		latency = int(now.Sub(s.shownAt).Milliseconds())
	}
	event := models.ReviewEvent{
		ItemID:            updated.ID,
		UserID:            s.UserID,
		Rating:            rating,
		Interval:          updated.Interval,
		EaseFactor:        updated.EaseFactor,
		ReviewedAt:        now,
		ResponseLatencyMS: latency,
	}

	if err := s.store.RecordReview(updated, event); err != nil {
		return models.Item{}, fmt.Errorf("failed to record review: %w", err)
	}

	s.Answered++
	if entry.IsNew {
		s.NewSeen++
	}
	if rating == models.Again {
		s.Lapsed++
		s.queue = Reinsert(s.queue, s.pos, updated, s.rng)
	}
	s.pos++
	s.shownAt = time.Time{}
	return updated, nil
}
