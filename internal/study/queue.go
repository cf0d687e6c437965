// Package study builds the ordered queue of items for one study session
// and manages mid-session reinsertion of forgotten items. Everything here
// operates on caller-owned in-memory state; nothing is persisted.
package study

import (
	"math/rand"
	"sort"

	"github.com/example/clozebot/pkg/models"
)

// newCardGap is how many due items are shown between new-item introductions.
const newCardGap = 10

// Reinsertion bounds for forgotten items: the item reappears after at
// least reinsertMin and at most reinsertMax further cards, tightened when
// fewer cards remain.
const (
	reinsertMin = 8
	reinsertMax = 12
)

// BuildQueue assembles the session queue: due items sorted most-overdue
// first, with up to newLimit new items spliced in after every tenth due
// item. New items keep their supplied (creation) order; any left over once
// the due run ends are appended at the back.
func BuildQueue(due, fresh []models.Item, newLimit int) []models.StudyQueueEntry {
	sorted := make([]models.Item, len(due))
	copy(sorted, due)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].NextReview.Before(sorted[j].NextReview)
	})

	if newLimit < 0 {
		newLimit = 0
	}
	if len(fresh) > newLimit {
		fresh = fresh[:newLimit]
	}

	queue := make([]models.StudyQueueEntry, 0, len(sorted)+len(fresh))
	next := 0
	for i, it := range sorted {
		queue = append(queue, models.StudyQueueEntry{Item: it})
		if (i+1)%newCardGap == 0 && next < len(fresh) {
			queue = append(queue, newEntry(fresh[next]))
			next++
		}
	}
	for ; next < len(fresh); next++ {
		queue = append(queue, newEntry(fresh[next]))
	}
	return queue
}

func newEntry(it models.Item) models.StudyQueueEntry {
	step := 0
	it.StepIndex = &step
	return models.StudyQueueEntry{Item: it, IsNew: true}
}

// Reinsert splices a just-forgotten item back into the queue after the
// current position. The offset is drawn uniformly from the reinsertion
// bounds, clamped to what remains, so the item resurfaces soon but not
// immediately. The returned slice replaces the caller's queue.
func Reinsert(queue []models.StudyQueueEntry, current int, item models.Item, rng *rand.Rand) []models.StudyQueueEntry {
	remaining := len(queue) - current - 1
	if remaining < 0 {
		remaining = 0
	}
	lo := reinsertMin
	if remaining < lo {
		lo = remaining
	}
	hi := reinsertMax
	if remaining < hi {
		hi = remaining
	}
	offset := lo
	if hi > lo {
		offset = lo + rng.Intn(hi-lo+1)
	}

	idx := current + 1 + offset
	if idx > len(queue) {
		idx = len(queue)
	}

	entry := models.StudyQueueEntry{Item: item, IsNew: false}
	out := make([]models.StudyQueueEntry, 0, len(queue)+1)
	out = append(out, queue[:idx]...)
	out = append(out, entry)
	out = append(out, queue[idx:]...)
	return out
}
