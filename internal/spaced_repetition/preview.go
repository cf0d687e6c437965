package spaced_repetition

import (
	"fmt"
	"math"
	"time"

	"github.com/example/clozebot/pkg/models"
)

// NextIntervals computes, for each of the four ratings, how long the item
// would wait if rated that way right now. Each rating is applied to a copy;
// the input item is never modified.
func NextIntervals(item models.Item, cfg models.Config, now time.Time) map[models.Rating]time.Duration {
	out := make(map[models.Rating]time.Duration, 4)
	for _, r := range models.AllRatings() {
		next := Schedule(item, r, cfg, now)
		out[r] = next.NextReview.Sub(now)
	}
	return out
}

// FormatInterval renders a delay as a compact human string: "<1m", "Nm",
// "Nh", "Nd", "Nmo" or "N.Xy". Rounding is to the nearest integer except
// for years, which keep one decimal.
func FormatInterval(d time.Duration) string {
	if d < time.Minute {
		return "<1m"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(math.Round(d.Minutes())))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(math.Round(d.Hours())))
	}
	days := d.Hours() / 24
	if days < 30 {
		return fmt.Sprintf("%dd", int(math.Round(days)))
	}
	if days < 365 {
		return fmt.Sprintf("%dmo", int(math.Round(days/30)))
	}
	return fmt.Sprintf("%.1fy", days/365)
}
