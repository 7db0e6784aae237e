package playback

import (
	"fmt"
	"time"

	"github.com/helios-signage/helios/internal/model"
)

// ChainPosition locates "now" inside the virtual timeline formed by chaining
// every active schedule's slideshow back to back, starting at the first
// schedule's start time and looping indefinitely.
type ChainPosition struct {
	// Index of the active candidate in selection order.
	Index int
	// Offset in seconds into the active candidate's slideshow.
	Offset int
	// Durations holds each candidate's total slideshow duration in
	// seconds, in selection order. Zero entries occupy their ordinal
	// position but contribute no interval.
	Durations []int
}

// SlideshowDuration is the derived total of a slideshow's slide durations.
func SlideshowDuration(show *model.Slideshow) int {
	if show == nil {
		return 0
	}
	total := 0
	for _, s := range show.Slides {
		total += s.Duration
	}
	return total
}

// ResolveChain chains candidates into one timeline and locates now in it.
// Returns nil when there are no candidates or every slideshow is empty.
//
// Elapsed time is measured from the first candidate's start time on today's
// clock, at minute granularity for the anchor, per the product's chaining
// rule: schedules placed back to back play as one continuous program with
// no blank gaps, regardless of their own declared start times beyond the
// first.
func ResolveChain(candidates []model.Schedule, now time.Time) *ChainPosition {
	if len(candidates) == 0 {
		return nil
	}

	anchorMin, err := clockMinutes(candidates[0].StartTime)
	if err != nil {
		return nil
	}

	durations := make([]int, len(candidates))
	total := 0
	for i := range candidates {
		durations[i] = SlideshowDuration(candidates[i].Slideshow)
		total += durations[i]
	}
	if total == 0 {
		return nil
	}

	elapsed := (now.Hour()*60+now.Minute()-anchorMin)*60 + now.Second()
	pos := elapsed % total
	if pos < 0 {
		pos += total
	}

	running := 0
	for i, d := range durations {
		if d == 0 {
			continue
		}
		if pos < running+d {
			return &ChainPosition{Index: i, Offset: pos - running, Durations: durations}
		}
		running += d
	}
	return nil
}

// clockMinutes parses "HH:MM:SS" (or "HH:MM") into minutes since midnight.
func clockMinutes(clock string) (int, error) {
	var h, m, s int
	if _, err := fmt.Sscanf(clock, "%d:%d:%d", &h, &m, &s); err != nil {
		if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
			return 0, err
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock out of range: %q", clock)
	}
	return h*60 + m, nil
}
