package playback

import (
	"encoding/json"
	"time"
)

// ChainInfo tells viewers where the active slideshow sits in the chained
// program, for "show 2 of 3" affordances.
type ChainInfo struct {
	Index     int   `json:"index"`
	Total     int   `json:"total"`
	Durations []int `json:"durations"`
}

// CurrentSlideView is the single materialized "what's on screen now" value.
// It is never persisted; each resolution recomputes it from current truth.
type CurrentSlideView struct {
	ScheduleID    int             `json:"schedule_id"`
	ScheduleTitle string          `json:"schedule_title"`
	SlideshowID   int             `json:"slideshow_id"`
	SlideshowName string          `json:"slideshow_name"`
	SlideID       int             `json:"slide_id"`
	SlidePosition int             `json:"slide_position"`
	SlideDuration int             `json:"slide_duration"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	Media         any             `json:"media,omitempty"`
	Elapsed       int             `json:"elapsed"`
	Remaining     int             `json:"remaining"`
	Chain         ChainInfo       `json:"chain"`
	ComputedAt    time.Time       `json:"computed_at"`
}

// Resolve computes the current slide view at now, or (nil, nil) when nothing
// is scheduled or nothing scheduled is playable. The computation is
// stateless; calling it twice with the same now and data yields the same
// view.
func Resolve(src Source, now time.Time) (*CurrentSlideView, error) {
	active, err := SelectActive(src, now)
	if err != nil {
		return nil, err
	}

	chain := ResolveChain(active, now)
	if chain == nil {
		return nil, nil
	}

	schedule := active[chain.Index]
	slot := ResolveSlide(schedule.Slideshow, chain.Offset)
	if slot == nil {
		return nil, nil
	}

	return &CurrentSlideView{
		ScheduleID:    schedule.ID,
		ScheduleTitle: schedule.Title,
		SlideshowID:   schedule.Slideshow.ID,
		SlideshowName: schedule.Slideshow.Name,
		SlideID:       slot.Slide.ID,
		SlidePosition: slot.Slide.Position,
		SlideDuration: slot.Slide.Duration,
		Payload:       slot.Slide.Payload,
		Media:         slot.Slide.Media,
		Elapsed:       slot.Elapsed,
		Remaining:     slot.Remaining,
		Chain: ChainInfo{
			Index:     chain.Index,
			Total:     len(active),
			Durations: chain.Durations,
		},
		ComputedAt: now,
	}, nil
}
