package playback

import (
	"sort"

	"github.com/helios-signage/helios/internal/model"
)

// SlidePosition is the active slide within one slideshow plus how far into
// it playback currently is.
type SlidePosition struct {
	Slide     model.Slide
	Elapsed   int
	Remaining int
}

// ResolveSlide finds the slide active at offset seconds into a looping
// slideshow. Slides are walked in position order; zero-duration slides
// contribute no interval. Returns nil when the slideshow has no playable
// time at all.
func ResolveSlide(show *model.Slideshow, offset int) *SlidePosition {
	if show == nil || len(show.Slides) == 0 {
		return nil
	}

	slides := make([]model.Slide, len(show.Slides))
	copy(slides, show.Slides)
	sort.SliceStable(slides, func(i, j int) bool {
		return slides[i].Position < slides[j].Position
	})

	cycle := 0
	for _, s := range slides {
		cycle += s.Duration
	}
	if cycle == 0 {
		return nil
	}

	pos := offset % cycle
	if pos < 0 {
		pos += cycle
	}

	running := 0
	for _, s := range slides {
		if s.Duration == 0 {
			continue
		}
		if pos < running+s.Duration {
			elapsed := pos - running
			if elapsed < 0 {
				elapsed = 0
			}
			remaining := s.Duration - elapsed
			if remaining < 0 {
				remaining = 0
			}
			return &SlidePosition{Slide: s, Elapsed: elapsed, Remaining: remaining}
		}
		running += s.Duration
	}
	return nil
}
