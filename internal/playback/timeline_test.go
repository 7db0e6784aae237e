package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-signage/helios/internal/model"
)

func show(id int, durations ...int) *model.Slideshow {
	s := &model.Slideshow{ID: id, Name: "show"}
	for i, d := range durations {
		s.Slides = append(s.Slides, model.Slide{
			ID:          id*100 + i + 1,
			SlideshowID: id,
			Position:    i,
			Duration:    d,
		})
	}
	return s
}

func schedule(id int, start string, ss *model.Slideshow) model.Schedule {
	return model.Schedule{ID: id, Title: "sched", StartTime: start, Slideshow: ss}
}

func at(clock string) time.Time {
	tm, err := time.Parse("15:04:05", clock)
	if err != nil {
		panic(err)
	}
	return time.Date(2025, time.June, 16, tm.Hour(), tm.Minute(), tm.Second(), 0, time.UTC)
}

func TestResolveChainEmpty(t *testing.T) {
	assert.Nil(t, ResolveChain(nil, at("09:00:00")))
	assert.Nil(t, ResolveChain([]model.Schedule{}, at("09:00:00")))
}

func TestResolveChainAllZeroDurations(t *testing.T) {
	candidates := []model.Schedule{
		schedule(1, "09:00:00", show(1, 0, 0)),
		schedule(2, "10:00:00", show(2)),
	}
	assert.Nil(t, ResolveChain(candidates, at("09:00:30")))
}

func TestResolveChainWithinFirst(t *testing.T) {
	candidates := []model.Schedule{
		schedule(1, "09:00:00", show(1, 5, 5)),
		schedule(2, "09:00:00", show(2, 20)),
	}

	pos := ResolveChain(candidates, at("09:00:07"))
	require.NotNil(t, pos)
	assert.Equal(t, 0, pos.Index)
	assert.Equal(t, 7, pos.Offset)
	assert.Equal(t, []int{10, 20}, pos.Durations)
}

func TestResolveChainSecondCandidate(t *testing.T) {
	candidates := []model.Schedule{
		schedule(1, "09:00:00", show(1, 5, 5)),
		schedule(2, "12:00:00", show(2, 20)),
	}

	// candidates chain back to back from the first start regardless of
	// the second one's own declared start
	pos := ResolveChain(candidates, at("09:00:15"))
	require.NotNil(t, pos)
	assert.Equal(t, 1, pos.Index)
	assert.Equal(t, 5, pos.Offset)
}

func TestResolveChainWraparound(t *testing.T) {
	candidates := []model.Schedule{
		schedule(1, "09:00:00", show(1, 10)),
		schedule(2, "09:05:00", show(2, 20)),
	}

	// 35s into a 30s chain is the same spot as 5s in
	got35 := ResolveChain(candidates, at("09:00:35"))
	got5 := ResolveChain(candidates, at("09:00:05"))
	require.NotNil(t, got35)
	require.NotNil(t, got5)
	assert.Equal(t, got5.Index, got35.Index)
	assert.Equal(t, got5.Offset, got35.Offset)
}

func TestResolveChainSkipsZeroDurationCandidates(t *testing.T) {
	candidates := []model.Schedule{
		schedule(1, "09:00:00", show(1, 10)),
		schedule(2, "09:00:00", show(2)),      // empty, keeps its ordinal slot
		schedule(3, "09:00:00", show(3, 10)),
	}

	pos := ResolveChain(candidates, at("09:00:15"))
	require.NotNil(t, pos)
	assert.Equal(t, 2, pos.Index)
	assert.Equal(t, 5, pos.Offset)
	assert.Equal(t, []int{10, 0, 10}, pos.Durations)
}

func TestResolveChainAnchorIsMinuteGranular(t *testing.T) {
	candidates := []model.Schedule{
		schedule(1, "09:00:40", show(1, 60)),
	}

	// the anchor drops the start time's seconds; elapsed at 09:00:50 is
	// 50s, not 10s
	pos := ResolveChain(candidates, at("09:00:50"))
	require.NotNil(t, pos)
	assert.Equal(t, 50, pos.Offset)
}

func TestResolveSlideMorningScenario(t *testing.T) {
	morning := show(1, 5, 5)

	slot := ResolveSlide(morning, 7)
	require.NotNil(t, slot)
	assert.Equal(t, 102, slot.Slide.ID)
	assert.Equal(t, 2, slot.Elapsed)
	assert.Equal(t, 3, slot.Remaining)
}

func TestResolveSlideWrapsCycle(t *testing.T) {
	s := show(1, 5, 5)

	slot := ResolveSlide(s, 13)
	require.NotNil(t, slot)
	assert.Equal(t, 101, slot.Slide.ID)
	assert.Equal(t, 3, slot.Elapsed)
}

func TestResolveSlideZeroDurationSafety(t *testing.T) {
	assert.Nil(t, ResolveSlide(nil, 5))
	assert.Nil(t, ResolveSlide(show(1), 5))
	assert.Nil(t, ResolveSlide(show(1, 0, 0, 0), 5))
}

func TestResolveSlideSkipsZeroDurationSlides(t *testing.T) {
	s := show(1, 0, 5, 5)

	slot := ResolveSlide(s, 0)
	require.NotNil(t, slot)
	assert.Equal(t, 102, slot.Slide.ID)
	assert.Equal(t, 0, slot.Elapsed)
	assert.Equal(t, 5, slot.Remaining)
}

func TestResolveSlideHonorsPositionOrder(t *testing.T) {
	s := &model.Slideshow{ID: 1, Slides: []model.Slide{
		{ID: 2, Position: 5, Duration: 5},
		{ID: 1, Position: 2, Duration: 5},
	}}

	slot := ResolveSlide(s, 1)
	require.NotNil(t, slot)
	assert.Equal(t, 1, slot.Slide.ID)
}
