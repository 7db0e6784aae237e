package live

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-signage/helios/internal/model"
	"github.com/helios-signage/helios/internal/playback"
)

type fakeSink struct {
	mu        sync.Mutex
	broadcast [][]byte
	unicast   map[uuid.UUID][][]byte
}

func newFakeSink() *fakeSink {
	return &fakeSink{unicast: make(map[uuid.UUID][][]byte)}
}

func (f *fakeSink) Broadcast(data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcast = append(f.broadcast, data)
}

func (f *fakeSink) Send(id uuid.UUID, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unicast[id] = append(f.unicast[id], data)
}

func (f *fakeSink) broadcasts() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.broadcast...)
}

type fakeSource struct {
	schedules []model.Schedule
	versions  map[string][]model.EntityVersion
	err       error
}

func (f *fakeSource) ListValidSchedulesForInstant(now time.Time) ([]model.Schedule, error) {
	return f.schedules, f.err
}

func (f *fakeSource) ListEntityVersions(class string) ([]model.EntityVersion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.versions[class], nil
}

func tenSecondShow() *model.Slideshow {
	return &model.Slideshow{ID: 1, Name: "Lobby", Slides: []model.Slide{
		{ID: 11, SlideshowID: 1, Position: 0, Duration: 5},
		{ID: 12, SlideshowID: 1, Position: 1, Duration: 5},
	}}
}

func testCoordinator(src *fakeSource, sink *fakeSink, clock func() time.Time) *Coordinator {
	c := NewCoordinator(src, playback.NewDetector(src), sink, WithClock(clock))
	return c
}

func decode(t *testing.T, data []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func fixedClock(clock string) func() time.Time {
	tm, err := time.Parse("15:04:05", clock)
	if err != nil {
		panic(err)
	}
	at := time.Date(2025, time.June, 16, tm.Hour(), tm.Minute(), tm.Second(), 0, time.UTC)
	return func() time.Time { return at }
}

func TestSlideTickDedup(t *testing.T) {
	src := &fakeSource{schedules: []model.Schedule{
		{ID: 1, StartTime: "09:00:00", Slideshow: tenSecondShow()},
	}}
	sink := newFakeSink()
	c := testCoordinator(src, sink, fixedClock("09:00:02"))
	defer c.Close()

	c.slideTick(false)
	c.slideTick(false)

	require.Len(t, sink.broadcasts(), 1, "identical consecutive ticks must emit once")
	env := decode(t, sink.broadcasts()[0])
	assert.Equal(t, EventCurrentSlide, env.Type)
}

func TestSlideTickBroadcastsOnSlideChange(t *testing.T) {
	src := &fakeSource{schedules: []model.Schedule{
		{ID: 1, StartTime: "09:00:00", Slideshow: tenSecondShow()},
	}}
	sink := newFakeSink()
	now := fixedClock("09:00:02")()
	c := testCoordinator(src, sink, func() time.Time { return now })
	defer c.Close()

	c.slideTick(false)
	now = now.Add(5 * time.Second) // crosses into the second slide
	c.slideTick(false)

	require.Len(t, sink.broadcasts(), 2)
}

func TestSlideTickNothingScheduledBroadcastsOnce(t *testing.T) {
	src := &fakeSource{}
	sink := newFakeSink()
	c := testCoordinator(src, sink, fixedClock("09:00:00"))
	defer c.Close()

	c.slideTick(false)
	c.slideTick(false)
	c.slideTick(false)

	require.Len(t, sink.broadcasts(), 1, "entering the empty state broadcasts exactly once")
	env := decode(t, sink.broadcasts()[0])
	assert.Equal(t, EventCurrentSlide, env.Type)
	assert.Nil(t, env.Payload)
}

func TestSlideTickErrorRetainsState(t *testing.T) {
	src := &fakeSource{schedules: []model.Schedule{
		{ID: 1, StartTime: "09:00:00", Slideshow: tenSecondShow()},
	}}
	sink := newFakeSink()
	c := testCoordinator(src, sink, fixedClock("09:00:02"))
	defer c.Close()

	c.slideTick(false)
	src.err = errors.New("store down")
	c.slideTick(false)
	src.err = nil
	c.slideTick(false)

	// the failed tick sent nothing and did not reset the dedup state
	require.Len(t, sink.broadcasts(), 1)
}

func TestContentTickForcesBroadcast(t *testing.T) {
	src := &fakeSource{
		schedules: []model.Schedule{
			{ID: 1, StartTime: "09:00:00", Slideshow: tenSecondShow()},
		},
		versions: map[string][]model.EntityVersion{},
	}
	sink := newFakeSink()
	c := testCoordinator(src, sink, fixedClock("09:00:02"))
	defer c.Close()

	c.contentTick() // primes the detector, no changes yet
	c.slideTick(false)
	require.Len(t, sink.broadcasts(), 1)

	parent := 1
	src.versions[model.ClassSlides] = []model.EntityVersion{
		{ID: 11, UpdatedAt: time.Now(), ParentID: &parent},
	}
	c.contentTick()

	// contentUpdated notice plus a forced currentSlide despite the
	// unchanged active slide id
	all := sink.broadcasts()
	require.Len(t, all, 3)
	notice := decode(t, all[1])
	assert.Equal(t, EventContentUpdated, notice.Type)
	forced := decode(t, all[2])
	assert.Equal(t, EventCurrentSlide, forced.Type)
}

func TestContentTickQuietWhenUnchanged(t *testing.T) {
	src := &fakeSource{versions: map[string][]model.EntityVersion{
		model.ClassSlideshows: {{ID: 1, UpdatedAt: time.Unix(100, 0)}},
	}}
	sink := newFakeSink()
	c := testCoordinator(src, sink, fixedClock("09:00:00"))
	defer c.Close()

	c.contentTick()
	c.contentTick()

	assert.Empty(t, sink.broadcasts())
}

func TestUnicastDoesNotAffectDedup(t *testing.T) {
	src := &fakeSource{schedules: []model.Schedule{
		{ID: 1, StartTime: "09:00:00", Slideshow: tenSecondShow()},
	}}
	sink := newFakeSink()
	c := testCoordinator(src, sink, fixedClock("09:00:02"))
	defer c.Close()

	viewer := uuid.New()
	c.unicastCurrent(viewer)

	require.Len(t, sink.unicast[viewer], 1)
	assert.Empty(t, sink.broadcasts())

	// the broadcast path still counts as a fresh state
	c.slideTick(false)
	assert.Len(t, sink.broadcasts(), 1)
}

func TestStartStopLifecycle(t *testing.T) {
	src := &fakeSource{schedules: []model.Schedule{
		{ID: 1, StartTime: "09:00:00", Slideshow: tenSecondShow()},
	}}
	sink := newFakeSink()
	c := NewCoordinator(src, playback.NewDetector(src), sink,
		WithClock(fixedClock("09:00:02")),
		WithIntervals(5*time.Millisecond, time.Hour))
	defer c.Close()

	c.Start()
	assert.Eventually(t, func() bool {
		return len(sink.broadcasts()) >= 1
	}, time.Second, 5*time.Millisecond)

	c.Stop()
	time.Sleep(20 * time.Millisecond)
	n := len(sink.broadcasts())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, len(sink.broadcasts()), "no broadcasts after the last viewer leaves")
}
