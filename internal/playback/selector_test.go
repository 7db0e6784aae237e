package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-signage/helios/internal/model"
)

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

func TestSelectActiveDropsRecurringWithoutRule(t *testing.T) {
	src := &fakeSource{schedules: []model.Schedule{
		{ID: 1, Recurring: true, StartTime: "09:00:00"},
		{ID: 2, Recurring: false, StartTime: "10:00:00"},
	}}

	active, err := SelectActive(src, at("10:30:00"))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, 2, active[0].ID)
}

func TestSelectActiveFiltersWeekdaySet(t *testing.T) {
	// 2025-06-17 is a Tuesday; Mon/Wed/Fri rule excludes it
	rule := &model.RecurrenceRule{Type: model.RecurWeekly, DaysOfWeek: "1,3,5"}
	src := &fakeSource{schedules: []model.Schedule{
		{ID: 1, Recurring: true, Rule: rule, StartDate: date(2025, time.January, 6), StartTime: "08:00:00"},
	}}

	tuesday := time.Date(2025, time.June, 17, 9, 0, 0, 0, time.UTC)
	active, err := SelectActive(src, tuesday)
	require.NoError(t, err)
	assert.Empty(t, active)

	wednesday := tuesday.AddDate(0, 0, 1)
	active, err = SelectActive(src, wednesday)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestSelectActiveOrdersByStartTime(t *testing.T) {
	src := &fakeSource{schedules: []model.Schedule{
		{ID: 1, StartTime: "13:00:00"},
		{ID: 2, StartTime: "08:30:00"},
		{ID: 3, StartTime: "09:15:00"},
	}}

	active, err := SelectActive(src, at("14:00:00"))
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, []int{active[0].ID, active[1].ID, active[2].ID}, []int{2, 3, 1})
}

func TestSelectActivePropagatesStoreErrors(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}

	_, err := SelectActive(src, at("09:00:00"))
	assert.Error(t, err)
}

func TestResolveNothingScheduled(t *testing.T) {
	view, err := Resolve(&fakeSource{}, at("09:00:00"))
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestResolveIsIdempotent(t *testing.T) {
	src := &fakeSource{schedules: []model.Schedule{
		schedule(1, "09:00:00", show(1, 5, 5)),
		schedule(2, "09:30:00", show(2, 20)),
	}}
	now := at("09:00:07")

	first, err := Resolve(src, now)
	require.NoError(t, err)
	second, err := Resolve(src, now)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveMorningScenario(t *testing.T) {
	morning := show(1, 5, 5)
	morning.Name = "Morning"
	src := &fakeSource{schedules: []model.Schedule{schedule(1, "09:00:00", morning)}}

	view, err := Resolve(src, at("09:00:07"))
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, 102, view.SlideID)
	assert.Equal(t, 2, view.Elapsed)
	assert.Equal(t, 3, view.Remaining)
	assert.Equal(t, "Morning", view.SlideshowName)
	assert.Equal(t, 0, view.Chain.Index)
	assert.Equal(t, 1, view.Chain.Total)
}

func TestResolveChainMetadata(t *testing.T) {
	src := &fakeSource{schedules: []model.Schedule{
		schedule(1, "09:00:00", show(1, 10)),
		schedule(2, "09:10:00", show(2, 20)),
	}}

	view, err := Resolve(src, at("09:00:15"))
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, 1, view.Chain.Index)
	assert.Equal(t, 2, view.Chain.Total)
	assert.Equal(t, []int{10, 20}, view.Chain.Durations)
}
