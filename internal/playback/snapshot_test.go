package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-signage/helios/internal/model"
)

func intp(v int) *int { return &v }

func stamp(sec int) time.Time {
	return time.Date(2025, time.June, 16, 12, 0, sec, 0, time.UTC)
}

func newPrimedDetector(t *testing.T, src *fakeSource) *Detector {
	t.Helper()
	det := NewDetector(src)
	cs, err := det.Tick()
	require.NoError(t, err)
	assert.False(t, cs.Changed, "priming tick must not report changes")
	return det
}

func TestDetectorCreation(t *testing.T) {
	src := &fakeSource{versions: map[string][]model.EntityVersion{}}
	det := newPrimedDetector(t, src)

	src.versions[model.ClassSlides] = []model.EntityVersion{
		{ID: 1, UpdatedAt: stamp(0), ParentID: intp(7)},
	}

	cs, err := det.Tick()
	require.NoError(t, err)
	assert.True(t, cs.Changed)
	assert.Equal(t, []int{7}, cs.SlideshowIDs)

	// snapshot converged: same data again is quiet
	cs, err = det.Tick()
	require.NoError(t, err)
	assert.False(t, cs.Changed)
}

func TestDetectorUpdate(t *testing.T) {
	src := &fakeSource{versions: map[string][]model.EntityVersion{
		model.ClassSlideshows: {{ID: 3, UpdatedAt: stamp(0)}},
	}}
	det := newPrimedDetector(t, src)

	src.versions[model.ClassSlideshows] = []model.EntityVersion{{ID: 3, UpdatedAt: stamp(5)}}

	cs, err := det.Tick()
	require.NoError(t, err)
	assert.True(t, cs.Changed)
	assert.Equal(t, []int{3}, cs.SlideshowIDs)

	cs, err = det.Tick()
	require.NoError(t, err)
	assert.False(t, cs.Changed)
}

func TestDetectorDeletion(t *testing.T) {
	src := &fakeSource{versions: map[string][]model.EntityVersion{
		model.ClassSlideshows: {{ID: 3, UpdatedAt: stamp(0)}},
	}}
	det := newPrimedDetector(t, src)

	src.versions[model.ClassSlideshows] = nil

	cs, err := det.Tick()
	require.NoError(t, err)
	assert.True(t, cs.Changed)
	assert.Equal(t, []int{3}, cs.SlideshowIDs)

	cs, err = det.Tick()
	require.NoError(t, err)
	assert.False(t, cs.Changed)
}

func TestDetectorSlideDeletionNamesOwningSlideshow(t *testing.T) {
	src := &fakeSource{versions: map[string][]model.EntityVersion{
		model.ClassSlides: {{ID: 11, UpdatedAt: stamp(0), ParentID: intp(7)}},
	}}
	det := newPrimedDetector(t, src)

	src.versions[model.ClassSlides] = nil

	cs, err := det.Tick()
	require.NoError(t, err)
	assert.True(t, cs.Changed)
	assert.Equal(t, []int{7}, cs.SlideshowIDs)

	cs, err = det.Tick()
	require.NoError(t, err)
	assert.False(t, cs.Changed)
}

func TestDetectorIndicatorChangesCarryNoSlideshowIDs(t *testing.T) {
	src := &fakeSource{versions: map[string][]model.EntityVersion{
		model.ClassIndicators: {{ID: 9, UpdatedAt: stamp(0)}},
	}}
	det := newPrimedDetector(t, src)

	src.versions[model.ClassIndicators] = []model.EntityVersion{{ID: 9, UpdatedAt: stamp(8)}}

	cs, err := det.Tick()
	require.NoError(t, err)
	assert.True(t, cs.Changed)
	assert.Empty(t, cs.SlideshowIDs)
}

func TestDetectorReadFailureLeavesSnapshotUntouched(t *testing.T) {
	src := &fakeSource{versions: map[string][]model.EntityVersion{
		model.ClassSlideshows: {{ID: 3, UpdatedAt: stamp(0)}},
	}}
	det := newPrimedDetector(t, src)

	src.versions[model.ClassSlideshows] = []model.EntityVersion{{ID: 3, UpdatedAt: stamp(5)}}
	src.err = errors.New("timeout")

	_, err := det.Tick()
	require.Error(t, err)

	// the failed tick did not consume the pending change
	src.err = nil
	cs, err := det.Tick()
	require.NoError(t, err)
	assert.True(t, cs.Changed)
}
