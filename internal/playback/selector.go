package playback

import (
	"sort"
	"time"

	"github.com/helios-signage/helios/internal/model"
)

// Source is the read contract the engine consumes from the store.
type Source interface {
	// ListValidSchedulesForInstant returns schedules whose time window
	// covers now, with Rule and Slideshow (and its slides) loaded.
	ListValidSchedulesForInstant(now time.Time) ([]model.Schedule, error)
	// ListEntityVersions returns the id/updated-at projection for a
	// watched entity class.
	ListEntityVersions(class string) ([]model.EntityVersion, error)
}

// SelectActive returns the schedules valid at now, ascending by start time.
// Recurring candidates are filtered through Applies using their own start
// date as the anchor; a recurring schedule without a rule is dropped. The
// selection is stateless and recomputed on every tick.
func SelectActive(src Source, now time.Time) ([]model.Schedule, error) {
	candidates, err := src.ListValidSchedulesForInstant(now)
	if err != nil {
		return nil, err
	}

	active := make([]model.Schedule, 0, len(candidates))
	for _, s := range candidates {
		if s.Recurring {
			if s.Rule == nil || !Applies(s.Rule, s.StartDate, now) {
				continue
			}
		}
		active = append(active, s)
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StartTime < active[j].StartTime
	})
	return active, nil
}
