package playback

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/helios-signage/helios/internal/model"
)

// ChangeSet is the outcome of one detection tick.
type ChangeSet struct {
	Changed bool
	// SlideshowIDs are the slideshows whose description viewers should
	// invalidate: owners of changed slides plus changed slideshows
	// themselves. Indicator changes flip Changed without contributing ids.
	SlideshowIDs []int
}

// versionEntry is one remembered row: its last mutation timestamp plus, for
// slides, the owning slideshow. Keeping the parent here lets a deletion still
// name the slideshow it affected after the row itself is gone.
type versionEntry struct {
	updatedAt time.Time
	parentID  *int
}

// Detector keeps an in-memory id -> versionEntry map per watched entity
// class and diffs it against a fresh projection each tick. The first
// successful tick only primes the maps. After diffing, each map is replaced
// wholesale by the fresh projection, which keeps the detector idempotent and
// self-healing after transient read errors.
//
// State lives for the process only; there is no subscription to the store,
// just polling.
type Detector struct {
	src       Source
	classes   []string
	snapshots map[string]map[int]versionEntry
	primed    bool
}

func NewDetector(src Source, classes ...string) *Detector {
	if len(classes) == 0 {
		classes = []string{model.ClassSlides, model.ClassSlideshows, model.ClassIndicators}
	}
	return &Detector{
		src:       src,
		classes:   classes,
		snapshots: make(map[string]map[int]versionEntry),
	}
}

// Tick fetches every watched class, diffs against the stored snapshots and
// replaces them. A read failure on any class leaves all snapshots untouched
// and reports no changes; the next tick simply tries again.
func (d *Detector) Tick() (ChangeSet, error) {
	fresh := make(map[string][]model.EntityVersion, len(d.classes))
	for _, class := range d.classes {
		rows, err := d.src.ListEntityVersions(class)
		if err != nil {
			log.Error().Err(err).Str("class", class).Msg("content change scan failed")
			return ChangeSet{}, err
		}
		fresh[class] = rows
	}

	var cs ChangeSet
	affected := make(map[int]struct{})

	if d.primed {
		for _, class := range d.classes {
			d.diffClass(class, fresh[class], &cs, affected)
		}
	}

	for _, class := range d.classes {
		next := make(map[int]versionEntry, len(fresh[class]))
		for _, v := range fresh[class] {
			next[v.ID] = versionEntry{updatedAt: v.UpdatedAt, parentID: v.ParentID}
		}
		d.snapshots[class] = next
	}
	d.primed = true

	for id := range affected {
		cs.SlideshowIDs = append(cs.SlideshowIDs, id)
	}
	return cs, nil
}

func (d *Detector) diffClass(class string, rows []model.EntityVersion, cs *ChangeSet, affected map[int]struct{}) {
	prev := d.snapshots[class]
	seen := make(map[int]struct{}, len(rows))

	for _, v := range rows {
		seen[v.ID] = struct{}{}
		entry, existed := prev[v.ID]
		if existed && entry.updatedAt.Equal(v.UpdatedAt) {
			continue
		}
		// created or updated
		cs.Changed = true
		d.markAffected(class, v, affected)
	}
	for id, entry := range prev {
		if _, ok := seen[id]; !ok {
			// deleted; the remembered entry still knows the parent
			cs.Changed = true
			switch class {
			case model.ClassSlides:
				if entry.parentID != nil {
					affected[*entry.parentID] = struct{}{}
				}
			case model.ClassSlideshows:
				affected[id] = struct{}{}
			}
		}
	}
}

func (d *Detector) markAffected(class string, v model.EntityVersion, affected map[int]struct{}) {
	switch class {
	case model.ClassSlides:
		if v.ParentID != nil {
			affected[*v.ParentID] = struct{}{}
		}
	case model.ClassSlideshows:
		affected[v.ID] = struct{}{}
	}
}
