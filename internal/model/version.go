package model

import "time"

// Watched entity classes for content-change detection.
const (
	ClassSlides     = "slides"
	ClassSlideshows = "slideshows"
	ClassIndicators = "indicators"
)

// EntityVersion is the lightweight projection the change detector polls:
// just an id and the last mutation timestamp. ParentID is set for slides
// (the owning slideshow) and nil otherwise.
type EntityVersion struct {
	ID        int       `db:"id" json:"id"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	ParentID  *int      `db:"parent_id" json:"parent_id,omitempty"`
}

// Indicator rows come from the safety-indicator subsystem. The engine only
// watches their timestamps; the payload is opaque here.
type Indicator struct {
	ID        int       `db:"id"         json:"id"`
	Label     string    `db:"label"      json:"label"`
	State     string    `db:"state"      json:"state"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
