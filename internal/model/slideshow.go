package model

import (
	"encoding/json"
	"time"
)

type Slideshow struct {
	ID        int       `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	CreatedBy int       `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	Slides    []Slide   `db:"-"          json:"slides,omitempty"`
}

// Slide duration is in whole seconds. Payload is whatever the canvas editor
// saved; the server never looks inside it.
type Slide struct {
	ID          int             `db:"id"           json:"id"`
	SlideshowID int             `db:"slideshow_id" json:"slideshow_id"`
	Position    int             `db:"position"     json:"position"`
	Duration    int             `db:"duration"     json:"duration"`
	Payload     json.RawMessage `db:"payload"      json:"payload,omitempty"`
	CreatedAt   time.Time       `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"   json:"updated_at"`
	Media       []Media         `db:"-"            json:"media,omitempty"`
}

type Media struct {
	ID        int       `db:"id"         json:"id"`
	SlideID   int       `db:"slide_id"   json:"slide_id"`
	Name      string    `db:"name"       json:"name"`
	Type      string    `db:"type"       json:"type"`
	URL       string    `db:"url"        json:"url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
