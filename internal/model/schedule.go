package model

import "time"

// Recurrence rule types accepted by the playback engine. Anything else is
// treated as "never applies".
const (
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
	RecurYearly  = "yearly"
)

type Schedule struct {
	ID          int        `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	SlideshowID int        `db:"slideshow_id" json:"slideshow_id"`
	StartDate   time.Time  `db:"start_date" json:"start_date"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`
	StartTime   string     `db:"start_time" json:"start_time"`
	EndTime     *string    `db:"end_time" json:"end_time,omitempty"`
	AllDay      bool       `db:"all_day" json:"all_day"`
	Recurring   bool       `db:"recurring" json:"recurring"`
	Priority    int        `db:"priority" json:"priority"`
	Status      string     `db:"status" json:"status"`
	CreatedBy   int        `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	// loaded alongside the row when the engine asks for candidates
	Rule      *RecurrenceRule `db:"-" json:"rule,omitempty"`
	Slideshow *Slideshow      `db:"-" json:"slideshow,omitempty"`
}

// RecurrenceRule is owned by exactly one schedule. DaysOfWeek is a
// comma-separated list of weekday numbers (Sunday = 0); it only matters for
// weekly rules. Until and Count are stored for the authoring surface but the
// evaluator does not enforce them: a recurring schedule recurs indefinitely.
type RecurrenceRule struct {
	ID         int        `db:"id" json:"id"`
	ScheduleID int        `db:"schedule_id" json:"schedule_id"`
	Type       string     `db:"rule_type" json:"type"`
	DaysOfWeek string     `db:"days_of_week" json:"days_of_week"`
	Until      *time.Time `db:"until_date" json:"until,omitempty"`
	Count      *int       `db:"occurrence_count" json:"count,omitempty"`
}
