package packets

import "encoding/json"

type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Email string  `json:"email" binding:"required,email"`
	Name  *string `json:"name"`
}

type CreateScheduleRequest struct {
	Title       string  `json:"title" binding:"required"`
	SlideshowID int     `json:"slideshow_id" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate     *string `json:"end_date"`
	StartTime   string  `json:"start_time" binding:"required"` // HH:MM:SS
	EndTime     *string `json:"end_time"`
	AllDay      bool    `json:"all_day"`
	Recurring   bool    `json:"recurring"`
	Priority    int     `json:"priority"`
	Status      string  `json:"status"`

	Rule *RecurrenceRuleRequest `json:"rule"`
}

type UpdateScheduleRequest struct {
	Title       *string `json:"title"`
	SlideshowID *int    `json:"slideshow_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	AllDay      *bool   `json:"all_day"`
	Recurring   *bool   `json:"recurring"`
	Priority    *int    `json:"priority"`
	Status      *string `json:"status"`

	Rule *RecurrenceRuleRequest `json:"rule"`
}

type RecurrenceRuleRequest struct {
	Type       string  `json:"type" binding:"required"`
	DaysOfWeek string  `json:"days_of_week"`
	Until      *string `json:"until"` // YYYY-MM-DD
	Count      *int    `json:"count"`
}

type CreateSlideshowRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateSlideshowRequest struct {
	Name *string `json:"name"`
}

type CreateSlideRequest struct {
	Position int             `json:"position"`
	Duration int             `json:"duration" binding:"required,gt=0"`
	Payload  json.RawMessage `json:"payload"`
}

type UpdateSlideRequest struct {
	Position *int            `json:"position"`
	Duration *int            `json:"duration"`
	Payload  json.RawMessage `json:"payload"`
}

type ReorderSlidesRequest struct {
	SlideIDs []int `json:"slide_ids" binding:"required"`
}

type CreateScreenRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type UpdateScreenRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}
