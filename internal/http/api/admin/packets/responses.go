package packets

import (
	"time"

	"github.com/helios-signage/helios/internal/model"
)

type TokenResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	ID    int     `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}

type ScheduleResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	SlideshowID int     `json:"slideshow_id"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	StartTime   string  `json:"start_time"`
	EndTime     *string `json:"end_time,omitempty"`
	AllDay      bool    `json:"all_day"`
	Recurring   bool    `json:"recurring"`
	Priority    int     `json:"priority"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`

	Rule *RecurrenceRuleResponse `json:"rule,omitempty"`
}

type RecurrenceRuleResponse struct {
	Type       string  `json:"type"`
	DaysOfWeek string  `json:"days_of_week,omitempty"`
	Until      *string `json:"until,omitempty"`
	Count      *int    `json:"count,omitempty"`
}

func NewScheduleResponse(s model.Schedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:          s.ID,
		Title:       s.Title,
		SlideshowID: s.SlideshowID,
		StartDate:   s.StartDate.Format("2006-01-02"),
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		AllDay:      s.AllDay,
		Recurring:   s.Recurring,
		Priority:    s.Priority,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
	if s.EndDate != nil {
		v := s.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	if s.Rule != nil {
		rule := RecurrenceRuleResponse{
			Type:       s.Rule.Type,
			DaysOfWeek: s.Rule.DaysOfWeek,
			Count:      s.Rule.Count,
		}
		if s.Rule.Until != nil {
			v := s.Rule.Until.Format("2006-01-02")
			rule.Until = &v
		}
		resp.Rule = &rule
	}
	return resp
}

type SlideshowResponse struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Duration  int             `json:"duration"`
	Slides    []model.Slide   `json:"slides"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

func NewSlideshowResponse(s model.Slideshow, duration int) SlideshowResponse {
	slides := s.Slides
	if slides == nil {
		slides = []model.Slide{}
	}
	return SlideshowResponse{
		ID:        s.ID,
		Name:      s.Name,
		Duration:  duration,
		Slides:    slides,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

type ScreenResponse struct {
	ID        int     `json:"id"`
	DeviceID  *string `json:"device_id,omitempty"`
	Name      string  `json:"name"`
	Location  *string `json:"location,omitempty"`
	Paired    bool    `json:"paired"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func NewScreenResponse(s model.Screen) ScreenResponse {
	return ScreenResponse{
		ID:        s.ID,
		DeviceID:  s.DeviceID,
		Name:      s.Name,
		Location:  s.Location,
		Paired:    s.Paired,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

type PairingCodeResponse struct {
	Code      string `json:"code"`
	ExpiresIn int    `json:"expires_in"`
}
