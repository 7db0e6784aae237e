// exposes a Store interface that is passed to API calls and to the playback
// engine, so both can run against fakes in tests.
package db

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/helios-signage/helios/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// schedule functions
	CreateSchedule(title string, slideshowID int, startDate time.Time, endDate *time.Time,
		startTime string, endTime *string, allDay, recurring bool,
		priority int, status string, createdBy int) (model.Schedule, error)
	GetSchedule(scheduleID int) (model.Schedule, error)
	ListSchedules(ownerID int) ([]model.Schedule, error)
	UpdateSchedule(scheduleID int, title *string, slideshowID *int,
		startDate, endDate *time.Time, startTime, endTime *string,
		allDay, recurring *bool, priority *int, status *string) error
	DeleteSchedule(scheduleID int) error
	UpsertRecurrenceRule(scheduleID int, ruleType, daysOfWeek string, until *time.Time, count *int) (model.RecurrenceRule, error)
	DeleteRecurrenceRule(scheduleID int) error

	// slideshow functions
	CreateSlideshow(name string, createdBy int) (model.Slideshow, error)
	GetSlideshowByID(id int) (model.Slideshow, error)
	ListSlideshows() ([]model.Slideshow, error)
	UpdateSlideshow(id int, name *string) error
	DeleteSlideshow(id int) error

	// slide functions
	CreateSlide(slideshowID, position, duration int, payload json.RawMessage) (model.Slide, error)
	GetSlideByID(id int) (model.Slide, error)
	UpdateSlide(id int, position, duration *int, payload json.RawMessage) error
	DeleteSlide(id int) error
	ReorderSlides(slideshowID int, orderedIDs []int) error

	// media functions
	CreateMedia(slideID int, name, mediaType, url string) (model.Media, error)
	DeleteMedia(id int) error

	// screen functions
	CreateScreen(name string, location *string, createdBy int) (model.Screen, error)
	GetScreenByID(id int) (model.Screen, error)
	GetScreenByDeviceID(deviceID string) (model.Screen, error)
	ListScreens() ([]model.Screen, error)
	UpdateScreen(id int, name, location *string) error
	DeleteScreen(id int) error
	PairScreen(id int, deviceID string) error

	// engine read contracts
	ListValidSchedulesForInstant(now time.Time) ([]model.Schedule, error)
	ListEntityVersions(class string) ([]model.EntityVersion, error)
	ListIndicators() ([]model.Indicator, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}

func (p *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}
func (p *pgStore) GetUserByEmail(email string) (*model.User, error) { return GetUserByEmail(email) }
func (p *pgStore) GetUserByID(id int) (*model.User, error)          { return GetUserByID(id) }
func (p *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (p *pgStore) CreateSchedule(title string, slideshowID int, startDate time.Time, endDate *time.Time,
	startTime string, endTime *string, allDay, recurring bool,
	priority int, status string, createdBy int) (model.Schedule, error) {
	return CreateSchedule(title, slideshowID, startDate, endDate, startTime, endTime,
		allDay, recurring, priority, status, createdBy)
}
func (p *pgStore) GetSchedule(scheduleID int) (model.Schedule, error) { return GetSchedule(scheduleID) }
func (p *pgStore) ListSchedules(ownerID int) ([]model.Schedule, error) {
	return ListSchedules(ownerID)
}
func (p *pgStore) UpdateSchedule(scheduleID int, title *string, slideshowID *int,
	startDate, endDate *time.Time, startTime, endTime *string,
	allDay, recurring *bool, priority *int, status *string) error {
	return UpdateSchedule(scheduleID, title, slideshowID, startDate, endDate, startTime, endTime,
		allDay, recurring, priority, status)
}
func (p *pgStore) DeleteSchedule(scheduleID int) error { return DeleteSchedule(scheduleID) }
func (p *pgStore) UpsertRecurrenceRule(scheduleID int, ruleType, daysOfWeek string, until *time.Time, count *int) (model.RecurrenceRule, error) {
	return UpsertRecurrenceRule(scheduleID, ruleType, daysOfWeek, until, count)
}
func (p *pgStore) DeleteRecurrenceRule(scheduleID int) error { return DeleteRecurrenceRule(scheduleID) }

func (p *pgStore) CreateSlideshow(name string, createdBy int) (model.Slideshow, error) {
	return CreateSlideshow(name, createdBy)
}
func (p *pgStore) GetSlideshowByID(id int) (model.Slideshow, error) { return GetSlideshowByID(id) }
func (p *pgStore) ListSlideshows() ([]model.Slideshow, error)       { return ListSlideshows() }
func (p *pgStore) UpdateSlideshow(id int, name *string) error       { return UpdateSlideshow(id, name) }
func (p *pgStore) DeleteSlideshow(id int) error                     { return DeleteSlideshow(id) }

func (p *pgStore) CreateSlide(slideshowID, position, duration int, payload json.RawMessage) (model.Slide, error) {
	return CreateSlide(slideshowID, position, duration, payload)
}
func (p *pgStore) GetSlideByID(id int) (model.Slide, error) { return GetSlideByID(id) }
func (p *pgStore) UpdateSlide(id int, position, duration *int, payload json.RawMessage) error {
	return UpdateSlide(id, position, duration, payload)
}
func (p *pgStore) DeleteSlide(id int) error { return DeleteSlide(id) }
func (p *pgStore) ReorderSlides(slideshowID int, orderedIDs []int) error {
	return ReorderSlides(slideshowID, orderedIDs)
}

func (p *pgStore) CreateMedia(slideID int, name, mediaType, url string) (model.Media, error) {
	return CreateMedia(slideID, name, mediaType, url)
}
func (p *pgStore) DeleteMedia(id int) error { return DeleteMedia(id) }

func (p *pgStore) CreateScreen(name string, location *string, createdBy int) (model.Screen, error) {
	return CreateScreen(name, location, createdBy)
}
func (p *pgStore) GetScreenByID(id int) (model.Screen, error) { return GetScreenByID(id) }
func (p *pgStore) GetScreenByDeviceID(deviceID string) (model.Screen, error) {
	return GetScreenByDeviceID(deviceID)
}
func (p *pgStore) ListScreens() ([]model.Screen, error)            { return ListScreens() }
func (p *pgStore) UpdateScreen(id int, name, location *string) error {
	return UpdateScreen(id, name, location)
}
func (p *pgStore) DeleteScreen(id int) error                { return DeleteScreen(id) }
func (p *pgStore) PairScreen(id int, deviceID string) error { return PairScreen(id, deviceID) }

func (p *pgStore) ListValidSchedulesForInstant(now time.Time) ([]model.Schedule, error) {
	return ListValidSchedulesForInstant(now)
}
func (p *pgStore) ListEntityVersions(class string) ([]model.EntityVersion, error) {
	return ListEntityVersions(class)
}
func (p *pgStore) ListIndicators() ([]model.Indicator, error) { return ListIndicators() }
