package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/helios-signage/helios/internal/model"
)

const scheduleColumns = `
	id, title, slideshow_id, start_date, end_date,
	start_time::text AS start_time, end_time::text AS end_time,
	all_day, recurring, priority, status, created_by, created_at, updated_at`

func CreateSchedule(
	title string,
	slideshowID int,
	startDate time.Time,
	endDate *time.Time,
	startTime string,
	endTime *string,
	allDay, recurring bool,
	priority int,
	status string,
	createdBy int,
) (model.Schedule, error) {
	var s model.Schedule
	const q = `
	INSERT INTO schedules
	  (title, slideshow_id, start_date, end_date, start_time, end_time,
	   all_day, recurring, priority, status, created_by, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5::time,$6::time,$7,$8,$9,$10,$11,now(),now())
	RETURNING ` + scheduleColumns + `;`
	if err := DB.Get(&s, q, title, slideshowID, startDate, endDate, startTime, endTime,
		allDay, recurring, priority, status, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateSchedule failed")
		return model.Schedule{}, err
	}
	return s, nil
}

func GetSchedule(scheduleID int) (model.Schedule, error) {
	var s model.Schedule
	err := DB.Get(&s, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1;`, scheduleID)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("GetSchedule failed")
		return model.Schedule{}, err
	}
	rule, err := GetRecurrenceRule(scheduleID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model.Schedule{}, err
	}
	s.Rule = rule
	return s, nil
}

func ListSchedules(ownerID int) ([]model.Schedule, error) {
	var out []model.Schedule
	const q = `SELECT ` + scheduleColumns + ` FROM schedules WHERE created_by = $1 ORDER BY id;`
	if err := DB.Select(&out, q, ownerID); err != nil {
		log.Error().Err(err).Msg("ListSchedules failed")
		return nil, err
	}
	return out, nil
}

func UpdateSchedule(
	scheduleID int,
	title *string,
	slideshowID *int,
	startDate, endDate *time.Time,
	startTime, endTime *string,
	allDay, recurring *bool,
	priority *int,
	status *string,
) error {
	_, err := DB.Exec(`
	UPDATE schedules
	   SET title        = COALESCE($2, title),
	       slideshow_id = COALESCE($3, slideshow_id),
	       start_date   = COALESCE($4, start_date),
	       end_date     = COALESCE($5, end_date),
	       start_time   = COALESCE($6::time, start_time),
	       end_time     = COALESCE($7::time, end_time),
	       all_day      = COALESCE($8, all_day),
	       recurring    = COALESCE($9, recurring),
	       priority     = COALESCE($10, priority),
	       status       = COALESCE($11, status),
	       updated_at   = now()
	 WHERE id = $1;`,
		scheduleID, title, slideshowID, startDate, endDate, startTime, endTime,
		allDay, recurring, priority, status)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("UpdateSchedule failed")
	}
	return err
}

func DeleteSchedule(scheduleID int) error {
	_, err := DB.Exec(`DELETE FROM schedules WHERE id = $1;`, scheduleID)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("DeleteSchedule failed")
	}
	return err
}

func GetRecurrenceRule(scheduleID int) (*model.RecurrenceRule, error) {
	var r model.RecurrenceRule
	const q = `
	SELECT id, schedule_id, rule_type, days_of_week, until_date, occurrence_count
	  FROM recurrence_rules
	 WHERE schedule_id = $1;`
	if err := DB.Get(&r, q, scheduleID); err != nil {
		return nil, err
	}
	return &r, nil
}

func UpsertRecurrenceRule(scheduleID int, ruleType, daysOfWeek string, until *time.Time, count *int) (model.RecurrenceRule, error) {
	var r model.RecurrenceRule
	const q = `
	INSERT INTO recurrence_rules (schedule_id, rule_type, days_of_week, until_date, occurrence_count)
	VALUES ($1,$2,$3,$4,$5)
	ON CONFLICT (schedule_id) DO UPDATE
	   SET rule_type = EXCLUDED.rule_type,
	       days_of_week = EXCLUDED.days_of_week,
	       until_date = EXCLUDED.until_date,
	       occurrence_count = EXCLUDED.occurrence_count
	RETURNING id, schedule_id, rule_type, days_of_week, until_date, occurrence_count;`
	if err := DB.Get(&r, q, scheduleID, ruleType, daysOfWeek, until, count); err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("UpsertRecurrenceRule failed")
		return model.RecurrenceRule{}, err
	}
	return r, nil
}

func DeleteRecurrenceRule(scheduleID int) error {
	_, err := DB.Exec(`DELETE FROM recurrence_rules WHERE schedule_id = $1;`, scheduleID)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("DeleteRecurrenceRule failed")
	}
	return err
}

// ListValidSchedulesForInstant returns every schedule whose time window
// covers the given instant, with recurrence rule and slideshow (slides and
// media included) loaded. Recurrence applicability itself is decided by the
// playback engine, not here.
func ListValidSchedulesForInstant(now time.Time) ([]model.Schedule, error) {
	const q = `
	SELECT ` + scheduleColumns + `
	  FROM schedules
	 WHERE all_day = false
	   AND start_time <= $2::time
	   AND (end_time IS NULL OR end_time > $2::time)
	   AND (recurring = true
	        OR ($1::date >= start_date AND $1::date < start_date + interval '1 day'))
	 ORDER BY start_time, id;`

	var out []model.Schedule
	if err := DB.Select(&out, q, now.Format("2006-01-02"), now.Format("15:04:05")); err != nil {
		log.Error().Err(err).Msg("ListValidSchedulesForInstant failed")
		return nil, err
	}

	for i := range out {
		if out[i].Recurring {
			rule, err := GetRecurrenceRule(out[i].ID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, err
			}
			out[i].Rule = rule
		}
		show, err := GetSlideshowByID(out[i].SlideshowID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}
		out[i].Slideshow = &show
	}
	return out, nil
}
