package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helios-signage/helios/internal/db"
	"github.com/helios-signage/helios/internal/http/api"
	"github.com/helios-signage/helios/internal/http/api/admin/packets"
	"github.com/helios-signage/helios/internal/model"
)

type ScheduleController struct {
	store db.Store
}

func NewScheduleController(store db.Store) *ScheduleController {
	return &ScheduleController{store: store}
}

func ScheduleModule(store db.Store) api.Module {
	ctl := NewScheduleController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedules", ctl.listSchedules)
		c.POST("/schedules", ctl.createSchedule)
		c.GET("/schedules/:id", ctl.getSchedule)
		c.PUT("/schedules/:id", ctl.updateSchedule)
		c.DELETE("/schedules/:id", ctl.deleteSchedule)
	})
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func parseClockParam(s string) error {
	if _, err := time.Parse("15:04:05", s); err != nil {
		_, err = time.Parse("15:04", s)
		return err
	}
	return nil
}

func (s *ScheduleController) ownedSchedule(ctx *gin.Context, user *model.User) (model.Schedule, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return model.Schedule{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	sched, err := s.store.GetSchedule(id)
	if err != nil {
		return model.Schedule{}, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}
	if sched.CreatedBy != user.ID {
		return model.Schedule{}, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return sched, nil
}

func (s *ScheduleController) listSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := s.store.ListSchedules(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list schedules"}
	}

	response := make([]packets.ScheduleResponse, 0, len(list))
	for _, it := range list {
		response = append(response, packets.NewScheduleResponse(it))
	}
	return response, nil
}

func (s *ScheduleController) createSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	startDate, err := parseDate(request.StartDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid start_date"}
	}
	var endDate *time.Time
	if request.EndDate != nil {
		d, err := parseDate(*request.EndDate)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid end_date"}
		}
		endDate = &d
	}
	if err := parseClockParam(request.StartTime); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid start_time"}
	}
	if request.EndTime != nil {
		if err := parseClockParam(*request.EndTime); err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid end_time"}
		}
	}
	if request.Recurring && request.Rule == nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "recurring schedule needs a rule"}
	}

	status := request.Status
	if status == "" {
		status = "active"
	}

	sched, err := s.store.CreateSchedule(request.Title, request.SlideshowID,
		startDate, endDate, request.StartTime, request.EndTime,
		request.AllDay, request.Recurring, request.Priority, status, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create schedule"}
	}

	if request.Rule != nil {
		rule, apiErr := s.saveRule(sched.ID, request.Rule)
		if apiErr != nil {
			return nil, apiErr
		}
		sched.Rule = rule
	}
	return packets.NewScheduleResponse(sched), nil
}

func (s *ScheduleController) saveRule(scheduleID int, req *packets.RecurrenceRuleRequest) (*model.RecurrenceRule, *api.APIError) {
	switch req.Type {
	case model.RecurDaily, model.RecurWeekly, model.RecurMonthly, model.RecurYearly:
	default:
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown recurrence type"}
	}

	var until *time.Time
	if req.Until != nil {
		d, err := parseDate(*req.Until)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid rule until date"}
		}
		until = &d
	}

	rule, err := s.store.UpsertRecurrenceRule(scheduleID, req.Type, req.DaysOfWeek, until, req.Count)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save recurrence rule"}
	}
	return &rule, nil
}

func (s *ScheduleController) getSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	sched, apiErr := s.ownedSchedule(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.NewScheduleResponse(sched), nil
}

func (s *ScheduleController) updateSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	sched, apiErr := s.ownedSchedule(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	var startDate, endDate *time.Time
	if request.StartDate != nil {
		d, err := parseDate(*request.StartDate)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid start_date"}
		}
		startDate = &d
	}
	if request.EndDate != nil {
		d, err := parseDate(*request.EndDate)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid end_date"}
		}
		endDate = &d
	}

	if err := s.store.UpdateSchedule(sched.ID, request.Title, request.SlideshowID,
		startDate, endDate, request.StartTime, request.EndTime,
		request.AllDay, request.Recurring, request.Priority, request.Status); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update schedule"}
	}

	if request.Rule != nil {
		if _, apiErr := s.saveRule(sched.ID, request.Rule); apiErr != nil {
			return nil, apiErr
		}
	}

	updated, err := s.store.GetSchedule(sched.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not reload schedule"}
	}
	return packets.NewScheduleResponse(updated), nil
}

func (s *ScheduleController) deleteSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	sched, apiErr := s.ownedSchedule(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := s.store.DeleteSchedule(sched.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete schedule"}
	}
	return gin.H{"message": "deleted"}, nil
}
