package playback

import (
	"strconv"
	"strings"
	"time"

	"github.com/helios-signage/helios/internal/model"
)

// Applies reports whether a recurring schedule anchored at anchor has an
// occurrence on now's date. Non-recurring schedules never reach this
// function; their own date window check is enough.
//
// Monthly rules compare day-of-month only, so an anchor on the 29th-31st
// simply never matches months that are too short. Weekly rules with no
// weekday set degrade to daily.
func Applies(rule *model.RecurrenceRule, anchor, now time.Time) bool {
	if rule == nil {
		return false
	}
	switch rule.Type {
	case model.RecurDaily:
		return true
	case model.RecurWeekly:
		if strings.TrimSpace(rule.DaysOfWeek) == "" {
			return true
		}
		days, err := parseWeekdays(rule.DaysOfWeek)
		if err != nil {
			// unparseable weekday data drops the schedule for this tick
			return false
		}
		_, ok := days[int(now.Weekday())]
		return ok
	case model.RecurMonthly:
		return now.Day() == anchor.Day()
	case model.RecurYearly:
		return now.Day() == anchor.Day() && now.Month() == anchor.Month()
	default:
		return false
	}
}

// parseWeekdays parses "1,3,5" into a weekday set (Sunday = 0).
func parseWeekdays(s string) (map[int]struct{}, error) {
	out := make(map[int]struct{})
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out[n] = struct{}{}
	}
	return out, nil
}
