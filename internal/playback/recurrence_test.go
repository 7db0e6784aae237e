package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/helios-signage/helios/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAppliesDaily(t *testing.T) {
	rule := &model.RecurrenceRule{Type: model.RecurDaily, DaysOfWeek: "1,2"}
	// daily ignores the rule body entirely
	assert.True(t, Applies(rule, date(2025, time.January, 1), date(2025, time.June, 15)))
}

func TestAppliesWeekly(t *testing.T) {
	anchor := date(2025, time.January, 6)

	tests := []struct {
		name string
		days string
		now  time.Time
		want bool
	}{
		{"monday in set", "1,3,5", date(2025, time.June, 16), true},   // Monday
		{"tuesday not in set", "1,3,5", date(2025, time.June, 17), false}, // Tuesday
		{"friday in set", "1,3,5", date(2025, time.June, 20), true},   // Friday
		{"empty set degrades to daily", "", date(2025, time.June, 17), true},
		{"whitespace only degrades to daily", "  ", date(2025, time.June, 17), true},
		{"malformed set fails closed", "mon,wed", date(2025, time.June, 16), false},
		{"partially malformed fails closed", "1,x,5", date(2025, time.June, 16), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rule := &model.RecurrenceRule{Type: model.RecurWeekly, DaysOfWeek: tc.days}
			assert.Equal(t, tc.want, Applies(rule, anchor, tc.now))
		})
	}
}

func TestAppliesMonthly(t *testing.T) {
	rule := &model.RecurrenceRule{Type: model.RecurMonthly}

	assert.True(t, Applies(rule, date(2025, time.January, 15), date(2025, time.June, 15)))
	assert.False(t, Applies(rule, date(2025, time.January, 15), date(2025, time.June, 16)))

	// day-of-month only: an anchor on the 31st never matches February
	anchor := date(2025, time.January, 31)
	for d := 1; d <= 28; d++ {
		assert.False(t, Applies(rule, anchor, date(2025, time.February, d)))
	}
}

func TestAppliesYearly(t *testing.T) {
	rule := &model.RecurrenceRule{Type: model.RecurYearly}
	anchor := date(2020, time.March, 14)

	assert.True(t, Applies(rule, anchor, date(2025, time.March, 14)))
	assert.False(t, Applies(rule, anchor, date(2025, time.April, 14)))
	assert.False(t, Applies(rule, anchor, date(2025, time.March, 15)))
}

func TestAppliesFailsClosed(t *testing.T) {
	now := date(2025, time.June, 16)
	anchor := date(2025, time.January, 1)

	assert.False(t, Applies(nil, anchor, now))
	assert.False(t, Applies(&model.RecurrenceRule{Type: "hourly"}, anchor, now))
	assert.False(t, Applies(&model.RecurrenceRule{Type: ""}, anchor, now))
}
