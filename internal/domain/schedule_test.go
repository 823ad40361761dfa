package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestScheduleBlock_IsValid(t *testing.T) {
	tests := []struct {
		name       string
		start, end types.TimeString
		want       bool
	}{
		{name: "regular", start: "09:00", end: "17:00", want: true},
		{name: "until midnight", start: "18:00", end: "24:00", want: true},
		{name: "reversed", start: "17:00", end: "09:00", want: false},
		{name: "empty interval", start: "10:00", end: "10:00", want: false},
		{name: "malformed", start: "9am", end: "17:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &ScheduleBlock{StartTime: tt.start, EndTime: tt.end, BlockType: BlockWorkingHours}
			assert.Equal(t, tt.want, b.IsValid())
		})
	}
}

func TestBlockType_IsBusy(t *testing.T) {
	assert.False(t, BlockWorkingHours.IsBusy())
	assert.True(t, BlockBreak.IsBusy())
	assert.True(t, BlockVacation.IsBusy())
}

func TestISOWeekday(t *testing.T) {
	// 2026-10-19 is a Monday
	monday := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, ISOWeekday(monday))
	assert.Equal(t, 7, ISOWeekday(monday.AddDate(0, 0, 6)))
}

func TestDayBounds_DSTDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// Clocks go back on 2026-10-25, the day lasts 25 hours
	from, to := DayBounds(time.Date(2026, time.October, 25, 0, 0, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2026, time.October, 25, 0, 0, 0, 0, loc), from)
	assert.Equal(t, 25*time.Hour, to.Sub(from))
}
