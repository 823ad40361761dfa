package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BlockType represents the kind of a weekly schedule block
type BlockType string

const (
	BlockWorkingHours BlockType = "WORKING_HOURS"
	BlockBreak        BlockType = "BREAK"
	BlockVacation     BlockType = "VACATION"
)

// IsBusy returns true for blocks that make an employee unavailable
func (b BlockType) IsBusy() bool {
	return b == BlockBreak || b == BlockVacation
}

// ScheduleBlock is a recurring weekly interval of an employee at a location
type ScheduleBlock struct {
	ID           int64
	TenantID     int64
	EmployeeID   int64
	EmployeeName string
	LocationID   int64
	Weekday      int // ISO numbering: 1 = Monday ... 7 = Sunday
	StartTime    types.TimeString
	EndTime      types.TimeString
	BlockType    BlockType
}

// IsValid returns true if the block has a well-formed wall-clock interval
func (b *ScheduleBlock) IsValid() bool {
	if b.StartTime.Validate() != nil || b.EndTime.Validate() != nil {
		return false
	}
	return b.StartTime.IsBefore(b.EndTime)
}

// ScheduleFilter selects schedule blocks of a tenant for a weekday
type ScheduleFilter struct {
	TenantID   int64
	Weekday    int
	LocationID *int64
	EmployeeID *int64
	BlockTypes []BlockType
}

// ISOWeekday returns the ISO weekday (Monday = 1, Sunday = 7) of t
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DayBounds returns [start of day, start of next day) of date in loc
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
