package domain

// Slot generation
const (
	SlotGranularityMinutes = 15
)

// Tenant settings defaults and ranges
const (
	DefaultRescheduleWindowHours = 2
	MinRescheduleWindowHours     = 0
	MaxRescheduleWindowHours     = 168 // 1 week
)

// Reconciliation sweep
const (
	AutoCancelReason   = "Automatically cancelled - no status update was provided"
	SystemActor        = "system"
	DefaultSweepBatch  = 20
	MaxCancelReasonLen = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses statuses that occupy an employee's time
var BlockingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusFulfilled,
}
