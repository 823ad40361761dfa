package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusFulfilled AppointmentStatus = "FULFILLED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// IsValid returns true for a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusFulfilled, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if no transition out of the status exists
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusFulfilled || s == StatusCancelled
}

// IsBlocking returns true if an appointment in this status occupies its employee's time.
// Availability and booking both rely on this rule.
func (s AppointmentStatus) IsBlocking() bool {
	return s == StatusScheduled || s == StatusFulfilled
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
// Staying in the same status is allowed so that repeated updates are idempotent.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s == next {
		return true
	}
	return s == StatusScheduled && (next == StatusFulfilled || next == StatusCancelled)
}

// Appointment represents a booked service slot of an employee
type Appointment struct {
	ID         int64
	TenantID   int64
	ServiceID  int64
	LocationID int64
	EmployeeID int64

	StartTime time.Time
	// DurationMinutes is copied from the service at booking time; later service edits do not move EndTime
	DurationMinutes int
	EndTime         time.Time
	Status          AppointmentStatus

	// Booker identity captured at creation
	BookedByID   int64
	BookedBy     string
	BookedByName string

	CanceledBy      *string
	CancelReason    *string
	FulfillmentDate *time.Time

	// Denormalized data for reads
	ServiceName  string
	EmployeeName string
	LocationName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// End returns the exclusive end of the appointment interval
func (a *Appointment) End() time.Time {
	if !a.EndTime.IsZero() {
		return a.EndTime
	}
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsBlocking returns true if the appointment occupies its employee's time
func (a *Appointment) IsBlocking() bool {
	return a.Status.IsBlocking()
}

// OverlapsWith returns true if the appointment intersects [start, end)
func (a *Appointment) OverlapsWith(start, end time.Time) bool {
	return Overlaps(a.StartTime, a.End(), start, end)
}

// CanBeDeleted returns true if the appointment is cancelled or has already started
func (a *Appointment) CanBeDeleted(now time.Time) bool {
	return a.Status == StatusCancelled || a.StartTime.Before(now)
}

// Overlaps reports whether half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindOverlap returns the first blocking appointment intersecting [start, end).
// An appointment with id excludeID is skipped; pass 0 to check all of them.
func FindOverlap(appointments []*Appointment, start, end time.Time, excludeID int64) *Appointment {
	for _, a := range appointments {
		if excludeID != 0 && a.ID == excludeID {
			continue
		}
		if a.IsBlocking() && a.OverlapsWith(start, end) {
			return a
		}
	}
	return nil
}

// EmployeeDayFilter selects appointments of one employee within [From, To)
type EmployeeDayFilter struct {
	TenantID   int64
	EmployeeID int64
	From       time.Time
	To         time.Time
	// OnlyBlocking restricts the result to BlockingStatuses
	OnlyBlocking bool
	// ExcludeID skips one appointment, used when an appointment is rescheduled
	ExcludeID *int64
}
