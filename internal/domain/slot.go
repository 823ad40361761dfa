package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Slot represents a candidate appointment start for one employee
type Slot struct {
	Time            types.TimeString
	Start           time.Time
	End             time.Time
	EmployeeID      int64
	EmployeeName    string
	LocationID      int64
	DurationMinutes int
	Available       bool
}
