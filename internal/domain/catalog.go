package domain

// Service represents a bookable service of a tenant
type Service struct {
	ID              int64
	TenantID        int64
	Name            string
	DurationMinutes int
	Price           *float64
}

// Employee represents a staff member who can be booked
type Employee struct {
	ID       int64
	TenantID int64
	Name     string
}

// Location represents a place where services are provided
type Location struct {
	ID       int64
	TenantID int64
	Name     string
}
