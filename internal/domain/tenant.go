package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSettings is returned when tenant settings are out of range
var ErrInvalidSettings = errors.New("domain: invalid tenant settings")

// TenantStatus represents the account state of a tenant
type TenantStatus string

const (
	TenantActive    TenantStatus = "ACTIVE"
	TenantSuspended TenantStatus = "SUSPENDED"
	TenantArchived  TenantStatus = "ARCHIVED"
)

// Tenant is an isolated customer account
type Tenant struct {
	ID     int64
	Name   string
	Status TenantStatus
}

// TenantSettings holds per-tenant booking rules.
// Nil fields mean "use the default".
type TenantSettings struct {
	TenantID              int64
	RescheduleWindowHours *int
	UpdatedAt             time.Time
}

// Validate checks the ranges of explicitly set fields
func (s *TenantSettings) Validate() error {
	if s.RescheduleWindowHours != nil {
		h := *s.RescheduleWindowHours
		if h < MinRescheduleWindowHours || h > MaxRescheduleWindowHours {
			return fmt.Errorf("%w: rescheduleWindowHours must be in %d..%d, got %d",
				ErrInvalidSettings, MinRescheduleWindowHours, MaxRescheduleWindowHours, h)
		}
	}
	return nil
}

// RescheduleWindow returns the minimum lead time required to change an appointment time
func (s *TenantSettings) RescheduleWindow() time.Duration {
	hours := DefaultRescheduleWindowHours
	if s != nil && s.RescheduleWindowHours != nil {
		hours = *s.RescheduleWindowHours
	}
	return time.Duration(hours) * time.Hour
}

// DefaultTenantSettings returns settings with no overrides
func DefaultTenantSettings(tenantID int64) *TenantSettings {
	return &TenantSettings{TenantID: tenantID}
}
