package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func TestTenantSettings_Validate(t *testing.T) {
	assert.NoError(t, DefaultTenantSettings(1).Validate())
	assert.NoError(t, (&TenantSettings{RescheduleWindowHours: ptr.Ptr(0)}).Validate())
	assert.NoError(t, (&TenantSettings{RescheduleWindowHours: ptr.Ptr(MaxRescheduleWindowHours)}).Validate())

	err := (&TenantSettings{RescheduleWindowHours: ptr.Ptr(-1)}).Validate()
	assert.True(t, errors.Is(err, ErrInvalidSettings))

	err = (&TenantSettings{RescheduleWindowHours: ptr.Ptr(MaxRescheduleWindowHours + 1)}).Validate()
	assert.True(t, errors.Is(err, ErrInvalidSettings))
}

func TestTenantSettings_RescheduleWindow(t *testing.T) {
	var missing *TenantSettings
	assert.Equal(t, 2*time.Hour, missing.RescheduleWindow())
	assert.Equal(t, 2*time.Hour, DefaultTenantSettings(1).RescheduleWindow())
	assert.Equal(t, 48*time.Hour, (&TenantSettings{RescheduleWindowHours: ptr.Ptr(48)}).RescheduleWindow())
	assert.Equal(t, time.Duration(0), (&TenantSettings{RescheduleWindowHours: ptr.Ptr(0)}).RescheduleWindow())
}
