package get_settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) Get(_ context.Context, tenantID int64) (*models.SettingsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.SettingsResponse{TenantID: tenantID, RescheduleWindowHours: 24, IsDefault: true}, nil
}

func TestHandler_Handle(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	req = req.WithContext(middleware.WithTenantID(req.Context(), 3))
	rec := httptest.NewRecorder()

	NewHandler(&fakeService{}, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.SettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.TenantID)
	assert.Equal(t, 24, body.RescheduleWindowHours)
	assert.True(t, body.IsDefault)
}

func TestHandler_Handle_Errors(t *testing.T) {
	h := NewHandler(&fakeService{err: errors.New("db down")}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	rec = httptest.NewRecorder()
	h.Handle(rec, req.WithContext(middleware.WithTenantID(req.Context(), 3)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
