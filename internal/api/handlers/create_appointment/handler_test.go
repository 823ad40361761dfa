package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *createAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &createAppointment.Response{Appointment: &domain.Appointment{
		ID:              100,
		TenantID:        req.TenantID,
		ServiceID:       req.ServiceID,
		LocationID:      req.LocationID,
		EmployeeID:      req.EmployeeID,
		StartTime:       req.StartTime,
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
		BookedByID:      req.UserID,
	}}, nil
}

const validBody = `{"serviceId":7,"locationId":3,"employeeId":4,"startTime":"2026-10-19T10:00:00Z"}`

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	ctx := middleware.WithTenantID(req.Context(), 1)
	ctx = middleware.WithUserID(ctx, 42)
	rec := httptest.NewRecorder()
	h.Handle(rec, req.WithContext(ctx))
	return rec
}

func TestHandler_Handle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(1), uc.got.TenantID)
	assert.Equal(t, int64(42), uc.got.UserID)
	assert.True(t, uc.got.StartTime.Equal(time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)))

	var body models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(100), body.ID)
	assert.Equal(t, "SCHEDULED", body.Status)
	assert.True(t, body.EndTime.Equal(time.Date(2026, time.October, 19, 10, 30, 0, 0, time.UTC)))
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		ucErr error
		want  int
	}{
		{name: "broken json", body: `{`, want: http.StatusBadRequest},
		{name: "bad start time", body: `{"serviceId":7,"locationId":3,"employeeId":4,"startTime":"tomorrow"}`, want: http.StatusBadRequest},
		{name: "conflict", body: validBody, ucErr: createAppointment.ErrSlotConflict, want: http.StatusConflict},
		{name: "unknown service", body: validBody, ucErr: createAppointment.ErrServiceNotFound, want: http.StatusNotFound},
		{name: "unknown employee", body: validBody, ucErr: createAppointment.ErrEmployeeNotFound, want: http.StatusNotFound},
		{name: "start in past", body: validBody, ucErr: createAppointment.ErrStartInPast, want: http.StatusBadRequest},
		{name: "internal", body: validBody, ucErr: createAppointment.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, nopLogger{})
			rec := serve(h, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
