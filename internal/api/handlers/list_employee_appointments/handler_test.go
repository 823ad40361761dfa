package list_employee_appointments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.ListEmployeeAppointmentsRequest
	err error
}

func (f *fakeService) ListEmployeeAppointments(_ context.Context, req *models.ListEmployeeAppointmentsRequest) (*models.AppointmentListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentListResponse{
		Appointments: []models.AppointmentResponse{{ID: 1}, {ID: 2}},
		Total:        2,
	}, nil
}

func serve(h *Handler, employeeID, date string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+employeeID+"/appointments?date="+date, nil)
	req = mux.SetURLVars(req, map[string]string{"employeeId": employeeID})
	req = req.WithContext(middleware.WithTenantID(req.Context(), 9))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, nopLogger{}), "4", "2026-10-19")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), svc.got.TenantID)
	assert.Equal(t, int64(4), svc.got.EmployeeID)
	assert.Equal(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), svc.got.Date)

	var body models.AppointmentListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		employeeID string
		date       string
		err        error
		want       int
	}{
		{name: "bad employee", employeeID: "x", date: "2026-10-19", want: http.StatusBadRequest},
		{name: "missing date", employeeID: "4", date: "", want: http.StatusBadRequest},
		{name: "bad date", employeeID: "4", date: "19.10.2026", want: http.StatusBadRequest},
		{name: "unknown employee", employeeID: "4", date: "2026-10-19", err: appointments.ErrEmployeeNotFound, want: http.StatusNotFound},
		{name: "internal", employeeID: "4", date: "2026-10-19", err: appointments.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.err}, nopLogger{}), tt.employeeID, tt.date)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
