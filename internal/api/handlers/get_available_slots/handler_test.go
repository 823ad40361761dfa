package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(h *Handler, target string, withTenant bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if withTenant {
		req = req.WithContext(middleware.WithTenantID(req.Context(), 1))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	start := time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC),
		ServiceID:       7,
		DurationMinutes: 30,
		Slots: []domain.Slot{
			{Time: "09:00", Start: start, EmployeeID: 4, EmployeeName: "Bob", LocationID: 3, Available: true},
			{Time: "09:15", Start: start.Add(15 * time.Minute), EmployeeID: 4, EmployeeName: "Bob", LocationID: 3},
		},
	}}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, "/api/v1/availability?serviceId=7&date=2026-10-19&employeeId=4", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), uc.got.ServiceID)
	require.NotNil(t, uc.got.EmployeeID)
	assert.Equal(t, int64(4), *uc.got.EmployeeID)
	assert.Nil(t, uc.got.LocationID)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-19", body.Date)
	require.Len(t, body.TimeSlots, 2)
	assert.Equal(t, "09:00", body.TimeSlots[0].Time)
	assert.True(t, body.TimeSlots[0].Available)
	assert.False(t, body.TimeSlots[1].Available)
	assert.Equal(t, "Bob", body.TimeSlots[1].EmployeeName)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		withTenant bool
		ucErr      error
		want       int
	}{
		{name: "missing tenant", target: "/?serviceId=7&date=2026-10-19", want: http.StatusBadRequest},
		{name: "malformed date", target: "/?serviceId=7&date=19.10.2026", withTenant: true, want: http.StatusBadRequest},
		{name: "missing service", target: "/?date=2026-10-19", withTenant: true, want: http.StatusBadRequest},
		{name: "bad location", target: "/?serviceId=7&date=2026-10-19&locationId=x", withTenant: true, want: http.StatusBadRequest},
		{name: "unknown service", target: "/?serviceId=7&date=2026-10-19", withTenant: true, ucErr: getAvailableSlots.ErrServiceNotFound, want: http.StatusNotFound},
		{name: "unknown employee", target: "/?serviceId=7&date=2026-10-19", withTenant: true, ucErr: getAvailableSlots.ErrEmployeeNotFound, want: http.StatusNotFound},
		{name: "internal", target: "/?serviceId=7&date=2026-10-19", withTenant: true, ucErr: getAvailableSlots.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, nopLogger{})
			rec := serve(h, tt.target, tt.withTenant)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
