package list_employee_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidDate       = "некорректная дата, ожидается YYYY-MM-DD"
	msgMissingTenantID   = "отсутствует ID арендатора"
	msgEmployeeNotFound  = "сотрудник не найден"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/appointments?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil || employeeID <= 0 {
		h.logger.Warn("GET /employees/{id}/appointments - Invalid employee ID: %q", mux.Vars(r)["employeeId"])
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /employees/{id}/appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /employees/{id}/appointments - Missing tenant ID")
		handlers.RespondBadRequest(w, msgMissingTenantID)
		return
	}

	list, err := h.service.ListEmployeeAppointments(r.Context(), &models.ListEmployeeAppointmentsRequest{
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id}/appointments - Employee not found: employee_id=%d, tenant_id=%d", employeeID, tenantID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /employees/{id}/appointments - Failed to list appointments: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/appointments - Appointments retrieved: employee_id=%d, count=%d", employeeID, list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
