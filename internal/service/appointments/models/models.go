package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// UpdateAppointmentRequest запрос на изменение записи
type UpdateAppointmentRequest struct {
	TenantID     int64
	Status       string     // Новый статус (обязательно)
	StartTime    *time.Time // Новое время начала (перенос, опционально)
	CanceledBy   *string    // Кто отменил (опционально)
	CancelReason *string    // Причина отмены (опционально)
}

// ListEmployeeAppointmentsRequest запрос записей сотрудника за день
type ListEmployeeAppointmentsRequest struct {
	TenantID   int64
	EmployeeID int64
	Date       time.Time
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64      `json:"id"`
	ServiceID       int64      `json:"serviceId"`
	LocationID      int64      `json:"locationId"`
	EmployeeID      int64      `json:"employeeId"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	BookedByID      int64      `json:"bookedById"`
	BookedBy        string     `json:"bookedBy,omitempty"`
	BookedByName    string     `json:"bookedByName,omitempty"`
	CanceledBy      *string    `json:"canceledBy,omitempty"`
	CancelReason    *string    `json:"cancelReason,omitempty"`
	FulfillmentDate *time.Time `json:"fulfillmentDate,omitempty"`

	// Денормализованные данные
	ServiceName  string `json:"serviceName,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
	LocationName string `json:"locationName,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует domain.Appointment в AppointmentResponse
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              a.ID,
		ServiceID:       a.ServiceID,
		LocationID:      a.LocationID,
		EmployeeID:      a.EmployeeID,
		StartTime:       a.StartTime,
		EndTime:         a.End(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		BookedByID:      a.BookedByID,
		BookedBy:        a.BookedBy,
		BookedByName:    a.BookedByName,
		CanceledBy:      a.CanceledBy,
		CancelReason:    a.CancelReason,
		FulfillmentDate: a.FulfillmentDate,
		ServiceName:     a.ServiceName,
		EmployeeName:    a.EmployeeName,
		LocationName:    a.LocationName,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain.Appointment в AppointmentListResponse
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	result := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, a := range list {
		result.Appointments = append(result.Appointments, *FromDomainAppointment(a))
	}
	return result
}
