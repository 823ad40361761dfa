package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// UpdateAppointmentRequest HTTP request model
type UpdateAppointmentRequest struct {
	Status       string  `json:"status"`
	StartTime    *string `json:"startTime,omitempty"` // RFC 3339, задается только при переносе
	CanceledBy   *string `json:"canceledBy,omitempty"`
	CancelReason *string `json:"cancelReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAppointmentRequest) ToServiceRequest(tenantID int64) (*models.UpdateAppointmentRequest, error) {
	req := &models.UpdateAppointmentRequest{
		TenantID:     tenantID,
		Status:       r.Status,
		CanceledBy:   r.CanceledBy,
		CancelReason: r.CancelReason,
	}

	if r.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}
