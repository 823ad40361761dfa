package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UpdateSettingsRequest запрос на замену настроек арендатора
// Незаданное поле означает значение по умолчанию
type UpdateSettingsRequest struct {
	RescheduleWindowHours *int `json:"rescheduleWindowHours"`
}

// SettingsResponse действующие настройки арендатора
type SettingsResponse struct {
	TenantID              int64      `json:"tenantId"`
	RescheduleWindowHours int        `json:"rescheduleWindowHours"`
	IsDefault             bool       `json:"isDefault"`
	UpdatedAt             *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain.TenantSettings в SettingsResponse
func FromDomainSettings(s *domain.TenantSettings, isDefault bool) *SettingsResponse {
	resp := &SettingsResponse{
		TenantID:              s.TenantID,
		RescheduleWindowHours: int(s.RescheduleWindow().Hours()),
		IsDefault:             isDefault,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
