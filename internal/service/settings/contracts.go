package settings

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек арендатора
type SettingsRepository interface {
	GetSettings(ctx context.Context, tenantID int64) (*domain.TenantSettings, error)
	UpsertSettings(ctx context.Context, settings *domain.TenantSettings) (*domain.TenantSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
