package reconcile_appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// TenantRepository интерфейс репозитория арендаторов
type TenantRepository interface {
	ListActive(ctx context.Context) ([]*domain.Tenant, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindStaleIDs(ctx context.Context, tenantID int64, after, notAfter time.Time) ([]int64, error)
	CancelStale(ctx context.Context, tenantID int64, ids []int64, now time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SweepObserver принимает итоги прогонов (метрики)
type SweepObserver interface {
	ObserveSweep(cancelled, failedTenants int, duration time.Duration, err error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
