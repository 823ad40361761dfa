package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ScheduleRepository интерфейс репозитория блоков расписания
type ScheduleRepository interface {
	ListBlocks(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.ScheduleBlock, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListByEmployee(ctx context.Context, filter domain.EmployeeDayFilter) ([]*domain.Appointment, error)
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
}

// Directory интерфейс справочника сотрудников и локаций
type Directory interface {
	GetEmployee(ctx context.Context, tenantID, employeeID int64) (*domain.Employee, error)
	GetLocation(ctx context.Context, tenantID, locationID int64) (*domain.Location, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
