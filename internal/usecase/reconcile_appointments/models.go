package reconcile_appointments

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Options параметры прогона
type Options struct {
	GracePeriod    time.Duration // Запись считается устаревшей через это время после начала
	LookbackMonths int           // Более старые записи не рассматриваются
	BatchSize      int           // Количество записей в одной транзакции
}

// DefaultOptions возвращает параметры по умолчанию: сутки, месяц, 20 записей
func DefaultOptions() Options {
	return Options{
		GracePeriod:    24 * time.Hour,
		LookbackMonths: 1,
		BatchSize:      domain.DefaultSweepBatch,
	}
}

// Report итоги одного прогона
type Report struct {
	StartedAt        time.Time
	FinishedAt       time.Time
	WindowFrom       time.Time // Исключительная нижняя граница start_time
	WindowTo         time.Time // Включительная верхняя граница start_time
	TenantsProcessed int
	TenantsFailed    int
	FailedTenantIDs  []int64
	Cancelled        int64
}
