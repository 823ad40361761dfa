package appointment

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotConflict возвращается, когда БД отклонила пересекающуюся запись
	// (exclusion constraint или конфликт сериализации)
	ErrSlotConflict = errors.New("appointment.repository: slot conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

// SQLSTATE коды PostgreSQL, означающие конкурентное бронирование того же времени
const (
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
)

// IsConflictError возвращает true, если ошибка означает конфликт бронирования:
// ErrSlotConflict из репозитория или ошибку PostgreSQL, пришедшую при commit
func IsConflictError(err error) bool {
	if errors.Is(err, ErrSlotConflict) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgExclusionViolation || pqErr.Code == pgSerializationFailure
	}
	return false
}
