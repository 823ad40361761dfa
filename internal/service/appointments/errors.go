package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена у арендатора
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден у арендатора
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrRescheduleWindow возвращается, когда до начала записи осталось меньше окна переноса
	ErrRescheduleWindow = errors.New("too close to the appointment to reschedule")

	// ErrRescheduleNotAllowed возвращается при попытке перенести завершенную или отмененную запись
	ErrRescheduleNotAllowed = errors.New("only scheduled appointments can be rescheduled")

	// ErrStartInPast возвращается, когда новое время начала уже прошло
	ErrStartInPast = errors.New("start time is in the past")

	// ErrSlotConflict возвращается, когда новое время пересекается с другой записью сотрудника
	ErrSlotConflict = errors.New("slot already booked")

	// ErrCannotDelete возвращается при удалении активной будущей записи
	ErrCannotDelete = errors.New("appointment must be cancelled or past its scheduled date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
