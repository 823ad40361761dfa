package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена у арендатора
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrLocationNotFound возвращается, когда локация не найдена у арендатора
	ErrLocationNotFound = errors.New("create_appointment: location not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден у арендатора
	ErrEmployeeNotFound = errors.New("create_appointment: employee not found")

	// ErrBookerNotFound возвращается, когда пользователь, оформляющий запись, не найден
	ErrBookerNotFound = errors.New("create_appointment: booker not found")

	// ErrStartInPast возвращается, когда время начала уже прошло
	ErrStartInPast = errors.New("create_appointment: start time is in the past")

	// ErrSlotConflict возвращается, когда время сотрудника уже занято
	ErrSlotConflict = errors.New("create_appointment: slot already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
