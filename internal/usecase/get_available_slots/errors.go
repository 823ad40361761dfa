package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена у арендатора
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrLocationNotFound возвращается, когда локация не найдена у арендатора
	ErrLocationNotFound = errors.New("get_available_slots: location not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден у арендатора
	ErrEmployeeNotFound = errors.New("get_available_slots: employee not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
