package create_recurring_appointments

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у провайдера нет расписания
	ErrScheduleNotFound = errors.New("create_recurring_appointments: schedule not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_recurring_appointments: service not found")

	// ErrServiceNotOwned возвращается, когда услуга принадлежит другому провайдеру
	ErrServiceNotOwned = errors.New("create_recurring_appointments: service belongs to another provider")

	// ErrDateInPast возвращается при попытке начать серию в прошлом
	ErrDateInPast = errors.New("create_recurring_appointments: start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_recurring_appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_recurring_appointments: internal error")
)
