package create_appointment

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у провайдера нет расписания
	ErrScheduleNotFound = errors.New("create_appointment: schedule not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceNotOwned возвращается, когда услуга принадлежит другому провайдеру
	ErrServiceNotOwned = errors.New("create_appointment: service belongs to another provider")

	// ErrDateInPast возвращается при попытке записаться на прошедшее время
	ErrDateInPast = errors.New("create_appointment: start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
