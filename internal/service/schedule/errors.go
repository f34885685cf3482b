package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrNonWorkingDayNotFound возвращается, когда нерабочий день не найден
	ErrNonWorkingDayNotFound = errors.New("non-working day not found")

	// ErrNonWorkingDayExists возвращается, когда нерабочий день на эту дату уже есть
	ErrNonWorkingDayExists = errors.New("non-working day already exists")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
