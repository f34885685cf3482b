package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у провайдера нет расписания
	ErrScheduleNotFound = errors.New("schedule.repository: weekly schedule not found")

	// ErrNonWorkingDayNotFound возвращается, когда нерабочий день не найден
	ErrNonWorkingDayNotFound = errors.New("schedule.repository: non-working day not found")

	// ErrNonWorkingDayExists возвращается при повторном создании исключения на ту же дату
	ErrNonWorkingDayExists = errors.New("schedule.repository: non-working day already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
