package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrIntervalConflict возвращается, когда exclusion constraint отклонил запись:
	// интервал пересекается с другой активной записью провайдера.
	// Срабатывает на коммите и ловит гонки, прошедшие оптимистичную предпроверку
	ErrIntervalConflict = errors.New("appointment.repository: interval conflicts with an existing appointment")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
