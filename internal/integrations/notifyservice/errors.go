package notifyservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifyservice client: invalid response")

	// ErrServiceDegraded возвращается при недоступности NotifyService
	// Уведомления не критичны, вызывающий код логирует ошибку и продолжает работу
	ErrServiceDegraded = errors.New("notifyservice unavailable: graceful degradation applied")
)
