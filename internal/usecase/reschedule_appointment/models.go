package reschedule_appointment

import "time"

// Request модель запроса на перенос записи
type Request struct {
	UserID        int64     // ID пользователя (из токена)
	AppointmentID int64     // ID переносимой записи
	StartAt       time.Time // Новое начало записи, UTC
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID         int64     // ID записи
	ProviderID int64     // ID провайдера
	ClientID   *int64    // ID клиента
	ServiceID  *int64    // ID услуги
	StartAt    time.Time // Новое начало записи, UTC
	EndAt      time.Time // Новый конец записи, UTC
	Status     string    // Статус записи

	// Денормализованные данные
	ServiceTitle *string  // Название услуги
	PriceCharged *float64 // Цена на момент записи
	Notes        *string  // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
