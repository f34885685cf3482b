package create_appointment

import "time"

// Request модель запроса на создание записи
type Request struct {
	ClientID        int64     // ID клиента (из токена)
	ProviderID      int64     // ID провайдера
	ServiceID       *int64    // ID услуги (опционально)
	StartAt         time.Time // Начало записи, UTC
	DurationMinutes *int      // Длительность в минутах, по умолчанию из услуги
	Notes           *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64     // ID созданной записи
	ProviderID int64     // ID провайдера
	ClientID   *int64    // ID клиента
	ServiceID  *int64    // ID услуги
	StartAt    time.Time // Начало записи, UTC
	EndAt      time.Time // Конец записи, UTC
	Status     string    // Статус записи

	// Денормализованные данные
	ServiceTitle *string  // Название услуги
	PriceCharged *float64 // Цена на момент записи
	Notes        *string  // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
