package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	ProviderID      int64     // ID провайдера
	From            time.Time // Начало диапазона (календарная дата)
	To              time.Time // Конец диапазона, включительно
	DurationMinutes int       // Длительность слота в минутах
	StepMinutes     int       // Шаг сетки слотов, 0 = равен длительности
	ServiceID       *int64    // Услуга, из которой берётся длительность (опционально)
}

// Slot один доступный слот
type Slot struct {
	StartAt time.Time // Начало слота, UTC
	EndAt   time.Time // Конец слота, UTC (не включается)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ProviderID      int64  // ID провайдера
	Timezone        string // IANA таймзона провайдера
	DurationMinutes int    // Итоговая длительность слота
	Slots           []Slot // Слоты в хронологическом порядке
}
