package create_recurring_appointments

import "time"

// Request модель запроса на создание серии повторяющихся записей
type Request struct {
	ClientID        int64     // ID клиента (из токена)
	ProviderID      int64     // ID провайдера
	ServiceID       *int64    // ID услуги (опционально)
	StartAt         time.Time // Начало первой записи, UTC
	DurationMinutes *int      // Длительность в минутах, по умолчанию из услуги
	Weekdays        []int     // Дни недели повторения, 0 = воскресенье ... 6 = суббота
	Until           time.Time // Последняя дата серии, включительно
	Notes           *string   // Дополнительные заметки (опционально)
}

// Occurrence одна запись серии
type Occurrence struct {
	ID      int64     // ID созданной записи
	StartAt time.Time // Начало записи, UTC
	EndAt   time.Time // Конец записи, UTC
}

// Response модель ответа с созданной серией
type Response struct {
	SeriesID    string       // UUID серии
	ProviderID  int64        // ID провайдера
	ClientID    int64        // ID клиента
	Status      string       // Статус записей серии
	Occurrences []Occurrence // Созданные записи в хронологическом порядке
}
