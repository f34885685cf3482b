package scheduling

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Ledger read-only представление занятых интервалов провайдера.
// Строится из загруженных записей: отменённые отбрасываются, пересекающиеся
// и смежные интервалы склеиваются, поэтому потребители никогда не работают
// с сырыми пересекающимися строками.
type Ledger struct {
	busy []domain.TimeInterval
}

// NewLedger строит леджер из записей провайдера
// excludeID исключает редактируемую запись при проверке переноса
func NewLedger(appointments []*domain.Appointment, excludeID *int64) *Ledger {
	intervals := make([]domain.TimeInterval, 0, len(appointments))
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		intervals = append(intervals, appt.Interval())
	}

	return &Ledger{busy: domain.MergeIntervals(intervals)}
}

// BusyIntervals возвращает упорядоченные непересекающиеся занятые интервалы
func (l *Ledger) BusyIntervals() []domain.TimeInterval {
	return l.busy
}

// BusyWithin возвращает занятые интервалы, пересекающие указанный диапазон
func (l *Ledger) BusyWithin(rng domain.TimeInterval) []domain.TimeInterval {
	result := make([]domain.TimeInterval, 0)
	for _, iv := range l.busy {
		if iv.Overlaps(rng) {
			result = append(result, iv)
		}
	}
	return result
}

// FirstOverlap возвращает первый занятый интервал, пересекающий iv
func (l *Ledger) FirstOverlap(iv domain.TimeInterval) (domain.TimeInterval, bool) {
	for _, busy := range l.busy {
		if busy.Overlaps(iv) {
			return busy, true
		}
	}
	return domain.TimeInterval{}, false
}
