package domain

// Default scheduling values
const (
	DefaultStepMinutes    = 0 // 0 = step equals service duration
	DefaultTimezone       = "UTC"
	MinDurationMinutes    = 5
	MaxDurationMinutes    = 480 // 8 hours
	MaxDescriptionLength  = 500
	MaxCancelReasonLength = 500
	MaxRecurrenceSpanDays = 366 // recurring series may not extend past one year
	MaxSlotsRangeDays     = 62  // slot queries are bounded to two months
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не занимающие время в расписании
// Используются при построении занятых интервалов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}

// ActiveStatuses статусы, занимающие время в расписании
// Запись in_process считается занятой наравне с confirmed
var ActiveStatuses = []AppointmentStatus{
	StatusConfirmed,
	StatusInProcess,
}
