package scheduling

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Общие билдеры тестовых данных пакета

// testWeek расписание пн-пт 09:00-17:00 с перерывом 13:00-14:00, сб-вс выходные
func testWeek() *domain.WeeklySchedule {
	week := &domain.WeeklySchedule{
		UserID:   42,
		Timezone: "UTC",
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := domain.DaySchedule{Weekday: wd}
		if wd != time.Sunday && wd != time.Saturday {
			day.IsWorkingDay = true
			day.StartTime = types.TimeString("09:00")
			day.EndTime = types.TimeString("17:00")
			day.BreakStart = ptr.Ptr(types.TimeString("13:00"))
			day.BreakEnd = ptr.Ptr(types.TimeString("14:00"))
		}
		week.Days[int(wd)] = day
	}
	return week
}

func mustAvailability(week *domain.WeeklySchedule, nonWorking []*domain.NonWorkingDay) *Availability {
	av, err := NewAvailability(week, nonWorking)
	if err != nil {
		panic(err)
	}
	return av
}

func appointment(id int64, start, end time.Time, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:         id,
		ProviderID: 42,
		StartAt:    start,
		EndAt:      end,
		Status:     status,
	}
}

// monday это понедельник 2025-11-03
func monday(hour, min int) time.Time {
	return time.Date(2025, 11, 3, hour, min, 0, 0, time.UTC)
}
