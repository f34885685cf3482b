package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Моки зависимостей use case

type fakeAppointmentRepo struct {
	existing []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByProviderWithFilter(_ context.Context, _ domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeScheduleRepo struct {
	week       *domain.WeeklySchedule
	nonWorking []*domain.NonWorkingDay
}

func (f *fakeScheduleRepo) GetWeeklySchedule(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	if f.week == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.week, nil
}

func (f *fakeScheduleRepo) ListNonWorkingDays(_ context.Context, _ int64, _, _ *time.Time) ([]*domain.NonWorkingDay, error) {
	return f.nonWorking, nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// testWeek расписание пн-пт 09:00-17:00 с перерывом 13:00-14:00
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

// monday это понедельник 2025-11-03
func monday(hour, min int) time.Time {
	return time.Date(2025, 11, 3, hour, min, 0, 0, time.UTC)
}

func TestExecute_HourSlotsSkipBusyAndBreak(t *testing.T) {
	appts := &fakeAppointmentRepo{existing: []*domain.Appointment{
		{ID: 1, ProviderID: 42, StartAt: monday(10, 0), EndAt: monday(11, 0), Status: domain.StatusConfirmed},
	}}
	uc := NewUseCase(appts, &fakeScheduleRepo{week: testWeek()}, &fakeServiceRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID:      42,
		From:            monday(0, 0),
		To:              monday(0, 0),
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.Equal(t, 60, resp.DurationMinutes)

	want := []Slot{
		{StartAt: monday(9, 0), EndAt: monday(10, 0)},
		{StartAt: monday(11, 0), EndAt: monday(12, 0)},
		{StartAt: monday(12, 0), EndAt: monday(13, 0)},
		{StartAt: monday(14, 0), EndAt: monday(15, 0)},
		{StartAt: monday(15, 0), EndAt: monday(16, 0)},
		{StartAt: monday(16, 0), EndAt: monday(17, 0)},
	}
	assert.Equal(t, want, resp.Slots)
}

func TestExecute_DurationFromService(t *testing.T) {
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		5: {ID: 5, UserID: 42, Title: "Консультация", DurationMinutes: 120},
	}}
	uc := NewUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{week: testWeek()}, services, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 42,
		From:       monday(0, 0),
		To:         monday(0, 0),
		ServiceID:  ptr.Ptr(int64(5)),
	})

	require.NoError(t, err)
	assert.Equal(t, 120, resp.DurationMinutes)
	for _, s := range resp.Slots {
		assert.Equal(t, 2*time.Hour, s.EndAt.Sub(s.StartAt))
	}
}

func TestExecute_ScheduleNotFound(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, &fakeServiceRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID:      42,
		From:            monday(0, 0),
		To:              monday(0, 0),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestExecute_RangeTooLarge(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{week: testWeek()}, &fakeServiceRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID:      42,
		From:            monday(0, 0),
		To:              monday(0, 0).AddDate(0, 0, domain.MaxSlotsRangeDays+1),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrRangeTooLarge)
}

func TestExecute_NonWorkingDayExcluded(t *testing.T) {
	schedules := &fakeScheduleRepo{
		week: testWeek(),
		nonWorking: []*domain.NonWorkingDay{
			{ID: 1, UserID: 42, Date: monday(0, 0)},
		},
	}
	uc := NewUseCase(&fakeAppointmentRepo{}, schedules, &fakeServiceRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID:      42,
		From:            monday(0, 0),
		To:              monday(0, 0),
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}
