package create_recurring_appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduling"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Моки зависимостей use case

type fakeAppointmentRepo struct {
	existing []*domain.Appointment
	created  []*domain.Appointment
}

func (f *fakeAppointmentRepo) CreateSeries(_ context.Context, appointments []*domain.Appointment) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, len(appointments))
	for i, appt := range appointments {
		copied := *appt
		copied.ID = int64(201 + i)
		result[i] = &copied
	}
	f.created = result
	return result, nil
}

func (f *fakeAppointmentRepo) GetByProviderWithFilter(_ context.Context, _ domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeScheduleRepo struct {
	week       *domain.WeeklySchedule
	nonWorking []*domain.NonWorkingDay
}

func (f *fakeScheduleRepo) GetWeeklySchedule(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	return f.week, nil
}

func (f *fakeScheduleRepo) ListNonWorkingDays(_ context.Context, _ int64, _, _ *time.Time) ([]*domain.NonWorkingDay, error) {
	return f.nonWorking, nil
}

type fakeServiceRepo struct{}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return nil, errors.New("unexpected call")
}

type fakeNotifyClient struct {
	series [][]*domain.Appointment
}

func (f *fakeNotifyClient) SeriesCreated(_ context.Context, appointments []*domain.Appointment) error {
	f.series = append(f.series, appointments)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// testWeek расписание пн-пт 09:00-17:00 без перерывов
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
		}
		week.Days[int(wd)] = day
	}
	return week
}

// monday это понедельник 2025-11-03
func monday(hour, min int) time.Time {
	return time.Date(2025, 11, 3, hour, min, 0, 0, time.UTC)
}

func newTestUseCase(appts *fakeAppointmentRepo, schedules *fakeScheduleRepo, notify *fakeNotifyClient) *UseCase {
	uc := NewUseCase(appts, schedules, &fakeServiceRepo{}, notify, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_WeeklySeriesCreated(t *testing.T) {
	appts := &fakeAppointmentRepo{}
	notify := &fakeNotifyClient{}
	uc := newTestUseCase(appts, &fakeScheduleRepo{week: testWeek()}, notify)

	// Понедельники и среды две недели подряд
	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:        7,
		ProviderID:      42,
		StartAt:         monday(10, 0),
		DurationMinutes: ptr.Ptr(60),
		Weekdays:        []int{1, 3},
		Until:           monday(0, 0).AddDate(0, 0, 13),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.SeriesID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.Len(t, resp.Occurrences, 4)

	assert.Equal(t, monday(10, 0), resp.Occurrences[0].StartAt)
	assert.Equal(t, monday(10, 0).AddDate(0, 0, 2), resp.Occurrences[1].StartAt)
	assert.Equal(t, monday(10, 0).AddDate(0, 0, 7), resp.Occurrences[2].StartAt)
	assert.Equal(t, monday(10, 0).AddDate(0, 0, 9), resp.Occurrences[3].StartAt)

	// Все записи серии носят общий SeriesID
	require.Len(t, appts.created, 4)
	for _, appt := range appts.created {
		require.NotNil(t, appt.SeriesID)
		assert.Equal(t, appts.created[0].SeriesID, appt.SeriesID)
	}
	assert.Len(t, notify.series, 1)
}

func TestExecute_AllOrNothingOnConflicts(t *testing.T) {
	// Вторая дата серии занята существующей записью: вся серия отклоняется,
	// ни одна запись не создаётся
	appts := &fakeAppointmentRepo{existing: []*domain.Appointment{
		{
			ID:         1,
			ProviderID: 42,
			StartAt:    monday(10, 0).AddDate(0, 0, 7),
			EndAt:      monday(11, 0).AddDate(0, 0, 7),
			Status:     domain.StatusConfirmed,
		},
	}}
	notify := &fakeNotifyClient{}
	uc := newTestUseCase(appts, &fakeScheduleRepo{week: testWeek()}, notify)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        7,
		ProviderID:      42,
		StartAt:         monday(10, 0),
		DurationMinutes: ptr.Ptr(60),
		Weekdays:        []int{1},
		Until:           monday(0, 0).AddDate(0, 0, 14),
	})

	require.Error(t, err)

	var batch *scheduling.BatchConflictError
	require.True(t, errors.As(err, &batch))
	require.Len(t, batch.Conflicts, 1)
	assert.ErrorIs(t, batch.Conflicts[0].Conflict, scheduling.ErrDoubleBooked)

	assert.Empty(t, appts.created)
	assert.Empty(t, notify.series)
}

func TestExecute_NonWorkingDateReported(t *testing.T) {
	schedules := &fakeScheduleRepo{
		week: testWeek(),
		nonWorking: []*domain.NonWorkingDay{
			{ID: 1, UserID: 42, Date: monday(0, 0).AddDate(0, 0, 7)},
		},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, schedules, &fakeNotifyClient{})

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        7,
		ProviderID:      42,
		StartAt:         monday(10, 0),
		DurationMinutes: ptr.Ptr(60),
		Weekdays:        []int{1},
		Until:           monday(0, 0).AddDate(0, 0, 14),
	})

	require.Error(t, err)

	var batch *scheduling.BatchConflictError
	require.True(t, errors.As(err, &batch))
	require.Len(t, batch.Conflicts, 1)
	assert.ErrorIs(t, batch.Conflicts[0].Conflict, scheduling.ErrOutsideAvailability)
}

func TestExecute_InvalidWeekday(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{week: testWeek()}, &fakeNotifyClient{})

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        7,
		ProviderID:      42,
		StartAt:         monday(10, 0),
		DurationMinutes: ptr.Ptr(60),
		Weekdays:        []int{7},
		Until:           monday(0, 0).AddDate(0, 0, 14),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SeriesSpanTooLong(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{week: testWeek()}, &fakeNotifyClient{})

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        7,
		ProviderID:      42,
		StartAt:         monday(10, 0),
		DurationMinutes: ptr.Ptr(60),
		Weekdays:        []int{1},
		Until:           monday(0, 0).AddDate(0, 0, domain.MaxRecurrenceSpanDays+1),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
