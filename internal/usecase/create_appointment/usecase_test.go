package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduling"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Моки зависимостей use case

type fakeAppointmentRepo struct {
	existing  []*domain.Appointment
	created   *domain.Appointment
	createErr error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	result := *appt
	result.ID = 101
	result.CreatedAt = time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	result.UpdatedAt = result.CreatedAt
	f.created = &result
	return &result, nil
}

func (f *fakeAppointmentRepo) GetByProviderWithFilter(_ context.Context, _ domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeScheduleRepo struct {
	week       *domain.WeeklySchedule
	weekErr    error
	nonWorking []*domain.NonWorkingDay
}

func (f *fakeScheduleRepo) GetWeeklySchedule(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	if f.weekErr != nil {
		return nil, f.weekErr
	}
	return f.week, nil
}

func (f *fakeScheduleRepo) ListNonWorkingDays(_ context.Context, _ int64, _, _ *time.Time) ([]*domain.NonWorkingDay, error) {
	return f.nonWorking, nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
	err      error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakeNotifyClient struct {
	notified []int64
	err      error
}

func (f *fakeNotifyClient) AppointmentCreated(_ context.Context, appt *domain.Appointment) error {
	f.notified = append(f.notified, appt.ID)
	return f.err
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

// Билдеры тестовых данных

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

func newTestUseCase(appts *fakeAppointmentRepo, schedules *fakeScheduleRepo, services *fakeServiceRepo, notify *fakeNotifyClient) *UseCase {
	uc := NewUseCase(appts, schedules, services, notify, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_Success(t *testing.T) {
	appts := &fakeAppointmentRepo{}
	notify := &fakeNotifyClient{}
	uc := newTestUseCase(appts, &fakeScheduleRepo{week: testWeek()}, &fakeServiceRepo{}, notify)

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:        7,
		ProviderID:      42,
		StartAt:         monday(10, 0),
		DurationMinutes: ptr.Ptr(60),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, int64(42), resp.ProviderID)
	assert.Equal(t, monday(10, 0), resp.StartAt)
	assert.Equal(t, monday(11, 0), resp.EndAt)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	require.NotNil(t, appts.created)
	require.NotNil(t, appts.created.ClientID)
	assert.Equal(t, int64(7), *appts.created.ClientID)
	assert.Equal(t, []int64{101}, notify.notified)
}

func TestExecute_ServiceDurationAndPriceDenormalized(t *testing.T) {
	appts := &fakeAppointmentRepo{}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		5: {ID: 5, UserID: 42, Title: "Стрижка", DurationMinutes: 30, Price: 1500},
	}}
	uc := newTestUseCase(appts, &fakeScheduleRepo{week: testWeek()}, services, &fakeNotifyClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:   7,
		ProviderID: 42,
		ServiceID:  ptr.Ptr(int64(5)),
		StartAt:    monday(10, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, monday(10, 30), resp.EndAt)
	require.NotNil(t, resp.ServiceTitle)
	assert.Equal(t, "Стрижка", *resp.ServiceTitle)
	require.NotNil(t, resp.PriceCharged)
	assert.Equal(t, 1500.0, *resp.PriceCharged)
}

func TestExecute_ServiceNotOwned(t *testing.T) {
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		5: {ID: 5, UserID: 99, Title: "Стрижка", DurationMinutes: 30},
	}}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{week: testWeek()}, services, &fakeNotifyClient{})

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:   7,
		ProviderID: 42,
		ServiceID:  ptr.Ptr(int64(5)),
		StartAt:    monday(10, 0),
	})

	assert.ErrorIs(t, err, ErrServiceNotOwned)
}

func TestExecute_StartInPast(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{week: testWeek()}, &fakeServiceRepo{}, &fakeNotifyClient{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        7,
		ProviderID:      42,
		StartAt:         monday(10, 0),
		DurationMinutes: ptr.Ptr(60),
	})

	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_DoubleBookedReturnsConflictDetails(t *testing.T) {
	appts := &fakeAppointmentRepo{existing: []*domain.Appointment{
		{ID: 1, ProviderID: 42, StartAt: monday(10, 0), EndAt: monday(11, 0), Status: domain.StatusConfirmed},
	}}
	notify := &fakeNotifyClient{}
	uc := newTestUseCase(appts, &fakeScheduleRepo{week: testWeek()}, &fakeServiceRepo{}, notify)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        7,
		ProviderID:      42,
		StartAt:         monday(10, 30),
		DurationMinutes: ptr.Ptr(60),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, scheduling.ErrDoubleBooked)

	var conflict *scheduling.Conflict
	require.True(t, errors.As(err, &conflict))
	require.NotNil(t, conflict.Conflicting)
	assert.Equal(t, monday(10, 0), conflict.Conflicting.Start)
	assert.Empty(t, notify.notified)
}

func TestExecute_OutsideAvailability(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{week: testWeek()}, &fakeServiceRepo{}, &fakeNotifyClient{})

	// Воскресенье 2025-11-02 нерабочий день
	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        7,
		ProviderID:      42,
		StartAt:         time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC),
		DurationMinutes: ptr.Ptr(60),
	})

	assert.ErrorIs(t, err, scheduling.ErrOutsideAvailability)
}

func TestExecute_InsertRaceMapsToConflict(t *testing.T) {
	// Exclusion constraint сработал на вставке: проверка доступности прошла,
	// но конкурентная транзакция успела занять интервал
	appts := &fakeAppointmentRepo{createErr: appointmentRepo.ErrIntervalConflict}
	uc := newTestUseCase(appts, &fakeScheduleRepo{week: testWeek()}, &fakeServiceRepo{}, &fakeNotifyClient{})

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:        7,
		ProviderID:      42,
		StartAt:         monday(10, 0),
		DurationMinutes: ptr.Ptr(60),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, scheduling.ErrDoubleBooked)
}

func TestExecute_MissingDurationAndService(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{week: testWeek()}, &fakeServiceRepo{}, &fakeNotifyClient{})

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:   7,
		ProviderID: 42,
		StartAt:    monday(10, 0),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
