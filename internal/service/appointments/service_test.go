package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-ScheduleService/internal/service/appointments/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

type fakeRepo struct {
	appointments map[int64]*domain.Appointment
	cancelled    map[int64]string
	statuses     map[int64]domain.AppointmentStatus
}

func newFakeRepo(appts ...*domain.Appointment) *fakeRepo {
	repo := &fakeRepo{
		appointments: make(map[int64]*domain.Appointment),
		cancelled:    make(map[int64]string),
		statuses:     make(map[int64]domain.AppointmentStatus),
	}
	for _, a := range appts {
		repo.appointments[a.ID] = a
	}
	return repo
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeRepo) GetByProviderWithFilter(_ context.Context, filter domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if a.ProviderID == filter.ProviderID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := f.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := f.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.cancelled[id] = reason
	return nil
}

type fakeNotifyClient struct {
	cancelled []int64
	err       error
}

func (f *fakeNotifyClient) AppointmentCancelled(_ context.Context, appt *domain.Appointment, _ string) error {
	f.cancelled = append(f.cancelled, appt.ID)
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAppointment(id int64, status domain.AppointmentStatus) *domain.Appointment {
	start := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:         id,
		ProviderID: 42,
		ClientID:   ptr.Ptr(int64(7)),
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Status:     status,
	}
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := newFakeRepo(testAppointment(1, domain.StatusConfirmed))
	svc := NewService(repo, &fakeNotifyClient{}, nopLogger{})

	// Провайдер и клиент видят запись
	_, err := svc.GetByID(context.Background(), 1, 42)
	assert.NoError(t, err)
	_, err = svc.GetByID(context.Background(), 1, 7)
	assert.NoError(t, err)

	// Посторонний пользователь - нет
	_, err = svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel(t *testing.T) {
	repo := newFakeRepo(testAppointment(1, domain.StatusConfirmed))
	notify := &fakeNotifyClient{}
	svc := NewService(repo, notify, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID:             7,
		CancellationReason: "не смогу прийти",
	})

	require.NoError(t, err)
	assert.Equal(t, "не смогу прийти", repo.cancelled[1])
	assert.Equal(t, []int64{1}, notify.cancelled)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo := newFakeRepo(testAppointment(1, domain.StatusCancelled))
	svc := NewService(repo, &fakeNotifyClient{}, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 7})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_StrangerDenied(t *testing.T) {
	repo := newFakeRepo(testAppointment(1, domain.StatusConfirmed))
	svc := NewService(repo, &fakeNotifyClient{}, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	repo := newFakeRepo(testAppointment(1, domain.StatusConfirmed))
	svc := NewService(repo, &fakeNotifyClient{}, nopLogger{})

	// confirmed -> in_process разрешён, выполняет провайдер
	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: 42,
		Status: "in_process",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProcess, repo.statuses[1])

	// confirmed -> cancelled через смену статуса запрещён: отмена идёт через Cancel
	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: 42,
		Status: "cancelled",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_ClientDenied(t *testing.T) {
	repo := newFakeRepo(testAppointment(1, domain.StatusConfirmed))
	svc := NewService(repo, &fakeNotifyClient{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: 7,
		Status: "in_process",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetProviderAppointments_OnlyOwner(t *testing.T) {
	repo := newFakeRepo(testAppointment(1, domain.StatusConfirmed))
	svc := NewService(repo, &fakeNotifyClient{}, nopLogger{})

	resp, err := svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{
		UserID:     42,
		ProviderID: 42,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{
		UserID:     7,
		ProviderID: 42,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
