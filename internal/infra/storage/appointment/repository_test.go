package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func appointmentRows(appts ...*domain.Appointment) *sqlmock.Rows {
	rows := sqlmock.NewRows(appointmentColumns)
	for _, a := range appts {
		rows.AddRow(
			a.ID, a.ProviderID, a.ClientID, a.ServiceID, a.SeriesID,
			a.StartAt, a.EndAt, string(a.Status), a.ServiceTitle, a.PriceCharged,
			a.Notes, a.CancellationReason, a.CancelledAt, a.CreatedAt, a.UpdatedAt,
		)
	}
	return rows
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	start := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	stored := &domain.Appointment{
		ID:         1,
		ProviderID: 42,
		ClientID:   ptr.Ptr(int64(7)),
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Status:     domain.StatusConfirmed,
		CreatedAt:  start.Add(-24 * time.Hour),
		UpdatedAt:  start.Add(-24 * time.Hour),
	}

	mock.ExpectQuery("SELECT .+ FROM appointments WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(appointmentRows(stored))

	appt, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), appt.ID)
	assert.Equal(t, int64(42), appt.ProviderID)
	assert.Equal(t, start, appt.StartAt)
	assert.Equal(t, domain.StatusConfirmed, appt.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM appointments WHERE id = \\$1").
		WithArgs(int64(99)).
		WillReturnRows(appointmentRows())

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExclusionViolationMapsToIntervalConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "appointments_no_overlap"})

	start := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	_, err := repo.Create(context.Background(), &domain.Appointment{
		ProviderID: 42,
		ClientID:   ptr.Ptr(int64(7)),
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Status:     domain.StatusConfirmed,
	})

	assert.ErrorIs(t, err, ErrIntervalConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByProviderWithFilter_ExcludesCancelledByDefault(t *testing.T) {
	repo, mock := newMockRepo(t)

	start := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	active := &domain.Appointment{
		ID:         1,
		ProviderID: 42,
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Status:     domain.StatusConfirmed,
	}

	// Отменённые записи отфильтровываются условием status NOT IN
	mock.ExpectQuery("SELECT .+ FROM appointments WHERE provider_id = \\$1 AND status NOT IN \\(\\$2\\) ORDER BY start_at ASC, end_at ASC").
		WithArgs(int64(42), string(domain.StatusCancelled)).
		WillReturnRows(appointmentRows(active))

	appts, err := repo.GetByProviderWithFilter(context.Background(), domain.ProviderAppointmentsFilter{
		ProviderID: 42,
	})
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, int64(1), appts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE appointments SET status = \\$1, cancellation_reason = \\$2, cancelled_at = NOW\\(\\), updated_at = NOW\\(\\) WHERE id = \\$3").
		WithArgs(string(domain.StatusCancelled), "клиент заболел", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 5, "клиент заболел")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 99, "")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReschedule_ExclusionViolationMapsToIntervalConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE appointments SET start_at = \\$1, end_at = \\$2").
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "appointments_no_overlap"})

	start := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	err := repo.Reschedule(context.Background(), 5, domain.TimeInterval{Start: start, End: start.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrIntervalConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
