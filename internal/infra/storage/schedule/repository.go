package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// pgUniqueViolation код SQLSTATE 23505 (unique_violation)
const pgUniqueViolation = "23505"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий недельного расписания и нерабочих дней провайдера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklySchedule получает недельное расписание провайдера
// Дни без строки в working_hours считаются нерабочими
// Возвращает ErrScheduleNotFound, если у провайдера нет ни одной строки
func (r *Repository) GetWeeklySchedule(ctx context.Context, userID int64) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"is_working_day",
		"start_time",
		"end_time",
		"break_start",
		"break_end",
		"timezone",
	).
		From("working_hours").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	week := &domain.WeeklySchedule{
		UserID:   userID,
		Timezone: domain.DefaultTimezone,
	}
	for i := range week.Days {
		week.Days[i].Weekday = time.Weekday(i)
	}

	found := false
	for rows.Next() {
		var (
			weekday int
			day     domain.DaySchedule
			tz      string
		)
		err := rows.Scan(
			&weekday,
			&day.IsWorkingDay,
			&day.StartTime,
			&day.EndTime,
			&day.BreakStart,
			&day.BreakEnd,
			&tz,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeeklySchedule - scan row: %v", ErrScanRow, err)
		}

		day.Weekday = time.Weekday(weekday)
		week.Days[weekday] = day
		week.Timezone = tz
		found = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - rows error: %v", ErrScanRow, err)
	}

	if !found {
		return nil, ErrScheduleNotFound
	}

	return week, nil
}

// ReplaceWeeklySchedule полностью заменяет недельное расписание провайдера
// Каждая дневная строка замещается целиком (upsert по (user_id, weekday)) -
// частичное слияние полей дня не поддерживается
func (r *Repository) ReplaceWeeklySchedule(ctx context.Context, week *domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, day := range week.Days {
		query, args, err := psqlbuilder.Insert("working_hours").
			Columns(
				"user_id",
				"weekday",
				"is_working_day",
				"start_time",
				"end_time",
				"break_start",
				"break_end",
				"timezone",
			).
			Values(
				week.UserID,
				int(day.Weekday),
				day.IsWorkingDay,
				nullableTime(day.IsWorkingDay, day.StartTime),
				nullableTime(day.IsWorkingDay, day.EndTime),
				day.BreakStart,
				day.BreakEnd,
				week.Timezone,
			).
			Suffix(`ON CONFLICT (user_id, weekday) DO UPDATE SET
				is_working_day = EXCLUDED.is_working_day,
				start_time = EXCLUDED.start_time,
				end_time = EXCLUDED.end_time,
				break_start = EXCLUDED.break_start,
				break_end = EXCLUDED.break_end,
				timezone = EXCLUDED.timezone,
				updated_at = NOW()`).
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: ReplaceWeeklySchedule - build upsert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceWeeklySchedule - execute upsert: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// ListNonWorkingDays получает нерабочие дни провайдера
// Опционально ограничивает период [from, to]
func (r *Repository) ListNonWorkingDays(ctx context.Context, userID int64, from, to *time.Time) ([]*domain.NonWorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"user_id",
		"date",
		"description",
		"created_at",
	).
		From("non_working_days").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *to})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListNonWorkingDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListNonWorkingDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.NonWorkingDay, 0)
	for rows.Next() {
		var day domain.NonWorkingDay
		var createdAt sql.NullTime

		err := rows.Scan(
			&day.ID,
			&day.UserID,
			&day.Date,
			&day.Description,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListNonWorkingDays - scan row: %v", ErrScanRow, err)
		}

		day.CreatedAt = createdAt.Time
		days = append(days, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListNonWorkingDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// CreateNonWorkingDay создает исключение-нерабочий день
// Повторное исключение на ту же дату возвращает ErrNonWorkingDayExists
func (r *Repository) CreateNonWorkingDay(ctx context.Context, day *domain.NonWorkingDay) (*domain.NonWorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("non_working_days").
		Columns("user_id", "date", "description").
		Values(day.UserID, day.Date, day.Description).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateNonWorkingDay - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNonWorkingDayExists
		}
		return nil, fmt.Errorf("%w: CreateNonWorkingDay - execute insert: %v", ErrExecQuery, err)
	}

	day.CreatedAt = createdAt.Time
	return day, nil
}

// DeleteNonWorkingDay удаляет исключение провайдера
// Фильтр по user_id гарантирует, что чужое исключение удалить нельзя
func (r *Repository) DeleteNonWorkingDay(ctx context.Context, userID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("non_working_days").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteNonWorkingDay - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteNonWorkingDay - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteNonWorkingDay - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNonWorkingDayNotFound
	}

	return nil
}

// nullableTime отдаёт NULL для нерабочих дней вместо пустой строки времени
func nullableTime(isWorkingDay bool, t types.TimeString) interface{} {
	if !isWorkingDay || t.IsZero() {
		return nil
	}
	return t
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
