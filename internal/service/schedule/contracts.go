package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetWeeklySchedule(ctx context.Context, userID int64) (*domain.WeeklySchedule, error)
	ReplaceWeeklySchedule(ctx context.Context, schedule *domain.WeeklySchedule) error
	ListNonWorkingDays(ctx context.Context, userID int64, from, to *time.Time) ([]*domain.NonWorkingDay, error)
	CreateNonWorkingDay(ctx context.Context, day *domain.NonWorkingDay) (*domain.NonWorkingDay, error)
	DeleteNonWorkingDay(ctx context.Context, userID int64, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
