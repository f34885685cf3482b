package delete_non_working_day

import (
	"context"
)

type ScheduleService interface {
	DeleteNonWorkingDay(ctx context.Context, userID int64, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
