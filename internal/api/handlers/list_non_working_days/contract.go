package list_non_working_days

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListNonWorkingDays(ctx context.Context, req *models.ListNonWorkingDaysRequest) (*models.NonWorkingDayListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
