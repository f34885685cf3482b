package create_non_working_day

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateNonWorkingDay(ctx context.Context, req *models.CreateNonWorkingDayRequest) (*models.NonWorkingDayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
