package create_recurring_appointments

import (
	"context"

	createRecurring "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_recurring_appointments"
)

type CreateRecurringAppointmentsUseCase interface {
	Execute(ctx context.Context, req *createRecurring.Request) (*createRecurring.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
