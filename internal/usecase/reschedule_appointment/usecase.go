package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduling"
)

// UseCase use case для переноса записи на другое время
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	notifyClient    NotifyServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		notifyClient:    notifyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса записи
// Длительность записи сохраняется, меняется только время начала.
// Старый интервал записи при проверке конфликтов не учитывается,
// поэтому перенос внутри собственного слота всегда возможен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, user=%d, newStart=%s",
		req.AppointmentID, req.UserID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	if err := validateNotInPast(req.StartAt, now); err != nil {
		uc.logger.Warn("RescheduleAppointment: newStart=%s is in the past", req.StartAt.Format(time.RFC3339))
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем запись
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 3.2. Проверяем права доступа (клиент записи или её провайдер)
		if err := checkUserAccess(appointment, req.UserID); err != nil {
			uc.logger.Warn("RescheduleAppointment: access denied for user=%d to appointment id=%d",
				req.UserID, req.AppointmentID)
			return err
		}

		// 3.3. Переносить можно только подтверждённую запись
		if !appointment.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d cannot be rescheduled, status=%s",
				req.AppointmentID, appointment.Status)
			return ErrCannotReschedule
		}

		// 3.4. Вычисляем новый интервал с исходной длительностью
		duration := appointment.EndAt.Sub(appointment.StartAt)
		proposed, err := domain.NewTimeInterval(req.StartAt, req.StartAt.Add(duration))
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: invalid interval: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 3.5. Получаем недельное расписание провайдера
		week, err := uc.scheduleRepo.GetWeeklySchedule(txCtx, appointment.ProviderID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("RescheduleAppointment: schedule for provider=%d not found", appointment.ProviderID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get schedule for provider=%d: %v",
				appointment.ProviderID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 3.6. Получаем нерабочие дни вокруг нового интервала
		nwFrom := proposed.Start.AddDate(0, 0, -1)
		nwTo := proposed.End.AddDate(0, 0, 1)
		nonWorkingDays, err := uc.scheduleRepo.ListNonWorkingDays(txCtx, appointment.ProviderID, &nwFrom, &nwTo)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get non-working days for provider=%d: %v",
				appointment.ProviderID, err)
			return fmt.Errorf("%w: failed to get non-working days: %v", ErrInternal, err)
		}

		// 3.7. Строим модель доступности
		availability, err := scheduling.NewAvailability(week, nonWorkingDays)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: invalid schedule for provider=%d: %v", appointment.ProviderID, err)
			return fmt.Errorf("%w: invalid schedule: %v", ErrInternal, err)
		}

		// 3.8. Получаем активные записи вокруг нового интервала с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByProviderWithFilter(txCtx, domain.ProviderAppointmentsFilter{
			ProviderID: appointment.ProviderID,
			From:       &nwFrom,
			To:         &nwTo,
		})
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments for provider=%d: %v",
				appointment.ProviderID, err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 3.9. Проверяем доступность, исключая саму переносимую запись
		ledger := scheduling.NewLedger(appointments, &appointment.ID)
		if err := scheduling.ValidateBooking(availability, ledger, proposed); err != nil {
			uc.logger.Warn("RescheduleAppointment: booking conflict for appointment id=%d: %v",
				req.AppointmentID, err)
			return err
		}

		// 3.10. Переносим запись
		if err := uc.appointmentRepo.Reschedule(txCtx, req.AppointmentID, proposed); err != nil {
			if errors.Is(err, appointmentRepo.ErrIntervalConflict) {
				uc.logger.Warn("RescheduleAppointment: interval conflict on update for appointment id=%d",
					req.AppointmentID)
				return &scheduling.Conflict{
					Reason:   scheduling.ReasonDoubleBooked,
					Proposed: proposed,
				}
			}
			uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v",
				req.AppointmentID, err)
			return fmt.Errorf("%w: failed to reschedule appointment: %v", ErrInternal, err)
		}

		appointment.StartAt = proposed.Start
		appointment.EndAt = proposed.End
		result = appointment
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d", result.ID)

	// 4. Уведомляем вторую сторону, недоступность NotifyService перенос не откатывает
	if err := uc.notifyClient.AppointmentRescheduled(ctx, result); err != nil {
		uc.logger.Warn("RescheduleAppointment: failed to notify about appointment id=%d: %v", result.ID, err)
	}

	// 5. Конвертируем в response
	return &Response{
		ID:           result.ID,
		ProviderID:   result.ProviderID,
		ClientID:     result.ClientID,
		ServiceID:    result.ServiceID,
		StartAt:      result.StartAt,
		EndAt:        result.EndAt,
		Status:       string(result.Status),
		ServiceTitle: result.ServiceTitle,
		PriceCharged: result.PriceCharged,
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к записи
func checkUserAccess(appointment *domain.Appointment, userID int64) error {
	if appointment.ProviderID == userID {
		return nil
	}
	if appointment.ClientID != nil && *appointment.ClientID == userID {
		return nil
	}
	return ErrAccessDenied
}
