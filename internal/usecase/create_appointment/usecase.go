package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduling"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

// UseCase use case для создания записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	serviceRepo     ServiceRepository
	notifyClient    NotifyServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	serviceRepo ServiceRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		serviceRepo:     serviceRepo,
		notifyClient:    notifyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных.
// Конфликты возвращаются как *scheduling.Conflict: хендлер различает
// scheduling.ErrOutsideAvailability и scheduling.ErrDoubleBooked через errors.Is
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, provider=%d, start=%s",
		req.ClientID, req.ProviderID, req.StartAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	if err := validateNotInPast(req.StartAt, now); err != nil {
		uc.logger.Warn("CreateAppointment: start=%s is in the past", req.StartAt.Format(time.RFC3339))
		return nil, err
	}

	// 3. Получаем услугу, если указана
	var service *domain.Service
	if req.ServiceID != nil {
		var err error
		service, err = uc.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		// Услуга должна принадлежать провайдеру, к которому идёт запись
		if service.UserID != req.ProviderID {
			uc.logger.Warn("CreateAppointment: service id=%d belongs to provider=%d, not %d",
				*req.ServiceID, service.UserID, req.ProviderID)
			return nil, ErrServiceNotOwned
		}
	}

	// 4. Вычисляем интервал записи
	durationMinutes := 0
	if req.DurationMinutes != nil {
		durationMinutes = *req.DurationMinutes
	} else {
		durationMinutes = service.DurationMinutes
		if err := validateDuration(durationMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: service id=%d has invalid duration=%d", *req.ServiceID, durationMinutes)
			return nil, err
		}
	}

	proposed, err := domain.NewTimeInterval(req.StartAt, req.StartAt.Add(time.Duration(durationMinutes)*time.Minute))
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем недельное расписание провайдера
		week, err := uc.scheduleRepo.GetWeeklySchedule(txCtx, req.ProviderID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("CreateAppointment: schedule for provider=%d not found", req.ProviderID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get schedule for provider=%d: %v", req.ProviderID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 5.2. Получаем нерабочие дни вокруг интервала записи
		// Запас в сутки с обеих сторон покрывает сдвиг локальной даты
		// провайдера относительно UTC
		nwFrom := proposed.Start.AddDate(0, 0, -1)
		nwTo := proposed.End.AddDate(0, 0, 1)
		nonWorkingDays, err := uc.scheduleRepo.ListNonWorkingDays(txCtx, req.ProviderID, &nwFrom, &nwTo)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get non-working days for provider=%d: %v", req.ProviderID, err)
			return fmt.Errorf("%w: failed to get non-working days: %v", ErrInternal, err)
		}

		// 5.3. Строим модель доступности
		availability, err := scheduling.NewAvailability(week, nonWorkingDays)
		if err != nil {
			uc.logger.Error("CreateAppointment: invalid schedule for provider=%d: %v", req.ProviderID, err)
			return fmt.Errorf("%w: invalid schedule: %v", ErrInternal, err)
		}

		// 5.4. Получаем активные записи вокруг интервала с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByProviderWithFilter(txCtx, domain.ProviderAppointmentsFilter{
			ProviderID: req.ProviderID,
			From:       &nwFrom,
			To:         &nwTo,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments for provider=%d: %v", req.ProviderID, err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.5. Проверяем доступность интервала
		ledger := scheduling.NewLedger(appointments, nil)
		if err := scheduling.ValidateBooking(availability, ledger, proposed); err != nil {
			uc.logger.Warn("CreateAppointment: booking conflict for provider=%d: %v", req.ProviderID, err)
			return err
		}

		// 5.6. Создаем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			ProviderID: req.ProviderID,
			ClientID:   ptr.Ptr(req.ClientID),
			ServiceID:  req.ServiceID,
			StartAt:    proposed.Start,
			EndAt:      proposed.End,
			Status:     domain.StatusConfirmed,
			Notes:      req.Notes,
		}
		if service != nil {
			appointment.ServiceTitle = ptr.Ptr(service.Title)
			appointment.PriceCharged = ptr.Ptr(service.Price)
		}

		// 5.7. Сохраняем запись
		// Exclusion constraint в БД страхует от гонки, которую не поймала
		// проверка выше
		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrIntervalConflict) {
				uc.logger.Warn("CreateAppointment: interval conflict on insert for provider=%d", req.ProviderID)
				return &scheduling.Conflict{
					Reason:   scheduling.ReasonDoubleBooked,
					Proposed: proposed,
				}
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 6. Уведомляем провайдера, недоступность NotifyService запись не откатывает
	if err := uc.notifyClient.AppointmentCreated(ctx, result); err != nil {
		uc.logger.Warn("CreateAppointment: failed to notify about appointment id=%d: %v", result.ID, err)
	}

	// 7. Конвертируем в response
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
