package create_recurring_appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduling"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

// UseCase use case для создания серии повторяющихся записей
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

// Execute выполняет use case создания серии записей
// Политика - всё или ничего: при конфликте хотя бы одной даты возвращается
// *scheduling.BatchConflictError со всеми конфликтами, и серия не создаётся
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRecurringAppointments: client=%d, provider=%d, start=%s, until=%s, weekdays=%v",
		req.ClientID, req.ProviderID, req.StartAt.Format(time.RFC3339),
		req.Until.Format(domain.DateFormat), req.Weekdays)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRecurringAppointments: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	if err := validateNotInPast(req.StartAt, now); err != nil {
		uc.logger.Warn("CreateRecurringAppointments: start=%s is in the past", req.StartAt.Format(time.RFC3339))
		return nil, err
	}

	// 3. Получаем услугу, если указана
	var service *domain.Service
	if req.ServiceID != nil {
		var err error
		service, err = uc.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateRecurringAppointments: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("CreateRecurringAppointments: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		if service.UserID != req.ProviderID {
			uc.logger.Warn("CreateRecurringAppointments: service id=%d belongs to provider=%d, not %d",
				*req.ServiceID, service.UserID, req.ProviderID)
			return nil, ErrServiceNotOwned
		}
	}

	// 4. Вычисляем базовый интервал серии
	durationMinutes := 0
	if req.DurationMinutes != nil {
		durationMinutes = *req.DurationMinutes
	} else {
		durationMinutes = service.DurationMinutes
		if err := validateDuration(durationMinutes); err != nil {
			uc.logger.Warn("CreateRecurringAppointments: service id=%d has invalid duration=%d",
				*req.ServiceID, durationMinutes)
			return nil, err
		}
	}

	base, err := domain.NewTimeInterval(req.StartAt, req.StartAt.Add(time.Duration(durationMinutes)*time.Minute))
	if err != nil {
		uc.logger.Warn("CreateRecurringAppointments: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Переменная для хранения результата
	var result []*domain.Appointment
	seriesID := uuid.New()

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем недельное расписание провайдера
		week, err := uc.scheduleRepo.GetWeeklySchedule(txCtx, req.ProviderID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("CreateRecurringAppointments: schedule for provider=%d not found", req.ProviderID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("CreateRecurringAppointments: failed to get schedule for provider=%d: %v",
				req.ProviderID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 5.2. Разворачиваем серию в конкретные интервалы.
		// Локальное время суток сохраняется в зоне провайдера,
		// переходы на летнее/зимнее время слоты не сдвигают
		loc, err := week.Location()
		if err != nil {
			uc.logger.Error("CreateRecurringAppointments: invalid timezone for provider=%d: %v", req.ProviderID, err)
			return fmt.Errorf("%w: invalid timezone: %v", ErrInternal, err)
		}

		instances, err := scheduling.ExpandSeries(base, toWeekdaySet(req.Weekdays), req.Until, loc)
		if err != nil {
			uc.logger.Warn("CreateRecurringAppointments: failed to expand series: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 5.3. Получаем нерабочие дни на весь диапазон серии
		nwFrom := base.Start.AddDate(0, 0, -1)
		nwTo := req.Until.AddDate(0, 0, 2)
		nonWorkingDays, err := uc.scheduleRepo.ListNonWorkingDays(txCtx, req.ProviderID, &nwFrom, &nwTo)
		if err != nil {
			uc.logger.Error("CreateRecurringAppointments: failed to get non-working days for provider=%d: %v",
				req.ProviderID, err)
			return fmt.Errorf("%w: failed to get non-working days: %v", ErrInternal, err)
		}

		// 5.4. Строим модель доступности
		availability, err := scheduling.NewAvailability(week, nonWorkingDays)
		if err != nil {
			uc.logger.Error("CreateRecurringAppointments: invalid schedule for provider=%d: %v", req.ProviderID, err)
			return fmt.Errorf("%w: invalid schedule: %v", ErrInternal, err)
		}

		// 5.5. Получаем активные записи на весь диапазон с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByProviderWithFilter(txCtx, domain.ProviderAppointmentsFilter{
			ProviderID: req.ProviderID,
			From:       &nwFrom,
			To:         &nwTo,
		})
		if err != nil {
			uc.logger.Error("CreateRecurringAppointments: failed to get appointments for provider=%d: %v",
				req.ProviderID, err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.6. Валидируем все экземпляры серии, собирая все конфликты
		ledger := scheduling.NewLedger(appointments, nil)
		if err := scheduling.ValidateSeries(availability, ledger, instances); err != nil {
			uc.logger.Warn("CreateRecurringAppointments: series conflicts for provider=%d: %v", req.ProviderID, err)
			return err
		}

		// 5.7. Создаем все записи серии
		toCreate := make([]*domain.Appointment, len(instances))
		for i, instance := range instances {
			appointment := &domain.Appointment{
				ProviderID: req.ProviderID,
				ClientID:   ptr.Ptr(req.ClientID),
				ServiceID:  req.ServiceID,
				SeriesID:   &seriesID,
				StartAt:    instance.Start,
				EndAt:      instance.End,
				Status:     domain.StatusConfirmed,
				Notes:      req.Notes,
			}
			if service != nil {
				appointment.ServiceTitle = ptr.Ptr(service.Title)
				appointment.PriceCharged = ptr.Ptr(service.Price)
			}
			toCreate[i] = appointment
		}

		created, err := uc.appointmentRepo.CreateSeries(txCtx, toCreate)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrIntervalConflict) {
				uc.logger.Warn("CreateRecurringAppointments: interval conflict on insert for provider=%d",
					req.ProviderID)
				return &scheduling.Conflict{
					Reason:   scheduling.ReasonDoubleBooked,
					Proposed: base,
				}
			}
			uc.logger.Error("CreateRecurringAppointments: failed to create series: %v", err)
			return fmt.Errorf("%w: failed to create series: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateRecurringAppointments: successfully created series=%s with %d appointments",
		seriesID, len(result))

	// 6. Уведомляем провайдера, недоступность NotifyService серию не откатывает
	if err := uc.notifyClient.SeriesCreated(ctx, result); err != nil {
		uc.logger.Warn("CreateRecurringAppointments: failed to notify about series=%s: %v", seriesID, err)
	}

	// 7. Конвертируем в response
	resp := &Response{
		SeriesID:    seriesID.String(),
		ProviderID:  req.ProviderID,
		ClientID:    req.ClientID,
		Status:      string(domain.StatusConfirmed),
		Occurrences: make([]Occurrence, len(result)),
	}
	for i, appointment := range result {
		resp.Occurrences[i] = Occurrence{
			ID:      appointment.ID,
			StartAt: appointment.StartAt,
			EndAt:   appointment.EndAt,
		}
	}

	return resp, nil
}
