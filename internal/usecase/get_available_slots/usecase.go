package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduling"
)

// UseCase use case для получения доступных слотов
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	serviceRepo     ServiceRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		serviceRepo:     serviceRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Читает расписание и занятые интервалы без блокировок: ответ носит
// справочный характер, финальная проверка конфликтов идёт при создании записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, from=%s, to=%s, duration=%d, step=%d",
		req.ProviderID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat),
		req.DurationMinutes, req.StepMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем длительность слота: явная или из услуги
	durationMinutes := req.DurationMinutes
	if req.ServiceID != nil {
		service, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		durationMinutes = service.DurationMinutes
	}

	// 3. Получаем недельное расписание провайдера
	week, err := uc.scheduleRepo.GetWeeklySchedule(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("GetAvailableSlots: schedule for provider=%d not found", req.ProviderID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Получаем нерабочие дни в диапазоне
	nonWorkingDays, err := uc.scheduleRepo.ListNonWorkingDays(ctx, req.ProviderID, &req.From, &req.To)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get non-working days for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get non-working days: %v", ErrInternal, err)
	}

	// 5. Строим модель доступности
	availability, err := scheduling.NewAvailability(week, nonWorkingDays)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid schedule for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid schedule: %v", ErrInternal, err)
	}

	// 6. Получаем активные записи, пересекающие диапазон
	// Границы растянуты на сутки в обе стороны: локальный день провайдера
	// может выходить за пределы тех же календарных дат в UTC
	ledgerFrom := req.From.AddDate(0, 0, -1)
	ledgerTo := req.To.AddDate(0, 0, 2)
	appointments, err := uc.appointmentRepo.GetByProviderWithFilter(ctx, domain.ProviderAppointmentsFilter{
		ProviderID: req.ProviderID,
		From:       &ledgerFrom,
		To:         &ledgerTo,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	ledger := scheduling.NewLedger(appointments, nil)

	// 7. Вычисляем слоты
	slots, err := scheduling.ResolveSlots(availability, ledger, req.From, req.To, durationMinutes, req.StepMinutes)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to resolve slots for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.logger.Info("GetAvailableSlots: resolved %d slots for provider=%d", len(slots), req.ProviderID)

	// 8. Конвертируем в response
	resp := &Response{
		ProviderID:      req.ProviderID,
		Timezone:        week.Timezone,
		DurationMinutes: durationMinutes,
		Slots:           make([]Slot, len(slots)),
	}
	for i, slot := range slots {
		resp.Slots[i] = Slot{StartAt: slot.Start, EndAt: slot.End}
	}

	return resp, nil
}
