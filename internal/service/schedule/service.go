package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

// Service сервис для работы с расписаниями провайдеров
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWeeklySchedule получает недельное расписание провайдера
func (s *Service) GetWeeklySchedule(ctx context.Context, providerID int64) (*models.WeeklyScheduleResponse, error) {
	s.logger.Info("GetWeeklySchedule: fetching schedule for provider=%d", providerID)

	schedule, err := s.scheduleRepo.GetWeeklySchedule(ctx, providerID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetWeeklySchedule: schedule for provider=%d not found", providerID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetWeeklySchedule: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetWeeklySchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWeeklySchedule: successfully fetched schedule for provider=%d", providerID)
	return models.FromDomainSchedule(schedule), nil
}

// UpdateWeeklySchedule полностью заменяет недельное расписание провайдера
// Дни, отсутствующие в запросе, становятся нерабочими
// Уже существующие записи замена не трогает
func (s *Service) UpdateWeeklySchedule(ctx context.Context, req *models.UpdateWeeklyScheduleRequest) (*models.WeeklyScheduleResponse, error) {
	s.logger.Info("UpdateWeeklySchedule: replacing schedule for provider=%d, timezone=%s", req.UserID, req.Timezone)

	schedule, err := req.ToDomainSchedule()
	if err != nil {
		s.logger.Warn("UpdateWeeklySchedule: invalid schedule for provider=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Валидируем расписание целиком, включая таймзону
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("UpdateWeeklySchedule: validation failed for provider=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Заменяем все 7 дней в одной транзакции
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.scheduleRepo.ReplaceWeeklySchedule(ctx, schedule)
	})
	if err != nil {
		s.logger.Error("UpdateWeeklySchedule: repository error for provider=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: UpdateWeeklySchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWeeklySchedule: successfully replaced schedule for provider=%d", req.UserID)
	return models.FromDomainSchedule(schedule), nil
}

// ListNonWorkingDays получает нерабочие дни провайдера
// Опционально фильтрует по периоду
func (s *Service) ListNonWorkingDays(ctx context.Context, req *models.ListNonWorkingDaysRequest) (*models.NonWorkingDayListResponse, error) {
	s.logger.Info("ListNonWorkingDays: fetching non-working days for provider=%d", req.UserID)

	days, err := s.scheduleRepo.ListNonWorkingDays(ctx, req.UserID, req.From, req.To)
	if err != nil {
		s.logger.Error("ListNonWorkingDays: repository error for provider=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListNonWorkingDays - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListNonWorkingDays: successfully fetched %d non-working days for provider=%d", len(days), req.UserID)
	return models.FromDomainNonWorkingDayList(days), nil
}

// CreateNonWorkingDay добавляет нерабочий день
// Дата должна быть уникальна в рамках провайдера
func (s *Service) CreateNonWorkingDay(ctx context.Context, req *models.CreateNonWorkingDayRequest) (*models.NonWorkingDayResponse, error) {
	s.logger.Info("CreateNonWorkingDay: adding non-working day %s for provider=%d", req.Date, req.UserID)

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, time.UTC)
	if err != nil {
		s.logger.Warn("CreateNonWorkingDay: invalid date=%s for provider=%d", req.Date, req.UserID)
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	if len(req.Description) > domain.MaxDescriptionLength {
		s.logger.Warn("CreateNonWorkingDay: description too long for provider=%d", req.UserID)
		return nil, fmt.Errorf("%w: description too long", ErrInvalidInput)
	}

	day := &domain.NonWorkingDay{
		UserID:      req.UserID,
		Date:        date,
		Description: req.Description,
	}

	created, err := s.scheduleRepo.CreateNonWorkingDay(ctx, day)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNonWorkingDayExists) {
			s.logger.Warn("CreateNonWorkingDay: non-working day %s already exists for provider=%d", req.Date, req.UserID)
			return nil, ErrNonWorkingDayExists
		}
		s.logger.Error("CreateNonWorkingDay: repository error for provider=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: CreateNonWorkingDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateNonWorkingDay: successfully added non-working day id=%d for provider=%d", created.ID, req.UserID)
	return models.FromDomainNonWorkingDay(created), nil
}

// DeleteNonWorkingDay удаляет нерабочий день
// Провайдер может удалить только свой нерабочий день
func (s *Service) DeleteNonWorkingDay(ctx context.Context, userID int64, id int64) error {
	s.logger.Info("DeleteNonWorkingDay: deleting non-working day id=%d for provider=%d", id, userID)

	if err := s.scheduleRepo.DeleteNonWorkingDay(ctx, userID, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrNonWorkingDayNotFound) {
			s.logger.Warn("DeleteNonWorkingDay: non-working day id=%d not found for provider=%d", id, userID)
			return ErrNonWorkingDayNotFound
		}
		s.logger.Error("DeleteNonWorkingDay: repository error for provider=%d: %v", userID, err)
		return fmt.Errorf("%w: DeleteNonWorkingDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteNonWorkingDay: successfully deleted non-working day id=%d for provider=%d", id, userID)
	return nil
}
