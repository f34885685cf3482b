package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модели

// DayScheduleInput расписание одного дня недели
type DayScheduleInput struct {
	Weekday      int     `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	IsWorkingDay bool    `json:"isWorkingDay"`
	StartTime    *string `json:"startTime,omitempty"`  // "09:00"
	EndTime      *string `json:"endTime,omitempty"`    // "18:00"
	BreakStart   *string `json:"breakStart,omitempty"` // "13:00"
	BreakEnd     *string `json:"breakEnd,omitempty"`   // "14:00"
}

// UpdateWeeklyScheduleRequest запрос на полную замену недельного расписания
type UpdateWeeklyScheduleRequest struct {
	UserID   int64              `json:"userId"`
	Timezone string             `json:"timezone"` // IANA, например "Europe/Moscow"
	Days     []DayScheduleInput `json:"days"`
}

// ToDomainSchedule конвертирует request в domain модель
// Дни, отсутствующие в запросе, становятся нерабочими
func (r *UpdateWeeklyScheduleRequest) ToDomainSchedule() (*domain.WeeklySchedule, error) {
	schedule := &domain.WeeklySchedule{
		UserID:   r.UserID,
		Timezone: r.Timezone,
	}
	for i := range schedule.Days {
		schedule.Days[i].Weekday = time.Weekday(i)
	}

	for _, day := range r.Days {
		if day.Weekday < 0 || day.Weekday > 6 {
			return nil, domain.ErrInvalidSchedule
		}

		ds := domain.DaySchedule{
			Weekday:      time.Weekday(day.Weekday),
			IsWorkingDay: day.IsWorkingDay,
		}

		if day.IsWorkingDay {
			if day.StartTime == nil || day.EndTime == nil {
				return nil, domain.ErrInvalidSchedule
			}
			start, err := types.NewTimeStringFromString(*day.StartTime)
			if err != nil {
				return nil, err
			}
			end, err := types.NewTimeStringFromString(*day.EndTime)
			if err != nil {
				return nil, err
			}
			ds.StartTime = start
			ds.EndTime = end

			if day.BreakStart != nil && day.BreakEnd != nil {
				breakStart, err := types.NewTimeStringFromString(*day.BreakStart)
				if err != nil {
					return nil, err
				}
				breakEnd, err := types.NewTimeStringFromString(*day.BreakEnd)
				if err != nil {
					return nil, err
				}
				ds.BreakStart = &breakStart
				ds.BreakEnd = &breakEnd
			} else if day.BreakStart != nil || day.BreakEnd != nil {
				return nil, domain.ErrInvalidSchedule
			}
		}

		schedule.Days[day.Weekday] = ds
	}

	return schedule, nil
}

// CreateNonWorkingDayRequest запрос на добавление нерабочего дня
type CreateNonWorkingDayRequest struct {
	UserID      int64  `json:"userId"`
	Date        string `json:"date"` // "2025-12-25"
	Description string `json:"description,omitempty"`
}

// ListNonWorkingDaysRequest запрос на получение нерабочих дней
type ListNonWorkingDaysRequest struct {
	UserID int64      `json:"userId"`
	From   *time.Time `json:"from,omitempty"`
	To     *time.Time `json:"to,omitempty"`
}

// Response модели

// DayScheduleResponse расписание одного дня недели
type DayScheduleResponse struct {
	Weekday      int     `json:"weekday"`
	IsWorkingDay bool    `json:"isWorkingDay"`
	StartTime    *string `json:"startTime,omitempty"`
	EndTime      *string `json:"endTime,omitempty"`
	BreakStart   *string `json:"breakStart,omitempty"`
	BreakEnd     *string `json:"breakEnd,omitempty"`
}

// WeeklyScheduleResponse недельное расписание провайдера
type WeeklyScheduleResponse struct {
	UserID   int64                 `json:"userId"`
	Timezone string                `json:"timezone"`
	Days     []DayScheduleResponse `json:"days"`
}

// NonWorkingDayResponse нерабочий день
type NonWorkingDayResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Date        string    `json:"date"` // "2025-12-25"
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NonWorkingDayListResponse список нерабочих дней
type NonWorkingDayListResponse struct {
	NonWorkingDays []NonWorkingDayResponse `json:"nonWorkingDays"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.WeeklySchedule) *WeeklyScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &WeeklyScheduleResponse{
		UserID:   s.UserID,
		Timezone: s.Timezone,
		Days:     make([]DayScheduleResponse, len(s.Days)),
	}

	for i, day := range s.Days {
		dayResp := DayScheduleResponse{
			Weekday:      int(day.Weekday),
			IsWorkingDay: day.IsWorkingDay,
		}
		if day.IsWorkingDay {
			start := day.StartTime.String()
			end := day.EndTime.String()
			dayResp.StartTime = &start
			dayResp.EndTime = &end
			if day.HasBreak() {
				breakStart := day.BreakStart.String()
				breakEnd := day.BreakEnd.String()
				dayResp.BreakStart = &breakStart
				dayResp.BreakEnd = &breakEnd
			}
		}
		resp.Days[i] = dayResp
	}

	return resp
}

// FromDomainNonWorkingDay конвертирует domain модель в DTO
func FromDomainNonWorkingDay(d *domain.NonWorkingDay) *NonWorkingDayResponse {
	if d == nil {
		return nil
	}

	return &NonWorkingDayResponse{
		ID:          d.ID,
		UserID:      d.UserID,
		Date:        d.Date.Format(domain.DateFormat),
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}

// FromDomainNonWorkingDayList конвертирует список domain моделей в DTO
func FromDomainNonWorkingDayList(days []*domain.NonWorkingDay) *NonWorkingDayListResponse {
	if days == nil {
		return &NonWorkingDayListResponse{
			NonWorkingDays: []NonWorkingDayResponse{},
		}
	}

	resp := &NonWorkingDayListResponse{
		NonWorkingDays: make([]NonWorkingDayResponse, len(days)),
	}

	for i, day := range days {
		if dayResp := FromDomainNonWorkingDay(day); dayResp != nil {
			resp.NonWorkingDays[i] = *dayResp
		}
	}

	return resp
}
