package create_non_working_day

import (
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

// CreateNonWorkingDayRequest тело запроса на добавление нерабочего дня
type CreateNonWorkingDayRequest struct {
	Date        string `json:"date"` // "2025-12-25"
	Description string `json:"description,omitempty"`
}

// ToServiceRequest конвертирует request в service модель
func (r *CreateNonWorkingDayRequest) ToServiceRequest(userID int64) *models.CreateNonWorkingDayRequest {
	return &models.CreateNonWorkingDayRequest{
		UserID:      userID,
		Date:        r.Date,
		Description: r.Description,
	}
}
