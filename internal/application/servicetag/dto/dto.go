package dto

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
)

type ServiceTagDTO struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	CompanyName  string    `json:"company_name,omitempty"`
	Tag          string    `json:"tag"`
	Description  string    `json:"description"`
	HardwareType string    `json:"hardware_type"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToServiceTagDTO(s *servicetag.ServiceTag) *ServiceTagDTO {
	if s == nil {
		return nil
	}
	return &ServiceTagDTO{
		ID:           s.ID(),
		ClientID:     s.ClientID(),
		Tag:          s.Tag(),
		Description:  s.Description(),
		HardwareType: s.HardwareType(),
		Location:     s.Location(),
		CreatedAt:    s.CreatedAt(),
		UpdatedAt:    s.UpdatedAt(),
	}
}
