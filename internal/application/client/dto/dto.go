package dto

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/client"
)

type ClientDTO struct {
	ID          string    `json:"id"`
	ContactName string    `json:"contact_name"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToClientDTO(c *client.Client) *ClientDTO {
	if c == nil {
		return nil
	}
	return &ClientDTO{
		ID:          c.ID(),
		ContactName: c.ContactName(),
		CompanyName: c.CompanyName(),
		Email:       c.Email(),
		Phone:       c.Phone(),
		Address:     c.Address(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func ToClientDTOs(clients []*client.Client) []*ClientDTO {
	out := make([]*ClientDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, ToClientDTO(c))
	}
	return out
}
