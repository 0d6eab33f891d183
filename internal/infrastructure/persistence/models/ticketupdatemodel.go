package models

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

// TicketUpdateModel is a history entry. Kind is stored when the entry is written.
type TicketUpdateModel struct {
	ID        string  `gorm:"primaryKey;size:36"`
	TicketID  string  `gorm:"size:16;not null;index:idx_ticket_updates_ticket_id"`
	UserID    *string `gorm:"size:36"`
	Kind      string  `gorm:"size:32;not null"`
	Message   string  `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (TicketUpdateModel) TableName() string {
	return constants.TableTicketUpdates
}
