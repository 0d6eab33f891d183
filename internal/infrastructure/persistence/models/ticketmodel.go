package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

// TicketModel represents the database persistence model for tickets.
// Service tag links live in ticket_service_tags and are loaded separately.
type TicketModel struct {
	ID              string                      `gorm:"primaryKey;size:16"`
	Title           string                      `gorm:"size:200;not null"`
	Description     string                      `gorm:"type:text;not null"`
	Status          string                      `gorm:"size:32;not null;index:idx_tickets_status"`
	Priority        string                      `gorm:"size:16;not null"`
	Source          string                      `gorm:"size:16;not null"`
	ClientID        string                      `gorm:"size:36;not null;index:idx_tickets_client_id"`
	ReporterID      *string                     `gorm:"size:36"`
	AssigneeID      *string                     `gorm:"size:36;index:idx_tickets_assignee_id"`
	ContactName     string                      `gorm:"size:255;not null;default:''"`
	ContactEmail    string                      `gorm:"size:255;not null;default:''"`
	ContactPhone    string                      `gorm:"size:64;not null;default:''"`
	PhotoURLs       datatypes.JSONSlice[string] `gorm:"column:photo_urls;type:text"`
	ApprovedBy      *string                     `gorm:"size:36"`
	ApprovedAt      *time.Time
	RejectedBy      *string `gorm:"size:36"`
	RejectedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`
	OpenedAt        *time.Time
	ClosedAt        *time.Time
	CreatedAt       time.Time `gorm:"index:idx_tickets_created_at"`
	UpdatedAt       time.Time
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

// TicketServiceTagModel links a ticket to a service tag.
type TicketServiceTagModel struct {
	TicketID     string `gorm:"primaryKey;size:16"`
	ServiceTagID string `gorm:"primaryKey;size:36;index:idx_ticket_service_tags_tag"`
	CreatedAt    time.Time
}

func (TicketServiceTagModel) TableName() string {
	return constants.TableTicketServiceTags
}

// TicketSequenceModel holds the last allocated ticket number.
type TicketSequenceModel struct {
	Name       string `gorm:"primaryKey;size:32"`
	CurrentSeq int64  `gorm:"not null"`
}

func (TicketSequenceModel) TableName() string {
	return constants.TableTicketSequences
}
