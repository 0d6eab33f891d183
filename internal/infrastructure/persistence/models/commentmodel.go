package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

type CommentModel struct {
	ID             string                      `gorm:"primaryKey;size:36"`
	TicketID       string                      `gorm:"size:16;not null;index:idx_comments_ticket_id"`
	AuthorID       *string                     `gorm:"size:36"`
	AuthorName     string                      `gorm:"size:255;not null;default:''"`
	AuthorRole     string                      `gorm:"size:20;not null;default:''"`
	Content        string                      `gorm:"type:text;not null"`
	AttachmentURLs datatypes.JSONSlice[string] `gorm:"column:attachment_urls;type:text"`
	CreatedAt      time.Time
	DeletedAt      gorm.DeletedAt
}

func (CommentModel) TableName() string {
	return constants.TableComments
}
