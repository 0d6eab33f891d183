package models

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

// ServiceTagModel is a tagged piece of client equipment. Tags are unique per client.
type ServiceTagModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	ClientID     string `gorm:"size:36;not null;uniqueIndex:uk_service_tags_client_tag,priority:1"`
	Tag          string `gorm:"size:100;not null;uniqueIndex:uk_service_tags_client_tag,priority:2"`
	Description  string `gorm:"type:text;not null"`
	HardwareType string `gorm:"size:100;not null;default:''"`
	Location     string `gorm:"size:255;not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ServiceTagModel) TableName() string {
	return constants.TableServiceTags
}
