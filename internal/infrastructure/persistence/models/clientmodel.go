package models

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

// ClientModel is the persistence shape of a client organization.
type ClientModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	ContactName string `gorm:"size:255;not null;default:''"`
	CompanyName string `gorm:"size:255;not null;uniqueIndex:uk_clients_company_name"`
	Email       string `gorm:"size:255;not null;default:''"`
	Phone       string `gorm:"size:64;not null;default:''"`
	Address     string `gorm:"size:500;not null;default:''"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ClientModel) TableName() string {
	return constants.TableClients
}
