package models

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

// UserModel mirrors an identity-provider account in the relational store.
// The ID is shared with the identity.
type UserModel struct {
	ID        string  `gorm:"primaryKey;size:36"`
	Email     string  `gorm:"size:255;not null;uniqueIndex:uk_users_email"`
	Name      string  `gorm:"size:255;not null"`
	Role      string  `gorm:"size:20;not null;index:idx_users_role"`
	ClientID  *string `gorm:"size:36;index:idx_users_client_id"`
	Disabled  bool    `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
