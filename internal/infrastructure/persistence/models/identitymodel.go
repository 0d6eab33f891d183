package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

// IdentityMetadata is the profile data kept next to the credentials.
type IdentityMetadata struct {
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	ClientID *string `json:"client_id,omitempty"`
}

// IdentityModel stores credentials for the built-in identity provider.
type IdentityModel struct {
	ID           string                                `gorm:"primaryKey;size:36"`
	Email        string                                `gorm:"size:255;not null;uniqueIndex:uk_identities_email"`
	PasswordHash string                                `gorm:"size:255;not null"`
	Disabled     bool                                  `gorm:"not null;default:false"`
	Metadata     datatypes.JSONType[IdentityMetadata] `gorm:"type:text"`
	LastSignInAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (IdentityModel) TableName() string {
	return constants.TableIdentities
}
