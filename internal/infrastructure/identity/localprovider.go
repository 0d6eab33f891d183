// Package identity is the built-in credential store behind user.IdentityProvider.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/id"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
	BurnVerify(password string)
}

// LocalProvider keeps bcrypt credentials in the identities table. Identity
// IDs are UUIDs and become the IDs of the mirrored user rows.
type LocalProvider struct {
	db     *gorm.DB
	hasher PasswordHasher
	logger logger.Interface
}

func NewLocalProvider(gdb *gorm.DB, hasher PasswordHasher, log logger.Interface) *LocalProvider {
	return &LocalProvider{
		db:     gdb,
		hasher: hasher,
		logger: log.Named("identity"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *LocalProvider) CreateIdentity(ctx context.Context, in user.NewIdentity) (string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", fmt.Errorf("email and password are required")
	}

	tx := db.GetTxFromContext(ctx, p.db)

	var count int64
	if err := tx.Model(&models.IdentityModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to check identity email: %w", err)
	}
	if count > 0 {
		return "", user.ErrIdentityExists
	}

	hash, err := p.hasher.Hash(in.Password)
	if err != nil {
		return "", err
	}

	model := &models.IdentityModel{
		ID:           id.NewUUID(),
		Email:        email,
		PasswordHash: hash,
		Metadata: datatypes.NewJSONType(models.IdentityMetadata{
			Name:     in.Name,
			Role:     in.Role.String(),
			ClientID: in.ClientID,
		}),
	}
	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return "", user.ErrIdentityExists
		}
		return "", fmt.Errorf("failed to create identity: %w", err)
	}

	p.logger.Infow("identity created", "identity_id", model.ID, "role", in.Role)
	return model.ID, nil
}

func (p *LocalProvider) UpdateIdentity(ctx context.Context, identityID string, changes user.IdentityChanges) error {
	tx := db.GetTxFromContext(ctx, p.db)

	var model models.IdentityModel
	if err := tx.Where("id = ?", identityID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("identity %s not found", identityID)
		}
		return fmt.Errorf("failed to load identity: %w", err)
	}

	updates := map[string]interface{}{"updated_at": biztime.NowUTC()}
	if changes.Name != nil {
		meta := model.Metadata.Data()
		meta.Name = *changes.Name
		updates["metadata"] = datatypes.NewJSONType(meta)
	}
	if changes.Disabled != nil {
		updates["disabled"] = *changes.Disabled
	}

	if err := tx.Model(&models.IdentityModel{}).Where("id = ?", identityID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update identity: %w", err)
	}
	return nil
}

func (p *LocalProvider) DeleteIdentity(ctx context.Context, identityID string) error {
	tx := db.GetTxFromContext(ctx, p.db)
	if err := tx.Where("id = ?", identityID).Delete(&models.IdentityModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}
	p.logger.Infow("identity deleted", "identity_id", identityID)
	return nil
}

// Authenticate checks the password only. Whether a disabled account may sign
// in is decided by the caller from the mirrored user row.
func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) (string, error) {
	tx := db.GetTxFromContext(ctx, p.db)

	var model models.IdentityModel
	if err := tx.Where("email = ?", normalizeEmail(email)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p.hasher.BurnVerify(password)
			return "", user.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to load identity: %w", err)
	}

	if err := p.hasher.Verify(password, model.PasswordHash); err != nil {
		return "", user.ErrInvalidCredentials
	}

	now := biztime.NowUTC()
	if err := tx.Model(&models.IdentityModel{}).Where("id = ?", model.ID).Update("last_sign_in_at", now).Error; err != nil {
		p.logger.Warnw("failed to record sign-in time", "identity_id", model.ID, "error", err)
	}
	return model.ID, nil
}

// ResetPassword replaces the stored hash. It backs the seed command when an
// account already exists.
func (p *LocalProvider) ResetPassword(ctx context.Context, identityID, password string) error {
	hash, err := p.hasher.Hash(password)
	if err != nil {
		return err
	}
	res := db.GetTxFromContext(ctx, p.db).Model(&models.IdentityModel{}).
		Where("id = ?", identityID).
		Updates(map[string]interface{}{"password_hash": hash, "updated_at": biztime.NowUTC()})
	if res.Error != nil {
		return fmt.Errorf("failed to reset password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("identity %s not found", identityID)
	}
	return nil
}

// LookupByEmail returns the identity ID for email, or "" when none exists.
func (p *LocalProvider) LookupByEmail(ctx context.Context, email string) (string, error) {
	var model models.IdentityModel
	err := db.GetTxFromContext(ctx, p.db).Select("id").Where("email = ?", normalizeEmail(email)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up identity: %w", err)
	}
	return model.ID, nil
}
