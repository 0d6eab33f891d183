package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

var userOrderColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"role":       "role",
	"created_at": "created_at",
}

// UserRepository stores the relational mirror of identity-provider accounts.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	r.logger.Infow("user created successfully", "id", model.ID, "email", model.Email)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) first(ctx context.Context, cond string, arg any) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map user model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map user: %w", err)
	}
	return entity, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}
	var rows []*models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return r.mapper.ToEntities(rows)
}

// Update writes the mutable columns. Role and client binding never change.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":       model.Name,
			"disabled":   model.Disabled,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update user", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// Delete removes the row. Ticket and comment references fall back to NULL.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.UserModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete user", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found")
	}
	r.logger.Infow("user deleted successfully", "id", id)
	return nil
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{})

	if len(filter.Roles) > 0 {
		roles := make([]string, 0, len(filter.Roles))
		for _, role := range filter.Roles {
			roles = append(roles, role.String())
		}
		q = q.Where("role IN ?", roles)
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Disabled != nil {
		q = q.Where("disabled = ?", *filter.Disabled)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		q = q.Where("(LOWER(name) LIKE ?"+likeEscape+" OR LOWER(email) LIKE ?"+likeEscape+")", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count users", "error", err)
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var rows []*models.UserModel
	err := q.Order(filter.OrderClause(userOrderColumns, "created_at DESC")).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list users", "error", err)
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *UserRepository) CountByClient(ctx context.Context, clientID string) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).Where("client_id = ?", clientID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
