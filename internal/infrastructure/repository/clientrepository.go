package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

var clientOrderColumns = map[string]string{
	"company_name": "company_name",
	"contact_name": "contact_name",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
}

type ClientRepository struct {
	db     *gorm.DB
	mapper mappers.ClientMapper
	logger logger.Interface
}

func NewClientRepository(db *gorm.DB, logger logger.Interface) *ClientRepository {
	return &ClientRepository{
		db:     db,
		mapper: mappers.NewClientMapper(),
		logger: logger,
	}
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	model := r.mapper.ToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create client", "company_name", model.CompanyName, "error", err)
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*client.Client, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ClientRepository) GetByCompanyName(ctx context.Context, companyName string) (*client.Client, error) {
	return r.first(ctx, "company_name = ?", client.NormalizeCompanyName(companyName))
}

func (r *ClientRepository) first(ctx context.Context, cond string, arg any) (*client.Client, error) {
	var model models.ClientModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ClientRepository) GetByIDs(ctx context.Context, ids []string) ([]*client.Client, error) {
	if len(ids) == 0 {
		return []*client.Client{}, nil
	}
	var rows []*models.ClientModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	return r.mapper.ToEntities(rows)
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	model := r.mapper.ToModel(c)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ClientModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"contact_name": model.ContactName,
			"company_name": model.CompanyName,
			"email":        model.Email,
			"phone":        model.Phone,
			"address":      model.Address,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update client", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.ClientModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete client", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("client not found")
	}
	return nil
}

func (r *ClientRepository) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.ClientModel{})
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		q = q.Where("(LOWER(company_name) LIKE ?"+likeEscape+" OR LOWER(contact_name) LIKE ?"+likeEscape+" OR LOWER(email) LIKE ?"+likeEscape+")",
			pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	var rows []*models.ClientModel
	err := q.Order(filter.OrderClause(clientOrderColumns, "company_name ASC")).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}
