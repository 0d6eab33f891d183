package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

var serviceTagOrderColumns = map[string]string{
	"tag":           "tag",
	"hardware_type": "hardware_type",
	"location":      "location",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
}

type ServiceTagRepository struct {
	db     *gorm.DB
	mapper mappers.ServiceTagMapper
	logger logger.Interface
}

func NewServiceTagRepository(db *gorm.DB, logger logger.Interface) *ServiceTagRepository {
	return &ServiceTagRepository{
		db:     db,
		mapper: mappers.NewServiceTagMapper(),
		logger: logger,
	}
}

// Create surfaces unique-index violations unchanged so callers can
// recognise a duplicate tag.
func (r *ServiceTagRepository) Create(ctx context.Context, s *servicetag.ServiceTag) error {
	model := r.mapper.ToModel(s)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Warnw("failed to create service tag", "client_id", model.ClientID, "tag", model.Tag, "error", err)
		return fmt.Errorf("failed to create service tag: %w", err)
	}
	return nil
}

func (r *ServiceTagRepository) GetByID(ctx context.Context, id string) (*servicetag.ServiceTag, error) {
	var model models.ServiceTagModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service tag: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ServiceTagRepository) GetByClientAndTag(ctx context.Context, clientID, tag string) (*servicetag.ServiceTag, error) {
	var model models.ServiceTagModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("client_id = ? AND tag = ?", clientID, servicetag.NormalizeTag(tag)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service tag: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ServiceTagRepository) GetByIDs(ctx context.Context, ids []string) ([]*servicetag.ServiceTag, error) {
	if len(ids) == 0 {
		return []*servicetag.ServiceTag{}, nil
	}
	var rows []*models.ServiceTagModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Order("tag ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get service tags: %w", err)
	}
	return r.mapper.ToEntities(rows)
}

func (r *ServiceTagRepository) Update(ctx context.Context, s *servicetag.ServiceTag) error {
	model := r.mapper.ToModel(s)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ServiceTagModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"tag":           model.Tag,
			"description":   model.Description,
			"hardware_type": model.HardwareType,
			"location":      model.Location,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update service tag", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update service tag: %w", result.Error)
	}
	return nil
}

func (r *ServiceTagRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.ServiceTagModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete service tag", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete service tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("service tag not found")
	}
	return nil
}

func (r *ServiceTagRepository) List(ctx context.Context, filter servicetag.ListFilter) ([]*servicetag.ServiceTag, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.ServiceTagModel{})
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		q = q.Where("(LOWER(tag) LIKE ?"+likeEscape+" OR LOWER(hardware_type) LIKE ?"+likeEscape+" OR LOWER(location) LIKE ?"+likeEscape+")",
			pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count service tags: %w", err)
	}

	var rows []*models.ServiceTagModel
	err := q.Order(filter.OrderClause(serviceTagOrderColumns, "tag ASC")).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list service tags: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *ServiceTagRepository) CountByClient(ctx context.Context, clientID string) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.ServiceTagModel{}).Where("client_id = ?", clientID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count service tags: %w", err)
	}
	return count, nil
}
