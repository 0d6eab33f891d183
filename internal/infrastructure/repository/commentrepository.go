package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
)

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db, mapper: mappers.NewTicketMapper()}
}

func (r *CommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.CommentToModel(c)).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*ticket.Comment, error) {
	var model models.CommentModel
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return r.mapper.CommentToDomain(&model)
}

// ListByTicket returns visible comments, oldest first.
func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID string) ([]*ticket.Comment, error) {
	var rows []*models.CommentModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	out := make([]*ticket.Comment, 0, len(rows))
	for _, row := range rows {
		c, err := r.mapper.CommentToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CommentRepository) SoftDelete(ctx context.Context, c *ticket.Comment) error {
	deletedAt := c.DeletedAt()
	if deletedAt == nil {
		return fmt.Errorf("comment %s is not marked deleted", c.ID())
	}
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CommentModel{}).
		Where("id = ?", c.ID()).
		Update("deleted_at", *deletedAt).Error
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// PurgeDeleted permanently removes comments soft-deleted before cutoff.
func (r *CommentRepository) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	res := db.GetTxFromContext(ctx, r.db).
		Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&models.CommentModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge deleted comments: %w", res.Error)
	}
	return res.RowsAffected, nil
}
