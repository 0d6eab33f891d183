package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
)

// TicketUpdateRepository stores ticket history entries.
type TicketUpdateRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketUpdateRepository(db *gorm.DB) *TicketUpdateRepository {
	return &TicketUpdateRepository{db: db, mapper: mappers.NewTicketMapper()}
}

func (r *TicketUpdateRepository) Create(ctx context.Context, u *ticket.Update) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.UpdateToModel(u)).Error; err != nil {
		return fmt.Errorf("failed to create ticket update: %w", err)
	}
	return nil
}

func (r *TicketUpdateRepository) ListByTicket(ctx context.Context, ticketID string) ([]*ticket.Update, error) {
	var rows []*models.TicketUpdateModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket updates: %w", err)
	}

	out := make([]*ticket.Update, 0, len(rows))
	for _, row := range rows {
		u, err := r.mapper.UpdateToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
