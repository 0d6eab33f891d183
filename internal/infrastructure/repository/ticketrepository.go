package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// ticketOrderColumns is the whitelist of sortable fields.
var ticketOrderColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"status":     "status",
	"priority":   "priority",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"closed_at":  "closed_at",
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketRepository(db *gorm.DB, logger logger.Interface) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

// Create inserts the ticket row. Service tag links are written through ReplaceServiceTags.
func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.TicketModel
	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	links, err := r.loadTagLinks(tx, []string{model.ID})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(&model, links[model.ID])
}

// decisionColumns belong to SaveDecision and are never written by Update.
var decisionColumns = []string{"approved_by", "approved_at", "rejected_by", "rejected_at", "rejection_reason"}

// Update overwrites the editable columns of the row. Last write wins. A
// ticket still pending approval keeps its stored status and opened_at, so a
// stale copy cannot undo a concurrent approval.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	omit := append([]string{"id", "created_at"}, decisionColumns...)
	if t.Status() == vo.StatusPendingApproval {
		omit = append(omit, "status", "opened_at")
	}
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit(omit...).
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ticket not found")
	}
	return nil
}

// SaveDecision writes the approval columns only while the row is still
// pending and not rejected, so two concurrent decisions cannot both land.
func (r *TicketRepository) SaveDecision(ctx context.Context, t *ticket.Ticket) (bool, error) {
	model := r.mapper.ToModel(t)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("id = ? AND status = ? AND rejected_at IS NULL", model.ID, vo.StatusPendingApproval.String()).
		Updates(map[string]any{
			"status":           model.Status,
			"approved_by":      model.ApprovedBy,
			"approved_at":      model.ApprovedAt,
			"rejected_by":      model.RejectedBy,
			"rejected_at":      model.RejectedAt,
			"rejection_reason": model.RejectionReason,
			"opened_at":        model.OpenedAt,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to save approval decision: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Delete removes the ticket together with its links, comments and history.
func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", id).Delete(&models.TicketServiceTagModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete ticket service tags: %w", err)
		}
		if err := tx.Unscoped().Where("ticket_id = ?", id).Delete(&models.CommentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete ticket comments: %w", err)
		}
		if err := tx.Where("ticket_id = ?", id).Delete(&models.TicketUpdateModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete ticket updates: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.TicketModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete ticket: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("ticket not found")
		}
		r.logger.Infow("ticket deleted", "ticket_id", id)
		return nil
	})
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.TicketModel{})

	if filter.PendingQueue {
		q = q.Where("status = ? AND rejected_at IS NULL", vo.StatusPendingApproval.String())
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, s.String())
		}
		q = q.Where("status IN ?", statuses)
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", filter.Priority.String())
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Unassigned {
		q = q.Where("assignee_id IS NULL")
	} else if filter.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		q = q.Where("(LOWER(id) LIKE ?"+likeEscape+" OR LOWER(title) LIKE ?"+likeEscape+" OR LOWER(description) LIKE ?"+likeEscape+")",
			pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var rows []*models.TicketModel
	err := q.Order(filter.OrderClause(ticketOrderColumns, "created_at DESC")).
		Order("id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	links, err := r.loadTagLinks(tx, ids)
	if err != nil {
		return nil, 0, err
	}

	tickets := make([]*ticket.Ticket, 0, len(rows))
	for _, row := range rows {
		t, err := r.mapper.ToDomain(row, links[row.ID])
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}
	return tickets, total, nil
}

func (r *TicketRepository) loadTagLinks(tx *gorm.DB, ticketIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return out, nil
	}

	var links []models.TicketServiceTagModel
	err := tx.Where("ticket_id IN ?", ticketIDs).
		Order("created_at ASC").
		Order("service_tag_id ASC").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket service tags: %w", err)
	}
	for _, l := range links {
		out[l.TicketID] = append(out[l.TicketID], l.ServiceTagID)
	}
	return out, nil
}

func (r *TicketRepository) ReplaceServiceTags(ctx context.Context, ticketID string, tagIDs []string) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.TicketServiceTagModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear ticket service tags: %w", err)
		}

		now := biztime.NowUTC()
		seen := make(map[string]struct{}, len(tagIDs))
		rows := make([]models.TicketServiceTagModel, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			if _, dup := seen[tagID]; dup {
				continue
			}
			seen[tagID] = struct{}{}
			rows = append(rows, models.TicketServiceTagModel{TicketID: ticketID, ServiceTagID: tagID, CreatedAt: now})
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to link ticket service tags: %w", err)
		}
		return nil
	})
}

// AttachServiceTag is idempotent.
func (r *TicketRepository) AttachServiceTag(ctx context.Context, ticketID, tagID string) error {
	link := models.TicketServiceTagModel{TicketID: ticketID, ServiceTagID: tagID, CreatedAt: biztime.NowUTC()}
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
	if err != nil {
		return fmt.Errorf("failed to attach service tag: %w", err)
	}
	return nil
}

// DetachServiceTag is a no-op when the link does not exist.
func (r *TicketRepository) DetachServiceTag(ctx context.Context, ticketID, tagID string) error {
	err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ? AND service_tag_id = ?", ticketID, tagID).
		Delete(&models.TicketServiceTagModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to detach service tag: %w", err)
	}
	return nil
}

func (r *TicketRepository) CountByAssignee(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, &models.TicketModel{}, "assignee_id = ?", userID)
}

func (r *TicketRepository) CountByClient(ctx context.Context, clientID string) (int64, error) {
	return r.count(ctx, &models.TicketModel{}, "client_id = ?", clientID)
}

func (r *TicketRepository) CountByServiceTag(ctx context.Context, tagID string) (int64, error) {
	return r.count(ctx, &models.TicketServiceTagModel{}, "service_tag_id = ?", tagID)
}

func (r *TicketRepository) count(ctx context.Context, model any, cond string, arg any) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(model).Where(cond, arg).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return n, nil
}
