package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/id"
)

const ticketSequenceName = "ticket"

// TicketNumberGenerator allocates TK-###### identifiers from the
// ticket_sequences row. The increment commits or rolls back with the
// caller's transaction, so a number is only consumed once its ticket is
// persisted and a rolled-back number is handed out again.
type TicketNumberGenerator struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewTicketNumberGenerator(db *gorm.DB) *TicketNumberGenerator {
	return &TicketNumberGenerator{db: db}
}

// Next joins the caller's transaction when ctx carries one.
func (g *TicketNumberGenerator) Next(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var seq int64
	err := db.GetTxFromContext(ctx, g.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.TicketSequenceModel{}).
			Where("name = ?", ticketSequenceName).
			Update("current_seq", gorm.Expr("current_seq + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if err := g.seed(tx); err != nil {
				return err
			}
		}

		var row models.TicketSequenceModel
		if err := tx.Where("name = ?", ticketSequenceName).First(&row).Error; err != nil {
			return err
		}
		seq = row.CurrentSeq
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to allocate ticket number: %w", err)
	}

	return id.FormatTicketID(seq), nil
}

// seed creates the sequence row starting after the highest existing ticket.
func (g *TicketNumberGenerator) seed(tx *gorm.DB) error {
	var maxID *string
	err := tx.Model(&models.TicketModel{}).Select("MAX(id)").Scan(&maxID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to get max ticket id: %w", err)
	}

	var start int64
	if maxID != nil {
		if parsed, perr := id.ParseTicketSeq(*maxID); perr == nil {
			start = parsed
		}
	}

	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TicketSequenceModel{Name: ticketSequenceName, CurrentSeq: start + 1}).Error
}
