package mappers

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket aggregates, their
// comments and history entries, and the persistence models.
type TicketMapper interface {
	// ToModel converts a ticket to its row. Service tag links are not part of the row.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToDomain rebuilds a ticket from its row and the linked service tag ids.
	ToDomain(model *models.TicketModel, tagIDs []string) (*ticket.Ticket, error)

	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)

	UpdateToModel(u *ticket.Update) *models.TicketUpdateModel
	UpdateToDomain(model *models.TicketUpdateModel) (*ticket.Update, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	contact := t.Contact()
	return &models.TicketModel{
		ID:              t.ID(),
		Title:           t.Title(),
		Description:     t.Description(),
		Status:          t.Status().String(),
		Priority:        t.Priority().String(),
		Source:          t.Source().String(),
		ClientID:        t.ClientID(),
		ReporterID:      t.ReporterID(),
		AssigneeID:      t.AssigneeID(),
		ContactName:     contact.Name,
		ContactEmail:    contact.Email,
		ContactPhone:    contact.Phone,
		PhotoURLs:       datatypes.NewJSONSlice(nonNil(t.PhotoURLs())),
		ApprovedBy:      t.ApprovedBy(),
		ApprovedAt:      t.ApprovedAt(),
		RejectedBy:      t.RejectedBy(),
		RejectedAt:      t.RejectedAt(),
		RejectionReason: t.RejectionReason(),
		OpenedAt:        t.OpenedAt(),
		ClosedAt:        t.ClosedAt(),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel, tagIDs []string) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	t, err := ticket.ReconstructTicket(ticket.Snapshot{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Status:      vo.TicketStatus(model.Status),
		Priority:    vo.Priority(model.Priority),
		Source:      vo.Source(model.Source),
		ClientID:    model.ClientID,
		ReporterID:  model.ReporterID,
		AssigneeID:  model.AssigneeID,
		Contact: ticket.Contact{
			Name:  model.ContactName,
			Email: model.ContactEmail,
			Phone: model.ContactPhone,
		},
		PhotoURLs:       []string(model.PhotoURLs),
		ServiceTagIDs:   tagIDs,
		ApprovedBy:      model.ApprovedBy,
		ApprovedAt:      model.ApprovedAt,
		RejectedBy:      model.RejectedBy,
		RejectedAt:      model.RejectedAt,
		RejectionReason: model.RejectionReason,
		OpenedAt:        model.OpenedAt,
		ClosedAt:        model.ClosedAt,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket %s: %w", model.ID, err)
	}
	return t, nil
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	model := &models.CommentModel{
		ID:             c.ID(),
		TicketID:       c.TicketID(),
		AuthorName:     c.AuthorName(),
		AuthorRole:     c.AuthorRole().String(),
		Content:        c.Content(),
		AttachmentURLs: datatypes.NewJSONSlice(nonNil(c.AttachmentURLs())),
		CreatedAt:      c.CreatedAt(),
	}
	if authorID := c.AuthorID(); authorID != "" {
		model.AuthorID = &authorID
	}
	if deletedAt := c.DeletedAt(); deletedAt != nil {
		model.DeletedAt = gorm.DeletedAt{Time: *deletedAt, Valid: true}
	}
	return model
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	if model == nil {
		return nil, nil
	}

	var authorID string
	if model.AuthorID != nil {
		authorID = *model.AuthorID
	}
	var deletedAt *time.Time
	if model.DeletedAt.Valid {
		t := model.DeletedAt.Time
		deletedAt = &t
	}

	c, err := ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		authorID,
		model.AuthorName,
		permission.Role(model.AuthorRole),
		model.Content,
		[]string(model.AttachmentURLs),
		model.CreatedAt,
		deletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct comment %s: %w", model.ID, err)
	}
	return c, nil
}

func (m *TicketMapperImpl) UpdateToModel(u *ticket.Update) *models.TicketUpdateModel {
	return &models.TicketUpdateModel{
		ID:        u.ID(),
		TicketID:  u.TicketID(),
		UserID:    u.UserID(),
		Kind:      u.Kind().String(),
		Message:   u.Message(),
		CreatedAt: u.CreatedAt(),
	}
}

func (m *TicketMapperImpl) UpdateToDomain(model *models.TicketUpdateModel) (*ticket.Update, error) {
	if model == nil {
		return nil, nil
	}
	u, err := ticket.ReconstructUpdate(
		model.ID,
		model.TicketID,
		model.UserID,
		vo.UpdateKind(model.Kind),
		model.Message,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket update %s: %w", model.ID, err)
	}
	return u, nil
}

// nonNil keeps JSON columns as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
