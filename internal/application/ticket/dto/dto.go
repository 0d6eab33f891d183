package dto

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
)

type ServiceTagRefDTO struct {
	ID  string `json:"id"`
	Tag string `json:"tag"`
}

type UserRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TicketDTO struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	DescriptionHTML string             `json:"description_html,omitempty"`
	Status          string             `json:"status"`
	Priority        string             `json:"priority"`
	Source          string             `json:"source"`
	ClientID        string             `json:"client_id"`
	CompanyName     string             `json:"company_name,omitempty"`
	Reporter        *UserRefDTO        `json:"reporter"`
	Assignee        *UserRefDTO        `json:"assignee"`
	ContactName     string             `json:"contact_name,omitempty"`
	ContactEmail    string             `json:"contact_email,omitempty"`
	ContactPhone    string             `json:"contact_phone,omitempty"`
	PhotoURLs       []string           `json:"photo_urls"`
	ServiceTags     []ServiceTagRefDTO `json:"service_tags"`
	ApprovedBy      *string            `json:"approved_by"`
	ApprovedAt      *time.Time         `json:"approved_at"`
	RejectedBy      *string            `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time         `json:"rejected_at,omitempty"`
	RejectionReason *string            `json:"rejection_reason,omitempty"`
	OpenedAt        *time.Time         `json:"opened_at"`
	ClosedAt        *time.Time         `json:"closed_at"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type CommentDTO struct {
	ID             string    `json:"id"`
	TicketID       string    `json:"ticket_id"`
	AuthorID       string    `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorRole     string    `json:"author_role"`
	Content        string    `json:"content"`
	ContentHTML    string    `json:"content_html"`
	AttachmentURLs []string  `json:"attachment_urls"`
	CreatedAt      time.Time `json:"created_at"`
}

type UpdateDTO struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	UserID    *string   `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type PublicTicketResultDTO struct {
	TicketID     string             `json:"ticket_id"`
	Status       string             `json:"status"`
	CompanyName  string             `json:"company_name"`
	ClientWasNew bool               `json:"client_was_new"`
	ServiceTags  []ServiceTagRefDTO `json:"service_tags"`
	Message      string             `json:"message"`
}

// ToTicketDTO maps the aggregate; names of related records are filled by the caller.
func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	contact := t.Contact()
	d := &TicketDTO{
		ID:              t.ID(),
		Title:           t.Title(),
		Description:     t.Description(),
		Status:          t.Status().String(),
		Priority:        t.Priority().String(),
		Source:          t.Source().String(),
		ClientID:        t.ClientID(),
		ContactName:     contact.Name,
		ContactEmail:    contact.Email,
		ContactPhone:    contact.Phone,
		PhotoURLs:       t.PhotoURLs(),
		ServiceTags:     make([]ServiceTagRefDTO, 0, len(t.ServiceTagIDs())),
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
	if id := t.ReporterID(); id != nil {
		d.Reporter = &UserRefDTO{ID: *id}
	}
	if id := t.AssigneeID(); id != nil {
		d.Assignee = &UserRefDTO{ID: *id}
	}
	for _, tagID := range t.ServiceTagIDs() {
		d.ServiceTags = append(d.ServiceTags, ServiceTagRefDTO{ID: tagID})
	}
	return d
}

func ToCommentDTO(c *ticket.Comment, contentHTML string) *CommentDTO {
	return &CommentDTO{
		ID:             c.ID(),
		TicketID:       c.TicketID(),
		AuthorID:       c.AuthorID(),
		AuthorName:     c.AuthorName(),
		AuthorRole:     c.AuthorRole().String(),
		Content:        c.Content(),
		ContentHTML:    contentHTML,
		AttachmentURLs: c.AttachmentURLs(),
		CreatedAt:      c.CreatedAt(),
	}
}

func ToUpdateDTO(u *ticket.Update) *UpdateDTO {
	return &UpdateDTO{
		ID:        u.ID(),
		TicketID:  u.TicketID(),
		UserID:    u.UserID(),
		Kind:      u.Kind().String(),
		Message:   u.Message(),
		CreatedAt: u.CreatedAt(),
	}
}
