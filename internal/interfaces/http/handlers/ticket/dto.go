package ticket

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type CreateTicketRequest struct {
	Title         string   `json:"title" binding:"required,max=200"`
	Description   string   `json:"description" binding:"required"`
	Priority      string   `json:"priority" binding:"omitempty,oneof=low medium high"`
	Source        string   `json:"source" binding:"omitempty,oneof=email phone web in_person"`
	ClientID      string   `json:"client_id" binding:"omitempty,uuid"`
	ServiceTagIDs []string `json:"service_tag_ids" binding:"omitempty,dive,uuid"`
}

func (r *CreateTicketRequest) ToCommand(caller *permission.Principal) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Caller:        caller,
		Title:         r.Title,
		Description:   r.Description,
		Priority:      r.Priority,
		Source:        r.Source,
		ClientID:      r.ClientID,
		ServiceTagIDs: r.ServiceTagIDs,
	}
}

// NullableString tells an absent JSON field apart from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// UpdateTicketRequest is a patch. "assignee_id": null unassigns the ticket.
type UpdateTicketRequest struct {
	Title         *string        `json:"title" binding:"omitempty,max=200"`
	Description   *string        `json:"description"`
	Status        *string        `json:"status"`
	Priority      *string        `json:"priority"`
	AssigneeID    NullableString `json:"assignee_id"`
	ServiceTagIDs *[]string      `json:"service_tag_ids"`
}

func (r *UpdateTicketRequest) ToCommand(caller *permission.Principal, ticketID string) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		Caller:        caller,
		TicketID:      ticketID,
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		Priority:      r.Priority,
		AssigneeSet:   r.AssigneeID.Set,
		AssigneeID:    r.AssigneeID.Value,
		ServiceTagIDs: r.ServiceTagIDs,
	}
}

type ApproveTicketRequest struct {
	Approved        *bool  `json:"approved" binding:"required"`
	RejectionReason string `json:"rejection_reason" binding:"max=1000"`
}

type AttachmentRequest struct {
	FileName    string `json:"file_name" binding:"max=255"`
	ContentType string `json:"content_type"`
	// Data is plain base64 or a data URL.
	Data string `json:"data" binding:"required"`
}

type AddCommentRequest struct {
	Content     string              `json:"content" binding:"required,notblank,max=10000"`
	Attachments []AttachmentRequest `json:"attachments" binding:"omitempty,dive"`
}

func (r *AddCommentRequest) ToCommand(caller *permission.Principal, ticketID string) usecases.AddCommentCommand {
	attachments := make([]usecases.AttachmentInput, 0, len(r.Attachments))
	for _, a := range r.Attachments {
		attachments = append(attachments, usecases.AttachmentInput{
			FileName:    a.FileName,
			ContentType: a.ContentType,
			Data:        a.Data,
		})
	}
	return usecases.AddCommentCommand{
		Caller:      caller,
		TicketID:    ticketID,
		Content:     r.Content,
		Attachments: attachments,
	}
}

// PublicTicketRequest is validated by the use case so every field problem is
// reported at once.
type PublicTicketRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	CompanyName     string   `json:"company_name"`
	ServiceTagNames []string `json:"service_tag_names"`
	ContactName     string   `json:"contact_name"`
	ContactEmail    string   `json:"contact_email"`
	ContactPhone    string   `json:"contact_phone"`
	Priority        string   `json:"priority"`
	Source          string   `json:"source"`
	PhotoURL        string   `json:"photo_url"`
}

func (r *PublicTicketRequest) ToCommand() usecases.SubmitPublicTicketCommand {
	return usecases.SubmitPublicTicketCommand{
		Title:           r.Title,
		Description:     r.Description,
		CompanyName:     r.CompanyName,
		ServiceTagNames: r.ServiceTagNames,
		ContactName:     r.ContactName,
		ContactEmail:    r.ContactEmail,
		ContactPhone:    r.ContactPhone,
		Priority:        r.Priority,
		Source:          r.Source,
		PhotoURL:        r.PhotoURL,
	}
}

// parseListTicketsQuery reads filters from the query string. status may be
// repeated or comma separated.
func parseListTicketsQuery(c *gin.Context, caller *permission.Principal) (usecases.ListTicketsQuery, error) {
	pagination := utils.ParsePagination(c)

	var statuses []string
	for _, raw := range c.QueryArray("status") {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}

	unassigned := false
	if raw := c.Query("unassigned"); raw != "" {
		switch strings.ToLower(raw) {
		case "true", "1":
			unassigned = true
		case "false", "0":
		default:
			return usecases.ListTicketsQuery{}, errors.NewValidationError("unassigned must be true or false")
		}
	}

	return usecases.ListTicketsQuery{
		Caller:     caller,
		Statuses:   statuses,
		Priority:   c.Query("priority"),
		ClientID:   c.Query("client_id"),
		AssigneeID: c.Query("assignee_id"),
		Unassigned: unassigned,
		Search:     strings.TrimSpace(c.Query("search")),
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}, nil
}
