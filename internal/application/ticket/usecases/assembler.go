package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/services/markdown"
)

// Assembler builds ticket DTOs with the names of their related records.
type Assembler struct {
	clientRepo client.Repository
	userRepo   user.Repository
	tagRepo    servicetag.Repository
	renderer   markdown.Renderer
	logger     logger.Interface
}

func NewAssembler(
	clientRepo client.Repository,
	userRepo user.Repository,
	tagRepo servicetag.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *Assembler {
	return &Assembler{
		clientRepo: clientRepo,
		userRepo:   userRepo,
		tagRepo:    tagRepo,
		renderer:   renderer,
		logger:     logger,
	}
}

// Tickets maps tickets to DTOs, resolving names with one batched lookup per relation.
func (a *Assembler) Tickets(ctx context.Context, tickets []*ticket.Ticket) ([]*dto.TicketDTO, error) {
	out := make([]*dto.TicketDTO, 0, len(tickets))
	if len(tickets) == 0 {
		return out, nil
	}

	clientIDs := newIDSet()
	userIDs := newIDSet()
	tagIDs := newIDSet()
	for _, t := range tickets {
		clientIDs.add(t.ClientID())
		userIDs.addRef(t.ReporterID())
		userIDs.addRef(t.AssigneeID())
		for _, tagID := range t.ServiceTagIDs() {
			tagIDs.add(tagID)
		}
	}

	companies, err := a.companyNames(ctx, clientIDs.list())
	if err != nil {
		return nil, err
	}
	names, err := a.userNames(ctx, userIDs.list())
	if err != nil {
		return nil, err
	}
	tags, err := a.tagNames(ctx, tagIDs.list())
	if err != nil {
		return nil, err
	}

	for _, t := range tickets {
		d := dto.ToTicketDTO(t)
		d.CompanyName = companies[d.ClientID]
		if d.Reporter != nil {
			d.Reporter.Name = names[d.Reporter.ID]
		}
		if d.Assignee != nil {
			d.Assignee.Name = names[d.Assignee.ID]
		}
		for i := range d.ServiceTags {
			d.ServiceTags[i].Tag = tags[d.ServiceTags[i].ID]
		}
		out = append(out, d)
	}
	return out, nil
}

// Ticket maps a single ticket and renders its description.
func (a *Assembler) Ticket(ctx context.Context, t *ticket.Ticket) (*dto.TicketDTO, error) {
	list, err := a.Tickets(ctx, []*ticket.Ticket{t})
	if err != nil {
		return nil, err
	}
	d := list[0]
	if a.renderer != nil {
		html, err := a.renderer.Render(t.Description())
		if err != nil {
			a.logger.Warnw("failed to render ticket description", "ticket_id", t.ID(), "error", err)
		} else {
			d.DescriptionHTML = html
		}
	}
	return d, nil
}

// Updates maps history entries and resolves the acting users' names.
func (a *Assembler) Updates(ctx context.Context, updates []*ticket.Update) ([]*dto.UpdateDTO, error) {
	userIDs := newIDSet()
	for _, u := range updates {
		userIDs.addRef(u.UserID())
	}
	names, err := a.userNames(ctx, userIDs.list())
	if err != nil {
		return nil, err
	}

	out := make([]*dto.UpdateDTO, 0, len(updates))
	for _, u := range updates {
		d := dto.ToUpdateDTO(u)
		if d.UserID != nil {
			d.UserName = names[*d.UserID]
		}
		out = append(out, d)
	}
	return out, nil
}

// Comments maps comments, rendering each body to sanitized HTML.
func (a *Assembler) Comments(comments []*ticket.Comment) []*dto.CommentDTO {
	out := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, a.Comment(c))
	}
	return out
}

func (a *Assembler) Comment(c *ticket.Comment) *dto.CommentDTO {
	html := ""
	if a.renderer != nil {
		rendered, err := a.renderer.Render(c.Content())
		if err != nil {
			a.logger.Warnw("failed to render comment", "comment_id", c.ID(), "error", err)
		} else {
			html = rendered
		}
	}
	return dto.ToCommentDTO(c, html)
}

func (a *Assembler) companyNames(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	clients, err := a.clientRepo.GetByIDs(ctx, ids)
	if err != nil {
		a.logger.Errorw("failed to load clients for tickets", "error", err)
		return nil, errors.NewInternalError("failed to load ticket details")
	}
	for _, c := range clients {
		out[c.ID()] = c.CompanyName()
	}
	return out, nil
}

func (a *Assembler) userNames(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := a.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		a.logger.Errorw("failed to load users for tickets", "error", err)
		return nil, errors.NewInternalError("failed to load ticket details")
	}
	for _, u := range users {
		out[u.ID()] = u.Name()
	}
	return out, nil
}

func (a *Assembler) tagNames(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	tags, err := a.tagRepo.GetByIDs(ctx, ids)
	if err != nil {
		a.logger.Errorw("failed to load service tags for tickets", "error", err)
		return nil, errors.NewInternalError("failed to load ticket details")
	}
	for _, t := range tags {
		out[t.ID()] = t.Tag()
	}
	return out, nil
}

// idSet collects unique IDs in insertion order.
type idSet struct {
	seen  map[string]bool
	order []string
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[string]bool)}
}

func (s *idSet) add(id string) {
	if id == "" || s.seen[id] {
		return
	}
	s.seen[id] = true
	s.order = append(s.order, id)
}

func (s *idSet) addRef(id *string) {
	if id != nil {
		s.add(*id)
	}
}

func (s *idSet) list() []string {
	return s.order
}
