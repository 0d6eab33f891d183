package usecases

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/id"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// SubmitPublicTicketCommand is an anonymous intake submission. It carries no caller.
type SubmitPublicTicketCommand struct {
	Title           string
	Description     string
	CompanyName     string
	ServiceTagNames []string
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	Priority        string
	Source          string
	PhotoURL        string
}

type SubmitPublicTicketUseCase struct {
	ticketRepo ticket.Repository
	updateRepo ticket.UpdateRepository
	clientRepo client.Repository
	tagRepo    servicetag.Repository
	idGen      ticket.IDGenerator
	txMgr      db.Transactor
	settings   Settings
	logger     logger.Interface
}

func NewSubmitPublicTicketUseCase(
	ticketRepo ticket.Repository,
	updateRepo ticket.UpdateRepository,
	clientRepo client.Repository,
	tagRepo servicetag.Repository,
	idGen ticket.IDGenerator,
	txMgr db.Transactor,
	settings Settings,
	logger logger.Interface,
) *SubmitPublicTicketUseCase {
	return &SubmitPublicTicketUseCase{
		ticketRepo: ticketRepo,
		updateRepo: updateRepo,
		clientRepo: clientRepo,
		tagRepo:    tagRepo,
		idGen:      idGen,
		txMgr:      txMgr,
		settings:   settings.withDefaults(),
		logger:     logger,
	}
}

// Execute resolves or creates the client and its service tags by name, then files the
// ticket in pending_approval. All writes share one transaction.
func (uc *SubmitPublicTicketUseCase) Execute(ctx context.Context, cmd SubmitPublicTicketCommand) (*dto.PublicTicketResultDTO, error) {
	uc.logger.Infow("executing submit public ticket use case", "company_name", cmd.CompanyName, "tags", len(cmd.ServiceTagNames))

	priority, source, err := uc.validate(cmd)
	if err != nil {
		return nil, err
	}

	companyName := client.NormalizeCompanyName(cmd.CompanyName)
	tagNames := uniqueTagNames(cmd.ServiceTagNames)
	contact := ticket.Contact{
		Name:  strings.TrimSpace(cmd.ContactName),
		Email: strings.TrimSpace(cmd.ContactEmail),
		Phone: strings.TrimSpace(cmd.ContactPhone),
	}

	result := &dto.PublicTicketResultDTO{
		Status:      vo.StatusPendingApproval.String(),
		CompanyName: companyName,
		ServiceTags: make([]dto.ServiceTagRefDTO, 0, len(tagNames)),
		Message:     constants.PublicIntakeConfirmation,
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		c, created, err := uc.resolveClient(txCtx, companyName, contact)
		if err != nil {
			return err
		}
		result.ClientWasNew = created
		result.CompanyName = c.CompanyName()

		tagIDs := make([]string, 0, len(tagNames))
		for _, name := range tagNames {
			tag, err := uc.resolveTag(txCtx, c.ID(), name)
			if err != nil {
				return err
			}
			tagIDs = append(tagIDs, tag.ID())
			result.ServiceTags = append(result.ServiceTags, dto.ServiceTagRefDTO{ID: tag.ID(), Tag: tag.Tag()})
		}

		t, err := ticket.NewPublicTicket(cmd.Title, cmd.Description, priority, source, c.ID(), contact, strings.TrimSpace(cmd.PhotoURL))
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		t.SetServiceTags(tagIDs)

		ticketID, err := uc.idGen.Next(txCtx)
		if err != nil {
			return fmt.Errorf("allocate ticket id: %w", err)
		}
		if err := t.SetID(ticketID); err != nil {
			return err
		}
		if err := uc.ticketRepo.Create(txCtx, t); err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}
		if err := uc.ticketRepo.ReplaceServiceTags(txCtx, ticketID, t.ServiceTagIDs()); err != nil {
			return fmt.Errorf("link service tags: %w", err)
		}
		result.TicketID = ticketID

		msg := fmt.Sprintf("Ticket submitted through the public form by %s", contact.Name)
		return recordUpdate(txCtx, uc.updateRepo, ticketID, nil, vo.UpdateKindOther, msg)
	})
	if err != nil {
		if errors.IsValidationError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to submit public ticket", "company_name", companyName, "error", err)
		return nil, errors.NewInternalError("failed to submit ticket")
	}

	uc.logger.Infow("public ticket submitted",
		"ticket_id", result.TicketID,
		"company_name", result.CompanyName,
		"client_was_new", result.ClientWasNew,
	)
	return result, nil
}

// validate checks every field before any side effect and reports all failures at once.
func (uc *SubmitPublicTicketUseCase) validate(cmd SubmitPublicTicketCommand) (vo.Priority, vo.Source, error) {
	var fields []errors.FieldError
	add := func(field, msg string) {
		fields = append(fields, errors.FieldError{Field: field, Message: msg})
	}

	required := []struct {
		field string
		value string
	}{
		{"title", cmd.Title},
		{"description", cmd.Description},
		{"company_name", cmd.CompanyName},
		{"contact_name", cmd.ContactName},
		{"contact_email", cmd.ContactEmail},
		{"contact_phone", cmd.ContactPhone},
		{"source", cmd.Source},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			add(r.field, r.field+" is required")
		}
	}

	if len(cmd.Title) > ticket.MaxTitleLength {
		add("title", fmt.Sprintf("title must be at most %d characters", ticket.MaxTitleLength))
	}
	if len(cmd.Description) > ticket.MaxDescriptionLength {
		add("description", fmt.Sprintf("description must be at most %d characters", ticket.MaxDescriptionLength))
	}
	if email := strings.TrimSpace(cmd.ContactEmail); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			add("contact_email", "contact_email must be a valid email address")
		}
	}
	if len(uniqueTagNames(cmd.ServiceTagNames)) == 0 {
		add("service_tag_names", "at least one service tag name is required")
	}

	priority, err := vo.PriorityOrDefault(cmd.Priority, uc.settings.DefaultPriority)
	if err != nil {
		add("priority", "priority must be one of low, medium, high")
	}
	var source vo.Source
	if strings.TrimSpace(cmd.Source) != "" {
		if source, err = vo.NewSource(cmd.Source); err != nil {
			add("source", "source must be one of email, phone, web, in_person")
		}
	}

	if len(fields) > 0 {
		return "", "", errors.NewFieldValidationError(constants.ErrMsgValidationFailed, fields)
	}
	return priority, source, nil
}

func (uc *SubmitPublicTicketUseCase) resolveClient(ctx context.Context, companyName string, contact ticket.Contact) (*client.Client, bool, error) {
	existing, err := uc.clientRepo.GetByCompanyName(ctx, companyName)
	if err != nil {
		return nil, false, fmt.Errorf("look up client: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	c, err := client.NewClient(contactDisplayName(contact.Name), companyName, contact.Email, contact.Phone, "")
	if err != nil {
		return nil, false, errors.NewValidationError(err.Error())
	}
	if err := c.SetID(id.NewUUID()); err != nil {
		return nil, false, err
	}
	if err := uc.clientRepo.Create(ctx, c); err != nil {
		return nil, false, fmt.Errorf("create client: %w", err)
	}
	uc.logger.Infow("client created from public intake", "client_id", c.ID(), "company_name", companyName)
	return c, true, nil
}

func (uc *SubmitPublicTicketUseCase) resolveTag(ctx context.Context, clientID, name string) (*servicetag.ServiceTag, error) {
	existing, err := uc.tagRepo.GetByClientAndTag(ctx, clientID, name)
	if err != nil {
		return nil, fmt.Errorf("look up service tag: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	tag, err := servicetag.NewServiceTag(clientID, name, "", uc.settings.PlaceholderHardwareType, uc.settings.PlaceholderLocation)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := tag.SetID(id.NewUUID()); err != nil {
		return nil, err
	}
	if err := uc.tagRepo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create service tag: %w", err)
	}
	return tag, nil
}

// uniqueTagNames normalizes names and drops blanks and repeats, keeping order.
func uniqueTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = servicetag.NormalizeTag(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// contactDisplayName capitalizes each word of a typed-in contact name, leaving
// existing capitals such as "McDonald" alone. Casers are stateful, so one is built per call.
func contactDisplayName(name string) string {
	return cases.Title(language.Und, cases.NoLower).String(strings.Join(strings.Fields(name), " "))
}
