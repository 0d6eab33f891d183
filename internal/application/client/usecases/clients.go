package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/client/dto"
	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/id"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

type GetClientQuery struct {
	Caller   *permission.Principal
	ClientID string
}

// GetClientUseCase lets staff read any client and a client-role user read its own.
type GetClientUseCase struct {
	clientRepo client.Repository
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewGetClientUseCase(clientRepo client.Repository, authorizer permission.Authorizer, logger logger.Interface) *GetClientUseCase {
	return &GetClientUseCase{clientRepo: clientRepo, authorizer: authorizer, logger: logger}
}

func (uc *GetClientUseCase) Execute(ctx context.Context, q GetClientQuery) (*dto.ClientDTO, error) {
	if err := requireCaller(q.Caller); err != nil {
		return nil, err
	}
	if !(q.Caller.Role.IsClient() && q.Caller.OwnsClient(q.ClientID)) {
		if err := uc.authorizer.Authorize(q.Caller.Role, permission.ActionClientsRead); err != nil {
			return nil, err
		}
	}

	c, err := loadClient(ctx, uc.clientRepo, uc.logger, q.ClientID)
	if err != nil {
		return nil, err
	}
	return dto.ToClientDTO(c), nil
}

type ListClientsQuery struct {
	Caller    *permission.Principal
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListClientsResult struct {
	Clients  []*dto.ClientDTO
	Total    int64
	Page     int
	PageSize int
}

type ListClientsUseCase struct {
	clientRepo client.Repository
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewListClientsUseCase(clientRepo client.Repository, authorizer permission.Authorizer, logger logger.Interface) *ListClientsUseCase {
	return &ListClientsUseCase{clientRepo: clientRepo, authorizer: authorizer, logger: logger}
}

func (uc *ListClientsUseCase) Execute(ctx context.Context, q ListClientsQuery) (*ListClientsResult, error) {
	if err := authorize(uc.authorizer, q.Caller, permission.ActionClientsList); err != nil {
		return nil, err
	}

	filter := client.ListFilter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(q.Page, q.PageSize),
			query.WithSort(q.SortBy, q.SortOrder),
		),
		Search: q.Search,
	}
	if filter.Page <= 0 {
		filter.Page = constants.DefaultPage
	}

	clients, total, err := uc.clientRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list clients", "error", err)
		return nil, errors.NewInternalError("failed to list clients")
	}

	return &ListClientsResult{
		Clients:  dto.ToClientDTOs(clients),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}, nil
}

type CreateClientCommand struct {
	Caller      *permission.Principal
	ContactName string
	CompanyName string
	Email       string
	Phone       string
	Address     string
}

type CreateClientUseCase struct {
	clientRepo client.Repository
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewCreateClientUseCase(clientRepo client.Repository, authorizer permission.Authorizer, logger logger.Interface) *CreateClientUseCase {
	return &CreateClientUseCase{clientRepo: clientRepo, authorizer: authorizer, logger: logger}
}

func (uc *CreateClientUseCase) Execute(ctx context.Context, cmd CreateClientCommand) (*dto.ClientDTO, error) {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionClientsCreate); err != nil {
		return nil, err
	}

	c, err := client.NewClient(cmd.ContactName, cmd.CompanyName, cmd.Email, cmd.Phone, cmd.Address)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := ensureCompanyAvailable(ctx, uc.clientRepo, uc.logger, c.CompanyName(), ""); err != nil {
		return nil, err
	}

	if err := c.SetID(id.NewUUID()); err != nil {
		return nil, errors.NewInternalError("failed to create client")
	}
	if err := uc.clientRepo.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to create client", "company_name", c.CompanyName(), "error", err)
		return nil, errors.NewInternalError("failed to create client")
	}

	uc.logger.Infow("client created", "client_id", c.ID(), "created_by", cmd.Caller.UserID)
	return dto.ToClientDTO(c), nil
}

type UpdateClientCommand struct {
	Caller      *permission.Principal
	ClientID    string
	ContactName *string
	CompanyName *string
	Email       *string
	Phone       *string
	Address     *string
}

type UpdateClientUseCase struct {
	clientRepo client.Repository
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewUpdateClientUseCase(clientRepo client.Repository, authorizer permission.Authorizer, logger logger.Interface) *UpdateClientUseCase {
	return &UpdateClientUseCase{clientRepo: clientRepo, authorizer: authorizer, logger: logger}
}

func (uc *UpdateClientUseCase) Execute(ctx context.Context, cmd UpdateClientCommand) (*dto.ClientDTO, error) {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionClientsUpdate); err != nil {
		return nil, err
	}

	c, err := loadClient(ctx, uc.clientRepo, uc.logger, cmd.ClientID)
	if err != nil {
		return nil, err
	}

	previous := c.CompanyName()
	if err := c.Update(cmd.ContactName, cmd.CompanyName, cmd.Email, cmd.Phone, cmd.Address); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if c.CompanyName() != previous {
		if err := ensureCompanyAvailable(ctx, uc.clientRepo, uc.logger, c.CompanyName(), c.ID()); err != nil {
			return nil, err
		}
	}

	if err := uc.clientRepo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update client", "client_id", c.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update client")
	}
	return dto.ToClientDTO(c), nil
}

// DependentCounter counts the rows that reference a client.
type DependentCounter interface {
	CountByClient(ctx context.Context, clientID string) (int64, error)
}

type DeleteClientCommand struct {
	Caller   *permission.Principal
	ClientID string
}

// DeleteClientUseCase refuses while tickets, service tags or users still reference the client.
type DeleteClientUseCase struct {
	clientRepo client.Repository
	tickets    DependentCounter
	tags       DependentCounter
	users      DependentCounter
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewDeleteClientUseCase(
	clientRepo client.Repository,
	tickets, tags, users DependentCounter,
	authorizer permission.Authorizer,
	logger logger.Interface,
) *DeleteClientUseCase {
	return &DeleteClientUseCase{
		clientRepo: clientRepo,
		tickets:    tickets,
		tags:       tags,
		users:      users,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (uc *DeleteClientUseCase) Execute(ctx context.Context, cmd DeleteClientCommand) error {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionClientsDelete); err != nil {
		return err
	}

	c, err := loadClient(ctx, uc.clientRepo, uc.logger, cmd.ClientID)
	if err != nil {
		return err
	}

	dependents := []struct {
		counter DependentCounter
		label   string
	}{
		{uc.tickets, "tickets"},
		{uc.tags, "service tags"},
		{uc.users, "users"},
	}
	for _, d := range dependents {
		n, err := d.counter.CountByClient(ctx, c.ID())
		if err != nil {
			uc.logger.Errorw("failed to count client dependents", "client_id", c.ID(), "kind", d.label, "error", err)
			return errors.NewInternalError("failed to delete client")
		}
		if n > 0 {
			return errors.NewBadRequestError("Cannot delete a client that still has "+d.label, c.CompanyName())
		}
	}

	if err := uc.clientRepo.Delete(ctx, c.ID()); err != nil {
		uc.logger.Errorw("failed to delete client", "client_id", c.ID(), "error", err)
		return errors.NewInternalError("failed to delete client")
	}

	uc.logger.Infow("client deleted", "client_id", c.ID(), "deleted_by", cmd.Caller.UserID)
	return nil
}

func requireCaller(caller *permission.Principal) error {
	if caller == nil || caller.UserID == "" {
		return errors.NewUnauthorizedError("Authentication required")
	}
	return nil
}

func authorize(authorizer permission.Authorizer, caller *permission.Principal, action permission.Action) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	return authorizer.Authorize(caller.Role, action)
}

func loadClient(ctx context.Context, repo client.Repository, log logger.Interface, clientID string) (*client.Client, error) {
	if !id.IsUUID(clientID) {
		return nil, errors.NewValidationError("invalid client ID", clientID)
	}
	c, err := repo.GetByID(ctx, clientID)
	if err != nil {
		log.Errorw("failed to get client", "client_id", clientID, "error", err)
		return nil, errors.NewInternalError("failed to get client")
	}
	if c == nil {
		return nil, errors.NewNotFoundError("client not found", clientID)
	}
	return c, nil
}

// ensureCompanyAvailable keeps company names unique so intake matching stays unambiguous.
func ensureCompanyAvailable(ctx context.Context, repo client.Repository, log logger.Interface, companyName, selfID string) error {
	existing, err := repo.GetByCompanyName(ctx, companyName)
	if err != nil {
		log.Errorw("failed to check company name", "company_name", companyName, "error", err)
		return errors.NewInternalError("failed to save client")
	}
	if existing != nil && existing.ID() != selfID {
		return errors.NewBadRequestError("A client with this company name already exists", companyName)
	}
	return nil
}
