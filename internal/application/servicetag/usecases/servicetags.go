package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/servicetag/dto"
	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/id"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

// TicketLinkCounter counts tickets linked to a service tag.
type TicketLinkCounter interface {
	CountByServiceTag(ctx context.Context, tagID string) (int64, error)
}

type ListServiceTagsQuery struct {
	Caller    *permission.Principal
	ClientID  string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListServiceTagsResult struct {
	ServiceTags []*dto.ServiceTagDTO
	Total       int64
	Page        int
	PageSize    int
}

// ListServiceTagsUseCase lists tags for staff. Client-role callers only see their own client's tags.
type ListServiceTagsUseCase struct {
	tagRepo    servicetag.Repository
	clientRepo client.Repository
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewListServiceTagsUseCase(
	tagRepo servicetag.Repository,
	clientRepo client.Repository,
	authorizer permission.Authorizer,
	logger logger.Interface,
) *ListServiceTagsUseCase {
	return &ListServiceTagsUseCase{tagRepo: tagRepo, clientRepo: clientRepo, authorizer: authorizer, logger: logger}
}

func (uc *ListServiceTagsUseCase) Execute(ctx context.Context, q ListServiceTagsQuery) (*ListServiceTagsResult, error) {
	if err := requireCaller(q.Caller); err != nil {
		return nil, err
	}

	filter := servicetag.ListFilter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(q.Page, q.PageSize),
			query.WithSort(q.SortBy, q.SortOrder),
		),
		Search: q.Search,
	}
	if filter.Page <= 0 {
		filter.Page = constants.DefaultPage
	}

	if q.Caller.Role.IsClient() {
		if q.Caller.ClientID == nil {
			return nil, errors.NewForbiddenError("Your account is not linked to a client")
		}
		own := *q.Caller.ClientID
		filter.ClientID = &own
	} else {
		if err := uc.authorizer.Authorize(q.Caller.Role, permission.ActionServiceTagsList); err != nil {
			return nil, err
		}
		if q.ClientID != "" {
			clientID := q.ClientID
			filter.ClientID = &clientID
		}
	}

	tags, total, err := uc.tagRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list service tags", "error", err)
		return nil, errors.NewInternalError("failed to list service tags")
	}

	items, err := uc.withCompanyNames(ctx, tags)
	if err != nil {
		return nil, err
	}
	return &ListServiceTagsResult{
		ServiceTags: items,
		Total:       total,
		Page:        filter.Page,
		PageSize:    filter.Limit(),
	}, nil
}

func (uc *ListServiceTagsUseCase) withCompanyNames(ctx context.Context, tags []*servicetag.ServiceTag) ([]*dto.ServiceTagDTO, error) {
	seen := make(map[string]struct{}, len(tags))
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t.ClientID()]; !ok {
			seen[t.ClientID()] = struct{}{}
			ids = append(ids, t.ClientID())
		}
	}

	names := make(map[string]string, len(ids))
	if len(ids) > 0 {
		clients, err := uc.clientRepo.GetByIDs(ctx, ids)
		if err != nil {
			uc.logger.Errorw("failed to load clients for service tags", "error", err)
			return nil, errors.NewInternalError("failed to list service tags")
		}
		for _, c := range clients {
			names[c.ID()] = c.CompanyName()
		}
	}

	out := make([]*dto.ServiceTagDTO, 0, len(tags))
	for _, t := range tags {
		d := dto.ToServiceTagDTO(t)
		d.CompanyName = names[t.ClientID()]
		out = append(out, d)
	}
	return out, nil
}

type CreateServiceTagCommand struct {
	Caller       *permission.Principal
	ClientID     string
	Tag          string
	Description  string
	HardwareType string
	Location     string
}

type CreateServiceTagUseCase struct {
	tagRepo    servicetag.Repository
	clientRepo client.Repository
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewCreateServiceTagUseCase(
	tagRepo servicetag.Repository,
	clientRepo client.Repository,
	authorizer permission.Authorizer,
	logger logger.Interface,
) *CreateServiceTagUseCase {
	return &CreateServiceTagUseCase{tagRepo: tagRepo, clientRepo: clientRepo, authorizer: authorizer, logger: logger}
}

func (uc *CreateServiceTagUseCase) Execute(ctx context.Context, cmd CreateServiceTagCommand) (*dto.ServiceTagDTO, error) {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionServiceTagsCreate); err != nil {
		return nil, err
	}
	if !id.IsUUID(cmd.ClientID) {
		return nil, errors.NewValidationError("invalid client ID", cmd.ClientID)
	}

	tag, err := servicetag.NewServiceTag(cmd.ClientID, cmd.Tag, cmd.Description, cmd.HardwareType, cmd.Location)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	owner, err := uc.clientRepo.GetByID(ctx, cmd.ClientID)
	if err != nil {
		uc.logger.Errorw("failed to get client", "client_id", cmd.ClientID, "error", err)
		return nil, errors.NewInternalError("failed to create service tag")
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("client not found", cmd.ClientID)
	}

	if err := ensureTagAvailable(ctx, uc.tagRepo, uc.logger, tag.ClientID(), tag.Tag(), ""); err != nil {
		return nil, err
	}

	if err := tag.SetID(id.NewUUID()); err != nil {
		return nil, errors.NewInternalError("failed to create service tag")
	}
	if err := uc.tagRepo.Create(ctx, tag); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, duplicateTagError(tag.Tag())
		}
		uc.logger.Errorw("failed to create service tag", "client_id", tag.ClientID(), "error", err)
		return nil, errors.NewInternalError("failed to create service tag")
	}

	uc.logger.Infow("service tag created", "service_tag_id", tag.ID(), "client_id", tag.ClientID())
	result := dto.ToServiceTagDTO(tag)
	result.CompanyName = owner.CompanyName()
	return result, nil
}

type UpdateServiceTagCommand struct {
	Caller       *permission.Principal
	ServiceTagID string
	Tag          *string
	Description  *string
	HardwareType *string
	Location     *string
}

type UpdateServiceTagUseCase struct {
	tagRepo    servicetag.Repository
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewUpdateServiceTagUseCase(tagRepo servicetag.Repository, authorizer permission.Authorizer, logger logger.Interface) *UpdateServiceTagUseCase {
	return &UpdateServiceTagUseCase{tagRepo: tagRepo, authorizer: authorizer, logger: logger}
}

func (uc *UpdateServiceTagUseCase) Execute(ctx context.Context, cmd UpdateServiceTagCommand) (*dto.ServiceTagDTO, error) {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionServiceTagsUpdate); err != nil {
		return nil, err
	}

	tag, err := loadTag(ctx, uc.tagRepo, uc.logger, cmd.ServiceTagID)
	if err != nil {
		return nil, err
	}

	previous := tag.Tag()
	if err := tag.Update(cmd.Tag, cmd.Description, cmd.HardwareType, cmd.Location); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if tag.Tag() != previous {
		if err := ensureTagAvailable(ctx, uc.tagRepo, uc.logger, tag.ClientID(), tag.Tag(), tag.ID()); err != nil {
			return nil, err
		}
	}

	if err := uc.tagRepo.Update(ctx, tag); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, duplicateTagError(tag.Tag())
		}
		uc.logger.Errorw("failed to update service tag", "service_tag_id", tag.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update service tag")
	}
	return dto.ToServiceTagDTO(tag), nil
}

type DeleteServiceTagCommand struct {
	Caller       *permission.Principal
	ServiceTagID string
}

// DeleteServiceTagUseCase refuses while the tag is linked to any ticket.
type DeleteServiceTagUseCase struct {
	tagRepo    servicetag.Repository
	links      TicketLinkCounter
	authorizer permission.Authorizer
	logger     logger.Interface
}

func NewDeleteServiceTagUseCase(
	tagRepo servicetag.Repository,
	links TicketLinkCounter,
	authorizer permission.Authorizer,
	logger logger.Interface,
) *DeleteServiceTagUseCase {
	return &DeleteServiceTagUseCase{tagRepo: tagRepo, links: links, authorizer: authorizer, logger: logger}
}

func (uc *DeleteServiceTagUseCase) Execute(ctx context.Context, cmd DeleteServiceTagCommand) error {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionServiceTagsDelete); err != nil {
		return err
	}

	tag, err := loadTag(ctx, uc.tagRepo, uc.logger, cmd.ServiceTagID)
	if err != nil {
		return err
	}

	linked, err := uc.links.CountByServiceTag(ctx, tag.ID())
	if err != nil {
		uc.logger.Errorw("failed to count linked tickets", "service_tag_id", tag.ID(), "error", err)
		return errors.NewInternalError("failed to delete service tag")
	}
	if linked > 0 {
		return errors.NewBadRequestError("Cannot delete a service tag that is linked to tickets", tag.Tag())
	}

	if err := uc.tagRepo.Delete(ctx, tag.ID()); err != nil {
		uc.logger.Errorw("failed to delete service tag", "service_tag_id", tag.ID(), "error", err)
		return errors.NewInternalError("failed to delete service tag")
	}

	uc.logger.Infow("service tag deleted", "service_tag_id", tag.ID(), "deleted_by", cmd.Caller.UserID)
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

func loadTag(ctx context.Context, repo servicetag.Repository, log logger.Interface, tagID string) (*servicetag.ServiceTag, error) {
	if !id.IsUUID(tagID) {
		return nil, errors.NewValidationError("invalid service tag ID", tagID)
	}
	t, err := repo.GetByID(ctx, tagID)
	if err != nil {
		log.Errorw("failed to get service tag", "service_tag_id", tagID, "error", err)
		return nil, errors.NewInternalError("failed to get service tag")
	}
	if t == nil {
		return nil, errors.NewNotFoundError("service tag not found", tagID)
	}
	return t, nil
}

func ensureTagAvailable(ctx context.Context, repo servicetag.Repository, log logger.Interface, clientID, tag, selfID string) error {
	existing, err := repo.GetByClientAndTag(ctx, clientID, tag)
	if err != nil {
		log.Errorw("failed to check service tag", "client_id", clientID, "error", err)
		return errors.NewInternalError("failed to save service tag")
	}
	if existing != nil && existing.ID() != selfID {
		return duplicateTagError(tag)
	}
	return nil
}

func duplicateTagError(tag string) error {
	return errors.NewBadRequestError("This service tag already exists for the client", tag)
}
