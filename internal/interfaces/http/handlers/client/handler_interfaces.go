package client

import (
	"context"

	clientdto "github.com/orris-inc/helpdesk/internal/application/client/dto"
	clientuc "github.com/orris-inc/helpdesk/internal/application/client/usecases"
	tagdto "github.com/orris-inc/helpdesk/internal/application/servicetag/dto"
	taguc "github.com/orris-inc/helpdesk/internal/application/servicetag/usecases"
)

type getClientUseCase interface {
	Execute(ctx context.Context, q clientuc.GetClientQuery) (*clientdto.ClientDTO, error)
}

type listClientsUseCase interface {
	Execute(ctx context.Context, q clientuc.ListClientsQuery) (*clientuc.ListClientsResult, error)
}

type createClientUseCase interface {
	Execute(ctx context.Context, cmd clientuc.CreateClientCommand) (*clientdto.ClientDTO, error)
}

type updateClientUseCase interface {
	Execute(ctx context.Context, cmd clientuc.UpdateClientCommand) (*clientdto.ClientDTO, error)
}

type deleteClientUseCase interface {
	Execute(ctx context.Context, cmd clientuc.DeleteClientCommand) error
}

type listServiceTagsUseCase interface {
	Execute(ctx context.Context, q taguc.ListServiceTagsQuery) (*taguc.ListServiceTagsResult, error)
}

type createServiceTagUseCase interface {
	Execute(ctx context.Context, cmd taguc.CreateServiceTagCommand) (*tagdto.ServiceTagDTO, error)
}

type updateServiceTagUseCase interface {
	Execute(ctx context.Context, cmd taguc.UpdateServiceTagCommand) (*tagdto.ServiceTagDTO, error)
}

type deleteServiceTagUseCase interface {
	Execute(ctx context.Context, cmd taguc.DeleteServiceTagCommand) error
}
