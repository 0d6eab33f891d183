package ticket

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
)

// Use case interfaces for the ticket handlers - enables unit testing with mocks.

type createTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error)
}

type getTicketUseCase interface {
	Execute(ctx context.Context, query usecases.GetTicketQuery) (*dto.TicketDTO, error)
}

type listTicketsUseCase interface {
	Execute(ctx context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error)
}

type updateTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketDTO, error)
}

type deleteTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeleteTicketCommand) error
}

type approveTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.ApproveTicketCommand) (*dto.TicketDTO, error)
}

type listUpdatesUseCase interface {
	Execute(ctx context.Context, q usecases.ListUpdatesQuery) ([]*dto.UpdateDTO, error)
}

type serviceTagLinkUseCase interface {
	Attach(ctx context.Context, cmd usecases.ServiceTagLinkCommand) error
	Detach(ctx context.Context, cmd usecases.ServiceTagLinkCommand) error
}

type addCommentUseCase interface {
	Execute(ctx context.Context, cmd usecases.AddCommentCommand) (*dto.CommentDTO, error)
}

type listCommentsUseCase interface {
	Execute(ctx context.Context, q usecases.ListCommentsQuery) ([]*dto.CommentDTO, error)
}

type deleteCommentUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeleteCommentCommand) error
}

type submitPublicTicketUseCase interface {
	Execute(ctx context.Context, cmd usecases.SubmitPublicTicketCommand) (*dto.PublicTicketResultDTO, error)
}
