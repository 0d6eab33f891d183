package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/id"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type ListCommentsQuery struct {
	Caller   *permission.Principal
	TicketID string
}

type ListCommentsUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	assembler   *Assembler
	logger      logger.Interface
}

func NewListCommentsUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	assembler *Assembler,
	logger logger.Interface,
) *ListCommentsUseCase {
	return &ListCommentsUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		assembler:   assembler,
		logger:      logger,
	}
}

// Execute returns the visible comments of a ticket, oldest first.
func (uc *ListCommentsUseCase) Execute(ctx context.Context, q ListCommentsQuery) ([]*dto.CommentDTO, error) {
	t, err := loadVisibleTicket(ctx, uc.ticketRepo, uc.logger, q.Caller, q.TicketID)
	if err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to list comments")
	}

	visible := comments[:0]
	for _, c := range comments {
		if !c.IsDeleted() {
			visible = append(visible, c)
		}
	}
	return uc.assembler.Comments(visible), nil
}

type DeleteCommentCommand struct {
	Caller    *permission.Principal
	CommentID string
}

type DeleteCommentUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	authorizer  permission.Authorizer
	logger      logger.Interface
}

func NewDeleteCommentUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	authorizer permission.Authorizer,
	logger logger.Interface,
) *DeleteCommentUseCase {
	return &DeleteCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// Execute soft-deletes a comment. Only its author or an admin may do so.
func (uc *DeleteCommentUseCase) Execute(ctx context.Context, cmd DeleteCommentCommand) error {
	if err := requireCaller(cmd.Caller); err != nil {
		return err
	}
	if !id.IsUUID(cmd.CommentID) {
		return errors.NewValidationError("invalid comment ID", cmd.CommentID)
	}
	uc.logger.Infow("executing delete comment use case", "comment_id", cmd.CommentID, "user_id", cmd.Caller.UserID)

	c, err := uc.commentRepo.GetByID(ctx, cmd.CommentID)
	if err != nil {
		uc.logger.Errorw("failed to get comment", "comment_id", cmd.CommentID, "error", err)
		return errors.NewInternalError("failed to delete comment")
	}
	if c == nil || c.IsDeleted() {
		return errors.NewNotFoundError("comment not found", cmd.CommentID)
	}

	if _, err := loadVisibleTicket(ctx, uc.ticketRepo, uc.logger, cmd.Caller, c.TicketID()); err != nil {
		return err
	}

	if !c.IsAuthoredBy(cmd.Caller.UserID) {
		if err := uc.authorizer.Authorize(cmd.Caller.Role, permission.ActionCommentsDeleteAny); err != nil {
			uc.logger.Warnw("comment delete denied", "comment_id", c.ID(), "user_id", cmd.Caller.UserID)
			return err
		}
	}

	c.SoftDelete()
	if err := uc.commentRepo.SoftDelete(ctx, c); err != nil {
		uc.logger.Errorw("failed to delete comment", "comment_id", c.ID(), "error", err)
		return errors.NewInternalError("failed to delete comment")
	}

	uc.logger.Infow("comment deleted successfully", "comment_id", c.ID(), "ticket_id", c.TicketID())
	return nil
}
