package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type CommentHandler struct {
	addCommentUC    addCommentUseCase
	listCommentsUC  listCommentsUseCase
	deleteCommentUC deleteCommentUseCase
	logger          logger.Interface
}

func NewCommentHandler(
	addCommentUC addCommentUseCase,
	listCommentsUC listCommentsUseCase,
	deleteCommentUC deleteCommentUseCase,
	logger logger.Interface,
) *CommentHandler {
	return &CommentHandler{
		addCommentUC:    addCommentUC,
		listCommentsUC:  listCommentsUC,
		deleteCommentUC: deleteCommentUC,
		logger:          logger,
	}
}

// AddComment adds a comment with optional inline attachments
// @Summary Add a comment
// @Description Attachments are base64 or data URLs; they are uploaded before the comment is stored
// @Tags comments
// @Security Bearer
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID (TK-######)"
// @Param request body AddCommentRequest true "Comment"
// @Success 201 {object} utils.APIResponse{data=dto.CommentDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /tickets/{id}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	caller, ticketID, err := callerAndTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add comment", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), req.ToCommand(caller, ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// ListComments returns the visible comments of a ticket, oldest first
// @Summary List comments
// @Tags comments
// @Security Bearer
// @Produce json
// @Param id path string true "Ticket ID (TK-######)"
// @Success 200 {object} utils.APIResponse{data=[]dto.CommentDTO}
// @Router /tickets/{id}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	caller, ticketID, err := callerAndTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listCommentsUC.Execute(c.Request.Context(), usecases.ListCommentsQuery{Caller: caller, TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteComment soft-deletes a comment
// @Summary Delete a comment
// @Tags comments
// @Security Bearer
// @Param id path string true "Comment ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	commentID, err := utils.ParseUUIDParam(c, "id", "comment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteCommentUC.Execute(c.Request.Context(), usecases.DeleteCommentCommand{Caller: caller, CommentID: commentID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
