package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC  createTicketUseCase
	getTicketUC     getTicketUseCase
	listTicketsUC   listTicketsUseCase
	listMineUC      listTicketsUseCase
	listPendingUC   listTicketsUseCase
	updateTicketUC  updateTicketUseCase
	deleteTicketUC  deleteTicketUseCase
	approveTicketUC approveTicketUseCase
	listUpdatesUC   listUpdatesUseCase
	serviceTagsUC   serviceTagLinkUseCase
	logger          logger.Interface
}

func NewTicketHandler(
	createTicketUC createTicketUseCase,
	getTicketUC getTicketUseCase,
	listTicketsUC listTicketsUseCase,
	listMineUC listTicketsUseCase,
	listPendingUC listTicketsUseCase,
	updateTicketUC updateTicketUseCase,
	deleteTicketUC deleteTicketUseCase,
	approveTicketUC approveTicketUseCase,
	listUpdatesUC listUpdatesUseCase,
	serviceTagsUC serviceTagLinkUseCase,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:  createTicketUC,
		getTicketUC:     getTicketUC,
		listTicketsUC:   listTicketsUC,
		listMineUC:      listMineUC,
		listPendingUC:   listPendingUC,
		updateTicketUC:  updateTicketUC,
		deleteTicketUC:  deleteTicketUC,
		approveTicketUC: approveTicketUC,
		listUpdatesUC:   listUpdatesUC,
		serviceTagsUC:   serviceTagsUC,
		logger:          logger,
	}
}

// CreateTicket handles POST /tickets
// @Summary Create a ticket
// @Tags tickets
// @Security Bearer
// @Accept json
// @Produce json
// @Param request body CreateTicketRequest true "Ticket"
// @Success 201 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(caller))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id
// @Summary Get a ticket
// @Tags tickets
// @Security Bearer
// @Produce json
// @Param id path string true "Ticket ID (TK-######)"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	caller, ticketID, err := callerAndTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{Caller: caller, TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
// @Summary List tickets (staff)
// @Tags tickets
// @Security Bearer
// @Produce json
// @Param status query string false "Status filter, comma separated"
// @Param priority query string false "Priority"
// @Param client_id query string false "Client ID"
// @Param assignee_id query string false "Assignee ID"
// @Param unassigned query bool false "Only unassigned tickets"
// @Param search query string false "Search in title and description"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	h.list(c, h.listTicketsUC)
}

// ListMyTickets handles GET /tickets/mine
func (h *TicketHandler) ListMyTickets(c *gin.Context) {
	h.list(c, h.listMineUC)
}

// ListPendingTickets handles GET /tickets/pending
func (h *TicketHandler) ListPendingTickets(c *gin.Context) {
	h.list(c, h.listPendingUC)
}

func (h *TicketHandler) list(c *gin.Context, uc listTicketsUseCase) {
	caller, err := callerFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query, err := parseListTicketsQuery(c, caller)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := uc.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// UpdateTicket handles PATCH /tickets/:id
// @Summary Update a ticket
// @Tags tickets
// @Security Bearer
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID (TK-######)"
// @Param request body UpdateTicketRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id} [patch]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	caller, ticketID, err := callerAndTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), req.ToCommand(caller, ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// DeleteTicket handles DELETE /tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	caller, ticketID, err := callerAndTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{Caller: caller, TicketID: ticketID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ApproveTicket handles POST /tickets/:id/approve
// @Summary Approve or reject a publicly submitted ticket
// @Tags tickets
// @Security Bearer
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID (TK-######)"
// @Param request body ApproveTicketRequest true "Decision"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /tickets/{id}/approve [post]
func (h *TicketHandler) ApproveTicket(c *gin.Context) {
	caller, ticketID, err := callerAndTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ApproveTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.approveTicketUC.Execute(c.Request.Context(), usecases.ApproveTicketCommand{
		Caller:          caller,
		TicketID:        ticketID,
		Approved:        *req.Approved,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	msg := "Ticket approved"
	if !*req.Approved {
		msg = "Ticket rejected"
	}
	utils.SuccessResponse(c, http.StatusOK, msg, result)
}

// ListUpdates handles GET /tickets/:id/updates
func (h *TicketHandler) ListUpdates(c *gin.Context) {
	caller, ticketID, err := callerAndTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUpdatesUC.Execute(c.Request.Context(), usecases.ListUpdatesQuery{Caller: caller, TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AttachServiceTag handles PUT /tickets/:id/service-tags/:tag_id
func (h *TicketHandler) AttachServiceTag(c *gin.Context) {
	cmd, err := parseServiceTagLink(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.serviceTagsUC.Attach(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// DetachServiceTag handles DELETE /tickets/:id/service-tags/:tag_id
func (h *TicketHandler) DetachServiceTag(c *gin.Context) {
	cmd, err := parseServiceTagLink(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.serviceTagsUC.Detach(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func parseServiceTagLink(c *gin.Context) (usecases.ServiceTagLinkCommand, error) {
	caller, ticketID, err := callerAndTicketID(c)
	if err != nil {
		return usecases.ServiceTagLinkCommand{}, err
	}
	tagID, err := utils.ParseUUIDParam(c, "tag_id", "service tag")
	if err != nil {
		return usecases.ServiceTagLinkCommand{}, err
	}
	return usecases.ServiceTagLinkCommand{Caller: caller, TicketID: ticketID, ServiceTagID: tagID}, nil
}

func callerFromContext(c *gin.Context) (*permission.Principal, error) {
	p, ok := permission.PrincipalFromContext(c.Request.Context())
	if !ok {
		return nil, errors.NewUnauthorizedError("user not authenticated")
	}
	return p, nil
}

func callerAndTicketID(c *gin.Context) (*permission.Principal, string, error) {
	caller, err := callerFromContext(c)
	if err != nil {
		return nil, "", err
	}
	ticketID, err := utils.ParseTicketIDParam(c, "id")
	if err != nil {
		return nil, "", err
	}
	return caller, ticketID, nil
}
