package client

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	clientuc "github.com/orris-inc/helpdesk/internal/application/client/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// ClientHandler exposes the client directory.
type ClientHandler struct {
	getUC    getClientUseCase
	listUC   listClientsUseCase
	createUC createClientUseCase
	updateUC updateClientUseCase
	deleteUC deleteClientUseCase
	logger   logger.Interface
}

func NewClientHandler(
	getUC getClientUseCase,
	listUC listClientsUseCase,
	createUC createClientUseCase,
	updateUC updateClientUseCase,
	deleteUC deleteClientUseCase,
	logger logger.Interface,
) *ClientHandler {
	return &ClientHandler{
		getUC:    getUC,
		listUC:   listUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

// ListClients handles GET /clients
// @Summary List clients
// @Tags clients
// @Security Bearer
// @Produce json
// @Param search query string false "Search in company, contact and email"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 403 {object} utils.APIResponse
// @Router /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), clientuc.ListClientsQuery{
		Caller:    caller,
		Search:    strings.TrimSpace(c.Query("search")),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Clients, result.Total, result.Page, result.PageSize)
}

// GetClient handles GET /clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	caller, clientID, err := callerAndID(c, "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), clientuc.GetClientQuery{Caller: caller, ClientID: clientID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateClient handles POST /clients
// @Summary Create a client
// @Tags clients
// @Security Bearer
// @Accept json
// @Produce json
// @Param request body CreateClientRequest true "Client"
// @Success 201 {object} utils.APIResponse{data=dto.ClientDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create client", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(caller))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Client created successfully")
}

// UpdateClient handles PATCH /clients/:id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	caller, clientID, err := callerAndID(c, "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update client", "client_id", clientID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), req.ToCommand(caller, clientID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Client updated successfully", result)
}

// DeleteClient handles DELETE /clients/:id
// @Summary Delete a client
// @Description Refused while tickets, service tags or users still reference the client
// @Tags clients
// @Security Bearer
// @Param id path string true "Client ID"
// @Success 204
// @Failure 409 {object} utils.APIResponse
// @Router /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	caller, clientID, err := callerAndID(c, "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), clientuc.DeleteClientCommand{Caller: caller, ClientID: clientID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func callerFromContext(c *gin.Context) (*permission.Principal, error) {
	p, ok := permission.PrincipalFromContext(c.Request.Context())
	if !ok {
		return nil, errors.NewUnauthorizedError("user not authenticated")
	}
	return p, nil
}

func callerAndID(c *gin.Context, entity string) (*permission.Principal, string, error) {
	caller, err := callerFromContext(c)
	if err != nil {
		return nil, "", err
	}
	id, err := utils.ParseUUIDParam(c, "id", entity)
	if err != nil {
		return nil, "", err
	}
	return caller, id, nil
}
