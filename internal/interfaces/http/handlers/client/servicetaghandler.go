package client

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	taguc "github.com/orris-inc/helpdesk/internal/application/servicetag/usecases"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// ServiceTagHandler manages equipment tags. Tags belong to exactly one client.
type ServiceTagHandler struct {
	listUC   listServiceTagsUseCase
	createUC createServiceTagUseCase
	updateUC updateServiceTagUseCase
	deleteUC deleteServiceTagUseCase
	logger   logger.Interface
}

func NewServiceTagHandler(
	listUC listServiceTagsUseCase,
	createUC createServiceTagUseCase,
	updateUC updateServiceTagUseCase,
	deleteUC deleteServiceTagUseCase,
	logger logger.Interface,
) *ServiceTagHandler {
	return &ServiceTagHandler{
		listUC:   listUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

// ListServiceTags handles GET /service-tags
// @Summary List service tags
// @Tags service-tags
// @Security Bearer
// @Produce json
// @Param client_id query string false "Client ID"
// @Param search query string false "Search in tag and description"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /service-tags [get]
func (h *ServiceTagHandler) ListServiceTags(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), taguc.ListServiceTagsQuery{
		Caller:    caller,
		ClientID:  c.Query("client_id"),
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

	utils.ListSuccessResponse(c, result.ServiceTags, result.Total, result.Page, result.PageSize)
}

// CreateServiceTag handles POST /service-tags
func (h *ServiceTagHandler) CreateServiceTag(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateServiceTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create service tag", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(caller))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Service tag created successfully")
}

// UpdateServiceTag handles PATCH /service-tags/:id
func (h *ServiceTagHandler) UpdateServiceTag(c *gin.Context) {
	caller, tagID, err := callerAndID(c, "service tag")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateServiceTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), req.ToCommand(caller, tagID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service tag updated successfully", result)
}

// DeleteServiceTag handles DELETE /service-tags/:id
func (h *ServiceTagHandler) DeleteServiceTag(c *gin.Context) {
	caller, tagID, err := callerAndID(c, "service tag")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), taguc.DeleteServiceTagCommand{Caller: caller, ServiceTagID: tagID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
