package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// PublicTicketHandler serves the anonymous intake form. It never looks at the
// caller's identity, even when a token is sent.
type PublicTicketHandler struct {
	submitUC submitPublicTicketUseCase
	logger   logger.Interface
}

func NewPublicTicketHandler(submitUC submitPublicTicketUseCase, logger logger.Interface) *PublicTicketHandler {
	return &PublicTicketHandler{submitUC: submitUC, logger: logger}
}

// usageHint is returned for non-POST requests.
type usageHint struct {
	Method        string   `json:"method"`
	ContentType   string   `json:"content_type"`
	Required      []string `json:"required"`
	Optional      []string `json:"optional"`
	TicketIDShape string   `json:"ticket_id_format"`
}

var publicTicketUsage = usageHint{
	Method:        http.MethodPost,
	ContentType:   "application/json",
	Required:      []string{"title", "description", "company_name", "service_tag_names", "contact_name", "contact_email", "contact_phone", "source"},
	Optional:      []string{"priority", "photo_url"},
	TicketIDShape: "TK-######",
}

// Submit files an anonymous ticket pending approval
// @Summary Submit a ticket without an account
// @Description The client and service tags are matched by name and created when missing
// @Tags public
// @Accept json
// @Produce json
// @Param request body PublicTicketRequest true "Intake form"
// @Success 201 {object} utils.APIResponse{data=dto.PublicTicketResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /public-tickets [post]
func (h *PublicTicketHandler) Submit(c *gin.Context) {
	var req PublicTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid public ticket payload", "client_ip", c.ClientIP(), "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", "expected a JSON object"))
		return
	}

	result, err := h.submitUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, result.Message)
}

// MethodNotAllowed answers GET on the intake path with a usage hint.
func (h *PublicTicketHandler) MethodNotAllowed(c *gin.Context) {
	c.Header("Allow", "POST, OPTIONS")
	c.JSON(http.StatusMethodNotAllowed, utils.APIResponse{
		Success: false,
		Error: &utils.ErrorInfo{
			Type:    "method_not_allowed",
			Message: "Use POST to submit a ticket",
		},
		Message: "Use POST to submit a ticket",
		Data:    publicTicketUsage,
	})
}

// Preflight answers OPTIONS when the CORS middleware has not already done so.
func (h *PublicTicketHandler) Preflight(c *gin.Context) {
	c.Header("Allow", "POST, OPTIONS")
	c.Status(http.StatusNoContent)
}
