package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/notification/usecases"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type sendAccessEmailUseCase interface {
	Execute(ctx context.Context, cmd usecases.SendAccessEmailCommand) error
}

// EmailAccessHandler sends login credentials to a newly provisioned client.
// It is called by trusted services and is guarded by the internal token.
type EmailAccessHandler struct {
	sendUC sendAccessEmailUseCase
	logger logger.Interface
}

func NewEmailAccessHandler(sendUC sendAccessEmailUseCase, logger logger.Interface) *EmailAccessHandler {
	return &EmailAccessHandler{sendUC: sendUC, logger: logger}
}

// SendAccessEmailRequest uses camelCase keys to match existing callers.
type SendAccessEmailRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	LoginURL    string `json:"loginUrl"`
	CompanyName string `json:"companyName"`
	ClientName  string `json:"clientName"`
}

// Send handles POST /email-access
// @Summary Email login credentials
// @Tags internal
// @Accept json
// @Produce json
// @Param X-Internal-Token header string false "Service token"
// @Param request body SendAccessEmailRequest true "Recipient and credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /email-access [post]
func (h *EmailAccessHandler) Send(c *gin.Context) {
	var req SendAccessEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", "expected a JSON object"))
		return
	}

	err := h.sendUC.Execute(c.Request.Context(), usecases.SendAccessEmailCommand{
		Email:       req.Email,
		Password:    req.Password,
		LoginURL:    req.LoginURL,
		CompanyName: req.CompanyName,
		ClientName:  req.ClientName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Email sent", nil)
}
