package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type AuthHandler struct {
	loginUseCase         loginUseCase
	refreshTokenUseCase  refreshTokenUseCase
	getMeUseCase         getMeUseCase
	initiateOAuthUseCase initiateOAuthUseCase
	handleOAuthUseCase   handleOAuthCallbackUseCase
	logger               logger.Interface
	frontendURL          string
}

func NewAuthHandler(
	loginUC loginUseCase,
	refreshTokenUC refreshTokenUseCase,
	getMeUC getMeUseCase,
	initiateOAuthUC initiateOAuthUseCase,
	handleOAuthUC handleOAuthCallbackUseCase,
	logger logger.Interface,
	frontendURL string,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:         loginUC,
		refreshTokenUseCase:  refreshTokenUC,
		getMeUseCase:         getMeUC,
		initiateOAuthUseCase: initiateOAuthUC,
		handleOAuthUseCase:   handleOAuthUC,
		logger:               logger,
		frontendURL:          frontendURL,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// Login exchanges email and password for a token pair
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=dto.TokenPairDTO}
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warnw("login failed", "error", err, "client_ip", c.ClientIP())
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", result)
}

// RefreshToken issues a new token pair from a refresh token
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} utils.APIResponse{data=dto.TokenPairDTO}
// @Failure 401 {object} utils.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.refreshTokenUseCase.Execute(c.Request.Context(), usecases.RefreshTokenCommand{RefreshToken: req.RefreshToken})
	if err != nil {
		h.logger.Warnw("token refresh failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "token refreshed successfully", result)
}

// GetCurrentUser returns the caller's own account
// @Summary Current user
// @Tags auth
// @Security Bearer
// @Produce json
// @Success 200 {object} utils.APIResponse{data=dto.UserDTO}
// @Failure 401 {object} utils.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getMeUseCase.Execute(c.Request.Context(), caller)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// InitiateOAuth redirects the browser to Google's consent screen.
func (h *AuthHandler) InitiateOAuth(c *gin.Context) {
	result, err := h.initiateOAuthUseCase.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("OAuth initiation failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, result.AuthURL)
}

// HandleOAuthCallback completes Google sign-in. With a frontend URL configured
// the browser is sent there with the tokens in the fragment; otherwise the pair
// is returned as JSON.
func (h *AuthHandler) HandleOAuthCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warnw("OAuth provider returned error",
			"error_code", errParam,
			"error_description", c.Query("error_description"),
		)
		h.oauthFailure(c, errors.NewOAuthError("google", errParam, "sign-in was cancelled or denied"))
		return
	}

	result, err := h.handleOAuthUseCase.Execute(c.Request.Context(), usecases.OAuthCallbackCommand{
		Code:  c.Query("code"),
		State: c.Query("state"),
	})
	if err != nil {
		h.logger.Warnw("OAuth callback failed", "error", err)
		h.oauthFailure(c, err)
		return
	}

	if h.frontendURL == "" {
		utils.SuccessResponse(c, http.StatusOK, "login successful", result)
		return
	}

	c.Redirect(http.StatusFound, h.frontendRedirect(tokenFragment(result)))
}

func (h *AuthHandler) oauthFailure(c *gin.Context, err error) {
	if h.frontendURL == "" {
		utils.ErrorResponseWithError(c, err)
		return
	}

	msg := "sign-in failed"
	if appErr := errors.GetAppError(err); appErr != nil {
		msg = appErr.Message
	}
	c.Redirect(http.StatusFound, h.frontendRedirect(url.Values{"error": {msg}}))
}

func (h *AuthHandler) frontendRedirect(fragment url.Values) string {
	u, err := url.Parse(h.frontendURL)
	if err != nil {
		return h.frontendURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String() + "#" + fragment.Encode()
}

func tokenFragment(pair *dto.TokenPairDTO) url.Values {
	return url.Values{
		"access_token":  {pair.AccessToken},
		"refresh_token": {pair.RefreshToken},
		"token_type":    {pair.TokenType},
		"expires_in":    {strconv.FormatInt(pair.ExpiresIn, 10)},
	}
}

func callerFromContext(c *gin.Context) (*permission.Principal, error) {
	p, ok := permission.PrincipalFromContext(c.Request.Context())
	if !ok {
		return nil, errors.NewUnauthorizedError("user not authenticated")
	}
	return p, nil
}
