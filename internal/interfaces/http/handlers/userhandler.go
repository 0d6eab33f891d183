package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	listUsersUC  listUsersUseCase
	listStaffUC  listStaffUseCase
	getUserUC    getUserUseCase
	createUserUC createUserUseCase
	updateUserUC updateUserUseCase
	deleteUserUC deleteUserUseCase
	logger       logger.Interface
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	listUsersUC listUsersUseCase,
	listStaffUC listStaffUseCase,
	getUserUC getUserUseCase,
	createUserUC createUserUseCase,
	updateUserUC updateUserUseCase,
	deleteUserUC deleteUserUseCase,
	log logger.Interface,
) *UserHandler {
	return &UserHandler{
		listUsersUC:  listUsersUC,
		listStaffUC:  listStaffUC,
		getUserUC:    getUserUC,
		createUserUC: createUserUC,
		updateUserUC: updateUserUC,
		deleteUserUC: deleteUserUC,
		logger:       log,
	}
}

type CreateUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Name     string  `json:"name" binding:"required,notblank,max=100"`
	Role     string  `json:"role" binding:"required,oneof=superadmin admin technician client"`
	ClientID *string `json:"client_id" binding:"omitempty,uuid"`
	// Password is generated server-side when omitted.
	Password         string `json:"password" binding:"omitempty,min=8"`
	SendWelcomeEmail bool   `json:"send_welcome_email"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,notblank,max=100"`
	Disabled *bool   `json:"disabled"`
}

// CreateUser handles POST /users
// @Summary Create a user
// @Description Creates the identity and the profile together; a generated password is returned once
// @Tags users
// @Security Bearer
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User"
// @Success 201 {object} utils.APIResponse{data=usecases.CreateUserResult}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUserUC.Execute(c.Request.Context(), usecases.CreateUserCommand{
		Caller:           caller,
		Email:            req.Email,
		Name:             req.Name,
		Role:             req.Role,
		ClientID:         req.ClientID,
		Password:         req.Password,
		SendWelcomeEmail: req.SendWelcomeEmail,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User created successfully")
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	caller, userID, err := callerAndUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUserUC.Execute(c.Request.Context(), caller, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateUser handles PATCH /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, userID, err := callerAndUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("update user request",
		"current_user_id", caller.UserID,
		"role", caller.Role,
		"target_user_id", userID)

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update user", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateUserUC.Execute(c.Request.Context(), usecases.UpdateUserCommand{
		Caller:   caller,
		UserID:   userID,
		Name:     req.Name,
		Disabled: req.Disabled,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", result)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	caller, userID, err := callerAndUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUserUC.Execute(c.Request.Context(), usecases.DeleteUserCommand{Caller: caller, UserID: userID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListUsers handles GET /users
// @Summary List users
// @Tags users
// @Security Bearer
// @Produce json
// @Param role query string false "Role filter, comma separated"
// @Param client_id query string false "Client ID"
// @Param disabled query bool false "Disabled flag"
// @Param search query string false "Search in name and email"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query, err := parseListUsersQuery(c, caller)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUsersUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}

// ListStaff handles GET /users/staff, the assignee picker.
func (h *UserHandler) ListStaff(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listStaffUC.Execute(c.Request.Context(), caller)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// HealthCheck handles GET /health
func (h *UserHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "helpdesk",
	})
}

func parseListUsersQuery(c *gin.Context, caller *permission.Principal) (usecases.ListUsersQuery, error) {
	pagination := utils.ParsePagination(c)

	var roles []string
	for _, r := range strings.Split(c.Query("role"), ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}

	var disabled *bool
	if raw := c.Query("disabled"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return usecases.ListUsersQuery{}, errors.NewValidationError("disabled must be true or false")
		}
		disabled = &v
	}

	return usecases.ListUsersQuery{
		Caller:    caller,
		Roles:     roles,
		ClientID:  c.Query("client_id"),
		Disabled:  disabled,
		Search:    strings.TrimSpace(c.Query("search")),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}, nil
}

func callerAndUserID(c *gin.Context) (*permission.Principal, string, error) {
	caller, err := callerFromContext(c)
	if err != nil {
		return nil, "", err
	}
	userID, err := utils.ParseUUIDParam(c, "id", "user")
	if err != nil {
		return nil, "", err
	}
	return caller, userID, nil
}
