package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Error   *ErrorInfo          `json:"error,omitempty"`
	Message string              `json:"message,omitempty"`
	Details []errors.FieldError `json:"details,omitempty"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// CreatedResponse sends a created response
func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	response := APIResponse{
		Success: true,
		Data:    data,
	}

	if len(message) > 0 {
		response.Message = message[0]
	} else {
		response.Message = "Resource created successfully"
	}

	c.JSON(http.StatusCreated, response)
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Type: "error", Message: message},
		Message: message,
	})
}

// ErrorResponseWithError sends an error response based on error type.
// Field-level validation problems are repeated in the top-level details list.
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		// Non-AppErrors never leak their text to the caller.
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Error: &ErrorInfo{
				Type:    string(errors.ErrorTypeInternal),
				Message: constants.ErrMsgInternalServerError,
			},
			Message: constants.ErrMsgInternalServerError,
		})
		return
	}

	c.JSON(appErr.Code, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		},
		Message: appErr.Message,
		Details: appErr.Fields,
	})
}

// ListSuccessResponse sends a successful list response with pagination
func ListSuccessResponse(c *gin.Context, items interface{}, total int64, page, pageSize int, message ...string) {
	response := APIResponse{
		Success: true,
		Data: ListResponse{
			Items:      items,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: TotalPages(total, pageSize),
		},
	}

	if len(message) > 0 {
		response.Message = message[0]
	}

	c.JSON(http.StatusOK, response)
}

// NoContentResponse sends a no content response
func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
