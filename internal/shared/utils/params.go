package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/id"
)

// ParseTicketIDParam reads a TK-###### identifier from the route.
func ParseTicketIDParam(c *gin.Context, paramName string) (string, error) {
	ticketID := c.Param(paramName)
	if ticketID == "" {
		return "", errors.NewValidationError("ticket ID is required")
	}
	if !id.IsTicketID(ticketID) {
		return "", errors.NewValidationError("invalid ticket ID format, expected TK-######")
	}
	return ticketID, nil
}

// ParseUUIDParam reads a UUID identifier from the route.
// entityName is used in error messages (e.g., "client", "service tag").
func ParseUUIDParam(c *gin.Context, paramName, entityName string) (string, error) {
	value := c.Param(paramName)
	if value == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}
	if !id.IsUUID(value) {
		return "", errors.NewValidationError("invalid " + entityName + " ID format")
	}
	return value, nil
}
