package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad"), ErrorTypeValidation, http.StatusBadRequest},
		{"bad request", NewBadRequestError("rule"), ErrorTypeBadRequest, http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("dup"), ErrorTypeConflict, http.StatusConflict},
		{"unauthorized", NewUnauthorizedError("who"), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), ErrorTypeForbidden, http.StatusForbidden},
		{"internal", NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_ErrorString(t *testing.T) {
	assert.Equal(t, "forbidden: no access", NewForbiddenError("no access").Error())
	assert.Equal(t, "not_found: missing (ticket TK-000001)", NewNotFoundError("missing", "ticket TK-000001").Error())
}

func TestNewFieldValidationError(t *testing.T) {
	err := NewFieldValidationError("Validation failed", []FieldError{
		{Field: "title", Message: "title is required"},
		{Field: "contact_email", Message: "contact_email must be a valid email address"},
	})

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Len(t, err.Fields, 2)
	assert.Equal(t, "title is required; contact_email must be a valid email address", err.Details)
}

func TestTypePredicates_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewForbiddenError("denied"))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsForbiddenError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry 'x' for key 'y'")))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: service_tags.client_id, service_tags.tag")))
	assert.True(t, IsDuplicateError(fmt.Errorf("ERROR: duplicate key value violates unique constraint")))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
	assert.False(t, IsDuplicateError(nil))
}

func TestAuthErrors(t *testing.T) {
	err := NewInvalidCredentialsError()
	assert.Equal(t, http.StatusUnauthorized, err.Code)
	assert.False(t, ShouldLogAuthError(err))

	disabled := fmt.Errorf("login: %w", NewAccountDisabledError())
	assert.NotNil(t, GetAuthError(disabled))
	assert.True(t, ShouldLogAuthError(disabled))
	assert.True(t, IsAppError(disabled))
}
