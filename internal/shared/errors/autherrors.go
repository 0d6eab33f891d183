package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAccountDisabled    ErrorType = "account_disabled"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
	ErrorTypeOAuthError         ErrorType = "oauth_error"
)

// AuthError represents authentication-specific errors with enhanced security context
type AuthError struct {
	*AppError
	// ShouldLog is false for expected failures such as a mistyped password.
	ShouldLog bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError does not reveal whether the email or the password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog: false,
	}
}

// NewAccountDisabledError is returned when a disabled user tries to sign in.
func NewAccountDisabledError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeAccountDisabled,
			Message: "Account is disabled",
			Code:    http.StatusForbidden,
			Details: "Contact an administrator to re-enable your account",
		},
		ShouldLog: true,
	}
}

// NewTokenInvalidError creates an error for invalid tokens
func NewTokenInvalidError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: fmt.Sprintf("Invalid %s", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Token is invalid or has expired",
		},
		ShouldLog: true,
	}
}

// NewOAuthError creates an error for OAuth-related failures
func NewOAuthError(provider string, stage string, details ...string) *AuthError {
	detail := fmt.Sprintf("OAuth authentication failed at %s stage", stage)
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeOAuthError,
			Message: fmt.Sprintf("OAuth authentication failed with %s", provider),
			Code:    http.StatusBadGateway,
			Details: detail,
		},
		ShouldLog: true,
	}
}

// GetAuthError extracts AuthError from error chain
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError returns true if the authentication error should be logged
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}
