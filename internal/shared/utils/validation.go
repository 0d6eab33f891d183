package utils

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	configureValidator(validate)

	// Requests bound through gin share the same field naming and custom tags.
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configureValidator(engine)
	}
}

func configureValidator(v *validator.Validate) {
	// Use JSON tag names for validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
}

// ValidateStruct validates a struct and returns a validation AppError with per-field details.
func ValidateStruct(s interface{}) error {
	return translateValidationError(validate.Struct(s))
}

// BindingError converts an error from c.ShouldBindJSON / ShouldBindQuery into an AppError,
// so malformed requests surface as 400 instead of 500.
func BindingError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		return translateValidationError(verrs)
	}
	return errors.NewValidationError("Invalid request body", err.Error())
}

func translateValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.NewValidationError(constants.ErrMsgValidationFailed, err.Error())
	}

	fields := make([]errors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, errors.FieldError{
			Field:   fe.Field(),
			Message: getFieldErrorMessage(fe),
		})
	}
	return errors.NewFieldValidationError(constants.ErrMsgValidationFailed, fields)
}

// getFieldErrorMessage returns a user-friendly error message for a field validation error
func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, param)
	case "dive":
		return fmt.Sprintf("%s contains an invalid entry", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "alphanum":
		return fmt.Sprintf("%s must contain only alphanumeric characters", field)
	case "alpha":
		return fmt.Sprintf("%s must contain only alphabetic characters", field)
	case "numeric":
		return fmt.Sprintf("%s must be a valid number", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "uri":
		return fmt.Sprintf("%s must be a valid URI", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, tag)
	}
}
