package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"product-service/app/domain"
)

// bcryptMaxBytes is the longest secret bcrypt accepts.
const bcryptMaxBytes = 72

// Validator wraps the go-playground validator with custom rules.
// It satisfies echo.Validator.
type Validator struct {
	validator *validator.Validate
}

// New creates a new validator instance with custom rules
func New() *Validator {
	validate := validator.New()

	registerCustomValidators(validate)

	// Use JSON field names for validation error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validator: validate,
	}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i any) error {
	if err := v.validator.Struct(i); err != nil {
		var errs validator.ValidationErrors
		if ok := asValidationErrors(err, &errs); !ok {
			return fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
		}
		return NewValidationError(errs)
	}
	return nil
}

// ValidationError represents a validation error with user-friendly messages
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

// Error implements the error interface. Fields are reported in name order.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, e.Errors[field])
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, ", "))
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrValidationFailed
}

// NewValidationError creates a ValidationError from validator.ValidationErrors
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	messages := make(map[string]string, len(errs))

	for _, err := range errs {
		field := err.Field()

		switch err.Tag() {
		case TagRequired:
			messages[field] = fmt.Sprintf("%s is required", field)
		case TagRequiredWith:
			messages[field] = fmt.Sprintf("%s is required when %s is set", field, jsonNames(err.Param()))
		case TagEmail:
			messages[field] = fmt.Sprintf("%s must be a valid email address", field)
		case TagMin:
			messages[field] = fmt.Sprintf("%s must be at least %s characters long", field, err.Param())
		case TagMax:
			messages[field] = fmt.Sprintf("%s must be at most %s characters long", field, err.Param())
		case TagGte:
			messages[field] = fmt.Sprintf("%s must be greater than or equal to %s", field, err.Param())
		case TagEqField:
			messages[field] = fmt.Sprintf("%s must match %s", field, jsonNames(err.Param()))
		case TagBcryptLen:
			messages[field] = fmt.Sprintf("%s must be at most %d bytes long", field, bcryptMaxBytes)
		default:
			messages[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	return &ValidationError{Errors: messages}
}

// registerCustomValidators registers custom validation rules
func registerCustomValidators(validate *validator.Validate) {
	// bcrypt silently rejects longer secrets, so refuse them up front
	_ = validate.RegisterValidation(TagBcryptLen, func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= bcryptMaxBytes
	})
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	errs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = errs
	}
	return ok
}

// jsonNames converts Go field names in a tag parameter to snake case.
func jsonNames(param string) string {
	names := strings.Fields(param)
	for i, name := range names {
		var b strings.Builder
		for j, r := range name {
			if j > 0 && r >= 'A' && r <= 'Z' {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		}
		names[i] = strings.ToLower(b.String())
	}
	return strings.Join(names, ", ")
}

// Validation tags with dedicated client messages
const (
	TagRequired     = "required"
	TagRequiredWith = "required_with"
	TagEmail        = "email"
	TagEqField      = "eqfield"
	TagBcryptLen    = "bcrypt_len"
	TagGte          = "gte"
	TagMin          = "min"
	TagMax          = "max"
)
