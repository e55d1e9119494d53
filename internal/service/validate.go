package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/safetymonkey/discord-to-github-issues-bot/internal/domain"
)

// requestValidator wraps go-playground/validator for command input structs.
type requestValidator struct {
	validator *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validator: validator.New()}
}

// Check validates a struct using its validator tags, reducing the first
// failure to a domain.ValidationError.
func (v *requestValidator) Check(i any) error {
	if err := v.validator.Struct(i); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if ok && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return &domain.ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed on '%s' validation", fe.Tag()),
			}
		}
		return fmt.Errorf("validate request: %w", err)
	}
	return nil
}
