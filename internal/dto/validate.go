package dto

import (
	"fmt"

	"github.com/Erenishere/pharam-sub003/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct tag validation over a request DTO and maps failures to
// apperrors.ErrValidation so callers can match the kind.
func Validate(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}
