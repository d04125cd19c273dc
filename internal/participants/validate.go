package participants

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/pdadev/trackday-backend/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type detailsRules struct {
	Email string `validate:"required,email"`
}

// Validate checks that every participant carries a usable email address.
// Names and phones are optional; the organizer contacts attendees by email.
func Validate(parts []Details) error {
	for _, p := range parts {
		if err := validate.Struct(detailsRules{Email: p.Email}); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("participant %d requires a valid email address", p.Index))
		}
	}
	return nil
}
