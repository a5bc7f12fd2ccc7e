package validators

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FormatErrors flattens validator errors into the "validation failed: [Field: X, Tag: Y]" form.
func FormatErrors(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("validation failed: %v", messages)
	}
	return fmt.Errorf("validation error: %w", err)
}
