package rawg

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func payloadValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// validatePayload rejects decoded payloads that violate the struct tags.
func validatePayload(v any) error {
	return payloadValidator().Struct(v)
}
