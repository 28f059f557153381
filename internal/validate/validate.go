package validate

// This package is a thin wrapper around go-playground/validator so every
// package validates with the same configured instance.
//
// e.g. internal/config/config.go
//   type Config struct {
//       Scaling           int            `validate:"gte=1,lte=1000"`
//       YellowWarningTime map[string]int `validate:"dive,keys,number,endkeys,gte=0"`
//   }

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInst
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
