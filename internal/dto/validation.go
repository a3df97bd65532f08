package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations adds the binding validations the request DTOs
// rely on beyond the built-in tags. Call once at startup against gin's
// validator engine.
func RegisterCustomValidations(v *validator.Validate) error {
	return v.RegisterValidation("payperiod", validPayPeriod)
}

// validPayPeriod accepts salary periods in YYYY-MM form.
func validPayPeriod(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}
