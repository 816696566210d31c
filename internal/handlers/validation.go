package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// positiveAmount validates that a decimal field is strictly greater than
// zero. Line amounts carry their direction in the line type, so zero and
// negative amounts are never valid input.
var positiveAmount validator.Func = func(fl validator.FieldLevel) bool {
	if d, ok := fl.Field().Interface().(decimal.Decimal); ok {
		return d.IsPositive()
	}
	return false
}

// RegisterValidations installs custom binding validations on gin's
// validator engine. Called once during route registration.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("positiveamount", positiveAmount)
}
