package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DecimalGTZero is a binding validator for decimal.Decimal fields that must
// be strictly positive. Registered under the "decimalgtzero" tag at startup.
func DecimalGTZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.GreaterThan(decimal.Zero)
}
