package dto

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterDecimalType teaches the binding validator to see decimal.Decimal
// fields as their float value, so tags like required and gt apply to money
// fields. A zero amount therefore fails `required`, which matches the rule
// that every operation amount is strictly positive.
func RegisterDecimalType(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}
