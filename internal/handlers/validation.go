package handlers

import (
	"reflect"
	"sync"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator about decimal amounts:
// "money" is a positive amount with at most two decimal places,
// "balance" is the same but also allows zero.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
			d, ok := decimalField(fl)
			return ok && domain.ValidateAmount(d) == nil
		})
		_ = v.RegisterValidation("balance", func(fl validator.FieldLevel) bool {
			d, ok := decimalField(fl)
			return ok && !d.IsNegative() && d.Equal(d.Round(domain.MoneyScale))
		})
	})
}

// decimalField reads the field after the custom type func turned it into a string.
func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(field.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
