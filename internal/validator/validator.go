// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"finlearn/internal/currency"
	"finlearn/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = Configure(v)
	}
}

// Configure installs the custom tags and the decimal type function on v.
// Decimal fields validate as float64 so numeric tags like gt=0 apply to them.
func Configure(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	validations := map[string]validator.Func{
		"iso4217":         validateISO4217,
		"budget_category": validateBudgetCategory,
		"entry_kind":      validateEntryKind,
		"civil_date":      validateCivilDate,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func decimalValue(field reflect.Value) interface{} {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		f, _ := d.Float64()
		return f
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		f, _ := d.Decimal.Float64()
		return f
	}
	return nil
}

func validateISO4217(fl validator.FieldLevel) bool {
	return currency.Valid(fl.Field().String())
}

func validateBudgetCategory(fl validator.FieldLevel) bool {
	return models.BudgetCategory(fl.Field().String()).Valid()
}

func validateEntryKind(fl validator.FieldLevel) bool {
	return models.EntryKind(fl.Field().String()).Valid()
}

func validateCivilDate(fl validator.FieldLevel) bool {
	d, err := civil.ParseDate(fl.Field().String())
	return err == nil && d.IsValid()
}
