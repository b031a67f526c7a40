// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"budgetapp/internal/money"
)

// validCurrencies contains the ISO 4217 codes the settings screen offers.
var validCurrencies = map[string]bool{
	"AUD": true, "BRL": true, "CAD": true, "CHF": true, "CNY": true,
	"EUR": true, "GBP": true, "INR": true, "JPY": true, "KRW": true,
	"MXN": true, "NOK": true, "NZD": true, "SEK": true, "SGD": true,
	"USD": true, "ZAR": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("occurrence_kind", validateOccurrenceKind)
		_ = v.RegisterValidation("frequency_type", validateFrequencyType)
		_ = v.RegisterValidation("frequency_unit", validateFrequencyUnit)
		_ = v.RegisterValidation("delete_scope", validateDeleteScope)
		_ = v.RegisterValidation("amount", validateAmount)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateOccurrenceKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateFrequencyType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Paycheck", "Recurring", "Misc/One time":
		return true
	}
	return false
}

func validateFrequencyUnit(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Weekly", "Bi-Weekly", "Semi-Monthly", "Monthly", "Bi-Monthly":
		return true
	}
	return false
}

func validateDeleteScope(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "this", "all":
		return true
	}
	return false
}

// validateAmount accepts decimal strings parseable to positive cents.
func validateAmount(fl validator.FieldLevel) bool {
	c, err := money.Parse(fl.Field().String())
	return err == nil && c > 0
}
