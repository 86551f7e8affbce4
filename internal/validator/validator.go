// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("income_source", validateIncomeSource)
		_ = v.RegisterValidation("donation_type", validateDonationType)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Income", "Expense":
		return true
	}
	return false
}

func validateIncomeSource(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Subscriptions", "Book Sales", "Partner Spots":
		return true
	}
	return false
}

func validateDonationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Cash", "Credit Card", "Bank Transfer", "Check", "Online", "Goods", "Stocks", "Other":
		return true
	}
	return false
}
