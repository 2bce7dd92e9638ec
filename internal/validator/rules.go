package validator

import (
	"log"

	"reviewhub/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-review-status", validateReviewStatus)
	mustRegister("is-company-status", validateCompanyStatus)
}

// 'is-review-status' accepts empty (filter absent) or a persisted status.
func validateReviewStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ReviewStatus(value) {
	case models.ReviewStatusPending, models.ReviewStatusReplied:
		return true
	}
	return false
}

func validateCompanyStatus(fl validator.FieldLevel) bool {
	switch models.CompanyStatus(fl.Field().String()) {
	case models.CompanyStatusPending, models.CompanyStatusPublished, models.CompanyStatusRejected:
		return true
	}
	return false
}
