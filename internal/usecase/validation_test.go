package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLeadFormNameRequired(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		errs := ValidateLeadForm(name, "a@b.co", "")
		assert.Equal(t, "Name is required", errs["name"])
	}

	errs := ValidateLeadForm("Jane Doe", "a@b.co", "")
	assert.NotContains(t, errs, "name")
}

func TestValidateLeadFormEmail(t *testing.T) {
	errs := ValidateLeadForm("Jane", "", "")
	assert.Equal(t, "Email is required", errs["email"])

	errs = ValidateLeadForm("Jane", "   ", "")
	assert.Equal(t, "Email is required", errs["email"])

	for _, email := range []string{"no-at-sign", "missing@domain", "two@@x.co", "spaces in@x.co"} {
		errs := ValidateLeadForm("Jane", email, "")
		assert.Equal(t, "Please enter a valid email address", errs["email"], "email: %q", email)
	}

	for _, email := range []string{"a@b.co", "jane.doe@example.com", "JANE@X.COM"} {
		errs := ValidateLeadForm("Jane", email, "")
		assert.NotContains(t, errs, "email", "email: %q", email)
	}
}

func TestValidateLeadFormPhone(t *testing.T) {
	// Optional: empty phone is always valid.
	errs := ValidateLeadForm("Jane", "a@b.co", "")
	assert.NotContains(t, errs, "phone")

	for _, phone := range []string{"abc", "12a34", "+1 234-CALL-NOW", "0123456"} {
		errs := ValidateLeadForm("Jane", "a@b.co", phone)
		assert.Equal(t, "Please enter a valid phone number", errs["phone"], "phone: %q", phone)
	}

	// Separators are stripped before matching.
	for _, phone := range []string{"+1 234-567-8901", "(11) 99999-9999", "5511999999999", "+442071838750"} {
		errs := ValidateLeadForm("Jane", "a@b.co", phone)
		assert.NotContains(t, errs, "phone", "phone: %q", phone)
	}
}

func TestValidateLeadFormDeterministic(t *testing.T) {
	first := ValidateLeadForm("", "bad-email", "abc")
	second := ValidateLeadForm("", "bad-email", "abc")
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestValidationErrorsFields(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "Name is required"},
		{Field: "email", Message: "Email is required"},
	}

	fields := errs.Fields()
	assert.Equal(t, "Name is required", fields["name"])
	assert.Equal(t, "Email is required", fields["email"])
	assert.Contains(t, errs.Error(), "Name is required")
}
