package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rcardozo/lead-manager/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every failing field of a payload.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the field -> message mapping used by forms: a field is
// absent from the map when it is valid.
func (e ValidationErrors) Fields() map[string]string {
	m := make(map[string]string, len(e))
	for _, v := range e {
		if _, ok := m[v.Field]; !ok {
			m[v.Field] = v.Message
		}
	}
	return m
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)
)

func isValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// isValidPhone checks the digits after stripping the usual separators.
func isValidPhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phoneRe.MatchString(cleaned)
}

// ValidateLeadForm computes field-level errors for a candidate lead payload.
// Pure and deterministic: the same input always yields the same error set.
func ValidateLeadForm(name, email, phone string) map[string]string {
	errors := map[string]string{}

	if strings.TrimSpace(name) == "" {
		errors["name"] = "Name is required"
	}

	if strings.TrimSpace(email) == "" {
		errors["email"] = "Email is required"
	} else if !isValidEmail(strings.TrimSpace(email)) {
		errors["email"] = "Please enter a valid email address"
	}

	if phone != "" && !isValidPhone(phone) {
		errors["phone"] = "Please enter a valid phone number"
	}

	return errors
}

// validateLead enforces the full schema before any persistence call:
// form-level constraints plus the status enumeration.
func validateLead(lead *entity.Lead) ValidationErrors {
	var errs ValidationErrors

	formErrs := ValidateLeadForm(lead.Name, lead.Email, lead.Phone)
	for _, field := range []string{"name", "email", "phone"} {
		if msg, ok := formErrs[field]; ok {
			errs = append(errs, ValidationError{field, msg})
		}
	}

	if !entity.ValidStatus(lead.Status) {
		errs = append(errs, ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("Status must be one of: %s", strings.Join(entity.Statuses, ", ")),
		})
	}

	return errs
}
