package checkout

import (
	"fmt"
	"strings"
	"unicode"
)

// FieldError names one invalid form field with a display message.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidFormError aggregates every failed field of one validation pass.
type InvalidFormError struct {
	Fields []FieldError
}

func (e *InvalidFormError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// PhaseError indicates an operation attempted outside its legal phase.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.Phase)
}

// Validate checks the form without mutating any state. Every shipping field
// is required, the phone must carry at least 10 digits and the postal code
// exactly 6.
func Validate(f Form) []FieldError {
	var errs []FieldError
	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, FieldError{Field: field, Message: "required"})
		}
	}

	a := f.Shipping
	required("name", a.Name)
	required("phone", a.Phone)
	required("line1", a.Line1)
	required("city", a.City)
	required("state", a.State)
	required("postal_code", a.PostalCode)
	required("payment_method", f.PaymentMethod)

	if a.Phone != "" && digitCount(a.Phone) < 10 {
		errs = append(errs, FieldError{Field: "phone", Message: "must contain at least 10 digits"})
	}
	if a.PostalCode != "" && !isDigits(a.PostalCode, 6) {
		errs = append(errs, FieldError{Field: "postal_code", Message: "must be exactly 6 digits"})
	}
	return errs
}

// digitCount tolerates separators like "+91 98765-43210".
func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func isDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
