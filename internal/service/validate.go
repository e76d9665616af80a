package service

import (
	"errors"
	"regexp"

	"github.com/portfolio/contact-api/internal/model"
)

var (
	// ErrFieldsRequired is returned when any form field is empty.
	ErrFieldsRequired = errors.New("all fields are required")
	// ErrInvalidEmail is returned when the email fails the syntax check.
	ErrInvalidEmail = errors.New("invalid email address")
)

// validationMessages holds the text shown to visitors for each validation error.
var validationMessages = map[error]string{
	ErrFieldsRequired: "All fields are required.",
	ErrInvalidEmail:   "Please enter a valid email address.",
}

// emailPattern is deliberately loose: one run without "@", an "@", then a run
// without "@" containing a ".". It is anchored only at the start, so trailing
// text after a matching prefix is accepted. Not RFC 5322.
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)

// ValidateSubmission checks that every field is set and that the email looks
// like local@domain.tld. The required-field check runs first.
func ValidateSubmission(in model.SubmissionInput) error {
	if in.Name == "" || in.Email == "" || in.Subject == "" || in.Message == "" {
		return ErrFieldsRequired
	}
	if !emailPattern.MatchString(in.Email) {
		return ErrInvalidEmail
	}
	return nil
}
