package funnel

import "errors"

var (
	// ErrNotFound is returned when a referenced villa or suite does not exist.
	ErrNotFound = errors.New("funnel: not found")
	// ErrNoSelectedSuite is returned when a step needs a suite selection that was never made.
	ErrNoSelectedSuite = errors.New("funnel: no suite selected")
	// ErrNotSignedIn is returned when a step needs a signed-in guest.
	ErrNotSignedIn = errors.New("funnel: not signed in")
	// ErrUnknownPage is returned when a page name does not resolve.
	ErrUnknownPage = errors.New("funnel: unknown page")
)

// ValidationError captures field level validation issues that callers can surface to guests.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNoSelectedSuite):
		return "no_selected_suite"
	case errors.Is(err, ErrNotSignedIn):
		return "not_signed_in"
	case errors.Is(err, ErrUnknownPage):
		return "unknown_page"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	return "unexpected"
}
