package http

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/example/villays/internal/funnel"
)

// validate is shared across handlers; validator instances cache struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

const dateLayout = "2006-01-02"

type searchRequest struct {
	ArrivalDate   string `json:"arrivalDate" validate:"omitempty,datetime=2006-01-02"`
	DepartureDate string `json:"departureDate" validate:"omitempty,datetime=2006-01-02"`
}

type guestDetailsRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Requests  string `json:"requests"`
}

type navigateRequest struct {
	Page string `json:"page" validate:"required"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type profileUpdateRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type conciergeTurn struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"required"`
}

type conciergeRequest struct {
	Messages []conciergeTurn `json:"messages" validate:"required,min=1,dive"`
}

// validationError converts validator failures into the funnel's field-keyed
// form so the responder renders them the same way everywhere.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	vErr := &funnel.ValidationError{FieldErrors: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if field != "" {
			field = strings.ToLower(field[:1]) + field[1:]
		}
		switch fe.Tag() {
		case "required":
			vErr.FieldErrors[field] = "this field is required"
		case "email":
			vErr.FieldErrors[field] = "a valid email address is required"
		case "min":
			vErr.FieldErrors[field] = "this value is too short"
		case "datetime":
			vErr.FieldErrors[field] = "expected a date formatted as 2006-01-02"
		case "oneof":
			vErr.FieldErrors[field] = "unexpected value"
		default:
			vErr.FieldErrors[field] = "invalid value"
		}
	}
	return vErr
}

func parseOptionalDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, value)
}
