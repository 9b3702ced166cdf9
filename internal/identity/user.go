package identity

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned when authentication fails.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering an email that already has an account.
var ErrEmailTaken = errors.New("email already registered")

// User is a signed-in guest profile.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Avatar    string
	Points    int
}

// FullName joins the first and last name for display.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Credentials carries what a guest submits on the sign-in and sign-up forms.
// First and last name are only used during registration.
type Credentials struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthProvider authenticates existing guests and registers new ones.
type AuthProvider interface {
	Authenticate(ctx context.Context, creds Credentials) (User, error)
	Register(ctx context.Context, creds Credentials) (User, error)
}
