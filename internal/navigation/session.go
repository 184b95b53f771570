package navigation

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/i474232898/neersanchay/internal/common"
	"github.com/i474232898/neersanchay/internal/estimate"
)

const (
	DefaultUserName  = "User"
	DefaultUserEmail = "user@example.com"
)

// User is the mock identity held for the lifetime of the session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Assessment pairs a submitted input with the result derived from it.
type Assessment struct {
	Input       estimate.Input  `json:"input"`
	Result      estimate.Result `json:"result"`
	CompletedAt time.Time       `json:"completedAt"`
}

// Session is everything remembered between screens.
type Session struct {
	User       *User
	Assessment *Assessment
}

// SignInCredentials is the sign-in form.
type SignInCredentials struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

// SignUpCredentials is the sign-up form.
type SignUpCredentials struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// CredentialError rejects a sign-in or sign-up form.
type CredentialError struct {
	Message string
}

func (e *CredentialError) Error() string {
	return e.Message
}

var validate = validator.New()

func checkCredentials(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &CredentialError{Message: err.Error()}
	}

	fe := verrs[0]
	switch {
	case fe.Field() == "ConfirmPassword" && fe.Tag() == "eqfield":
		return &CredentialError{Message: "Passwords do not match"}
	case fe.Field() == "ConfirmPassword":
		return &CredentialError{Message: "Please confirm your password"}
	case fe.Tag() == "email":
		return &CredentialError{Message: "Please enter a valid email address"}
	default:
		return &CredentialError{Message: fe.Field() + " is required"}
	}
}

func (c SignInCredentials) normalize() SignInCredentials {
	c.Email = strings.TrimSpace(c.Email)
	return c
}

func (c SignUpCredentials) normalize() SignUpCredentials {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	return c
}

func newUser(id, name, email, phone string) *User {
	return &User{
		ID:    id,
		Name:  common.FirstNonEmpty(name, DefaultUserName),
		Email: common.FirstNonEmpty(email, DefaultUserEmail),
		Phone: phone,
	}
}
