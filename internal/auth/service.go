// Package auth covers the signup and login flows, including every local
// validation that must reject input before a request is issued.
package auth

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/smartpark-app/smartpark-client/internal/session"
	"github.com/smartpark-app/smartpark-client/pkg/errors"
	"github.com/smartpark-app/smartpark-client/pkg/smartpark"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	// contact numbers are exactly 10 ASCII digits
	_ = v.RegisterValidation("contact_no", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if len(value) != 10 {
			return false
		}
		for _, r := range value {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	return v
}

// RegisterInput is the signup form. The rules mirror what the backend
// enforces plus the client-side checks users hit before any request.
type RegisterInput struct {
	Name      string `json:"name" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	ContactNo string `json:"contact_no" validate:"required,contact_no"`
	Password  string `json:"password" validate:"required,min=4"`
}

type Service struct {
	client   *smartpark.Client
	sessions *session.Store
}

func NewService(client *smartpark.Client, sessions *session.Store) *Service {
	return &Service{client: client, sessions: sessions}
}

// Register validates the form locally and creates the account. Validation
// failures never reach the network.
func (s *Service) Register(ctx context.Context, input RegisterInput) (string, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.ContactNo = strings.TrimSpace(input.ContactNo)

	if err := validate.Struct(input); err != nil {
		return "", formatValidationErrors(err)
	}

	result, err := s.client.Signup(ctx, smartpark.SignupRequest{
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		Username:  input.Username,
		ContactNo: input.ContactNo,
	})
	if err != nil {
		return "", err
	}

	message := result.Message
	if message == "" {
		message = "User registered successfully"
	}
	return message, nil
}

// Login authenticates and records the returned identity as the session.
func (s *Service) Login(ctx context.Context, email, password string) (smartpark.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return smartpark.User{}, errors.New(errors.CodeValidation, "email and password are required")
	}

	result, err := s.client.Login(ctx, smartpark.LoginRequest{Email: email, Password: password})
	if err != nil {
		return smartpark.User{}, err
	}

	user := result.User
	if user.Email == "" {
		// older backend builds echo nothing back; keep the typed email
		user.Email = email
	}
	s.sessions.Set(user)
	return user, nil
}

// Logout clears the session. Purely local; the backend keeps no session.
func (s *Service) Logout() {
	s.sessions.Clear()
}

func formatValidationErrors(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.CodeValidation, err, "validation failed")
	}
	parts := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		parts = append(parts, fmt.Sprintf("%s %s", fieldErr.Field(), validationMessage(fieldErr)))
	}
	return errors.New(errors.CodeValidation, strings.Join(parts, "; "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email like example@gmail.com"
	case "contact_no":
		return "must be exactly 10 digits"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	}
	return "is invalid"
}
