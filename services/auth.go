package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/medease/desktop/internal/types"
)

// AuthService speaks the backend's auth endpoints.
type AuthService struct {
	client   *Client
	validate *validator.Validate
}

// NewAuthService creates an AuthService on top of the shared client.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{
		client:   client,
		validate: validator.New(),
	}
}

// Login exchanges credentials for a bearer token. Input is validated
// locally first; a rejected form never produces a network call. A 2xx
// response without a token is a malformed response, not a success.
func (s *AuthService) Login(ctx context.Context, email, password string) (types.LoginResponse, error) {
	req := types.LoginRequest{Email: email, Password: password}
	if err := s.validate.Struct(req); err != nil {
		return types.LoginResponse{}, loginValidationError(err)
	}

	var resp types.LoginResponse
	if err := s.client.Post(ctx, "/auth/login", req, &resp); err != nil {
		return types.LoginResponse{}, err
	}
	if resp.Token == "" {
		return types.LoginResponse{}, ErrMalformedResponse
	}
	return resp, nil
}

// Profile fetches the authenticated user's identity.
func (s *AuthService) Profile(ctx context.Context) (types.UserProfile, error) {
	var profile types.UserProfile
	if err := s.client.Get(ctx, "/auth/profile", &profile); err != nil {
		return types.UserProfile{}, err
	}
	return profile, nil
}

// loginValidationError maps validator failures onto the client's
// ValidationError with readable per-field messages.
func loginValidationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return &ValidationError{Messages: []string{err.Error()}}
	}
	out := &ValidationError{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		out.Fields = append(out.Fields, field)
		switch {
		case fe.Tag() == "required":
			out.Messages = append(out.Messages, field+" is required")
		case field == "email":
			out.Messages = append(out.Messages, "email must be a valid address")
		default:
			out.Messages = append(out.Messages, field+" is invalid")
		}
	}
	return out
}
