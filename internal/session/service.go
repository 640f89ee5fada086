package session

import (
	"context"
	"fmt"

	"github.com/juan-moncayo/paycon-go/internal/rest"
)

// API endpoints owned by this package.
const (
	loginPath    = "/api/login/"
	registerPath = "/api/register/"
)

// Logger defines the logging interface used by the Service.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Debug(string, ...any) {}

// Service handles login, registration, and logout against the Paycon API.
type Service struct {
	api    *rest.Client
	store  Store
	logger Logger
}

// NewService creates a session service using the given transport and store.
func NewService(api *rest.Client, store Store) *Service {
	return &Service{
		api:    api,
		store:  store,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the service.
func (s *Service) SetLogger(logger Logger) {
	s.logger = logger
}

// RegistrationForm is the account registration submission.
type RegistrationForm struct {
	Name            string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	PhoneNumber     string
	Address         string
	AcceptTerms     bool
}

// loginRequest is the login payload.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse is the successful login response.
type tokenResponse struct {
	Token string `json:"token"`
}

// registerRequest is the registration payload.
type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Name        string `json:"name"`
}

// Login authenticates and persists the issued token.
//
// On any failure the stored credential is left untouched; the service's
// rejection message (e.g. "Invalid credentials") travels up inside the
// returned error.
func (s *Service) Login(ctx context.Context, username, password string) (rest.Credential, error) {
	var resp tokenResponse
	err := s.api.Post(ctx, loginPath, "", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", ErrEmptyToken
	}

	cred := rest.Credential(resp.Token)
	if err := s.store.Save(cred); err != nil {
		return "", fmt.Errorf("persisting session: %w", err)
	}

	s.logger.Info("logged in", "username", username)
	return cred, nil
}

// Register creates a new account.
//
// Client-side pre-checks mirror the registration form: the password
// confirmation must match and the terms must be accepted. Service-side
// rejections surface as *rest.ValidationError with per-field messages.
func (s *Service) Register(ctx context.Context, form RegistrationForm) error {
	if form.Password != form.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if !form.AcceptTerms {
		return ErrTermsNotAccepted
	}

	err := s.api.Post(ctx, registerPath, "", registerRequest{
		Username:    form.Username,
		Email:       form.Email,
		Password:    form.Password,
		PhoneNumber: form.PhoneNumber,
		Address:     form.Address,
		Name:        form.Name,
	}, nil)
	if err != nil {
		return err
	}

	s.logger.Info("account registered", "username", form.Username)
	return nil
}

// Logout clears the stored credential. The token is not revoked server-side
// (the service has no revocation endpoint); forgetting it ends the session.
func (s *Service) Logout() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.logger.Info("logged out")
	return nil
}

// Current returns the stored credential, or ErrNotLoggedIn when absent.
func (s *Service) Current() (rest.Credential, error) {
	cred, err := s.store.Load()
	if err != nil {
		return "", err
	}
	if cred.IsZero() {
		return "", ErrNotLoggedIn
	}
	return cred, nil
}
