package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/juan-moncayo/paycon-go/internal/device"
	"github.com/juan-moncayo/paycon-go/internal/rest"
)

// API endpoints owned by this package.
const (
	profilePath = "/api/profile/"
	accountPath = "/api/user-profile/"
)

// ErrInvalidProfile is returned when a profile fails local validation
// before any request is made.
var ErrInvalidProfile = errors.New("profile: invalid profile")

// Profile is the editable contact profile of the signed-in account.
//
// Email changes are rejected by the service, so callers should treat the
// field as read-only even though updates carry it.
type Profile struct {
	ID          int    `json:"id,omitempty"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// Validate checks the editable fields before an update.
func (p Profile) Validate() error {
	var problems []string
	if strings.TrimSpace(p.Username) == "" {
		problems = append(problems, "username is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		problems = append(problems, "email is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(problems, "; "))
	}
	return nil
}

// Account is the account view, including the default device the service
// preselects for schedule and log screens.
type Account struct {
	Username      string         `json:"username"`
	DefaultDevice *device.Device `json:"default_device"`
}

// Manager reads and updates the account's profile over the REST API.
type Manager struct {
	api *rest.Client
}

// NewManager creates a profile manager using the given transport.
func NewManager(api *rest.Client) *Manager {
	return &Manager{api: api}
}

// Get fetches the editable contact profile.
func (m *Manager) Get(ctx context.Context, cred rest.Credential) (Profile, error) {
	var p Profile
	if err := m.api.Get(ctx, profilePath, nil, cred, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Update replaces the contact profile with the given one and returns the
// profile as the service stored it.
func (m *Manager) Update(ctx context.Context, cred rest.Credential, p Profile) (Profile, error) {
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}

	var updated Profile
	if err := m.api.Put(ctx, profilePath, cred, p, &updated); err != nil {
		return Profile{}, err
	}
	return updated, nil
}

// Account fetches the account view with the default device, which is nil
// when no default is configured.
func (m *Manager) Account(ctx context.Context, cred rest.Credential) (Account, error) {
	var a Account
	if err := m.api.Get(ctx, accountPath, nil, cred, &a); err != nil {
		return Account{}, err
	}
	return a, nil
}

// UserID resolves the numeric account ID from the contact profile. It
// satisfies the resolver device registration expects.
func (m *Manager) UserID(ctx context.Context, cred rest.Credential) (int, error) {
	p, err := m.Get(ctx, cred)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}
