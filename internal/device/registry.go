package device

import (
	"context"
	"fmt"
	"sync"

	"github.com/juan-moncayo/paycon-go/internal/rest"
	"github.com/juan-moncayo/paycon-go/internal/telemetry"
)

// API endpoints owned by this package.
const devicesPath = "/api/devices/"

// UserResolver resolves the numeric account ID that new devices are
// registered under.
type UserResolver interface {
	UserID(ctx context.Context, cred rest.Credential) (int, error)
}

// Logger defines the logging interface used by the Registry.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Debug(string, ...any) {}

// devicePayload is the write shape for create and update requests.
//
// The password is a pointer so an update can leave the key out entirely,
// which the service reads as "keep the stored password".
type devicePayload struct {
	Name           string  `json:"name"`
	MQTTServer     string  `json:"mqtt_server"`
	MQTTPort       int     `json:"mqtt_port"`
	MQTTUsername   string  `json:"mqtt_username"`
	MQTTPassword   *string `json:"mqtt_password,omitempty"`
	MQTTVHost      string  `json:"mqtt_vhost"`
	MQTTExchange   string  `json:"mqtt_exchange"`
	MQTTRoutingKey string  `json:"mqtt_routing_key"`
	User           int     `json:"user,omitempty"`
}

// Registry keeps the account's devices and mirrors mutations through the
// REST API. The local snapshot changes only after the service accepts a
// request, so a failed call leaves it exactly as it was.
type Registry struct {
	api   *rest.Client
	users UserResolver

	mu      sync.RWMutex
	devices []Device

	logger Logger
}

// NewRegistry creates a device registry using the given transport and
// account resolver.
func NewRegistry(api *rest.Client, users UserResolver) *Registry {
	return &Registry{
		api:    api,
		users:  users,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Refresh fetches the full device list and replaces the local snapshot.
func (r *Registry) Refresh(ctx context.Context, cred rest.Credential) ([]Device, error) {
	var devices []Device
	if err := r.api.Get(ctx, devicesPath, nil, cred, &devices); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.devices = devices
	r.mu.Unlock()

	r.logger.Debug("device list refreshed", "count", len(devices))
	return r.snapshot(), nil
}

// Devices returns a copy of the local snapshot.
func (r *Registry) Devices() []Device {
	return r.snapshot()
}

func (r *Registry) snapshot() []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Device, len(r.devices))
	copy(out, r.devices)
	return out
}

// Get returns the snapshot entry for a device ID.
func (r *Registry) Get(id int) (Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.devices {
		if d.ID == id {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Create registers a new device under the current account. The account
// ID is resolved first, then sent with the device fields in a single
// create request. The new device joins the snapshot once the service
// echoes it back.
func (r *Registry) Create(ctx context.Context, cred rest.Credential, draft Draft) (Device, error) {
	if err := draft.Validate(); err != nil {
		return Device{}, err
	}

	userID, err := r.users.UserID(ctx, cred)
	if err != nil {
		return Device{}, fmt.Errorf("resolving account id: %w", err)
	}

	password := draft.MQTTPassword
	payload := devicePayload{
		Name:           draft.Name,
		MQTTServer:     draft.MQTTServer,
		MQTTPort:       draft.MQTTPort,
		MQTTUsername:   draft.MQTTUsername,
		MQTTPassword:   &password,
		MQTTVHost:      draft.MQTTVHost,
		MQTTExchange:   draft.MQTTExchange,
		MQTTRoutingKey: draft.MQTTRoutingKey,
		User:           userID,
	}

	var created Device
	if err := r.api.Post(ctx, devicesPath, cred, payload, &created); err != nil {
		return Device{}, err
	}

	r.mu.Lock()
	r.devices = append(r.devices, created)
	r.mu.Unlock()

	r.logger.Info("device created", "id", created.ID, "name", created.Name)
	return created, nil
}

// Update replaces a device's fields. A blank draft password keeps the
// stored one: the mqtt_password key is left out of the request body.
func (r *Registry) Update(ctx context.Context, cred rest.Credential, id int, draft Draft) (Device, error) {
	if err := draft.Validate(); err != nil {
		return Device{}, err
	}

	payload := devicePayload{
		Name:           draft.Name,
		MQTTServer:     draft.MQTTServer,
		MQTTPort:       draft.MQTTPort,
		MQTTUsername:   draft.MQTTUsername,
		MQTTVHost:      draft.MQTTVHost,
		MQTTExchange:   draft.MQTTExchange,
		MQTTRoutingKey: draft.MQTTRoutingKey,
	}
	if draft.MQTTPassword != "" {
		password := draft.MQTTPassword
		payload.MQTTPassword = &password
	}

	var updated Device
	if err := r.api.Put(ctx, r.devicePath(id), cred, payload, &updated); err != nil {
		return Device{}, err
	}

	r.mu.Lock()
	for i := range r.devices {
		if r.devices[i].ID == id {
			r.devices[i] = updated
			break
		}
	}
	r.mu.Unlock()

	r.logger.Info("device updated", "id", id)
	return updated, nil
}

// Delete removes a device. The snapshot entry goes away only after the
// service confirms the deletion.
func (r *Registry) Delete(ctx context.Context, cred rest.Credential, id int) error {
	if err := r.api.Delete(ctx, r.devicePath(id), cred); err != nil {
		return err
	}

	r.mu.Lock()
	for i := range r.devices {
		if r.devices[i].ID == id {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	r.logger.Info("device deleted", "id", id)
	return nil
}

// Readings returns the stored reading history for one device.
func (r *Registry) Readings(ctx context.Context, cred rest.Credential, id int) ([]telemetry.Reading, error) {
	var readings []telemetry.Reading
	path := fmt.Sprintf("%s%d/readings/", devicesPath, id)
	if err := r.api.Get(ctx, path, nil, cred, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *Registry) devicePath(id int) string {
	return fmt.Sprintf("%s%d/", devicesPath, id)
}
