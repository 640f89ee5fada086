package irrigation

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/juan-moncayo/paycon-go/internal/rest"
)

// API endpoints owned by this package.
const (
	schedulesPath = "/api/irrigation-schedules/"
	logsPath      = "/api/irrigation-logs/"
)

// Logger defines the logging interface used by the Manager.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Debug(string, ...any) {}

// createRequest is the create payload. The device travels as device_id
// and new schedules always start active.
type createRequest struct {
	DeviceID  int    `json:"device_id"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Days      string `json:"days"`
	IsActive  bool   `json:"is_active"`
}

// toggleResponse carries the flag the service flipped.
type toggleResponse struct {
	IsActive bool `json:"is_active"`
}

// Manager keeps the schedule list for one selected device at a time and
// mirrors mutations through the REST API. The local list changes only
// after the service accepts a request.
type Manager struct {
	api *rest.Client

	mu        sync.RWMutex
	deviceID  int
	schedules []Schedule

	logger Logger
}

// NewManager creates a schedule manager using the given transport.
func NewManager(api *rest.Client) *Manager {
	return &Manager{api: api, logger: noopLogger{}}
}

// SetLogger sets the logger for the manager.
func (m *Manager) SetLogger(logger Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// Schedules fetches the schedule list for a device and makes it the
// current local list.
func (m *Manager) Schedules(ctx context.Context, cred rest.Credential, deviceID int) ([]Schedule, error) {
	if deviceID == 0 {
		return nil, ErrNoDevice
	}

	query := url.Values{"device": {strconv.Itoa(deviceID)}}
	var schedules []Schedule
	if err := m.api.Get(ctx, schedulesPath, query, cred, &schedules); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.deviceID = deviceID
	m.schedules = schedules
	m.mu.Unlock()

	m.logger.Debug("schedules fetched", "device", deviceID, "count", len(schedules))
	return m.current(), nil
}

// Current returns a copy of the local schedule list.
func (m *Manager) Current() []Schedule {
	return m.current()
}

func (m *Manager) current() []Schedule {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Schedule, len(m.schedules))
	copy(out, m.schedules)
	return out
}

// Create adds a schedule for a device. New schedules start active. The
// local list grows by the entry the service echoes back.
func (m *Manager) Create(ctx context.Context, cred rest.Credential, deviceID int, draft Draft) (Schedule, error) {
	if deviceID == 0 {
		return Schedule{}, ErrNoDevice
	}
	if err := draft.Validate(); err != nil {
		return Schedule{}, err
	}

	req := createRequest{
		DeviceID:  deviceID,
		StartTime: draft.StartTime,
		Duration:  draft.Duration,
		Days:      draft.Days,
		IsActive:  true,
	}

	var created Schedule
	if err := m.api.Post(ctx, schedulesPath, cred, req, &created); err != nil {
		return Schedule{}, err
	}

	m.mu.Lock()
	if m.deviceID == deviceID {
		m.schedules = append(m.schedules, created)
	}
	m.mu.Unlock()

	m.logger.Info("schedule created", "id", created.ID, "device", deviceID)
	return created, nil
}

// Toggle flips a schedule's active flag on the service and patches only
// that flag into the local entry. Every other field of every entry is
// left exactly as fetched.
func (m *Manager) Toggle(ctx context.Context, cred rest.Credential, scheduleID int) (bool, error) {
	path := fmt.Sprintf("%s%d/toggle/", schedulesPath, scheduleID)

	var resp toggleResponse
	if err := m.api.Post(ctx, path, cred, nil, &resp); err != nil {
		return false, err
	}

	m.mu.Lock()
	for i := range m.schedules {
		if m.schedules[i].ID == scheduleID {
			m.schedules[i].IsActive = resp.IsActive
			break
		}
	}
	m.mu.Unlock()

	m.logger.Info("schedule toggled", "id", scheduleID, "active", resp.IsActive)
	return resp.IsActive, nil
}

// Logs fetches the watering run log for a device in the order the
// service returns it.
func (m *Manager) Logs(ctx context.Context, cred rest.Credential, deviceID int) ([]LogEntry, error) {
	if deviceID == 0 {
		return nil, ErrNoDevice
	}

	query := url.Values{"device": {strconv.Itoa(deviceID)}}
	var logs []LogEntry
	if err := m.api.Get(ctx, logsPath, query, cred, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
