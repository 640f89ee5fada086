package device

import (
	"context"
	"sync"

	"github.com/juan-moncayo/paycon-go/internal/rest"
)

const superuserPath = "/api/validate-superuser/"

// ActionKind names the gated device operations.
type ActionKind int

const (
	// KindCreate gates registering a new device.
	KindCreate ActionKind = iota
	// KindEdit gates opening a device for editing.
	KindEdit
	// KindDelete gates removing a device.
	KindDelete
)

func (k ActionKind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindEdit:
		return "edit"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// PendingAction is a gated operation waiting for superuser confirmation.
// DeviceID is zero for create.
type PendingAction struct {
	Kind     ActionKind
	DeviceID int
}

// Dispatcher executes a gated action once the superuser check passes.
type Dispatcher interface {
	Dispatch(ctx context.Context, cred rest.Credential, action PendingAction) error
}

type superuserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Gate holds destructive and sensitive device operations until a
// superuser credential check succeeds.
//
// At most one action is pending at a time; a new Request replaces the
// previous one. A failed confirmation leaves the action pending so the
// credentials can be retried, and only Cancel or a successful Confirm
// returns the gate to idle.
type Gate struct {
	api        *rest.Client
	dispatcher Dispatcher

	mu      sync.Mutex
	pending *PendingAction

	logger Logger
}

// NewGate creates a gate that validates against the given transport and
// hands confirmed actions to the dispatcher.
func NewGate(api *rest.Client, dispatcher Dispatcher) *Gate {
	return &Gate{
		api:        api,
		dispatcher: dispatcher,
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for the gate.
func (g *Gate) SetLogger(logger Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Request stages an action for confirmation, replacing any action that
// was already pending.
func (g *Gate) Request(kind ActionKind, deviceID int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending != nil {
		g.logger.Debug("pending action replaced",
			"old", g.pending.Kind.String(), "new", kind.String())
	}
	g.pending = &PendingAction{Kind: kind, DeviceID: deviceID}
}

// Pending reports the staged action, if any.
func (g *Gate) Pending() (PendingAction, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return PendingAction{}, false
	}
	return *g.pending, true
}

// Cancel discards the staged action.
func (g *Gate) Cancel() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return ErrNoPendingAction
	}
	g.logger.Debug("pending action cancelled", "kind", g.pending.Kind.String())
	g.pending = nil
	return nil
}

// Confirm validates the superuser credentials and, on success, executes
// the staged action and returns the gate to idle. A rejected check
// leaves the action pending; the service's rejection travels up in the
// returned error.
func (g *Gate) Confirm(ctx context.Context, cred rest.Credential, username, password string) error {
	g.mu.Lock()
	pending := g.pending
	g.mu.Unlock()

	if pending == nil {
		return ErrNoPendingAction
	}

	req := superuserRequest{Username: username, Password: password}
	if err := g.api.Post(ctx, superuserPath, cred, req, nil); err != nil {
		g.logger.Debug("superuser check rejected", "kind", pending.Kind.String())
		return err
	}

	action := *pending
	g.mu.Lock()
	g.pending = nil
	g.mu.Unlock()

	g.logger.Info("gated action confirmed", "kind", action.Kind.String(), "device", action.DeviceID)
	return g.dispatcher.Dispatch(ctx, cred, action)
}
