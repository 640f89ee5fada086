package device

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/juan-moncayo/paycon-go/internal/rest"
)

type recordingDispatcher struct {
	actions []PendingAction
	err     error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, _ rest.Credential, action PendingAction) error {
	d.actions = append(d.actions, action)
	return d.err
}

func newGate(t *testing.T, handler http.Handler) (*Gate, *recordingDispatcher) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	dispatcher := &recordingDispatcher{}
	return NewGate(rest.NewClient(rest.Config{BaseURL: server.URL}), dispatcher), dispatcher
}

func TestGateConfirmDispatchesAndClears(t *testing.T) {
	var body map[string]string
	gate, dispatcher := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/validate-superuser/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	}))

	gate.Request(KindDelete, 7)

	if err := gate.Confirm(context.Background(), "tok", "admin", "hunter2"); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	if body["username"] != "admin" || body["password"] != "hunter2" {
		t.Errorf("validation payload = %v", body)
	}
	if len(dispatcher.actions) != 1 {
		t.Fatalf("dispatched %d actions, want 1", len(dispatcher.actions))
	}
	if got := dispatcher.actions[0]; got.Kind != KindDelete || got.DeviceID != 7 {
		t.Errorf("dispatched %+v, want delete of device 7", got)
	}
	if _, ok := gate.Pending(); ok {
		t.Error("gate should be idle after a confirmed action")
	}
}

func TestGateRejectedConfirmStaysPending(t *testing.T) {
	gate, dispatcher := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"Not a superuser."}`))
	}))

	gate.Request(KindEdit, 7)

	// Repeated bad credentials never dispatch and never clear the action.
	for i := 0; i < 3; i++ {
		err := gate.Confirm(context.Background(), "tok", "admin", "wrong")
		var aerr *rest.AuthError
		if !errors.As(err, &aerr) {
			t.Fatalf("Confirm() = %v, want *rest.AuthError", err)
		}
	}

	if len(dispatcher.actions) != 0 {
		t.Errorf("dispatched %d actions, want none", len(dispatcher.actions))
	}
	pending, ok := gate.Pending()
	if !ok || pending.Kind != KindEdit || pending.DeviceID != 7 {
		t.Errorf("pending = %+v ok=%v, want edit of device 7 still staged", pending, ok)
	}
}

func TestGateRequestReplacesPending(t *testing.T) {
	gate, dispatcher := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	gate.Request(KindEdit, 7)
	gate.Request(KindDelete, 8)

	if err := gate.Confirm(context.Background(), "tok", "admin", "hunter2"); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if len(dispatcher.actions) != 1 || dispatcher.actions[0].Kind != KindDelete {
		t.Errorf("dispatched %+v, want only the replacing delete", dispatcher.actions)
	}
}

func TestGateCancel(t *testing.T) {
	gate, _ := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("cancel must not reach the server")
	}))

	if err := gate.Cancel(); !errors.Is(err, ErrNoPendingAction) {
		t.Errorf("Cancel() with nothing staged = %v, want ErrNoPendingAction", err)
	}

	gate.Request(KindCreate, 0)
	if err := gate.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if _, ok := gate.Pending(); ok {
		t.Error("gate should be idle after cancel")
	}
}

func TestGateConfirmWithoutPending(t *testing.T) {
	gate, _ := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("confirm with nothing staged must not reach the server")
	}))

	err := gate.Confirm(context.Background(), "tok", "admin", "hunter2")
	if !errors.Is(err, ErrNoPendingAction) {
		t.Errorf("Confirm() = %v, want ErrNoPendingAction", err)
	}
}
