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

type fakeResolver struct {
	id  int
	err error
}

func (f fakeResolver) UserID(context.Context, rest.Credential) (int, error) {
	return f.id, f.err
}

func newRegistry(t *testing.T, handler http.Handler) (*Registry, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	api := rest.NewClient(rest.Config{BaseURL: server.URL})
	return NewRegistry(api, fakeResolver{id: 3}), server
}

func validDraft() Draft {
	return Draft{
		Name:           "Huerto Norte",
		MQTTServer:     "broker.example.com",
		MQTTPort:       1883,
		MQTTUsername:   "sensor",
		MQTTPassword:   "secret",
		MQTTVHost:      "irrigation",
		MQTTExchange:   "amq.topic",
		MQTTRoutingKey: "paycon.device.7",
	}
}

func TestRegistryRefreshAndGet(t *testing.T) {
	registry, _ := newRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/devices/" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":7,"name":"Huerto Norte"},{"id":8,"name":"Invernadero"}]`))
	}))

	devices, err := registry.Refresh(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(devices))
	}

	got, err := registry.Get(7)
	if err != nil {
		t.Fatalf("Get(7) error = %v", err)
	}
	if got.Name != "Huerto Norte" {
		t.Errorf("Get(7).Name = %q", got.Name)
	}

	if _, err := registry.Get(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(99) = %v, want ErrNotFound", err)
	}
}

func TestRegistryCreate(t *testing.T) {
	var body map[string]any
	registry, _ := newRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/devices/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":12,"name":"Huerto Norte","user":3}`))
	}))

	created, err := registry.Create(context.Background(), "tok", validDraft())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != 12 {
		t.Errorf("created ID = %d, want 12", created.ID)
	}

	if got, ok := body["user"].(float64); !ok || int(got) != 3 {
		t.Errorf("request user = %v, want resolved account id 3", body["user"])
	}
	if _, ok := body["mqtt_password"]; !ok {
		t.Error("create request must carry mqtt_password")
	}

	devices := registry.Devices()
	if len(devices) != 1 || devices[0].ID != 12 {
		t.Errorf("snapshot = %+v, want exactly the created device", devices)
	}
}

func TestRegistryCreateInvalidDraftSkipsServer(t *testing.T) {
	registry, _ := newRegistry(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("server should not be reached for an invalid draft")
	}))

	draft := validDraft()
	draft.Name = ""
	if _, err := registry.Create(context.Background(), "tok", draft); !errors.Is(err, ErrInvalidDraft) {
		t.Errorf("Create() = %v, want ErrInvalidDraft", err)
	}
}

func TestRegistryUpdatePasswordHandling(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantKey  bool
	}{
		{"blank password leaves stored one", "", false},
		{"new password sent", "rotated", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			registry, _ := newRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut || r.URL.Path != "/api/devices/7/" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("decoding body: %v", err)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"id":7,"name":"Huerto Norte"}`))
			}))

			draft := validDraft()
			draft.MQTTPassword = tt.password
			if _, err := registry.Update(context.Background(), "tok", 7, draft); err != nil {
				t.Fatalf("Update() error = %v", err)
			}

			_, present := body["mqtt_password"]
			if present != tt.wantKey {
				t.Errorf("mqtt_password key present = %v, want %v", present, tt.wantKey)
			}
			if tt.wantKey && body["mqtt_password"] != tt.password {
				t.Errorf("mqtt_password = %v, want %q", body["mqtt_password"], tt.password)
			}
		})
	}
}

func TestRegistryUpdateFailureLeavesSnapshot(t *testing.T) {
	registry, _ := newRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":7,"name":"Huerto Norte"}]`))
		case http.MethodPut:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"name":["This field may not be blank."]}`))
		}
	}))

	if _, err := registry.Refresh(context.Background(), "tok"); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	draft := validDraft()
	_, err := registry.Update(context.Background(), "tok", 7, draft)
	var verr *rest.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Update() = %v, want *rest.ValidationError", err)
	}

	got, err := registry.Get(7)
	if err != nil {
		t.Fatalf("Get(7) error = %v", err)
	}
	if got.Name != "Huerto Norte" {
		t.Errorf("snapshot changed after rejected update: %+v", got)
	}
}

func TestRegistryDelete(t *testing.T) {
	deleted := false
	registry, _ := newRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":7},{"id":8}]`))
		case http.MethodDelete:
			if r.URL.Path != "/api/devices/7/" {
				t.Errorf("delete path = %q", r.URL.Path)
			}
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		}
	}))

	if _, err := registry.Refresh(context.Background(), "tok"); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := registry.Delete(context.Background(), "tok", 7); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !deleted {
		t.Error("delete request never reached the server")
	}

	devices := registry.Devices()
	if len(devices) != 1 || devices[0].ID != 8 {
		t.Errorf("snapshot after delete = %+v, want only device 8", devices)
	}
}

func TestRegistryReadings(t *testing.T) {
	registry, _ := newRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/devices/7/readings/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":42,"temperature":21.5,"timestamp":"2026-08-29T10:30:00Z"}]`))
	}))

	readings, err := registry.Readings(context.Background(), "tok", 7)
	if err != nil {
		t.Fatalf("Readings() error = %v", err)
	}
	if len(readings) != 1 || readings[0].ID != 42 {
		t.Errorf("readings = %+v", readings)
	}
}
