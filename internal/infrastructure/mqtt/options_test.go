package mqtt

import (
	"errors"
	"testing"
	"time"
)

func TestDescriptorValidate(t *testing.T) {
	valid := Descriptor{
		Server:     "broker.example.com",
		Port:       1883,
		Username:   "sensor",
		RoutingKey: "paycon.device.7",
	}

	tests := []struct {
		name    string
		mutate  func(*Descriptor)
		wantErr bool
	}{
		{
			name:   "valid descriptor",
			mutate: func(*Descriptor) {},
		},
		{
			name:    "missing server",
			mutate:  func(d *Descriptor) { d.Server = "" },
			wantErr: true,
		},
		{
			name:    "zero port",
			mutate:  func(d *Descriptor) { d.Port = 0 },
			wantErr: true,
		},
		{
			name:    "port too large",
			mutate:  func(d *Descriptor) { d.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "missing routing key",
			mutate:  func(d *Descriptor) { d.RoutingKey = "" },
			wantErr: true,
		},
		{
			name:   "credentials optional",
			mutate: func(d *Descriptor) { d.Username = ""; d.Password = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDescriptor) {
					t.Errorf("Validate() = %v, want ErrInvalidDescriptor", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestDescriptorTopic(t *testing.T) {
	tests := []struct {
		routingKey string
		want       string
	}{
		{"paycon.device.7", "paycon/device/7"},
		{"readings", "readings"},
		{"a.b.c.d", "a/b/c/d"},
	}

	for _, tt := range tests {
		d := Descriptor{RoutingKey: tt.routingKey}
		if got := d.Topic(); got != tt.want {
			t.Errorf("Topic(%q) = %q, want %q", tt.routingKey, got, tt.want)
		}
	}
}

func TestAdapterUsername(t *testing.T) {
	tests := []struct {
		name     string
		vhost    string
		username string
		want     string
	}{
		{"named vhost folded in", "irrigation", "sensor", "irrigation:sensor"},
		{"empty vhost omitted", "", "sensor", "sensor"},
		{"default vhost omitted", "/", "sensor", "sensor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Descriptor{VHost: tt.vhost, Username: tt.username}
			if got := d.adapterUsername(); got != tt.want {
				t.Errorf("adapterUsername() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptionsConnectTimeout(t *testing.T) {
	var o Options
	if got := o.connectTimeout(); got != defaultConnectTimeout {
		t.Errorf("connectTimeout() = %v, want %v", got, defaultConnectTimeout)
	}

	o.ConnectTimeout = 3 * time.Second
	if got := o.connectTimeout(); got != 3*time.Second {
		t.Errorf("connectTimeout() = %v, want 3s", got)
	}
}

func TestBuildClientOptions(t *testing.T) {
	o := Options{
		Descriptor: Descriptor{
			Server:     "broker.example.com",
			Port:       1883,
			Username:   "sensor",
			Password:   "secret",
			VHost:      "irrigation",
			RoutingKey: "paycon.device.7",
		},
		QoS: 1,
	}

	opts := buildClientOptions(o)

	if len(opts.Servers) != 1 {
		t.Fatalf("expected 1 broker, got %d", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "tcp://broker.example.com:1883" {
		t.Errorf("broker = %q, want tcp scheme", got)
	}
	if opts.ClientID != "paycon-paycon/device/7" {
		t.Errorf("ClientID = %q, want generated from topic", opts.ClientID)
	}
	if opts.Username != "irrigation:sensor" {
		t.Errorf("Username = %q, want vhost-folded", opts.Username)
	}
	if !opts.CleanSession {
		t.Error("expected clean session")
	}
	if !opts.AutoReconnect {
		t.Error("expected auto-reconnect")
	}

	o.TLS = true
	opts = buildClientOptions(o)
	if got := opts.Servers[0].Scheme; got != "ssl" {
		t.Errorf("scheme = %q, want ssl with TLS enabled", got)
	}
	if opts.TLSConfig == nil || opts.TLSConfig.MinVersion != tlsMinVersion {
		t.Error("expected TLS config with minimum version set")
	}
}
