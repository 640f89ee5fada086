package mqtt

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

// Connection constants.
const (
	// defaultConnectTimeout is the maximum time to wait for initial connection.
	defaultConnectTimeout = 10 * time.Second

	// defaultDisconnectQuiesce is the time to wait for pending operations on disconnect.
	defaultDisconnectQuiesce = 1000 // milliseconds

	// defaultKeepAlive is the keepalive interval for the connection.
	defaultKeepAlive = 60 * time.Second

	// maxQoS is the maximum QoS level supported.
	maxQoS = 2

	// tlsMinVersion is the minimum TLS version for secure connections.
	tlsMinVersion = tls.VersionTLS12
)

// Descriptor identifies a device's broker endpoint. Its fields mirror the
// MQTT connection descriptor carried by every registered device.
type Descriptor struct {
	Server     string
	Port       int
	Username   string
	Password   string
	VHost      string
	Exchange   string
	RoutingKey string
}

// Validate checks the descriptor for the fields a connection requires.
func (d Descriptor) Validate() error {
	if d.Server == "" {
		return fmt.Errorf("%w: server is required", ErrInvalidDescriptor)
	}
	if d.Port < 1 || d.Port > 65535 {
		return fmt.Errorf("%w: port must be 1-65535", ErrInvalidDescriptor)
	}
	if d.RoutingKey == "" {
		return fmt.Errorf("%w: routing key is required", ErrInvalidDescriptor)
	}
	return nil
}

// Topic maps the AMQP routing key onto the MQTT topic the RabbitMQ
// adapter exposes: dots become topic level separators.
func (d Descriptor) Topic() string {
	return strings.ReplaceAll(d.RoutingKey, ".", "/")
}

// adapterUsername folds the RabbitMQ virtual host into the MQTT username
// ("vhost:username"), which is how the RabbitMQ MQTT adapter selects a
// vhost. The default vhost "/" and an empty vhost are omitted.
func (d Descriptor) adapterUsername() string {
	if d.VHost == "" || d.VHost == "/" {
		return d.Username
	}
	return d.VHost + ":" + d.Username
}

// Options configures a broker connection.
type Options struct {
	Descriptor Descriptor

	// ClientID identifies this client on the broker. Empty generates one
	// from the descriptor.
	ClientID string

	// QoS for subscriptions (0, 1, or 2).
	QoS int

	// TLS enables a TLS transport to the broker.
	TLS bool

	// ConnectTimeout bounds the initial connection. Zero means 10s.
	ConnectTimeout time.Duration

	// ReconnectInitialDelay and ReconnectMaxDelay bound the automatic
	// reconnection backoff. Zero values mean 1s and 60s.
	ReconnectInitialDelay time.Duration
	ReconnectMaxDelay     time.Duration
}

// connectTimeout returns the effective initial connection timeout.
func (o Options) connectTimeout() time.Duration {
	if o.ConnectTimeout > 0 {
		return o.ConnectTimeout
	}
	return defaultConnectTimeout
}

// buildClientOptions creates paho MQTT options from a device descriptor.
//
// This configures:
//   - Broker URL (tcp:// or ssl:// based on the TLS setting)
//   - Client ID
//   - Adapter credentials (vhost folded into the username)
//   - Auto-reconnect with bounded backoff
//   - Clean session mode
func buildClientOptions(o Options) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()

	scheme := "tcp"
	if o.TLS {
		scheme = "ssl"
	}
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, o.Descriptor.Server, o.Descriptor.Port))

	clientID := o.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("paycon-%s", o.Descriptor.Topic())
	}
	opts.SetClientID(clientID)

	if o.Descriptor.Username != "" {
		opts.SetUsername(o.Descriptor.adapterUsername())
		opts.SetPassword(o.Descriptor.Password)
	}

	opts.SetCleanSession(true)

	initial := o.ReconnectInitialDelay
	if initial <= 0 {
		initial = time.Second
	}
	maxDelay := o.ReconnectMaxDelay
	if maxDelay <= 0 {
		maxDelay = 60 * time.Second
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(initial)
	opts.SetMaxReconnectInterval(maxDelay)

	opts.SetConnectTimeout(o.connectTimeout())
	opts.SetKeepAlive(defaultKeepAlive)

	if o.TLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tlsMinVersion})
	}

	return opts
}
