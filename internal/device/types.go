package device

import (
	"time"

	"github.com/juan-moncayo/paycon-go/internal/infrastructure/mqtt"
	"github.com/juan-moncayo/paycon-go/internal/telemetry"
)

// Device is a registered irrigation device as the service returns it.
//
// The mqtt_* fields describe the broker the device publishes its sensor
// readings to. The service blanks mqtt_password on reads.
type Device struct {
	ID            int                `json:"id"`
	Name          string             `json:"name"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	LatestReading *telemetry.Reading `json:"latest_reading"`

	MQTTServer     string `json:"mqtt_server"`
	MQTTPort       int    `json:"mqtt_port"`
	MQTTUsername   string `json:"mqtt_username"`
	MQTTPassword   string `json:"mqtt_password"`
	MQTTVHost      string `json:"mqtt_vhost"`
	MQTTExchange   string `json:"mqtt_exchange"`
	MQTTRoutingKey string `json:"mqtt_routing_key"`

	// User is the owning account's numeric ID.
	User int `json:"user"`
}

// Descriptor returns the device's broker endpoint for a live connection.
func (d Device) Descriptor() mqtt.Descriptor {
	return mqtt.Descriptor{
		Server:     d.MQTTServer,
		Port:       d.MQTTPort,
		Username:   d.MQTTUsername,
		Password:   d.MQTTPassword,
		VHost:      d.MQTTVHost,
		Exchange:   d.MQTTExchange,
		RoutingKey: d.MQTTRoutingKey,
	}
}
