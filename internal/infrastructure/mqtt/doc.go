// Package mqtt provides MQTT connectivity for live sensor feeds.
//
// This package manages:
//   - Connecting to a device's message broker with auto-reconnect
//   - Topic subscriptions, restored automatically after reconnection
//   - Connection state tracking
//
// # Architecture
//
// Each registered device carries its own connection descriptor (broker
// host, port, credentials, RabbitMQ virtual host, exchange and routing
// key). The descriptor points at the same RabbitMQ broker the device's
// firmware publishes sensor readings to; subscribing over the broker's
// MQTT adapter gives the client a live feed without polling the REST API.
//
//	ESP32 firmware → RabbitMQ (MQTT adapter) → this client
//
// RabbitMQ's MQTT adapter has two conventions this package encodes:
// the virtual host is folded into the username as "vhost:username", and
// AMQP routing keys map onto MQTT topics with dots replaced by slashes.
//
// # Usage
//
//	client, err := mqtt.Connect(mqtt.Options{
//	    Descriptor: desc,
//	    QoS:        1,
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.Subscribe(desc.Topic(), func(topic string, payload []byte) error {
//	    // decode reading
//	    return nil
//	})
package mqtt
