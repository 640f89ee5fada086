package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/juan-moncayo/paycon-go/internal/infrastructure/mqtt"
)

// ReadingFunc receives each reading decoded from the live feed.
type ReadingFunc func(r Reading)

// LiveFeed streams readings straight from a device's broker, bypassing
// the REST history. Messages are JSON reading payloads published on the
// topic derived from the device's routing key.
type LiveFeed struct {
	client *mqtt.Client
	topic  string
}

// OpenLiveFeed connects to the broker described by the options and
// subscribes to the device's topic, delivering each decoded reading to
// onReading. Readings published without a timestamp are stamped on
// arrival.
func OpenLiveFeed(o mqtt.Options, onReading ReadingFunc) (*LiveFeed, error) {
	if onReading == nil {
		return nil, ErrNilCallback
	}

	client, err := mqtt.Connect(o)
	if err != nil {
		return nil, err
	}

	feed := &LiveFeed{
		client: client,
		topic:  o.Descriptor.Topic(),
	}

	err = client.Subscribe(feed.topic, func(_ string, payload []byte) error {
		var r Reading
		if err := json.Unmarshal(payload, &r); err != nil {
			return fmt.Errorf("%w: %w", ErrDecodeReading, err)
		}
		if r.Timestamp.IsZero() {
			r.Timestamp = time.Now()
		}
		onReading(r)
		return nil
	})
	if err != nil {
		client.Close()
		return nil, err
	}

	return feed, nil
}

// SetLogger sets the logger for the underlying broker connection.
func (f *LiveFeed) SetLogger(logger mqtt.Logger) {
	f.client.SetLogger(logger)
}

// Topic returns the subscribed topic.
func (f *LiveFeed) Topic() string {
	return f.topic
}

// Close disconnects from the broker.
func (f *LiveFeed) Close() error {
	return f.client.Close()
}
