package telemetry

import (
	"context"
	"net/url"
	"strconv"

	"github.com/juan-moncayo/paycon-go/internal/rest"
)

// API endpoint owned by this package.
const readingsPath = "/api/sensor-readings/"

// Client fetches stored sensor readings over the REST API.
type Client struct {
	api *rest.Client
}

// NewClient creates a telemetry client using the given transport.
func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

// List returns the reading history for a device, newest first, as the
// service orders it.
func (c *Client) List(ctx context.Context, cred rest.Credential, deviceID int) ([]Reading, error) {
	query := url.Values{"device": {strconv.Itoa(deviceID)}}

	var readings []Reading
	if err := c.api.Get(ctx, readingsPath, query, cred, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}
