package device

import (
	"fmt"
	"strings"
)

// Draft is the user-supplied form for creating or updating a device.
type Draft struct {
	Name           string
	MQTTServer     string
	MQTTPort       int
	MQTTUsername   string
	MQTTPassword   string
	MQTTVHost      string
	MQTTExchange   string
	MQTTRoutingKey string
}

// Validate checks a draft before it is sent to the service. On update a
// blank password means "keep the stored one", so the password is never
// required here.
func (d Draft) Validate() error {
	var problems []string

	if strings.TrimSpace(d.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(d.MQTTServer) == "" {
		problems = append(problems, "mqtt server is required")
	}
	if d.MQTTPort < 1 || d.MQTTPort > 65535 {
		problems = append(problems, "mqtt port must be 1-65535")
	}
	if strings.TrimSpace(d.MQTTRoutingKey) == "" {
		problems = append(problems, "mqtt routing key is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDraft, strings.Join(problems, "; "))
	}
	return nil
}
