package telemetry

import "time"

// Reading is a single sensor measurement reported by a device.
//
// Not every device carries the full sensor suite, so individual
// measurements are pointers and nil when the device did not report them.
type Reading struct {
	ID             int      `json:"id,omitempty"`
	Temperature    *float64 `json:"temperature,omitempty"`
	Humidity       *float64 `json:"humidity,omitempty"`
	AirQuality     *float64 `json:"air_quality,omitempty"`
	SoilMoisture   *float64 `json:"soil_moisture,omitempty"`
	LightIntensity *float64 `json:"light_intensity,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Latest returns the most recent reading of a history snapshot, which
// the service orders newest first. The second return is false for an
// empty snapshot.
func Latest(readings []Reading) (Reading, bool) {
	if len(readings) == 0 {
		return Reading{}, false
	}
	return readings[0], true
}
