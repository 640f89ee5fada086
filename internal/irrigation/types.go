package irrigation

import (
	"fmt"
	"strings"
	"time"
)

// Schedule is a watering schedule as the service returns it.
type Schedule struct {
	ID        int    `json:"id"`
	Device    int    `json:"device"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Days      string `json:"days"`
	IsActive  bool   `json:"is_active"`
}

// LogEntry is one completed watering run. WaterUsed is in liters.
type LogEntry struct {
	ID        int       `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	WaterUsed float64   `json:"water_used"`
}

// Draft is the user-supplied form for a new schedule.
type Draft struct {
	// StartTime in 24h "HH:MM" form.
	StartTime string
	// Duration in minutes.
	Duration int
	// Days is the weekday mask, digits 0 (Sunday) through 6 with no
	// repeats, e.g. "12345" for Monday to Friday.
	Days string
}

// Validate checks a draft before it is sent to the service.
func (d Draft) Validate() error {
	var problems []string

	if _, err := time.Parse("15:04", d.StartTime); err != nil {
		problems = append(problems, "start time must be HH:MM")
	}
	if d.Duration < 1 {
		problems = append(problems, "duration must be at least 1 minute")
	}
	if err := validateDays(d.Days); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSchedule, strings.Join(problems, "; "))
	}
	return nil
}

// validateDays checks a weekday mask: at least one digit, only 0-6,
// each at most once.
func validateDays(days string) error {
	if days == "" {
		return fmt.Errorf("days are required")
	}
	seen := [7]bool{}
	for _, c := range days {
		if c < '0' || c > '6' {
			return fmt.Errorf("days may only contain digits 0-6")
		}
		idx := c - '0'
		if seen[idx] {
			return fmt.Errorf("day %c repeats in mask", c)
		}
		seen[idx] = true
	}
	return nil
}
