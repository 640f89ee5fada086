package irrigation

import (
	"errors"
	"testing"
)

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantErr bool
	}{
		{"valid weekdays", Draft{StartTime: "06:00", Duration: 15, Days: "12345"}, false},
		{"valid every day", Draft{StartTime: "19:30", Duration: 1, Days: "0123456"}, false},
		{"valid weekend", Draft{StartTime: "08:00", Duration: 30, Days: "06"}, false},
		{"bad time", Draft{StartTime: "25:00", Duration: 15, Days: "12345"}, true},
		{"missing time", Draft{Duration: 15, Days: "12345"}, true},
		{"zero duration", Draft{StartTime: "06:00", Duration: 0, Days: "12345"}, true},
		{"negative duration", Draft{StartTime: "06:00", Duration: -5, Days: "12345"}, true},
		{"empty days", Draft{StartTime: "06:00", Duration: 15}, true},
		{"day out of range", Draft{StartTime: "06:00", Duration: 15, Days: "7"}, true},
		{"non digit days", Draft{StartTime: "06:00", Duration: 15, Days: "mon"}, true},
		{"repeated day", Draft{StartTime: "06:00", Duration: 15, Days: "1135"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSchedule) {
					t.Errorf("Validate() = %v, want ErrInvalidSchedule", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
