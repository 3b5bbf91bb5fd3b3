package humint

import (
	"errors"
	"testing"
	"time"
)

func TestEpochForTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"mid month", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), "2025-06"},
		{"first instant", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "2025-06"},
		{"last instant", time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC), "2025-06"},
		{"december", time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC), "2024-12"},
		{
			// 2025-06-30 23:00 in UTC+2 is already July locally.
			"non-UTC zone normalized",
			time.Date(2025, 7, 1, 1, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
			"2025-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EpochForTime(tt.t); got != tt.want {
				t.Errorf("EpochForTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextEpoch(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-06", "2025-07"},
		{"2025-12", "2026-01"},
		{"2024-01", "2024-02"},
	}

	for _, tt := range tests {
		got, err := NextEpoch(tt.in)
		if err != nil {
			t.Fatalf("NextEpoch(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("NextEpoch(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNextEpoch_Invalid(t *testing.T) {
	for _, in := range []string{"", "2025", "2025-13", "June 2025", "2025-6"} {
		if _, err := NextEpoch(in); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("NextEpoch(%q): expected ErrMalformedInput, got %v", in, err)
		}
	}
}

func TestValidEpoch(t *testing.T) {
	valid := []string{"2025-06", "2024-12", "1999-01"}
	for _, s := range valid {
		if !ValidEpoch(s) {
			t.Errorf("ValidEpoch(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "2025", "2025-13", "2025-00", "2025-6", "25-06", "2025-06-15"}
	for _, s := range invalid {
		if ValidEpoch(s) {
			t.Errorf("ValidEpoch(%q) = true, want false", s)
		}
	}
}

func TestCurrentEpoch_Format(t *testing.T) {
	if !ValidEpoch(CurrentEpoch()) {
		t.Errorf("CurrentEpoch() = %q is not a valid epoch", CurrentEpoch())
	}
}
