package humint

import (
	"fmt"
	"time"
)

// epochLayout is the epoch identifier format, one epoch per calendar month.
const epochLayout = "2006-01"

// EpochForTime returns the epoch identifier ("YYYY-MM") containing t.
// Epochs are computed in UTC so all parties agree on boundaries regardless
// of local timezone.
func EpochForTime(t time.Time) string {
	return t.UTC().Format(epochLayout)
}

// CurrentEpoch returns the epoch identifier for the current calendar month.
func CurrentEpoch() string {
	return EpochForTime(time.Now())
}

// NextEpoch returns the epoch following the given one. Useful for
// pre-deriving next month's key ahead of the boundary.
func NextEpoch(epoch string) (string, error) {
	t, err := time.Parse(epochLayout, epoch)
	if err != nil {
		return "", fmt.Errorf("%w: invalid epoch %q", ErrMalformedInput, epoch)
	}
	return t.AddDate(0, 1, 0).Format(epochLayout), nil
}

// ValidEpoch reports whether s is a well-formed "YYYY-MM" epoch identifier.
// The epoch scheduler itself is agnostic to calendar logic; this helper is
// for callers that want to validate identifiers at the boundary.
func ValidEpoch(s string) bool {
	t, err := time.Parse(epochLayout, s)
	return err == nil && t.Format(epochLayout) == s
}
