// Package localtime converts between the backend's normalized instants and the
// value of a datetime-local input control.
package localtime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// InputLayout is the datetime-local control value format (minute precision).
	InputLayout = "2006-01-02T15:04"
	// InstantLayout matches what browsers produce for Date.toISOString.
	InstantLayout = "2006-01-02T15:04:05.000Z"
)

var ErrInvalidInput = errors.New("invalid date-time input")

// zoned instants carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
}

// floating values are read in the caller's location.
var floatingLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	InputLayout,
}

// ToInput renders an instant for a datetime-local control in loc. Empty or
// unparseable instants yield "".
func ToInput(instant string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t, ok := parseInstant(instant, loc)
	if !ok {
		return ""
	}
	return t.In(loc).Format(InputLayout)
}

// ToInstant converts a datetime-local value interpreted in loc into a UTC
// instant string.
func ToInstant(input string, loc *time.Location) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidInput)
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range floatingLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC().Format(InstantLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidInput, input)
}

func parseInstant(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range floatingLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	// Date-only strings are UTC midnight.
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
