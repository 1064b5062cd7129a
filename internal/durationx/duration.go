// Package durationx parses the compact duration strings used in token and
// cookie configuration, e.g. "30s", "15m", "12h", "7d". The unit table is
// fixed to {s, m, h, d} with integer magnitudes; anything else is rejected.
package durationx

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

var units = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
}

// Parse converts a string like "15m" or "7d" into a time.Duration.
// The magnitude must be a positive integer and the suffix one of s, m, h, d.
func Parse(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	unit, ok := units[s[len(s)-1]]
	if !ok {
		return 0, fmt.Errorf("invalid duration %q: unknown unit %q", s, s[len(s)-1:])
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid duration %q: magnitude must be positive", s)
	}

	return time.Duration(n) * unit, nil
}

// Duration is a time.Duration that unmarshals from the compact string form.
// It is used in config DTOs so JSON files and environment variables can both
// say "15m" or "7d".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalJSON accepts either a quoted compact string or integer nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case string:
		return d.UnmarshalText([]byte(value))
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	default:
		return fmt.Errorf("invalid duration value %v", v)
	}
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
