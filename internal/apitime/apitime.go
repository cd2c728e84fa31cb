// Package apitime holds the timestamp type request bodies are decoded into.
// The OpenAPI document maps request timestamps onto Time with x-go-type.
package apitime

import (
	"encoding/json"
	"fmt"
	"time"
)

// layouts are the accepted formats, tried in order.
// Zone-less values are read as UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Time accepts RFC 3339 and zone-less ISO-8601 timestamps.
// The zero value means the field was absent from the body.
type Time struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string")
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Parse reads s in any accepted layout and returns it in UTC.
func Parse(s string) (time.Time, error) {
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: want RFC 3339 (2030-01-01T10:00:00Z) or 2030-01-01T10:00:00", s)
}
