package time

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration so it can be decoded from configuration files.
//
// Both the compact grammar understood by ParseDuration ("14d", "30s") and the
// standard Go syntax ("1m30s", "250ms") are accepted.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	s := string(b)

	parsed, err := ParseDuration(s)
	if err == nil {
		d.Duration = parsed
		return nil
	}

	parsed, stdErr := time.ParseDuration(s)
	if stdErr != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}

	d.Duration = parsed
	return nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	return d.UnmarshalText([]byte(s))
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
