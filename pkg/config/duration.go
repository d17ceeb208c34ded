package config

import (
	"fmt"
	"time"

	"github.com/senseyeio/duration"
	"gopkg.in/yaml.v3"
)

var durationReference = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Duration is an ISO-8601 duration read from the configuration ("PT4H"). Its zero
// value means unset.
type Duration struct {
	duration.Duration
	Raw string
}

func ParseDuration(value string) (Duration, error) {
	parsed, err := duration.ParseISO8601(value)
	if err != nil {
		return Duration{}, fmt.Errorf("invalid duration %q: %w", value, err)
	}

	return Duration{Duration: parsed, Raw: value}, nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "" {
		*d = Duration{}
		return nil
	}

	parsed, err := ParseDuration(node.Value)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d Duration) IsSet() bool {
	return d.Raw != ""
}

func (d Duration) ToDuration() time.Duration {
	return d.Shift(durationReference).Sub(durationReference)
}

func (d Duration) Seconds() int64 {
	return int64(d.ToDuration() / time.Second)
}

// SecondsPtr is nil when the duration is unset
func (d Duration) SecondsPtr() *int64 {
	if !d.IsSet() {
		return nil
	}

	seconds := d.Seconds()
	return &seconds
}
