package config

import "time"

type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	ClientURL   string `mapstructure:"client_url"`
}

// IntakeConfig tunes the duplicate matcher.
type IntakeConfig struct {
	// MatchTolerance is the window around a candidate's scheduled start
	// within which an existing call can still be considered the same
	// meeting. Absorbs clock skew and provider rounding of start times.
	MatchTolerance time.Duration `mapstructure:"match_tolerance"`

	// EventChannel is the pub/sub channel new call records are announced on.
	EventChannel string `mapstructure:"event_channel"`
}

const (
	// DefaultMatchTolerance is used when intake.match_tolerance is unset.
	DefaultMatchTolerance = 5 * time.Minute

	// DefaultEventChannel is the channel consumed by the scoring dispatcher.
	DefaultEventChannel = "call/process"
)

func (c *IntakeConfig) applyDefaults() {
	if c.MatchTolerance <= 0 {
		c.MatchTolerance = DefaultMatchTolerance
	}
	if c.EventChannel == "" {
		c.EventChannel = DefaultEventChannel
	}
}
