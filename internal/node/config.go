package node

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fhsslink/internal/domain"
	"fhsslink/internal/timesync"
)

// Config collects the link parameters both ends must agree on.
type Config struct {
	ScheduleLength int    `yaml:"schedule_length"`
	ChannelCount   int    `yaml:"channel_count"`
	HopInterval    uint32 `yaml:"hop_interval_ms"`
	BeaconInterval uint32 `yaml:"beacon_interval_ms"`
	MaxRetries     int    `yaml:"max_retries"`
	SecurePayload  bool   `yaml:"secure_payload"`
}

// DefaultConfig returns the standard link parameters.
func DefaultConfig() Config {
	return Config{
		ScheduleLength: domain.ScheduleLength,
		ChannelCount:   domain.ChannelCount,
		HopInterval:    timesync.DefaultHopInterval,
		BeaconInterval: timesync.DefaultBeaconInterval,
		MaxRetries:     timesync.DefaultMaxRetries,
		SecurePayload:  false,
	}
}

// LoadConfig reads a YAML config file, filling unset fields from the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects parameter combinations the link cannot run with.
func (c Config) Validate() error {
	if c.ScheduleLength <= 0 {
		return fmt.Errorf("schedule_length must be positive, got %d", c.ScheduleLength)
	}
	if c.ChannelCount <= 0 || c.ChannelCount > 255 {
		return fmt.Errorf("channel_count must be in 1..255, got %d", c.ChannelCount)
	}
	if c.HopInterval == 0 {
		return fmt.Errorf("hop_interval_ms must be positive")
	}
	if c.BeaconInterval == 0 {
		return fmt.Errorf("beacon_interval_ms must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative, got %d", c.MaxRetries)
	}
	return nil
}
