// SPDX-License-Identifier: EPL-2.0

// Package config loads the audmix command configuration from defaults, an
// optional YAML file and AUDMIX_* environment variables, in increasing
// order of precedence. Command-line flags bound to the viper instance win
// over all of them.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/ik5/audmix/logger"
	"github.com/spf13/viper"
)

const EnvPrefix = "AUDMIX"

// Drivers are the output.driver values sink.Open understands.
var Drivers = []string{"oto", "speaker", "null"}

// Config holds all configuration for the command.
type Config struct {
	Output   OutputConfig   `mapstructure:"output"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// OutputConfig selects and sizes the sink.
type OutputConfig struct {
	Driver       string `mapstructure:"driver"`
	SampleRate   int    `mapstructure:"sample_rate"`
	BufferFrames int    `mapstructure:"buffer_frames"`
}

// PlaybackConfig is the emitter setup and effect chain applied to every
// played or rendered file. Zero echo count and tremolo disable those
// effects; a pitch of 1 disables pitch shifting.
type PlaybackConfig struct {
	Volume    float64 `mapstructure:"volume"`
	Balance   float64 `mapstructure:"balance"`
	Loop      bool    `mapstructure:"loop"`
	Pitch     float64 `mapstructure:"pitch"`
	EchoDelay float64 `mapstructure:"echo_delay"`
	EchoDecay float64 `mapstructure:"echo_decay"`
	EchoCount int     `mapstructure:"echo_count"`
	Tremolo   float64 `mapstructure:"tremolo"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// New returns a viper instance carrying the defaults and the environment
// binding. Flags can be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("output.driver", "oto")
	v.SetDefault("output.sample_rate", 44100)
	v.SetDefault("output.buffer_frames", 1024)

	v.SetDefault("playback.volume", 1.0)
	v.SetDefault("playback.balance", 0.0)
	v.SetDefault("playback.loop", false)
	v.SetDefault("playback.pitch", 1.0)
	v.SetDefault("playback.echo_delay", 0.0)
	v.SetDefault("playback.echo_decay", 0.5)
	v.SetDefault("playback.echo_count", 0)
	v.SetDefault("playback.tremolo", 0.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads file, or audmix.yaml from the working directory or
// $HOME/.audmix when file is empty, and decodes the result. A missing
// default file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("audmix")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.audmix")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment")
	} else {
		slog.Debug("using config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return &cfg, nil
}

// Validate reports the first invalid field as a *ConfigError.
func (c *Config) Validate() error {
	if !slices.Contains(Drivers, strings.ToLower(c.Output.Driver)) {
		return &ConfigError{Field: "output.driver", Message: "must be one of " + strings.Join(Drivers, ", ")}
	}
	if c.Output.SampleRate < 8000 || c.Output.SampleRate > 192000 {
		return &ConfigError{Field: "output.sample_rate", Message: "must be between 8000 and 192000"}
	}
	if c.Output.BufferFrames <= 0 || c.Output.BufferFrames > 1<<16 {
		return &ConfigError{Field: "output.buffer_frames", Message: "must be between 1 and 65536"}
	}

	p := c.Playback
	switch {
	case !finite(p.Volume) || p.Volume < 0:
		return &ConfigError{Field: "playback.volume", Message: "must be >= 0"}
	case !finite(p.Balance) || p.Balance < -1 || p.Balance > 1:
		return &ConfigError{Field: "playback.balance", Message: "must be between -1 and 1"}
	case !finite(p.Pitch) || p.Pitch <= 0:
		return &ConfigError{Field: "playback.pitch", Message: "must be > 0"}
	case !finite(p.EchoDelay) || p.EchoDelay < 0:
		return &ConfigError{Field: "playback.echo_delay", Message: "must be >= 0"}
	case !finite(p.EchoDecay):
		return &ConfigError{Field: "playback.echo_decay", Message: "must be a number"}
	case p.EchoCount < 0:
		return &ConfigError{Field: "playback.echo_count", Message: "must be >= 0"}
	case !finite(p.Tremolo) || p.Tremolo < 0:
		return &ConfigError{Field: "playback.tremolo", Message: "must be >= 0"}
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return &ConfigError{Field: "logging.level", Message: "must be debug, info, warn or error"}
	}
	if f := strings.ToLower(c.Logging.Format); f != "text" && f != "json" {
		return &ConfigError{Field: "logging.format", Message: "must be text or json"}
	}

	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
