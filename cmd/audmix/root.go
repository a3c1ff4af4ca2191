// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/audmix/config"
	"github.com/ik5/audmix/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	// settings collects defaults, file, environment and bound flags.
	settings = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "audmix",
	Short: "A real-time audio mixer",
	Long: `audmix decodes WAV, MP3, Ogg Vorbis and AIFF files, runs them through
an effect chain (pitch shift, tremolo, echo) and mixes them in real time to
an audio device, or offline into a WAV file.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./audmix.yaml or $HOME/.audmix/audmix.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	pf.String("driver", "oto", "output driver (oto, speaker, null)")
	pf.Int("rate", 44100, "output sample rate in Hz")
	pf.Int("buffer", 1024, "output buffer size in frames")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")

	cobra.CheckErr(errors.Join(
		bind(pf.Lookup("driver"), "output.driver"),
		bind(pf.Lookup("rate"), "output.sample_rate"),
		bind(pf.Lookup("buffer"), "output.buffer_frames"),
		bind(pf.Lookup("log-level"), "logging.level"),
		bind(pf.Lookup("log-format"), "logging.format"),
	))
}

func initConfig() {
	if verbose {
		settings.Set("logging.level", "debug")
	}
}

// loadConfig loads and validates the configuration and installs the
// configured logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(settings, cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr); err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	return cfg, nil
}
