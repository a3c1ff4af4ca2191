// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/audmix/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  "Commands for showing and validating the audmix configuration.",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long:  "Validate the configuration file, environment variables and flags.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			slog.Error("configuration validation failed", slog.Any("error", err))
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective configuration after file, environment and flags.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(settings, cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current Configuration:")
	fmt.Fprintf(w, "  Output:\n")
	fmt.Fprintf(w, "    Driver: %s\n", cfg.Output.Driver)
	fmt.Fprintf(w, "    Sample rate: %d\n", cfg.Output.SampleRate)
	fmt.Fprintf(w, "    Buffer frames: %d\n", cfg.Output.BufferFrames)
	fmt.Fprintf(w, "  Playback:\n")
	fmt.Fprintf(w, "    Volume: %g\n", cfg.Playback.Volume)
	fmt.Fprintf(w, "    Balance: %g\n", cfg.Playback.Balance)
	fmt.Fprintf(w, "    Loop: %t\n", cfg.Playback.Loop)
	fmt.Fprintf(w, "    Pitch: %g\n", cfg.Playback.Pitch)
	fmt.Fprintf(w, "    Tremolo: %g Hz\n", cfg.Playback.Tremolo)
	fmt.Fprintf(w, "    Echo: %d x %gs, decay %g\n", cfg.Playback.EchoCount, cfg.Playback.EchoDelay, cfg.Playback.EchoDecay)
	fmt.Fprintf(w, "  Logging:\n")
	fmt.Fprintf(w, "    Level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "    Format: %s\n", cfg.Logging.Format)
}
