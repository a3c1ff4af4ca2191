// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/logger"
	"github.com/ik5/audmix/sink"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play FILE...",
	Short: "Play files simultaneously",
	Long: `Decode every FILE, apply the configured effect chain and play them all at
once through the configured output driver. Returns when every file has
finished, or on SIGINT/SIGTERM.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindPlaybackFlags(cmd.Flags())
	},
	RunE: runPlay,
}

func init() {
	playbackFlags(playCmd.Flags())
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out, err := sink.Open(cfg.Output.Driver, sink.Options{
		SampleRate:   cfg.Output.SampleRate,
		BufferFrames: cfg.Output.BufferFrames,
		Logger:       logger.WithComponent("sink"),
	})
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}

	mix := audio.NewContext(out.SampleRate(),
		audio.WithLogger(logger.WithComponent("mixer")),
		audio.WithBufferFrames(cfg.Output.BufferFrames))

	if _, err := playFiles(mix, args, cfg.Playback); err != nil {
		return errors.Join(err, out.Close())
	}

	if err := out.Start(mix); err != nil {
		return errors.Join(fmt.Errorf("failed to start output: %w", err), out.Close())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = waitDone(ctx, mix, 50*time.Millisecond)
	if errors.Is(err, context.Canceled) {
		slog.Info("interrupted, stopping playback")
		err = nil
	}

	return errors.Join(err, out.Close())
}
