// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/logger"
	"github.com/spf13/cobra"
)

var (
	renderOutput string
	renderFrames int
)

var renderCmd = &cobra.Command{
	Use:   "render FILE... -o OUT.wav",
	Short: "Mix files offline into a WAV file",
	Long: `Mix every FILE through the configured effect chain at the output sample
rate and write the result as 16-bit stereo WAV. The length is the longest
input unless --frames is given; looping or unbounded inputs need --frames.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindPlaybackFlags(cmd.Flags())
	},
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output WAV file")
	renderCmd.Flags().IntVar(&renderFrames, "frames", 0, "frames to render (0 = longest input)")
	cobra.CheckErr(renderCmd.MarkFlagRequired("output"))

	playbackFlags(renderCmd.Flags())
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rate := cfg.Output.SampleRate
	mix := audio.NewContext(rate,
		audio.WithLogger(logger.WithComponent("mixer")),
		audio.WithBufferFrames(cfg.Output.BufferFrames))

	emitters, err := playFiles(mix, args, cfg.Playback)
	if err != nil {
		return err
	}

	frames := renderFrames
	if frames == 0 {
		if frames, err = mixLength(emitters); err != nil {
			return err
		}
	}

	out := renderMix(mix, frames, cfg.Output.BufferFrames)
	if err := wav.ExportFile(renderOutput, audio.NewBuffer(rate, 2, out), 0, rate); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOutput, err)
	}

	slog.Info("mix rendered",
		slog.String("path", renderOutput),
		slog.Int("frames", frames),
		slog.Int("sample_rate", rate))
	return nil
}
