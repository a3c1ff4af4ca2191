// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/wav"
	"github.com/spf13/cobra"
)

var (
	toneWave    string
	toneFreq    float64
	toneSeconds float64
	toneSeed    uint64
	toneOutput  string
)

var toneCmd = &cobra.Command{
	Use:   "tone -o OUT.wav",
	Short: "Write a test tone to a WAV file",
	Long: `Generate a sine, saw, square or triangle wave (or white noise) at the
output sample rate and write it as 16-bit stereo WAV.`,
	Args: cobra.NoArgs,
	RunE: runTone,
}

func init() {
	f := toneCmd.Flags()
	f.StringVar(&toneWave, "wave", "sine", "waveform (sine, saw, square, triangle, noise)")
	f.Float64Var(&toneFreq, "freq", 440, "frequency in Hz")
	f.Float64Var(&toneSeconds, "seconds", 2, "duration in seconds")
	f.Uint64Var(&toneSeed, "seed", 1, "noise seed")
	f.StringVarP(&toneOutput, "output", "o", "", "output WAV file")
	cobra.CheckErr(toneCmd.MarkFlagRequired("output"))

	rootCmd.AddCommand(toneCmd)
}

// generator returns the source for wave; noise ignores the frequency.
func generator(wave string, freq float64, seed uint64) (audio.Source, error) {
	if strings.EqualFold(wave, "noise") {
		return audio.NewNoise(seed), nil
	}

	w, err := audio.ParseWaveform(wave)
	if err != nil {
		return nil, err
	}
	t, err := audio.NewTone(w, freq)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// renderTone loops src for frames frames at rate.
func renderTone(src audio.Source, rate, frames int) []audio.Frame {
	mix := audio.NewContext(rate)

	// A looping emitter with a source always attaches.
	_, _ = mix.Play(src)

	return renderMix(mix, frames, 4096)
}

func runTone(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, err := generator(toneWave, toneFreq, toneSeed)
	if err != nil {
		return err
	}

	rate := cfg.Output.SampleRate
	frames := int(toneSeconds * float64(rate))
	if frames <= 0 {
		return fmt.Errorf("%w: duration %vs", audio.ErrInvalidParameter, toneSeconds)
	}

	out := renderTone(src, rate, frames)
	if err := wav.ExportFile(toneOutput, audio.NewBuffer(rate, 2, out), 0, rate); err != nil {
		return fmt.Errorf("failed to write %s: %w", toneOutput, err)
	}

	slog.Info("tone written",
		slog.String("path", toneOutput),
		slog.String("wave", toneWave),
		slog.Float64("frequency", toneFreq),
		slog.Int("frames", frames))
	return nil
}
