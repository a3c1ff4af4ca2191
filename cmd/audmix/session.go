// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/config"
)

// buildChain wraps src in the effects enabled by p, in the order pitch
// shift, tremolo, echo.
func buildChain(src audio.Source, p config.PlaybackConfig) (audio.Source, error) {
	var err error

	if p.Pitch != 1 {
		if src, err = audio.NewPitchShift(src, p.Pitch); err != nil {
			return nil, err
		}
	}
	if p.Tremolo > 0 {
		if src, err = audio.NewOscillator(src, p.Tremolo); err != nil {
			return nil, err
		}
	}
	if p.EchoCount > 0 {
		if src, err = audio.NewEcho(src, p.EchoDelay, p.EchoDecay, p.EchoCount); err != nil {
			return nil, err
		}
	}

	return src, nil
}

// playSource attaches src to mix behind the configured effect chain and
// emitter settings.
func playSource(mix *audio.Context, src audio.Source, p config.PlaybackConfig) (*audio.Emitter, error) {
	chain, err := buildChain(src, p)
	if err != nil {
		return nil, err
	}

	e, err := mix.Play(chain)
	if err != nil {
		return nil, err
	}
	e.SetVolume(p.Volume)
	e.SetBalance(p.Balance)
	e.SetLoop(p.Loop)

	return e, nil
}

// playFiles decodes every path at the mix rate and attaches it.
func playFiles(mix *audio.Context, paths []string, p config.PlaybackConfig) ([]*audio.Emitter, error) {
	emitters := make([]*audio.Emitter, 0, len(paths))

	for _, path := range paths {
		src, err := audmix.OpenAt(path, mix.SampleRate())
		if err != nil {
			return nil, err
		}

		e, err := playSource(mix, src, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		emitters = append(emitters, e)

		slog.Info("file loaded",
			slog.String("path", path),
			slog.Int("frames", e.Len()),
			slog.Int("sample_rate", src.SampleRate()))
	}

	return emitters, nil
}

// mixLength is the frame count of the longest emitter. Unbounded emitters
// have no length, so a fixed count must be given instead.
func mixLength(emitters []*audio.Emitter) (int, error) {
	n := 0
	for _, e := range emitters {
		l := e.Len()
		if l == 0 {
			return 0, fmt.Errorf("%w: pass --frames", audio.ErrUnboundedSource)
		}
		n = max(n, l)
	}
	return n, nil
}

// renderMix pulls frames frames from mix, chunk frames at a time.
func renderMix(mix *audio.Context, frames, chunk int) []audio.Frame {
	out := make([]audio.Frame, frames)
	for start := 0; start < frames; start += chunk {
		mix.Pull(out[start:min(start+chunk, frames)])
	}
	return out
}

// waitDone blocks until every emitter of mix has finished or ctx ends.
func waitDone(ctx context.Context, mix *audio.Context, poll time.Duration) error {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		mix.Prune()
		if mix.Len() == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
