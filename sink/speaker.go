// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package sink

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/ik5/audmix/audio"
)

// Speaker plays through gopxl/beep's speaker package, which mixes the
// streamers it is given on its own goroutine.
type Speaker struct {
	rate   int
	frames int
	log    *slog.Logger

	mu       sync.Mutex
	streamer *Streamer
	closed   bool
}

var _ audio.Sink = (*Speaker)(nil)

func NewSpeaker(opts Options) (*Speaker, error) {
	opts = opts.withDefaults()

	if err := speaker.Init(beep.SampleRate(opts.SampleRate), opts.BufferFrames); err != nil {
		return nil, fmt.Errorf("%w: speaker: %w", audio.ErrDevice, err)
	}

	return &Speaker{
		rate:   opts.SampleRate,
		frames: opts.BufferFrames,
		log:    opts.Logger.With(slog.String("driver", "speaker")),
	}, nil
}

func (s *Speaker) SampleRate() int { return s.rate }

func (s *Speaker) Start(p audio.Puller) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		return ErrClosed
	case s.streamer != nil:
		return ErrAlreadyStarted
	}

	s.streamer = NewStreamer(s.frames)
	s.streamer.SetPuller(p)
	speaker.Play(s.streamer)

	s.log.Info("output started", slog.Int("sample_rate", s.rate), slog.Int("buffer_frames", s.frames))
	return nil
}

func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.streamer != nil {
		s.streamer.Stop()
	}
	speaker.Clear()
	speaker.Close()

	s.log.Info("output stopped")
	return nil
}
