// SPDX-License-Identifier: EPL-2.0

package sink

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/audmix/audio"
)

// Null is a push-mode sink without a device. Its goroutine pulls
// BufferFrames frames once per buffer period and, when Options.Output is
// set, writes them there as interleaved little-endian float32 stereo.
type Null struct {
	rate   int
	frames int
	out    io.Writer
	log    *slog.Logger

	pulled atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
	closed bool
}

var _ audio.Sink = (*Null)(nil)

func NewNull(opts Options) *Null {
	opts = opts.withDefaults()

	return &Null{
		rate:   opts.SampleRate,
		frames: opts.BufferFrames,
		out:    opts.Output,
		log:    opts.Logger.With(slog.String("driver", "null")),
	}
}

func (n *Null) SampleRate() int { return n.rate }

// Frames is the number of frames pulled so far.
func (n *Null) Frames() int64 { return n.pulled.Load() }

// Period is the time one buffer covers.
func (n *Null) Period() time.Duration {
	return time.Duration(n.frames) * time.Second / time.Duration(n.rate)
}

// Start runs the pull loop on a new goroutine until Close.
func (n *Null) Start(p audio.Puller) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch {
	case n.closed:
		return ErrClosed
	case n.done != nil:
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel
	n.done = make(chan struct{})

	go func() {
		defer close(n.done)
		n.err = n.Run(ctx, p)
	}()

	n.log.Info("output started", slog.Int("sample_rate", n.rate), slog.Int("buffer_frames", n.frames))
	return nil
}

// Run is the blocking pull loop. It returns nil when ctx is cancelled and
// an audio.ErrDevice error when writing to the output fails.
func (n *Null) Run(ctx context.Context, p audio.Puller) error {
	buf := make([]audio.Frame, n.frames)

	var raw []byte
	if n.out != nil {
		raw = make([]byte, 8*n.frames)
	}

	ticker := time.NewTicker(n.Period())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		p.Pull(buf)
		n.pulled.Add(int64(len(buf)))

		if n.out == nil {
			continue
		}

		for i, f := range buf {
			binary.LittleEndian.PutUint32(raw[8*i:], math.Float32bits(float32(f.L)))
			binary.LittleEndian.PutUint32(raw[8*i+4:], math.Float32bits(float32(f.R)))
		}
		if _, err := n.out.Write(raw); err != nil {
			n.log.Error("output write failed", slog.Any("error", err))
			return fmt.Errorf("%w: null output: %w", audio.ErrDevice, err)
		}
	}
}

// Close stops the loop, waits for it and reports a write error if the loop
// ended with one.
func (n *Null) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true

	if n.done == nil {
		return nil
	}

	n.cancel()
	<-n.done

	n.log.Info("output stopped", slog.Int64("frames", n.pulled.Load()))

	if n.err != nil && !errors.Is(n.err, context.Canceled) {
		return n.err
	}
	return nil
}
