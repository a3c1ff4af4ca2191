// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package sink

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/audmix/audio"
)

// oto allows one context per process, so every Oto sink shares it.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
)

func otoContext(rate, bufferFrames int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   rate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
			BufferSize:   time.Duration(bufferFrames) * time.Second / time.Duration(rate),
		}

		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(op)
		if otoErr == nil {
			<-ready
			otoRate = rate
		}
	})

	if otoErr != nil {
		return nil, fmt.Errorf("%w: oto: %w", audio.ErrDevice, otoErr)
	}
	if otoRate != rate {
		return nil, fmt.Errorf("%w: oto already running at %d Hz, not %d Hz", audio.ErrDevice, otoRate, rate)
	}
	return otoCtx, nil
}

// Oto plays through ebitengine/oto. oto calls Read on its own goroutine
// whenever the device needs data.
type Oto struct {
	rate   int
	frames int
	log    *slog.Logger

	ctx    *oto.Context
	feed   atomic.Pointer[feed] // lock-free for Read
	mu     sync.Mutex           // Start and Close only
	player *oto.Player
	closed bool
}

var _ audio.Sink = (*Oto)(nil)

func NewOto(opts Options) (*Oto, error) {
	opts = opts.withDefaults()

	ctx, err := otoContext(opts.SampleRate, opts.BufferFrames)
	if err != nil {
		return nil, err
	}

	return &Oto{
		rate:   opts.SampleRate,
		frames: opts.BufferFrames,
		log:    opts.Logger.With(slog.String("driver", "oto")),
		ctx:    ctx,
	}, nil
}

func (o *Oto) SampleRate() int { return o.rate }

func (o *Oto) Start(p audio.Puller) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch {
	case o.closed:
		return ErrClosed
	case o.player != nil:
		return ErrAlreadyStarted
	}

	o.feed.Store(newFeed(p, o.frames))
	o.player = o.ctx.NewPlayer(o)
	o.player.Play()

	o.log.Info("output started", slog.Int("sample_rate", o.rate), slog.Int("buffer_frames", o.frames))
	return nil
}

// Read implements io.Reader for the oto player.
func (o *Oto) Read(p []byte) (int, error) {
	f := o.feed.Load()
	if f == nil {
		clear(p)
		return len(p), nil
	}

	f.fillFloat32LE(p)
	return len(p), nil
}

func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true
	o.feed.Store(nil)

	if o.player == nil {
		return nil
	}

	err := o.player.Close()
	o.player = nil
	o.log.Info("output stopped")

	if err != nil {
		return fmt.Errorf("%w: oto: %w", audio.ErrDevice, err)
	}
	return nil
}
