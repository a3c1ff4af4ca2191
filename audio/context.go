// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Context mixes the emitters attached to it into one stream at a fixed
// sample rate. One mutex covers the emitter list and every Pull, so several
// sinks may pull from the same Context.
type Context struct {
	rate int
	log  *slog.Logger

	mu       sync.Mutex
	emitters []*Emitter

	// planar scratch, grown only when a larger Pull than before arrives
	accL, accR []float64
	voxL, voxR []float64
}

type ContextOption func(*Context)

// WithLogger logs attach, detach and prune calls. Pull never logs.
func WithLogger(l *slog.Logger) ContextOption {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithBufferFrames preallocates scratch space for pulls of up to n frames.
func WithBufferFrames(n int) ContextOption {
	return func(c *Context) { c.grow(n) }
}

func NewContext(sampleRate int, opts ...ContextOption) *Context {
	c := &Context{
		rate: sampleRate,
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) SampleRate() int { return c.rate }

// Attach adds e to the mix starting with the next Pull. The emitter must
// have a source and must not already be attached to c.
func (c *Context) Attach(e *Emitter) error {
	if e == nil {
		return fmt.Errorf("attach: nil emitter: %w", ErrNoSource)
	}
	src := e.Source()
	if src == nil {
		return fmt.Errorf("attach: %w", ErrNoSource)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if slices.Contains(c.emitters, e) {
		return fmt.Errorf("attach: %w", ErrAlreadyAttached)
	}
	c.emitters = append(c.emitters, e)

	c.log.Debug("emitter attached",
		slog.Int("emitters", len(c.emitters)),
		slog.Int("source_rate", src.SampleRate()),
		slog.Int("frames", e.lenOf(src)))

	return nil
}

// Detach removes the first occurrence of e and reports whether it was
// attached.
func (c *Context) Detach(e *Emitter) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.Index(c.emitters, e)
	if i < 0 {
		return false
	}
	c.emitters = slices.Delete(c.emitters, i, i+1)

	c.log.Debug("emitter detached", slog.Int("emitters", len(c.emitters)))
	return true
}

// Play wraps src in an emitter at the context rate and attaches it.
func (c *Context) Play(src Source) (*Emitter, error) {
	e := NewEmitter(c.rate)
	e.SetSource(src)

	if err := c.Attach(e); err != nil {
		return nil, fmt.Errorf("play: %w", err)
	}
	return e, nil
}

// Emitters returns a snapshot of the attached emitters in attach order.
func (c *Context) Emitters() []*Emitter {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.emitters)
}

func (c *Context) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.emitters)
}

// Prune detaches every emitter that has finished playing and returns how
// many were removed. Emitters whose source was removed count as finished.
func (c *Context) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.emitters)
	c.emitters = slices.DeleteFunc(c.emitters, func(e *Emitter) bool {
		done, err := e.IsDone()
		return done || err != nil
	})

	removed := before - len(c.emitters)
	if removed > 0 {
		c.log.Debug("finished emitters pruned",
			slog.Int("removed", removed),
			slog.Int("emitters", len(c.emitters)))
	}
	return removed
}

func (c *Context) grow(n int) {
	if n <= len(c.accL) {
		return
	}
	c.accL = make([]float64, n)
	c.accR = make([]float64, n)
	c.voxL = make([]float64, n)
	c.voxR = make([]float64, n)
}

// mix sums the next n frames of every emitter into the accumulators.
// Emitters are independent, so rendering each one for the whole block and
// then adding gives the same totals as summing tick by tick.
func (c *Context) mix(n int) ([]float64, []float64) {
	c.grow(n)

	accL, accR := c.accL[:n], c.accR[:n]
	clear(accL)
	clear(accR)

	voxL, voxR := c.voxL[:n], c.voxR[:n]
	for _, e := range c.emitters {
		e.render(voxL, voxR)
		vecmath.AddBlockInPlace(accL, voxL)
		vecmath.AddBlockInPlace(accR, voxR)
	}

	return accL, accR
}

// Pull fills dst with the next len(dst) mixed and clamped frames. Every
// attached emitter advances by len(dst) frames. It performs no I/O and,
// once the scratch buffers are large enough, no allocation.
func (c *Context) Pull(dst []Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, r := c.mix(len(dst))
	for i := range dst {
		dst[i] = Frame{l[i], r[i]}.Clamp()
	}
}

// PullInterleaved is Pull for interleaved stereo float32 device buffers.
// A trailing odd sample is zeroed.
func (c *Context) PullInterleaved(dst []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(dst) / 2
	l, r := c.mix(n)
	for i := range n {
		f := Frame{l[i], r[i]}.Clamp()
		dst[2*i] = float32(f.L)
		dst[2*i+1] = float32(f.R)
	}
	if len(dst)%2 != 0 {
		dst[len(dst)-1] = 0
	}
}

// PullStereo is Pull for [][2]float64 buffers as used by beep streamers.
func (c *Context) PullStereo(dst [][2]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, r := c.mix(len(dst))
	for i := range dst {
		f := Frame{l[i], r[i]}.Clamp()
		dst[i] = [2]float64{f.L, f.R}
	}
}
