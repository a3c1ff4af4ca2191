// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Emitter is a playback cursor over one Source. Its position counts frames
// at the emitter's own sample rate, independent of the source's rate.
//
// Every field is atomic: control goroutines may change volume, seek or
// pause while a Context pulls frames from the emitter.
type Emitter struct {
	src     sourceSlot
	rate    atomic.Int64
	pos     atomic.Int64
	loop    atomic.Bool
	paused  atomic.Bool
	volume  atomicFloat
	balance atomicFloat
}

// NewEmitter returns a looping, unpaused emitter at full volume and
// centered balance.
func NewEmitter(sampleRate int) *Emitter {
	e := &Emitter{}
	e.rate.Store(int64(sampleRate))
	e.loop.Store(true)
	e.volume.Store(1)
	return e
}

func (e *Emitter) Source() Source { return e.src.Load() }

// SetSource replaces the source. The position is kept as is. Passing nil
// removes the source; an attached emitter then plays silence.
func (e *Emitter) SetSource(src Source) { e.src.Store(src) }

func (e *Emitter) SampleRate() int        { return int(e.rate.Load()) }
func (e *Emitter) SetSampleRate(rate int) { e.rate.Store(int64(rate)) }

func (e *Emitter) Loop() bool        { return e.loop.Load() }
func (e *Emitter) SetLoop(loop bool) { e.loop.Store(loop) }

func (e *Emitter) Paused() bool          { return e.paused.Load() }
func (e *Emitter) SetPaused(paused bool) { e.paused.Store(paused) }

// Volume is a plain gain factor; values outside [0, 1] are not rejected.
func (e *Emitter) Volume() float64     { return e.volume.Load() }
func (e *Emitter) SetVolume(v float64) { e.volume.Store(v) }

// Balance is nominally in [-1, 1]; see Frame.Balance. Not validated.
func (e *Emitter) Balance() float64     { return e.balance.Load() }
func (e *Emitter) SetBalance(v float64) { e.balance.Store(v) }

func (e *Emitter) Position() int { return int(e.pos.Load()) }

// Seek moves the cursor to pos, in frames at the emitter's rate.
func (e *Emitter) Seek(pos int) error {
	if pos < 0 {
		return fmt.Errorf("%w: position %d", ErrInvalidParameter, pos)
	}
	e.pos.Store(int64(pos))
	return nil
}

// Len is the source length converted to the emitter's rate, 0 when there
// is no source or the source is unbounded.
func (e *Emitter) Len() int {
	src := e.src.Load()
	if src == nil {
		return 0
	}
	return e.lenOf(src)
}

func (e *Emitter) lenOf(src Source) int {
	n, rate, srcRate := src.Len(), e.SampleRate(), src.SampleRate()
	if rate <= 0 || srcRate <= 0 || rate == srcRate {
		return n
	}
	if n > math.MaxInt/rate {
		return boundedLen(float64(n) / float64(srcRate) * float64(rate))
	}
	return n * rate / srcRate
}

// IsDone reports whether a non-looping emitter has played its source to
// the end.
func (e *Emitter) IsDone() (bool, error) {
	src := e.src.Load()
	if src == nil {
		return false, fmt.Errorf("emitter done check: %w", ErrNoSource)
	}
	return e.done(src, e.pos.Load()), nil
}

func (e *Emitter) done(src Source, pos int64) bool {
	return !e.loop.Load() && src.Len() != 0 && pos >= int64(e.lenOf(src))
}

// FrameAt returns the raw source frame at position pos of the emitter's
// rate domain, without volume or balance.
func (e *Emitter) FrameAt(pos int) (Frame, error) {
	src := e.src.Load()
	if src == nil {
		return Frame{}, fmt.Errorf("emitter frame: %w", ErrNoSource)
	}
	return FrameAt(src, pos, e.SampleRate()), nil
}

// NextFrame returns the frame at the cursor with balance and volume
// applied and advances the cursor unless the emitter is paused or done.
func (e *Emitter) NextFrame() (Frame, error) {
	src := e.src.Load()
	if src == nil {
		return Frame{}, fmt.Errorf("emitter next frame: %w", ErrNoSource)
	}
	return e.advance(src), nil
}

// next is the mixing-path variant of NextFrame: an emitter whose source
// was removed after attach yields silence instead of an error.
func (e *Emitter) next() Frame {
	src := e.src.Load()
	if src == nil {
		return Frame{}
	}
	return e.advance(src)
}

func (e *Emitter) advance(src Source) Frame {
	pos := e.pos.Load()
	if e.done(src, pos) {
		return Frame{}
	}

	out := FrameAt(src, int(pos), e.SampleRate()).Balance(e.balance.Load()).Scale(e.volume.Load())
	if e.paused.Load() {
		return out
	}

	next := pos + 1
	if src.Len() != 0 && next >= int64(e.lenOf(src)) && e.loop.Load() {
		next = 0
	}

	// A failed swap means a Seek landed meanwhile; the seek wins.
	e.pos.CompareAndSwap(pos, next)

	return out
}

// render fills l and r with the next len(l) frames of the emitter.
func (e *Emitter) render(l, r []float64) {
	for i := range l {
		f := e.next()
		l[i], r[i] = f.L, f.R
	}
}
