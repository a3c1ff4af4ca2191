// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Echo adds count delayed copies of the wrapped source. The first copy is
// scaled by decay and every following one by the square of the previous
// scale (decay, decay², decay⁴, ...).
type Echo struct {
	effect
	delay atomicFloat
	decay atomicFloat
	count atomic.Int64
}

func NewEcho(src Source, delaySeconds, decay float64, count int) (*Echo, error) {
	e := &Echo{}
	if err := e.init(src); err != nil {
		return nil, fmt.Errorf("echo: %w", err)
	}
	if err := e.SetDelay(delaySeconds); err != nil {
		return nil, err
	}
	if err := e.SetCount(count); err != nil {
		return nil, err
	}
	e.SetDecay(decay)
	return e, nil
}

func (e *Echo) Delay() float64 { return e.delay.Load() }
func (e *Echo) Decay() float64 { return e.decay.Load() }
func (e *Echo) Count() int     { return int(e.count.Load()) }

// SetDelay sets the gap between repeats in seconds.
func (e *Echo) SetDelay(seconds float64) error {
	if !(seconds >= 0) || math.IsInf(seconds, 1) {
		return fmt.Errorf("%w: echo delay %v must be >= 0", ErrInvalidParameter, seconds)
	}
	e.delay.Store(seconds)
	return nil
}

// SetDecay is not validated; values above 1 make every repeat louder.
func (e *Echo) SetDecay(v float64) { e.decay.Store(v) }

func (e *Echo) SetCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: echo count %d must be >= 0", ErrInvalidParameter, n)
	}
	e.count.Store(int64(n))
	return nil
}

func (e *Echo) delayFrames(src Source) int {
	return int(float64(src.SampleRate()) * e.delay.Load())
}

// Len extends a bounded source by the time the last repeat needs.
func (e *Echo) Len() int {
	src := e.src.Load()
	n := src.Len()
	if n == 0 {
		return 0
	}
	return boundedLen(float64(n) + math.Floor(float64(src.SampleRate())*e.delay.Load()*float64(e.count.Load())))
}

func (e *Echo) Frame(i int) Frame {
	src := e.src.Load()
	out := frameIn(src, i)

	step := e.delayFrames(src)
	decay := e.decay.Load()
	count := int(e.count.Load())

	for k := 0; k < count && i > step; k++ {
		i -= step
		out = out.Add(frameIn(src, i).Scale(decay))
		decay *= decay
	}

	return out
}

func (e *Echo) SetParameter(name string, value float64) error {
	switch name {
	case "delay":
		return e.SetDelay(value)
	case "decay":
		e.SetDecay(value)
		return nil
	case "count":
		return e.SetCount(int(value))
	default:
		return unknownParameter("echo", name)
	}
}
