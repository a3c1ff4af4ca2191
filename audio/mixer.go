// SPDX-License-Identifier: EPL-2.0

package audio

import "sync/atomic"

// MixMode selects how a Mixer combines its two inputs.
type MixMode int32

const (
	MixAdd MixMode = iota
	MixSubtract
	MixMultiply
)

func (m MixMode) String() string {
	switch m {
	case MixAdd:
		return "add"
	case MixSubtract:
		return "subtract"
	case MixMultiply:
		return "multiply"
	default:
		return "unknown"
	}
}

// Mixer combines two sources frame by frame. It is unbounded whatever its
// inputs are, so it can serve as a live bus. Both inputs are read at the
// higher of their two sample rates.
type Mixer struct {
	mode atomic.Int32
	a    sourceSlot
	b    sourceSlot
}

func NewMixer(mode MixMode) *Mixer {
	m := &Mixer{}
	m.mode.Store(int32(mode))
	return m
}

func (m *Mixer) Mode() MixMode        { return MixMode(m.mode.Load()) }
func (m *Mixer) SetMode(mode MixMode) { m.mode.Store(int32(mode)) }

func (m *Mixer) Source1() Source       { return m.a.Load() }
func (m *Mixer) SetSource1(src Source) { m.a.Store(src) }
func (m *Mixer) Source2() Source       { return m.b.Load() }
func (m *Mixer) SetSource2(src Source) { m.b.Store(src) }

func (m *Mixer) Channels() int {
	return pick(m.a.Load(), m.b.Load(), Source.Channels)
}

func (m *Mixer) SampleRate() int {
	return pick(m.a.Load(), m.b.Load(), Source.SampleRate)
}

func (m *Mixer) Len() int { return 0 }

// Frame reads source 1 (silence when unset) and combines it with source 2.
// With source 2 unset the source 1 frame is returned as is.
func (m *Mixer) Frame(i int) Frame {
	a, b := m.a.Load(), m.b.Load()
	rate := pick(a, b, Source.SampleRate)

	var out Frame
	if a != nil {
		out = FrameAt(a, i, rate)
	}
	if b == nil {
		return out
	}

	other := FrameAt(b, i, rate)
	switch m.Mode() {
	case MixSubtract:
		return out.Sub(other)
	case MixMultiply:
		return out.Mul(other)
	default:
		return out.Add(other)
	}
}

// pick returns the larger value of get over the sources that are set.
func pick(a, b Source, get func(Source) int) int {
	v := 0
	if a != nil {
		v = get(a)
	}
	if b != nil {
		v = max(v, get(b))
	}
	return v
}
