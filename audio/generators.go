// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// GeneratorRate is the nominal sample rate reported by generated sources.
const GeneratorRate = 44100

// Waveform is the shape produced by a Tone.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSaw
	WaveSquare
	WaveTriangle
)

func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSaw:
		return "saw"
	case WaveSquare:
		return "square"
	case WaveTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// ParseWaveform maps "sine", "saw", "square" or "triangle" to a Waveform.
func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToLower(s) {
	case "sine", "sin":
		return WaveSine, nil
	case "saw", "sawtooth":
		return WaveSaw, nil
	case "square":
		return WaveSquare, nil
	case "triangle", "tri":
		return WaveTriangle, nil
	default:
		return 0, fmt.Errorf("%w: waveform %q", ErrInvalidParameter, s)
	}
}

// Tone is exactly one period of a waveform at GeneratorRate. Play it
// through a looping Emitter to get a continuous tone.
type Tone struct {
	wave      Waveform
	frequency atomicFloat
}

func NewTone(wave Waveform, frequency float64) (*Tone, error) {
	t := &Tone{wave: wave}
	if err := t.SetFrequency(frequency); err != nil {
		return nil, err
	}
	return t, nil
}

func NewSine(frequency float64) (*Tone, error)     { return NewTone(WaveSine, frequency) }
func NewSaw(frequency float64) (*Tone, error)      { return NewTone(WaveSaw, frequency) }
func NewSquare(frequency float64) (*Tone, error)   { return NewTone(WaveSquare, frequency) }
func NewTriangle(frequency float64) (*Tone, error) { return NewTone(WaveTriangle, frequency) }

func (t *Tone) Waveform() Waveform { return t.wave }
func (t *Tone) Frequency() float64 { return t.frequency.Load() }

// SetFrequency accepts frequencies in (0, GeneratorRate] so that a period
// is at least one frame long.
func (t *Tone) SetFrequency(v float64) error {
	if !(v > 0) || v > GeneratorRate {
		return fmt.Errorf("%w: frequency %v outside (0, %d]", ErrInvalidParameter, v, GeneratorRate)
	}
	t.frequency.Store(v)
	return nil
}

func (t *Tone) Channels() int   { return 1 }
func (t *Tone) SampleRate() int { return GeneratorRate }
func (t *Tone) Len() int        { return int(GeneratorRate / t.frequency.Load()) }

func (t *Tone) Frame(i int) Frame {
	n := t.Len()
	if i < 0 || i >= n {
		return Frame{}
	}

	var v float64
	switch t.wave {
	case WaveSine:
		v = math.Sin(2 * math.Pi * float64(i) / float64(n))
	case WaveSaw:
		if n > 1 {
			v = (float64(i)/float64(n-1) - 0.5) * 2
		}
	case WaveSquare:
		v = 1
		if i >= n/2 {
			v = -1
		}
	case WaveTriangle:
		v = triangle(i, n)
	}

	return Frame{v, v}
}

// triangle starts at zero on the rising edge, peaks a quarter period in and
// bottoms out at three quarters.
func triangle(i, n int) float64 {
	half := n / 2
	if half == 0 {
		return 0
	}

	i = (i + n/4) % n
	if i < half {
		return -1 + 2*float64(i%half)/float64(half)
	}
	return 1 - 2*float64(i%half)/float64(half)
}

func (t *Tone) SetParameter(name string, value float64) error {
	if name == "frequency" {
		return t.SetFrequency(value)
	}
	return unknownParameter(t.wave.String(), name)
}

// Noise is unbounded white noise in [-1, 1). Each index hashes to a fixed
// value so repeated reads of one index agree.
type Noise struct {
	seed atomic.Uint64
}

func NewNoise(seed uint64) *Noise {
	n := &Noise{}
	n.seed.Store(seed)
	return n
}

func (n *Noise) Channels() int   { return 1 }
func (n *Noise) SampleRate() int { return GeneratorRate }
func (n *Noise) Len() int        { return 0 }

func (n *Noise) Frame(i int) Frame {
	h := splitmix64(n.seed.Load() + uint64(i))
	v := float64(h>>11)/(1<<53)*2 - 1
	return Frame{v, v}
}

func (n *Noise) SetParameter(name string, value float64) error {
	if name == "seed" {
		n.seed.Store(uint64(value))
		return nil
	}
	return unknownParameter("noise", name)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
