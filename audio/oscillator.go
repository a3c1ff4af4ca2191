// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// Oscillator amplitude-modulates the wrapped source with a sine of the
// given frequency (tremolo). A zero frequency silences the output.
type Oscillator struct {
	effect
	frequency atomicFloat
}

func NewOscillator(src Source, frequency float64) (*Oscillator, error) {
	o := &Oscillator{}
	if err := o.init(src); err != nil {
		return nil, fmt.Errorf("oscillator: %w", err)
	}
	o.SetFrequency(frequency)
	return o, nil
}

func (o *Oscillator) Frequency() float64 { return o.frequency.Load() }

// SetFrequency stores v in Hz. Negative and NaN values become 0.
func (o *Oscillator) SetFrequency(v float64) {
	if !(v > 0) {
		v = 0
	}
	o.frequency.Store(v)
}

func (o *Oscillator) Frame(i int) Frame {
	src := o.src.Load()
	freq := o.frequency.Load()
	rate := src.SampleRate()
	if freq == 0 || rate <= 0 {
		return Frame{}
	}

	period := float64(rate) / freq
	return frameIn(src, i).Scale(math.Sin(2 * math.Pi * float64(i) / period))
}

func (o *Oscillator) SetParameter(name string, value float64) error {
	if name == "frequency" {
		o.SetFrequency(value)
		return nil
	}
	return unknownParameter("oscillator", name)
}
