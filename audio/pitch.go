// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/audmix/utils"
)

// PitchShift changes pitch and duration together by reading the wrapped
// source factor times faster, linearly interpolating between frames.
type PitchShift struct {
	effect
	factor atomicFloat
}

func NewPitchShift(src Source, factor float64) (*PitchShift, error) {
	p := &PitchShift{}
	if err := p.init(src); err != nil {
		return nil, fmt.Errorf("pitch shift: %w", err)
	}
	if err := p.SetFactor(factor); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PitchShift) Factor() float64 { return p.factor.Load() }

// SetFactor rejects factors that are not strictly positive.
func (p *PitchShift) SetFactor(v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return fmt.Errorf("%w: pitch factor %v must be > 0", ErrInvalidParameter, v)
	}
	p.factor.Store(v)
	return nil
}

func (p *PitchShift) Len() int {
	return boundedLen(float64(p.src.Load().Len()) / p.factor.Load())
}

func (p *PitchShift) Frame(i int) Frame {
	src := p.src.Load()
	f := float64(i) * p.factor.Load()
	lo := math.Floor(f)

	s1 := frameIn(src, int(lo))
	s2 := frameIn(src, int(math.Ceil(f)))

	t := f - lo
	return Frame{utils.Lerp(s1.L, s2.L, t), utils.Lerp(s1.R, s2.R, t)}
}

func (p *PitchShift) SetParameter(name string, value float64) error {
	if name == "factor" {
		return p.SetFactor(value)
	}
	return unknownParameter("pitch shift", name)
}
