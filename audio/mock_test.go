// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// funcSource is a test Source computing each frame from its index.
type funcSource struct {
	rate     int
	channels int
	n        int
	frame    func(i int) Frame
}

func (s *funcSource) Channels() int   { return s.channels }
func (s *funcSource) SampleRate() int { return s.rate }
func (s *funcSource) Len() int        { return s.n }

func (s *funcSource) Frame(i int) Frame {
	if i < 0 || (s.n != 0 && i >= s.n) {
		return Frame{}
	}
	return s.frame(i)
}

// newConstantSource yields f for n frames (forever when n == 0).
func newConstantSource(rate, n int, f Frame) *funcSource {
	return &funcSource{rate: rate, channels: 2, n: n, frame: func(int) Frame { return f }}
}

func newSilentSource(rate, n int) *funcSource {
	return newConstantSource(rate, n, Frame{})
}

// newRampSource yields Frame{i, -i}, which makes index mapping visible.
func newRampSource(rate, n int) *funcSource {
	return &funcSource{rate: rate, channels: 2, n: n, frame: func(i int) Frame {
		return Frame{float64(i), -float64(i)}
	}}
}

// newImpulseSource is 1 at index at and silent elsewhere.
func newImpulseSource(rate, n, at int) *funcSource {
	return &funcSource{rate: rate, channels: 1, n: n, frame: func(i int) Frame {
		if i == at {
			return Frame{1, 1}
		}
		return Frame{}
	}}
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func framesClose(a, b Frame, tol float64) bool {
	return approxEqual(a.L, b.L, tol) && approxEqual(a.R, b.R, tol)
}
