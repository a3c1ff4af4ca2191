// SPDX-License-Identifier: EPL-2.0

package audio

// Frame is one stereo sample. Channel values are nominally in [-1, 1] but
// nothing enforces that until Clamp is called.
type Frame struct {
	L float64
	R float64
}

func (f Frame) Add(o Frame) Frame { return Frame{f.L + o.L, f.R + o.R} }
func (f Frame) Sub(o Frame) Frame { return Frame{f.L - o.L, f.R - o.R} }
func (f Frame) Mul(o Frame) Frame { return Frame{f.L * o.L, f.R * o.R} }
func (f Frame) Div(o Frame) Frame { return Frame{f.L / o.L, f.R / o.R} }

// Scale multiplies both channels by s.
func (f Frame) Scale(s float64) Frame { return Frame{f.L * s, f.R * s} }

// DivScalar divides both channels by s.
func (f Frame) DivScalar(s float64) Frame { return Frame{f.L / s, f.R / s} }

// Clamp saturates both channels to [-1, 1].
func (f Frame) Clamp() Frame {
	return Frame{clamp1(f.L), clamp1(f.R)}
}

// Balance shifts energy between channels. For b < 0 a |b| share of the
// right channel moves into the left one, for b > 0 a b share of the left
// channel moves into the right one. Balance(0) returns f unchanged.
func (f Frame) Balance(b float64) Frame {
	if b < 0 {
		moved := f.R * -b
		return Frame{f.L + moved, f.R - moved}
	}

	moved := f.L * b
	return Frame{f.L - moved, f.R + moved}
}

// FromInt8 builds a Frame from one interleaved signed 8-bit PCM frame,
// scaled by 127. A mono frame is copied into both channels; channels beyond
// the second are ignored.
func FromInt8(values []int8, channels int) Frame {
	return fromPCM(values, channels, 127)
}

// FromInt16 is FromInt8 for 16-bit PCM, scaled by 32767.
func FromInt16(values []int16, channels int) Frame {
	return fromPCM(values, channels, 32767)
}

func fromPCM[T int8 | int16](values []T, channels int, scale float64) Frame {
	switch {
	case channels <= 0 || len(values) == 0:
		return Frame{}
	case channels == 1 || len(values) == 1:
		v := float64(values[0]) / scale
		return Frame{v, v}
	default:
		return Frame{float64(values[0]) / scale, float64(values[1]) / scale}
	}
}

// FromFloat32 is FromInt16 for normalized float samples.
func FromFloat32(values []float32, channels int) Frame {
	switch {
	case channels <= 0 || len(values) == 0:
		return Frame{}
	case channels == 1 || len(values) == 1:
		v := float64(values[0])
		return Frame{v, v}
	default:
		return Frame{float64(values[0]), float64(values[1])}
	}
}

func clamp1(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}
