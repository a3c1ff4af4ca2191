// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/utils"
)

// lowpassAlpha is the coefficient of the one-pole filter applied to input
// frames when downsampling.
const lowpassAlpha = 0.5

// Resampler converts a Stream to another sample rate using Catmull-Rom
// interpolation over a four-frame window. The read position is tracked as
// an exact fraction of the two rates, so a stream of N frames always yields
// ceil(N * dstRate / srcRate) frames.
type Resampler struct {
	src      Stream
	channels int
	srcRate  int
	dstRate  int

	// win[1] is the source frame at floor(pos), win[0] the one before it,
	// win[2] and win[3] the two after. Missing neighbours repeat the edge.
	win   [4][]float32
	valid [4]bool
	acc   int // pos fraction in units of 1/dstRate
	ready bool

	in    []float32
	inPos int
	inLen int
	eof   bool

	lowpass bool
	state   []float32
	warm    bool
}

func NewResampler(src Stream, dstRate int) *Resampler {
	channels := src.Channels()

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	if channels > 0 {
		size -= size % channels
	}

	r := &Resampler{
		src:      src,
		channels: channels,
		srcRate:  src.SampleRate(),
		dstRate:  dstRate,
		in:       make([]float32, size),
		lowpass:  src.SampleRate() > dstRate,
		state:    make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// next copies the following source frame into dst.
func (r *Resampler) next(dst []float32) (bool, error) {
	empty := 0
	for r.inPos+r.channels > r.inLen {
		if r.eof {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels

		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}

		if n == 0 && !r.eof {
			empty++
			if empty > maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowpass {
		if !r.warm {
			copy(r.state, dst)
			r.warm = true
		}
		for c := range dst {
			dst[c] = lowpassAlpha*dst[c] + (1-lowpassAlpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return true, nil
}

// fill loads window slot i, repeating slot i-1 when the source has ended.
func (r *Resampler) fill(i int) error {
	ok, err := r.next(r.win[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.win[i], r.win[i-1])
	}
	r.valid[i] = ok
	return nil
}

func (r *Resampler) prime() error {
	ok, err := r.next(r.win[1])
	if err != nil {
		return err
	}
	r.ready = true
	if !ok {
		return nil
	}

	copy(r.win[0], r.win[1])
	r.valid[0], r.valid[1] = true, true

	if err := r.fill(2); err != nil {
		return err
	}
	return r.fill(3)
}

func (r *Resampler) shift() error {
	oldest := r.win[0]
	r.win[0], r.win[1], r.win[2], r.win[3] = r.win[1], r.win[2], r.win[3], oldest
	r.valid[0], r.valid[1], r.valid[2] = r.valid[1], r.valid[2], r.valid[3]

	return r.fill(3)
}

// ReadSamples produces interleaved samples at the destination rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels <= 0 || len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.dstRate <= 0 || r.srcRate <= 0 {
		return 0, fmt.Errorf("%w: resample %d Hz to %d Hz", ErrInvalidParameter, r.srcRate, r.dstRate)
	}

	if !r.ready {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		if !r.valid[1] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, nil
		}

		alpha := float32(float64(r.acc) / float64(r.dstRate))
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.Cubic(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], alpha)
		}
		written++

		r.acc += r.srcRate
		for r.acc >= r.dstRate {
			r.acc -= r.dstRate
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}
	}

	return written * r.channels, nil
}
