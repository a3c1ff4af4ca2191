// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Downmixer folds a multichannel stream into stereo: even-numbered channels
// are averaged into the left output, odd-numbered ones into the right.
// Streams with one or two channels pass through unchanged.
type Downmixer struct {
	src Stream
	tmp []float32
}

func NewDownmixer(src Stream) *Downmixer {
	return &Downmixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (d *Downmixer) SampleRate() int { return d.src.SampleRate() }
func (d *Downmixer) BufSize() int    { return d.src.BufSize() }

func (d *Downmixer) Channels() int {
	if d.src.Channels() <= 2 {
		return d.src.Channels()
	}
	return 2
}

func (d *Downmixer) Close() error {
	if err := d.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples fills dst with interleaved stereo samples.
func (d *Downmixer) ReadSamples(dst []float32) (int, error) {
	channels := d.src.Channels()
	if channels <= 2 {
		return d.src.ReadSamples(dst)
	}
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / 2
	need := frames * channels
	if cap(d.tmp) < need {
		d.tmp = make([]float32, max(need, 8192))
	}
	d.tmp = d.tmp[:need]

	n, err := d.src.ReadSamples(d.tmp)
	if n == 0 {
		return 0, err
	}

	left := float32(1) / float32((channels+1)/2)
	right := float32(1) / float32(channels/2)

	got := n / channels
	for f := range got {
		in := d.tmp[f*channels : (f+1)*channels]

		var l, r float32
		for c, v := range in {
			if c%2 == 0 {
				l += v
			} else {
				r += v
			}
		}
		dst[2*f] = l * left
		dst[2*f+1] = r * right
	}

	return got * 2, err
}
