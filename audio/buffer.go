// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// maxEmptyReads bounds how many consecutive (0, nil) reads Load tolerates
// from a stream before giving up.
const maxEmptyReads = 64

// Buffer is a bounded in-memory Source, the usual result of decoding a file.
type Buffer struct {
	rate     int
	channels int
	frames   []Frame
}

// NewBuffer wraps frames. The slice is not copied.
func NewBuffer(rate, channels int, frames []Frame) *Buffer {
	return &Buffer{rate: rate, channels: channels, frames: frames}
}

func (b *Buffer) Channels() int   { return b.channels }
func (b *Buffer) SampleRate() int { return b.rate }
func (b *Buffer) Len() int        { return len(b.frames) }

func (b *Buffer) Frame(i int) Frame {
	if i < 0 || i >= len(b.frames) {
		return Frame{}
	}
	return b.frames[i]
}

// Frames exposes the backing slice; callers must not modify it while the
// buffer is being played.
func (b *Buffer) Frames() []Frame { return b.frames }

// Load drains s into a Buffer. Mono streams keep Channels() == 1 with both
// frame channels equal; streams with more than two channels are folded to
// stereo. Load does not close s.
func Load(s Stream) (*Buffer, error) {
	if s.Channels() <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, s.Channels())
	}

	var st Stream = s
	if s.Channels() > 2 {
		st = NewDownmixer(s)
	}
	channels := st.Channels()

	size := st.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	buf := make([]float32, size)
	pending := make([]float32, 0, size+channels)
	var frames []Frame
	empty := 0

	for {
		n, err := st.ReadSamples(buf)
		if n > 0 {
			empty = 0
			pending = append(pending, buf[:n]...)

			whole := len(pending) - len(pending)%channels
			for j := 0; j < whole; j += channels {
				frames = append(frames, FromFloat32(pending[j:j+channels], channels))
			}
			pending = pending[:copy(pending, pending[whole:])]
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			empty++
			if empty > maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		}
	}

	return NewBuffer(st.SampleRate(), channels, frames), nil
}

// LoadAt is Load with the stream first converted to rate by a Resampler.
// Pre-converting once at load time replaces per-read index mapping with
// cubic interpolation.
func LoadAt(s Stream, rate int) (*Buffer, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidParameter, rate)
	}
	if s.SampleRate() == rate {
		return Load(s)
	}
	return Load(NewResampler(s, rate))
}

// Record captures frames from c into a stereo Buffer at rate.
func Record(c Capturer, frames, rate int) *Buffer {
	out := make([]Frame, frames)
	for i := range out {
		out[i] = c.CaptureFrame()
	}
	return NewBuffer(rate, 2, out)
}

// Stream reads b back sequentially as interleaved samples: one channel for
// mono buffers, two otherwise.
func (b *Buffer) Stream() Stream { return &bufferStream{b: b} }

// Resample converts b to rate through a Resampler. A buffer already at
// rate is returned as is.
func Resample(b *Buffer, rate int) (*Buffer, error) {
	if b.rate == rate {
		return b, nil
	}
	return LoadAt(b.Stream(), rate)
}

type bufferStream struct {
	b   *Buffer
	pos int
}

func (s *bufferStream) SampleRate() int { return s.b.rate }
func (s *bufferStream) BufSize() int    { return 4096 }
func (s *bufferStream) Close() error    { return nil }

func (s *bufferStream) Channels() int {
	if s.b.channels == 1 {
		return 1
	}
	return 2
}

func (s *bufferStream) ReadSamples(dst []float32) (int, error) {
	channels := s.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.pos >= len(s.b.frames) {
		return 0, io.EOF
	}

	frames := s.b.frames[s.pos:min(s.pos+len(dst)/channels, len(s.b.frames))]
	for i, f := range frames {
		if channels == 1 {
			dst[i] = float32(f.L)
			continue
		}
		dst[2*i] = float32(f.L)
		dst[2*i+1] = float32(f.R)
	}
	s.pos += len(frames)

	return len(frames) * channels, nil
}
