// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer PCM decoders (WAV, AIFF) to the
// float32 stream interface used by audio.Load.
package pcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader is the part of the go-audio wav and aiff decoders a Stream needs.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Stream converts integer PCM into float32 samples in [-1, 1).
type Stream struct {
	dec        Reader
	sampleRate int
	channels   int
	offset     int
	full       float32
	intBuf     *goaudio.IntBuffer
}

// NewStream wraps dec. unsigned8 selects the WAV convention of 8-bit
// samples offset by 128; AIFF stores 8-bit samples signed.
func NewStream(dec Reader, bitDepth int, unsigned8 bool) (*Stream, error) {
	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid pcm format %+v", format)
	}

	s := &Stream{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
	}

	switch bitDepth {
	case 8:
		s.full = 128
		if unsigned8 {
			s.offset = 128
		}
	case 16:
		s.full = 32768
	case 24:
		s.full = 8388608
	case 32:
		s.full = 2147483648
	default:
		return nil, fmt.Errorf("unsupported pcm bit depth %d", bitDepth)
	}

	return s, nil
}

func (s *Stream) SampleRate() int { return s.sampleRate }
func (s *Stream) Channels() int   { return s.channels }
func (s *Stream) Close() error    { return nil }
func (s *Stream) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Stream) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]-s.offset) / s.full
	}

	// go-audio reports the end of data as a short read without error
	if err == nil && n < len(dst) {
		return n, io.EOF
	}
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}
	return n, err
}
