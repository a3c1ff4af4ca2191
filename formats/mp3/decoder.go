// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audmix/audio"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// stream turns go-mp3's 16-bit little-endian stereo bytes into float32
// samples. A trailing odd byte is carried over to the next read.
type stream struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	carry      int
}

func (s *stream) SampleRate() int { return s.sampleRate }
func (s *stream) Channels() int   { return 2 }
func (s *stream) Close() error    { return nil }
func (s *stream) BufSize() int    { return cap(s.buf) / 2 } // samples, not bytes

func (s *stream) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		grown := make([]byte, bytesNeeded)
		copy(grown, s.buf[:s.carry])
		s.buf = grown
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := s.dec.Read(s.buf[s.carry:])
	n += s.carry

	samples := n / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768.0
	}

	s.carry = copy(s.buf, s.buf[2*samples:n])

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("%w", err)
	}
	return samples, err
}

// Decoder decodes MPEG-1/2 layer III into an in-memory stereo audio.Source.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	buf, err := audio.Load(newStream(dec))
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}
	return buf, nil
}

func newStream(dec mp3Reader) *stream {
	return &stream{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}
}
