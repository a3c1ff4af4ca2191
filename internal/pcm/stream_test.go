// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// mockReader simulates the go-audio wav and aiff decoders
type mockReader struct {
	sampleRate int
	channels   int
	samples    []int
	offset     int
	err        error
	reads      int
}

func (m *mockReader) Format() *goaudio.Format {
	return &goaudio.Format{
		SampleRate:  m.sampleRate,
		NumChannels: m.channels,
	}
}

// PCMBuffer ends with a short read and a nil error, the way go-audio does.
func (m *mockReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	m.reads++
	if m.err != nil {
		return 0, m.err
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func newTestStream(t *testing.T, m *mockReader, bits int, unsigned8 bool) *Stream {
	t.Helper()

	s, err := NewStream(m, bits, unsigned8)
	if err != nil {
		t.Fatalf("NewStream() error = %v", err)
	}
	return s
}

func TestNewStream_Metadata(t *testing.T) {
	t.Parallel()

	s := newTestStream(t, &mockReader{sampleRate: 44100, channels: 2}, 16, false)

	if s.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", s.SampleRate())
	}
	if s.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", s.Channels())
	}
	if s.BufSize() <= 0 {
		t.Errorf("BufSize() = %d, want positive", s.BufSize())
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func TestNewStream_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    *mockReader
		bits int
	}{
		{"zero channels", &mockReader{sampleRate: 8000}, 16},
		{"zero rate", &mockReader{channels: 1}, 16},
		{"12 bit", &mockReader{sampleRate: 8000, channels: 1}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewStream(tt.m, tt.bits, false); err == nil {
				t.Error("NewStream() error = nil, want error")
			}
		})
	}
}

func TestStream_ReadSamples(t *testing.T) {
	t.Parallel()

	m := &mockReader{sampleRate: 44100, channels: 1, samples: []int{0, 16384, -16384, 32767, -32768}}
	s := newTestStream(t, m, 16, false)

	dst := make([]float32, 5)
	n, err := s.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 5 {
		t.Fatalf("ReadSamples() n = %d, want 5", n)
	}

	expected := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1}
	for i, want := range expected {
		if dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}
}

func TestStream_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	m := &mockReader{sampleRate: 44100, channels: 2, samples: make([]int, 10)}
	s := newTestStream(t, m, 16, false)

	n, err := s.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
	if m.reads != 0 {
		t.Errorf("decoder read %d times for an empty buffer", m.reads)
	}
}

func TestStream_ReadSamples_ShortReadIsEOF(t *testing.T) {
	t.Parallel()

	m := &mockReader{sampleRate: 8000, channels: 1, samples: []int{1, 2, 3, 4, 5}}
	s := newTestStream(t, m, 16, false)

	dst := make([]float32, 2)

	for i, want := range []int{2, 2} {
		n, err := s.ReadSamples(dst)
		if n != want || err != nil {
			t.Fatalf("read %d = (%d, %v), want (%d, nil)", i, n, err, want)
		}
	}

	n, err := s.ReadSamples(dst)
	if n != 1 || err != io.EOF {
		t.Errorf("third read = (%d, %v), want (1, io.EOF)", n, err)
	}

	n, err = s.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("read after end = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestStream_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	m := &mockReader{sampleRate: 8000, channels: 1, err: io.ErrUnexpectedEOF}
	s := newTestStream(t, m, 16, false)

	_, err := s.ReadSamples(make([]float32, 4))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestStream_BufferReuse(t *testing.T) {
	t.Parallel()

	m := &mockReader{sampleRate: 8000, channels: 1, samples: make([]int, 1000)}
	s := newTestStream(t, m, 16, false)

	_, _ = s.ReadSamples(make([]float32, 100))
	if s.BufSize() != 100 {
		t.Errorf("BufSize() = %d, want 100", s.BufSize())
	}

	_, _ = s.ReadSamples(make([]float32, 50))
	if s.BufSize() != 100 {
		t.Errorf("BufSize() after smaller read = %d, want 100", s.BufSize())
	}
}

func TestStream_BitDepthNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		bitDepth  int
		unsigned8 bool
		input     int
		expected  float32
	}{
		{"8-bit signed max", 8, false, 127, 127.0 / 128.0},
		{"8-bit signed min", 8, false, -128, -1.0},
		{"8-bit unsigned center", 8, true, 128, 0},
		{"8-bit unsigned min", 8, true, 0, -1.0},
		{"8-bit unsigned max", 8, true, 255, 127.0 / 128.0},
		{"16-bit max", 16, false, 32767, 32767.0 / 32768.0},
		{"16-bit min", 16, false, -32768, -1.0},
		{"24-bit", 24, false, 8388607, 8388607.0 / 8388608.0},
		{"32-bit", 32, false, 2147483647, 2147483647.0 / 2147483648.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &mockReader{sampleRate: 44100, channels: 1, samples: []int{tt.input}}
			s := newTestStream(t, m, tt.bitDepth, tt.unsigned8)

			dst := make([]float32, 1)
			n, _ := s.ReadSamples(dst)
			if n != 1 {
				t.Fatalf("ReadSamples() n = %d, want 1", n)
			}

			tolerance := float32(0.0001)
			if dst[0] < tt.expected-tolerance || dst[0] > tt.expected+tolerance {
				t.Errorf("dst[0] = %f, want ~%f", dst[0], tt.expected)
			}
		})
	}
}

func BenchmarkStream_ReadSamples(b *testing.B) {
	m := &mockReader{sampleRate: 44100, channels: 2, samples: make([]int, 1<<20)}
	s, _ := NewStream(m, 16, false)
	dst := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := s.ReadSamples(dst); err != nil {
			m.offset = 0
		}
	}
}
