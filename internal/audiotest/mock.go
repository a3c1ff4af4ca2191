// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds stream fixtures shared by the decoder, loader and
// resampler tests. It does not import package audio so that audio's own
// internal tests can use it.
package audiotest

import (
	"io"
	"math"
)

// MockStream generates interleaved samples from a waveform function. It
// satisfies audio.Stream.
type MockStream struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	waveform    func(frame int, channel int) float32

	// MaxFrames caps how many frames a single ReadSamples returns, to
	// exercise callers that must cope with short reads. 0 means no cap.
	MaxFrames int
	// Err, when set, is returned once Fail frames have been read.
	Err  error
	Fail int

	closed bool
}

// NewMockStream creates a stream of totalFrames frames.
func NewMockStream(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockStream {
	return &MockStream{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

func NewSilentStream(sampleRate, channels, totalFrames int) *MockStream {
	return NewMockStream(sampleRate, channels, totalFrames, func(int, int) float32 { return 0 })
}

func NewConstantStream(sampleRate, channels, totalFrames int, value float32) *MockStream {
	return NewMockStream(sampleRate, channels, totalFrames, func(int, int) float32 { return value })
}

func NewSineStream(sampleRate, channels, totalFrames int, frequency float64) *MockStream {
	return NewMockStream(sampleRate, channels, totalFrames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewRampStream yields frame/totalFrames on every channel plus channel/10,
// so both the position and the channel of a sample can be recovered.
func NewRampStream(sampleRate, channels, totalFrames int) *MockStream {
	return NewMockStream(sampleRate, channels, totalFrames, func(frame int, channel int) float32 {
		return float32(frame)/float32(totalFrames) + float32(channel)/10
	})
}

func (m *MockStream) SampleRate() int { return m.sampleRate }
func (m *MockStream) Channels() int   { return m.channels }
func (m *MockStream) BufSize() int    { return 4096 }

func (m *MockStream) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockStream) Closed() bool { return m.closed }

// Reset rewinds the stream to its first frame.
func (m *MockStream) Reset() { m.generated = 0 }

func (m *MockStream) ReadSamples(dst []float32) (int, error) {
	if m.Err != nil && m.generated >= m.Fail {
		return 0, m.Err
	}
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.generated)
	if m.MaxFrames > 0 {
		frames = min(frames, m.MaxFrames)
	}
	if m.Err != nil {
		frames = min(frames, m.Fail-m.generated)
	}

	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalFrames {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}
