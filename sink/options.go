// SPDX-License-Identifier: EPL-2.0

package sink

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ik5/audmix/audio"
)

const (
	DefaultSampleRate   = 44100
	DefaultBufferFrames = 1024
)

// Options configure every driver. Zero values pick the defaults.
type Options struct {
	SampleRate   int
	BufferFrames int
	Logger       *slog.Logger

	// Output receives the raw frames of the null driver. Ignored by the
	// device drivers.
	Output io.Writer
}

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = DefaultSampleRate
	}
	if o.BufferFrames <= 0 {
		o.BufferFrames = DefaultBufferFrames
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Drivers lists the names Open accepts.
func Drivers() []string { return []string{"oto", "speaker", "null"} }

// Open creates the sink registered under name. An empty name is "null".
func Open(name string, opts Options) (audio.Sink, error) {
	opts = opts.withDefaults()

	switch strings.ToLower(name) {
	case "oto":
		s, err := NewOto(opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "speaker", "beep":
		s, err := NewSpeaker(opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "null", "":
		return NewNull(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
}
