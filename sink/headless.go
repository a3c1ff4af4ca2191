// SPDX-License-Identifier: EPL-2.0

//go:build headless

package sink

import (
	"fmt"

	"github.com/ik5/audmix/audio"
)

// Oto is unavailable in headless builds.
type Oto struct{}

var _ audio.Sink = (*Oto)(nil)

func NewOto(Options) (*Oto, error) {
	return nil, fmt.Errorf("%w: oto", ErrDriverUnavailable)
}

func (*Oto) SampleRate() int            { return 0 }
func (*Oto) Start(audio.Puller) error   { return fmt.Errorf("%w: oto", ErrDriverUnavailable) }
func (*Oto) Read(p []byte) (int, error) { return len(p), nil }
func (*Oto) Close() error               { return nil }

// Speaker is unavailable in headless builds.
type Speaker struct{}

var _ audio.Sink = (*Speaker)(nil)

func NewSpeaker(Options) (*Speaker, error) {
	return nil, fmt.Errorf("%w: speaker", ErrDriverUnavailable)
}

func (*Speaker) SampleRate() int          { return 0 }
func (*Speaker) Start(audio.Puller) error { return fmt.Errorf("%w: speaker", ErrDriverUnavailable) }
func (*Speaker) Close() error             { return nil }
