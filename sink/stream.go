// SPDX-License-Identifier: EPL-2.0

package sink

import (
	"sync/atomic"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/audmix/audio"
)

// Streamer exposes a Puller as a never-ending beep.Streamer. It streams
// silence until a puller is set and stops once Stop is called.
type Streamer struct {
	feed    atomic.Pointer[feed]
	stopped atomic.Bool
	frames  int
}

var _ beep.Streamer = (*Streamer)(nil)

// NewStreamer sizes its scratch buffers for bufferFrames frames per call.
func NewStreamer(bufferFrames int) *Streamer {
	return &Streamer{frames: bufferFrames}
}

// SetPuller switches the streamer to p. A nil p streams silence.
func (s *Streamer) SetPuller(p audio.Puller) {
	if p == nil {
		s.feed.Store(nil)
		return
	}
	s.feed.Store(newFeed(p, s.frames))
}

func (s *Streamer) Stop() { s.stopped.Store(true) }

func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	if s.stopped.Load() {
		return 0, false
	}

	f := s.feed.Load()
	if f == nil {
		clear(samples)
		return len(samples), true
	}

	f.stereoFrames(samples)
	return len(samples), true
}

func (s *Streamer) Err() error { return nil }
