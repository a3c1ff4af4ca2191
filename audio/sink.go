// SPDX-License-Identifier: EPL-2.0

package audio

// Puller is the side of a Context a sink sees. Sinks call Pull from their
// own goroutine or device callback, once per buffer.
type Puller interface {
	SampleRate() int
	Pull(dst []Frame)
}

// Sink is a platform audio backend. A sink either runs its own loop and
// calls Pull before each device write (push mode), or lets the platform
// call it with a free-buffer size and pulls inside that callback (callback
// mode). Either way the sink owns the goroutines involved.
type Sink interface {
	// SampleRate is fixed once the sink is open.
	SampleRate() int
	// Start begins pulling from p.
	Start(p Puller) error
	Close() error
}

// Capturer is implemented by sinks that can record. See Record.
type Capturer interface {
	CaptureFrame() Frame
}

var _ Puller = (*Context)(nil)
