// SPDX-License-Identifier: EPL-2.0

package sink

import (
	"encoding/binary"
	"math"

	"github.com/ik5/audmix/audio"
)

// interleavedPuller and stereoPuller are the device-format fast paths of
// *audio.Context. Other pullers go through Pull and a frame buffer.
type interleavedPuller interface {
	PullInterleaved(dst []float32)
}

type stereoPuller interface {
	PullStereo(dst [][2]float64)
}

// feed adapts a Puller to the buffers device callbacks hand out. It is
// used from one callback goroutine at a time.
type feed struct {
	p      audio.Puller
	fast   interleavedPuller
	stereo stereoPuller

	frames  []audio.Frame
	samples []float32
}

func newFeed(p audio.Puller, bufferFrames int) *feed {
	f := &feed{
		p:       p,
		frames:  make([]audio.Frame, bufferFrames),
		samples: make([]float32, 2*bufferFrames),
	}
	f.fast, _ = p.(interleavedPuller)
	f.stereo, _ = p.(stereoPuller)
	return f
}

func (f *feed) grow(frames int) {
	if frames > len(f.frames) {
		f.frames = make([]audio.Frame, frames)
		f.samples = make([]float32, 2*frames)
	}
}

// interleaved pulls the next n frames as interleaved float32 stereo.
func (f *feed) interleaved(n int) []float32 {
	f.grow(n)
	out := f.samples[:2*n]

	if f.fast != nil {
		f.fast.PullInterleaved(out)
		return out
	}

	frames := f.frames[:n]
	f.p.Pull(frames)
	for i, fr := range frames {
		out[2*i] = float32(fr.L)
		out[2*i+1] = float32(fr.R)
	}
	return out
}

// stereoFrames fills dst the way beep streamers expect.
func (f *feed) stereoFrames(dst [][2]float64) {
	if f.stereo != nil {
		f.stereo.PullStereo(dst)
		return
	}

	f.grow(len(dst))
	frames := f.frames[:len(dst)]
	f.p.Pull(frames)
	for i, fr := range frames {
		dst[i] = [2]float64{fr.L, fr.R}
	}
}

// fillFloat32LE fills p with whole little-endian float32 stereo frames
// pulled from f and zeroes any trailing partial frame.
func (f *feed) fillFloat32LE(p []byte) {
	n := len(p) / 8
	for i, v := range f.interleaved(n) {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}
	clear(p[8*n:])
}
