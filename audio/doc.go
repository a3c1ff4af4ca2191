// SPDX-License-Identifier: EPL-2.0

// Package audio is the mixing and playback core.
//
// # Frames and Sources
//
// A Frame is one stereo sample of two float64 channels. A Source is random
// access audio:
//
//	type Source interface {
//	    Channels() int
//	    SampleRate() int
//	    Len() int          // 0 means unbounded
//	    Frame(i int) Frame // zero Frame past the end
//	}
//
// FrameAt reads a source at an index expressed in another sample rate,
// mapping it with floor(i * nativeRate / targetRate). Emitters, the Mixer
// and WAV export all go through it.
//
// Decoders produce a Stream (sequential interleaved float32 samples) which
// Load drains into a Buffer. LoadAt converts the stream with a cubic
// Resampler first.
//
// # Effects
//
// PitchShift, Oscillator and Echo wrap a Source and are Sources themselves,
// so they chain:
//
//	pitched, _ := audio.NewPitchShift(src, 1.5)
//	tremolo, _ := audio.NewOscillator(pitched, 4)
//	echoed, _ := audio.NewEcho(tremolo, 0.25, 0.6, 3)
//
// A Mixer adds, subtracts or multiplies two sources into one unbounded
// source. Tone and Noise generate test signals.
//
// # Playback
//
// An Emitter is a cursor over a source with volume, balance, loop and pause
// controls. A Context mixes its attached emitters:
//
//	ctx := audio.NewContext(48000)
//	e, _ := ctx.Play(echoed)
//	e.SetLoop(false)
//
//	buf := make([]audio.Frame, 1024)
//	ctx.Pull(buf) // called by a sink, once per device buffer
//
// # Concurrency
//
// Attach, Detach and Pull share the Context mutex. Emitter, effect and
// Mixer settings are atomics, so they can be changed from any goroutine
// while a sink pulls. Pull cannot fail: preconditions are checked by
// Attach and by the effect constructors, and an emitter whose source is
// removed later plays silence. This package starts no goroutines; sinks
// (see package sink) own them.
//
// # Errors
//
// Errors wrap the sentinels in errors.go and are matched with errors.Is:
//
//	if _, err := audio.NewPitchShift(src, 0); errors.Is(err, audio.ErrInvalidParameter) {
//	    // factor must be > 0
//	}
package audio
