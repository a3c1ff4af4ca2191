// SPDX-License-Identifier: EPL-2.0

// Package sink holds the audio.Sink backends.
//
// The audio core never picks a device; the program does, once, at startup:
//
//	out, err := sink.Open(cfg.Output.Driver, sink.Options{
//	    SampleRate:   48000,
//	    BufferFrames: 1024,
//	})
//	if err != nil {
//	    return err
//	}
//	defer out.Close()
//
//	ctx := audio.NewContext(out.SampleRate())
//	if err := out.Start(ctx); err != nil {
//	    return err
//	}
//
// Drivers:
//
//   - "oto": ebitengine/oto in callback mode, float32 little-endian stereo.
//   - "speaker": gopxl/beep's speaker, fed by a beep.Streamer.
//   - "null": a paced push loop that discards the audio or writes raw
//     float32 frames to Options.Output.
//
// Building with the headless tag leaves out the oto and speaker drivers;
// Open then returns ErrDriverUnavailable for them.
//
// Every sink owns its goroutines (or the device's callback thread) and
// stops them in Close. Device failures wrap audio.ErrDevice.
package sink
