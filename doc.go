// SPDX-License-Identifier: EPL-2.0

// Package audmix is the entry point of the audmix mixing engine. It ties
// the format decoders to the audio core:
//
//	src, err := audmix.OpenAt("drums.ogg", 48000)
//	if err != nil {
//	    return err
//	}
//
//	ctx := audio.NewContext(48000)
//	e, _ := ctx.Play(src)
//	e.SetLoop(false)
//
//	out, _ := sink.Open("oto", sink.Options{SampleRate: 48000})
//	defer out.Close()
//	_ = out.Start(ctx)
//
// # Supported Formats
//
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// Open and Decode pick the decoder by file extension from DefaultRegistry.
// Decoded files are in-memory audio.Buffers; OpenAt converts them with the
// cubic resampler so playback at the output rate needs no index mapping.
//
// # Writing WAV Files
//
// formats/wav exports any bounded source, or a fixed number of frames of an
// unbounded one, as 16-bit stereo PCM:
//
//	f, _ := os.Create("mix.wav")
//	err := wav.Export(f, mixer, 48000*10)
//
// See the audio package for frames, effects, emitters and the mixing
// Context, and the sink package for output backends.
package audmix
