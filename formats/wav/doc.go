// SPDX-License-Identifier: EPL-2.0

// Package wav decodes WAV files into audio sources and exports sources as
// WAV files.
//
// # Decoding
//
// Decoder reads integer PCM WAV (8, 16, 24 and 32 bit, any channel count)
// through github.com/go-audio/wav and loads the whole file into an
// audio.Buffer:
//
//	f, _ := os.Open("audio.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// Files with more than two channels are folded to stereo. Readers that do
// not implement io.Seeker are read fully into memory first.
//
// # Exporting
//
// Export writes any audio.Source as 16-bit stereo PCM with a canonical
// 44 byte header:
//
//	err := wav.Export(w, src, 0)      // the whole source at its own rate
//	err := wav.ExportAt(w, src, n, r) // n frames read at rate r
//
// Samples are scaled by 32767, rounded and saturated. A frame count of 0
// exports src.Len() frames; unbounded sources (Len() == 0) need an explicit
// count and fail with audio.ErrUnboundedSource otherwise.
//
// ExportFile and Encode produce the same bytes through go-audio's encoder,
// which needs an io.WriteSeeker to patch the chunk sizes.
//
// # Errors
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrUnsupportedEncoding: the format tag is not integer PCM
//   - ErrUnsupportedBitDepth: a bit depth other than 8, 16, 24 or 32
//   - ErrTooLarge: the export would not fit the 32-bit RIFF size fields
package wav
