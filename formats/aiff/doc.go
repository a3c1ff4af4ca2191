// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// Files are parsed by github.com/go-audio/aiff and loaded into an
// audio.Buffer, so the result can be played, mixed and exported like any
// other audio.Source:
//
//	f, _ := os.Open("audio.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//
// Uncompressed AIFF with 8, 16, 24 or 32 bit samples is supported. Samples
// are normalized to [-1, 1); files with more than two channels are folded
// to stereo. AIFF-C (compressed) files are rejected.
//
// # Errors
//
//   - ErrNotAiffFile: the input is not a FORM/AIFF file
//   - ErrUnsupportedBitDepth: the sample size is not 8, 16, 24 or 32 bits
//   - ErrUnsupportedAiffLayout: the COMM chunk has no usable format
package aiff
