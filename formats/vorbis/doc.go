// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding.
//
// Decoding is done by github.com/jfreymuth/oggvorbis, a pure Go decoder
// that yields float32 samples directly. The whole stream is loaded into an
// audio.Buffer; streams with more than two channels (5.1 and similar) are
// folded to stereo:
//
//	f, _ := os.Open("audio.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//
// Input without valid Ogg Vorbis headers fails with ErrNotVorbisFile.
package vorbis
