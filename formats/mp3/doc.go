// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always produces
// 16-bit stereo. The whole file is loaded into an audio.Buffer with
// Channels() == 2 at the file's sample rate:
//
//	f, _ := os.Open("audio.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//
// Input that go-mp3 cannot find a frame header in fails with ErrNotMP3File.
package mp3
