// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

const (
	exportChannels = 2
	exportBits     = 16
	bytesPerFrame  = exportChannels * exportBits / 8
	headerSize     = 44
	chunkFrames    = 4096
)

// exportFrames resolves the frame count: 0 means the whole source, which
// is only possible for bounded sources.
func exportFrames(src audio.Source, frames int) (int, error) {
	if frames < 0 {
		return 0, fmt.Errorf("%w: frame count %d", audio.ErrInvalidParameter, frames)
	}
	if frames == 0 {
		frames = src.Len()
	}
	if frames == 0 {
		return 0, audio.ErrUnboundedSource
	}
	if uint64(frames)*bytesPerFrame > math.MaxUint32-(headerSize-8) {
		return 0, fmt.Errorf("%w: %d frames", ErrTooLarge, frames)
	}
	return frames, nil
}

// Export writes frames frames of src as a 16-bit stereo PCM WAV at the
// source's own sample rate. frames == 0 exports the whole source.
func Export(w io.Writer, src audio.Source, frames int) error {
	return ExportAt(w, src, frames, src.SampleRate())
}

// ExportAt is Export with the source read through audio.FrameAt at rate,
// which is also the rate written to the header.
func ExportAt(w io.Writer, src audio.Source, frames, rate int) error {
	if rate <= 0 {
		return fmt.Errorf("%w: sample rate %d", audio.ErrInvalidParameter, rate)
	}
	frames, err := exportFrames(src, frames)
	if err != nil {
		return err
	}

	dataSize := uint32(frames * bytesPerFrame)

	header := make([]byte, headerSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], headerSize-8+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], exportChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(rate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(rate)*bytesPerFrame)
	binary.LittleEndian.PutUint16(header[32:34], bytesPerFrame)
	binary.LittleEndian.PutUint16(header[34:36], exportBits)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	buf := make([]byte, min(frames, chunkFrames)*bytesPerFrame)
	for start := 0; start < frames; start += chunkFrames {
		end := min(start+chunkFrames, frames)
		out := buf[:(end-start)*bytesPerFrame]

		for i := start; i < end; i++ {
			f := audio.FrameAt(src, i, rate)
			o := (i - start) * bytesPerFrame
			binary.LittleEndian.PutUint16(out[o:], uint16(utils.FloatToInt16(f.L)))
			binary.LittleEndian.PutUint16(out[o+2:], uint16(utils.FloatToInt16(f.R)))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// Encode writes the same layout as Export through go-audio's encoder,
// which patches the chunk sizes by seeking back once all data is written.
func Encode(ws io.WriteSeeker, src audio.Source, frames, rate int) (err error) {
	if rate <= 0 {
		return fmt.Errorf("%w: sample rate %d", audio.ErrInvalidParameter, rate)
	}
	frames, err = exportFrames(src, frames)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(ws, rate, exportBits, exportChannels, 1)
	defer func() {
		if cerr := enc.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing wav encoder: %w", cerr))
		}
	}()

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: exportChannels,
			SampleRate:  rate,
		},
		Data:           make([]int, min(frames, chunkFrames)*exportChannels),
		SourceBitDepth: exportBits,
	}

	for start := 0; start < frames; start += chunkFrames {
		end := min(start+chunkFrames, frames)
		buf.Data = buf.Data[:(end-start)*exportChannels]

		for i := start; i < end; i++ {
			f := audio.FrameAt(src, i, rate)
			o := (i - start) * exportChannels
			buf.Data[o] = int(utils.FloatToInt16(f.L))
			buf.Data[o+1] = int(utils.FloatToInt16(f.R))
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	return nil
}

// ExportFile encodes src into a new file at path at rate. rate <= 0 uses
// the source's rate.
func ExportFile(path string, src audio.Source, frames, rate int) (err error) {
	if rate <= 0 {
		rate = src.SampleRate()
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	return Encode(f, src, frames, rate)
}
