// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audmix/audio"
)

type wavHeader struct {
	riff       string
	riffSize   uint32
	wave       string
	fmt        string
	fmtSize    uint32
	format     uint16
	channels   uint16
	sampleRate uint32
	byteRate   uint32
	blockAlign uint16
	bits       uint16
	data       string
	dataSize   uint32
}

func parseHeader(t *testing.T, b []byte) wavHeader {
	t.Helper()

	if len(b) < headerSize {
		t.Fatalf("output is %d bytes, shorter than a WAV header", len(b))
	}
	le := binary.LittleEndian
	return wavHeader{
		riff:       string(b[0:4]),
		riffSize:   le.Uint32(b[4:8]),
		wave:       string(b[8:12]),
		fmt:        string(b[12:16]),
		fmtSize:    le.Uint32(b[16:20]),
		format:     le.Uint16(b[20:22]),
		channels:   le.Uint16(b[22:24]),
		sampleRate: le.Uint32(b[24:28]),
		byteRate:   le.Uint32(b[28:32]),
		blockAlign: le.Uint16(b[32:34]),
		bits:       le.Uint16(b[34:36]),
		data:       string(b[36:40]),
		dataSize:   le.Uint32(b[40:44]),
	}
}

func constantBuffer(rate, frames int, f audio.Frame) *audio.Buffer {
	out := make([]audio.Frame, frames)
	for i := range out {
		out[i] = f
	}
	return audio.NewBuffer(rate, 2, out)
}

func TestExport_Header(t *testing.T) {
	t.Parallel()

	src := constantBuffer(44100, 100, audio.Frame{L: 0.5, R: -0.5})

	var out bytes.Buffer
	if err := Export(&out, src, 100); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	h := parseHeader(t, out.Bytes())
	want := wavHeader{
		riff: "RIFF", wave: "WAVE", fmt: "fmt ", data: "data",
		riffSize: 36 + 400, fmtSize: 16,
		format: 1, channels: 2,
		sampleRate: 44100, byteRate: 44100 * 4,
		blockAlign: 4, bits: 16,
		dataSize: 400,
	}
	if h != want {
		t.Errorf("header = %+v\nwant     %+v", h, want)
	}

	if out.Len() != headerSize+400 {
		t.Errorf("output length = %d, want %d", out.Len(), headerSize+400)
	}
}

func TestExport_SampleEncoding(t *testing.T) {
	t.Parallel()

	frames := []audio.Frame{
		{L: 0, R: 0},
		{L: 1, R: -1},
		{L: 0.5, R: -0.5},
		{L: 2, R: -2}, // saturates
	}
	want := [][2]int16{{0, 0}, {32767, -32767}, {16384, -16384}, {32767, -32768}}

	var out bytes.Buffer
	if err := Export(&out, audio.NewBuffer(8000, 2, frames), 0); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data := out.Bytes()[headerSize:]
	for i, w := range want {
		l := int16(binary.LittleEndian.Uint16(data[i*4:]))
		r := int16(binary.LittleEndian.Uint16(data[i*4+2:]))
		if l != w[0] || r != w[1] {
			t.Errorf("frame %d = (%d, %d), want (%d, %d)", i, l, r, w[0], w[1])
		}
	}
}

func TestExport_WholeSourceWhenZeroFrames(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := Export(&out, constantBuffer(8000, 10, audio.Frame{}), 0); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if h := parseHeader(t, out.Bytes()); h.dataSize != 40 {
		t.Errorf("dataSize = %d, want 40", h.dataSize)
	}
}

func TestExport_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    audio.Source
		frames int
		rate   int
		want   error
	}{
		{"unbounded without count", audio.NewNoise(1), 0, 44100, audio.ErrUnboundedSource},
		{"negative frames", constantBuffer(8000, 4, audio.Frame{}), -1, 8000, audio.ErrInvalidParameter},
		{"zero rate", constantBuffer(8000, 4, audio.Frame{}), 4, 0, audio.ErrInvalidParameter},
		{"too large", audio.NewNoise(1), 1 << 30, 44100, ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			err := ExportAt(&out, tt.src, tt.frames, tt.rate)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ExportAt() error = %v, want %v", err, tt.want)
			}
			if out.Len() != 0 {
				t.Errorf("ExportAt() wrote %d bytes on error", out.Len())
			}
		})
	}
}

func TestExport_UnboundedWithCount(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := Export(&out, audio.NewNoise(7), 32); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if out.Len() != headerSize+32*4 {
		t.Errorf("output length = %d, want %d", out.Len(), headerSize+32*4)
	}
}

func TestExportAt_ConvertsRate(t *testing.T) {
	t.Parallel()

	// 4 frames at 4 kHz exported at 8 kHz: every source frame twice
	frames := []audio.Frame{{L: 0.1}, {L: 0.2}, {L: 0.3}, {L: 0.4}}
	src := audio.NewBuffer(4000, 2, frames)

	var out bytes.Buffer
	if err := ExportAt(&out, src, 8, 8000); err != nil {
		t.Fatalf("ExportAt() error = %v", err)
	}

	h := parseHeader(t, out.Bytes())
	if h.sampleRate != 8000 || h.dataSize != 32 {
		t.Fatalf("header rate=%d dataSize=%d, want 8000 and 32", h.sampleRate, h.dataSize)
	}

	data := out.Bytes()[headerSize:]
	for i := range 8 {
		got := int16(binary.LittleEndian.Uint16(data[i*4:]))
		want := int16(float64(i/2+1) / 10 * 32767)
		if d := int(got) - int(want); d < -1 || d > 1 {
			t.Errorf("frame %d left = %d, want %d", i, got, want)
		}
	}
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("write failed")
	}
	w.after--
	return len(p), nil
}

func TestExport_WriteError(t *testing.T) {
	t.Parallel()

	src := constantBuffer(8000, 10, audio.Frame{})

	for _, after := range []int{0, 1} {
		if err := Export(&failingWriter{after: after}, src, 0); err == nil {
			t.Errorf("Export() with writer failing after %d writes: error = nil", after)
		}
	}
}

func TestExport_RoundTrip(t *testing.T) {
	t.Parallel()

	saw, err := audio.NewSaw(441)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Export(&out, saw, 0); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	got, err := Decoder{}.Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got.Len() != saw.Len() || got.SampleRate() != saw.SampleRate() || got.Channels() != 2 {
		t.Fatalf("decoded len=%d rate=%d ch=%d, want %d %d 2",
			got.Len(), got.SampleRate(), got.Channels(), saw.Len(), saw.SampleRate())
	}

	for i := range saw.Len() {
		want, have := saw.Frame(i), got.Frame(i)
		if !approx2(want.L, have.L) || !approx2(want.R, have.R) {
			t.Fatalf("frame %d = %+v, want %+v", i, have, want)
		}
	}
}

// approx2 allows for one 16-bit quantization step.
func approx2(a, b float64) bool {
	d := a - b
	return d < 2.0/32767 && d > -2.0/32767
}

func TestExportFile_MatchesExport(t *testing.T) {
	t.Parallel()

	src := constantBuffer(22050, 100, audio.Frame{L: 0.25, R: -0.75})
	path := filepath.Join(t.TempDir(), "out.wav")

	if err := ExportFile(path, src, 100, 0); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	h := parseHeader(t, written)
	if h.channels != 2 || h.sampleRate != 22050 || h.bits != 16 || h.dataSize != 400 {
		t.Errorf("header = %+v, want stereo 22050 Hz 16 bit with 400 data bytes", h)
	}

	var direct bytes.Buffer
	if err := Export(&direct, src, 100); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(direct.Bytes(), written) {
		t.Error("ExportFile() output differs from Export()")
	}
}

func TestExportFile_BadPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.wav")
	if err := ExportFile(path, constantBuffer(8000, 1, audio.Frame{}), 0, 0); err == nil {
		t.Error("ExportFile() into a missing directory: error = nil")
	}
}

func BenchmarkExport(b *testing.B) {
	src := constantBuffer(44100, 44100, audio.Frame{L: 0.3, R: -0.3})
	var out bytes.Buffer

	b.ReportAllocs()

	for b.Loop() {
		out.Reset()
		_ = Export(&out, src, 0)
	}
}
