// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"strings"
	"sync"
)

// Source is random-access audio. Frame must be a pure function of the index
// for the current parameters of the source so that rate conversion and
// interpolation stay well defined.
type Source interface {
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// SampleRate in Hz. Generated sources still report a nominal rate.
	SampleRate() int
	// Len is the number of frames, 0 for unbounded sources.
	Len() int
	// Frame returns the frame at index i, or the zero Frame when a bounded
	// source is read past its end.
	Frame(i int) Frame
}

// Stream is sequential decoder output, drained into a Buffer by Load.
type Stream interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// boundedLen truncates a computed length, saturating at math.MaxInt. A
// huge length still means bounded, so it must never wrap to 0 or below.
func boundedLen(v float64) int {
	if v >= math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}

// FrameAt reads src at index i expressed in targetRate's domain. The index
// is mapped with floor(i * nativeRate / targetRate).
func FrameAt(src Source, i, targetRate int) Frame {
	rate := src.SampleRate()
	if targetRate <= 0 || rate <= 0 || rate == targetRate {
		return src.Frame(i)
	}

	return src.Frame(mapIndex(i, rate, targetRate))
}

func mapIndex(i, rate, targetRate int) int {
	return int(int64(i) * int64(rate) / int64(targetRate))
}

// frameIn reads src at i, treating anything outside a bounded source as
// silence without relying on the source to do so.
func frameIn(src Source, i int) Frame {
	if i < 0 {
		return Frame{}
	}
	if n := src.Len(); n != 0 && i >= n {
		return Frame{}
	}
	return src.Frame(i)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register stores d under format. Keys are case-insensitive.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Formats returns the registered keys in no particular order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	return keys
}
