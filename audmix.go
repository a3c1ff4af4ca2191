// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
)

// DefaultRegistry returns the process-wide registry holding every built-in
// decoder. Callers may register more formats on it.
var DefaultRegistry = sync.OnceValue(func() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
})

// Decode decodes r with the decoder registered for ext. A leading dot is
// ignored and the match is case-insensitive.
func Decode(r io.Reader, ext string) (audio.Source, error) {
	ext = strings.TrimPrefix(ext, ".")

	dec, ok := DefaultRegistry().Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", audio.ErrUnsupportedFormat, ext)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ext, err)
	}
	return src, nil
}

// Open decodes the file at path, choosing the decoder by extension.
func Open(path string) (audio.Source, error) {
	ext := filepath.Ext(path)
	if _, ok := DefaultRegistry().Get(strings.TrimPrefix(ext, ".")); !ok {
		return nil, fmt.Errorf("%s: %w: %q", path, audio.ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	src, err := Decode(f, ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// OpenAt is Open followed by conversion to rate. Sources that are not
// in-memory buffers are returned unconverted.
func OpenAt(path string, rate int) (audio.Source, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}

	buf, ok := src.(*audio.Buffer)
	if !ok {
		return src, nil
	}

	out, err := audio.Resample(buf, rate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
