// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"testing"
)

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	return newSilentSource(44100, 100), nil
}

// failingDecoder always returns an error
type failingDecoder struct{}

func (d *failingDecoder) Decode(r io.Reader) (Source, error) {
	return nil, errors.New("decode failed")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}
	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}
	registry.Register("WAV", decoder)

	for _, key := range []string{"wav", "Wav", "WAV"} {
		if got, ok := registry.Get(key); !ok || got != decoder {
			t.Errorf("Registry.Get(%q) = %v, %v; want registered decoder", key, got, ok)
		}
	}
}

func TestRegistry_MultipleFormats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &mockDecoder{name: "wav"}
	mp3Decoder := &mockDecoder{name: "mp3"}
	failing := &failingDecoder{}

	registry.Register("wav", wavDecoder)
	registry.Register("mp3", mp3Decoder)
	registry.Register("bad", failing)

	tests := []struct {
		format string
		want   Decoder
		wantOK bool
	}{
		{"wav", wavDecoder, true},
		{"mp3", mp3Decoder, true},
		{"bad", failing, true},
		{"flac", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, ok := registry.Get(tt.format)
			if ok != tt.wantOK {
				t.Errorf("Registry.Get(%q) ok = %v, want %v", tt.format, ok, tt.wantOK)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("Registry.Get(%q) returned wrong decoder", tt.format)
			}
		})
	}

	formats := registry.Formats()
	slices.Sort(formats)
	if !slices.Equal(formats, []string{"bad", "mp3", "wav"}) {
		t.Errorf("Formats() = %v, want [bad mp3 wav]", formats)
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder1 := &mockDecoder{name: "first"}
	decoder2 := &mockDecoder{name: "second"}

	registry.Register("wav", decoder1)
	registry.Register("wav", decoder2)

	if got, _ := registry.Get("wav"); got != decoder2 {
		t.Error("Registry.Get() did not return the overwritten decoder")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	done := make(chan bool)
	for range 10 {
		go func() {
			registry.Register("format", decoder)
			done <- true
		}()
	}
	for range 10 {
		go func() {
			_, _ = registry.Get("format")
			_ = registry.Formats()
			done <- true
		}()
	}
	for range 20 {
		<-done
	}

	if got, ok := registry.Get("format"); !ok || got != decoder {
		t.Error("Registry returned wrong decoder after concurrent operations")
	}
}

func TestFrameAt(t *testing.T) {
	t.Parallel()

	src := newRampSource(22050, 1000)

	tests := []struct {
		name   string
		i      int
		target int
		want   int
	}{
		{"same rate", 7, 22050, 7},
		{"no target", 7, 0, 7},
		{"upsample x2", 7, 44100, 3},
		{"downsample x2", 7, 11025, 14},
		{"48k", 480, 48000, 220},
		{"past end", 10000, 22050, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FrameAt(src, tt.i, tt.target)
			want := Frame{}
			if tt.want >= 0 {
				want = Frame{float64(tt.want), -float64(tt.want)}
			}
			if got != want {
				t.Errorf("FrameAt(%d, %d) = %+v, want %+v", tt.i, tt.target, got, want)
			}
		})
	}
}

func TestFrameAt_LargeIndexNoOverflow(t *testing.T) {
	t.Parallel()

	src := newRampSource(48000, 0)
	i := 1 << 40

	got := FrameAt(src, i, 96000)
	if want := float64(i / 2); got.L != want {
		t.Errorf("FrameAt(%d).L = %v, want %v", i, got.L, want)
	}
}

func BenchmarkRegistry_Get(b *testing.B) {
	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})

	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.Get("wav")
	}
}

func BenchmarkFrameAt(b *testing.B) {
	src := newRampSource(22050, 1<<20)

	b.ReportAllocs()

	i := 0
	for b.Loop() {
		_ = FrameAt(src, i&(1<<20-1), 44100)
		i++
	}
}
