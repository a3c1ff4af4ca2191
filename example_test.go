// SPDX-License-Identifier: EPL-2.0

package audmix_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/wav"
)

// Example_decode renders a tone to WAV in memory and decodes it back.
func Example_decode() {
	tone, err := audio.NewSine(441)
	if err != nil {
		fmt.Println(err)
		return
	}

	var data bytes.Buffer
	if err := wav.Export(&data, tone, 0); err != nil {
		fmt.Println(err)
		return
	}

	src, err := audmix.Decode(&data, "wav")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d frames, %d channels, %d Hz\n", src.Len(), src.Channels(), src.SampleRate())
	// Output: 100 frames, 2 channels, 44100 Hz
}

// Example_mixdown mixes two emitters offline and exports the result.
func Example_mixdown() {
	ctx := audio.NewContext(8000)

	for _, f := range []audio.Frame{{L: 0.25, R: 0.25}, {L: 0.5, R: -0.25}} {
		e, err := ctx.Play(audio.NewBuffer(8000, 2, []audio.Frame{f}))
		if err != nil {
			fmt.Println(err)
			return
		}
		e.SetVolume(0.5)
	}

	mix := make([]audio.Frame, 800)
	ctx.Pull(mix)

	var out bytes.Buffer
	if err := wav.Export(&out, audio.NewBuffer(8000, 2, mix), 0); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("first frame: %.3f %.3f\n", mix[0].L, mix[0].R)
	fmt.Printf("wav: %d bytes\n", out.Len())
	// Output:
	// first frame: 0.375 0.000
	// wav: 3244 bytes
}

func Example_unsupportedFormat() {
	_, err := audmix.Decode(strings.NewReader("fLaC"), "flac")

	fmt.Println(errors.Is(err, audio.ErrUnsupportedFormat))
	fmt.Println(err)
	// Output:
	// true
	// unsupported format: "flac"
}
