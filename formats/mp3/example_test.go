// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/audmix/formats/mp3"
)

// Example_errorHandling shows how undecodable input is reported.
func Example_errorHandling() {
	_, err := mp3.Decoder{}.Decode(bytes.NewReader([]byte("definitely not mpeg audio")))

	if errors.Is(err, mp3.ErrNotMP3File) {
		fmt.Println("Input is not an MP3 stream")
	}
	// Output: Input is not an MP3 stream
}
