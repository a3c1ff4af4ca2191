// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_Distinct(t *testing.T) {
	t.Parallel()

	all := map[string]error{
		"ErrNotWavFile":          ErrNotWavFile,
		"ErrUnsupportedEncoding": ErrUnsupportedEncoding,
		"ErrUnsupportedBitDepth": ErrUnsupportedBitDepth,
		"ErrTooLarge":            ErrTooLarge,
	}

	messages := make(map[string]string)
	for name, err := range all {
		if err == nil {
			t.Fatalf("%s is nil", name)
		}
		if other, dup := messages[err.Error()]; dup {
			t.Errorf("%s has same message as %s: %q", name, other, err.Error())
		}
		messages[err.Error()] = name
	}
}

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrNotWavFile, ErrUnsupportedEncoding, ErrUnsupportedBitDepth, ErrTooLarge} {
		wrapped := fmt.Errorf("context: %w", err)
		if !errors.Is(wrapped, err) {
			t.Errorf("errors.Is(wrapped, %v) = false, want true", err)
		}
	}
}
