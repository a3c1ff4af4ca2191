// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Parameterized sources accept named numeric parameters, e.g. "frequency"
// on a generator or "factor" on a PitchShift.
type Parameterized interface {
	SetParameter(name string, value float64) error
}

// SetParameter sets a named parameter on src.
func SetParameter(src Source, name string, value float64) error {
	p, ok := src.(Parameterized)
	if !ok {
		return fmt.Errorf("%w: %q on %T", ErrUnknownParameter, name, src)
	}
	return p.SetParameter(name, value)
}

func unknownParameter(kind, name string) error {
	return fmt.Errorf("%w: %s has no parameter %q", ErrUnknownParameter, kind, name)
}
