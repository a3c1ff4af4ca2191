// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// effect is the part shared by every decorator: one wrapped source whose
// format it reports. The source is never nil once constructed.
type effect struct {
	src sourceSlot
}

func (e *effect) init(src Source) error {
	if src == nil {
		return ErrNoSource
	}
	e.src.Store(src)
	return nil
}

// Source returns the wrapped source.
func (e *effect) Source() Source { return e.src.Load() }

// SetSource replaces the wrapped source. A nil source is rejected so reads
// from the mixing goroutine never see an empty effect.
func (e *effect) SetSource(src Source) error {
	if src == nil {
		return fmt.Errorf("%w: effect source cannot be nil", ErrNoSource)
	}
	e.src.Store(src)
	return nil
}

func (e *effect) Channels() int   { return e.src.Load().Channels() }
func (e *effect) SampleRate() int { return e.src.Load().SampleRate() }
func (e *effect) Len() int        { return e.src.Load().Len() }
