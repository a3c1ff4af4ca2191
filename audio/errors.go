// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidParameter reports a rejected effect, generator or emitter
	// parameter (pitch factor <= 0, negative seek, ...).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNoSource reports an operation on an emitter or effect without a
	// source attached.
	ErrNoSource = errors.New("no source attached")

	// ErrUnboundedSource reports a bulk export of a source with Len() == 0
	// and no explicit frame count.
	ErrUnboundedSource = errors.New("source is unbounded and no frame count was given")

	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDevice            = errors.New("audio device failure")
	ErrAlreadyAttached   = errors.New("emitter already attached")
	ErrUnknownParameter  = errors.New("no such parameter")
)
