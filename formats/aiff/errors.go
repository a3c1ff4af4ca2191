// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile is returned when the FORM header is missing or is not AIFF.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth reports a sample size other than 8, 16, 24 or 32 bits.
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")

	// ErrUnsupportedAiffLayout wraps a COMM chunk that cannot be decoded.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
