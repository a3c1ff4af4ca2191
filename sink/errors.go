// SPDX-License-Identifier: EPL-2.0

package sink

import "errors"

var (
	ErrUnknownDriver     = errors.New("unknown output driver")
	ErrDriverUnavailable = errors.New("output driver not available in this build")
	ErrAlreadyStarted    = errors.New("sink already started")
	ErrClosed            = errors.New("sink closed")
)
