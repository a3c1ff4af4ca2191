// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"sync/atomic"
)

// atomicFloat is a float64 readable from the mixing goroutine while a
// control goroutine writes it.
type atomicFloat struct {
	bits atomic.Uint64
}

func (a *atomicFloat) Load() float64   { return math.Float64frombits(a.bits.Load()) }
func (a *atomicFloat) Store(v float64) { a.bits.Store(math.Float64bits(v)) }

// sourceRef boxes a Source so differently typed sources can share one
// atomic.Pointer.
type sourceRef struct {
	src Source
}

type sourceSlot struct {
	p atomic.Pointer[sourceRef]
}

func (s *sourceSlot) Load() Source {
	ref := s.p.Load()
	if ref == nil {
		return nil
	}
	return ref.src
}

func (s *sourceSlot) Store(src Source) {
	if src == nil {
		s.p.Store(nil)
		return
	}
	s.p.Store(&sourceRef{src: src})
}
