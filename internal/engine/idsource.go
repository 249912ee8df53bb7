package engine

import "sync/atomic"

// IDSource allocates monotonically increasing node identifiers. A session
// holds one source across structure lifetimes, so identifiers are never
// reused after a clear. The zero value is ready to use; the first
// allocated ID is 1, leaving 0 to mean "no node".
type IDSource struct {
	next atomic.Uint64
}

// NewIDSource returns a fresh ID source.
func NewIDSource() *IDSource {
	return &IDSource{}
}

// Next returns the next unused identifier.
func (s *IDSource) Next() uint64 {
	return s.next.Add(1)
}
