package linear

// Default sizing for the array-backed structures.
const (
	// DefaultCapacity is the initial backing capacity when none is given.
	DefaultCapacity = 10

	// DefaultShrinkFloor is the capacity below which shrinking stops.
	DefaultShrinkFloor = 10
)

// sizing holds the grow/shrink parameters shared by the array-backed
// structures.
type sizing struct {
	initial int
	floor   int
}

func defaultSizing() sizing {
	return sizing{initial: DefaultCapacity, floor: DefaultShrinkFloor}
}

// Option configures an array-backed structure during creation.
type Option func(*sizing)

// WithCapacity sets the initial backing capacity.
func WithCapacity(n int) Option {
	return func(s *sizing) {
		if n > 0 {
			s.initial = n
		}
	}
}

// WithShrinkFloor sets the capacity floor below which the structure
// never shrinks.
func WithShrinkFloor(n int) Option {
	return func(s *sizing) {
		if n > 0 {
			s.floor = n
		}
	}
}

// grown returns the doubled capacity.
func grown(capacity int) int {
	if capacity <= 0 {
		return 1
	}
	return capacity * 2
}

// shrunk returns the halved capacity, clamped to the floor, or the
// current capacity when shrinking is not allowed.
func (s sizing) shrunk(capacity int) int {
	if capacity <= s.floor {
		return capacity
	}
	half := capacity / 2
	if half < s.floor {
		return s.floor
	}
	return half
}

// wantsShrink reports whether a removal left the structure sparse enough
// to halve the backing capacity.
func (s sizing) wantsShrink(size, capacity int) bool {
	return capacity > s.floor && size < capacity/4
}
