package own

import "sync/atomic"

// Slot holds at most one process-wide instance of T. Declare it as a package
// variable:
//
//	var current own.Slot[Config]
//
//	current.Reset(&Config{...})
//	defer current.Reset(nil)
//
// A Slot is global mutable state. Prefer passing the instance to the code that
// needs it; Slot exists for the few places where that is impractical.
//
// The previous occupant is destroyed on Reset following the same rules as the
// other handles (Destroy when *T implements [Destroyer]). Get, IsNull and
// Reset are safe for concurrent use, but the object itself is not protected.
type Slot[T any] struct {
	ptr atomic.Pointer[T]
}

// Get returns the current instance, or nil.
func (s *Slot[T]) Get() *T {
	return s.ptr.Load()
}

// IsNull reports whether the slot is empty.
func (s *Slot[T]) IsNull() bool {
	return s.ptr.Load() == nil
}

// Reset destroys the current instance, if any, and stores p. Reset(nil)
// empties the slot. Storing the instance already held does nothing.
func (s *Slot[T]) Reset(p *T) {
	old := s.ptr.Swap(p)
	if old == nil || old == p {
		return
	}
	if d, ok := any(old).(Destroyer); ok {
		d.Destroy()
	}
	Logger().Debug("own: slot instance destroyed", "type", typeName[T]())
}
