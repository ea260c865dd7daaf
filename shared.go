package own

import "fmt"

// control is the heap block shared by every member of a family. It outlives
// the managed object for as long as a Weak refers to it, so a stale observer
// can still read n.
type control[T any] struct {
	ptr  *T
	n    int
	life *lifecycle[T]
}

func (c *control[T]) incref() {
	c.n++
	if c.n <= 1 {
		panic(fmt.Sprintf("own: invalid reference count %d on %s", c.n, c.life.name))
	}
	Logger().Debug("own: shared joined", "type", c.life.name, "count", c.n)
	if o := observer(); o != nil {
		o.Joined(c.life.name)
	}
}

// decref leaves the family and frees the object when the count reaches zero.
func (c *control[T]) decref() {
	c.n--
	if c.n < 0 {
		panic(fmt.Sprintf("own: invalid reference count %d on %s", c.n, c.life.name))
	}
	o := observer()
	Logger().Debug("own: shared left", "type", c.life.name, "count", c.n)
	if o != nil {
		o.Left(c.life.name)
	}
	if c.n > 0 {
		return
	}
	p := c.ptr
	c.ptr = nil
	c.life.destroy(p)
	Logger().Debug("own: shared destroyed", "type", c.life.name)
	if o != nil {
		o.Destroyed(KindShared, c.life.name)
	}
}

// Shared is one owner in a family of owners of a *T. The family's object is
// destroyed exactly once, when its last owner drops. The zero value owns
// nothing.
//
// A Shared must not be copied with =. Use [Shared.Clone] to add an owner and
// [Shared.Move] to transfer one. Every owner must eventually be dropped with
// [Shared.Drop], or reassigned with [Shared.Assign] or [Shared.MoveFrom].
type Shared[T any] struct {
	_   noCopy
	ctl *control[T]
}

// NewShared starts a new family owning p with a count of 1. A nil p yields an
// empty handle.
func NewShared[T any](p *T, opts ...Option[T]) Shared[T] {
	if p == nil {
		return Shared[T]{}
	}
	ctl := &control[T]{ptr: p, n: 1, life: newLifecycle(opts)}
	Logger().Debug("own: shared created", "type", ctl.life.name)
	if o := observer(); o != nil {
		o.Created(KindShared, ctl.life.name)
	}
	return Shared[T]{ctl: ctl}
}

// MakeShared allocates a copy of v and returns the first owner of its family.
func MakeShared[T any](v T, opts ...Option[T]) Shared[T] {
	p := new(T)
	*p = v
	return NewShared(p, opts...)
}

// join returns a new owner of ctl's family. ctl may be nil.
func join[T any](ctl *control[T]) Shared[T] {
	if ctl == nil {
		return Shared[T]{}
	}
	ctl.incref()
	return Shared[T]{ctl: ctl}
}

// Get returns the managed pointer, or nil when s is empty.
func (s *Shared[T]) Get() *T {
	if s.ctl == nil {
		return nil
	}
	return s.ctl.ptr
}

// Value returns the managed pointer. It panics with ErrNull when s is empty.
func (s *Shared[T]) Value() *T {
	if s.ctl == nil {
		panic(ErrNull)
	}
	return s.ctl.ptr
}

// IsNull reports whether s owns nothing.
func (s *Shared[T]) IsNull() bool {
	return s.ctl == nil
}

// UseCount returns the number of live owners in s's family, 0 when empty.
func (s *Shared[T]) UseCount() int {
	if s.ctl == nil {
		return 0
	}
	return s.ctl.n
}

// SameFamily reports whether s and other share one count. Two empty handles
// are not a family.
func (s *Shared[T]) SameFamily(other *Shared[T]) bool {
	return s.ctl != nil && s.ctl == other.ctl
}

// Clone returns another owner of s's family, incrementing the count.
// Cloning an empty handle returns an empty handle.
func (s *Shared[T]) Clone() Shared[T] {
	return join(s.ctl)
}

// Assign makes s an owner of other's family. s first leaves its previous
// family, which may destroy that family's object. Assigning a handle to
// itself does nothing.
func (s *Shared[T]) Assign(other *Shared[T]) {
	if s == other {
		return
	}
	ctl := other.ctl
	if ctl != nil {
		// Join before leaving so that other stays valid even when it lives
		// inside the object s is about to release.
		ctl.incref()
	}
	s.leave()
	s.ctl = ctl
}

// Move transfers s's membership into the returned handle without touching
// the count. s is left empty.
func (s *Shared[T]) Move() Shared[T] {
	ctl := s.ctl
	s.ctl = nil
	return Shared[T]{ctl: ctl}
}

// MoveFrom leaves s's previous family and takes over other's membership
// without touching its count. other is left empty. Moving a handle into
// itself does nothing.
func (s *Shared[T]) MoveFrom(other *Shared[T]) {
	if s == other {
		return
	}
	ctl := other.ctl
	other.ctl = nil
	s.leave()
	s.ctl = ctl
}

// Drop leaves the family. The last owner to drop destroys the object.
// Drop on an empty handle does nothing.
func (s *Shared[T]) Drop() {
	s.leave()
}

// Weak returns a non-owning observer of s's family.
func (s *Shared[T]) Weak() Weak[T] {
	return Weak[T]{ctl: s.ctl}
}

// String implements fmt.Stringer.
func (s *Shared[T]) String() string {
	if s.ctl == nil {
		return fmt.Sprintf("own.Shared[%s]{empty}", typeName[T]())
	}
	return fmt.Sprintf("own.Shared[%s]{count=%d}", s.ctl.life.name, s.ctl.n)
}

func (s *Shared[T]) leave() {
	ctl := s.ctl
	if ctl == nil {
		return
	}
	s.ctl = nil
	ctl.decref()
}
