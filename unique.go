package own

// Unique is the sole owner of a *T. The zero value owns nothing.
//
// A Unique must not be copied; transfer it with [Unique.Move] or
// [Unique.Assign]. Call [Unique.Drop] (usually deferred) when the owner goes
// out of scope.
type Unique[T any] struct {
	_    noCopy
	ptr  *T
	life *lifecycle[T]
}

// NewUnique takes ownership of p. The caller must not free p by other means.
func NewUnique[T any](p *T, opts ...Option[T]) Unique[T] {
	life := newLifecycle(opts)
	if p != nil {
		uniqueCreated(life)
	}
	return Unique[T]{ptr: p, life: life}
}

// MakeUnique allocates a copy of v and returns its exclusive owner.
func MakeUnique[T any](v T, opts ...Option[T]) Unique[T] {
	p := new(T)
	*p = v
	return NewUnique(p, opts...)
}

// Get returns the managed pointer without giving up ownership.
func (u *Unique[T]) Get() *T {
	return u.ptr
}

// Value returns the managed pointer. It panics with ErrNull when u is empty.
func (u *Unique[T]) Value() *T {
	if u.ptr == nil {
		panic(ErrNull)
	}
	return u.ptr
}

// IsNull reports whether u owns nothing.
func (u *Unique[T]) IsNull() bool {
	return u.ptr == nil
}

// Release gives up ownership and returns the pointer. Freeing it becomes the
// caller's job; u is left empty.
func (u *Unique[T]) Release() *T {
	p := u.ptr
	u.ptr = nil
	if p != nil {
		name := u.lifecycle().name
		Logger().Debug("own: unique released", "type", name)
		if o := observer(); o != nil {
			o.Released(name)
		}
	}
	return p
}

// Reset frees the current object, if any, and takes ownership of p.
// The deleter configured at construction applies to p as well.
func (u *Unique[T]) Reset(p *T) {
	old := u.ptr
	if old == p {
		return
	}
	u.ptr = p
	life := u.lifecycle()
	if old != nil {
		uniqueDestroy(life, old)
	}
	if p != nil {
		uniqueCreated(life)
	}
}

// Drop frees the managed object. It is safe on an empty Unique.
func (u *Unique[T]) Drop() {
	u.Reset(nil)
}

// Move transfers ownership into the returned Unique and leaves u empty.
func (u *Unique[T]) Move() Unique[T] {
	p, life := u.ptr, u.life
	u.ptr = nil
	return Unique[T]{ptr: p, life: life}
}

// Assign frees the object u currently owns, then takes over src's object.
// src is left empty. Assigning a Unique to itself does nothing.
func (u *Unique[T]) Assign(src *Unique[T]) {
	if u == src {
		return
	}
	p, life := src.ptr, src.life
	src.ptr = nil
	if u.ptr != nil {
		uniqueDestroy(u.lifecycle(), u.ptr)
	}
	u.ptr, u.life = p, life
}

// lifecycle returns u's lifecycle, creating the default one for the zero value.
func (u *Unique[T]) lifecycle() *lifecycle[T] {
	if u.life == nil {
		u.life = newLifecycle[T](nil)
	}
	return u.life
}

func uniqueCreated[T any](life *lifecycle[T]) {
	Logger().Debug("own: unique created", "type", life.name)
	if o := observer(); o != nil {
		o.Created(KindUnique, life.name)
	}
}

func uniqueDestroy[T any](life *lifecycle[T], p *T) {
	life.destroy(p)
	Logger().Debug("own: unique destroyed", "type", life.name)
	if o := observer(); o != nil {
		o.Destroyed(KindUnique, life.name)
	}
}
