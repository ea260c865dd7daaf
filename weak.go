package own

// Weak observes a Shared family without owning it. It never keeps the object
// alive and never changes the count. The zero value observes nothing.
//
// There is no way to dereference a Weak directly; promote it with
// [Weak.Lock] at the point of use and check the result.
type Weak[T any] struct {
	ctl *control[T]
}

// NewWeak returns an observer of s's family.
func NewWeak[T any](s *Shared[T]) Weak[T] {
	return s.Weak()
}

// Lock returns a new owner of the observed family while it is alive, and an
// empty handle once the family's count has reached zero. A non-empty result
// must be dropped like any other owner.
func (w Weak[T]) Lock() Shared[T] {
	if w.ctl == nil {
		return Shared[T]{}
	}
	if w.ctl.n <= 0 {
		Logger().Debug("own: weak lock failed", "type", w.ctl.life.name)
		if o := observer(); o != nil {
			o.LockFailed(w.ctl.life.name)
		}
		return Shared[T]{}
	}
	return join(w.ctl)
}

// Expired reports whether the observed family is gone. An observer of
// nothing is expired.
func (w Weak[T]) Expired() bool {
	return w.ctl == nil || w.ctl.n <= 0
}

// Reset makes w observe nothing. The observed family is not affected.
func (w *Weak[T]) Reset() {
	w.ctl = nil
}
