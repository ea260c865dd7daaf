package own

import "fmt"

// Option configures a handle during creation.
//
// Example:
//
//	buf := own.NewUnique(pool.Get(), own.WithDeleter(pool.Put))
type Option[T any] func(*lifecycle[T])

// Destroyer is implemented by types that need teardown when their last owner
// lets go. Destroy is called at most once per object.
type Destroyer interface {
	Destroy()
}

// lifecycle holds the per-object destructor and the label used in logs and
// observer events.
type lifecycle[T any] struct {
	deleter func(*T)
	name    string
}

// WithDeleter sets the function that frees the managed object. It takes
// precedence over a Destroy method on *T.
func WithDeleter[T any](fn func(*T)) Option[T] {
	return func(l *lifecycle[T]) {
		l.deleter = fn
	}
}

// WithName overrides the type label reported to the logger and observer.
func WithName[T any](name string) Option[T] {
	return func(l *lifecycle[T]) {
		l.name = name
	}
}

func newLifecycle[T any](opts []Option[T]) *lifecycle[T] {
	l := &lifecycle[T]{}
	for _, opt := range opts {
		opt(l)
	}
	if l.name == "" {
		l.name = typeName[T]()
	}
	return l
}

// destroy runs the destructor for p. nil is ignored.
func (l *lifecycle[T]) destroy(p *T) {
	if p == nil {
		return
	}
	if l.deleter != nil {
		l.deleter(p)
		return
	}
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
}

// typeName returns the package-qualified name of T, e.g. "engine.Actor".
func typeName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}
