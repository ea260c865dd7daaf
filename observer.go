package own

import "sync/atomic"

// Kind identifies the handle type in observer events.
type Kind uint8

const (
	// KindUnique marks events from Unique handles.
	KindUnique Kind = iota
	// KindShared marks events from Shared families.
	KindShared
)

// String returns "unique" or "shared".
func (k Kind) String() string {
	switch k {
	case KindUnique:
		return "unique"
	case KindShared:
		return "shared"
	default:
		return "unknown"
	}
}

// Observer receives ownership events. Implementations must be cheap and must
// not call back into the handle that produced the event.
//
// typ is the label of the managed type (see [WithName]).
type Observer interface {
	// Created is called when a handle takes a new object: a Unique receiving a
	// non-nil pointer, or a fresh Shared family.
	Created(kind Kind, typ string)
	// Destroyed is called after the destructor of an object ran.
	Destroyed(kind Kind, typ string)
	// Released is called when a Unique hands its object back to the caller.
	Released(typ string)
	// Joined is called when an owner joins an existing Shared family.
	Joined(typ string)
	// Left is called when an owner leaves a Shared family, including the last one.
	Left(typ string)
	// LockFailed is called when Weak.Lock finds its family gone.
	LockFailed(typ string)
}

type observerBox struct {
	o Observer
}

var observerPtr atomic.Pointer[observerBox]

// SetObserver installs o as the process-wide observer. nil disables events.
// SetObserver is safe for concurrent use.
func SetObserver(o Observer) {
	if o == nil {
		observerPtr.Store(nil)
		return
	}
	observerPtr.Store(&observerBox{o: o})
}

// observer returns the installed observer or nil.
func observer() Observer {
	if b := observerPtr.Load(); b != nil {
		return b.o
	}
	return nil
}
