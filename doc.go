// Package own provides explicit ownership handles for heap objects whose
// lifetime must end at a well defined point rather than whenever the garbage
// collector gets to them.
//
// # Overview
//
// Go reclaims memory on its own, but many objects carry resources or side
// effects that must run exactly once: GPU buffers, file descriptors, pooled
// slices, engine actors that unregister themselves. own gives such objects an
// owner and a destructor:
//
//   - [Unique]: sole owner of a *T. Move-only.
//   - [Shared]: one member of a family of owners sharing a *T and a reference
//     count. The destructor runs when the last member drops.
//   - [Weak]: non-owning observer of a [Shared] family. [Weak.Lock] promotes it
//     to a [Shared] while the family is alive and yields an empty handle
//     afterwards.
//   - [Slot]: a process-wide single-instance holder.
//
// # Quick Start
//
//	w := own.MakeShared(Widget{ID: 7})
//	defer w.Drop()
//
//	other := w.Clone() // count == 2
//	other.Drop()       // count == 1
//
//	back := w.Weak()
//	if s := back.Lock(); !s.IsNull() {
//	    defer s.Drop()
//	    s.Value().Render()
//	}
//
// # Destructors
//
// When a handle frees its object it calls, in order of precedence, the
// deleter passed with [WithDeleter], or Destroy when *T implements
// [Destroyer]. Objects with neither are simply released to the garbage
// collector. A destructor runs exactly once per object.
//
// # Copying
//
// [Unique] and [Shared] embed a noCopy marker, so go vet reports plain
// assignments and by-value parameters of these types. Use [Shared.Clone] to
// add an owner and the Move methods to transfer one. [Weak] holds no count and
// may be copied freely.
//
// # Concurrency
//
// Reference counts are plain integers. A family must not be touched from more
// than one goroutine without external synchronization. Only the package
// logger, the observer and [Slot] contents are stored atomically.
package own
