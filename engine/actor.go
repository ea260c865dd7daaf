package engine

import (
	"github.com/google/uuid"

	"github.com/gogpu/own"
)

// Actor is a node of the scene. It exclusively owns its shape, shares
// ownership of its children and observes its parent without owning it, so a
// parent and child never keep each other alive.
//
// Actors live behind own.Shared handles. Use [Attach] to build the tree.
type Actor struct {
	ID   uuid.UUID
	Name string

	// Text is drawn at the actor position when labels are enabled.
	Text string

	// Position is relative to the parent, or absolute for a root actor.
	Position Vec2

	shape    own.Unique[Shape]
	parent   own.Weak[Actor]
	children []own.Shared[Actor]
}

// NewActor returns an actor that takes over the shape owned by shape.
// shape is left empty. A nil shape yields an actor that draws nothing but
// its text.
func NewActor(name string, shape *own.Unique[Shape]) *Actor {
	a := &Actor{ID: uuid.New(), Name: name}
	if shape != nil {
		a.shape.Assign(shape)
	}
	return a
}

// Shape returns the actor's shape or nil.
func (a *Actor) Shape() *Shape {
	return a.shape.Get()
}

// Parent returns a new owner of the parent, or an empty handle when the
// actor is a root or its parent has been destroyed. The caller must drop it.
func (a *Actor) Parent() own.Shared[Actor] {
	return a.parent.Lock()
}

// HasParent reports whether the actor was attached and its parent is alive.
func (a *Actor) HasParent() bool {
	return !a.parent.Expired()
}

// WorldPosition returns the absolute position. A child whose parent is gone
// falls back to its local position.
func (a *Actor) WorldPosition() Vec2 {
	p := a.parent.Lock()
	if p.IsNull() {
		return a.Position
	}
	defer p.Drop()
	return p.Value().WorldPosition().Add(a.Position)
}

// NumChildren returns the number of children.
func (a *Actor) NumChildren() int {
	return len(a.children)
}

// Child returns the i-th child handle. The handle stays owned by a.
func (a *Actor) Child(i int) *own.Shared[Actor] {
	return &a.children[i]
}

// Detach drops a's ownership of the child with the given id and clears the
// child's parent link. It reports whether such a child existed.
func (a *Actor) Detach(id uuid.UUID) bool {
	for i := range a.children {
		c := a.children[i].Value()
		if c.ID != id {
			continue
		}
		c.parent.Reset()
		a.children[i].Drop()
		copy(a.children[i:], a.children[i+1:])
		a.children[len(a.children)-1] = own.Shared[Actor]{}
		a.children = a.children[:len(a.children)-1]
		return true
	}
	return false
}

// Destroy drops the shape and every child owned by a.
func (a *Actor) Destroy() {
	for i := range a.children {
		a.children[i].Drop()
	}
	a.children = nil
	a.shape.Drop()
	a.parent.Reset()
}

// Attach makes child a child of parent. parent gains an owner of child and
// child observes parent weakly. A child that already has a live parent is
// detached from it first. Attaching to the current parent does nothing.
func Attach(parent, child *own.Shared[Actor]) {
	c := child.Value()
	old := c.parent.Lock()
	if !old.IsNull() {
		same := old.SameFamily(parent)
		if !same {
			old.Value().Detach(c.ID)
		}
		old.Drop()
		if same {
			return
		}
	}
	c.parent = parent.Weak()
	p := parent.Value()
	p.children = append(p.children, child.Clone())
}
