package own

import (
	"errors"
	"strings"
	"testing"
)

func TestNewSharedCountIsOne(t *testing.T) {
	s := NewShared(newWidget(1, nil))
	defer s.Drop()
	if got := s.UseCount(); got != 1 {
		t.Errorf("UseCount() = %d, want 1", got)
	}
}

func TestNewSharedNil(t *testing.T) {
	s := NewShared[widget](nil)
	if !s.IsNull() || s.UseCount() != 0 {
		t.Errorf("NewShared(nil) = %s, want empty", s.String())
	}
}

func TestSharedCopyScenario(t *testing.T) {
	log := &destroyLog{}
	a := NewShared(newWidget(7, log))
	b := a.Clone()

	if got := a.UseCount(); got != 2 {
		t.Fatalf("count after Clone = %d, want 2", got)
	}
	if !a.SameFamily(&b) {
		t.Fatal("clone is not in the same family")
	}

	a.Drop()
	if got := b.UseCount(); got != 1 {
		t.Fatalf("count after dropping A = %d, want 1", got)
	}
	if log.count() != 0 {
		t.Fatal("object destroyed while B still owns it")
	}
	if b.Value().id != 7 {
		t.Fatalf("B sees widget %d, want 7", b.Value().id)
	}

	b.Drop()
	if len(log.ids) != 1 || log.ids[0] != 7 {
		t.Fatalf("destroy log = %v, want [7]", log.ids)
	}
}

func TestSharedJoinLeaveArithmetic(t *testing.T) {
	log := &destroyLog{}
	root := NewShared(newWidget(1, log))

	const k = 10
	owners := make([]Shared[widget], k)
	for i := range owners {
		owners[i] = root.Clone()
		if got, want := root.UseCount(), i+2; got != want {
			t.Fatalf("after %d joins count = %d, want %d", i+1, got, want)
		}
	}

	// Copy-assign into fresh targets: joins without releases.
	var extra [3]Shared[widget]
	for i := range extra {
		extra[i].Assign(&root)
	}
	if got, want := root.UseCount(), 1+k+len(extra); got != want {
		t.Fatalf("count = %d, want %d", got, want)
	}

	for i := range owners {
		owners[i].Drop()
	}
	for i := range extra {
		extra[i].Drop()
	}
	if got := root.UseCount(); got != 1 {
		t.Fatalf("count after releases = %d, want 1", got)
	}
	if log.count() != 0 {
		t.Fatal("object destroyed before the last owner dropped")
	}

	root.Drop()
	if log.count() != 1 {
		t.Fatalf("destroyed %d times, want exactly 1", log.count())
	}
	for i := range owners {
		owners[i].Drop()
	}
	if log.count() != 1 {
		t.Fatal("dropping already-dropped owners destroyed again")
	}
}

func TestSharedAssignReleasesPreviousFamily(t *testing.T) {
	log := &destroyLog{}
	a := NewShared(newWidget(1, log))
	b := NewShared(newWidget(2, log))

	b.Assign(&a)

	if len(log.ids) != 1 || log.ids[0] != 2 {
		t.Fatalf("destroy log = %v, want [2]", log.ids)
	}
	if got := a.UseCount(); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}
	if !a.SameFamily(&b) {
		t.Fatal("b did not join a's family")
	}

	a.Drop()
	b.Drop()
	if len(log.ids) != 2 || log.ids[1] != 1 {
		t.Fatalf("destroy log = %v, want [2 1]", log.ids)
	}
}

func TestSharedAssignSelf(t *testing.T) {
	log := &destroyLog{}
	a := NewShared(newWidget(1, log))
	a.Assign(&a)
	if got := a.UseCount(); got != 1 {
		t.Errorf("count after self-assign = %d, want 1", got)
	}
	if log.count() != 0 {
		t.Error("self-assign destroyed the object")
	}
	a.Drop()
}

func TestSharedAssignSameFamily(t *testing.T) {
	log := &destroyLog{}
	a := NewShared(newWidget(1, log))
	b := a.Clone()
	b.Assign(&a)
	if got := a.UseCount(); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
	a.Drop()
	b.Drop()
	if log.count() != 1 {
		t.Errorf("destroyed %d, want 1", log.count())
	}
}

func TestSharedAssignEmpty(t *testing.T) {
	log := &destroyLog{}
	a := NewShared(newWidget(1, log))
	var empty Shared[widget]
	a.Assign(&empty)
	if !a.IsNull() {
		t.Error("assigning an empty handle should empty the target")
	}
	if log.count() != 1 {
		t.Errorf("destroyed %d, want 1", log.count())
	}
}

func TestSharedMoveKeepsCount(t *testing.T) {
	log := &destroyLog{}
	a := NewShared(newWidget(1, log))
	keep := a.Clone()

	b := a.Move()
	if !a.IsNull() {
		t.Error("source should be empty after Move")
	}
	if got := b.UseCount(); got != 2 {
		t.Errorf("count after Move = %d, want 2", got)
	}

	var c Shared[widget]
	c.MoveFrom(&b)
	if !b.IsNull() {
		t.Error("source should be empty after MoveFrom")
	}
	if got := c.UseCount(); got != 2 {
		t.Errorf("count after MoveFrom = %d, want 2", got)
	}

	c.Drop()
	keep.Drop()
	if log.count() != 1 {
		t.Errorf("destroyed %d, want 1", log.count())
	}
}

func TestSharedMoveFromReleasesPrevious(t *testing.T) {
	log := &destroyLog{}
	a := NewShared(newWidget(1, log))
	b := NewShared(newWidget(2, log))

	b.MoveFrom(&a)
	if len(log.ids) != 1 || log.ids[0] != 2 {
		t.Fatalf("destroy log = %v, want [2]", log.ids)
	}
	if got := b.UseCount(); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}

	b.MoveFrom(&b)
	if b.IsNull() {
		t.Error("self-move emptied the handle")
	}
	b.Drop()
	if log.count() != 2 {
		t.Errorf("destroyed %d, want 2", log.count())
	}
}

func TestSharedEmptyOperationsAreNoOps(t *testing.T) {
	var s Shared[widget]
	c := s.Clone()
	if !c.IsNull() {
		t.Error("Clone of empty should be empty")
	}
	m := s.Move()
	if !m.IsNull() {
		t.Error("Move of empty should be empty")
	}
	if s.Get() != nil || s.UseCount() != 0 {
		t.Error("empty handle reports an object")
	}
	if s.SameFamily(&c) {
		t.Error("two empty handles should not be a family")
	}
	s.Drop()
	s.Drop()
}

func TestSharedValuePanicsWhenEmpty(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNull) {
			t.Fatalf("recover() = %v, want ErrNull", r)
		}
	}()
	var s Shared[widget]
	_ = s.Value()
}

func TestSharedDeleter(t *testing.T) {
	calls := 0
	s := MakeShared(plain{n: 3}, WithDeleter(func(p *plain) {
		if p.n != 3 {
			t.Errorf("deleter got n = %d, want 3", p.n)
		}
		calls++
	}))
	c := s.Clone()
	s.Drop()
	if calls != 0 {
		t.Fatal("deleter ran with an owner left")
	}
	c.Drop()
	if calls != 1 {
		t.Fatalf("deleter calls = %d, want 1", calls)
	}
}

func TestSharedAssignFromInsideReleasedObject(t *testing.T) {
	log := &destroyLog{}
	b := NewShared(&link{id: 2, log: log})
	a := NewShared(&link{id: 1, log: log})
	a.Value().next.MoveFrom(&b)

	// a is the only owner of link 1, and the source handle lives inside it.
	a.Assign(&a.Value().next)

	if len(log.ids) != 1 || log.ids[0] != 1 {
		t.Fatalf("destroy log = %v, want [1]", log.ids)
	}
	if a.IsNull() || a.Value().id != 2 {
		t.Fatalf("a = %s, want live link 2", a.String())
	}
	if got := a.UseCount(); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
	a.Drop()
	if len(log.ids) != 2 || log.ids[1] != 2 {
		t.Fatalf("destroy log = %v, want [1 2]", log.ids)
	}
}

func TestSharedString(t *testing.T) {
	s := NewShared(newWidget(1, nil), WithName[widget]("widget"))
	c := s.Clone()
	defer s.Drop()
	defer c.Drop()
	if got := s.String(); got != "own.Shared[widget]{count=2}" {
		t.Errorf("String() = %q", got)
	}
	var e Shared[plain]
	if got := e.String(); !strings.HasSuffix(got, "{empty}") {
		t.Errorf("String() = %q, want suffix {empty}", got)
	}
}

func TestSharedOverReleasePanics(t *testing.T) {
	s := NewShared(&plain{})
	ctl := s.ctl
	s.Drop()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on over-release")
		}
	}()
	ctl.decref()
}

func TestTypeName(t *testing.T) {
	if got := typeName[widget](); got != "own.widget" {
		t.Errorf("typeName[widget]() = %q, want own.widget", got)
	}
}
