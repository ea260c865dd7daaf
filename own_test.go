package own

// destroyLog records the ids of destroyed widgets in destruction order.
type destroyLog struct {
	ids []int
}

func (l *destroyLog) count() int {
	if l == nil {
		return 0
	}
	return len(l.ids)
}

// widget is a destruction-counting stub.
type widget struct {
	id  int
	log *destroyLog
}

func (w *widget) Destroy() {
	if w.log != nil {
		w.log.ids = append(w.log.ids, w.id)
	}
}

func newWidget(id int, log *destroyLog) *widget {
	return &widget{id: id, log: log}
}

// plain has no Destroy method.
type plain struct {
	n int
}

// link owns the next link in a chain and drops it when destroyed.
type link struct {
	id   int
	next Shared[link]
	log  *destroyLog
}

func (l *link) Destroy() {
	l.log.ids = append(l.log.ids, l.id)
	l.next.Drop()
}
