package search

// entry is a queued node reference with the fields dedup needs.
type entry struct {
	id     int
	value  float64
	metric string
}

// Frontier is the ordered collection of pending nodes. It keeps occurrence
// counts of queued values and metric names so dedup checks are O(1).
// A Frontier is owned by a single search and is not safe for concurrent use.
type Frontier struct {
	items   []entry
	values  map[float64]int
	metrics map[string]int
}

// NewFrontier creates an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		items:   make([]entry, 0),
		values:  make(map[float64]int),
		metrics: make(map[string]int),
	}
}

// Push appends n to the back of the frontier.
func (f *Frontier) Push(n Node) {
	f.items = append(f.items, entry{id: n.ID, value: n.Value, metric: n.Metric})
	f.values[n.Value]++
	f.metrics[n.Metric]++
}

// PopFront removes and returns the earliest-inserted node ID.
// Returns (id, true) on success, (0, false) if the frontier is empty.
func (f *Frontier) PopFront() (int, bool) {
	if len(f.items) == 0 {
		return 0, false
	}
	e := f.items[0]
	f.items = f.items[1:]
	f.forget(e)
	return e.id, true
}

// PopBack removes and returns the most recently inserted node ID.
func (f *Frontier) PopBack() (int, bool) {
	if len(f.items) == 0 {
		return 0, false
	}
	last := len(f.items) - 1
	e := f.items[last]
	f.items = f.items[:last]
	f.forget(e)
	return e.id, true
}

func (f *Frontier) forget(e entry) {
	if f.values[e.value]--; f.values[e.value] == 0 {
		delete(f.values, e.value)
	}
	if f.metrics[e.metric]--; f.metrics[e.metric] == 0 {
		delete(f.metrics, e.metric)
	}
}

// HasValue reports whether a queued node carries value v.
func (f *Frontier) HasValue(v float64) bool {
	return f.values[v] > 0
}

// HasMetric reports whether a queued node was produced by metric name.
func (f *Frontier) HasMetric(name string) bool {
	return f.metrics[name] > 0
}

// Len returns the number of queued nodes.
func (f *Frontier) Len() int {
	return len(f.items)
}

// IsEmpty returns true if nothing is queued.
func (f *Frontier) IsEmpty() bool {
	return len(f.items) == 0
}

// Strategy decides which end of the frontier is popped next.
type Strategy interface {
	Pop(f *Frontier) (int, bool)
}

type fifo struct{}

func (fifo) Pop(f *Frontier) (int, bool) { return f.PopFront() }

type lifo struct{}

func (lifo) Pop(f *Frontier) (int, bool) { return f.PopBack() }

// Strategy returns the pop strategy of m: FIFO for breadth-first, LIFO for
// depth-first.
func (m Mode) Strategy() Strategy {
	if m == DepthFirst {
		return lifo{}
	}
	return fifo{}
}
