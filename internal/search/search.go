package search

// Option configures a search via functional arguments.
type Option func(*Options)

// Options holds traversal parameters and observation hooks.
type Options struct {
	// Mode selects FIFO (breadth-first) or LIFO (depth-first) popping.
	Mode Mode

	// StrictFrontier validates each candidate against the live frontier,
	// including siblings accepted earlier in the same expansion. When false,
	// all candidates of one expansion are checked against the frontier as it
	// was right after the pop and survivors are appended together.
	StrictFrontier bool

	// OnEnqueue is called after a node enters the frontier.
	OnEnqueue func(n Node)

	// OnDequeue is called when a node is popped, before the goal check.
	OnDequeue func(n Node)

	// OnReject is called for every candidate that fails validation.
	OnReject func(n Node, reason Rejection)
}

// DefaultOptions returns breadth-first batch traversal with no-op hooks.
func DefaultOptions() Options {
	return Options{
		Mode:      BreadthFirst,
		OnEnqueue: func(Node) {},
		OnDequeue: func(Node) {},
		OnReject:  func(Node, Rejection) {},
	}
}

// WithMode sets the traversal mode.
func WithMode(m Mode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithStrictFrontier enables per-candidate frontier validation.
func WithStrictFrontier() Option {
	return func(o *Options) { o.StrictFrontier = true }
}

// WithOnEnqueue registers a hook run for every queued node.
func WithOnEnqueue(fn func(n Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers a hook run for every popped node.
func WithOnDequeue(fn func(n Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// WithOnReject registers a hook run for every rejected candidate.
func WithOnReject(fn func(n Node, reason Rejection)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnReject = fn
		}
	}
}

// engine holds the state of one search call.
type engine struct {
	opts     Options
	metrics  []Metric
	goal     float64
	arena    *Arena
	frontier *Frontier
	strategy Strategy
	res      *Result
}

// Search returns the step labels leading from a seed metric to goal, or an
// empty slice when the frontier is exhausted.
func Search(metrics []Metric, goal float64, mode Mode) []string {
	return Run(metrics, goal, WithMode(mode)).Steps
}

// Run performs a full search and reports its outcome with counters.
func Run(metrics []Metric, goal float64, opts ...Option) *Result {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	normalized := make([]Metric, len(metrics))
	for i, m := range metrics {
		normalized[i] = Metric{Name: m.Name, Value: Normalize(m.Value)}
	}

	e := &engine{
		opts:     o,
		metrics:  normalized,
		goal:     goal,
		arena:    NewArena(len(metrics)),
		frontier: NewFrontier(),
		strategy: o.Mode.Strategy(),
		res:      &Result{State: Running, Steps: []string{}},
	}
	e.seed()
	e.loop()
	return e.res
}

// seed queues one root per non-zero metric in input order.
func (e *engine) seed() {
	for _, m := range e.metrics {
		if m.Value == 0 {
			continue
		}
		e.push(Node{
			Value:  m.Value,
			Metric: m.Name,
			Label:  Format(m.Value) + " " + m.Name,
			Parent: NoParent,
		})
	}
}

// loop pops until the goal is found or the frontier runs dry.
func (e *engine) loop() {
	for {
		id, ok := e.strategy.Pop(e.frontier)
		if !ok {
			e.res.State = Exhausted
			return
		}
		current := e.arena.Get(id)
		e.opts.OnDequeue(current)

		if current.Value == e.goal {
			e.res.State = Succeeded
			e.res.Path = e.arena.PathTo(id)
			e.res.Steps = Labels(e.res.Path)
			return
		}
		e.res.Expanded++
		e.expand(current)
	}
}

// expand generates every neighbor of current and queues the valid ones in
// catalog order.
func (e *engine) expand(current Node) {
	var accepted []Node
	for _, m := range e.metrics {
		for _, c := range Candidates(current.Value, m) {
			neighbor := Node{
				Value:    c.Value,
				Metric:   m.Name,
				Label:    c.Description + " = " + Format(c.Value),
				Parent:   current.ID,
				Distance: current.Distance + 1 + c.ExtraCost,
			}
			if reason := Validate(current, neighbor, e.goal, e.frontier); reason != Accepted {
				e.res.Rejected++
				e.opts.OnReject(neighbor, reason)
				continue
			}
			if e.opts.StrictFrontier {
				e.push(neighbor)
				continue
			}
			accepted = append(accepted, neighbor)
		}
	}
	for _, n := range accepted {
		e.push(n)
	}
}

// push stores n in the arena and appends it to the frontier.
func (e *engine) push(n Node) {
	id := e.arena.Add(n)
	stored := e.arena.Get(id)
	e.frontier.Push(stored)
	e.res.Enqueued++
	e.opts.OnEnqueue(stored)
}
