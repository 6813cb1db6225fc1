package search

// Arena is an append-only node store. Nodes refer to their parent by ID, so
// the parent chain is a forest of indices with no live references.
type Arena struct {
	nodes []Node
}

// NewArena creates an arena with room for capacity nodes.
func NewArena(capacity int) *Arena {
	return &Arena{nodes: make([]Node, 0, capacity)}
}

// Add stores n, assigns its ID and returns it.
func (a *Arena) Add(n Node) int {
	n.ID = len(a.nodes)
	a.nodes = append(a.nodes, n)
	return n.ID
}

// Get returns the node with the given ID.
func (a *Arena) Get(id int) Node {
	return a.nodes[id]
}

// Len returns the number of stored nodes.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// PathTo walks parent links from id back to its root and returns the nodes
// in root-to-id order.
func (a *Arena) PathTo(id int) []Node {
	path := []Node{}
	for cur := id; cur != NoParent; cur = a.nodes[cur].Parent {
		path = append(path, a.nodes[cur])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Labels extracts the label of every node in path.
func Labels(path []Node) []string {
	labels := make([]string, len(path))
	for i, n := range path {
		labels[i] = n.Label
	}
	return labels
}
