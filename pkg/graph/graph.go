package graph

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

var (
	// ErrNodeNotFound is returned when a node identifier is not part of the graph.
	ErrNodeNotFound = errors.New("graph: node not found")
	// ErrEmptyNodeID is returned when an empty identifier is added.
	ErrEmptyNodeID = errors.New("graph: node id must not be empty")
)

// Graph represents an unweighted undirected simple graph.
// Nodes carry an opaque string identifier and a dense index in [0, NumNodes).
// Once built, a Graph is read-only and safe for concurrent readers.
type Graph struct {
	NodeIDs   []string `json:"nodes"`
	Adjacency [][]int  `json:"-"` // adjacency[i] = neighbor indices of node i, insertion order

	index     map[string]int
	edges     map[[2]int]struct{}
	selfLoops int
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		NodeIDs:   make([]string, 0),
		Adjacency: make([][]int, 0),
		index:     make(map[string]int),
		edges:     make(map[[2]int]struct{}),
	}
}

// AddNode adds a node if it does not exist yet and returns its index
func (g *Graph) AddNode(id string) (int, error) {
	if id == "" {
		return -1, ErrEmptyNodeID
	}
	if i, exists := g.index[id]; exists {
		return i, nil
	}

	i := len(g.NodeIDs)
	g.index[id] = i
	g.NodeIDs = append(g.NodeIDs, id)
	g.Adjacency = append(g.Adjacency, nil)
	return i, nil
}

// AddEdge adds an undirected edge between u and v, creating missing nodes.
// Self-loops register their node but never take part in diffusion, and
// repeated edges are collapsed.
func (g *Graph) AddEdge(u, v string) error {
	ui, err := g.AddNode(u)
	if err != nil {
		return err
	}
	vi, err := g.AddNode(v)
	if err != nil {
		return err
	}

	if ui == vi {
		g.selfLoops++
		return nil
	}

	key := edgeKey(ui, vi)
	if _, exists := g.edges[key]; exists {
		return nil
	}
	g.edges[key] = struct{}{}

	g.Adjacency[ui] = append(g.Adjacency[ui], vi)
	g.Adjacency[vi] = append(g.Adjacency[vi], ui)
	return nil
}

// NumNodes returns the number of nodes
func (g *Graph) NumNodes() int { return len(g.NodeIDs) }

// NumEdges returns the number of distinct undirected edges (self-loops excluded)
func (g *Graph) NumEdges() int { return len(g.edges) }

// SelfLoops returns how many self-loops were dropped while building
func (g *Graph) SelfLoops() int { return g.selfLoops }

// Neighbors returns the neighbor indices of node i. The slice must not be modified.
func (g *Graph) Neighbors(i int) []int {
	if i < 0 || i >= len(g.Adjacency) {
		return nil
	}
	return g.Adjacency[i]
}

// Degree returns the number of neighbors of node i
func (g *Graph) Degree(i int) int { return len(g.Neighbors(i)) }

// HasEdge reports whether u and v are adjacent
func (g *Graph) HasEdge(ui, vi int) bool {
	_, exists := g.edges[edgeKey(ui, vi)]
	return exists
}

// Index returns the dense index of a node identifier
func (g *Graph) Index(id string) (int, bool) {
	i, exists := g.index[id]
	return i, exists
}

// MustIndex returns the dense index of id or ErrNodeNotFound
func (g *Graph) MustIndex(id string) (int, error) {
	i, exists := g.index[id]
	if !exists {
		return -1, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return i, nil
}

// ID returns the identifier of node i
func (g *Graph) ID(i int) string { return g.NodeIDs[i] }

// IDs maps indices back to identifiers
func (g *Graph) IDs(indices []int) []string {
	ids := make([]string, len(indices))
	for k, i := range indices {
		ids[k] = g.NodeIDs[i]
	}
	return ids
}

// Nodes returns all node indices in index order
func (g *Graph) Nodes() []int {
	nodes := make([]int, len(g.NodeIDs))
	for i := range nodes {
		nodes[i] = i
	}
	return nodes
}

// SortedNodes returns all node indices ordered by ascending identifier
func (g *Graph) SortedNodes() []int {
	nodes := g.Nodes()
	g.SortByID(nodes)
	return nodes
}

// SortByID orders indices by ascending node identifier in place.
// Identifiers that parse as integers compare numerically and sort before
// non-numeric identifiers, which compare lexicographically.
func (g *Graph) SortByID(nodes []int) {
	sort.SliceStable(nodes, func(a, b int) bool {
		return LessID(g.NodeIDs[nodes[a]], g.NodeIDs[nodes[b]])
	})
}

// LessID is the canonical ordering of node identifiers
func LessID(a, b string) bool {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		if ai != bi {
			return ai < bi
		}
		return a < b
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}

// Validate checks graph consistency
func (g *Graph) Validate() error {
	if len(g.NodeIDs) != len(g.Adjacency) {
		return fmt.Errorf("graph: %d node ids but %d adjacency lists", len(g.NodeIDs), len(g.Adjacency))
	}

	n := len(g.NodeIDs)
	arcs := 0
	for i, neighbors := range g.Adjacency {
		for _, j := range neighbors {
			if j < 0 || j >= n {
				return fmt.Errorf("graph: invalid neighbor %d for node %d", j, i)
			}
			if j == i {
				return fmt.Errorf("graph: self-loop stored for node %d", i)
			}
			if !g.HasEdge(i, j) {
				return fmt.Errorf("graph: arc %d-%d has no edge record", i, j)
			}
		}
		arcs += len(neighbors)
	}

	if arcs != 2*len(g.edges) {
		return fmt.Errorf("graph: adjacency holds %d arcs, expected %d", arcs, 2*len(g.edges))
	}
	return nil
}

func edgeKey(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}
