package graph

import (
	"gonum.org/v1/gonum/graph/simple"
)

// ToGonum converts the graph to a gonum undirected graph.
// Gonum node IDs are the dense indices of this graph.
func (g *Graph) ToGonum() *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for i := range g.NodeIDs {
		ug.AddNode(simple.Node(int64(i)))
	}

	for u, neighbors := range g.Adjacency {
		for _, v := range neighbors {
			if u < v {
				ug.SetEdge(simple.Edge{F: simple.Node(int64(u)), T: simple.Node(int64(v))})
			}
		}
	}
	return ug
}

// ToGonumDirected converts the graph to a gonum directed graph holding both
// arcs of every undirected edge, as required by network.PageRank.
func (g *Graph) ToGonumDirected() *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for i := range g.NodeIDs {
		dg.AddNode(simple.Node(int64(i)))
	}

	for u, neighbors := range g.Adjacency {
		for _, v := range neighbors {
			dg.SetEdge(simple.Edge{F: simple.Node(int64(u)), T: simple.Node(int64(v))})
		}
	}
	return dg
}
