package influence

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/network"

	"github.com/gilchrisn/influence-maximization/pkg/graph"
)

// Candidate strategies
const (
	StrategyAll        = "all"
	StrategyCentrality = "centrality"
	StrategyList       = "list"
)

const (
	pageRankDamping   = 0.85
	pageRankTolerance = 1e-6
)

// Candidates builds the candidate pool for a strategy, ordered by ascending
// node identifier
func Candidates(g *graph.Graph, strategy string, topN int, nodes []string) ([]int, error) {
	switch strategy {
	case StrategyAll, "":
		return g.SortedNodes(), nil
	case StrategyCentrality:
		return CentralityCandidates(g, topN), nil
	case StrategyList:
		indices := make([]int, 0, len(nodes))
		for _, id := range nodes {
			i, err := g.MustIndex(id)
			if err != nil {
				return nil, fmt.Errorf("candidate list: %w", err)
			}
			indices = append(indices, i)
		}
		return normalizeCandidates(g, indices), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// CentralityCandidates returns the union of the topN/2 nodes by betweenness
// and the topN/2 nodes by PageRank. This narrows the greedy search to
// structurally prominent nodes on large graphs.
func CentralityCandidates(g *graph.Graph, topN int) []int {
	if g.NumNodes() == 0 || topN <= 0 {
		return []int{}
	}
	half := topN / 2
	if half == 0 {
		half = 1
	}

	betweenness := network.Betweenness(g.ToGonum())
	pageRank := network.PageRank(g.ToGonumDirected(), pageRankDamping, pageRankTolerance)

	union := append(topByScore(g, betweenness, half), topByScore(g, pageRank, half)...)
	return normalizeCandidates(g, union)
}

// topByScore ranks nodes by descending score; equal scores keep identifier
// order. Scores are rounded to 1e-9 first since gonum accumulates them in
// map order.
func topByScore(g *graph.Graph, scores map[int64]float64, n int) []int {
	nodes := g.SortedNodes()
	rounded := make([]float64, g.NumNodes())
	for id, score := range scores {
		rounded[id] = math.Round(score*1e9) / 1e9
	}

	sort.SliceStable(nodes, func(a, b int) bool {
		return rounded[nodes[a]] > rounded[nodes[b]]
	})

	if n > len(nodes) {
		n = len(nodes)
	}
	return nodes[:n]
}

// normalizeCandidates drops duplicates and out-of-range indices and orders
// the rest by ascending node identifier. This order is the tie-break order of
// the greedy selector.
func normalizeCandidates(g *graph.Graph, candidates []int) []int {
	seen := make(map[int]struct{}, len(candidates))
	out := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if c < 0 || c >= g.NumNodes() {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	g.SortByID(out)
	return out
}
