package diffusion

import (
	"math/rand/v2"

	"github.com/gilchrisn/influence-maximization/pkg/graph"
)

// IndependentCascade gives every newly activated node a single chance to
// activate each of its inactive neighbors, succeeding when a uniform draw in
// [0, 1) is strictly below the arc probability.
type IndependentCascade struct{}

// Name returns the model name
func (IndependentCascade) Name() string { return IndependentCascadeName }

// Kind returns the parameter form the model reads
func (IndependentCascade) Kind() ParamKind { return Probability }

// Simulate runs one cascade and returns the number of activated nodes
func (IndependentCascade) Simulate(g *graph.Graph, params *Params, seeds []int, rng *rand.Rand) int {
	active := make([]bool, g.NumNodes())
	frontier := activateSeeds(active, seeds)
	activated := len(frontier)

	var next []int
	for len(frontier) > 0 {
		next = next[:0]
		for _, u := range frontier {
			probs := params.Values[u]
			for j, v := range g.Adjacency[u] {
				if active[v] {
					continue
				}
				if rng.Float64() < probs[j] {
					active[v] = true
					next = append(next, v)
				}
			}
		}

		activated += len(next)
		frontier, next = next, frontier
	}

	return activated
}
