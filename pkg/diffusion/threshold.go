package diffusion

import (
	"math/rand/v2"

	"github.com/gilchrisn/influence-maximization/pkg/graph"
)

// ThresholdFunc draws the activation threshold of node at the start of a run
type ThresholdFunc func(rng *rand.Rand, node int) float64

// UniformThreshold draws thresholds uniformly from [0, 1)
func UniformThreshold(rng *rand.Rand, _ int) float64 { return rng.Float64() }

// ConstantThreshold returns a ThresholdFunc that ignores the random source
func ConstantThreshold(value float64) ThresholdFunc {
	return func(*rand.Rand, int) float64 { return value }
}

// LinearThreshold activates an inactive node once the summed weight it gives
// to its active neighbors reaches its personal threshold. Thresholds are
// drawn for every node at the start of each run; rounds are synchronous, so a
// round only sees activations from earlier rounds.
//
// Only nodes with at least one active neighbor are evaluated, so isolated
// nodes activate only as seeds.
type LinearThreshold struct {
	// Threshold overrides the threshold draw; nil means UniformThreshold.
	Threshold ThresholdFunc
}

// Name returns the model name
func (LinearThreshold) Name() string { return LinearThresholdName }

// Kind returns the parameter form the model reads
func (LinearThreshold) Kind() ParamKind { return Weight }

// Simulate runs one threshold process and returns the number of activated nodes
func (lt LinearThreshold) Simulate(g *graph.Graph, params *Params, seeds []int, rng *rand.Rand) int {
	n := g.NumNodes()
	draw := lt.Threshold
	if draw == nil {
		draw = UniformThreshold
	}

	thresholds := make([]float64, n)
	for v := range thresholds {
		thresholds[v] = draw(rng, v)
	}

	active := make([]bool, n)
	frontier := activateSeeds(active, seeds)
	activated := len(frontier)

	// seen[v] == round+1 marks v as already evaluated in this round
	seen := make([]int, n)
	var candidates, next []int

	for round := 0; len(frontier) > 0; round++ {
		candidates = candidates[:0]
		for _, u := range frontier {
			for _, v := range g.Adjacency[u] {
				if active[v] || seen[v] == round+1 {
					continue
				}
				seen[v] = round + 1
				candidates = append(candidates, v)
			}
		}

		next = next[:0]
		for _, v := range candidates {
			influence := 0.0
			weights := params.Values[v]
			for j, w := range g.Adjacency[v] {
				if active[w] {
					influence += weights[j]
				}
			}
			if influence >= thresholds[v] {
				next = append(next, v)
			}
		}

		for _, v := range next {
			active[v] = true
		}
		activated += len(next)
		frontier, next = next, frontier
	}

	return activated
}
