package diffusion

import (
	"fmt"
	"math/rand/v2"

	"github.com/gilchrisn/influence-maximization/pkg/graph"
)

const (
	// DefaultProbability is the fixed Independent Cascade arc probability
	DefaultProbability = 0.1
	// DefaultWeightCap is the sum each node's Linear Threshold weights are normalised to
	DefaultWeightCap = 0.9

	weightTolerance = 1e-9
)

// ParamKind distinguishes the two forms of edge parameters
type ParamKind int

const (
	// Probability parameters hold per-arc activation probabilities (IC)
	Probability ParamKind = iota
	// Weight parameters hold per-arc influence weights (LT)
	Weight
)

func (k ParamKind) String() string {
	switch k {
	case Probability:
		return "probability"
	case Weight:
		return "weight"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// Params holds one non-negative value per directed arc, stored by owning node
// and aligned with the graph adjacency: Values[v][j] belongs to the arc
// between v and g.Adjacency[v][j].
//
// Independent Cascade reads Values[u][j] as the probability that u activates
// its j-th neighbor. Linear Threshold reads Values[v][j] as the weight v gives
// to its j-th neighbor, so the entries of v sum to at most the weight cap.
//
// Params are immutable once generated and may be shared between goroutines.
type Params struct {
	Kind   ParamKind
	Values [][]float64
}

// Value returns the parameter of the arc owned by v towards its j-th neighbor
func (p *Params) Value(v, j int) float64 { return p.Values[v][j] }

// Get looks up the parameter owned by u for neighbor v by node identifier
func (p *Params) Get(g *graph.Graph, u, v string) (float64, bool) {
	ui, ok := g.Index(u)
	if !ok {
		return 0, false
	}
	vi, ok := g.Index(v)
	if !ok {
		return 0, false
	}
	for j, n := range g.Neighbors(ui) {
		if n == vi {
			return p.Values[ui][j], true
		}
	}
	return 0, false
}

// Mapping returns the parameters as node -> neighbor -> value
func (p *Params) Mapping(g *graph.Graph) map[string]map[string]float64 {
	mapping := make(map[string]map[string]float64, g.NumNodes())
	for v, neighbors := range g.Adjacency {
		row := make(map[string]float64, len(neighbors))
		for j, n := range neighbors {
			row[g.ID(n)] = p.Values[v][j]
		}
		mapping[g.ID(v)] = row
	}
	return mapping
}

// Validate checks that the parameters match the graph and lie in [0, 1].
// For weights, the entries owned by each node must also sum to at most 1.
func (p *Params) Validate(g *graph.Graph) error {
	if p == nil {
		return fmt.Errorf("%w: nil parameters", ErrParamsMismatch)
	}
	if len(p.Values) != g.NumNodes() {
		return fmt.Errorf("%w: %d rows for %d nodes", ErrParamsMismatch, len(p.Values), g.NumNodes())
	}

	for v, row := range p.Values {
		if len(row) != g.Degree(v) {
			return fmt.Errorf("%w: node %q has %d values for %d neighbors",
				ErrParamsMismatch, g.ID(v), len(row), g.Degree(v))
		}

		sum := 0.0
		for j, value := range row {
			if !(value >= 0 && value <= 1) {
				return fmt.Errorf("%w: arc %q-%q has value %f",
					ErrParamOutOfRange, g.ID(v), g.ID(g.Adjacency[v][j]), value)
			}
			sum += value
		}

		if p.Kind == Weight && sum > 1+weightTolerance {
			return fmt.Errorf("%w: weights of node %q sum to %f", ErrParamOutOfRange, g.ID(v), sum)
		}
	}
	return nil
}

// GenerateProbabilities assigns the same activation probability to every arc
func GenerateProbabilities(g *graph.Graph, prob float64) (*Params, error) {
	if !(prob >= 0 && prob <= 1) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidProbability, prob)
	}

	values := make([][]float64, g.NumNodes())
	for v, neighbors := range g.Adjacency {
		row := make([]float64, len(neighbors))
		for j := range row {
			row[j] = prob
		}
		values[v] = row
	}

	return &Params{Kind: Probability, Values: values}, nil
}

// GenerateWeights draws one random positive value per arc and normalises the
// values owned by each node to sum to weightCap. Nodes are visited in index
// order and arcs in adjacency order, so a fixed rng seed reproduces the
// parameters exactly. Isolated nodes get an empty row.
func GenerateWeights(g *graph.Graph, weightCap float64, rng *rand.Rand) (*Params, error) {
	if !(weightCap >= 0 && weightCap <= 1) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidWeightCap, weightCap)
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	values := make([][]float64, g.NumNodes())
	for v, neighbors := range g.Adjacency {
		row := make([]float64, len(neighbors))
		if len(row) == 0 {
			values[v] = row
			continue
		}

		total := 0.0
		for j := range row {
			row[j] = positiveDraw(rng)
			total += row[j]
		}
		for j := range row {
			row[j] = row[j] / total * weightCap
		}
		values[v] = row
	}

	return &Params{Kind: Weight, Values: values}, nil
}

// positiveDraw returns a uniform value in (0, 1)
func positiveDraw(rng *rand.Rand) float64 {
	for {
		if x := rng.Float64(); x > 0 {
			return x
		}
	}
}
