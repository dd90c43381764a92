package influence

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/gilchrisn/influence-maximization/pkg/diffusion"
	"github.com/gilchrisn/influence-maximization/pkg/graph"
)

// DefaultNumSimulations is the number of runs behind one spread estimate
const DefaultNumSimulations = 100

// SpreadEstimate is the Monte-Carlo estimate of the expected spread of one seed set
type SpreadEstimate struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	StdErr float64 `json:"std_err" yaml:"std_err"`
	Runs   int     `json:"runs" yaml:"runs"`
}

// Estimator runs a diffusion model repeatedly and averages the activated
// node counts. It never mutates the graph or the parameters, so one
// Estimator may serve concurrent callers.
type Estimator struct {
	Graph          *graph.Graph
	Params         *diffusion.Params
	Model          diffusion.Model
	NumSimulations int
	Seed           uint64
	Workers        int
}

// NewEstimator validates its inputs and returns an Estimator
func NewEstimator(g *graph.Graph, params *diffusion.Params, model diffusion.Model, numSimulations int, seed uint64) (*Estimator, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if model == nil {
		return nil, ErrNilModel
	}
	if numSimulations <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSimulations, numSimulations)
	}
	if err := diffusion.CheckParams(model, g, params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	return &Estimator{
		Graph:          g,
		Params:         params,
		Model:          model,
		NumSimulations: numSimulations,
		Seed:           seed,
		Workers:        1,
	}, nil
}

// Estimate returns the mean spread of seeds over NumSimulations independent
// runs, spreading runs over Workers goroutines. The result is identical for
// any worker count.
func (e *Estimator) Estimate(ctx context.Context, seeds []int) (SpreadEstimate, error) {
	for _, s := range seeds {
		if s < 0 || s >= e.Graph.NumNodes() {
			return SpreadEstimate{}, fmt.Errorf("%w: index %d", graph.ErrNodeNotFound, s)
		}
	}

	counts := make([]float64, e.NumSimulations)
	err := parallelFor(ctx, e.NumSimulations, e.Workers, func(run int) {
		counts[run] = float64(e.Model.Simulate(e.Graph, e.Params, seeds, NewStream(e.Seed, 0, run)))
	})
	if err != nil {
		return SpreadEstimate{}, err
	}

	simulationsTotal.WithLabelValues(e.Model.Name()).Add(float64(e.NumSimulations))
	return summarize(counts), nil
}

// EstimateIDs is Estimate for node identifiers
func (e *Estimator) EstimateIDs(ctx context.Context, ids []string) (SpreadEstimate, error) {
	seeds := make([]int, len(ids))
	for i, id := range ids {
		idx, err := e.Graph.MustIndex(id)
		if err != nil {
			return SpreadEstimate{}, err
		}
		seeds[i] = idx
	}
	return e.Estimate(ctx, seeds)
}

// estimateStream runs all simulations sequentially on the given stream key.
// The greedy selector parallelises over candidates and calls this per candidate.
func (e *Estimator) estimateStream(seeds []int, key uint64) SpreadEstimate {
	counts := make([]float64, e.NumSimulations)
	for run := range counts {
		counts[run] = float64(e.Model.Simulate(e.Graph, e.Params, seeds, NewStream(e.Seed, key, run)))
	}
	return summarize(counts)
}

func summarize(counts []float64) SpreadEstimate {
	est := SpreadEstimate{Runs: len(counts)}
	if len(counts) == 0 {
		return est
	}
	if len(counts) == 1 {
		est.Mean = counts[0]
		return est
	}

	est.Mean, est.StdDev = stat.MeanStdDev(counts, nil)
	est.StdErr = stat.StdErr(est.StdDev, float64(len(counts)))
	if math.IsNaN(est.StdDev) {
		est.StdDev, est.StdErr = 0, 0
	}
	return est
}
