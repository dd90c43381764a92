// Package influence selects seed sets that maximise expected spread under a
// diffusion model.
//
// Spread is estimated by Monte-Carlo simulation (Estimator) and seeds are
// chosen by the standard greedy algorithm for monotone submodular functions,
// which reaches a (1 - 1/e) approximation of the optimal expected spread.
// Given the same graph, configuration and random seed, selection returns the
// same seeds and estimates for any number of workers.
package influence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gilchrisn/influence-maximization/pkg/diffusion"
	"github.com/gilchrisn/influence-maximization/pkg/graph"
)

// Selector runs greedy seed selection on top of an Estimator
type Selector struct {
	Estimator      *Estimator
	Workers        int
	EnableProgress bool
	Logger         zerolog.Logger
}

// NewSelector creates a selector using workers goroutines per round
func NewSelector(est *Estimator, workers int, logger zerolog.Logger) *Selector {
	return &Selector{
		Estimator:      est,
		Workers:        workers,
		EnableProgress: true,
		Logger:         logger,
	}
}

// Select picks up to k seeds from candidates (all nodes when candidates is
// nil). Each round estimates the spread of the current seeds plus every
// remaining candidate and keeps the strictly best one; ties go to the
// candidate with the smallest node identifier. Fewer than k seeds are
// returned when the pool runs out.
//
// Cancellation is honoured between rounds: the seeds chosen so far are
// returned together with the wrapped context error.
func (s *Selector) Select(ctx context.Context, candidates []int, k int) (*Result, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}

	startTime := time.Now()
	est := s.Estimator
	g := est.Graph
	modelName := est.Model.Name()

	var pool []int
	if candidates == nil {
		pool = g.SortedNodes()
	} else {
		pool = normalizeCandidates(g, candidates)
	}

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	capacity := min(k, len(pool))

	result := &Result{
		RunID:       uuid.New().String(),
		Model:       modelName,
		Seeds:       make([]string, 0, capacity),
		SeedIndices: make([]int, 0, capacity),
		Rounds:      make([]RoundInfo, 0, capacity),
		Statistics: Statistics{
			NumNodes:       g.NumNodes(),
			NumEdges:       g.NumEdges(),
			NumCandidates:  len(pool),
			K:              k,
			NumSimulations: est.NumSimulations,
			RandomSeed:     est.Seed,
			Workers:        workers,
		},
	}

	s.Logger.Info().
		Str("run_id", result.RunID).
		Str("model", modelName).
		Int("nodes", g.NumNodes()).
		Int("candidates", len(pool)).
		Int("k", k).
		Int("simulations", est.NumSimulations).
		Msg("Starting greedy seed selection")

	finish := func() {
		result.Statistics.RuntimeMS = time.Since(startTime).Milliseconds()
		result.Statistics.MemoryPeakMB = getMemoryUsage()
		selectionDuration.WithLabelValues(modelName).Observe(time.Since(startTime).Seconds())
	}

	selected := make([]bool, g.NumNodes())
	spreads := make([]SpreadEstimate, len(pool))
	remaining := make([]int, 0, len(pool))
	current := 0.0

	for round := 0; round < k; round++ {
		if err := ctx.Err(); err != nil {
			finish()
			return result, fmt.Errorf("selection stopped after %d of %d rounds: %w", round, k, err)
		}
		roundStart := time.Now()

		remaining = remaining[:0]
		for _, c := range pool {
			if !selected[c] {
				remaining = append(remaining, c)
			}
		}
		if len(remaining) == 0 {
			s.Logger.Info().Int("round", round).Msg("Candidate pool exhausted, stopping")
			break
		}

		base := result.SeedIndices
		err := parallelFor(ctx, len(remaining), workers, func(i int) {
			trial := make([]int, len(base)+1)
			copy(trial, base)
			trial[len(base)] = remaining[i]
			spreads[i] = est.estimateStream(trial, uint64(remaining[i])+1)
		})
		if err != nil {
			finish()
			return result, fmt.Errorf("selection stopped during round %d of %d: %w", round, k, err)
		}

		// Reduce in candidate order so the winner does not depend on scheduling
		best := -1
		bestSpread := -1.0
		for i := range remaining {
			if spreads[i].Mean > bestSpread {
				best = i
				bestSpread = spreads[i].Mean
			}
		}

		node := remaining[best]
		selected[node] = true
		result.SeedIndices = append(result.SeedIndices, node)
		result.Seeds = append(result.Seeds, g.ID(node))

		info := RoundInfo{
			Round:        round,
			Seed:         g.ID(node),
			Spread:       bestSpread,
			StdDev:       spreads[best].StdDev,
			MarginalGain: bestSpread - current,
			Candidates:   len(remaining),
			RuntimeMS:    time.Since(roundStart).Milliseconds(),
		}
		result.Rounds = append(result.Rounds, info)
		result.Spread = bestSpread
		result.SpreadStdDev = spreads[best].StdDev
		result.Statistics.CandidateEvaluations += len(remaining)
		result.Statistics.TotalSimulations += int64(len(remaining)) * int64(est.NumSimulations)
		current = bestSpread

		simulationsTotal.WithLabelValues(modelName).Add(float64(len(remaining) * est.NumSimulations))
		candidateEvaluationsTotal.WithLabelValues(modelName).Add(float64(len(remaining)))
		greedyRoundsTotal.WithLabelValues(modelName).Inc()

		if s.EnableProgress {
			s.Logger.Info().
				Int("round", round+1).
				Str("seed", info.Seed).
				Float64("spread", info.Spread).
				Float64("marginal_gain", info.MarginalGain).
				Int("candidates", info.Candidates).
				Int64("runtime_ms", info.RuntimeMS).
				Msg("Greedy round completed")
		}
	}

	finish()

	s.Logger.Info().
		Strs("seeds", result.Seeds).
		Float64("spread", result.Spread).
		Int64("runtime_ms", result.Statistics.RuntimeMS).
		Msg("Greedy seed selection completed")

	return result, nil
}

// Select is a convenience wrapper running greedy selection with a
// sequential selector and a disabled logger
func Select(ctx context.Context, g *graph.Graph, params *diffusion.Params, model diffusion.Model,
	candidates []int, k, numSimulations int, seed uint64) (*Result, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	est, err := NewEstimator(g, params, model, numSimulations, seed)
	if err != nil {
		return nil, err
	}
	return NewSelector(est, 1, zerolog.Nop()).Select(ctx, candidates, k)
}

// Setup holds everything Run derives from a configuration
type Setup struct {
	Model      diffusion.Model
	Params     *diffusion.Params
	Candidates []int
	Estimator  *Estimator
}

// Prepare validates config and derives the model, parameters, candidate
// pool and estimator for g
func Prepare(g *graph.Graph, config *Config) (*Setup, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	model, err := diffusion.ModelByName(config.Model())
	if err != nil {
		return nil, err
	}

	seed := uint64(config.RandomSeed())
	params, err := GenerateParams(g, model, config.Probability(), config.WeightCap(), seed)
	if err != nil {
		return nil, err
	}

	candidates, err := Candidates(g, config.CandidateStrategy(), config.CandidateTopN(), config.CandidateNodes())
	if err != nil {
		return nil, err
	}

	est, err := NewEstimator(g, params, model, config.NumSimulations(), seed)
	if err != nil {
		return nil, err
	}
	est.Workers = config.Workers()

	return &Setup{Model: model, Params: params, Candidates: candidates, Estimator: est}, nil
}

// GenerateParams builds the edge parameters model reads: fixed probabilities
// for Independent Cascade, random normalised weights for Linear Threshold
func GenerateParams(g *graph.Graph, model diffusion.Model, probability, weightCap float64, seed uint64) (*diffusion.Params, error) {
	switch model.Kind() {
	case diffusion.Probability:
		return diffusion.GenerateProbabilities(g, probability)
	case diffusion.Weight:
		return diffusion.GenerateWeights(g, weightCap, ParamsRand(seed))
	default:
		return nil, fmt.Errorf("%w: %s", diffusion.ErrParamKind, model.Kind())
	}
}

// Run executes the complete selection described by config on g
func Run(ctx context.Context, g *graph.Graph, config *Config) (*Result, error) {
	logger := config.CreateLogger()
	return RunWithLogger(ctx, g, config, logger)
}

// RunWithLogger is Run with an explicit logger
func RunWithLogger(ctx context.Context, g *graph.Graph, config *Config, logger zerolog.Logger) (*Result, error) {
	setup, err := Prepare(g, config)
	if err != nil {
		return nil, err
	}

	if timeout := config.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	selector := NewSelector(setup.Estimator, config.Workers(), logger)
	selector.EnableProgress = config.EnableProgress()
	return selector.Select(ctx, setup.Candidates, config.K())
}
