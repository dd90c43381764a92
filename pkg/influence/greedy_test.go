package influence

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/influence-maximization/pkg/diffusion"
	"github.com/gilchrisn/influence-maximization/pkg/graph"
)

func quietConfig() *Config {
	config := NewConfig()
	config.Set("logging.level", "disabled")
	config.Set("logging.enable_progress", false)
	return config
}

func selectIC(t *testing.T, g *graph.Graph, prob float64, candidates []int, k, sims, workers int) *Result {
	t.Helper()
	est := newCascadeEstimator(t, g, prob, sims)
	result, err := NewSelector(est, workers, zerolog.Nop()).Select(context.Background(), candidates, k)
	require.NoError(t, err)
	return result
}

func TestSelectHubFirst(t *testing.T) {
	g := graph.Star(10)
	result := selectIC(t, g, 0.5, nil, 1, 200, 1)

	require.Len(t, result.Seeds, 1)
	assert.Equal(t, "0", result.Seeds[0])
	assert.Equal(t, diffusion.IndependentCascadeName, result.Model)
	assert.NotEmpty(t, result.RunID)
}

func TestSelectSizeBounds(t *testing.T) {
	g := graph.Karate()

	result := selectIC(t, g, 0.1, nil, 4, 30, 2)
	assert.Len(t, result.Seeds, 4)
	assert.Len(t, result.Rounds, 4)
	assert.Equal(t, 4*g.NumNodes()-6, result.Statistics.CandidateEvaluations)

	// no duplicates
	seen := map[string]bool{}
	for _, s := range result.Seeds {
		assert.False(t, seen[s], "duplicate seed %s", s)
		seen[s] = true
	}
}

func TestSelectStopsWhenPoolIsExhausted(t *testing.T) {
	g := graph.Karate()
	pool := indices(t, g, "0", "5", "33")

	result := selectIC(t, g, 0.1, pool, 5, 20, 1)
	assert.ElementsMatch(t, []string{"0", "5", "33"}, result.Seeds)
	assert.Equal(t, 5, result.Statistics.K)
}

func TestSelectZeroK(t *testing.T) {
	result := selectIC(t, graph.Karate(), 0.1, nil, 0, 10, 1)
	assert.Empty(t, result.Seeds)
	assert.Equal(t, 0.0, result.Spread)
}

func TestSelectNegativeK(t *testing.T) {
	est := newCascadeEstimator(t, graph.Karate(), 0.1, 10)
	_, err := NewSelector(est, 1, zerolog.Nop()).Select(context.Background(), nil, -1)
	assert.ErrorIs(t, err, ErrInvalidK)

	params, err := diffusion.GenerateProbabilities(graph.Karate(), 0.1)
	require.NoError(t, err)
	_, err = Select(context.Background(), graph.Karate(), params, diffusion.IndependentCascade{}, nil, -2, 10, 1)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestSelectEmptyCandidates(t *testing.T) {
	result := selectIC(t, graph.Karate(), 0.1, []int{}, 3, 10, 1)
	assert.Empty(t, result.Seeds)
	assert.Equal(t, 0, result.Statistics.NumCandidates)
}

func TestSelectTieBreakByIdentifier(t *testing.T) {
	g := graph.NewGraph()
	for _, id := range []string{"b", "10", "a", "2"} {
		_, err := g.AddNode(id)
		require.NoError(t, err)
	}

	// without edges every candidate adds exactly one node
	result := selectIC(t, g, 0.3, nil, 3, 5, 4)
	assert.Equal(t, []string{"2", "10", "a"}, result.Seeds)
	for i, round := range result.Rounds {
		assert.Equal(t, float64(i+1), round.Spread)
		assert.Equal(t, 1.0, round.MarginalGain)
	}
}

func TestSelectDeterministicAcrossWorkers(t *testing.T) {
	g := graph.Karate()
	want := selectIC(t, g, 0.1, nil, 3, 50, 1)

	for _, workers := range []int{1, 3, 8} {
		got := selectIC(t, g, 0.1, nil, 3, 50, workers)
		assert.Equal(t, want.Seeds, got.Seeds, "workers=%d", workers)
		assert.Equal(t, want.Spread, got.Spread, "workers=%d", workers)
		assert.Equal(t, want.Rounds[2].MarginalGain, got.Rounds[2].MarginalGain)
	}
}

func TestSelectSpreadGrows(t *testing.T) {
	g := graph.Karate()
	result := selectIC(t, g, 0.1, nil, 3, 200, 4)

	require.Len(t, result.Rounds, 3)
	assert.Greater(t, result.Rounds[2].Spread, result.Rounds[0].Spread)
	assert.Equal(t, result.Rounds[2].Spread, result.Spread)
	assert.LessOrEqual(t, result.Spread, float64(g.NumNodes()))
}

func TestSelectCancelledReturnsPartialResult(t *testing.T) {
	est := newCascadeEstimator(t, graph.Karate(), 0.1, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewSelector(est, 2, zerolog.Nop()).Select(ctx, nil, 3)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Empty(t, result.Seeds)
}

func TestPrepare(t *testing.T) {
	g := graph.Karate()

	config := quietConfig()
	config.Set("algorithm.model", "lt")
	setup, err := Prepare(g, config)
	require.NoError(t, err)
	assert.Equal(t, diffusion.LinearThresholdName, setup.Model.Name())
	assert.Equal(t, diffusion.Weight, setup.Params.Kind)
	assert.Len(t, setup.Candidates, g.NumNodes())

	config.Set("algorithm.model", "ic")
	config.Set("candidates.strategy", StrategyList)
	config.Set("candidates.nodes", []string{"33", "0"})
	setup, err = Prepare(g, config)
	require.NoError(t, err)
	assert.Equal(t, diffusion.Probability, setup.Params.Kind)
	assert.Equal(t, []string{"0", "33"}, g.IDs(setup.Candidates))

	config.Set("algorithm.num_simulations", -1)
	_, err = Prepare(g, config)
	assert.ErrorIs(t, err, ErrInvalidSimulations)

	_, err = Prepare(nil, quietConfig())
	assert.ErrorIs(t, err, ErrNilGraph)
}

func TestGenerateParamsDeterministic(t *testing.T) {
	g := graph.Karate()
	a, err := GenerateParams(g, diffusion.LinearThreshold{}, 0.1, 0.9, 7)
	require.NoError(t, err)
	b, err := GenerateParams(g, diffusion.LinearThreshold{}, 0.1, 0.9, 7)
	require.NoError(t, err)
	assert.Equal(t, a.Values, b.Values)
}

func TestRunBothModels(t *testing.T) {
	g := graph.Karate()

	for _, model := range []string{diffusion.IndependentCascadeName, diffusion.LinearThresholdName} {
		t.Run(model, func(t *testing.T) {
			config := quietConfig()
			config.Set("algorithm.model", model)
			config.Set("algorithm.k", 2)
			config.Set("algorithm.num_simulations", 40)
			config.Set("performance.num_workers", 4)

			first, err := RunWithLogger(context.Background(), g, config, zerolog.Nop())
			require.NoError(t, err)
			second, err := Run(context.Background(), g, config)
			require.NoError(t, err)

			assert.Len(t, first.Seeds, 2)
			assert.Equal(t, first.Seeds, second.Seeds)
			assert.Equal(t, first.Spread, second.Spread)
			assert.NotEqual(t, first.RunID, second.RunID)
			assert.Equal(t, uint64(42), first.Statistics.RandomSeed)
		})
	}
}
