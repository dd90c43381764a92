package influence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/influence-maximization/pkg/diffusion"
	"github.com/gilchrisn/influence-maximization/pkg/graph"
)

func newCascadeEstimator(t *testing.T, g *graph.Graph, prob float64, sims int) *Estimator {
	t.Helper()
	params, err := diffusion.GenerateProbabilities(g, prob)
	require.NoError(t, err)
	est, err := NewEstimator(g, params, diffusion.IndependentCascade{}, sims, 42)
	require.NoError(t, err)
	return est
}

func indices(t *testing.T, g *graph.Graph, ids ...string) []int {
	t.Helper()
	out := make([]int, len(ids))
	for i, id := range ids {
		idx, err := g.MustIndex(id)
		require.NoError(t, err)
		out[i] = idx
	}
	return out
}

func TestNewEstimatorValidation(t *testing.T) {
	g := graph.Clique(4)
	params, err := diffusion.GenerateProbabilities(g, 0.5)
	require.NoError(t, err)

	_, err = NewEstimator(nil, params, diffusion.IndependentCascade{}, 10, 1)
	assert.ErrorIs(t, err, ErrNilGraph)

	_, err = NewEstimator(g, params, nil, 10, 1)
	assert.ErrorIs(t, err, ErrNilModel)

	_, err = NewEstimator(g, params, diffusion.IndependentCascade{}, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidSimulations)

	_, err = NewEstimator(g, params, diffusion.LinearThreshold{}, 10, 1)
	assert.ErrorIs(t, err, diffusion.ErrParamKind)

	_, err = NewEstimator(g, nil, diffusion.IndependentCascade{}, 10, 1)
	assert.Error(t, err)
}

func TestEstimateZeroProbability(t *testing.T) {
	g := graph.Karate()
	est := newCascadeEstimator(t, g, 0, 50)

	result, err := est.EstimateIDs(context.Background(), []string{"0", "33", "5"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, result.Mean)
	assert.Equal(t, 0.0, result.StdDev)
	assert.Equal(t, 50, result.Runs)
}

func TestEstimateCertainCascade(t *testing.T) {
	g := graph.Clique(5)
	est := newCascadeEstimator(t, g, 1, 20)

	result, err := est.EstimateIDs(context.Background(), []string{"2"})
	require.NoError(t, err)
	assert.Equal(t, 5.0, result.Mean)
}

func TestEstimateEmptySeeds(t *testing.T) {
	est := newCascadeEstimator(t, graph.Karate(), 0.3, 10)
	result, err := est.Estimate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Mean)
}

func TestEstimateUnknownSeed(t *testing.T) {
	g := graph.Karate()
	est := newCascadeEstimator(t, g, 0.1, 10)

	_, err := est.EstimateIDs(context.Background(), []string{"nope"})
	assert.ErrorIs(t, err, graph.ErrNodeNotFound)

	_, err = est.Estimate(context.Background(), []int{g.NumNodes()})
	assert.ErrorIs(t, err, graph.ErrNodeNotFound)
}

func TestEstimateIndependentOfWorkers(t *testing.T) {
	g := graph.Karate()
	seeds := indices(t, g, "0", "33")

	sequential := newCascadeEstimator(t, g, 0.2, 200)
	want, err := sequential.Estimate(context.Background(), seeds)
	require.NoError(t, err)

	parallel := newCascadeEstimator(t, g, 0.2, 200)
	parallel.Workers = 8
	got, err := parallel.Estimate(context.Background(), seeds)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.GreaterOrEqual(t, got.Mean, 2.0)
	assert.LessOrEqual(t, got.Mean, float64(g.NumNodes()))
	assert.Greater(t, got.StdErr, 0.0)
}

func TestEstimateLinearThreshold(t *testing.T) {
	g := graph.Karate()
	params, err := diffusion.GenerateWeights(g, diffusion.DefaultWeightCap, ParamsRand(42))
	require.NoError(t, err)

	est, err := NewEstimator(g, params, diffusion.LinearThreshold{}, 100, 42)
	require.NoError(t, err)

	seeds := indices(t, g, "0")
	first, err := est.Estimate(context.Background(), seeds)
	require.NoError(t, err)
	second, err := est.Estimate(context.Background(), seeds)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first.Mean, 1.0)
	assert.LessOrEqual(t, first.Mean, float64(g.NumNodes()))
}

func TestEstimateCancelled(t *testing.T) {
	est := newCascadeEstimator(t, graph.Karate(), 0.1, 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := est.Estimate(ctx, []int{0})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, SpreadEstimate{}, summarize(nil))
	assert.Equal(t, SpreadEstimate{Mean: 4, Runs: 1}, summarize([]float64{4}))

	est := summarize([]float64{2, 4, 4, 6})
	assert.InDelta(t, 4.0, est.Mean, 1e-12)
	assert.Greater(t, est.StdDev, 0.0)
	assert.InDelta(t, est.StdDev/2, est.StdErr, 1e-12)
}
