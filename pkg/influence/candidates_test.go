package influence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/influence-maximization/pkg/graph"
)

func TestCandidatesAll(t *testing.T) {
	g := graph.Karate()
	for _, strategy := range []string{StrategyAll, ""} {
		pool, err := Candidates(g, strategy, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, g.SortedNodes(), pool)
	}
}

func TestCandidatesList(t *testing.T) {
	g := graph.Karate()
	pool, err := Candidates(g, StrategyList, 0, []string{"10", "2", "10", "33"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "10", "33"}, g.IDs(pool))

	_, err = Candidates(g, StrategyList, 0, []string{"2", "missing"})
	assert.ErrorIs(t, err, graph.ErrNodeNotFound)
}

func TestCandidatesUnknownStrategy(t *testing.T) {
	_, err := Candidates(graph.Karate(), "random", 10, nil)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestCentralityCandidates(t *testing.T) {
	g := graph.Karate()

	pool := CentralityCandidates(g, 10)
	ids := g.IDs(pool)
	assert.Contains(t, ids, "0")
	assert.Contains(t, ids, "33")
	assert.LessOrEqual(t, len(pool), 10)
	assert.GreaterOrEqual(t, len(pool), 5)

	// sorted by identifier and stable across calls
	assert.Equal(t, pool, normalizeCandidates(g, pool))
	assert.Equal(t, pool, CentralityCandidates(g, 10))
}

func TestCentralityCandidatesStar(t *testing.T) {
	g := graph.Star(6)
	assert.Equal(t, []string{"0"}, g.IDs(CentralityCandidates(g, 2)))
	assert.Empty(t, CentralityCandidates(g, 0))
	assert.Empty(t, CentralityCandidates(graph.NewGraph(), 10))
}

func TestCentralityCandidatesLargeTopN(t *testing.T) {
	g := graph.Path(4)
	assert.Equal(t, g.SortedNodes(), CentralityCandidates(g, 100))
}

func TestNormalizeCandidates(t *testing.T) {
	g := graph.Path(12)
	in := indices(t, g, "10", "2", "2", "11")
	in = append(in, -1, g.NumNodes())
	assert.Equal(t, []string{"2", "10", "11"}, g.IDs(normalizeCandidates(g, in)))
}
