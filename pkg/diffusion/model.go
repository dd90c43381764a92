// Package diffusion implements the stochastic diffusion processes used to
// estimate influence spread: Independent Cascade and Linear Threshold.
//
// A Model runs one full activation process to its fixed point. All randomness
// comes from the *rand.Rand handed to Simulate, so callers control
// reproducibility and can give every parallel worker its own stream.
package diffusion

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/gilchrisn/influence-maximization/pkg/graph"
)

const (
	// IndependentCascadeName is the canonical name of the IC model
	IndependentCascadeName = "independent_cascade"
	// LinearThresholdName is the canonical name of the LT model
	LinearThresholdName = "linear_threshold"
)

// Model is one stochastic diffusion process.
//
// Simulate activates seeds, runs rounds until no new node activates and
// returns the number of active nodes. Implementations must not mutate g or
// params and must allocate all per-run state themselves.
type Model interface {
	Name() string
	Kind() ParamKind
	Simulate(g *graph.Graph, params *Params, seeds []int, rng *rand.Rand) int
}

// ModelByName resolves a model from its name or short alias (ic, lt)
func ModelByName(name string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case IndependentCascadeName, "ic", "cascade":
		return IndependentCascade{}, nil
	case LinearThresholdName, "lt", "threshold":
		return LinearThreshold{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
}

// CheckParams verifies that params have the form model expects and fit g
func CheckParams(model Model, g *graph.Graph, params *Params) error {
	if err := params.Validate(g); err != nil {
		return err
	}
	if params.Kind != model.Kind() {
		return fmt.Errorf("%w: %s needs %s parameters, got %s", ErrParamKind, model.Name(), model.Kind(), params.Kind)
	}
	return nil
}

// activateSeeds marks seeds active and returns them without duplicates
func activateSeeds(active []bool, seeds []int) []int {
	frontier := make([]int, 0, len(seeds))
	for _, s := range seeds {
		if s < 0 || s >= len(active) || active[s] {
			continue
		}
		active[s] = true
		frontier = append(frontier, s)
	}
	return frontier
}
