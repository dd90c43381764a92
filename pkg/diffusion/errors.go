package diffusion

import "errors"

var (
	// ErrInvalidProbability indicates an IC probability outside [0, 1].
	ErrInvalidProbability = errors.New("diffusion: probability must be in [0, 1]")
	// ErrInvalidWeightCap indicates an LT weight cap outside [0, 1].
	ErrInvalidWeightCap = errors.New("diffusion: weight cap must be in [0, 1]")
	// ErrParamOutOfRange indicates an arc parameter outside its valid range.
	ErrParamOutOfRange = errors.New("diffusion: parameter out of range")
	// ErrParamsMismatch indicates parameters that do not line up with the graph.
	ErrParamsMismatch = errors.New("diffusion: parameters do not match graph")
	// ErrParamKind indicates parameters of the wrong form for a model.
	ErrParamKind = errors.New("diffusion: parameter kind does not match model")
	// ErrUnknownModel indicates an unsupported diffusion model name.
	ErrUnknownModel = errors.New("diffusion: unknown model")
	// ErrNilRand indicates a missing random source.
	ErrNilRand = errors.New("diffusion: random source is required")
)
