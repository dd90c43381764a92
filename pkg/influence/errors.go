package influence

import "errors"

var (
	// ErrInvalidK indicates a negative target seed count.
	ErrInvalidK = errors.New("influence: k must not be negative")
	// ErrInvalidSimulations indicates a non-positive simulation count.
	ErrInvalidSimulations = errors.New("influence: number of simulations must be positive")
	// ErrInvalidConfig indicates any other invalid configuration value.
	ErrInvalidConfig = errors.New("influence: invalid configuration")
	// ErrUnknownStrategy indicates an unsupported candidate strategy.
	ErrUnknownStrategy = errors.New("influence: unknown candidate strategy")
	// ErrUnknownFormat indicates an unsupported output format.
	ErrUnknownFormat = errors.New("influence: unknown output format")
	// ErrNilModel indicates a missing diffusion model.
	ErrNilModel = errors.New("influence: diffusion model is required")
	// ErrNilGraph indicates a missing graph.
	ErrNilGraph = errors.New("influence: graph is required")
)
