package influence

import "runtime"

// Result represents the selection output
type Result struct {
	RunID        string      `json:"run_id" yaml:"run_id"`
	Model        string      `json:"model" yaml:"model"`
	Seeds        []string    `json:"seeds" yaml:"seeds"`
	SeedIndices  []int       `json:"-" yaml:"-"`
	Spread       float64     `json:"spread" yaml:"spread"`
	SpreadStdDev float64     `json:"spread_std_dev" yaml:"spread_std_dev"`
	Rounds       []RoundInfo `json:"rounds" yaml:"rounds"`
	Statistics   Statistics  `json:"statistics" yaml:"statistics"`
}

// RoundInfo contains information about one greedy round
type RoundInfo struct {
	Round        int     `json:"round" yaml:"round"`
	Seed         string  `json:"seed" yaml:"seed"`
	Spread       float64 `json:"spread" yaml:"spread"`
	StdDev       float64 `json:"std_dev" yaml:"std_dev"`
	MarginalGain float64 `json:"marginal_gain" yaml:"marginal_gain"`
	Candidates   int     `json:"candidates" yaml:"candidates"`
	RuntimeMS    int64   `json:"runtime_ms" yaml:"runtime_ms"`
}

// Statistics contains selection performance metrics
type Statistics struct {
	NumNodes             int    `json:"num_nodes" yaml:"num_nodes"`
	NumEdges             int    `json:"num_edges" yaml:"num_edges"`
	NumCandidates        int    `json:"num_candidates" yaml:"num_candidates"`
	K                    int    `json:"k" yaml:"k"`
	NumSimulations       int    `json:"num_simulations" yaml:"num_simulations"`
	RandomSeed           uint64 `json:"random_seed" yaml:"random_seed"`
	Workers              int    `json:"workers" yaml:"workers"`
	CandidateEvaluations int    `json:"candidate_evaluations" yaml:"candidate_evaluations"`
	TotalSimulations     int64  `json:"total_simulations" yaml:"total_simulations"`
	RuntimeMS            int64  `json:"runtime_ms" yaml:"runtime_ms"`
	MemoryPeakMB         int64  `json:"memory_peak_mb" yaml:"memory_peak_mb"`
}

// getMemoryUsage returns current memory usage in MB
func getMemoryUsage() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}
