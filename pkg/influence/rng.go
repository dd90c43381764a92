package influence

import (
	"math"
	"math/rand/v2"
)

// paramsStream is the stream key reserved for parameter generation
const paramsStream = math.MaxUint64

// StreamSeed derives the seed of one simulation run from the global seed,
// a stream key (0 for standalone estimates, candidate index + 1 during
// greedy selection) and the run index. Streams only depend on these three
// values, so results do not depend on how runs are scheduled on workers.
func StreamSeed(seed, key uint64, run int) uint64 {
	return splitmix64(splitmix64(splitmix64(seed)^key) ^ uint64(run))
}

// NewStream returns the random source of one simulation run
func NewStream(seed, key uint64, run int) *rand.Rand {
	s := StreamSeed(seed, key, run)
	return rand.New(rand.NewPCG(s, splitmix64(s)))
}

// ParamsRand returns the random source used to generate edge parameters
func ParamsRand(seed uint64) *rand.Rand {
	return NewStream(seed, paramsStream, 0)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
