package sim

import "time"

const golden = 0x9E3779B97F4A7C15

// splitmix64 scrambles x into a well-distributed 64-bit value.
func splitmix64(x uint64) uint64 {
	x += golden
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

// GameSeed derives the deal seed of game i in a batch seeded with base.
// Neighbouring games get unrelated seeds and the result is never zero.
func GameSeed(base uint64, i int) uint64 {
	s := splitmix64(base + uint64(i)*golden)
	if s == 0 {
		return 1
	}
	return s
}

// TimeSeed returns a batch seed from the wall clock, for runs that do not
// pin one.
func TimeSeed() uint64 {
	return splitmix64(uint64(time.Now().UnixNano()))
}
