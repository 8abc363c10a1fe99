package director

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// RNG is a 64-bit linear congruential generator (MMIX constants), reseeded
// per decision from a stable hash so the same job seed, shot position and
// index always reproduce the same draws — across processes and Go releases.
// No state is carried between decisions.
type RNG struct {
	state uint64
}

// NewRNG seeds a generator from (job seed, shot position, shot index).
func NewRNG(seed int64, position float64, index int) *RNG {
	return &RNG{state: ShotSeed(seed, position, index)}
}

// ShotSeed hashes the decision inputs with FNV-1a into a 64-bit seed.
func ShotSeed(seed int64, position float64, index int) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(position))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(index))
	h.Write(buf[:])
	return h.Sum64()
}

func (r *RNG) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns a uniform draw in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// Range returns a uniform draw in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}
