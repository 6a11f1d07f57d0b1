package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are uniformly distributed in [0, n) for any n > 0.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand. It is safe for concurrent use.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Float64 returns a uniform float in [0, 1) with 53 bits of precision.
func (c *cryptoSource) Float64() float64 {
	return float64(c.Intn(1<<53)) / (1 << 53)
}

// seededSource is a reproducible PCG-backed Source guarded by a mutex.
type seededSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeededSource returns a deterministic Source: two sources built from the same seed
// produce the same sequence. Used for simulations and replays.
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn returns a pseudo-random int in [0, n).
//
// Precondition: n > 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Float64 returns a pseudo-random float in [0, 1).
func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Fixed is a scripted Source for deterministic tests.
//
// Faces lists die results (1-based) handed out in order: Intn(n) returns face-1
// clamped to [0, n). Floats lists the values returned by Float64 in order. Both
// sequences cycle when exhausted; an empty sequence yields 0.
type Fixed struct {
	Faces  []int
	Floats []float64

	mu       sync.Mutex
	faceIdx  int
	floatIdx int
}

// NewFixed returns a Fixed source that yields faces for dice and floats for draws.
func NewFixed(faces []int, floats []float64) *Fixed {
	return &Fixed{Faces: faces, Floats: floats}
}

// Intn returns the next scripted face minus one, clamped to [0, n).
func (f *Fixed) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Faces) == 0 {
		return 0
	}
	v := f.Faces[f.faceIdx%len(f.Faces)] - 1
	f.faceIdx++
	switch {
	case v < 0:
		return 0
	case v >= n:
		return n - 1
	}
	return v
}

// Float64 returns the next scripted float.
func (f *Fixed) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Floats) == 0 {
		return 0
	}
	v := f.Floats[f.floatIdx%len(f.Floats)]
	f.floatIdx++
	return v
}
