// Package native simulates the accelerator stack behind the devrand API: a
// vendor RNG library with opaque generator handles and numeric status codes,
// and a device runtime with a byte-addressed heap. It is a functional
// stand-in for a closed vendor library, so its entry points report failures
// through status values, never through Go errors.
package native

import "sync"

// Algorithm identifies a generator family.
type Algorithm int32

const (
	AlgorithmXorwow Algorithm = iota
	AlgorithmPhilox
)

// Generator is an opaque handle to a library-owned generator. The zero
// value is invalid and never issued.
type Generator uint64

// engine is the stateful core shared by all generator families.
type engine interface {
	next() uint32
	skip(n uint64)
}

type generatorState struct {
	mu   sync.Mutex
	algo Algorithm
	seed uint64
	eng  engine
}

var lib struct {
	mu   sync.Mutex
	seq  uint64
	gens map[Generator]*generatorState
}

func newEngine(algo Algorithm, seed uint64) engine {
	if algo == AlgorithmPhilox {
		return newPhilox(seed)
	}
	return newXorwow(seed)
}

// CreateGenerator allocates a generator of the given family, seeded with 0.
// Unknown families fail with StatusTypeError.
func CreateGenerator(algo Algorithm) (Generator, Status) {
	switch algo {
	case AlgorithmXorwow, AlgorithmPhilox:
	default:
		return 0, StatusTypeError
	}
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if lib.gens == nil {
		lib.gens = make(map[Generator]*generatorState)
	}
	lib.seq++
	h := Generator(lib.seq)
	lib.gens[h] = &generatorState{algo: algo, eng: newEngine(algo, 0)}
	return h, StatusSuccess
}

// DestroyGenerator releases a generator. Handles are never reused, so a
// destroyed or unknown handle fails with StatusNotInitialized.
func DestroyGenerator(h Generator) Status {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if _, ok := lib.gens[h]; !ok {
		return StatusNotInitialized
	}
	delete(lib.gens, h)
	return StatusSuccess
}

// ActiveGenerators reports the number of live generator handles.
func ActiveGenerators() int {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	return len(lib.gens)
}

func lookup(h Generator) (*generatorState, Status) {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	st, ok := lib.gens[h]
	if !ok {
		return nil, StatusNotInitialized
	}
	return st, StatusSuccess
}

// SetGeneratorSeed reseeds the generator, restarting its stream.
func SetGeneratorSeed(h Generator, seed uint64) Status {
	st, rc := lookup(h)
	if rc != StatusSuccess {
		return rc
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.seed = seed
	st.eng = newEngine(st.algo, seed)
	return StatusSuccess
}

// SetGeneratorOffset positions the stream at an absolute offset from its
// seed origin, as if offset outputs had been generated and discarded.
// Repeated calls do not accumulate. The jump is O(1) for Philox and linear
// in offset for XORWOW.
func SetGeneratorOffset(h Generator, offset uint64) Status {
	st, rc := lookup(h)
	if rc != StatusSuccess {
		return rc
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.eng = newEngine(st.algo, st.seed)
	st.eng.skip(offset)
	return StatusSuccess
}

// Generate fills dst with raw 32-bit outputs. An empty destination is a
// successful no-op.
func Generate(h Generator, dst []uint32) Status {
	st, rc := lookup(h)
	if rc != StatusSuccess {
		return rc
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range dst {
		dst[i] = st.eng.next()
	}
	return StatusSuccess
}

// GenerateUniform fills dst with single-precision samples in [0, 1). Each
// sample consumes one raw output.
func GenerateUniform(h Generator, dst []float32) Status {
	st, rc := lookup(h)
	if rc != StatusSuccess {
		return rc
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range dst {
		dst[i] = float32(st.eng.next()>>8) * (1.0 / (1 << 24))
	}
	return StatusSuccess
}

// GenerateUniformDouble fills dst with double-precision samples in [0, 1).
// Each sample consumes two raw outputs.
func GenerateUniformDouble(h Generator, dst []float64) Status {
	st, rc := lookup(h)
	if rc != StatusSuccess {
		return rc
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range dst {
		x := uint64(st.eng.next())<<32 | uint64(st.eng.next())
		dst[i] = float64(x>>11) * (1.0 / (1 << 53))
	}
	return StatusSuccess
}
