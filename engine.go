package devrand

import (
	"fmt"
	"sync"

	"github.com/opd-ai/go-devrand/internal/native"
)

// Algorithm selects the pseudorandom engine family backing an Engine.
type Algorithm int

const (
	// Xorwow is the xorshift-based default family.
	Xorwow Algorithm = iota
	// Philox is the Philox4x32-10 counter-based family. Its stream
	// position jumps in constant time.
	Philox
)

// String returns the vendor identifier of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case Xorwow:
		return "XORWOW"
	case Philox:
		return "PHILOX4_32_10"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// EngineConfig configures a random stream engine.
type EngineConfig struct {
	// Queue is the command queue generation work runs on. Required.
	Queue *Queue

	// Algorithm selects the engine family. The default is Xorwow.
	Algorithm Algorithm

	// Seed is the 64-bit stream seed. Engines with equal algorithm and
	// seed produce identical streams.
	Seed uint64
}

// Engine is a seeded pseudorandom stream bound to a queue. It owns a
// vendor generator handle; Close releases it. All methods are safe for
// concurrent use, though concurrent generation interleaves the stream
// nondeterministically.
type Engine struct {
	mu     sync.Mutex
	q      *Queue
	algo   Algorithm
	seed   uint64
	handle native.Generator
	closed bool
}

// NewEngine creates and seeds a generator on cfg.Queue.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Queue == nil {
		return nil, contractErr("NewEngine", "nil queue")
	}
	h, st := native.CreateGenerator(native.Algorithm(cfg.Algorithm))
	if err := checkRNG("rngCreateGenerator", st); err != nil {
		return nil, err
	}
	if err := checkRNG("rngSetGeneratorSeed", native.SetGeneratorSeed(h, cfg.Seed)); err != nil {
		native.DestroyGenerator(h)
		return nil, err
	}
	return &Engine{
		q:      cfg.Queue,
		algo:   cfg.Algorithm,
		seed:   cfg.Seed,
		handle: h,
	}, nil
}

// Queue returns the queue the engine is bound to.
func (e *Engine) Queue() *Queue {
	return e.q
}

// Algorithm returns the engine family.
func (e *Engine) Algorithm() Algorithm {
	return e.algo
}

// Seed returns the seed the engine was created with.
func (e *Engine) Seed() uint64 {
	return e.seed
}

// Skipahead positions the stream exactly n raw outputs past its seed
// origin, as if n outputs had been generated and discarded after seeding.
// The position is absolute: consecutive calls do not accumulate. The jump
// is constant-time for Philox and linear in n for Xorwow.
func (e *Engine) Skipahead(n uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return checkRNG("rngSetGeneratorOffset", native.SetGeneratorOffset(e.handle, n))
}

// Close releases the vendor generator. Close is idempotent; generation on
// a closed engine fails with RNG_STATUS_NOT_INITIALIZED.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return checkRNG("rngDestroyGenerator", native.DestroyGenerator(e.handle))
}

// Raw fill stages. These run inside queued jobs on the dispatcher, so
// same-queue ordering covers generation as well as the transforms.

func (e *Engine) fillBits(dst []uint32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return checkRNG("rngGenerate", native.Generate(e.handle, dst))
}

func (e *Engine) fillUniform(dst []float32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return checkRNG("rngGenerateUniform", native.GenerateUniform(e.handle, dst))
}

func (e *Engine) fillUniformDouble(dst []float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return checkRNG("rngGenerateUniformDouble", native.GenerateUniformDouble(e.handle, dst))
}
