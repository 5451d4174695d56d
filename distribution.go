package devrand

import "fmt"

// Method selects the floating-point range transform flavor.
type Method int

const (
	// Standard applies the plain affine remap. Rounding can produce
	// exactly the upper bound.
	Standard Method = iota
	// Accurate clamps every sample into [A,B].
	Accurate
)

func (m Method) String() string {
	switch m {
	case Standard:
		return "standard"
	case Accurate:
		return "accurate"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Uniform describes a continuous uniform distribution over [A,B). The
// zero value is not valid; bounds must satisfy A < B.
type Uniform[T Float] struct {
	A, B   T
	Method Method
}

// DefaultUniform returns the unit-interval distribution over [0,1).
func DefaultUniform[T Float]() Uniform[T] {
	return Uniform[T]{A: 0, B: 1}
}

// UniformInt describes a discrete uniform distribution over [A,B). Bounds
// must satisfy A < B; sampling reduces raw generator words by modulo, so
// the distribution carries the corresponding bias.
type UniformInt[T Integer32] struct {
	A, B T
}

// Bernoulli describes a Bernoulli distribution with success probability P.
// P is not validated: values at or below 0 yield all zeros, values above 1
// all ones.
type Bernoulli[T Integer] struct {
	P float32
}
