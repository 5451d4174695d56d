package devrand

import "cmp"

// Float constrains elements of the floating-point range transform.
type Float interface {
	float32 | float64
}

// Integer32 constrains elements of the integer range transform.
type Integer32 interface {
	int32 | uint32
}

// Integer constrains Bernoulli sample elements: any fixed-width integer
// type, since samples only take the values 0 and 1.
type Integer interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64
}

// Transform kernels. Each returns a per-element closure over its operand
// spans; scalar parameters are folded in ahead of the launch.

func rangeFPKernel[T Float](r []T, a, b T) kernelFn {
	scale := b - a
	return func(i int64) {
		r[i] = r[i]*scale + a
	}
}

func rangeFPAccurateKernel[T Float](r []T, a, b T) kernelFn {
	scale := b - a
	return func(i int64) {
		v := r[i]*scale + a
		if v < a {
			v = a
		} else if v > b {
			v = b
		}
		r[i] = v
	}
}

func rangeIntKernel[T Integer32](dst []T, src []uint32, a, b T) kernelFn {
	// b-a wraps in 32-bit arithmetic, which keeps full-span ranges exact.
	width := uint32(b - a)
	return func(i int64) {
		dst[i] = a + T(src[i]%width)
	}
}

func bernoulliKernel[T Integer](dst []T, src []float32, p float32) kernelFn {
	return func(i int64) {
		if src[i] < p {
			dst[i] = 1
		} else {
			dst[i] = 0
		}
	}
}

// Shared argument checks. Contract violations carry the public entry-point
// name, not the kernel name.

func checkQueue(op string, q *Queue) error {
	if q == nil {
		return contractErr(op, "nil queue")
	}
	return nil
}

func checkCount(op string, n int64) error {
	if n < 0 {
		return contractErr(op, "negative element count")
	}
	return nil
}

// checkRange rejects a >= b. NaN bounds fail the comparison and are
// rejected the same way.
func checkRange[T cmp.Ordered](op string, a, b T) error {
	if !(a < b) {
		return contractErr(op, "invalid range: a must be less than b")
	}
	return nil
}

func checkBuffer[T Element](op, name string, b *Buffer[T], n int64) error {
	if b == nil {
		return contractErr(op, "nil "+name+" buffer")
	}
	if int64(b.Len()) < n {
		return contractErr(op, name+" buffer shorter than element count")
	}
	return nil
}

func checkPtr[T Element](op, name string, p Ptr[T]) error {
	if p.IsNull() {
		return contractErr(op, "null "+name+" pointer")
	}
	return nil
}

// RangeTransformFP remaps uniform [0,1) samples to the interval [a,b) in
// place: r[i] = r[i]*(b-a) + a. Rounding can push a result to exactly b;
// use RangeTransformFPAccurate where the open bound must hold. Blocks
// until the kernel completes.
func RangeTransformFP[T Float](q *Queue, a, b T, n int64, r *Buffer[T]) error {
	const op = "RangeTransformFP"
	if err := checkQueue(op, q); err != nil {
		return err
	}
	if err := checkCount(op, n); err != nil {
		return err
	}
	if err := checkRange(op, a, b); err != nil {
		return err
	}
	if err := checkBuffer(op, "sample", r, n); err != nil {
		return err
	}
	return q.submitAndWait("rangeTransformFP", n, rangeFPKernel(r.span(), a, b))
}

// RangeTransformFPAsync is RangeTransformFP over raw device memory. It
// returns as soon as the kernel is queued; completion is observed through
// the event.
func RangeTransformFPAsync[T Float](q *Queue, a, b T, n int64, r Ptr[T]) (*Event, error) {
	const op = "RangeTransformFPAsync"
	if err := checkQueue(op, q); err != nil {
		return nil, err
	}
	if err := checkCount(op, n); err != nil {
		return nil, err
	}
	if err := checkRange(op, a, b); err != nil {
		return nil, err
	}
	if err := checkPtr(op, "sample", r); err != nil {
		return nil, err
	}
	span, err := devSpan(r, n)
	if err != nil {
		return nil, err
	}
	return q.submit("rangeTransformFP", n, rangeFPKernel(span, a, b))
}

// RangeTransformFPAccurate remaps uniform [0,1) samples to [a,b] in place
// and clamps results into the bounds: values below a become a, values
// above b become b. Blocks until the kernel completes.
func RangeTransformFPAccurate[T Float](q *Queue, a, b T, n int64, r *Buffer[T]) error {
	const op = "RangeTransformFPAccurate"
	if err := checkQueue(op, q); err != nil {
		return err
	}
	if err := checkCount(op, n); err != nil {
		return err
	}
	if err := checkRange(op, a, b); err != nil {
		return err
	}
	if err := checkBuffer(op, "sample", r, n); err != nil {
		return err
	}
	return q.submitAndWait("rangeTransformFPAccurate", n, rangeFPAccurateKernel(r.span(), a, b))
}

// RangeTransformFPAccurateAsync is RangeTransformFPAccurate over raw
// device memory.
func RangeTransformFPAccurateAsync[T Float](q *Queue, a, b T, n int64, r Ptr[T]) (*Event, error) {
	const op = "RangeTransformFPAccurateAsync"
	if err := checkQueue(op, q); err != nil {
		return nil, err
	}
	if err := checkCount(op, n); err != nil {
		return nil, err
	}
	if err := checkRange(op, a, b); err != nil {
		return nil, err
	}
	if err := checkPtr(op, "sample", r); err != nil {
		return nil, err
	}
	span, err := devSpan(r, n)
	if err != nil {
		return nil, err
	}
	return q.submit("rangeTransformFPAccurate", n, rangeFPAccurateKernel(span, a, b))
}

// RangeTransformInt maps raw 32-bit generator output onto [a,b) by modular
// reduction: out[i] = a + in[i] % (b-a). The reduction carries the usual
// modulo bias, accepted in exchange for a single branch-free pass; callers
// needing exact uniformity must reject out of band. Blocks until the
// kernel completes.
func RangeTransformInt[T Integer32](q *Queue, a, b T, n int64, in *Buffer[uint32], out *Buffer[T]) error {
	const op = "RangeTransformInt"
	if err := checkQueue(op, q); err != nil {
		return err
	}
	if err := checkCount(op, n); err != nil {
		return err
	}
	if err := checkRange(op, a, b); err != nil {
		return err
	}
	if err := checkBuffer(op, "input", in, n); err != nil {
		return err
	}
	if err := checkBuffer(op, "output", out, n); err != nil {
		return err
	}
	return q.submitAndWait("rangeTransformInt", n, rangeIntKernel(out.span(), in.span(), a, b))
}

// RangeTransformIntAsync is RangeTransformInt over raw device memory.
func RangeTransformIntAsync[T Integer32](q *Queue, a, b T, n int64, in Ptr[uint32], out Ptr[T]) (*Event, error) {
	const op = "RangeTransformIntAsync"
	if err := checkQueue(op, q); err != nil {
		return nil, err
	}
	if err := checkCount(op, n); err != nil {
		return nil, err
	}
	if err := checkRange(op, a, b); err != nil {
		return nil, err
	}
	if err := checkPtr(op, "input", in); err != nil {
		return nil, err
	}
	if err := checkPtr(op, "output", out); err != nil {
		return nil, err
	}
	src, err := devSpan(in, n)
	if err != nil {
		return nil, err
	}
	dst, err := devSpan(out, n)
	if err != nil {
		return nil, err
	}
	return q.submit("rangeTransformInt", n, rangeIntKernel(dst, src, a, b))
}

// SampleBernoulli turns uniform [0,1) samples into Bernoulli draws:
// out[i] = 1 if in[i] < p, else 0. p is deliberately not validated;
// values outside [0,1] yield constant streams. Blocks until the kernel
// completes.
func SampleBernoulli[T Integer](q *Queue, p float32, n int64, in *Buffer[float32], out *Buffer[T]) error {
	const op = "SampleBernoulli"
	if err := checkQueue(op, q); err != nil {
		return err
	}
	if err := checkCount(op, n); err != nil {
		return err
	}
	if err := checkBuffer(op, "input", in, n); err != nil {
		return err
	}
	if err := checkBuffer(op, "output", out, n); err != nil {
		return err
	}
	return q.submitAndWait("sampleBernoulli", n, bernoulliKernel(out.span(), in.span(), p))
}

// SampleBernoulliAsync is SampleBernoulli over raw device memory.
func SampleBernoulliAsync[T Integer](q *Queue, p float32, n int64, in Ptr[float32], out Ptr[T]) (*Event, error) {
	const op = "SampleBernoulliAsync"
	if err := checkQueue(op, q); err != nil {
		return nil, err
	}
	if err := checkCount(op, n); err != nil {
		return nil, err
	}
	if err := checkPtr(op, "input", in); err != nil {
		return nil, err
	}
	if err := checkPtr(op, "output", out); err != nil {
		return nil, err
	}
	src, err := devSpan(in, n)
	if err != nil {
		return nil, err
	}
	dst, err := devSpan(out, n)
	if err != nil {
		return nil, err
	}
	return q.submit("sampleBernoulli", n, bernoulliKernel(dst, src, p))
}
