package devrand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillBuffer is a test helper seeding a managed buffer.
func fillBuffer[T Element](t *testing.T, data []T) *Buffer[T] {
	t.Helper()
	buf := NewBuffer[T](len(data))
	require.NoError(t, buf.Write(data))
	return buf
}

func readBack[T Element](t *testing.T, buf *Buffer[T], n int) []T {
	t.Helper()
	out := make([]T, n)
	require.NoError(t, buf.Read(out))
	return out
}

// Test the affine remap on a concrete range
func TestRangeTransformFP(t *testing.T) {
	q := newTestQueue(t)

	in := []float32{0.0, 0.25, 0.5, 0.75, 0.9999999, 1.0000001}
	a, b := float32(2), float32(5)
	buf := fillBuffer(t, in)

	require.NoError(t, RangeTransformFP(q, a, b, int64(len(in)), buf))

	out := readBack(t, buf, len(in))
	scale := b - a
	for i, v := range in {
		want := v*scale + a
		assert.Equal(t, want, out[i], "element %d", i)
		assert.GreaterOrEqual(t, out[i], a, "element %d below lower bound", i)
	}
	// The plain variant makes no promise about the open upper bound for
	// inputs at or past 1; the last element lands beyond b here.
	assert.Greater(t, out[len(out)-1], b)
}

// Test the remap in double precision
func TestRangeTransformFPDouble(t *testing.T) {
	q := newTestQueue(t)

	in := []float64{0.0, 0.125, 0.5, 0.875}
	a, b := float64(-10), float64(10)
	buf := fillBuffer(t, in)

	require.NoError(t, RangeTransformFP(q, a, b, int64(len(in)), buf))

	out := readBack(t, buf, len(in))
	assert.Equal(t, []float64{-10, -7.5, 0, 7.5}, out)
}

// Test clamping of the accurate variant
func TestRangeTransformFPAccurate(t *testing.T) {
	q := newTestQueue(t)

	in := []float32{-0.001, 0.0, 0.5, 0.9999999, 1.0000001, 1.5}
	a, b := float32(2), float32(5)
	buf := fillBuffer(t, in)

	require.NoError(t, RangeTransformFPAccurate(q, a, b, int64(len(in)), buf))

	out := readBack(t, buf, len(in))
	for i, v := range out {
		assert.GreaterOrEqual(t, v, a, "element %d below a", i)
		assert.LessOrEqual(t, v, b, "element %d above b", i)
	}
	// Out-of-interval inputs clamp to the exact bounds.
	assert.Equal(t, a, out[0])
	assert.Equal(t, b, out[5])
}

// Test transform argument validation
func TestRangeTransformFPContract(t *testing.T) {
	q := newTestQueue(t)
	buf := NewBuffer[float32](8)

	tests := []struct {
		name string
		call func() error
	}{
		{"nil queue", func() error {
			return RangeTransformFP[float32](nil, 0, 1, 8, buf)
		}},
		{"negative count", func() error {
			return RangeTransformFP(q, float32(0), 1, -1, buf)
		}},
		{"equal bounds", func() error {
			return RangeTransformFP(q, float32(3), 3, 8, buf)
		}},
		{"inverted bounds", func() error {
			return RangeTransformFP(q, float32(5), 2, 8, buf)
		}},
		{"nan bound", func() error {
			return RangeTransformFP(q, float32(math.NaN()), 1, 8, buf)
		}},
		{"nil buffer", func() error {
			return RangeTransformFP[float32](q, 0, 1, 8, nil)
		}},
		{"buffer too short", func() error {
			return RangeTransformFP(q, float32(0), 1, 9, buf)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var de *Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, KindContract, de.Kind)
			assert.Equal(t, "RangeTransformFP", de.Call)
		})
	}
}

// Test that zero-length transforms are complete no-ops
func TestRangeTransformZeroCount(t *testing.T) {
	q := newTestQueue(t)

	in := []float32{0.25, 0.75}
	buf := fillBuffer(t, in)
	require.NoError(t, RangeTransformFP(q, float32(2), 5, 0, buf))
	assert.Equal(t, in, readBack(t, buf, len(in)), "zero-length transform touched the buffer")

	require.NoError(t, SampleBernoulli(q, 0.5, 0, NewBuffer[float32](0), NewBuffer[int32](0)))
}

// Test that equal inputs always produce equal outputs
func TestRangeTransformReplay(t *testing.T) {
	q := newTestQueue(t)

	in := make([]float32, 512)
	for i := range in {
		in[i] = float32(i) / float32(len(in))
	}

	first := fillBuffer(t, in)
	second := fillBuffer(t, in)
	require.NoError(t, RangeTransformFP(q, float32(-3), 3, 512, first))
	require.NoError(t, RangeTransformFP(q, float32(-3), 3, 512, second))

	assert.Equal(t, readBack(t, first, 512), readBack(t, second, 512))
}

// Test the modulo reduction formula exactly
func TestRangeTransformInt(t *testing.T) {
	q := newTestQueue(t)

	src := []uint32{0, 1, 9, 10, 11, 99, 0xFFFFFFFF}
	a, b := int32(-5), int32(5)
	in := fillBuffer(t, src)
	out := NewBuffer[int32](len(src))

	require.NoError(t, RangeTransformInt(q, a, b, int64(len(src)), in, out))

	got := readBack(t, out, len(src))
	width := uint32(b - a)
	for i, w := range src {
		want := a + int32(w%width)
		assert.Equal(t, want, got[i], "element %d", i)
		assert.GreaterOrEqual(t, got[i], a)
		assert.Less(t, got[i], b)
	}
}

// Test signed reduction over the full int32 span
func TestRangeTransformIntFullSpan(t *testing.T) {
	q := newTestQueue(t)

	src := []uint32{0, 1, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFE, 0xFFFFFFFF}
	a, b := int32(math.MinInt32), int32(math.MaxInt32)
	in := fillBuffer(t, src)
	out := NewBuffer[int32](len(src))

	require.NoError(t, RangeTransformInt(q, a, b, int64(len(src)), in, out))

	got := readBack(t, out, len(src))
	width := uint32(b - a) // wraps to 2^32 - 1
	for i, w := range src {
		want := a + int32(w%width)
		assert.Equal(t, want, got[i], "element %d", i)
		assert.Less(t, got[i], b)
	}
}

// Test unsigned reduction and distribution coverage
func TestRangeTransformIntUnsigned(t *testing.T) {
	q := newTestQueue(t)

	const n = 4096
	src := make([]uint32, n)
	for i := range src {
		src[i] = uint32(i) * 2654435761 // Weyl-style spread over the word
	}
	a, b := uint32(100), uint32(1100)
	in := fillBuffer(t, src)
	out := NewBuffer[uint32](n)

	require.NoError(t, RangeTransformInt(q, a, b, n, in, out))

	got := readBack(t, out, n)
	var sum float64
	for i, v := range got {
		require.GreaterOrEqual(t, v, a, "element %d", i)
		require.Less(t, v, b, "element %d", i)
		sum += float64(v)
	}
	mean := sum / n
	assert.InDelta(t, 599.5, mean, 25, "reduced samples are badly centered")
}

// Test int transform argument validation
func TestRangeTransformIntContract(t *testing.T) {
	q := newTestQueue(t)
	in := NewBuffer[uint32](8)
	out := NewBuffer[int32](8)

	var de *Error
	err := RangeTransformInt(q, int32(5), 5, 8, in, out)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindContract, de.Kind)

	err = RangeTransformInt[int32](q, 0, 10, 8, nil, out)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindContract, de.Kind)

	err = RangeTransformInt(q, int32(0), 10, 9, in, out)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindContract, de.Kind)
}

// Test the Bernoulli threshold comparison
func TestSampleBernoulli(t *testing.T) {
	q := newTestQueue(t)

	in := fillBuffer(t, []float32{0.0, 0.1, 0.499, 0.5, 0.7, 0.999})
	out := NewBuffer[int32](6)

	require.NoError(t, SampleBernoulli(q, 0.5, 6, in, out))
	assert.Equal(t, []int32{1, 1, 1, 0, 0, 0}, readBack(t, out, 6))
}

// Test Bernoulli across output widths
func TestSampleBernoulliWidths(t *testing.T) {
	q := newTestQueue(t)
	in := fillBuffer(t, []float32{0.2, 0.8})

	narrow := NewBuffer[int8](2)
	require.NoError(t, SampleBernoulli(q, 0.5, 2, in, narrow))
	assert.Equal(t, []int8{1, 0}, readBack(t, narrow, 2))

	wide := NewBuffer[uint64](2)
	require.NoError(t, SampleBernoulli(q, 0.5, 2, in, wide))
	assert.Equal(t, []uint64{1, 0}, readBack(t, wide, 2))
}

// Test that out-of-interval probabilities yield constant streams
func TestSampleBernoulliDegenerate(t *testing.T) {
	q := newTestQueue(t)

	in := fillBuffer(t, []float32{0.0, 0.25, 0.5, 0.75, 0.999})

	tests := []struct {
		name string
		p    float32
		want int32
	}{
		{"p below zero", -1, 0},
		{"p zero", 0, 0},
		{"p above one", 2, 1},
		{"p one", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewBuffer[int32](5)
			require.NoError(t, SampleBernoulli(q, tt.p, 5, in, out))
			for i, v := range readBack(t, out, 5) {
				assert.Equal(t, tt.want, v, "element %d", i)
			}
		})
	}
}

// Test the asynchronous shape over raw device memory
func TestRangeTransformFPAsync(t *testing.T) {
	q := newTestQueue(t)

	in := []float32{0.0, 0.25, 0.5, 0.75}
	p, err := Malloc[float32](q, int64(len(in)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Free(q, p) })
	require.NoError(t, MemcpyToDevice(q, p, in))

	ev, err := RangeTransformFPAsync(q, float32(2), 5, int64(len(in)), p)
	require.NoError(t, err)
	require.NoError(t, ev.Wait())

	got := make([]float32, len(in))
	require.NoError(t, MemcpyFromDevice(q, got, p))
	assert.Equal(t, []float32{2, 2.75, 3.5, 4.25}, got)
}

// Test the accurate asynchronous shape
func TestRangeTransformFPAccurateAsync(t *testing.T) {
	q := newTestQueue(t)

	in := []float64{-0.5, 0.5, 1.5}
	p, err := Malloc[float64](q, 3)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Free(q, p) })
	require.NoError(t, MemcpyToDevice(q, p, in))

	ev, err := RangeTransformFPAccurateAsync(q, float64(0), 1, 3, p)
	require.NoError(t, err)
	require.NoError(t, ev.Wait())

	got := make([]float64, 3)
	require.NoError(t, MemcpyFromDevice(q, got, p))
	assert.Equal(t, []float64{0, 0.5, 1}, got)
}

// Test the int asynchronous shape with distinct source and destination
func TestRangeTransformIntAsync(t *testing.T) {
	q := newTestQueue(t)

	src := []uint32{3, 14, 159, 2653}
	in, err := Malloc[uint32](q, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Free(q, in) })
	require.NoError(t, MemcpyToDevice(q, in, src))

	out, err := Malloc[uint32](q, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Free(q, out) })

	ev, err := RangeTransformIntAsync(q, uint32(10), 20, 4, in, out)
	require.NoError(t, err)
	require.NoError(t, ev.Wait())

	got := make([]uint32, 4)
	require.NoError(t, MemcpyFromDevice(q, got, out))
	assert.Equal(t, []uint32{13, 14, 19, 13}, got)
}

// Test the Bernoulli asynchronous shape
func TestSampleBernoulliAsync(t *testing.T) {
	q := newTestQueue(t)

	in, err := Malloc[float32](q, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Free(q, in) })
	require.NoError(t, MemcpyToDevice(q, in, []float32{0.1, 0.6, 0.2, 0.9}))

	out, err := Malloc[uint8](q, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Free(q, out) })

	ev, err := SampleBernoulliAsync(q, 0.5, 4, in, out)
	require.NoError(t, err)
	require.NoError(t, ev.Wait())

	got := make([]uint8, 4)
	require.NoError(t, MemcpyFromDevice(q, got, out))
	assert.Equal(t, []uint8{1, 0, 1, 0}, got)
}

// Test async validation of null and dangling pointers
func TestAsyncPointerValidation(t *testing.T) {
	q := newTestQueue(t)

	var null Ptr[float32]
	_, err := RangeTransformFPAsync(q, float32(0), 1, 4, null)
	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindContract, de.Kind)

	p, err := Malloc[float32](q, 4)
	require.NoError(t, err)
	require.NoError(t, Free(q, p))

	_, err = RangeTransformFPAsync(q, float32(0), 1, 4, p)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindDeviceRuntime, de.Kind)
	assert.Equal(t, "devMemMap", de.Call)
	assert.Equal(t, "devErrorInvalidValue", de.Reason)
}

// Test the zero-length asynchronous path
func TestAsyncZeroCount(t *testing.T) {
	q := newTestQueue(t)

	p, err := Malloc[float32](q, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Free(q, p) })

	ev, err := RangeTransformFPAsync(q, float32(0), 1, 0, p)
	require.NoError(t, err)
	select {
	case <-ev.Done():
	default:
		t.Fatal("zero-length async event not already signaled")
	}
	require.NoError(t, ev.Wait())
}
