package devrand

import (
	"unsafe"

	"github.com/opd-ai/go-devrand/internal/native"
)

// Element constrains device memory element types to the fixed-width
// scalars kernels operate on.
type Element interface {
	float32 | float64 | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64
}

func elemSize[T Element]() int64 {
	var zero T
	return int64(unsafe.Sizeof(zero))
}

// Buffer is a runtime-managed region of elements of T, the operand form
// used by the blocking entry points. The backing store belongs to the
// runtime: host code moves data in and out with Write and Read, while
// kernels access it directly during a launch.
type Buffer[T Element] struct {
	data []T
}

// NewBuffer allocates a managed buffer of n elements, zero-initialized.
func NewBuffer[T Element](n int) *Buffer[T] {
	return &Buffer[T]{data: make([]T, n)}
}

// Len returns the element count.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Write copies src into the buffer starting at element 0.
func (b *Buffer[T]) Write(src []T) error {
	if len(src) > len(b.data) {
		return contractErr("Buffer.Write", "source longer than buffer")
	}
	copy(b.data, src)
	return nil
}

// Read copies len(dst) elements out of the buffer starting at element 0.
func (b *Buffer[T]) Read(dst []T) error {
	if len(dst) > len(b.data) {
		return contractErr("Buffer.Read", "destination longer than buffer")
	}
	copy(dst, b.data)
	return nil
}

// span exposes the backing store to kernels.
func (b *Buffer[T]) span() []T {
	return b.data
}

// Ptr is a typed raw device pointer, the operand form used by the
// asynchronous entry points. Memory behind a Ptr is owned by the caller:
// allocated with Malloc, released with Free, moved with the Memcpy
// functions, and kept live until every launch touching it has completed.
// The zero value is the null pointer.
type Ptr[T Element] struct {
	addr native.Ptr
}

// IsNull reports whether p is the null pointer.
func (p Ptr[T]) IsNull() bool {
	return p.addr == 0
}

// devSpan maps n elements behind p into an addressable span through the
// driver. Resolution failures (freed or foreign pointers, undersized
// allocations) surface as device runtime errors.
func devSpan[T Element](p Ptr[T], n int64) ([]T, error) {
	raw, st := native.MemResolve(p.addr, n*elemSize[T]())
	if err := checkDevice("devMemMap", st); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n), nil
}

// Malloc allocates n elements of device memory on q's device.
func Malloc[T Element](q *Queue, n int64) (Ptr[T], error) {
	const op = "Malloc"
	if q == nil {
		return Ptr[T]{}, contractErr(op, "nil queue")
	}
	if n <= 0 {
		return Ptr[T]{}, contractErr(op, "element count must be positive")
	}
	addr, st := native.MemAlloc(q.Device(), n*elemSize[T]())
	if err := checkDevice("devMalloc", st); err != nil {
		return Ptr[T]{}, err
	}
	return Ptr[T]{addr: addr}, nil
}

// Free releases device memory allocated with Malloc. Freeing the null
// pointer is a no-op; freeing any other pointer twice is a device runtime
// error.
func Free[T Element](q *Queue, p Ptr[T]) error {
	if q == nil {
		return contractErr("Free", "nil queue")
	}
	return checkDevice("devFree", native.MemFree(p.addr))
}

// MemcpyToDevice copies len(src) elements from host memory to device
// memory. The copy is complete when the call returns.
func MemcpyToDevice[T Element](q *Queue, dst Ptr[T], src []T) error {
	const op = "MemcpyToDevice"
	if q == nil {
		return contractErr(op, "nil queue")
	}
	if dst.IsNull() {
		return contractErr(op, "null destination pointer")
	}
	span, err := devSpan(dst, int64(len(src)))
	if err != nil {
		return err
	}
	copy(span, src)
	return nil
}

// MemcpyFromDevice copies len(dst) elements from device memory to host
// memory. The copy is complete when the call returns.
func MemcpyFromDevice[T Element](q *Queue, dst []T, src Ptr[T]) error {
	const op = "MemcpyFromDevice"
	if q == nil {
		return contractErr(op, "nil queue")
	}
	if src.IsNull() {
		return contractErr(op, "null source pointer")
	}
	span, err := devSpan(src, int64(len(dst)))
	if err != nil {
		return err
	}
	copy(dst, span)
	return nil
}
