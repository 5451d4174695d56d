package native

import (
	"sync"
	"unsafe"
)

// Ptr is an opaque device memory address. The zero value is the null
// pointer and is never issued by MemAlloc.
type Ptr uint64

const allocAlign = 64

type allocation struct {
	dev  int32
	data []byte
}

var heap struct {
	mu     sync.Mutex
	seq    uint64
	used   map[int32]int64
	allocs map[Ptr]*allocation
}

// alignedBytes allocates n bytes at an allocAlign-aligned base address, so
// typed views of device memory never straddle element boundaries.
func alignedBytes(n int64) []byte {
	buf := make([]byte, int(n)+allocAlign)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	off := int((allocAlign - addr%allocAlign) % allocAlign)
	return buf[off : off+int(n) : off+int(n)]
}

// CheckDevice validates a device index against the platform topology.
func CheckDevice(dev int32) DeviceStatus {
	if dev < 0 || dev >= DeviceCount() {
		return DeviceErrorInvalidDevice
	}
	return DeviceSuccess
}

// MemAlloc reserves n bytes on dev. The capacity check runs before any
// backing memory is committed, so an oversized request is rejected cheaply
// with DeviceErrorMemoryAllocation.
func MemAlloc(dev int32, n int64) (Ptr, DeviceStatus) {
	if rc := CheckDevice(dev); rc != DeviceSuccess {
		return 0, rc
	}
	if n <= 0 {
		return 0, DeviceErrorInvalidValue
	}
	heap.mu.Lock()
	defer heap.mu.Unlock()
	if heap.allocs == nil {
		heap.used = make(map[int32]int64)
		heap.allocs = make(map[Ptr]*allocation)
	}
	if heap.used[dev]+n > HeapBytes() {
		return 0, DeviceErrorMemoryAllocation
	}
	heap.seq++
	p := Ptr(heap.seq)
	heap.allocs[p] = &allocation{dev: dev, data: alignedBytes(n)}
	heap.used[dev] += n
	return p, DeviceSuccess
}

// MemFree releases an allocation. Freeing the null pointer is a successful
// no-op; an unknown or already-freed pointer fails with
// DeviceErrorInvalidValue.
func MemFree(p Ptr) DeviceStatus {
	if p == 0 {
		return DeviceSuccess
	}
	heap.mu.Lock()
	defer heap.mu.Unlock()
	a, ok := heap.allocs[p]
	if !ok {
		return DeviceErrorInvalidValue
	}
	heap.used[a.dev] -= int64(len(a.data))
	delete(heap.allocs, p)
	return DeviceSuccess
}

// MemResolve maps the first n bytes of the allocation at p into an
// addressable span. A span handed out before MemFree stays writable for the
// code holding it; subsequent resolves of the freed pointer fail.
func MemResolve(p Ptr, n int64) ([]byte, DeviceStatus) {
	if n < 0 {
		return nil, DeviceErrorInvalidValue
	}
	heap.mu.Lock()
	defer heap.mu.Unlock()
	a, ok := heap.allocs[p]
	if !ok {
		return nil, DeviceErrorInvalidValue
	}
	if n > int64(len(a.data)) {
		return nil, DeviceErrorInvalidValue
	}
	return a.data[:n:n], DeviceSuccess
}

// HeapInUse reports the bytes currently allocated on dev.
func HeapInUse(dev int32) int64 {
	heap.mu.Lock()
	defer heap.mu.Unlock()
	return heap.used[dev]
}
