// Package devrand post-processes raw accelerator RNG output into usable
// random streams. It layers a Go API over a simulated vendor stack: engines
// produce raw uniform bits through guarded native calls, and transform
// kernels remap them onto caller-requested ranges and distributions on an
// in-order command queue.
//
// Work is submitted in two shapes. Managed-buffer entry points block until
// the kernel has completed and return its outcome directly. Raw-pointer
// entry points return an Event immediately; completion and failure are
// observed through Event.Wait. Kernels submitted to one queue always
// execute in submission order.
//
// Every native failure surfaces as *Error carrying the originating call
// name and the decoded status, and is returned as-is along the call chain.
// Nothing is retried.
package devrand

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-devrand/internal/native"
)

// launchFaultCode is the raw status reported when a kernel faults during
// execution. It is not part of the runtime's status set, so it decodes to
// the unknown-status placeholder.
const launchFaultCode = 719

// kernelFn computes one element of a launch. Implementations capture their
// operand spans and scalar parameters; i is the global element index.
type kernelFn func(i int64)

type job struct {
	op    string
	n     int64
	pre   func() error // serial stage run before the kernel fan-out
	kern  kernelFn
	fence bool
	ev    *Event
}

// QueueConfig configures an in-order command queue.
type QueueConfig struct {
	// Device selects the target device index. The default is device 0.
	Device int32

	// Workers bounds the goroutines fanned out per kernel launch. Zero or
	// negative selects the platform default (DEVRAND_WORKERS, falling
	// back to the CPU count).
	Workers int

	// Logger receives dispatch traces at Debug level and kernel faults at
	// Error level. Nil uses slog.Default().
	Logger *slog.Logger
}

// Queue is an in-order accelerator command queue. A single dispatcher
// drains submissions in FIFO order; each kernel launch is fanned out
// across the configured worker count. Close rejects further submissions
// and waits for queued work to finish.
type Queue struct {
	dev     int32
	workers int
	log     *slog.Logger

	jobs chan *job

	mu     sync.Mutex
	closed bool
	done   sync.WaitGroup
}

// NewQueue creates a command queue bound to cfg.Device.
func NewQueue(cfg QueueConfig) (*Queue, error) {
	if err := checkDevice("devSetDevice", native.CheckDevice(cfg.Device)); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = native.DefaultWorkers()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	q := &Queue{
		dev:     cfg.Device,
		workers: workers,
		log:     log,
		jobs:    make(chan *job, 128),
	}
	q.done.Add(1)
	go q.dispatch()
	log.Debug("queue created", "device", q.dev, "workers", q.workers)
	return q, nil
}

// Device returns the device index the queue is bound to.
func (q *Queue) Device() int32 {
	return q.dev
}

func (q *Queue) dispatch() {
	defer q.done.Done()
	for jb := range q.jobs {
		q.run(jb)
	}
}

func (q *Queue) run(jb *job) {
	if jb.fence {
		jb.ev.complete(nil)
		return
	}
	start := time.Now()
	err := q.execute(jb)
	elapsed := time.Since(start)
	recordLaunch(q.dev, jb.op, jb.n, elapsed, err)
	if err == nil {
		q.log.Debug("kernel complete",
			"op", jb.op, "device", q.dev, "n", jb.n, "elapsed", elapsed)
	}
	jb.ev.complete(err)
}

func (q *Queue) execute(jb *job) error {
	if jb.pre != nil {
		if err := q.runPre(jb); err != nil {
			return err
		}
	}
	if jb.kern == nil {
		return nil
	}
	return q.launch(jb)
}

// runPre executes the serial stage. A panic here is reported the same way
// as a kernel fault so the dispatcher survives.
func (q *Queue) runPre(jb *job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error("generator stage faulted", "op", jb.op, "panic", r)
			err = checkDevice("devLaunchKernel", native.DeviceStatus(launchFaultCode))
		}
	}()
	return jb.pre()
}

// launch fans the index range [0, n) out across the worker count, last
// worker taking the remainder. A recovered panic in any worker fails the
// whole launch.
func (q *Queue) launch(jb *job) error {
	workers := q.workers
	if int64(workers) > jb.n {
		workers = int(jb.n)
	}
	per := jb.n / int64(workers)

	var (
		wg      sync.WaitGroup
		faulted atomic.Bool
	)
	for w := 0; w < workers; w++ {
		lo := int64(w) * per
		hi := lo + per
		if w == workers-1 {
			hi = jb.n
		}
		wg.Add(1)
		go func(lo, hi int64) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					faulted.Store(true)
					q.log.Error("kernel faulted", "op", jb.op, "panic", r)
				}
			}()
			for i := lo; i < hi; i++ {
				jb.kern(i)
			}
		}(lo, hi)
	}
	wg.Wait()

	if faulted.Load() {
		return checkDevice("devLaunchKernel", native.DeviceStatus(launchFaultCode))
	}
	return nil
}

func (q *Queue) enqueue(jb *job) (*Event, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil, checkDevice("devLaunchKernel", native.DeviceErrorNotPermitted)
	}
	jb.ev = newEvent()
	q.jobs <- jb
	return jb.ev, nil
}

// submit queues a bare kernel launch over n elements. Zero-length launches
// complete immediately without reaching the queue.
func (q *Queue) submit(op string, n int64, kern kernelFn) (*Event, error) {
	if n == 0 {
		return completedEvent(), nil
	}
	return q.enqueue(&job{op: op, n: n, kern: kern})
}

// submitPipeline queues a serial generator stage followed by a kernel
// fan-out as one in-order unit. The kernel does not run if the generator
// stage fails.
func (q *Queue) submitPipeline(op string, n int64, pre func() error, kern kernelFn) (*Event, error) {
	if n == 0 {
		return completedEvent(), nil
	}
	return q.enqueue(&job{op: op, n: n, pre: pre, kern: kern})
}

func (q *Queue) submitAndWait(op string, n int64, kern kernelFn) error {
	ev, err := q.submit(op, n, kern)
	if err != nil {
		return err
	}
	return ev.Wait()
}

// Synchronize blocks until every kernel submitted before the call has run
// to completion.
func (q *Queue) Synchronize() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return checkDevice("devStreamSynchronize", native.DeviceErrorNotPermitted)
	}
	ev := newEvent()
	q.jobs <- &job{op: "fence", fence: true, ev: ev}
	q.mu.Unlock()
	return ev.Wait()
}

// Close rejects further submissions, lets already-queued kernels run to
// completion, and stops the dispatcher. Close is idempotent and never
// cancels in-flight work.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	q.done.Wait()
	return nil
}
