package devrand

// Entry points tying engines to distributions. Each call queues one
// in-order unit on the engine's queue: a serial vendor fill stage followed
// by the transform kernel fan-out. The blocking variants wait for the unit
// to complete; the Async variants hand back its event.

func generateArgs(op string, e *Engine, n int64) error {
	if e == nil || e.q == nil {
		return contractErr(op, "nil engine")
	}
	return checkCount(op, n)
}

func uniformFillStage[T Float](e *Engine, dst []T) func() error {
	switch d := any(dst).(type) {
	case []float32:
		return func() error { return e.fillUniform(d) }
	case []float64:
		return func() error { return e.fillUniformDouble(d) }
	}
	// Float admits exactly the two element types above.
	return func() error { return contractErr("Generate", "unsupported element type") }
}

func launchUniform[T Float](e *Engine, u Uniform[T], n int64, span []T) (*Event, error) {
	fill := uniformFillStage(e, span)
	if u.Method == Accurate {
		return e.q.submitPipeline("generateUniformAccurate", n, fill,
			rangeFPAccurateKernel(span, u.A, u.B))
	}
	return e.q.submitPipeline("generateUniform", n, fill,
		rangeFPKernel(span, u.A, u.B))
}

// Generate draws n samples from u into r: a guarded vendor fill of
// uniform [0,1) values remapped onto [u.A, u.B) on e's queue. Blocks
// until the samples are in place.
func Generate[T Float](u Uniform[T], e *Engine, n int64, r *Buffer[T]) error {
	const op = "Generate"
	if err := generateArgs(op, e, n); err != nil {
		return err
	}
	if err := checkRange(op, u.A, u.B); err != nil {
		return err
	}
	if err := checkBuffer(op, "output", r, n); err != nil {
		return err
	}
	ev, err := launchUniform(e, u, n, r.span()[:n])
	if err != nil {
		return err
	}
	return ev.Wait()
}

// GenerateAsync is Generate into raw device memory. The samples are
// defined once the returned event has completed.
func GenerateAsync[T Float](u Uniform[T], e *Engine, n int64, r Ptr[T]) (*Event, error) {
	const op = "GenerateAsync"
	if err := generateArgs(op, e, n); err != nil {
		return nil, err
	}
	if err := checkRange(op, u.A, u.B); err != nil {
		return nil, err
	}
	if err := checkPtr(op, "output", r); err != nil {
		return nil, err
	}
	span, err := devSpan(r, n)
	if err != nil {
		return nil, err
	}
	return launchUniform(e, u, n, span)
}

func launchUniformInt[T Integer32](e *Engine, u UniformInt[T], n int64, dst []T) (*Event, error) {
	// Raw generator words are staged in runtime-internal memory; the
	// caller only ever sees the reduced samples.
	scratch := make([]uint32, n)
	fill := func() error { return e.fillBits(scratch) }
	return e.q.submitPipeline("generateUniformInt", n, fill,
		rangeIntKernel(dst, scratch, u.A, u.B))
}

// GenerateInt draws n samples from u into r: raw generator words reduced
// onto [u.A, u.B) by modulo. Blocks until the samples are in place.
func GenerateInt[T Integer32](u UniformInt[T], e *Engine, n int64, r *Buffer[T]) error {
	const op = "GenerateInt"
	if err := generateArgs(op, e, n); err != nil {
		return err
	}
	if err := checkRange(op, u.A, u.B); err != nil {
		return err
	}
	if err := checkBuffer(op, "output", r, n); err != nil {
		return err
	}
	ev, err := launchUniformInt(e, u, n, r.span()[:n])
	if err != nil {
		return err
	}
	return ev.Wait()
}

// GenerateIntAsync is GenerateInt into raw device memory.
func GenerateIntAsync[T Integer32](u UniformInt[T], e *Engine, n int64, r Ptr[T]) (*Event, error) {
	const op = "GenerateIntAsync"
	if err := generateArgs(op, e, n); err != nil {
		return nil, err
	}
	if err := checkRange(op, u.A, u.B); err != nil {
		return nil, err
	}
	if err := checkPtr(op, "output", r); err != nil {
		return nil, err
	}
	span, err := devSpan(r, n)
	if err != nil {
		return nil, err
	}
	return launchUniformInt(e, u, n, span)
}

func launchBernoulli[T Integer](e *Engine, b Bernoulli[T], n int64, dst []T) (*Event, error) {
	scratch := make([]float32, n)
	fill := func() error { return e.fillUniform(scratch) }
	return e.q.submitPipeline("generateBernoulli", n, fill,
		bernoulliKernel(dst, scratch, b.P))
}

// GenerateBernoulli draws n samples from b into r: uniform [0,1) values
// compared against b.P, yielding 0 or 1. Blocks until the samples are in
// place.
func GenerateBernoulli[T Integer](b Bernoulli[T], e *Engine, n int64, r *Buffer[T]) error {
	const op = "GenerateBernoulli"
	if err := generateArgs(op, e, n); err != nil {
		return err
	}
	if err := checkBuffer(op, "output", r, n); err != nil {
		return err
	}
	ev, err := launchBernoulli(e, b, n, r.span()[:n])
	if err != nil {
		return err
	}
	return ev.Wait()
}

// GenerateBernoulliAsync is GenerateBernoulli into raw device memory.
func GenerateBernoulliAsync[T Integer](b Bernoulli[T], e *Engine, n int64, r Ptr[T]) (*Event, error) {
	const op = "GenerateBernoulliAsync"
	if err := generateArgs(op, e, n); err != nil {
		return nil, err
	}
	if err := checkPtr(op, "output", r); err != nil {
		return nil, err
	}
	span, err := devSpan(r, n)
	if err != nil {
		return nil, err
	}
	return launchBernoulli(e, b, n, span)
}
