package native

// xorwowState implements Marsaglia's xorwow generator: a five-word xorshift
// core summed with a Weyl sequence. Period 2^192 - 2^32.
type xorwowState struct {
	v [5]uint32
	d uint32
}

func newXorwow(seed uint64) *xorwowState {
	s := &xorwowState{}
	src := newSeedStream(seed, seedDomainXorwow)
	for i := range s.v {
		s.v[i] = src.next32()
	}
	// The xorshift core must not start at the all-zero fixed point.
	if s.v[0]|s.v[1]|s.v[2]|s.v[3]|s.v[4] == 0 {
		s.v[0] = 1
	}
	s.d = src.next32()
	return s
}

func (s *xorwowState) next() uint32 {
	t := s.v[0] ^ (s.v[0] >> 2)
	s.v[0] = s.v[1]
	s.v[1] = s.v[2]
	s.v[2] = s.v[3]
	s.v[3] = s.v[4]
	s.v[4] = (s.v[4] ^ (s.v[4] << 4)) ^ (t ^ (t << 1))
	s.d += 362437
	return s.v[4] + s.d
}

// skip advances the stream by n outputs. The xorshift core has no cheap
// jump, so the cost is linear in n.
func (s *xorwowState) skip(n uint64) {
	for ; n > 0; n-- {
		s.next()
	}
}
