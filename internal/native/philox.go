package native

import "math/bits"

// Philox4x32-10 round constants (Salmon et al., "Parallel Random Numbers:
// As Easy as 1, 2, 3").
const (
	philoxM0 uint32 = 0xD2511F53
	philoxM1 uint32 = 0xCD9E8D57
	philoxW0 uint32 = 0x9E3779B9
	philoxW1 uint32 = 0xBB67AE85
)

// philoxState implements the Philox4x32-10 counter-based generator. The
// absolute output position is part of the state, so jumps are O(1).
type philoxState struct {
	key [2]uint32
	hi  [2]uint32 // counter words 2 and 3, fixed per stream
	pos uint64    // absolute 32-bit output position

	buf      [4]uint32
	bufBlock uint64 // block index held in buf; ^0 when empty
}

func newPhilox(seed uint64) *philoxState {
	src := newSeedStream(seed, seedDomainPhilox)
	return &philoxState{
		key:      [2]uint32{src.next32(), src.next32()},
		hi:       [2]uint32{src.next32(), src.next32()},
		bufBlock: ^uint64(0),
	}
}

func philoxBlock(ctr [4]uint32, key [2]uint32) [4]uint32 {
	k0, k1 := key[0], key[1]
	for round := 0; round < 10; round++ {
		if round > 0 {
			k0 += philoxW0
			k1 += philoxW1
		}
		hi0, lo0 := bits.Mul32(philoxM0, ctr[0])
		hi1, lo1 := bits.Mul32(philoxM1, ctr[2])
		ctr = [4]uint32{hi1 ^ ctr[1] ^ k0, lo1, hi0 ^ ctr[3] ^ k1, lo0}
	}
	return ctr
}

func (s *philoxState) next() uint32 {
	blk := s.pos >> 2
	if blk != s.bufBlock {
		ctr := [4]uint32{uint32(blk), uint32(blk >> 32), s.hi[0], s.hi[1]}
		s.buf = philoxBlock(ctr, s.key)
		s.bufBlock = blk
	}
	w := s.buf[s.pos&3]
	s.pos++
	return w
}

func (s *philoxState) skip(n uint64) {
	s.pos += n
}
