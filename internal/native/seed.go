package native

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Domain-separation tags so the same seed expands to unrelated state for
// each engine family.
const (
	seedDomainXorwow byte = 0x01
	seedDomainPhilox byte = 0x02
)

// seedStream expands a 64-bit seed into an unbounded word stream by hashing
// the seed with BLAKE2b-512 and re-hashing the block whenever it runs dry.
type seedStream struct {
	block [64]byte
	off   int
}

func newSeedStream(seed uint64, domain byte) *seedStream {
	var msg [9]byte
	binary.LittleEndian.PutUint64(msg[:8], seed)
	msg[8] = domain
	s := &seedStream{}
	s.block = blake2b.Sum512(msg[:])
	return s
}

func (s *seedStream) next32() uint32 {
	if s.off+4 > len(s.block) {
		s.block = blake2b.Sum512(s.block[:])
		s.off = 0
	}
	w := binary.LittleEndian.Uint32(s.block[s.off:])
	s.off += 4
	return w
}
