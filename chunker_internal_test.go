package chunker

import "math/rand"

// getRandom returns count bytes of pseudo-random data derived from seed:
// four little-endian bytes drawn from each successive math/rand.Uint32().
// This fixture, not the chunker itself, is what the golden test vectors in
// this package were produced against.
func getRandom(seed, count int) []byte {
	buf := make([]byte, count)

	rnd := rand.New(rand.NewSource(int64(seed)))
	for i := 0; i < count; i += 4 {
		r := rnd.Uint32()
		buf[i] = byte(r)
		buf[i+1] = byte(r >> 8)
		buf[i+2] = byte(r >> 16)
		buf[i+3] = byte(r >> 24)
	}

	return buf
}
