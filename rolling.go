package chunker

// WindowSize is the width in bytes of the sliding window the rolling
// fingerprint is computed over.
const WindowSize = 64

// rollingHash is the minimum state needed to advance a Rabin fingerprint
// one byte at a time: the trailing WindowSize bytes currently contributing
// to digest, and the tables/shift derived from the chunker's polynomial.
//
// It is a separate type from Chunker so the fingerprint update (slide) is
// logically independent of chunk-boundary bookkeeping, even though the
// Chunker's scan loop in chunker.go denormalizes it into local registers for speed,
// the same trade the teacher's own Next implementation makes.
type rollingHash struct {
	tables   *tables
	polShift uint

	window [WindowSize]byte
	wpos   int

	digest uint64
}

// init resets the rolling hash to its zero state for polynomial pol's
// tables, ready for a fresh slide(1) seed.
func (r *rollingHash) init(t *tables, pol Pol) {
	r.tables = t
	r.polShift = uint(pol.Deg() - 8)
	r.window = [WindowSize]byte{}
	r.wpos = 0
	r.digest = 0
}

// slide advances the fingerprint by one byte: b enters the window, the
// byte it displaces is cancelled from the digest, and the digest is
// reduced modulo the polynomial via a single table lookup and XOR.
func (r *rollingHash) slide(b byte) {
	out := r.window[r.wpos]
	r.window[r.wpos] = b
	r.digest ^= r.tables.out[out]
	r.wpos = (r.wpos + 1) % WindowSize

	r.append(b)
}

// append folds byte b into the digest without touching the window; slide
// calls it after rotating the window.
func (r *rollingHash) append(b byte) {
	index := r.digest >> r.polShift
	r.digest <<= 8
	r.digest |= uint64(b)
	r.digest ^= r.tables.mod[index&0xff]
}
