package chunker

import (
	"github.com/cdchunk/rabin/internal/debug"
	"github.com/cdchunk/rabin/internal/errors"
	"github.com/puzpuzpuz/xsync/v3"
)

// tableEntries is the width of each lookup table: one entry per byte value.
const tableEntries = 256

// tables holds the two lookup tables a rolling hash needs for a given
// polynomial. Once built, a *tables value is never mutated, so it may be
// shared by any number of Chunkers without further synchronization.
type tables struct {
	out [tableEntries]uint64
	mod [tableEntries]uint64
}

// cache is the process-wide, append-only map from polynomial to its tables.
// xsync.MapOf gives lock-free reads of an already-inserted entry; insertion is
// serialized by LoadOrStore, which tolerates the redundant-build race the
// package's concurrency model explicitly allows (table construction is
// pure, so two goroutines racing to build the same polynomial's tables
// simply do the same work twice and agree on the result).
var cache = xsync.NewMapOf[Pol, *tables]()

// getTables returns the shared tables for pol, building and memoizing them
// on first use. pol must be irreducible; non-irreducible polynomials are a
// caller error, reported as ErrNotInitialized-adjacent failures by
// newTables.
func getTables(pol Pol) (*tables, error) {
	if t, ok := cache.Load(pol); ok {
		return t, nil
	}

	t, err := newTables(pol)
	if err != nil {
		return nil, err
	}

	actual, _ := cache.LoadOrStore(pol, t)
	return actual, nil
}

// newTables computes the out and mod tables for pol from scratch.
func newTables(pol Pol) (*tables, error) {
	if !pol.Irreducible() {
		return nil, errors.New("polynomial is not irreducible")
	}

	t := &tables{}

	// out[b] = Hash(b, 0, 0, ..., 0) over a window of WindowSize bytes.
	// Sliding out byte b0 from a window whose hash is H(b0..bN) is then
	// just H(b0..bN) XOR out[b0], which cancels b0's contribution and
	// leaves the window ready for the next incoming byte.
	for b := 0; b < tableEntries; b++ {
		var h uint64

		h = appendByteMod(h, byte(b), uint64(pol))
		for i := 0; i < WindowSize-1; i++ {
			h = appendByteMod(h, 0, uint64(pol))
		}

		t.out[b] = h
	}

	// mod[b] = (b(x)*x^k mod pol) | (b(x)*x^k), k = deg(pol). The top 8
	// bits about to be shifted out of the digest select this table; XORing
	// with the selected entry both reduces modulo pol and cancels those
	// top bits in a single operation.
	k := uint(pol.Deg())
	for b := 0; b < tableEntries; b++ {
		shifted := uint64(b) << k
		t.mod[b] = mod(shifted, uint64(pol)) | shifted
	}

	debug.Log("built rabin tables for polynomial %v", pol)

	return t, nil
}

// appendByteMod appends byte b to the running hash h under polynomial pol:
// (h*x^8 + b) mod pol.
func appendByteMod(h uint64, b byte, pol uint64) uint64 {
	h <<= 8
	h |= uint64(b)
	return mod(h, pol)
}

// mod computes the remainder of x divided by pol in GF(2)[X], used only
// while building tables (the hot path uses the mod table instead).
func mod(x, pol uint64) uint64 {
	for deg64(x) >= deg64(pol) {
		shift := uint(deg64(x) - deg64(pol))
		x ^= pol << shift
	}
	return x
}

func deg64(x uint64) int {
	return Pol(x).Deg()
}
