package chunker

import (
	"io"

	"github.com/cdchunk/rabin/internal/debug"
	"github.com/cdchunk/rabin/internal/errors"
)

const (
	KiB = 1024
	MiB = 1024 * KiB

	// DefaultMinSize is the default minimum chunk size.
	DefaultMinSize = 512 * KiB
	// DefaultMaxSize is the default maximum chunk size.
	DefaultMaxSize = 8 * MiB
	// DefaultAverageBits yields an average chunk size of 2^20 bytes = 1 MiB.
	DefaultAverageBits = 20
	// DefaultSplitMask is the split-mask that corresponds to DefaultAverageBits.
	DefaultSplitMask = (1 << DefaultAverageBits) - 1

	// defaultBufSize is the size of the read-ahead buffer a Chunker fills
	// from its source.
	defaultBufSize = 512 * KiB
)

// ErrNotInitialized is returned by Next when called on a zero-value Chunker
// that was never given a polynomial. If table construction for the
// Chunker's polynomial failed, Next instead returns that failure, wrapped.
var ErrNotInitialized = errors.New("chunker: not initialized")

// Chunk is one content-defined chunk of a byte stream. Cut is the rolling
// fingerprint's value at the byte that ended the chunk. Data holds the
// chunk's bytes, backed by the scratch buffer passed to Next.
type Chunk struct {
	Start  uint
	Length uint
	Cut    uint64
	Data   []byte
}

// Reader returns an io.Reader for the chunk's bytes within r, without
// requiring the caller to hold the chunk's Data in memory.
func (c Chunk) Reader(r io.ReaderAt) io.Reader {
	return io.NewSectionReader(r, int64(c.Start), int64(c.Length))
}

// Chunker splits a byte stream read from an io.Reader into content-defined
// chunks using a rolling Rabin fingerprint. A Chunker is single-threaded:
// all work happens inside calls to Next, which may block reading from the
// underlying source.
type Chunker struct {
	pol      Pol
	hash     rollingHash
	buildErr error

	rd     io.Reader
	closed bool

	buf  []byte
	bpos uint
	bmax uint

	start uint
	count uint
	pos   uint

	// pre is the number of bytes still to be ingested, with fingerprinting
	// suppressed, before the split predicate may be evaluated.
	pre uint

	minSize, maxSize uint
	splitMask        uint64
}

// New returns a Chunker that reads from rd and cuts chunks using the
// default size window (512 KiB .. 8 MiB, average 1 MiB) under polynomial
// pol. pol must be irreducible and of degree 53; if it is not, table
// construction fails silently here and is reported by the first call to
// Next.
func New(rd io.Reader, pol Pol) *Chunker {
	return NewWithBoundaries(rd, pol, DefaultMinSize, DefaultMaxSize)
}

// NewWithBoundaries is like New but overrides the minimum and maximum chunk
// sizes. min must be at least WindowSize, and max must be at least min.
func NewWithBoundaries(rd io.Reader, pol Pol, min, max uint) *Chunker {
	checkBoundaries(min, max)

	c := &Chunker{
		buf:       make([]byte, defaultBufSize),
		minSize:   min,
		maxSize:   max,
		splitMask: DefaultSplitMask,
	}

	// table construction can only fail for a non-irreducible polynomial;
	// defer reporting that to Next, matching ErrNotInitialized's
	// "programmer error" disposition.
	_ = c.Reset(rd, pol)

	return c
}

func checkBoundaries(min, max uint) {
	if min < WindowSize {
		panic("chunker: minSize must be >= WindowSize")
	}
	if max < min {
		panic("chunker: maxSize must be >= minSize")
	}
}

// SetAverageBits sets the split mask so that chunks average 2^bits bytes
// under uniform input. It takes effect on the chunk currently being
// accumulated.
func (c *Chunker) SetAverageBits(bits int) {
	c.splitMask = (1 << uint(bits)) - 1
}

// Reset restarts the chunker so it can be reused with a different source
// and polynomial, keeping the current min/max/average-bits configuration.
// The read-ahead buffer is reused.
func (c *Chunker) Reset(rd io.Reader, pol Pol) error {
	c.pol = pol
	c.rd = rd
	c.closed = false
	c.bpos = 0
	c.bmax = 0
	c.pos = 0

	if c.buf == nil {
		c.buf = make([]byte, defaultBufSize)
	}
	if c.minSize == 0 {
		c.minSize, c.maxSize = DefaultMinSize, DefaultMaxSize
		c.splitMask = DefaultSplitMask
	}

	return c.resetRollingState()
}

// ResetWithBoundaries is like Reset but also overrides the minimum and
// maximum chunk sizes.
func (c *Chunker) ResetWithBoundaries(rd io.Reader, pol Pol, min, max uint) error {
	checkBoundaries(min, max)
	c.minSize = min
	c.maxSize = max
	return c.Reset(rd, pol)
}

// resetRollingState reinitializes the rolling hash and per-chunk
// bookkeeping: it (re)loads the tables for c.pol, zeroes the window and
// digest, seeds the fingerprint with a single slide(1) so that a run of
// null bytes doesn't collapse to a zero digest, records the current stream
// position as the new chunk's start, and sets pre so at least minSize
// bytes are ingested before a cut is considered.
func (c *Chunker) resetRollingState() error {
	t, err := getTables(c.pol)
	if err != nil {
		c.buildErr = err
		c.hash = rollingHash{}
		return err
	}

	c.buildErr = nil
	c.hash.init(t, c.pol)
	c.count = 0
	c.hash.slide(1)
	c.start = c.pos
	c.pre = c.minSize - WindowSize

	return nil
}

// Next returns the next chunk of data, reading from the underlying source
// as needed. scratch is reused (grown if necessary) to back the returned
// chunk's Data; callers that want to keep a chunk's bytes past the next
// call to Next must copy them out first.
//
// Next returns io.EOF once the stream is exhausted and there is no partial
// chunk left to emit; every subsequent call returns io.EOF again until
// Reset is called.
func (c *Chunker) Next(scratch []byte) (Chunk, error) {
	if c.hash.tables == nil {
		if c.buildErr != nil {
			return Chunk{}, errors.Wrap(c.buildErr, "chunker not initialized")
		}
		return Chunk{}, ErrNotInitialized
	}

	if c.closed {
		return Chunk{}, io.EOF
	}

	data := scratch[:0]

	for {
		if c.bpos >= c.bmax {
			n, err := c.rd.Read(c.buf)
			if err != nil && err != io.EOF {
				return Chunk{}, errors.Wrap(err, "read")
			}

			if n == 0 {
				c.closed = true
				if c.count > 0 {
					debug.Log("EOF with %d bytes pending, emitting final chunk", c.count)
					return Chunk{
						Start:  c.start,
						Length: c.count,
						Cut:    c.hash.digest,
						Data:   data,
					}, nil
				}
				return Chunk{}, io.EOF
			}

			c.bpos = 0
			c.bmax = uint(n)
		}

		// Dismiss phase: copy bytes into the chunk without fingerprinting
		// until minSize-WindowSize bytes have been ingested.
		if c.pre > 0 {
			avail := c.bmax - c.bpos
			if c.pre < avail {
				avail = c.pre
			}

			data = append(data, c.buf[c.bpos:c.bpos+avail]...)
			c.bpos += avail
			c.count += avail
			c.pos += avail
			c.pre -= avail

			continue
		}

		// Scan phase: denormalize the rolling hash into local registers,
		// the same trade the reference implementation makes, since this
		// loop runs once per input byte.
		digest := c.hash.digest
		window := c.hash.window
		wpos := c.hash.wpos
		polShift := c.hash.polShift
		tbl := c.hash.tables

		add := c.count
		cut := false
		var cutAt int

		for j, b := range c.buf[c.bpos:c.bmax] {
			out := window[wpos]
			window[wpos] = b
			digest ^= tbl.out[out]
			wpos = (wpos + 1) % WindowSize

			index := digest >> polShift
			digest <<= 8
			digest |= uint64(b)
			digest ^= tbl.mod[index&0xff]

			add++
			if add < c.minSize {
				continue
			}

			if (digest&c.splitMask) == 0 || add >= c.maxSize {
				cut = true
				cutAt = j
				break
			}
		}

		if cut {
			end := c.bpos + uint(cutAt) + 1
			data = append(data, c.buf[c.bpos:end]...)

			c.pos += uint(cutAt) + 1
			c.bpos = end
			c.count = add

			c.hash.digest = digest
			c.hash.window = window
			c.hash.wpos = wpos

			chunk := Chunk{
				Start:  c.start,
				Length: c.count,
				Cut:    digest,
				Data:   data,
			}

			if err := c.resetRollingState(); err != nil {
				return Chunk{}, err
			}

			return chunk, nil
		}

		// The buffer was exhausted without a cut: commit the scanned
		// registers, append everything scanned, and go refill.
		steps := c.bmax - c.bpos
		if steps > 0 {
			data = append(data, c.buf[c.bpos:c.bmax]...)
		}

		c.count = add
		c.pos += steps
		c.bpos = c.bmax

		c.hash.digest = digest
		c.hash.window = window
		c.hash.wpos = wpos
	}
}
