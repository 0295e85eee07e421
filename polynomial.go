package chunker

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"github.com/cdchunk/rabin/internal/errors"
	"github.com/cdchunk/rabin/internal/feature"
)

// Pol is a polynomial from GF(2)[X], packed into a uint64 so that bit i is
// the coefficient of x^i. Arithmetic on Pol is immutable: every operation
// returns a new value.
type Pol uint64

const (
	// polDegree is the degree required of polynomials used for chunking.
	polDegree = 53

	// MaxIrredTries bounds the number of candidates RandomPolynomial draws
	// before giving up.
	MaxIrredTries = 1000000
)

// ErrNoPolynomial is returned by RandomPolynomial when no irreducible
// polynomial of the required degree was found within MaxIrredTries draws.
var ErrNoPolynomial = errors.New("unable to find new irreducible polynomial")

// Add returns x+y, which in GF(2)[X] is a bitwise XOR.
func (x Pol) Add(y Pol) Pol {
	return Pol(uint64(x) ^ uint64(y))
}

// Deg returns the degree of x, the index of its highest set bit, or -1 for
// the zero polynomial.
func (x Pol) Deg() int {
	return bits.Len64(uint64(x)) - 1
}

// mul computes the carryless product of x and y without checking for
// overflow.
func (x Pol) mul(y Pol) Pol {
	if x == 0 || y == 0 {
		return 0
	}

	var res Pol
	for i := 0; i <= y.Deg(); i++ {
		if y&(1<<uint(i)) > 0 {
			res = res.Add(x << uint(i))
		}
	}

	return res
}

// mul128 computes the carryless product of x and y into a 128-bit result
// (hi, lo), used by the high-word overflow check.
func mul128(x, y Pol) (hi, lo Pol) {
	for i := 0; i <= y.Deg(); i++ {
		if y&(1<<uint(i)) == 0 {
			continue
		}
		lo ^= x << uint(i)
		if i > 0 {
			hi ^= x >> uint(64-i)
		}
	}
	return hi, lo
}

// mulOverflows reports whether x*y does not fit in 64 bits. The default
// strategy is Pike's trick: redo the division and compare, which needs no
// wide multiplier. feature.HiWordMulOverflow switches to a direct high-word
// check using a 128-bit carryless product, the alternative the package's
// design notes call out for languages with native wide multiplication.
func mulOverflows(x, y Pol) bool {
	if x <= 1 || y <= 1 {
		return false
	}

	if feature.Flag.Enabled(feature.HiWordMulOverflow) {
		hi, _ := mul128(x, y)
		return hi != 0
	}

	c := x.mul(y)
	d := c.div(y)
	return d != x
}

// Mul returns x*y. Mul panics if the mathematical product does not fit in
// 64 bits; the chunker never evaluates Mul in a way that can overflow, so
// hitting this indicates a caller error, not a recoverable condition.
func (x Pol) Mul(y Pol) Pol {
	if x == 0 || y == 0 {
		return 0
	}

	if mulOverflows(x, y) {
		panic("multiplication would overflow uint64")
	}

	return x.mul(y)
}

// DivMod returns the quotient and remainder of x divided by d, such that
// x == d*q + r and deg(r) < deg(d). DivMod panics if d is zero.
func (x Pol) DivMod(d Pol) (Pol, Pol) {
	if d == 0 {
		panic("division by zero")
	}

	if x == 0 {
		return 0, 0
	}

	D := d.Deg()
	diff := x.Deg() - D
	if diff < 0 {
		return 0, x
	}

	var q Pol
	for diff >= 0 {
		q |= 1 << uint(diff)
		x = x.Add(d << uint(diff))

		diff = x.Deg() - D
	}

	return q, x
}

// Div returns the quotient of x divided by d.
func (x Pol) Div(d Pol) Pol {
	q, _ := x.DivMod(d)
	return q
}

func (x Pol) div(d Pol) Pol {
	return x.Div(d)
}

// Mod returns the remainder of x divided by d.
func (x Pol) Mod(d Pol) Pol {
	_, r := x.DivMod(d)
	return r
}

// GCD returns the greatest common divisor of x and f.
func (x Pol) GCD(f Pol) Pol {
	if x == 0 {
		return f
	}
	if f == 0 {
		return x
	}

	if x.Deg() < f.Deg() {
		x, f = f, x
	}

	return f.GCD(x.Mod(f))
}

// mulModStep advances the square-and-add accumulator used by MulMod by one
// bit position, keeping the invariant deg(r) < deg(g).
func mulModStep(r, g Pol) Pol {
	r <<= 1
	if r.Deg() == g.Deg() {
		r = r.Add(g)
	}
	return r
}

// MulMod returns (x*f) mod g, computed by repeated squaring and addition
// under the modulus so the intermediate product never overflows.
func (x Pol) MulMod(f, g Pol) Pol {
	x = x.Mod(g)
	f = f.Mod(g)

	if x == 0 || f == 0 {
		return 0
	}

	var res Pol
	for i := f.Deg(); i >= 0; i-- {
		res = mulModStep(res, g)
		if f&(1<<uint(i)) > 0 {
			res = res.Add(x)
		}
	}

	return res
}

// qp computes (x^(2^p) + x) mod g, used only by Irreducible. x^(2^p) mod g
// is obtained by squaring the polynomial x=Pol(2) modulo g a total of p
// times.
func qp(g Pol, p int) Pol {
	h := Pol(2)
	for i := 0; i < p; i++ {
		h = h.MulMod(h, g)
	}
	return h.Add(2)
}

// Irreducible reports whether x is an irreducible polynomial, using Ben-Or's
// test: x is irreducible iff gcd(x, x^(2^i)+x mod x) == 1 for every i from 1
// to deg(x)/2.
func (x Pol) Irreducible() bool {
	for i := 1; i <= x.Deg()/2; i++ {
		if x.GCD(qp(x, i)) != 1 {
			return false
		}
	}

	return true
}

// String returns the coefficients of x in hexadecimal, e.g. "0x3da3358b4dc173".
func (x Pol) String() string {
	return fmt.Sprintf("%#x", uint64(x))
}

// Expand returns the textbook representation of x, e.g. "x^3+x+1". The zero
// polynomial expands to "0".
func (x Pol) Expand() string {
	if x == 0 {
		return "0"
	}

	s := ""
	for i := x.Deg(); i > 1; i-- {
		if x&(1<<uint(i)) > 0 {
			s += fmt.Sprintf("+x^%d", i)
		}
	}

	if x&2 > 0 {
		s += "+x"
	}

	if x&1 > 0 {
		s += "+1"
	}

	return s[1:]
}

// randomPolynomialFromReader draws candidate degree-53 polynomials from
// source until it finds an irreducible one, or gives up after
// MaxIrredTries draws.
func randomPolynomialFromReader(source io.Reader) (Pol, error) {
	buf := make([]byte, 8)

	for i := 0; i < MaxIrredTries; i++ {
		if _, err := io.ReadFull(source, buf); err != nil {
			return 0, errors.Wrap(err, "read random bits")
		}

		x := binary.LittleEndian.Uint64(buf)

		// keep only bits 0..53, then force bit 53 and bit 0 to 1
		x &= (1 << (polDegree + 1)) - 1
		x |= 1 << polDegree
		x |= 1

		p := Pol(x)
		if p.Irreducible() {
			return p, nil
		}
	}

	return 0, ErrNoPolynomial
}

// RandomPolynomial returns a random irreducible polynomial of degree 53,
// drawing entropy from crypto/rand.
func RandomPolynomial() (Pol, error) {
	return randomPolynomialFromReader(rand.Reader)
}
