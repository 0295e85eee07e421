package chunker

import (
	"strconv"
	"testing"

	rtest "github.com/cdchunk/rabin/internal/test"
)

func parseBin(t testing.TB, s string) Pol {
	t.Helper()
	i, err := strconv.ParseUint(s, 2, 64)
	rtest.OK(t, err)
	return Pol(i)
}

func TestPolAdd(t *testing.T) {
	tests := []struct {
		x, y, sum Pol
	}{
		{23, 16, 23 ^ 16},
		{0x9a7e30d1e855e0a0, 0x670102a1f4bcd414, 0xfd7f32701ce934b4},
		{0x9a7e30d1e855e0a0, 0x9a7e30d1e855e0a0, 0},
	}

	for _, test := range tests {
		rtest.Equals(t, test.sum, test.x.Add(test.y))
		rtest.Equals(t, test.sum, test.y.Add(test.x))
	}
}

func TestPolMul(t *testing.T) {
	tests := []struct {
		x, y, res Pol
	}{
		{1, 2, 2},
		{parseBin(t, "1101"), parseBin(t, "10"), parseBin(t, "11010")},
		{parseBin(t, "1101"), parseBin(t, "11"), parseBin(t, "10111")},
		{0x40000000, 0x40000000, 0x1000000000000000},
		{parseBin(t, "1010"), parseBin(t, "100100"), parseBin(t, "101101000")},
		{parseBin(t, "100"), parseBin(t, "11"), parseBin(t, "1100")},
		{parseBin(t, "11"), parseBin(t, "110101"), parseBin(t, "1011111")},
		{parseBin(t, "10011"), parseBin(t, "110101"), parseBin(t, "1100001111")},
	}

	for i, test := range tests {
		m := test.x.Mul(test.y)
		rtest.Assert(t, test.res == m, "test %d: %v * %v: want %v, got %v", i, test.x, test.y, test.res, m)

		m = test.y.Mul(test.x)
		rtest.Assert(t, test.res == m, "test %d (commuted): %v * %v: want %v, got %v", i, test.y, test.x, test.res, m)
	}
}

func TestPolMulOverflow(t *testing.T) {
	defer func() {
		err := recover()
		if e, ok := err.(string); ok && e == "multiplication would overflow uint64" {
			return
		}
		t.Fatalf("expected overflow panic, got %v", err)
	}()

	x := Pol(1 << 63)
	x.Mul(2)
	t.Fatal("overflow test did not panic")
}

func TestPolDiv(t *testing.T) {
	tests := []struct {
		x, y, res Pol
	}{
		{10, 50, 0},
		{0, 1, 0},
		{parseBin(t, "101101000"), parseBin(t, "1010"), parseBin(t, "100100")},
		{2, 2, 1},
		{0x8000000000000000, 0x8000000000000000, 1},
		{parseBin(t, "1100"), parseBin(t, "100"), parseBin(t, "11")},
		{parseBin(t, "1100001111"), parseBin(t, "10011"), parseBin(t, "110101")},
	}

	for i, test := range tests {
		m := test.x.Div(test.y)
		rtest.Assert(t, test.res == m, "test %d: %v / %v: want %v, got %v", i, test.x, test.y, test.res, m)
	}
}

func TestPolDivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()

	Pol(10).Div(0)
}

func TestPolMod(t *testing.T) {
	tests := []struct {
		x, y, res Pol
	}{
		{10, 50, 10},
		{0, 1, 0},
		{parseBin(t, "101101001"), parseBin(t, "1010"), parseBin(t, "1")},
		{2, 2, 0},
		{0x8000000000000000, 0x8000000000000000, 0},
		{parseBin(t, "1100"), parseBin(t, "100"), parseBin(t, "0")},
		{parseBin(t, "1100001111"), parseBin(t, "10011"), parseBin(t, "0")},
	}

	for _, test := range tests {
		rtest.Equals(t, test.res, test.x.Mod(test.y))
	}
}

func TestPolDivModIdentity(t *testing.T) {
	xs := []Pol{0x2482734cacca49, 0x3af4b284899, 0x3DA3358B4DC173, 12345, 1}
	ds := []Pol{0x3af4b284899, 7, 0x230d2259defd, 3}

	for _, x := range xs {
		for _, d := range ds {
			q, r := x.DivMod(d)
			rtest.Equals(t, x, d.Mul(q).Add(r))
		}
	}
}

func TestPolDeg(t *testing.T) {
	f := Pol(0x3af4b284899)
	rtest.Equals(t, 41, f.Deg())
}

func TestPolExpand(t *testing.T) {
	pol := Pol(0x3DA3358B4DC173)
	s := pol.Expand()
	rtest.Equals(t, "x^53+x^52+x^51+x^50+x^48+x^47+x^45+x^41+x^40+x^37+x^36+x^34+x^32+x^31+x^27+x^25+x^24+x^22+x^19+x^18+x^16+x^15+x^14+x^8+x^6+x^5+x^4+x+1", s)
}

func TestPolIrreducible(t *testing.T) {
	tests := []struct {
		f     Pol
		irred bool
	}{
		{0x38f1e565e288df, false},
		{0x3DA3358B4DC173, true},
		{0x30a8295b9d5c91, false},
		{0x255f4350b962cb, false},
		{0x267f776110a235, false},
		{0x2f4dae10d41227, false},
		{0x2482734cacca49, true},
		{0x312daf4b284899, false},
		{0x29dfb6553d01d1, false},
		{0x3548245eb26257, false},
		{0x3199e7ef4211b3, false},
		{0x362f39017dae8b, false},
		{0x200d57aa6fdacb, false},
		{0x35e0a4efa1d275, false},
		{0x2ced55b026577f, false},
		{0x260b012010893d, false},
		{0x2df29cbcd59e9d, false},
		{0x3f2ac7488bd429, false},
		{0x3e5cb1711669fb, false},
		{0x226d8de57a9959, false},
		{0x3c8de80aaf5835, false},
		{0x2026a59efb219b, false},
		{0x39dfa4d13fb231, false},
		{0x3143d0464b3299, false},
	}

	for _, test := range tests {
		rtest.Assert(t, test.f.Irreducible() == test.irred,
			"irreducibility test for %v failed: got %v, wanted %v",
			test.f, test.f.Irreducible(), test.irred)
	}
}

func TestPolGCD(t *testing.T) {
	tests := []struct {
		f1, f2, gcd Pol
	}{
		{10, 50, 2},
		{0, 1, 1},
		{parseBin(t, "101101001"), parseBin(t, "1010"), parseBin(t, "1")},
		{2, 2, 2},
		{parseBin(t, "1010"), parseBin(t, "11"), parseBin(t, "11")},
		{0x8000000000000000, 0x8000000000000000, 0x8000000000000000},
		{parseBin(t, "1100"), parseBin(t, "101"), parseBin(t, "11")},
		{parseBin(t, "1100001111"), parseBin(t, "10011"), parseBin(t, "10011")},
		{0x3DA3358B4DC173, 0x3DA3358B4DC173, 0x3DA3358B4DC173},
		{0x3DA3358B4DC173, 0x230d2259defd, 1},
		{0x230d2259defd, 0x51b492b3eff2, parseBin(t, "10011")},
	}

	for i, test := range tests {
		gcd := test.f1.GCD(test.f2)
		rtest.Assert(t, test.gcd == gcd, "test %d: got %v, wanted %v", i, gcd, test.gcd)

		gcd = test.f2.GCD(test.f1)
		rtest.Assert(t, test.gcd == gcd, "test %d (commuted): got %v, wanted %v", i, gcd, test.gcd)
	}
}

func TestPolMulMod(t *testing.T) {
	tests := []struct {
		f1, f2, g, mod Pol
	}{
		{0x1230, 0x230, 0x55, 0x22},
		{0x0eae8c07dbbb3026, 0xd5d6db9de04771de, 0xdd2bda3b77c9, 0x425ae8595b7a},
	}

	for i, test := range tests {
		mod := test.f1.MulMod(test.f2, test.g)
		rtest.Assert(t, mod == test.mod, "test %d: got %v, wanted %v", i, mod, test.mod)
	}
}

func TestRandomPolynomial(t *testing.T) {
	p, err := RandomPolynomial()
	rtest.OK(t, err)
	rtest.Assert(t, p.Irreducible(), "RandomPolynomial returned a reducible polynomial")
	rtest.Equals(t, polDegree, p.Deg())
}

func TestRandomPolynomialFromReader(t *testing.T) {
	p, err := randomPolynomialFromReader(getRandomReader(23))
	rtest.OK(t, err)
	rtest.Assert(t, p.Irreducible(), "randomPolynomialFromReader returned a reducible polynomial")
	rtest.Equals(t, polDegree, p.Deg())
}

// getRandomReader adapts the package's deterministic byte fixture to an
// io.Reader so randomPolynomialFromReader can be exercised without
// crypto/rand, keeping this test reproducible.
func getRandomReader(seed int) *deterministicReader {
	return &deterministicReader{data: getRandom(seed, 8*MaxIrredTries)}
}

type deterministicReader struct {
	data []byte
	pos  int
}

func (r *deterministicReader) Read(p []byte) (int, error) {
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
