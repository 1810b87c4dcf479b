package notation

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders x in the given notation. Hex and Binary use the minimal digit
// count with a 0x or 0b prefix; zero renders as 0x0 and 0b0. Default renders
// as Decimal.
func Format(x *big.Int, n Notation) string {
	switch n {
	case Hex:
		return prefixed(x, "0x", 16)
	case Binary:
		return prefixed(x, "0b", 2)
	case Float:
		return formatFloat(toFloat(x))
	}

	return x.String()
}

// Pad renders the non-negative x as an unprefixed bit string left-padded with
// zeros to at least bits characters.
func Pad(x *big.Int, bits int) string {
	s := new(big.Int).Abs(x).Text(2)
	if len(s) >= bits {
		return s
	}

	return strings.Repeat("0", bits-len(s)) + s
}

func prefixed(x *big.Int, prefix string, base int) string {
	if x.Sign() < 0 {
		return "-" + prefix + new(big.Int).Neg(x).Text(base)
	}

	return prefix + x.Text(base)
}

func toFloat(x *big.Int) float64 {
	f, _ := decimal.NewFromBigInt(x, 0).Float64()

	return f
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Result is a rendered integer. Decimal and Float results carry the signed
// interpretation of a value; Hex and Binary results carry its bit pattern.
type Result struct {
	n Notation
	x *big.Int
}

// NewResult returns a result holding a copy of x rendered in n.
func NewResult(x *big.Int, n Notation) Result {
	if n == Default {
		n = Decimal
	}

	return Result{
		n: n,
		x: new(big.Int).Set(x),
	}
}

// Notation returns the notation of the result.
func (r Result) Notation() Notation {
	return r.n
}

// Big returns a copy of the integer behind the result.
func (r Result) Big() *big.Int {
	if r.x == nil {
		return new(big.Int)
	}

	return new(big.Int).Set(r.x)
}

// Int64 returns the result as a native integer. See IsInt64.
func (r Result) Int64() int64 {
	return r.Big().Int64()
}

// IsInt64 reports whether the result fits a native integer.
func (r Result) IsInt64() bool {
	return r.Big().IsInt64()
}

// Float64 returns the result as the nearest float.
func (r Result) Float64() float64 {
	return toFloat(r.Big())
}

// String renders the result in its notation.
func (r Result) String() string {
	return Format(r.Big(), r.n)
}

// Literal returns the result as an input for further conversions.
func (r Result) Literal() Literal {
	switch r.n {
	case Hex:
		return FromHex(r.String())
	case Binary:
		return FromBin(r.String())
	case Float:
		return FromFloat(r.Float64())
	}

	return FromBig(r.Big())
}
