// Package arith implements integer arithmetic and bit manipulation under a
// fixed-width mode.
//
// Every operand is parsed, reduced into the mode and then taken at its
// mathematical value (negative when the mode is signed and the sign bit is
// set). The exact result is reduced into the mode again, so overflow wraps
// around instead of failing.
package arith

import (
	"math/big"

	"github.com/zeebo/errs"

	"github.com/calebcase/pir/integer"
	"github.com/calebcase/pir/mode"
	"github.com/calebcase/pir/notation"
)

var (
	// Error is the class of arithmetic errors.
	Error = errs.Class("arith")

	// RangeError is the class of invalid bit ranges and shift amounts.
	RangeError = errs.Class("range")
)

// ErrDivisionByZero is returned by Div, Rem and DivFloat for a zero divisor.
var ErrDivisionByZero = Error.New("division by zero")

// Unit performs operations under a mode.
type Unit struct {
	Mode   mode.Mode
	Parser notation.Parser
}

// New returns a unit using the default parser.
func New(m mode.Mode) Unit {
	return Unit{
		Mode:   m,
		Parser: notation.DefaultParser,
	}
}

// operands returns the mathematical values of the literals.
func (u Unit) operands(ls ...notation.Literal) (xs []*big.Int, err error) {
	err = u.Mode.Validate()
	if err != nil {
		return nil, err
	}

	xs = make([]*big.Int, 0, len(ls))
	for _, l := range ls {
		v, err := integer.FromLiteral(u.Parser, l, u.Mode)
		if err != nil {
			return nil, err
		}

		xs = append(xs, v.Int())
	}

	return xs, nil
}

func (u Unit) binary(a, b notation.Literal, op func(z, x, y *big.Int) *big.Int) (v integer.Value, err error) {
	defer Error.WrapP(&err)

	xs, err := u.operands(a, b)
	if err != nil {
		return v, err
	}

	return integer.Canonical(op(new(big.Int), xs[0], xs[1]), u.Mode), nil
}

// Add returns a + b.
func (u Unit) Add(a, b notation.Literal) (integer.Value, error) {
	return u.binary(a, b, (*big.Int).Add)
}

// Sub returns a - b.
func (u Unit) Sub(a, b notation.Literal) (integer.Value, error) {
	return u.binary(a, b, (*big.Int).Sub)
}

// Mul returns a * b.
func (u Unit) Mul(a, b notation.Literal) (integer.Value, error) {
	return u.binary(a, b, (*big.Int).Mul)
}

// Div returns a / b truncated toward zero.
func (u Unit) Div(a, b notation.Literal) (integer.Value, error) {
	return u.divide(a, b, (*big.Int).Quo)
}

// Rem returns the remainder of Div. It has the sign of a.
func (u Unit) Rem(a, b notation.Literal) (integer.Value, error) {
	return u.divide(a, b, (*big.Int).Rem)
}

func (u Unit) divide(a, b notation.Literal, op func(z, x, y *big.Int) *big.Int) (v integer.Value, err error) {
	defer Error.WrapP(&err)

	xs, err := u.operands(a, b)
	if err != nil {
		return v, err
	}

	if xs[1].Sign() == 0 {
		return v, ErrDivisionByZero
	}

	return integer.Canonical(op(new(big.Int), xs[0], xs[1]), u.Mode), nil
}

// DivFloat returns a / b as the nearest float64.
func (u Unit) DivFloat(a, b notation.Literal) (f float64, err error) {
	defer Error.WrapP(&err)

	xs, err := u.operands(a, b)
	if err != nil {
		return 0, err
	}

	if xs[1].Sign() == 0 {
		return 0, ErrDivisionByZero
	}

	f, _ = new(big.Rat).SetFrac(xs[0], xs[1]).Float64()

	return f, nil
}

// And returns the bitwise and of a and b.
func (u Unit) And(a, b notation.Literal) (integer.Value, error) {
	return u.binary(a, b, (*big.Int).And)
}

// Or returns the bitwise or of a and b.
func (u Unit) Or(a, b notation.Literal) (integer.Value, error) {
	return u.binary(a, b, (*big.Int).Or)
}

// Xor returns the bitwise exclusive or of a and b.
func (u Unit) Xor(a, b notation.Literal) (integer.Value, error) {
	return u.binary(a, b, (*big.Int).Xor)
}

// Not inverts every bit of a.
func (u Unit) Not(a notation.Literal) (v integer.Value, err error) {
	defer Error.WrapP(&err)

	xs, err := u.operands(a)
	if err != nil {
		return v, err
	}

	return integer.Canonical(new(big.Int).Not(xs[0]), u.Mode), nil
}

// Shl shifts a left by n bits.
func (u Unit) Shl(a, n notation.Literal) (integer.Value, error) {
	return u.shift(a, n, (*big.Int).Lsh)
}

// Shr shifts a right by n bits. The shift is arithmetic when the mode is
// signed.
func (u Unit) Shr(a, n notation.Literal) (integer.Value, error) {
	return u.shift(a, n, (*big.Int).Rsh)
}

func (u Unit) shift(a, n notation.Literal, op func(z, x *big.Int, n uint) *big.Int) (v integer.Value, err error) {
	defer Error.WrapP(&err)

	xs, err := u.operands(a)
	if err != nil {
		return v, err
	}

	// The amount is not reduced into the mode.
	k, err := u.Parser.Int(n)
	if err != nil {
		return v, err
	}

	if k.Sign() < 0 {
		return v, RangeError.New("negative shift amount: %s", k)
	}

	// Shifting by the width or more gives the same result as shifting by
	// the width.
	amount := u.Mode.Width
	if k.Cmp(new(big.Int).SetUint64(uint64(amount))) < 0 {
		amount = uint(k.Uint64())
	}

	return integer.Canonical(op(new(big.Int), xs[0], amount), u.Mode), nil
}

// Mask returns a value with bits low through high set.
func (u Unit) Mask(low, high uint) (v integer.Value, err error) {
	defer Error.WrapP(&err)

	err = u.Mode.Validate()
	if err != nil {
		return v, err
	}

	m, err := u.mask(low, high)
	if err != nil {
		return v, err
	}

	return integer.Canonical(m, u.Mode), nil
}

// mask returns bits low through high, limited to the width.
func (u Unit) mask(low, high uint) (m *big.Int, err error) {
	if low > high {
		return nil, RangeError.New("invalid bit range [%d:%d]", high, low)
	}

	m = new(big.Int)
	if low >= u.Mode.Width {
		return m, nil
	}

	if high >= u.Mode.Width {
		high = u.Mode.Width - 1
	}

	m.Lsh(big.NewInt(1), high-low+1)
	m.Sub(m, big.NewInt(1))
	m.Lsh(m, low)

	return m, nil
}

// GetBit returns bit i of a.
func (u Unit) GetBit(a notation.Literal, i uint) (integer.Value, error) {
	return u.GetBits(a, i, i)
}

// GetBits returns bits low through high of a, shifted down to bit zero.
func (u Unit) GetBits(a notation.Literal, low, high uint) (v integer.Value, err error) {
	defer Error.WrapP(&err)

	if low > high {
		return v, RangeError.New("invalid bit range [%d:%d]", high, low)
	}

	xs, err := u.operands(a)
	if err != nil {
		return v, err
	}

	// Bits at or above low+width are lost when the result is reduced.
	if high-low >= u.Mode.Width {
		high = low + u.Mode.Width - 1
	}

	m := new(big.Int).Lsh(big.NewInt(1), high-low+1)
	m.Sub(m, big.NewInt(1))

	x := new(big.Int).Rsh(xs[0], low)
	x.And(x, m)

	return integer.Canonical(x, u.Mode), nil
}

// SetBits replaces bits low through high of a with r. Bits of r that don't
// fit in the range are ignored.
func (u Unit) SetBits(a notation.Literal, low, high uint, r notation.Literal) (v integer.Value, err error) {
	defer Error.WrapP(&err)

	xs, err := u.operands(a, r)
	if err != nil {
		return v, err
	}

	m, err := u.mask(low, high)
	if err != nil {
		return v, err
	}

	x := new(big.Int).AndNot(xs[0], m)

	if m.Sign() != 0 {
		y := new(big.Int).Lsh(xs[1], low)
		y.And(y, m)
		x.Or(x, y)
	}

	return integer.Canonical(x, u.Mode), nil
}

// FillBits sets bits low through high of a.
func (u Unit) FillBits(a notation.Literal, low, high uint) (integer.Value, error) {
	return u.SetBits(a, low, high, notation.FromInt(-1))
}

// DropBits clears bits low through high of a.
func (u Unit) DropBits(a notation.Literal, low, high uint) (integer.Value, error) {
	return u.SetBits(a, low, high, notation.FromInt(0))
}

// Min returns the smallest value of the mode.
func (u Unit) Min() (v integer.Value, err error) {
	err = u.Mode.Validate()
	if err != nil {
		return v, Error.Wrap(err)
	}

	return integer.Canonical(u.Mode.Min(), u.Mode), nil
}

// Max returns the largest value of the mode.
func (u Unit) Max() (v integer.Value, err error) {
	err = u.Mode.Validate()
	if err != nil {
		return v, Error.Wrap(err)
	}

	return integer.Canonical(u.Mode.Max(), u.Mode), nil
}
