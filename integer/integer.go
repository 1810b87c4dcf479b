package integer

import (
	"math/big"

	"github.com/zeebo/errs"

	"github.com/calebcase/pir/mode"
	"github.com/calebcase/pir/notation"
)

// Error is the class of integer errors.
var Error = errs.Class("integer")

// Value is an integer reduced to the width of its mode. It is stored as the
// unsigned residue in [0, 2^width).
type Value struct {
	residue *big.Int
	mode    mode.Mode
}

// Canonical reduces x modulo 2^width. Out of range inputs wrap around; this
// is never an error.
func Canonical(x *big.Int, m mode.Mode) Value {
	r := new(big.Int).And(x, m.Mask())

	return Value{
		residue: r,
		mode:    m,
	}
}

// FromLiteral parses l and reduces it into m.
func FromLiteral(p notation.Parser, l notation.Literal, m mode.Mode) (v Value, err error) {
	defer Error.WrapP(&err)

	x, err := p.Int(l)
	if err != nil {
		return v, err
	}

	return Canonical(x, m), nil
}

// Mode returns the mode the value was reduced into.
func (v Value) Mode() mode.Mode {
	return v.mode
}

// Residue returns the unsigned bit pattern of the value.
func (v Value) Residue() *big.Int {
	if v.residue == nil {
		return new(big.Int)
	}

	return new(big.Int).Set(v.residue)
}

// Int returns the value interpreted according to the mode's signedness.
func (v Value) Int() *big.Int {
	x := v.Residue()

	if v.mode.Signed && v.mode.Width > 0 && x.Bit(int(v.mode.Width-1)) == 1 {
		x.Sub(x, v.mode.Modulus())
	}

	return x
}

// Render returns the value in notation n, or in the mode's format when n is
// Default. Decimal and Float results use the signed interpretation (when the
// mode is signed); Hex and Binary results show the bit pattern.
func (v Value) Render(n notation.Notation) notation.Result {
	n = v.mode.Resolve(n)

	switch n {
	case notation.Decimal, notation.Float:
		return notation.NewResult(v.Int(), n)
	}

	return notation.NewResult(v.Residue(), n)
}

// String renders the value in the mode's format.
func (v Value) String() string {
	return v.Render(notation.Default).String()
}

// Literal returns the value as an input for further conversions.
func (v Value) Literal() notation.Literal {
	return notation.FromBig(v.Int())
}

// Equal returns true if both values have the same residue and mode.
func (v Value) Equal(o Value) bool {
	return v.mode == o.mode && v.Residue().Cmp(o.Residue()) == 0
}

// Bytes returns the residue big-endian using the fewest bytes (at least one).
func (v Value) Bytes() (data []byte) {
	data = v.Residue().Bytes()

	// Note: big.Int encodes zero as an empty byte array, but we
	// desire zero to be an actual zero byte.
	if len(data) == 0 {
		data = []byte{0}
	}

	return data
}

// MarshalBinary implements encoding.BinaryMarshaler. See Bytes.
func (v Value) MarshalBinary() (data []byte, err error) {
	return v.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The value's mode
// must already be set (see Canonical); the bytes are reduced into it.
func (v *Value) UnmarshalBinary(data []byte) (err error) {
	err = v.mode.Validate()
	if err != nil {
		return Error.Wrap(err)
	}

	if len(data) == 0 {
		return Error.New("no data")
	}

	*v = Canonical(new(big.Int).SetBytes(data), v.mode)

	return nil
}
