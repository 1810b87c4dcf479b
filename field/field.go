// Package field slices the bit pattern of a fixed-width integer into
// contiguous ranges.
//
// A Spec lists the most significant bit of every field, highest first. Each
// field runs down to the bit above the next boundary; the last field runs
// down to bit 0. For example the SPARC sethi layout
//
//	Spec{31, 29, 24, 21}
//
// describes the fields [31:30], [29:25], [24:22] and [21:0].
package field

import (
	"math/big"

	"github.com/zeebo/errs"

	"github.com/calebcase/pir/integer"
	"github.com/calebcase/pir/notation"
)

// SpecError is the class of errors for invalid field boundaries.
var SpecError = errs.Class("field spec")

// Spec is an ordered list of field boundaries.
type Spec []int

// Validate checks that the boundaries are strictly decreasing, non-negative
// and fit in width bits.
func (s Spec) Validate(width uint) error {
	if len(s) == 0 {
		return SpecError.New("no boundaries")
	}

	if s[0] >= int(width) {
		return SpecError.New("boundary %d exceeds width %d", s[0], width)
	}

	for i := 1; i < len(s); i++ {
		if s[i] >= s[i-1] {
			return SpecError.New("boundaries not strictly decreasing: %d then %d", s[i-1], s[i])
		}
	}

	if last := s[len(s)-1]; last < 0 {
		return SpecError.New("negative boundary: %d", last)
	}

	return nil
}

// Field is one bit range of a value.
type Field struct {
	High  int
	Low   int
	Value *big.Int
}

// Width returns the number of bits in the field.
func (f Field) Width() int {
	return f.High - f.Low + 1
}

// Render returns the field value in notation n. Binary fields are padded to
// the field width and carry no prefix, so the string length equals the bit
// count; the other notations render as notation.Format does.
func (f Field) Render(n notation.Notation) string {
	if n == notation.Binary {
		return notation.Pad(f.Value, f.Width())
	}

	return notation.Format(f.Value, n)
}

// Split cuts the residue of v into the fields described by s.
func Split(v integer.Value, s Spec) (fields []Field, err error) {
	err = s.Validate(v.Mode().Width)
	if err != nil {
		return nil, err
	}

	return split(v.Residue(), s), nil
}

func split(residue *big.Int, s Spec) (fields []Field) {
	fields = make([]Field, 0, len(s))

	for i, high := range s {
		low := 0
		if i+1 < len(s) {
			low = s[i+1] + 1
		}

		fields = append(fields, Field{
			High:  high,
			Low:   low,
			Value: bits(residue, low, high),
		})
	}

	return fields
}

// bits returns bits [low, high] of x as an unsigned integer.
func bits(x *big.Int, low, high int) *big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), uint(high-low+1))
	mask.Sub(mask, big.NewInt(1))

	y := new(big.Int).Rsh(x, uint(low))

	return y.And(y, mask)
}

// Decompose renders every field of v described by s. A Default notation uses
// the mode's format.
func Decompose(v integer.Value, s Spec, n notation.Notation) (out []string, err error) {
	fields, err := Split(v, s)
	if err != nil {
		return nil, err
	}

	return Render(fields, v.Mode().Resolve(n)), nil
}

// Render renders each field in notation n.
func Render(fields []Field, n notation.Notation) (out []string) {
	out = make([]string, 0, len(fields))

	for _, f := range fields {
		out = append(out, f.Render(n))
	}

	return out
}

// Bytes cuts v into 8 bit fields, most significant first, using as few bytes
// as the residue needs (at least one).
func Bytes(v integer.Value) (fields []Field) {
	n := len(v.Bytes())

	s := make(Spec, 0, n)
	for i := n - 1; i >= 0; i-- {
		s = append(s, i*8+7)
	}

	return split(v.Residue(), s)
}

// Join reassembles fields into a single unsigned integer.
func Join(fields []Field) *big.Int {
	x := new(big.Int)

	for _, f := range fields {
		y := new(big.Int).Lsh(f.Value, uint(f.Low))
		x.Or(x, y)
	}

	return x
}
