package pir

import (
	"github.com/calebcase/pir/arith"
	"github.com/calebcase/pir/enc"
	"github.com/calebcase/pir/field"
	"github.com/calebcase/pir/integer"
	"github.com/calebcase/pir/mode"
	"github.com/calebcase/pir/notation"
)

// Context is an explicit configuration for conversions and arithmetic.
type Context struct {
	Mode   mode.Mode
	Parser notation.Parser
}

// NewContext returns a context for m using the default parser.
func NewContext(m mode.Mode) Context {
	return Context{
		Mode:   m,
		Parser: notation.DefaultParser,
	}
}

func (c Context) unit() arith.Unit {
	return arith.Unit{
		Mode:   c.Mode,
		Parser: c.Parser,
	}
}

// Value reduces v into the context's mode.
func (c Context) Value(v interface{}) (integer.Value, error) {
	l, err := literal(v)
	if err != nil {
		return integer.Value{}, err
	}

	err = c.Mode.Validate()
	if err != nil {
		return integer.Value{}, err
	}

	return integer.FromLiteral(c.Parser, l, c.Mode)
}

// C2Repr returns v in two's-complement form for the mode. The optional format
// overrides the mode's default.
func (c Context) C2Repr(v interface{}, format ...notation.Notation) (r notation.Result, err error) {
	x, err := c.Value(v)
	if err != nil {
		return r, err
	}

	return x.Render(pick(format)), nil
}

// Decompose splits v into the fields described by boundaries, most
// significant first.
func (c Context) Decompose(v interface{}, boundaries []int, format ...notation.Notation) (out []string, err error) {
	x, err := c.Value(v)
	if err != nil {
		return nil, err
	}

	return field.Decompose(x, field.Spec(boundaries), pick(format))
}

// Bytes splits v into bytes, most significant first, using as few as needed.
// Without a format every byte is rendered as 8 bits.
func (c Context) Bytes(v interface{}, format ...notation.Notation) (out []string, err error) {
	x, err := c.Value(v)
	if err != nil {
		return nil, err
	}

	n := pick(format)
	if n == notation.Default {
		n = notation.Binary
	}

	return field.Render(field.Bytes(x), n), nil
}

// VRepr renders v against the descriptor d as a table, see enc.Render.
func (c Context) VRepr(v interface{}, d *enc.Descriptor, borders bool, format ...notation.Notation) (s string, err error) {
	x, err := c.Value(v)
	if err != nil {
		return "", err
	}

	return enc.Render(x, d, enc.Options{
		Format:  pick(format),
		Borders: borders,
	})
}

type binaryOp func(u arith.Unit, a, b notation.Literal) (integer.Value, error)

func (c Context) binary(op binaryOp, a, b interface{}, format []notation.Notation) (r notation.Result, err error) {
	la, err := literal(a)
	if err != nil {
		return r, err
	}

	lb, err := literal(b)
	if err != nil {
		return r, err
	}

	x, err := op(c.unit(), la, lb)
	if err != nil {
		return r, err
	}

	return x.Render(pick(format)), nil
}

// Add returns a + b.
func (c Context) Add(a, b interface{}, format ...notation.Notation) (notation.Result, error) {
	return c.binary(arith.Unit.Add, a, b, format)
}

// Sub returns a - b.
func (c Context) Sub(a, b interface{}, format ...notation.Notation) (notation.Result, error) {
	return c.binary(arith.Unit.Sub, a, b, format)
}

// Mul returns a * b.
func (c Context) Mul(a, b interface{}, format ...notation.Notation) (notation.Result, error) {
	return c.binary(arith.Unit.Mul, a, b, format)
}

// Div returns a / b truncated toward zero.
func (c Context) Div(a, b interface{}, format ...notation.Notation) (notation.Result, error) {
	return c.binary(arith.Unit.Div, a, b, format)
}

// Rem returns the remainder of Div.
func (c Context) Rem(a, b interface{}, format ...notation.Notation) (notation.Result, error) {
	return c.binary(arith.Unit.Rem, a, b, format)
}

// ShiftLeft returns v shifted left by n bits.
func (c Context) ShiftLeft(v, n interface{}, format ...notation.Notation) (notation.Result, error) {
	return c.binary(arith.Unit.Shl, v, n, format)
}

// ShiftRight returns v shifted right by n bits.
func (c Context) ShiftRight(v, n interface{}, format ...notation.Notation) (notation.Result, error) {
	return c.binary(arith.Unit.Shr, v, n, format)
}

// SetBits replaces bits low through high of v with r.
func (c Context) SetBits(v interface{}, low, high uint, r interface{}, format ...notation.Notation) (notation.Result, error) {
	return c.binary(func(u arith.Unit, a, b notation.Literal) (integer.Value, error) {
		return u.SetBits(a, low, high, b)
	}, v, r, format)
}

// GetBits returns bits low through high of v.
func (c Context) GetBits(v interface{}, low, high uint, format ...notation.Notation) (r notation.Result, err error) {
	l, err := literal(v)
	if err != nil {
		return r, err
	}

	x, err := c.unit().GetBits(l, low, high)
	if err != nil {
		return r, err
	}

	return x.Render(pick(format)), nil
}

// IntMin returns the smallest value of the mode.
func (c Context) IntMin(format ...notation.Notation) (r notation.Result, err error) {
	x, err := c.unit().Min()
	if err != nil {
		return r, err
	}

	return x.Render(pick(format)), nil
}

// IntMax returns the largest value of the mode.
func (c Context) IntMax(format ...notation.Notation) (r notation.Result, err error) {
	x, err := c.unit().Max()
	if err != nil {
		return r, err
	}

	return x.Render(pick(format)), nil
}

// literal converts an input, including values already reduced into some
// mode, into a literal.
func literal(v interface{}) (notation.Literal, error) {
	switch v := v.(type) {
	case integer.Value:
		return v.Literal(), nil
	case *integer.Value:
		if v != nil {
			return v.Literal(), nil
		}
	}

	return notation.Of(v)
}

func pick(format []notation.Notation) notation.Notation {
	if len(format) == 0 {
		return notation.Default
	}

	return format[0]
}
