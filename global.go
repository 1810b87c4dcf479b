package pir

import (
	"github.com/calebcase/pir/enc"
	"github.com/calebcase/pir/mode"
	"github.com/calebcase/pir/notation"
)

// store holds the process-wide mode. The zero Store holds mode.Default.
var store = &mode.Store{}

// SetMode replaces the process-wide mode. An invalid mode is rejected and the
// previous one stays live.
func SetMode(signed bool, width uint, format notation.Notation) error {
	m, err := mode.New(signed, width, format)
	if err != nil {
		return err
	}

	return store.Set(m)
}

// UpdateMode changes the parts of the process-wide mode that are given: nil
// pointers and a Default format keep the current setting.
func UpdateMode(signed *bool, width *uint, format notation.Notation) (mode.Mode, error) {
	return store.Update(signed, width, format)
}

// GetMode returns the process-wide mode.
func GetMode() mode.Mode {
	return store.Get()
}

// Default returns a context for the process-wide mode as it is now.
func Default() Context {
	return NewContext(store.Get())
}

// C2Repr returns v in two's-complement form for the process-wide mode.
func C2Repr(v interface{}, format ...notation.Notation) (notation.Result, error) {
	return Default().C2Repr(v, format...)
}

// Decompose splits v into the fields described by boundaries.
func Decompose(v interface{}, boundaries []int, format ...notation.Notation) ([]string, error) {
	return Default().Decompose(v, boundaries, format...)
}

// Bytes splits v into bytes, most significant first.
func Bytes(v interface{}, format ...notation.Notation) ([]string, error) {
	return Default().Bytes(v, format...)
}

// VRepr renders v against the descriptor d.
func VRepr(v interface{}, d *enc.Descriptor, borders bool, format ...notation.Notation) (string, error) {
	return Default().VRepr(v, d, borders, format...)
}

// Add returns a + b.
func Add(a, b interface{}, format ...notation.Notation) (notation.Result, error) {
	return Default().Add(a, b, format...)
}

// Sub returns a - b.
func Sub(a, b interface{}, format ...notation.Notation) (notation.Result, error) {
	return Default().Sub(a, b, format...)
}

// Mul returns a * b.
func Mul(a, b interface{}, format ...notation.Notation) (notation.Result, error) {
	return Default().Mul(a, b, format...)
}

// Div returns a / b truncated toward zero.
func Div(a, b interface{}, format ...notation.Notation) (notation.Result, error) {
	return Default().Div(a, b, format...)
}

// Rem returns the remainder of Div.
func Rem(a, b interface{}, format ...notation.Notation) (notation.Result, error) {
	return Default().Rem(a, b, format...)
}

// ShiftLeft returns v shifted left by n bits.
func ShiftLeft(v, n interface{}, format ...notation.Notation) (notation.Result, error) {
	return Default().ShiftLeft(v, n, format...)
}

// SetBits replaces bits low through high of v with r.
func SetBits(v interface{}, low, high uint, r interface{}, format ...notation.Notation) (notation.Result, error) {
	return Default().SetBits(v, low, high, r, format...)
}

// IntMin returns the smallest value of the process-wide mode.
func IntMin(format ...notation.Notation) (notation.Result, error) {
	return Default().IntMin(format...)
}

// IntMax returns the largest value of the process-wide mode.
func IntMax(format ...notation.Notation) (notation.Result, error) {
	return Default().IntMax(format...)
}
