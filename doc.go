// Package pir converts integers between decimal, hexadecimal, binary and
// float notations under a fixed-width two's-complement mode, splits their bit
// patterns into fields and performs wrapping arithmetic on them.
//
// The functions of this package operate under a process-wide mode (signed 64
// bit hexadecimal until SetMode is called). Code that needs several modes, or
// wants no shared state, should build a Context instead:
//
//	c := pir.Context{Mode: m, Parser: notation.DefaultParser}
//	r, err := c.Add("0x100", 15.0)
//
// Inputs may be any of: integers (every Go kind, *big.Int, decimal.Decimal),
// floats (truncated toward zero), strings, notation.Literal, notation.Result
// and integer.Value.
//
// Unprefixed strings are hexadecimal
//
// A string without a 0x or 0b prefix is read as hexadecimal, so "10" is
// sixteen and "1700040f" is a valid input. Whitespace is ignored, allowing
// "17 00 04 0f". Use a Context whose Parser has Bare set to
// notation.BareDecimal to read unprefixed digits as decimal, or pass a Go
// integer instead of a string.
package pir
