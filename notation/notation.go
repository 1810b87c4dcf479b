package notation

import (
	"strings"

	"github.com/zeebo/errs"
)

// ParseError is the class of errors for inputs that can't be read as an
// integer in the selected base.
var ParseError = errs.Class("parse")

// Notation is the textual or numeric form of an integer.
type Notation uint8

// Notations
const (
	// Default defers to the format configured by the active mode.
	Default Notation = iota
	Decimal
	Hex
	Binary
	Float
)

var notationNames = [...]string{
	Default: "default",
	Decimal: "decimal",
	Hex:     "hex",
	Binary:  "binary",
	Float:   "float",
}

// String returns the long name of the notation.
func (n Notation) String() string {
	if int(n) < len(notationNames) {
		return notationNames[n]
	}

	return "unknown"
}

// Integer returns true for the notations an integer mode may default to.
func (n Notation) Integer() bool {
	return n == Decimal || n == Hex || n == Binary
}

// ParseNotation reads a notation from either its short (d, h, b, f) or long
// name.
func ParseNotation(s string) (n Notation, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return Default, nil
	case "d", "dec", "decimal":
		return Decimal, nil
	case "h", "x", "hex", "hexadecimal":
		return Hex, nil
	case "b", "bin", "binary":
		return Binary, nil
	case "f", "float":
		return Float, nil
	}

	return Default, ParseError.New("unknown notation: %q", s)
}

// Set implements pflag.Value.
func (n *Notation) Set(s string) (err error) {
	*n, err = ParseNotation(s)

	return err
}

// Type implements pflag.Value.
func (n *Notation) Type() string {
	return "notation"
}

// MarshalText implements encoding.TextMarshaler.
func (n Notation) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Notation) UnmarshalText(text []byte) error {
	return n.Set(string(text))
}
