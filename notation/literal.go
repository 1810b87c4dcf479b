package notation

import (
	"math"
	"math/big"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Literal is an integer input in one of the accepted notations. The zero
// Literal is an empty text and fails to parse.
type Literal struct {
	n    Notation
	i    *big.Int
	f    float64
	text string
}

// FromInt returns a decimal literal.
func FromInt(i int64) Literal {
	return Literal{n: Decimal, i: big.NewInt(i)}
}

// FromBig returns a decimal literal holding a copy of x.
func FromBig(x *big.Int) Literal {
	return Literal{n: Decimal, i: new(big.Int).Set(x)}
}

// FromFloat returns a float literal. It is truncated toward zero when parsed.
func FromFloat(f float64) Literal {
	return Literal{n: Float, f: f}
}

// FromHex returns a hexadecimal literal; the 0x prefix is optional.
func FromHex(s string) Literal {
	return Literal{n: Hex, text: s}
}

// FromBin returns a binary literal; the 0b prefix is optional.
func FromBin(s string) Literal {
	return Literal{n: Binary, text: s}
}

// FromText returns a literal whose notation is inferred from its prefix when
// parsed. See Parser for how unprefixed digits are read.
func FromText(s string) Literal {
	return Literal{text: s}
}

// Of converts a native Go value into a literal. Strings are read as FromText,
// floats as FromFloat and every integer kind as a decimal literal.
func Of(v interface{}) (l Literal, err error) {
	switch v := v.(type) {
	case nil:
		return l, ParseError.New("no input")
	case Literal:
		return v, nil
	case Result:
		return v.Literal(), nil
	case string:
		return FromText(v), nil
	case []byte:
		return FromText(string(v)), nil
	case float32:
		return FromFloat(float64(v)), nil
	case float64:
		return FromFloat(v), nil
	case *big.Int:
		if v == nil {
			return l, ParseError.New("nil integer")
		}

		return FromBig(v), nil
	case decimal.Decimal:
		return FromBig(v.BigInt()), nil
	case uint:
		return FromBig(new(big.Int).SetUint64(uint64(v))), nil
	case uint64:
		return FromBig(new(big.Int).SetUint64(v)), nil
	}

	i, err := cast.ToInt64E(v)
	if err != nil {
		return l, ParseError.Wrap(err)
	}

	return FromInt(i), nil
}

// Notation returns the declared notation of the literal. Text literals report
// Default until parsed.
func (l Literal) Notation() Notation {
	return l.n
}

// String returns the literal as it was given.
func (l Literal) String() string {
	switch l.n {
	case Decimal:
		if l.i == nil {
			return "0"
		}

		return l.i.String()
	case Float:
		return formatFloat(l.f)
	}

	return l.text
}

// Bare selects how a string without a 0x or 0b prefix is read.
type Bare uint8

const (
	// BareHex reads unprefixed digits as hexadecimal, so "10" is sixteen.
	// This is the compatibility behavior of the library.
	BareHex Bare = iota

	// BareDecimal reads unprefixed digits as decimal.
	BareDecimal
)

// Parser normalizes literals into unbounded integers.
type Parser struct {
	Bare Bare
}

// DefaultParser reads unprefixed strings as hexadecimal.
var DefaultParser = Parser{Bare: BareHex}

// Int returns the unbounded integer value of the literal.
func (p Parser) Int(l Literal) (x *big.Int, err error) {
	x, _, err = p.Parse(l)

	return x, err
}

// Parse returns the unbounded integer value of the literal along with the
// notation it was read in.
func (p Parser) Parse(l Literal) (x *big.Int, n Notation, err error) {
	switch l.n {
	case Decimal:
		if l.i == nil {
			return new(big.Int), Decimal, nil
		}

		return new(big.Int).Set(l.i), Decimal, nil
	case Float:
		if math.IsNaN(l.f) || math.IsInf(l.f, 0) {
			return nil, Float, ParseError.New("float %v has no integer value", l.f)
		}

		x, _ = new(big.Float).SetFloat64(l.f).Int(nil)

		return x, Float, nil
	}

	return p.parseText(l.text, l.n)
}

// ParseString is shorthand for parsing FromText(s).
func (p Parser) ParseString(s string) (x *big.Int, n Notation, err error) {
	return p.parseText(s, Default)
}

func (p Parser) parseText(s string, forced Notation) (x *big.Int, n Notation, err error) {
	text := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)

	neg := false
	switch {
	case strings.HasPrefix(text, "-"):
		neg = true
		text = text[1:]
	case strings.HasPrefix(text, "+"):
		text = text[1:]
	}

	base := 16
	n = Hex

	switch {
	case forced == Hex:
		text = trimPrefixFold(text, "0x")
	case forced == Binary:
		base, n = 2, Binary
		text = trimPrefixFold(text, "0b")
	case hasPrefixFold(text, "0x"):
		text = text[2:]
	case hasPrefixFold(text, "0b"):
		base, n = 2, Binary
		text = text[2:]
	case p.Bare == BareDecimal:
		base, n = 10, Decimal
	}

	if text == "" {
		return nil, n, ParseError.New("no %s digits in %q", n, s)
	}

	for _, r := range text {
		if digitValue(r) >= base {
			return nil, n, ParseError.New("invalid %s digit %q in %q", n, r, s)
		}
	}

	x, ok := new(big.Int).SetString(text, base)
	if !ok {
		return nil, n, ParseError.New("invalid %s literal %q", n, s)
	}

	if neg {
		x.Neg(x)
	}

	return x, n, nil
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}

	return math.MaxInt32
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func trimPrefixFold(s, prefix string) string {
	if hasPrefixFold(s, prefix) {
		return s[len(prefix):]
	}

	return s
}
