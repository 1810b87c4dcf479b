package pir_test

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/calebcase/oops"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/pir"
	"github.com/calebcase/pir/arith"
	"github.com/calebcase/pir/enc"
	"github.com/calebcase/pir/integer"
	"github.com/calebcase/pir/mode"
	"github.com/calebcase/pir/notation"
)

// withMode sets the process-wide mode for the duration of the test.
func withMode(t *testing.T, signed bool, width uint, format notation.Notation) {
	t.Helper()

	prev := pir.GetMode()
	t.Cleanup(func() {
		require.NoError(t, pir.SetMode(prev.Signed, prev.Width, prev.Format))
	})

	require.NoError(t, pir.SetMode(signed, width, format))
}

func TestDefaultMode(t *testing.T) {
	require.Equal(t, mode.Default, pir.GetMode())

	r, err := pir.C2Repr(-10)
	require.NoError(t, err)
	require.Equal(t, "0xfffffffffffffff6", r.String())

	r, err = pir.C2Repr("8000000000000000", notation.Decimal)
	require.NoError(t, err)
	require.True(t, r.IsInt64())
	require.Equal(t, int64(-9223372036854775808), r.Int64())
}

func TestScenarios(t *testing.T) {
	type TC struct {
		name   string
		signed bool
		width  uint
		format notation.Notation
		op     func() (notation.Result, error)
		text   string
		Mark   error
	}

	tcs := []TC{
		{
			name:   "sub float",
			signed: true, width: 8, format: notation.Decimal,
			op: func() (notation.Result, error) {
				return pir.Sub("0x100", 15.0)
			},
			text: "-15",
			Mark: oops.New("unexpected"),
		},
		{
			name:   "sub binary",
			signed: true, width: 8, format: notation.Decimal,
			op: func() (notation.Result, error) {
				return pir.Sub("0x100", "0b1111", notation.Binary)
			},
			text: "0b11110001",
			Mark: oops.New("unexpected"),
		},
		{
			name:   "set bits",
			signed: false, width: 8, format: notation.Decimal,
			op: func() (notation.Result, error) {
				return pir.SetBits(15, 3, 5, "0b110")
			},
			text: "55",
			Mark: oops.New("unexpected"),
		},
		{
			name:   "shift left wraps",
			signed: true, width: 8, format: notation.Hex,
			op: func() (notation.Result, error) {
				return pir.ShiftLeft("0x81", 1)
			},
			text: "0x2",
			Mark: oops.New("unexpected"),
		},
		{
			name:   "mul nested",
			signed: true, width: 64, format: notation.Binary,
			op: func() (notation.Result, error) {
				q, err := pir.Div("f", "0b100")
				if err != nil {
					return q, err
				}

				r, err := pir.Rem(11, "0x3")
				if err != nil {
					return r, err
				}

				s, err := pir.Add(q, r)
				if err != nil {
					return s, err
				}

				return pir.Mul(3, s)
			},
			text: "0b1111",
			Mark: oops.New("unexpected"),
		},
		{
			name:   "max plus one",
			signed: true, width: 6, format: notation.Binary,
			op: func() (notation.Result, error) {
				hi, err := pir.IntMax()
				if err != nil {
					return hi, err
				}

				return pir.Add(hi, 1)
			},
			text: "0b100000",
			Mark: oops.New("unexpected"),
		},
		{
			name:   "min minus one",
			signed: true, width: 6, format: notation.Binary,
			op: func() (notation.Result, error) {
				lo, err := pir.IntMin()
				if err != nil {
					return lo, err
				}

				return pir.Sub(lo, 1, notation.Decimal)
			},
			text: "31",
			Mark: oops.New("unexpected"),
		},
		{
			name:   "unsigned min",
			signed: false, width: 6, format: notation.Binary,
			op: func() (notation.Result, error) {
				return pir.IntMin()
			},
			text: "0b0",
			Mark: oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			withMode(t, tc.signed, tc.width, tc.format)

			r, err := tc.op()
			require.NoError(t, err, tc.Mark)
			require.Equal(t, tc.text, r.String(), tc.Mark)
		})
	}
}

func TestDecompose(t *testing.T) {
	out, err := pir.Decompose("1700040f", []int{31, 29, 24, 21}, notation.Binary)
	require.NoError(t, err)
	require.Equal(t, []string{"00", "01011", "100", "0000000000010000001111"}, out)

	out, err = pir.Decompose("1700040f", []int{31, 29, 24, 21})
	require.NoError(t, err)
	require.Equal(t, []string{"0x0", "0xb", "0x4", "0x40f"}, out)

	_, err = pir.Decompose("1700040f", []int{64, 29})
	require.Error(t, err)

	_, err = pir.Decompose("1700040f", []int{21, 24})
	require.Error(t, err)
}

func TestBytes(t *testing.T) {
	want := []string{"00111100", "00000000", "00000110"}

	for _, v := range []interface{}{3932166, "0x3c0006", "3c0006", "0b1111000000000000000110", 3932166.} {
		out, err := pir.Bytes(v)
		require.NoError(t, err, "%v", v)
		require.Equal(t, want, out, "%v", v)
	}

	out, err := pir.Bytes(3932166, notation.Hex)
	require.NoError(t, err)
	require.Equal(t, []string{"0x3c", "0x0", "0x6"}, out)

	out, err = pir.Bytes(-13)
	require.NoError(t, err)
	require.Len(t, out, 8)
	require.Equal(t, "11111111", out[0])
	require.Equal(t, "11110011", out[7])
}

func TestVRepr(t *testing.T) {
	d, err := enc.New("sethi",
		enc.Def{Name: "opc", Boundary: 31},
		enc.Def{Name: "rd", Boundary: 29},
		enc.Def{Name: "opc", Boundary: 24},
		enc.Def{Name: "imm22", Boundary: 21},
	)
	require.NoError(t, err)

	s, err := pir.VRepr("17 00 04 0f", d, false)
	require.NoError(t, err)
	require.Equal(t, "opc   rd  opc  imm22\n0x0  0xb  0x4  0x40f", s)

	s, err = pir.VRepr("1700040f", d, false, notation.Decimal)
	require.NoError(t, err)
	require.Equal(t, "opc  rd  opc  imm22\n 0   11   4    1039", s)
}

func TestSetMode(t *testing.T) {
	withMode(t, true, 16, notation.Hex)

	err := pir.SetMode(true, 0, notation.Hex)
	require.Error(t, err)
	require.True(t, mode.ModeError.Has(err))

	err = pir.SetMode(true, 8, notation.Float)
	require.Error(t, err)
	require.True(t, mode.ModeError.Has(err))

	require.Equal(t, mode.Mode{Signed: true, Width: 16, Format: notation.Hex}, pir.GetMode())

	width := uint(4)
	m, err := pir.UpdateMode(nil, &width, notation.Default)
	require.NoError(t, err)
	require.Equal(t, mode.Mode{Signed: true, Width: 4, Format: notation.Hex}, m)

	zero := uint(0)
	m, err = pir.UpdateMode(nil, &zero, notation.Binary)
	require.Error(t, err)
	require.Equal(t, mode.Mode{Signed: true, Width: 4, Format: notation.Hex}, m)
	require.Equal(t, m, pir.GetMode())
}

func TestContext(t *testing.T) {
	m, err := mode.New(false, 16, notation.Decimal)
	require.NoError(t, err)

	c := pir.Context{Mode: m, Parser: notation.Parser{Bare: notation.BareDecimal}}

	r, err := c.C2Repr("10")
	require.NoError(t, err)
	require.Equal(t, "10", r.String())

	r, err = pir.NewContext(m).C2Repr("10")
	require.NoError(t, err)
	require.Equal(t, "16", r.String())

	v := integer.Canonical(big.NewInt(-1), mode.Default)
	r, err = c.C2Repr(v, notation.Hex)
	require.NoError(t, err)
	require.Equal(t, "0xffff", r.String())

	r, err = c.GetBits("0xabcd", 4, 11, notation.Hex)
	require.NoError(t, err)
	require.Equal(t, "0xbc", r.String())

	r, err = c.ShiftRight("0x8000", 15)
	require.NoError(t, err)
	require.Equal(t, "1", r.String())

	// The process-wide mode is not involved.
	require.Equal(t, mode.Default, pir.GetMode())
}

func TestErrors(t *testing.T) {
	_, err := pir.C2Repr("0xzz")
	require.Error(t, err)
	require.True(t, notation.ParseError.Has(err))

	_, err = pir.C2Repr(nil)
	require.Error(t, err)
	require.True(t, notation.ParseError.Has(err))

	_, err = pir.Div(1, 0)
	require.True(t, errors.Is(err, arith.ErrDivisionByZero))

	_, err = pir.Rem("0", "0")
	require.True(t, errors.Is(err, arith.ErrDivisionByZero))

	_, err = pir.Context{}.C2Repr(1)
	require.True(t, mode.ModeError.Has(err))
}
