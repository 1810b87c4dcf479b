package field_test

import (
	"fmt"
	"math/big"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/pir/field"
	"github.com/calebcase/pir/integer"
	"github.com/calebcase/pir/mode"
	"github.com/calebcase/pir/notation"
)

func value(t *testing.T, l notation.Literal, m mode.Mode) integer.Value {
	t.Helper()

	v, err := integer.FromLiteral(notation.DefaultParser, l, m)
	require.NoError(t, err)

	return v
}

func TestDecompose(t *testing.T) {
	type TC struct {
		name     string
		input    notation.Literal
		spec     field.Spec
		notation notation.Notation
		out      []string
	}

	tcs := []TC{
		{
			name:     "sethi binary",
			input:    notation.FromText("1700040f"),
			spec:     field.Spec{31, 29, 24, 21},
			notation: notation.Binary,
			out:      []string{"00", "01011", "100", "0000000000010000001111"},
		},
		{
			name:     "sethi hex",
			input:    notation.FromText("1700040f"),
			spec:     field.Spec{31, 29, 24, 21},
			notation: notation.Hex,
			out:      []string{"0x0", "0xb", "0x4", "0x40f"},
		},
		{
			name:     "sethi decimal",
			input:    notation.FromText("1700040f"),
			spec:     field.Spec{31, 29, 24, 21},
			notation: notation.Decimal,
			out:      []string{"0", "11", "4", "1039"},
		},
		{
			name:     "mode default",
			input:    notation.FromText("1700040f"),
			spec:     field.Spec{31, 29, 24, 21},
			notation: notation.Default,
			out:      []string{"0x0", "0xb", "0x4", "0x40f"},
		},
		{
			name:     "five fields",
			input:    notation.FromInt(3932166),
			spec:     field.Spec{22, 17, 15, 13, 7},
			notation: notation.Binary,
			out:      []string{"01111", "00", "00", "000000", "00000110"},
		},
		{
			name:     "five fields hex",
			input:    notation.FromFloat(3932166.),
			spec:     field.Spec{22, 17, 15, 13, 7},
			notation: notation.Hex,
			out:      []string{"0xf", "0x0", "0x0", "0x0", "0x6"},
		},
		{
			name:     "single bits",
			input:    notation.FromText("a5"),
			spec:     field.Spec{7, 4, 3, 0},
			notation: notation.Binary,
			out:      []string{"101", "0", "010", "1"},
		},
		{
			name:     "negative whole width",
			input:    notation.FromInt(-1),
			spec:     field.Spec{63, 31},
			notation: notation.Hex,
			out:      []string{"0xffffffff", "0xffffffff"},
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			out, err := field.Decompose(value(t, tc.input, mode.Default), tc.spec, tc.notation)
			require.NoError(t, err)
			require.Equal(t, tc.out, out)
		})
	}
}

func TestSpecError(t *testing.T) {
	tcs := []field.Spec{
		nil,
		{64},
		{31, 31},
		{21, 24},
		{31, -1},
	}

	v := value(t, notation.FromInt(1), mode.Default)

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%v", i, tc), func(t *testing.T) {
			out, err := field.Decompose(v, tc, notation.Hex)
			require.Error(t, err)
			require.True(t, field.SpecError.Has(err))
			require.Nil(t, out)
		})
	}
}

func TestBytes(t *testing.T) {
	type TC struct {
		name  string
		input notation.Literal
		out   []string
	}

	tcs := []TC{
		{"int", notation.FromInt(3932166), []string{"00111100", "00000000", "00000110"}},
		{"hex", notation.FromText("0x3c0006"), []string{"00111100", "00000000", "00000110"}},
		{"bare hex", notation.FromText("3c0006"), []string{"00111100", "00000000", "00000110"}},
		{"binary", notation.FromText("0b1111000000000000000110"), []string{"00111100", "00000000", "00000110"}},
		{"zero", notation.FromInt(0), []string{"00000000"}},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			v := value(t, tc.input, mode.Default)

			fields := field.Bytes(v)
			require.Equal(t, tc.out, field.Render(fields, notation.Binary))

			data := v.Bytes()
			require.Len(t, fields, len(data))
			for j, f := range fields {
				require.Equal(t, int64(data[j]), f.Value.Int64())
			}
		})
	}

	fields := field.Bytes(value(t, notation.FromInt(-13), mode.Default))
	out := field.Render(fields, notation.Binary)
	require.Len(t, out, 8)
	require.Equal(t, "11110011", out[7])
	require.Equal(t, "11111111", out[0])
	require.Equal(t, "11111111", out[6])
}

func TestJoin(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, width := range []uint{1, 5, 8, 32, 64, 100} {
		m, err := mode.New(true, width, notation.Binary)
		require.NoError(t, err)

		for i := 0; i < 32; i++ {
			// Random strictly decreasing boundaries starting at the top bit.
			s := field.Spec{int(width) - 1}
			for b := int(width) - 2; b >= 0; b-- {
				if rng.Intn(3) == 0 {
					s = append(s, b)
				}
			}

			x := new(big.Int).Rand(rng, m.Modulus())
			x.Sub(x, new(big.Int).Rsh(m.Modulus(), 1))
			v := integer.Canonical(x, m)

			fields, err := field.Split(v, s)
			require.NoError(t, err, spew.Sdump(s))

			total := 0
			for j, f := range fields {
				total += f.Width()
				require.Len(t, f.Render(notation.Binary), f.Width())
				require.Equal(t, s[j], f.High)
			}

			require.Equal(t, int(width), total)
			require.Equal(t, 0, v.Residue().Cmp(field.Join(fields)), spew.Sdump(s, x))
		}
	}
}
