package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/calebcase/oops"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/pir/arith"
	"github.com/calebcase/pir/mode"
)

func run(args ...string) (string, error) {
	cmd := newRootCommand()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestCommands(t *testing.T) {
	type TC struct {
		name string
		args []string
		out  string
		Mark error
	}

	tcs := []TC{
		{
			name: "repr negative",
			args: []string{"repr", "--", "-0xa"},
			out:  "0xfffffffffffffff6\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "repr negative bare hex",
			args: []string{"repr", "--", "-10"},
			out:  "0xfffffffffffffff0\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "repr negative bare decimal",
			args: []string{"--bare", "decimal", "repr", "--", "-10"},
			out:  "0xfffffffffffffff6\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "repr decimal",
			args: []string{"repr", "-o", "decimal", "8000000000000000"},
			out:  "-9223372036854775808\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "repr several",
			args: []string{"-w", "8", "-o", "binary", "repr", "--", "-0xf", "0x1ff"},
			out:  "0b11110001\n0b11111111\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "repr bare decimal",
			args: []string{"--bare", "decimal", "repr", "10"},
			out:  "0xa\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "mode",
			args: []string{"mode"},
			out:  "signed 64-bit hex [-9223372036854775808, 9223372036854775807]\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "mode unsigned",
			args: []string{"--signed=false", "-w", "8", "--format", "b", "mode"},
			out:  "unsigned 8-bit binary [0, 255]\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "fields binary",
			args: []string{"fields", "-o", "binary", "1700040f", "31", "29", "24", "21"},
			out:  "00 01011 100 0000000000010000001111\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "fields hex",
			args: []string{"fields", "1700040f", "31", "29", "24", "21"},
			out:  "0x0 0xb 0x4 0x40f\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "bytes",
			args: []string{"fields", "3c0006"},
			out:  "00111100 00000000 00000110\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "bytes hex",
			args: []string{"fields", "-o", "hex", "3c0006"},
			out:  "0x3c 0x0 0x6\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "sub",
			args: []string{"-w", "8", "-o", "decimal", "sub", "0x100", "0b1111"},
			out:  "-15\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "div truncates",
			args: []string{"-o", "decimal", "div", "--", "-7", "2"},
			out:  "-3\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "setbits",
			args: []string{"setbits", "-o", "decimal", "0xf", "3", "5", "0b110"},
			out:  "55\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "not",
			args: []string{"-w", "8", "--signed=false", "not", "0"},
			out:  "0xff\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "getbits single",
			args: []string{"getbits", "-o", "decimal", "0x2b6", "7"},
			out:  "1\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "getbits range",
			args: []string{"pgetbits", "-o", "binary", "0x2b6", "3", "7"},
			out:  "0b10110\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "dropbits",
			args: []string{"dropbits", "-o", "decimal", "0b10100", "2"},
			out:  "16\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "fillbits",
			args: []string{"fillbits", "0x2b6", "2", "7"},
			out:  "0x2fe\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "mask",
			args: []string{"mask", "-o", "binary", "1", "3"},
			out:  "0b1110\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "shl",
			args: []string{"-w", "8", "shl", "0x81", "1"},
			out:  "0x2\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "min",
			args: []string{"-w", "6", "-o", "binary", "min"},
			out:  "0b100000\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "max",
			args: []string{"-w", "6", "--signed=false", "-o", "decimal", "max"},
			out:  "63\n",
			Mark: oops.New("unexpected"),
		},
		{
			name: "divf",
			args: []string{"divf", "7", "2"},
			out:  "3.5\n",
			Mark: oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			out, err := run(tc.args...)
			require.NoError(t, err, tc.Mark)
			require.Equal(t, tc.out, out, tc.Mark)
		})
	}
}

func TestFieldsTable(t *testing.T) {
	out, err := run("fields", "--table", "1700040f", "31", "29", "24", "21", "0")
	require.NoError(t, err)
	require.Contains(t, out, "31:30")
	require.Contains(t, out, "21:1")
	require.Contains(t, out, "0x207")
	require.Contains(t, out, "0x1")
}

const encodings = `
name: call
fields:
  - {name: op, boundary: 31, only_true: ["0b01"]}
  - {name: disp30, boundary: 29}
---
name: sethi
fields:
  - {name: opc, boundary: 31, only_true: ["0"]}
  - {name: rd, boundary: 29, verbose: {"8": eight}}
  - {name: opc, boundary: 24, only_true: ["0b100"]}
  - {name: imm22, boundary: 21}
`

func TestDescribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(encodings), 0o644))

	out, err := run("describe", "-e", path, "-o", "hex", "1100040f")
	require.NoError(t, err)
	require.Equal(t, "opc    rd  opc   imm22\ntrue  0x8  true  0x40f\n\nrd[29:25]: eight\n", out)

	out, err = run("vrepr", "-e", path, "--name", "call", "1100040f")
	require.NoError(t, err)
	require.Contains(t, out, "Error! Wrong code: op[31:30] = 0x0\nValid codes: 0x1")

	_, err = run("describe", "-e", path, "80000000")
	require.Error(t, err)
	require.True(t, Error.Has(err))

	_, err = run("describe", "-e", path, "-n", "nope", "1")
	require.Error(t, err)

	_, err = run("describe", "-e", filepath.Join(t.TempDir(), "missing.yaml"), "1")
	require.Error(t, err)

	_, err = run("describe", "1")
	require.Error(t, err)
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pir.log")

	out, err := run("--log-level", "debug", "--log-file", path, "-w", "8", "mode")
	require.NoError(t, err)
	require.Equal(t, "signed 8-bit hex [-128, 127]\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "setup")
	require.Contains(t, string(data), "signed 8-bit hex")
}

func TestErrors(t *testing.T) {
	_, err := run("div", "1", "0")
	require.True(t, errors.Is(err, arith.ErrDivisionByZero))

	_, err = run("--format", "float", "mode")
	require.True(t, mode.ModeError.Has(err))

	_, err = run("-w", "0", "mode")
	require.True(t, mode.ModeError.Has(err))

	_, err = run("--bare", "octal", "mode")
	require.True(t, Error.Has(err))

	_, err = run("--log-level", "loud", "mode")
	require.Error(t, err)

	_, err = run("fields", "1", "x")
	require.True(t, Error.Has(err))

	_, err = run("getbits", "1", "x")
	require.True(t, Error.Has(err))

	_, err = run("--format", "octal", "mode")
	require.Error(t, err)

	_, err = run("add", "1")
	require.Error(t, err)
}
