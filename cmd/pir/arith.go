package main

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/calebcase/pir/arith"
	"github.com/calebcase/pir/integer"
	"github.com/calebcase/pir/notation"
)

type (
	binaryOp func(u arith.Unit, a, b notation.Literal) (integer.Value, error)
	rangeOp  func(u arith.Unit, a notation.Literal, low, high uint) (integer.Value, error)
)

func (o *options) unit() arith.Unit {
	return arith.Unit{
		Mode:   o.ctx.Mode,
		Parser: o.ctx.Parser,
	}
}

func (o *options) print(cmd *cobra.Command, v integer.Value, err error) error {
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), v.Render(o.output))

	return err
}

func (o *options) arithCommands() (cmds []*cobra.Command) {
	binaries := []struct {
		use     string
		aliases []string
		short   string
		op      binaryOp
	}{
		{"add A B", []string{"padd"}, "add two values", arith.Unit.Add},
		{"sub A B", []string{"psub"}, "subtract B from A", arith.Unit.Sub},
		{"mul A B", []string{"pmul"}, "multiply two values", arith.Unit.Mul},
		{"div A B", []string{"pdiv"}, "divide A by B, truncating toward zero", arith.Unit.Div},
		{"rem A B", []string{"prem"}, "remainder of dividing A by B", arith.Unit.Rem},
		{"and A B", []string{"pand"}, "bitwise and", arith.Unit.And},
		{"or A B", []string{"por"}, "bitwise or", arith.Unit.Or},
		{"xor A B", []string{"pxor"}, "bitwise exclusive or", arith.Unit.Xor},
		{"shl A N", []string{"pls"}, "shift A left by N bits", arith.Unit.Shl},
		{"shr A N", []string{"prs"}, "shift A right by N bits", arith.Unit.Shr},
	}

	for _, b := range binaries {
		op := b.op

		cmds = append(cmds, &cobra.Command{
			Use:     b.use,
			Aliases: b.aliases,
			Short:   b.short,
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := op(o.unit(), notation.FromText(args[0]), notation.FromText(args[1]))

				return o.print(cmd, v, err)
			},
		})
	}

	ranges := []struct {
		use     string
		aliases []string
		short   string
		op      rangeOp
	}{
		{"getbits A LOW [HIGH]", []string{"pgetbits"}, "get bits LOW through HIGH of A", arith.Unit.GetBits},
		{"fillbits A LOW [HIGH]", nil, "set bits LOW through HIGH of A", arith.Unit.FillBits},
		{"dropbits A LOW [HIGH]", []string{"pdropbits"}, "clear bits LOW through HIGH of A", arith.Unit.DropBits},
	}

	for _, r := range ranges {
		op := r.op

		cmds = append(cmds, &cobra.Command{
			Use:     r.use,
			Aliases: r.aliases,
			Short:   r.short,
			Args:    cobra.RangeArgs(2, 3),
			RunE: func(cmd *cobra.Command, args []string) error {
				low, high, err := bitRange(args[1:])
				if err != nil {
					return err
				}

				v, err := op(o.unit(), notation.FromText(args[0]), low, high)

				return o.print(cmd, v, err)
			},
		})
	}

	cmds = append(cmds,
		&cobra.Command{
			Use:     "setbits A LOW HIGH V",
			Aliases: []string{"psetbits"},
			Short:   "replace bits LOW through HIGH of A with V",
			Example: "pir setbits -o decimal 0xf 3 5 0b110",
			Args:    cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				low, high, err := bitRange(args[1:3])
				if err != nil {
					return err
				}

				v, err := o.unit().SetBits(notation.FromText(args[0]), low, high, notation.FromText(args[3]))

				return o.print(cmd, v, err)
			},
		},
		&cobra.Command{
			Use:     "not A",
			Aliases: []string{"pinv"},
			Short:   "invert every bit of A",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := o.unit().Not(notation.FromText(args[0]))

				return o.print(cmd, v, err)
			},
		},
		&cobra.Command{
			Use:     "mask LOW HIGH",
			Aliases: []string{"pmask"},
			Short:   "a value with bits LOW through HIGH set",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				low, high, err := bitRange(args)
				if err != nil {
					return err
				}

				v, err := o.unit().Mask(low, high)

				return o.print(cmd, v, err)
			},
		},
		&cobra.Command{
			Use:     "divf A B",
			Aliases: []string{"pdivf"},
			Short:   "divide A by B as a float",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := o.unit().DivFloat(notation.FromText(args[0]), notation.FromText(args[1]))
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), notation.FromFloat(f))

				return err
			},
		},
		&cobra.Command{
			Use:     "min",
			Aliases: []string{"pintmin"},
			Short:   "the smallest value of the mode",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := o.unit().Min()

				return o.print(cmd, v, err)
			},
		},
		&cobra.Command{
			Use:     "max",
			Aliases: []string{"pintmax"},
			Short:   "the largest value of the mode",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := o.unit().Max()

				return o.print(cmd, v, err)
			},
		},
	)

	return cmds
}

// bitRange reads LOW and an optional HIGH, which defaults to LOW.
func bitRange(args []string) (low, high uint, err error) {
	low, err = cast.ToUintE(args[0])
	if err != nil {
		return 0, 0, Error.New("invalid bit index %q", args[0])
	}

	if len(args) < 2 {
		return low, low, nil
	}

	high, err = cast.ToUintE(args[1])
	if err != nil {
		return 0, 0, Error.New("invalid bit index %q", args[1])
	}

	return low, high, nil
}
