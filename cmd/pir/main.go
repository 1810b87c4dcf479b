package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/zeebo/errs"

	"github.com/calebcase/pir"
	"github.com/calebcase/pir/integer"
	"github.com/calebcase/pir/internal/log"
	"github.com/calebcase/pir/mode"
	"github.com/calebcase/pir/notation"
)

// Version of the command.
var Version = "0.1.0"

// Error is the class of command line errors.
var Error = errs.Class("pir")

type options struct {
	signed  bool
	width   uint
	format  notation.Notation
	output  notation.Notation
	bare    string
	noColor bool
	log     log.Config

	ctx    pir.Context
	logger *log.Logger
	color  bool
}

func newRootCommand() *cobra.Command {
	o := &options{
		signed: mode.Default.Signed,
		width:  mode.Default.Width,
		format: mode.Default.Format,
		bare:   "hex",
		log:    log.DefaultConfig,
	}

	root := &cobra.Command{
		Use:   "pir",
		Short: "pir shows fixed-width integers in decimal, hex and binary",
		Long: `pir shows fixed-width integers in decimal, hex and binary, splits them
into bit fields and does wrapping two's-complement arithmetic.

Unprefixed values are read as hexadecimal unless --bare=decimal is given:
"10" is sixteen, "0b10" is two and "0x10" is sixteen.`,
		Version:      Version,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return o.logger.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&o.signed, "signed", o.signed, "interpret values as signed")
	flags.UintVarP(&o.width, "width", "w", o.width, "integer width in bits")
	flags.Var(&o.format, "format", "default notation: decimal, hex or binary")
	flags.VarP(&o.output, "output", "o", "notation of this call's output: decimal, hex, binary or float")
	flags.StringVar(&o.bare, "bare", o.bare, "how values without a prefix are read: hex or decimal")
	flags.BoolVar(&o.noColor, "no-color", false, "never color the output")
	flags.StringVar(&o.log.Level, "log-level", o.log.Level, "log level: debug, info, warn or error")
	flags.StringVar(&o.log.File, "log-file", "", "also write the log to `FILE`")

	root.AddCommand(
		o.modeCommand(),
		o.reprCommand(),
		o.fieldsCommand(),
		o.describeCommand(),
	)
	root.AddCommand(o.arithCommands()...)

	return root
}

func (o *options) setup(cmd *cobra.Command) (err error) {
	o.logger, err = log.New(o.log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	m, err := mode.New(o.signed, o.width, o.format)
	if err != nil {
		return err
	}

	p := notation.DefaultParser
	switch o.bare {
	case "hex":
	case "decimal":
		p.Bare = notation.BareDecimal
	default:
		return Error.New("invalid --bare %q: want hex or decimal", o.bare)
	}

	o.ctx = pir.Context{
		Mode:   m,
		Parser: p,
	}
	o.color = !o.noColor && isTerminal(cmd.OutOrStdout())

	o.logger.Debugw("setup", "mode", m.String(), "bare", o.bare, "color", o.color)

	return nil
}

func (o *options) modeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mode",
		Short: "show the mode and its range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := o.ctx.Mode

			lo := integer.Canonical(m.Min(), m).Render(notation.Decimal)
			hi := integer.Canonical(m.Max(), m).Render(notation.Decimal)

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s [%s, %s]\n", m, lo, hi)

			return err
		},
	}
}

func (o *options) reprCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "repr VALUE...",
		Aliases: []string{"c2repr"},
		Short:   "show values in two's-complement form",
		Example: "pir repr -w 8 -o binary -- -0xf 0b101",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				r, err := o.ctx.C2Repr(arg, o.output)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), r)
			}

			return nil
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		os.Exit(1)
	}
}
