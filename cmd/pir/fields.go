package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/zeebo/errs"

	"github.com/calebcase/pir/enc"
	"github.com/calebcase/pir/field"
	"github.com/calebcase/pir/notation"
)

func (o *options) fieldsCommand() *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:     "fields VALUE [BOUNDARY...]",
		Aliases: []string{"prepr"},
		Short:   "split a value into bit fields",
		Long: `Split a value into bit fields. Every boundary is the most significant bit
of a field; the last field ends at bit 0. Without boundaries the value is
split into bytes, rendered as 8 bits each unless --output is given.`,
		Example: "pir fields -o binary 1700040f 31 29 24 21",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := o.ctx.Value(args[0])
			if err != nil {
				return err
			}

			n := o.ctx.Mode.Resolve(o.output)

			var fields []field.Field
			if len(args) == 1 {
				fields = field.Bytes(v)

				if o.output == notation.Default {
					n = notation.Binary
				}
			} else {
				s := make(field.Spec, 0, len(args)-1)
				for _, arg := range args[1:] {
					b, err := cast.ToIntE(arg)
					if err != nil {
						return Error.New("invalid boundary %q", arg)
					}

					s = append(s, b)
				}

				fields, err = field.Split(v, s)
				if err != nil {
					return err
				}
			}

			texts := field.Render(fields, n)

			if !table {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(texts, " "))

				return nil
			}

			header := make([]string, 0, len(fields))
			for _, f := range fields {
				if f.High == f.Low {
					header = append(header, fmt.Sprint(f.High))
				} else {
					header = append(header, fmt.Sprintf("%d:%d", f.High, f.Low))
				}
			}

			t := tablewriter.NewWriter(cmd.OutOrStdout())
			t.SetHeader(header)
			t.SetAutoFormatHeaders(false)
			t.Append(texts)
			t.Render()

			return nil
		},
	}

	cmd.Flags().BoolVarP(&table, "table", "t", false, "render the fields as a table")

	return cmd
}

func (o *options) describeCommand() *cobra.Command {
	var (
		path    string
		name    string
		borders bool
	)

	cmd := &cobra.Command{
		Use:     "describe VALUE",
		Aliases: []string{"vrepr"},
		Short:   "render a value against an encoding from a YAML file",
		Long: `Render a value against an encoding. The YAML file holds one or more
documents, each describing an encoding:

  name: sethi
  fields:
    - {name: opc, boundary: 31, only_true: ["0"]}
    - {name: rd, boundary: 29, verbose: {"8": eight}}
    - {name: opc, boundary: 24, only_true: ["0b100"]}
    - {name: imm22, boundary: 21}

Without --name the first encoding whose boolean fields all hold is used.`,
		Example: "pir describe -e sparc.yaml -b 1100040f",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := o.loadEncodings(path)
			if err != nil {
				return err
			}

			v, err := o.ctx.Value(args[0])
			if err != nil {
				return err
			}

			var (
				d  *enc.Descriptor
				ok bool
			)

			if name != "" {
				d, ok = set.Lookup(name)
				if !ok {
					return Error.New("no encoding %q in %s", name, path)
				}
			} else {
				d, ok = set.Match(v)
				if !ok {
					return Error.New("no encoding in %s matches %s", path, v)
				}
			}

			o.logger.Debugw("describe", "encoding", d.String(), "value", v.String())

			r, err := enc.Describe(v, d, enc.Options{
				Format:  o.output,
				Borders: borders,
			})
			if err != nil {
				return err
			}

			for _, diag := range r.Diagnostics {
				o.logger.Infow("diagnostic", "encoding", d.Name(), "kind", diag.Kind.String())
			}

			o.printReport(cmd.OutOrStdout(), r)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&path, "enc", "e", "", "encodings YAML `FILE`")
	flags.StringVarP(&name, "name", "n", "", "use the encoding with this name")
	flags.BoolVarP(&borders, "borders", "b", false, "show the bit range of every field")
	_ = cmd.MarkFlagRequired("enc")

	return cmd
}

func (o *options) loadEncodings(path string) (set enc.Set, err error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { err = errs.Combine(err, fh.Close()) }()

	return enc.LoadYAML(fh, o.ctx.Parser)
}

// printReport writes the report as enc.Report.String does, coloring
// diagnostics and annotations when the output is a terminal.
func (o *options) printReport(w io.Writer, r enc.Report) {
	failure := o.paint(color.FgRed)
	warning := o.paint(color.FgYellow)
	note := o.paint(color.FgCyan)

	fmt.Fprintln(w, strings.Join(r.Table(), "\n"))

	for _, d := range r.Diagnostics {
		c := failure
		if d.Kind == enc.HighBits {
			c = warning
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, c.Sprint(d.Text))
	}

	if len(r.Annotations) > 0 {
		fmt.Fprintln(w)

		for _, a := range r.Annotations {
			fmt.Fprintln(w, note.Sprint(a))
		}
	}
}

func (o *options) paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if o.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c
}
