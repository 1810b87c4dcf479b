package enc

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/calebcase/pir/field"
	"github.com/calebcase/pir/integer"
	"github.com/calebcase/pir/notation"
)

// Options control verbose rendering.
type Options struct {
	// Format of the field values; Default uses the mode's format.
	Format notation.Notation

	// Borders adds a row with the bit range of every field.
	Borders bool
}

// Column is one field of a rendered table.
type Column struct {
	Field  Field
	Value  *big.Int
	Text   string
	Border string
	Width  int
}

// Kind classifies a diagnostic.
type Kind int

// Diagnostic kinds
const (
	WrongCode Kind = iota
	InvalidValue
	HighBits
)

func (k Kind) String() string {
	switch k {
	case WrongCode:
		return "wrong code"
	case InvalidValue:
		return "invalid value"
	case HighBits:
		return "high bits"
	}

	return "unknown"
}

// Diagnostic is a problem found while rendering a value.
type Diagnostic struct {
	Kind Kind
	Text string
}

// Report is a value decomposed against a descriptor.
type Report struct {
	Descriptor  *Descriptor
	Columns     []Column
	Borders     bool
	Diagnostics []Diagnostic
	Annotations []string
}

// Describe decomposes v against d and collects diagnostics and verbose
// annotations.
func Describe(v integer.Value, d *Descriptor, o Options) (r Report, err error) {
	defer Error.WrapP(&err)

	n := v.Mode().Resolve(o.Format)

	parts, err := field.Split(v, d.Spec())
	if err != nil {
		return r, err
	}

	r = Report{
		Descriptor: d,
		Columns:    make([]Column, 0, len(parts)),
		Borders:    o.Borders,
	}

	for i, part := range parts {
		f := d.fields[i]

		c := Column{
			Field: f,
			Value: part.Value,
			Text:  part.Render(n),
		}

		if f.Boolean() {
			c.Text = fmt.Sprint(f.Holds(part.Value))
		}

		c.Width = max(len(f.Name), len(c.Text))
		if o.Borders {
			c.Width = max(c.Width, len(f.Borders(0)))
			c.Border = f.Borders(c.Width)
		}

		r.Columns = append(r.Columns, c)
	}

	for i, c := range r.Columns {
		if c.Field.Holds(c.Value) {
			continue
		}

		codes := make([]string, 0, len(c.Field.onlyTrue))
		for _, code := range c.Field.onlyTrue {
			codes = append(codes, withValue(parts[i], code).Render(n))
		}

		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Kind: WrongCode,
			Text: fmt.Sprintf(
				"Error! Wrong code: %s = %s\nValid codes: %s",
				c.Field,
				parts[i].Render(n),
				strings.Join(codes, ", "),
			),
		})
	}

	for i, c := range r.Columns {
		if !c.Field.Invalid(c.Value) {
			continue
		}

		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Kind: InvalidValue,
			Text: fmt.Sprintf("Error! Invalid value: %s = %s", c.Field, parts[i].Render(n)),
		})
	}

	top := d.fields[0].High
	rest := v.Residue()
	rest.Rsh(rest, uint(top+1))
	if rest.Sign() != 0 {
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Kind: HighBits,
			Text: fmt.Sprintf(
				"Warning! There are significant bits higher than %d: %s",
				top,
				notation.Format(rest, n),
			),
		})
	}

	for _, c := range r.Columns {
		if label, ok := c.Field.Label(c.Value); ok {
			r.Annotations = append(r.Annotations, fmt.Sprintf("%s: %s", c.Field, label))
		}
	}

	return r, nil
}

// Render returns the verbose text for v decomposed against d: the field
// table, then diagnostics and annotations separated by blank lines.
func Render(v integer.Value, d *Descriptor, o Options) (s string, err error) {
	r, err := Describe(v, d, o)
	if err != nil {
		return "", err
	}

	return r.String(), nil
}

// Table returns the rows of the field table: names, values and, when
// requested, borders. Cells are centered and separated by two spaces.
func (r Report) Table() (rows []string) {
	names := make([]string, 0, len(r.Columns))
	values := make([]string, 0, len(r.Columns))
	borders := make([]string, 0, len(r.Columns))

	for _, c := range r.Columns {
		names = append(names, center(c.Field.Name, c.Width))
		values = append(values, center(c.Text, c.Width))
		borders = append(borders, c.Border)
	}

	rows = []string{
		strings.Join(names, "  "),
		strings.Join(values, "  "),
	}

	if r.Borders {
		rows = append(rows, strings.Join(borders, "  "))
	}

	return rows
}

func (r Report) String() string {
	sb := &strings.Builder{}

	sb.WriteString(strings.Join(r.Table(), "\n"))

	for _, d := range r.Diagnostics {
		sb.WriteString("\n\n")
		sb.WriteString(d.Text)
	}

	if len(r.Annotations) > 0 {
		sb.WriteString("\n")

		for _, a := range r.Annotations {
			sb.WriteString("\n")
			sb.WriteString(a)
		}
	}

	return sb.String()
}

func withValue(f field.Field, x *big.Int) field.Field {
	f.Value = x

	return f
}

// center pads s with spaces to width. When the padding is odd the extra space
// goes left only if width is odd as well.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}

	left := pad/2 + (pad & width & 1)

	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}
