// Package enc describes packed binary layouts, such as machine instruction
// encodings, as named bit fields and renders values against them.
//
// A Descriptor is immutable. Annotations (verbose labels, boolean display and
// invalid values) are added through a Builder which is owned by a single
// goroutine until Build is called:
//
//	b, err := enc.NewBuilder("sethi",
//		enc.Def{"opc", 31}, enc.Def{"rd", 29}, enc.Def{"opc", 24}, enc.Def{"imm22", 21})
//	...
//	err = b.OnlyTrue(enc.At("opc", 31), notation.FromInt(0))
//	err = b.Verbose(enc.ByName("rd"), notation.FromInt(8), "eight")
//	d := b.Build()
package enc

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/errs"

	"github.com/calebcase/pir/field"
	"github.com/calebcase/pir/notation"
)

// Error is the class of descriptor errors.
var Error = errs.Class("enc")

// Def declares a field by name and most significant bit.
type Def struct {
	Name     string
	Boundary int
}

// Field is a named bit range of a descriptor.
type Field struct {
	Name string
	High int
	Low  int

	verbose  map[string]string
	onlyTrue []*big.Int
	invalid  []*big.Int
}

func (f Field) String() string {
	if f.High != f.Low {
		return fmt.Sprintf("%s[%d:%d]", f.Name, f.High, f.Low)
	}

	return fmt.Sprintf("%s[%d]", f.Name, f.High)
}

// Borders returns the bit range label of the field, stretched with dashes (or
// centered for a single bit) to width characters where possible.
func (f Field) Borders(width int) string {
	hi, lo := strconv.Itoa(f.High), strconv.Itoa(f.Low)

	if f.High == f.Low {
		return center(hi, width)
	}

	dashes := width - len(hi) - len(lo)
	if dashes < 1 {
		dashes = 1
	}

	return hi + strings.Repeat("-", dashes) + lo
}

// Label returns the verbose label for a field value.
func (f Field) Label(x *big.Int) (label string, ok bool) {
	label, ok = f.verbose[x.String()]

	return label, ok
}

// Boolean reports whether the field is displayed as true or false.
func (f Field) Boolean() bool {
	return len(f.onlyTrue) > 0
}

// Holds reports whether x is one of the field's true values. Fields without
// boolean display hold for every value.
func (f Field) Holds(x *big.Int) bool {
	if !f.Boolean() {
		return true
	}

	return contains(f.onlyTrue, x)
}

// Invalid reports whether x was declared invalid for the field.
func (f Field) Invalid(x *big.Int) bool {
	return contains(f.invalid, x)
}

// Codes returns the true values of a boolean field in ascending order.
func (f Field) Codes() []*big.Int {
	return cloneInts(f.onlyTrue)
}

func (f Field) clone() Field {
	c := f
	c.verbose = make(map[string]string, len(f.verbose))
	for k, v := range f.verbose {
		c.verbose[k] = v
	}
	c.onlyTrue = cloneInts(f.onlyTrue)
	c.invalid = cloneInts(f.invalid)

	return c
}

// Ref addresses a field of a descriptor, see ByName and At.
type Ref struct {
	Name     string
	Boundary int
}

// ByName refers to the only field with the given name.
func ByName(name string) Ref {
	return Ref{Name: name, Boundary: -1}
}

// At refers to the field with the given name and most significant bit. Use it
// when a name appears more than once.
func At(name string, boundary int) Ref {
	return Ref{Name: name, Boundary: boundary}
}

func (r Ref) String() string {
	if r.Boundary < 0 {
		return r.Name
	}

	return fmt.Sprintf("%s@%d", r.Name, r.Boundary)
}

// Descriptor is a named, immutable list of fields, most significant first.
type Descriptor struct {
	name   string
	fields []Field
}

// New returns a descriptor without annotations.
func New(name string, defs ...Def) (d *Descriptor, err error) {
	b, err := NewBuilder(name, defs...)
	if err != nil {
		return nil, err
	}

	return b.Build(), nil
}

// Name returns the descriptor name.
func (d *Descriptor) Name() string {
	return d.name
}

// Fields returns the fields, most significant first.
func (d *Descriptor) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)

	return out
}

// Field returns the field r refers to.
func (d *Descriptor) Field(r Ref) (f Field, err error) {
	i, err := lookup(d.fields, r)
	if err != nil {
		return f, err
	}

	return d.fields[i], nil
}

// Spec returns the field boundaries.
func (d *Descriptor) Spec() field.Spec {
	s := make(field.Spec, 0, len(d.fields))
	for _, f := range d.fields {
		s = append(s, f.High)
	}

	return s
}

// Builder returns a builder initialized with a copy of the descriptor.
func (d *Descriptor) Builder() *Builder {
	b := &Builder{
		Parser: notation.DefaultParser,
		name:   d.name,
		fields: make([]Field, 0, len(d.fields)),
	}

	for _, f := range d.fields {
		b.fields = append(b.fields, f.clone())
	}

	return b
}

func (d *Descriptor) String() string {
	parts := make([]string, 0, len(d.fields))
	for _, f := range d.fields {
		parts = append(parts, f.String())
	}

	return fmt.Sprintf("%s: %s", d.name, strings.Join(parts, ", "))
}

// Builder accumulates annotations for a descriptor. Every mutator is
// idempotent.
type Builder struct {
	// Parser reads annotation values.
	Parser notation.Parser

	name   string
	fields []Field
}

// NewBuilder declares all fields of a descriptor. Boundaries must be strictly
// decreasing and names non-empty.
func NewBuilder(name string, defs ...Def) (b *Builder, err error) {
	if len(defs) == 0 {
		return nil, field.SpecError.New("descriptor %q has no fields", name)
	}

	s := make(field.Spec, 0, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, Error.New("descriptor %q: field at bit %d has no name", name, def.Boundary)
		}

		s = append(s, def.Boundary)
	}

	// The width only bounds the first boundary, which is checked against
	// the mode when rendering.
	err = s.Validate(uint(s[0]) + 1)
	if err != nil {
		return nil, err
	}

	b = &Builder{
		Parser: notation.DefaultParser,
		name:   name,
		fields: make([]Field, 0, len(defs)),
	}

	for i, def := range defs {
		low := 0
		if i+1 < len(defs) {
			low = defs[i+1].Boundary + 1
		}

		b.fields = append(b.fields, Field{
			Name:    def.Name,
			High:    def.Boundary,
			Low:     low,
			verbose: map[string]string{},
		})
	}

	return b, nil
}

// Verbose labels a field value.
func (b *Builder) Verbose(r Ref, value notation.Literal, label string) (err error) {
	f, x, err := b.target(r, value)
	if err != nil {
		return err
	}

	f.verbose[x.String()] = label

	return nil
}

// OnlyTrue marks the field for boolean display: it renders as true when its
// value equals one of the sentinels added this way, false otherwise.
func (b *Builder) OnlyTrue(r Ref, sentinel notation.Literal) (err error) {
	f, x, err := b.target(r, sentinel)
	if err != nil {
		return err
	}

	f.onlyTrue = insert(f.onlyTrue, x)

	return nil
}

// Invalid declares a field value as invalid.
func (b *Builder) Invalid(r Ref, value notation.Literal) (err error) {
	f, x, err := b.target(r, value)
	if err != nil {
		return err
	}

	f.invalid = insert(f.invalid, x)

	return nil
}

func (b *Builder) target(r Ref, value notation.Literal) (f *Field, x *big.Int, err error) {
	i, err := lookup(b.fields, r)
	if err != nil {
		return nil, nil, err
	}

	x, err = b.Parser.Int(value)
	if err != nil {
		return nil, nil, err
	}

	return &b.fields[i], x, nil
}

// Build returns an immutable copy of the descriptor built so far.
func (b *Builder) Build() *Descriptor {
	d := &Descriptor{
		name:   b.name,
		fields: make([]Field, 0, len(b.fields)),
	}

	for _, f := range b.fields {
		d.fields = append(d.fields, f.clone())
	}

	return d
}

func lookup(fields []Field, r Ref) (i int, err error) {
	i = -1

	for j, f := range fields {
		if f.Name != r.Name {
			continue
		}

		if r.Boundary >= 0 {
			if f.High == r.Boundary {
				return j, nil
			}

			continue
		}

		if i >= 0 {
			return -1, Error.New("ambiguous field %q: refer to it by boundary", r.Name)
		}

		i = j
	}

	if i < 0 {
		return -1, Error.New("no field %s", r)
	}

	return i, nil
}

func contains(xs []*big.Int, x *big.Int) bool {
	i := sort.Search(len(xs), func(i int) bool {
		return xs[i].Cmp(x) >= 0
	})

	return i < len(xs) && xs[i].Cmp(x) == 0
}

func insert(xs []*big.Int, x *big.Int) []*big.Int {
	i := sort.Search(len(xs), func(i int) bool {
		return xs[i].Cmp(x) >= 0
	})

	if i < len(xs) && xs[i].Cmp(x) == 0 {
		return xs
	}

	xs = append(xs, nil)
	copy(xs[i+1:], xs[i:])
	xs[i] = x

	return xs
}

func cloneInts(xs []*big.Int) []*big.Int {
	if xs == nil {
		return nil
	}

	out := make([]*big.Int, 0, len(xs))
	for _, x := range xs {
		out = append(out, new(big.Int).Set(x))
	}

	return out
}
