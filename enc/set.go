package enc

import (
	"github.com/calebcase/pir/field"
	"github.com/calebcase/pir/integer"
)

// Matches returns true if v fits the descriptor: its boundaries fit the
// value's width and every boolean field holds.
func (d *Descriptor) Matches(v integer.Value) bool {
	parts, err := field.Split(v, d.Spec())
	if err != nil {
		return false
	}

	for i, part := range parts {
		if !d.fields[i].Holds(part.Value) {
			return false
		}
	}

	return true
}

// Set is an ordered list of descriptors, e.g. the encodings of an
// instruction set.
type Set []*Descriptor

// Match returns the first descriptor that v matches. A descriptor without
// boolean fields matches every value, so list those last.
func (s Set) Match(v integer.Value) (d *Descriptor, ok bool) {
	for _, d := range s {
		if d.Matches(v) {
			return d, true
		}
	}

	return nil, false
}

// Lookup returns the descriptor with the given name.
func (s Set) Lookup(name string) (d *Descriptor, ok bool) {
	for _, d := range s {
		if d.name == name {
			return d, true
		}
	}

	return nil, false
}
