package enc

import (
	"errors"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/calebcase/pir/notation"
)

// document is the YAML form of a descriptor:
//
//	name: sethi
//	fields:
//	  - name: opc
//	    boundary: 31
//	    only_true: ["0x0"]
//	  - name: rd
//	    boundary: 29
//	    verbose:
//	      "0x8": eight
//	  - {name: opc, boundary: 24}
//	  - {name: imm22, boundary: 21}
//
// Values are read with the loader's parser, so unprefixed digits follow its
// Bare rule.
type document struct {
	Name   string          `yaml:"name"`
	Fields []fieldDocument `yaml:"fields"`
}

type fieldDocument struct {
	Name     string            `yaml:"name"`
	Boundary int               `yaml:"boundary"`
	OnlyTrue []string          `yaml:"only_true"`
	Invalid  []string          `yaml:"invalid"`
	Verbose  map[string]string `yaml:"verbose"`
}

// LoadYAML reads a stream of YAML documents, one descriptor each.
func LoadYAML(r io.Reader, p notation.Parser) (s Set, err error) {
	defer Error.WrapP(&err)

	dec := yaml.NewDecoder(r)

	for {
		var doc document

		err = dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		d, err := doc.build(p)
		if err != nil {
			return nil, err
		}

		s = append(s, d)
	}

	if len(s) == 0 {
		return nil, Error.New("no descriptors")
	}

	return s, nil
}

func (doc document) build(p notation.Parser) (d *Descriptor, err error) {
	defs := make([]Def, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		defs = append(defs, Def{Name: f.Name, Boundary: f.Boundary})
	}

	b, err := NewBuilder(doc.Name, defs...)
	if err != nil {
		return nil, err
	}

	b.Parser = p

	for _, f := range doc.Fields {
		ref := At(f.Name, f.Boundary)

		for _, v := range f.OnlyTrue {
			err = b.OnlyTrue(ref, notation.FromText(v))
			if err != nil {
				return nil, err
			}
		}

		for _, v := range f.Invalid {
			err = b.Invalid(ref, notation.FromText(v))
			if err != nil {
				return nil, err
			}
		}

		keys := make([]string, 0, len(f.Verbose))
		for k := range f.Verbose {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			err = b.Verbose(ref, notation.FromText(k), f.Verbose[k])
			if err != nil {
				return nil, err
			}
		}
	}

	return b.Build(), nil
}
