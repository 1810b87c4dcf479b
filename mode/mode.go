// Package mode describes the fixed-width integer configuration every
// conversion and arithmetic operation works under: signedness, bit width and
// the default output notation.
package mode

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/zeebo/errs"
	"go.uber.org/atomic"

	"github.com/calebcase/pir/notation"
)

// ModeError is the class of errors for invalid modes.
var ModeError = errs.Class("mode")

// Mode is a fixed-width integer configuration.
type Mode struct {
	Signed bool
	Width  uint

	// Format is used whenever an operation isn't given an explicit
	// notation. Only integer notations are allowed.
	Format notation.Notation
}

// Default is signed 64 bit integers rendered in hexadecimal.
var Default = Mode{
	Signed: true,
	Width:  64,
	Format: notation.Hex,
}

// New returns a validated mode.
func New(signed bool, width uint, format notation.Notation) (m Mode, err error) {
	m = Mode{
		Signed: signed,
		Width:  width,
		Format: format,
	}

	return m, m.Validate()
}

// Validate checks the width and default format.
func (m Mode) Validate() error {
	if m.Width < 1 {
		return ModeError.New("invalid width: %d", m.Width)
	}

	if !m.Format.Integer() {
		return ModeError.New("invalid default format: %s", m.Format)
	}

	return nil
}

// Resolve returns n, or the mode's format when n is Default.
func (m Mode) Resolve(n notation.Notation) notation.Notation {
	if n == notation.Default {
		return m.Format
	}

	return n
}

// Modulus returns 2^width.
func (m Mode) Modulus() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), m.Width)
}

// Mask returns 2^width - 1.
func (m Mode) Mask() *big.Int {
	x := m.Modulus()

	return x.Sub(x, big.NewInt(1))
}

// Min returns the smallest representable value.
func (m Mode) Min() *big.Int {
	if !m.Signed {
		return new(big.Int)
	}

	x := new(big.Int).Lsh(big.NewInt(1), m.Width-1)

	return x.Neg(x)
}

// Max returns the largest representable value.
func (m Mode) Max() *big.Int {
	if !m.Signed {
		return m.Mask()
	}

	x := new(big.Int).Lsh(big.NewInt(1), m.Width-1)

	return x.Sub(x, big.NewInt(1))
}

func (m Mode) String() string {
	sign := "unsigned"
	if m.Signed {
		sign = "signed"
	}

	return fmt.Sprintf("%s %d-bit %s", sign, m.Width, m.Format)
}

// Store holds the live mode. Readers always observe a complete mode: updates
// replace the whole value at once.
type Store struct {
	mu sync.Mutex
	v  atomic.Value
}

// NewStore returns a store holding m. It panics if m is invalid.
func NewStore(m Mode) *Store {
	err := m.Validate()
	if err != nil {
		panic(err)
	}

	s := &Store{}
	s.v.Store(m)

	return s
}

// Get returns the live mode. The zero Store holds Default.
func (s *Store) Get() Mode {
	m, ok := s.v.Load().(Mode)
	if !ok {
		return Default
	}

	return m
}

// Set validates m and makes it the live mode. An invalid mode leaves the
// previous one in place.
func (s *Store) Set(m Mode) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.set(m)
}

func (s *Store) set(m Mode) (err error) {
	err = m.Validate()
	if err != nil {
		return err
	}

	s.v.Store(m)

	return nil
}

// Update changes only the given parts of the live mode: nil pointers and a
// Default format keep their current value.
func (s *Store) Update(signed *bool, width *uint, format notation.Notation) (m Mode, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m = s.Get()

	if signed != nil {
		m.Signed = *signed
	}

	if width != nil {
		m.Width = *width
	}

	if format != notation.Default {
		m.Format = format
	}

	err = s.set(m)
	if err != nil {
		return s.Get(), err
	}

	return m, nil
}
