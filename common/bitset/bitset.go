// Package bitset implements a fixed capacity bit set used to mark trace positions.
package bitset

import (
	"errors"
	"fmt"
)

const wordSize = 8

// ErrOutOfRange is returned when a position falls outside the bitset capacity.
var ErrOutOfRange = errors.New("bit position out of range")

// Bitset is a byte packed set of bits with a capacity fixed at creation.
type Bitset struct {
	buf []byte
	n   int
}

// New creates a bitset holding exactly n bits, all cleared.
func New(n int) *Bitset {
	if n < 0 {
		n = 0
	}
	return &Bitset{
		buf: make([]byte, (n+wordSize-1)/wordSize),
		n:   n,
	}
}

// Len returns the number of bits in the set.
func (b *Bitset) Len() int {
	return b.n
}

// Get reports whether bit i is set
func (b *Bitset) Get(i int) (bool, error) {
	if err := b.check(i); err != nil {
		return false, err
	}
	return (b.buf[i/wordSize]>>(i%wordSize))&1 == 1, nil
}

// IsSet is Get without the error; positions outside the set are never set.
func (b *Bitset) IsSet(i int) bool {
	set, err := b.Get(i)
	return err == nil && set
}

// Set sets bit i
func (b *Bitset) Set(i int) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.buf[i/wordSize] |= 1 << (i % wordSize)
	return nil
}

// Clear clears bit i
func (b *Bitset) Clear(i int) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.buf[i/wordSize] &^= 1 << (i % wordSize)
	return nil
}

// Count returns the number of set bits.
func (b *Bitset) Count() int {
	count := 0
	for i := 0; i < b.n; i++ {
		if b.IsSet(i) {
			count++
		}
	}
	return count
}

func (b *Bitset) check(i int) error {
	if i < 0 || i >= b.n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, b.n)
	}
	return nil
}
