package main

import (
	"fmt"

	obsidian2html "github.com/alnah/go-obsidian2html"
)

// poolAdapter adapts *obsidian2html.ConverterPool to the Pool interface.
// The adapter owns the type round-trip: Acquire widens *Converter to the
// Converter interface, Release narrows it back.
type poolAdapter struct {
	pool *obsidian2html.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// Acquire gets a converter from the pool, creating one if needed.
func (a *poolAdapter) Acquire() (Converter, error) {
	return a.pool.Acquire()
}

// Release returns a converter to the pool. Panics if the value did not
// come from Acquire; that is a programmer error, not a runtime condition.
func (a *poolAdapter) Release(c Converter) {
	conv, ok := c.(*obsidian2html.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

// Size returns the pool capacity.
func (a *poolAdapter) Size() int {
	return a.pool.Size()
}
