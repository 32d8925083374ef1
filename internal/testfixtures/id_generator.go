package testfixtures

import (
	"fmt"
	"sync"
)

// IDGenerator yields deterministic, zero-padded identifiers such as
// "snap-001", "snap-002". The padding keeps generated identifiers in
// lexical order, which matters for snapshot listings ordered by id.
type IDGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter uint64
}

// NewIDGenerator constructs a generator for the given prefix. When prefix is
// empty, "id" is used.
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s-%03d", g.prefix, g.counter)
}

// NextFunc exposes Next as a function suitable for injection wherever a
// service takes an idGenerator func() string.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}

// Reset rewinds the sequence so a test can replay a known id series.
func (g *IDGenerator) Reset() {
	g.mu.Lock()
	g.counter = 0
	g.mu.Unlock()
}
