package testutil

import (
	"fmt"
	"sync"
)

// DefaultRunID is returned by a FixedRunIDGenerator built with no ids.
const DefaultRunID = "test-run-default"

// FixedRunIDGenerator returns predetermined run ids so journal rows and
// harness results are reproducible in tests.
//
// Ids are handed out in order; once exhausted, the last id repeats. An
// empty generator always returns DefaultRunID.
type FixedRunIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedRunIDGenerator creates a generator over ids.
func NewFixedRunIDGenerator(ids ...string) *FixedRunIDGenerator {
	if len(ids) == 0 {
		ids = []string{DefaultRunID}
	}
	return &FixedRunIDGenerator{ids: ids}
}

// NewSequentialRunIDGenerator creates a generator over n ids of the form
// "<prefix>-1" .. "<prefix>-n".
func NewSequentialRunIDGenerator(prefix string, n int) *FixedRunIDGenerator {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%d", prefix, i+1)
	}
	return NewFixedRunIDGenerator(ids...)
}

// Generate returns the next id.
func (g *FixedRunIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.ids[g.idx]
	if g.idx < len(g.ids)-1 {
		g.idx++
	}
	return id
}
