// Package ids hands out timestamp-shaped identifiers that never repeat.
package ids

import (
	"sync"
	"time"
)

// Generator returns millisecond timestamps, bumped forward whenever the clock
// has not moved past the last id handed out.
type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// New creates a Generator on the wall clock
func New() *Generator {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Generator on a custom clock
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns an id greater than both the previous id and floor
func (g *Generator) Next(floor int64) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	if id <= floor {
		id = floor + 1
	}
	g.last = id
	return id
}
