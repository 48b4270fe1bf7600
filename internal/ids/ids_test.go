package ids

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNext_UsesClock(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	g := NewWithClock(func() time.Time { return at })

	assert.Equal(t, int64(1700000000123), g.Next(0))
}

func TestNext_StrictlyIncreasingOnFrozenClock(t *testing.T) {
	at := time.UnixMilli(1000)
	g := NewWithClock(func() time.Time { return at })

	prev := g.Next(0)
	for i := 0; i < 100; i++ {
		id := g.Next(0)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestNext_RespectsFloor(t *testing.T) {
	at := time.UnixMilli(1000)
	g := NewWithClock(func() time.Time { return at })

	assert.Equal(t, int64(5001), g.Next(5000))
	// The floor raises later ids too
	assert.Equal(t, int64(5002), g.Next(0))
}
