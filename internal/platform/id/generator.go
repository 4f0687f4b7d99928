package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync/atomic"
)

// Generator creates opaque IDs for players, sessions and match records.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	size int
}

// NewRandomGenerator returns a generator of 32 hex chars.
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: 16}
}

func (g *RandomGenerator) NewID() (string, error) {
	size := g.size
	if size <= 0 {
		size = 16
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// SequenceGenerator yields prefix-1, prefix-2, ... and is safe for concurrent use.
type SequenceGenerator struct {
	prefix string
	next   atomic.Int64
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() (string, error) {
	return g.prefix + "-" + strconv.FormatInt(g.next.Add(1), 10), nil
}
