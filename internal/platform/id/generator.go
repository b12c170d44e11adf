package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Generator creates opaque IDs for aggregation runs.
type Generator interface {
	NewID() (string, error)
}

// TimeOrderedGenerator prefixes random bytes with a UTC timestamp so ids
// sort by creation time.
type TimeOrderedGenerator struct {
	now func() time.Time
}

func NewTimeOrderedGenerator() *TimeOrderedGenerator {
	return &TimeOrderedGenerator{now: time.Now}
}

func (g *TimeOrderedGenerator) NewID() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return g.now().UTC().Format("20060102T150405Z") + "-" + hex.EncodeToString(buf), nil
}
