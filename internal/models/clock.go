package models

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time so retention math can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// IDGenerator produces identifiers for refresh cycles.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func NewUUIDGenerator() IDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
