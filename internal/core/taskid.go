package core

import (
	"fmt"

	"github.com/google/uuid"
)

// TaskIDGenerator defines the interface for generating unique task IDs.
type TaskIDGenerator interface {
	GenerateTaskID() string
}

// uuidTaskIDGenerator issues random (version 4) UUIDs.
type uuidTaskIDGenerator struct{}

// NewTaskIDGenerator creates a TaskIDGenerator backed by random UUIDs. IDs are
// unique for the lifetime of the process and carry no ordering.
func NewTaskIDGenerator() TaskIDGenerator {
	return uuidTaskIDGenerator{}
}

func (uuidTaskIDGenerator) GenerateTaskID() string {
	return uuid.NewString()
}

// sequentialTaskIDGenerator issues predictable IDs of the form
// {prefix}-{n}. Used by replay scripts and tests, where stable output matters.
type sequentialTaskIDGenerator struct {
	prefix string
	next   int
}

// NewSequentialTaskIDGenerator creates a TaskIDGenerator that counts up from 1.
func NewSequentialTaskIDGenerator(prefix string) TaskIDGenerator {
	return &sequentialTaskIDGenerator{prefix: prefix}
}

func (g *sequentialTaskIDGenerator) GenerateTaskID() string {
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}
