package models

import (
	"errors"
	"fmt"
)

// ListID names one of the board's task lists.
type ListID string

const (
	ListAvailable ListID = "available"
	ListCompleted ListID = "completed"
)

// Valid reports whether l is a known list.
func (l ListID) Valid() bool {
	return l == ListAvailable || l == ListCompleted
}

// ZoneID names a drop zone. Each zone stands for a category transition.
type ZoneID string

const (
	// ZoneCompleted is the "Drop here to complete" zone.
	ZoneCompleted ZoneID = "completed-zone"
	// ZoneAvailable is the "Drop here to make available" zone.
	ZoneAvailable ZoneID = "available-zone"
)

// Valid reports whether z is a known zone.
func (z ZoneID) Valid() bool {
	return z == ZoneCompleted || z == ZoneAvailable
}

// Variant selects the board layout.
type Variant string

const (
	VariantSingle  Variant = "single"
	VariantTwoZone Variant = "two-zone"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == VariantSingle || v == VariantTwoZone
}

// Lists returns the lists that exist in the variant, in display order.
func (v Variant) Lists() []ListID {
	if v == VariantSingle {
		return []ListID{ListAvailable}
	}
	return []ListID{ListAvailable, ListCompleted}
}

// Task is a unit of work. Both fields are fixed at creation.
type Task struct {
	ID   string `yaml:"id" json:"id"`
	Text string `yaml:"text" json:"text"`
}

// TransferToken is the drag payload carried alongside a drag operation.
type TransferToken struct {
	TaskID string `yaml:"task" json:"task"`
	Source ListID `yaml:"source" json:"source"`
}

// ErrEmptyTransferToken is returned by Validate for a zero token.
var ErrEmptyTransferToken = errors.New("transfer token is empty")

// IsZero reports whether the token carries nothing.
func (t TransferToken) IsZero() bool {
	return t.TaskID == "" && t.Source == ""
}

// Validate checks that the token names a task and a known source list.
func (t TransferToken) Validate() error {
	if t.IsZero() {
		return ErrEmptyTransferToken
	}
	if t.TaskID == "" {
		return fmt.Errorf("transfer token has no task id")
	}
	if !t.Source.Valid() {
		return fmt.Errorf("transfer token source %q is not a known list", t.Source)
	}
	return nil
}

// BoardSnapshot is a read-only copy of the board's lists.
type BoardSnapshot struct {
	Variant   Variant `yaml:"variant" json:"variant"`
	Available []Task  `yaml:"available" json:"available"`
	Completed []Task  `yaml:"completed,omitempty" json:"completed,omitempty"`
	Input     string  `yaml:"input" json:"input"`
}
