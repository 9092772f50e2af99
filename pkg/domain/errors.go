package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned in strict mode when the option list breaks the level rules.
var ErrInvalidInput = errors.New("invalid input")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrOptionsNotFound is returned when an OptionsSource has no document by that name.
var ErrOptionsNotFound = errors.New("options not found")

// ErrNoTree is returned when an interaction arrives before any render pass.
var ErrNoTree = errors.New("nothing rendered yet")

// ErrNodeNotFound is returned when an interaction addresses a node that does not exist.
var ErrNodeNotFound = errors.New("node not found")

// ErrNotGroup is returned when a collapse toggle targets a leaf.
var ErrNotGroup = errors.New("node is not a group")

// ErrNotLeaf is returned when a selection targets a group.
var ErrNotLeaf = errors.New("node is not a leaf")

// LevelError describes the first item that breaks the level rules.
type LevelError struct {
	Index    int
	Level    int
	Previous int
	Reason   string
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("item %d (level %d, previous %d): %s", e.Index, e.Level, e.Previous, e.Reason)
}

func (e *LevelError) Unwrap() error {
	return ErrInvalidInput
}
