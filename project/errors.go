package project

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNameConflict        = errors.New("name already in use")
	ErrReferencedElsewhere = errors.New("entity is referenced elsewhere")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrInvalidDimension    = errors.New("invalid dimension")
	ErrNotFound            = errors.New("entity not found")
	ErrInvalidName         = errors.New("invalid name")
	ErrBusy                = errors.New("gesture in progress")
	ErrWrongKind           = errors.New("wrong entity kind")
	ErrConflict            = errors.New("stored content differs from the edit")
)

// ReferenceError lists the entities that block a removal.
type ReferenceError struct {
	Entity    ID
	Name      string
	Referrers []string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("project: %q is referenced by %s", e.Name, strings.Join(e.Referrers, ", "))
}

func (e *ReferenceError) Unwrap() error {
	return ErrReferencedElsewhere
}
