package store

import (
	"errors"
	"fmt"
)

// Kind classifies store failures.
type Kind int

const (
	KindLoad Kind = iota + 1
	KindMutation
	KindValidation
	KindBusy
)

func (k Kind) String() string {
	switch k {
	case KindLoad:
		return "load"
	case KindMutation:
		return "mutation"
	case KindValidation:
		return "validation"
	case KindBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Op names a store operation.
type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
	OpToggle Op = "toggle"
)

var opLabels = map[Op]string{
	OpLoad:   "loading",
	OpCreate: "adding",
	OpUpdate: "updating",
	OpRemove: "removing",
	OpToggle: "toggling",
}

var (
	ErrBusy          = errors.New("another operation is in progress")
	ErrNotFound      = errors.New("item not found")
	ErrNotToggleable = errors.New("items have no toggleable fields")
)

// Error is the user-facing failure of a store operation.
type Error struct {
	Kind   Kind
	Op     Op
	Entity string
	Err    error
}

func (e *Error) Error() string {
	label, ok := opLabels[e.Op]
	if !ok {
		label = string(e.Op)
	}
	return fmt.Sprintf("error %s %s: %v", label, e.Entity, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
