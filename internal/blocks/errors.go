package blocks

import (
	"errors"
	"fmt"
)

var (
	ErrBlockRequired     = errors.New("blocks: block required")
	ErrUnknownBlockType  = errors.New("blocks: unknown block type")
	ErrPatchInvalid      = errors.New("blocks: patch invalid")
	ErrImmutableField    = errors.New("blocks: field cannot be patched")
	ErrDefinitionMissing = errors.New("blocks: definition not registered")
)

// UnknownTypeError reports a type token the registry cannot construct.
type UnknownTypeError struct {
	Type Type
}

func (e *UnknownTypeError) Error() string {
	if e == nil || e.Type == "" {
		return ErrUnknownBlockType.Error()
	}
	return fmt.Sprintf("%s: %q", ErrUnknownBlockType.Error(), string(e.Type))
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownBlockType
}
