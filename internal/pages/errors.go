package pages

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/domain"
)

var (
	ErrSingletonConflict = errors.New("pages: block type already present on page")
	ErrInvalidPageType   = errors.New("pages: invalid page type")
	ErrRegistryRequired  = errors.New("pages: block registry required")
	ErrBlockIDTaken      = errors.New("pages: generated block id already in use")
)

// SingletonConflictError reports an attempt to add a second instance of a
// single-instance block type.
type SingletonConflictError struct {
	PageType  domain.PageType
	BlockType blocks.Type
}

func (e *SingletonConflictError) Error() string {
	return fmt.Sprintf("%s block already exists", blocks.DisplayName(e.BlockType))
}

func (e *SingletonConflictError) Unwrap() error {
	return ErrSingletonConflict
}
