package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors.
const (
	CodeValidationFailed = "STOREFRONT_COMMAND_INVALID"
	CodeCanceled         = "STOREFRONT_COMMAND_CANCELED"
	CodeTimeout          = "STOREFRONT_COMMAND_TIMEOUT"
	CodeContextFailed    = "STOREFRONT_COMMAND_CONTEXT"
	CodeExecuteFailed    = "STOREFRONT_COMMAND_FAILED"
)

var contextCauses = []struct {
	target  error
	message string
	code    string
}{
	{context.Canceled, "command cancelled", CodeCanceled},
	{context.DeadlineExceeded, "command deadline exceeded", CodeTimeout},
}

// Errors already carrying a go-errors category pass through untouched so
// handlers can classify domain failures themselves.
func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command message rejected").
		WithTextCode(CodeValidationFailed)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	for _, cause := range contextCauses {
		if errors.Is(err, cause.target) {
			return goerrors.Wrap(err, goerrors.CategoryCommand, cause.message).WithTextCode(cause.code)
		}
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command context failed").
		WithTextCode(CodeContextFailed)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
		WithTextCode(CodeExecuteFailed)
}
