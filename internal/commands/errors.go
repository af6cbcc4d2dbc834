package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidation     = "SITE_COMMAND_VALIDATION_FAILED"
	codeCanceled       = "SITE_COMMAND_CANCELED"
	codeTimeout        = "SITE_COMMAND_TIMEOUT"
	codeContextError   = "SITE_COMMAND_CONTEXT_ERROR"
	codeExecuteFailure = "SITE_COMMAND_FAILED"
)

// wrapValidationError turns the ozzo field map behind err into go-errors
// field errors. go-command already wraps Validate failures, so the ozzo
// errors are found through the wrap chain.
func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := goerrors.GetValidationErrors(err); ok {
		return err
	}
	return goerrors.FromOzzoValidation(err, "command validation failed").
		WithTextCode(codeValidation)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(codeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(codeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(codeContextError)
	}
}

// wrapExecuteError tags plain errors with the command category. Errors that
// already carry a go-errors category (validation from a service, for
// example) keep it.
func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(codeExecuteFailure)
}
