package cloudtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e *customError) Error() string { return e.msg }

func TestExceptionControllerMostSpecificHandlerWins(t *testing.T) {
	ctl := &ExceptionController[string]{}
	var handled string

	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[string], exc error) error {
		handled = "generic"
		return nil
	})
	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[string], exc *NoSuchCommandError) error {
		handled = "specific"
		return nil
	})

	err := ctl.Dispatch(&ExceptionContext[string]{Exception: &NoSuchCommandError{SuppliedCommand: "x"}})
	assert.NoError(t, err)
	assert.Equal(t, "specific", handled)
}

func TestExceptionControllerPassThroughContinuesToOlderHandler(t *testing.T) {
	ctl := &ExceptionController[string]{}
	var order []string

	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[string], exc *NoSuchCommandError) error {
		order = append(order, "H0")
		return nil
	})
	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[string], exc *NoSuchCommandError) error {
		order = append(order, "H1")
		return ec.Exception // pass-through
	})

	err := ctl.Dispatch(&ExceptionContext[string]{Exception: &NoSuchCommandError{SuppliedCommand: "x"}})
	assert.NoError(t, err)
	assert.Equal(t, []string{"H1", "H0"}, order)
}

func TestExceptionControllerRestartsDispatchOnDifferentError(t *testing.T) {
	ctl := &ExceptionController[string]{}
	var order []string

	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[string], exc *customError) error {
		order = append(order, "customHandler")
		return nil
	})
	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[string], exc *NoSuchCommandError) error {
		order = append(order, "noSuchHandler")
		return &customError{msg: "rewritten"}
	})

	err := ctl.Dispatch(&ExceptionContext[string]{Exception: &NoSuchCommandError{SuppliedCommand: "x"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"noSuchHandler", "customHandler"}, order)
}

func TestExceptionControllerNoMatchPropagatesOriginal(t *testing.T) {
	ctl := &ExceptionController[string]{}
	original := errors.New("boom")
	err := ctl.Dispatch(&ExceptionContext[string]{Exception: original})
	assert.Same(t, original, err)
}

func TestUnwrappingHandlerRedispatchesCause(t *testing.T) {
	ctl := &ExceptionController[string]{}
	var handledCause error

	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[string], exc *customError) error {
		handledCause = exc
		return nil
	})
	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[string], exc *CommandExecutionError) error {
		return UnwrappingHandler[string, *CommandExecutionError](func(cause error) bool {
			var target *customError
			return errors.As(cause, &target)
		})(ec, exc)
	})

	cause := &customError{msg: "inner"}
	wrapped := NewCommandExecutionError(cause)
	err := ctl.Dispatch(&ExceptionContext[string]{Exception: wrapped})
	assert.NoError(t, err)
	assert.Equal(t, "inner", handledCause.Error())
}
