package cloudtree

import (
	"errors"

	"github.com/charmbracelet/log"
)

// ExceptionContext bundles the execution context and the exception being
// dispatched (§4.5).
type ExceptionContext[C any] struct {
	Context   *CommandContext[C]
	Exception error
}

// ExceptionHandler processes a dispatched exception. Returning nil means
// the exception was handled. Returning the same error value passed in is a
// "pass-through": dispatch continues to the next matching handler (older,
// since dispatch runs newest-registered first). Returning a different
// error restarts dispatch for that new error.
type ExceptionHandler[C any] func(ec *ExceptionContext[C]) error

type exceptionEntry[C any] struct {
	matches func(err error) bool
	handle  ExceptionHandler[C]
}

// ExceptionController routes typed failures to the most-specific
// registered handler, per spec §4.5.
type ExceptionController[C any] struct {
	entries []exceptionEntry[C]
}

// NewExceptionController creates a controller with the framework's default
// handlers already registered (§4.5): Throwable, CommandExecutionException,
// ArgumentParseException, NoSuchCommandException, NoPermissionException,
// InvalidCommandSenderException, InvalidSyntaxException. Defaults are
// registered first, so user handlers registered afterwards take priority
// (dispatch walks newest-first).
func NewExceptionController[C any](captions *CaptionRegistry, logger *log.Logger) *ExceptionController[C] {
	ctl := &ExceptionController[C]{}
	registerDefaultHandlers(ctl, captions, logger)
	return ctl
}

// RegisterExceptionHandler registers handler for exceptions assignable (via
// errors.As) to E. E is typically a pointer to a concrete error struct, e.g.
// RegisterExceptionHandler[MyContext](ctl, func(ec, err *NoSuchCommandError) error { ... }).
func RegisterExceptionHandler[C any, E error](ctl *ExceptionController[C], handler func(ec *ExceptionContext[C], exc E) error) {
	ctl.entries = append(ctl.entries, exceptionEntry[C]{
		matches: func(err error) bool {
			var target E
			return errors.As(err, &target)
		},
		handle: func(ec *ExceptionContext[C]) error {
			var target E
			errors.As(ec.Exception, &target)
			return handler(ec, target)
		},
	})
}

// Dispatch routes ec.Exception through the registered handlers, per the
// algorithm in spec §4.5. If no handler matches (or every match
// pass-throughs to the end), the final exception is returned unchanged.
func (ctl *ExceptionController[C]) Dispatch(ec *ExceptionContext[C]) error {
	current := ec.Exception
	idx := len(ctl.entries) - 1

dispatchLoop:
	for {
		matched := false
		for ; idx >= 0; idx-- {
			entry := ctl.entries[idx]
			if !entry.matches(current) {
				continue
			}
			matched = true

			localCtx := &ExceptionContext[C]{Context: ec.Context, Exception: current}
			result := entry.handle(localCtx)
			if result == nil {
				return nil
			}
			if errorIdentical(result, current) {
				idx--
				continue dispatchLoop
			}
			current = result
			idx = len(ctl.entries) - 1
			continue dispatchLoop
		}
		if !matched {
			return current
		}
	}
}

func errorIdentical(a, b error) bool {
	return a == b
}

// Convenience handler constructors (§4.5).

// NoopHandler discards the exception (treats it as handled).
func NoopHandler[C any, E error]() func(ec *ExceptionContext[C], exc E) error {
	return func(*ExceptionContext[C], E) error { return nil }
}

// PassThroughHandler re-throws the exception unchanged, letting an earlier
// (more general) handler try next.
func PassThroughHandler[C any, E error]() func(ec *ExceptionContext[C], exc E) error {
	return func(ec *ExceptionContext[C], _ E) error { return ec.Exception }
}

// PassThroughWithHandler invokes consumer for side effects (e.g. logging)
// then passes the exception through unchanged.
func PassThroughWithHandler[C any, E error](consumer func(ec *ExceptionContext[C], exc E)) func(ec *ExceptionContext[C], exc E) error {
	return func(ec *ExceptionContext[C], exc E) error {
		consumer(ec, exc)
		return ec.Exception
	}
}

// UnwrappingHandler re-dispatches with exc's cause (via errors.Unwrap) if
// causeMatches accepts it, else passes exc through unchanged.
func UnwrappingHandler[C any, E error](causeMatches func(cause error) bool) func(ec *ExceptionContext[C], exc E) error {
	return func(ec *ExceptionContext[C], exc E) error {
		cause := errors.Unwrap(error(exc))
		if cause != nil && causeMatches(cause) {
			return cause
		}
		return ec.Exception
	}
}

func registerDefaultHandlers[C any](ctl *ExceptionController[C], captions *CaptionRegistry, logger *log.Logger) {
	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[C], exc error) error {
		if logger != nil {
			logger.Error("unexpected command error", "error", exc)
		}
		_ = captions.Format(NewCaption(CaptionUnexpectedError))
		return nil
	})

	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[C], exc *CommandExecutionError) error {
		if logger != nil {
			logger.Error("command execution failed", "cause", exc.Cause)
		}
		_ = captions.Format(NewCaption(CaptionUnexpectedError))
		return nil
	})

	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[C], exc *ArgumentParseError) error {
		_ = captions.Format(NewCaption(CaptionArgumentParseFailure,
			"name", exc.ComponentName, "reason", exc.Cause.Error()))
		return nil
	})

	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[C], exc *NoSuchCommandError) error {
		_ = captions.Format(NewCaption(CaptionNoSuchCommand, "command", exc.SuppliedCommand))
		return nil
	})

	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[C], exc *NoPermissionError) error {
		_ = captions.Format(NewCaption(CaptionNoPermission))
		return nil
	})

	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[C], exc *InvalidCommandSenderError) error {
		_ = captions.Format(NewCaption(CaptionInvalidSender, "sender", exc.ActualType))
		return nil
	})

	RegisterExceptionHandler(ctl, func(ec *ExceptionContext[C], exc *InvalidSyntaxError) error {
		_ = captions.Format(NewCaption(CaptionInvalidSyntax, "syntax", exc.CorrectSyntax))
		return nil
	})
}
