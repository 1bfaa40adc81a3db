package cloudtree

import (
	"fmt"

	"golang.org/x/xerrors"
)

// NoSuchCommandError is returned when the first token of a line matches no
// registered root child (§7).
type NoSuchCommandError struct {
	SuppliedCommand string
}

func (e *NoSuchCommandError) Error() string {
	return fmt.Sprintf("no such command: %q", e.SuppliedCommand)
}

// InvalidSyntaxError is returned when the tree walk cannot continue while
// input remains, carrying the canonical syntax of the deepest reached node.
type InvalidSyntaxError struct {
	CorrectSyntax string
}

func (e *InvalidSyntaxError) Error() string {
	return fmt.Sprintf("invalid syntax, expected: %s", e.CorrectSyntax)
}

// ArgumentParseError wraps a component parser's failure together with the
// component's name.
type ArgumentParseError struct {
	ComponentName string
	Cause         error
}

func (e *ArgumentParseError) Error() string {
	return fmt.Sprintf("invalid argument for %s: %s", e.ComponentName, e.Cause)
}

func (e *ArgumentParseError) Unwrap() error { return e.Cause }

// NewArgumentParseError wraps cause for component name using xerrors so
// the resulting error keeps a %w-unwrappable chain to cause.
func NewArgumentParseError(name string, cause error) *ArgumentParseError {
	return &ArgumentParseError{
		ComponentName: name,
		Cause:         xerrors.Errorf("component %s: %w", name, cause),
	}
}

// NoPermissionError is returned when a selected command's permission
// evaluates to denied; it carries the source permission that denied.
type NoPermissionError struct {
	Result PermissionResult
}

func (e *NoPermissionError) Error() string { return "no permission" }

// InvalidCommandSenderError is returned when the sender's type is not in
// the command's required set.
type InvalidCommandSenderError struct {
	RequiredTypes []string
	ActualType    string
}

func (e *InvalidCommandSenderError) Error() string {
	return fmt.Sprintf("invalid sender type %q, requires one of %v", e.ActualType, e.RequiredTypes)
}

// CommandExecutionError wraps any error returned (or panic recovered) from
// a handler invocation, preserving the cause.
type CommandExecutionError struct {
	Cause error
}

func (e *CommandExecutionError) Error() string {
	return fmt.Sprintf("command execution failed: %s", e.Cause)
}

func (e *CommandExecutionError) Unwrap() error { return e.Cause }

// NewCommandExecutionError wraps cause, keeping a %w chain via xerrors.
func NewCommandExecutionError(cause error) *CommandExecutionError {
	return &CommandExecutionError{Cause: xerrors.Errorf("handler: %w", cause)}
}

// NumberParseError is a specific ArgumentParse cause for range/format
// failures on numeric standard parsers (§4.7).
type NumberParseError struct {
	Input    string
	Min, Max string
	HasRange bool
	Cause    error
}

func (e *NumberParseError) Error() string {
	if e.HasRange {
		return fmt.Sprintf("%q is not a number in range [%s, %s]", e.Input, e.Min, e.Max)
	}
	return fmt.Sprintf("%q is not a valid number: %s", e.Input, e.Cause)
}

func (e *NumberParseError) Unwrap() error { return e.Cause }

// RegexMismatchError is a specific ArgumentParse cause for parsers matched
// against a required pattern.
type RegexMismatchError struct {
	Input   string
	Pattern string
}

func (e *RegexMismatchError) Error() string {
	return fmt.Sprintf("%q does not match pattern %q", e.Input, e.Pattern)
}
