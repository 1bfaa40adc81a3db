package cloudtree

// ParseResult is the sum type returned by parsers: success carrying a T, or
// failure carrying an error. Parsers never throw (§3).
type ParseResult[T any] struct {
	value T
	err   error
	ok    bool
}

// ParseSuccess builds a successful ParseResult.
func ParseSuccess[T any](v T) ParseResult[T] {
	return ParseResult[T]{value: v, ok: true}
}

// ParseFailure builds a failed ParseResult.
func ParseFailure[T any](err error) ParseResult[T] {
	return ParseResult[T]{err: err}
}

// IsSuccess reports whether parsing succeeded.
func (r ParseResult[T]) IsSuccess() bool { return r.ok }

// Value returns the parsed value and whether parsing succeeded.
func (r ParseResult[T]) Value() (T, bool) { return r.value, r.ok }

// Err returns the failure cause, or nil on success.
func (r ParseResult[T]) Err() error { return r.err }

// Parser produces a typed value from the head of the input, or a failure.
// C is the sender/context type, T is the component's value type.
type Parser[C any, T any] interface {
	// Parse consumes zero or more tokens from input and returns a result.
	// Parsers must be pure: no shared mutable state, no blocking I/O (§5).
	Parse(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[T]

	// Suggestions returns candidate completions for the partial token
	// currently at the head of input. Implementations must be safe to call
	// while cmdCtx.IsSuggestions is true (no observable side effects, §4.4).
	Suggestions(cmdCtx *CommandContext[C], input *CommandInput) []Suggestion
}

// ParserFunc adapts a plain parse function, plus an optional suggestion
// function (nil means no suggestions), into a Parser.
type ParserFunc[C any, T any] struct {
	ParseFn   func(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[T]
	SuggestFn func(cmdCtx *CommandContext[C], input *CommandInput) []Suggestion
}

func (p ParserFunc[C, T]) Parse(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[T] {
	return p.ParseFn(cmdCtx, input)
}

func (p ParserFunc[C, T]) Suggestions(cmdCtx *CommandContext[C], input *CommandInput) []Suggestion {
	if p.SuggestFn == nil {
		return nil
	}
	return p.SuggestFn(cmdCtx, input)
}

// erasedParser is the type-erased boundary a CommandComponent stores in
// the tree, so nodes of differing value types T can live in the same
// child slice (design notes §9: interface with closed-world registration
// for the open-ended parser set, sum-type erasure at the tree level).
type erasedParser[C any] interface {
	// parseValue runs the underlying typed parser and returns its result
	// with the value type erased to `any`.
	parseValue(cmdCtx *CommandContext[C], input *CommandInput) (any, error)
	// parseInto runs parseValue and, on success, stores the value into
	// cmdCtx under name.
	parseInto(name string, cmdCtx *CommandContext[C], input *CommandInput) error
	suggest(cmdCtx *CommandContext[C], input *CommandInput) []Suggestion
	flagYielding() bool
}

// flagYieldingParser is an optional marker interface a Parser[C,T]
// implementation may satisfy to declare itself a flag-yielding string
// array parser: one whose flag value consumes tokens until the next flag
// sigil or end-of-input, rather than exactly one token (§4.2.1).
type flagYieldingParser interface {
	IsFlagYielding() bool
}

func isFlagYieldingParser[C any](p erasedParser[C]) bool {
	return p.flagYielding()
}

type erasedParserAdapter[C any, T any] struct {
	parser Parser[C, T]
}

func eraseParser[C any, T any](p Parser[C, T]) erasedParser[C] {
	return erasedParserAdapter[C, T]{parser: p}
}

func (a erasedParserAdapter[C, T]) parseValue(cmdCtx *CommandContext[C], input *CommandInput) (any, error) {
	result := a.parser.Parse(cmdCtx, input)
	if !result.ok {
		return nil, result.err
	}
	return result.value, nil
}

func (a erasedParserAdapter[C, T]) parseInto(name string, cmdCtx *CommandContext[C], input *CommandInput) error {
	value, err := a.parseValue(cmdCtx, input)
	if err != nil {
		return err
	}
	cmdCtx.store(name, value)
	return nil
}

func (a erasedParserAdapter[C, T]) suggest(cmdCtx *CommandContext[C], input *CommandInput) []Suggestion {
	return a.parser.Suggestions(cmdCtx, input)
}

func (a erasedParserAdapter[C, T]) flagYielding() bool {
	fy, ok := any(a.parser).(flagYieldingParser)
	return ok && fy.IsFlagYielding()
}
