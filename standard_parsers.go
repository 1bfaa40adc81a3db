package cloudtree

import (
	"strconv"
	"strings"
)

// Range bounds a numeric standard parser inclusively (§4.7). A zero Range
// (both fields unset) leaves a parser unbounded; use NewRange to opt in.
type Range[T any] struct {
	Min, Max T
	set      bool
}

// NewRange builds an inclusive [min, max] bound.
func NewRange[T any](min, max T) Range[T] {
	return Range[T]{Min: min, Max: max, set: true}
}

// IntegerParser parses a base-10 int, optionally range-checked.
func IntegerParser[C any](r ...Range[int]) Parser[C, int] {
	var bound *Range[int]
	if len(r) > 0 {
		bound = &r[0]
	}
	return ParserFunc[C, int]{
		ParseFn: func(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[int] {
			tok := input.ReadString()
			n, err := strconv.Atoi(tok)
			if err != nil {
				return ParseFailure[int](&NumberParseError{Input: tok, Cause: err})
			}
			if bound != nil && bound.set && (n < bound.Min || n > bound.Max) {
				return ParseFailure[int](&NumberParseError{
					Input: tok, Min: strconv.Itoa(bound.Min), Max: strconv.Itoa(bound.Max), HasRange: true,
				})
			}
			return ParseSuccess(n)
		},
	}
}

// LongParser parses a base-10 int64, optionally range-checked.
func LongParser[C any](r ...Range[int64]) Parser[C, int64] {
	var bound *Range[int64]
	if len(r) > 0 {
		bound = &r[0]
	}
	return ParserFunc[C, int64]{
		ParseFn: func(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[int64] {
			tok := input.ReadString()
			n, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return ParseFailure[int64](&NumberParseError{Input: tok, Cause: err})
			}
			if bound != nil && bound.set && (n < bound.Min || n > bound.Max) {
				return ParseFailure[int64](&NumberParseError{
					Input: tok, Min: strconv.FormatInt(bound.Min, 10), Max: strconv.FormatInt(bound.Max, 10), HasRange: true,
				})
			}
			return ParseSuccess(n)
		},
	}
}

// ShortParser parses a base-10 int16, optionally range-checked.
func ShortParser[C any](r ...Range[int16]) Parser[C, int16] {
	var bound *Range[int16]
	if len(r) > 0 {
		bound = &r[0]
	}
	return ParserFunc[C, int16]{
		ParseFn: func(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[int16] {
			tok := input.ReadString()
			n, err := strconv.ParseInt(tok, 10, 16)
			if err != nil {
				return ParseFailure[int16](&NumberParseError{Input: tok, Cause: err})
			}
			v := int16(n)
			if bound != nil && bound.set && (v < bound.Min || v > bound.Max) {
				return ParseFailure[int16](&NumberParseError{
					Input: tok, Min: strconv.Itoa(int(bound.Min)), Max: strconv.Itoa(int(bound.Max)), HasRange: true,
				})
			}
			return ParseSuccess(v)
		},
	}
}

// ByteParser parses a base-10 int8, optionally range-checked.
func ByteParser[C any](r ...Range[int8]) Parser[C, int8] {
	var bound *Range[int8]
	if len(r) > 0 {
		bound = &r[0]
	}
	return ParserFunc[C, int8]{
		ParseFn: func(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[int8] {
			tok := input.ReadString()
			n, err := strconv.ParseInt(tok, 10, 8)
			if err != nil {
				return ParseFailure[int8](&NumberParseError{Input: tok, Cause: err})
			}
			v := int8(n)
			if bound != nil && bound.set && (v < bound.Min || v > bound.Max) {
				return ParseFailure[int8](&NumberParseError{
					Input: tok, Min: strconv.Itoa(int(bound.Min)), Max: strconv.Itoa(int(bound.Max)), HasRange: true,
				})
			}
			return ParseSuccess(v)
		},
	}
}

// FloatParser parses a float32, optionally range-checked.
func FloatParser[C any](r ...Range[float32]) Parser[C, float32] {
	var bound *Range[float32]
	if len(r) > 0 {
		bound = &r[0]
	}
	return ParserFunc[C, float32]{
		ParseFn: func(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[float32] {
			tok := input.ReadString()
			n, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return ParseFailure[float32](&NumberParseError{Input: tok, Cause: err})
			}
			v := float32(n)
			if bound != nil && bound.set && (v < bound.Min || v > bound.Max) {
				return ParseFailure[float32](&NumberParseError{
					Input: tok,
					Min:   strconv.FormatFloat(float64(bound.Min), 'g', -1, 32),
					Max:   strconv.FormatFloat(float64(bound.Max), 'g', -1, 32),
					HasRange: true,
				})
			}
			return ParseSuccess(v)
		},
	}
}

// DoubleParser parses a float64, optionally range-checked.
func DoubleParser[C any](r ...Range[float64]) Parser[C, float64] {
	var bound *Range[float64]
	if len(r) > 0 {
		bound = &r[0]
	}
	return ParserFunc[C, float64]{
		ParseFn: func(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[float64] {
			tok := input.ReadString()
			n, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return ParseFailure[float64](&NumberParseError{Input: tok, Cause: err})
			}
			if bound != nil && bound.set && (n < bound.Min || n > bound.Max) {
				return ParseFailure[float64](&NumberParseError{
					Input: tok,
					Min:   strconv.FormatFloat(bound.Min, 'g', -1, 64),
					Max:   strconv.FormatFloat(bound.Max, 'g', -1, 64),
					HasRange: true,
				})
			}
			return ParseSuccess(n)
		},
	}
}

// BooleanParser parses "true"/"false", and optionally "yes"/"no" as aliases.
func BooleanParser[C any](allowYesNo bool) Parser[C, bool] {
	return ParserFunc[C, bool]{
		ParseFn: func(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[bool] {
			tok := strings.ToLower(input.ReadString())
			switch tok {
			case "true":
				return ParseSuccess(true)
			case "false":
				return ParseSuccess(false)
			}
			if allowYesNo {
				switch tok {
				case "yes":
					return ParseSuccess(true)
				case "no":
					return ParseSuccess(false)
				}
			}
			return ParseFailure[bool](NewArgumentParseError("boolean", &RegexMismatchError{Input: tok, Pattern: "true|false"}))
		},
		SuggestFn: func(cmdCtx *CommandContext[C], input *CommandInput) []Suggestion {
			opts := []string{"true", "false"}
			if allowYesNo {
				opts = append(opts, "yes", "no")
			}
			out := make([]Suggestion, len(opts))
			for i, o := range opts {
				out[i] = NewSuggestion(o)
			}
			return out
		},
	}
}

// StringMode selects one of the standard string parsing strategies (§4.7).
type StringMode int

const (
	// StringSingle consumes exactly one whitespace-delimited token.
	StringSingle StringMode = iota
	// StringQuoted consumes one token, honoring shell-style quoting.
	StringQuoted
	// StringGreedy consumes the remainder of the input verbatim.
	StringGreedy
	// StringFlagYielding behaves like StringGreedy, but only when used as
	// a flag's value: the flag-token reader consumes tokens until the
	// next flag sigil instead of to end-of-input (§4.2.1).
	StringFlagYielding
)

type stringParser[C any] struct {
	mode StringMode
}

// StringParser builds the standard string parser for the given mode.
func StringParser[C any](mode StringMode) Parser[C, string] {
	return stringParser[C]{mode: mode}
}

func (p stringParser[C]) Parse(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[string] {
	if input.IsEmpty(true) {
		return ParseFailure[string](&RegexMismatchError{Input: "", Pattern: "non-empty string"})
	}
	switch p.mode {
	case StringQuoted:
		s, err := input.ReadQuotedString()
		if err != nil {
			return ParseFailure[string](err)
		}
		return ParseSuccess(s)
	case StringGreedy, StringFlagYielding:
		return ParseSuccess(input.ReadRemaining())
	default:
		return ParseSuccess(input.ReadString())
	}
}

func (p stringParser[C]) Suggestions(cmdCtx *CommandContext[C], input *CommandInput) []Suggestion {
	return nil
}

// IsFlagYielding satisfies flagYieldingParser for the flag-reading logic in
// flags.go (§4.2.1).
func (p stringParser[C]) IsFlagYielding() bool {
	return p.mode == StringFlagYielding
}

// StringArrayParser consumes every remaining token, split on whitespace, as
// a []string. As a flag value it is always flag-yielding: it stops at the
// next flag sigil rather than end-of-input.
type stringArrayParser[C any] struct{}

func StringArrayParser[C any]() Parser[C, []string] {
	return stringArrayParser[C]{}
}

func (p stringArrayParser[C]) Parse(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[[]string] {
	rest := input.ReadRemaining()
	if strings.TrimSpace(rest) == "" {
		return ParseSuccess([]string{})
	}
	return ParseSuccess(strings.Fields(rest))
}

func (p stringArrayParser[C]) Suggestions(cmdCtx *CommandContext[C], input *CommandInput) []Suggestion {
	return nil
}

func (p stringArrayParser[C]) IsFlagYielding() bool { return true }

// EnumParser matches one of values case-insensitively, returning the
// canonically-cased member on success.
func EnumParser[C any](values ...string) Parser[C, string] {
	return ParserFunc[C, string]{
		ParseFn: func(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[string] {
			tok := input.ReadString()
			for _, v := range values {
				if strings.EqualFold(v, tok) {
					return ParseSuccess(v)
				}
			}
			return ParseFailure[string](NewArgumentParseError("enum", &RegexMismatchError{Input: tok, Pattern: strings.Join(values, "|")}))
		},
		SuggestFn: func(cmdCtx *CommandContext[C], input *CommandInput) []Suggestion {
			out := make([]Suggestion, len(values))
			for i, v := range values {
				out[i] = NewSuggestion(v)
			}
			return out
		},
	}
}

// LiteralValueParser consumes exactly one token and succeeds only if it
// equals one of accepted (case-sensitive); used for pseudo-literal
// arguments that still need to land in the context's value map, unlike a
// true ComponentLiteral (which never stores a value).
func LiteralValueParser[C any](accepted ...string) Parser[C, string] {
	return ParserFunc[C, string]{
		ParseFn: func(cmdCtx *CommandContext[C], input *CommandInput) ParseResult[string] {
			tok := input.ReadString()
			for _, a := range accepted {
				if a == tok {
					return ParseSuccess(tok)
				}
			}
			return ParseFailure[string](NewArgumentParseError("literal", &RegexMismatchError{Input: tok, Pattern: strings.Join(accepted, "|")}))
		},
	}
}
