package cloudtree

// DefaultValueKind distinguishes the three default-value evaluation
// strategies described in spec §4.2.2.
type DefaultValueKind int

const (
	DefaultConstant DefaultValueKind = iota
	DefaultDynamic
	DefaultParsed
)

// DefaultValue is evaluated when an OPTIONAL component is skipped during a
// tree walk (§4.2.2).
type DefaultValue[C any, T any] struct {
	kind    DefaultValueKind
	value   T
	dynamic func(cmdCtx *CommandContext[C]) T
	literal string
}

// ConstantDefault returns v without running the parser.
func ConstantDefault[C any, T any](v T) DefaultValue[C, T] {
	return DefaultValue[C, T]{kind: DefaultConstant, value: v}
}

// DynamicDefault runs fn(context) each evaluation, bypassing the parser.
// Side effects are allowed only when cmdCtx.IsSuggestions is false; the
// engine never evaluates dynamic defaults during suggestion parsing
// (design notes §9, open question b).
func DynamicDefault[C any, T any](fn func(cmdCtx *CommandContext[C]) T) DefaultValue[C, T] {
	return DefaultValue[C, T]{kind: DefaultDynamic, dynamic: fn}
}

// ParsedDefault feeds literal into the component's own parser as if the
// user had typed it. literal must parse successfully; failure is treated
// as a configuration error (panics) rather than a user-facing one.
func ParsedDefault[C any, T any](literal string) DefaultValue[C, T] {
	return DefaultValue[C, T]{kind: DefaultParsed, literal: literal}
}

// erasedDefault is the type-erased boundary stored alongside a component.
type erasedDefault[C any] interface {
	// evaluate produces the erased default value and stores it under name,
	// running the component's parser for the "parsed" kind.
	evaluate(name string, comp *erasedComponent[C], cmdCtx *CommandContext[C]) error
}

type erasedDefaultAdapter[C any, T any] struct {
	def DefaultValue[C, T]
}

func eraseDefault[C any, T any](def DefaultValue[C, T]) erasedDefault[C] {
	return erasedDefaultAdapter[C, T]{def: def}
}

func (a erasedDefaultAdapter[C, T]) evaluate(name string, comp *erasedComponent[C], cmdCtx *CommandContext[C]) error {
	switch a.def.kind {
	case DefaultConstant:
		cmdCtx.store(name, a.def.value)
		return nil

	case DefaultDynamic:
		if cmdCtx.IsSuggestions {
			return nil
		}
		cmdCtx.store(name, a.def.dynamic(cmdCtx))
		return nil

	case DefaultParsed:
		literalInput := NewCommandInput(a.def.literal)
		if err := comp.parser.parseInto(name, cmdCtx, literalInput); err != nil {
			panic("cloudtree: parsed default value failed to parse for component " + name + ": " + err.Error())
		}
		return nil

	default:
		return nil
	}
}
