package cloudtree

// ComponentType distinguishes the three kinds of command-tree edges (§3).
type ComponentType int

const (
	ComponentLiteral ComponentType = iota
	ComponentRequired
	ComponentOptional
)

func (t ComponentType) String() string {
	switch t {
	case ComponentLiteral:
		return "literal"
	case ComponentRequired:
		return "required"
	case ComponentOptional:
		return "optional"
	default:
		return "unknown"
	}
}

// ComponentPreprocessor runs once a component has parsed successfully,
// before the walk descends into its children. It may fail the parse.
type ComponentPreprocessor[C any] func(cmdCtx *CommandContext[C], input *CommandInput) error

// ArgumentDescription documents a component for usage/help generation.
type ArgumentDescription struct {
	Description string
}

// erasedComponent is the type-erased edge label stored in the tree (§3).
// Generic constructors (Literal, Required, Optional) build one from a
// typed Parser[C,T]; the value type T only matters at parseInto time.
type erasedComponent[C any] struct {
	Name        string
	Aliases     []string
	Type        ComponentType
	ValueType   string // stable identity for ambiguity/equivalence checks
	Description ArgumentDescription

	parser             erasedParser[C]
	defaultValue       erasedDefault[C]
	hasDefault         bool
	SuggestionProvider func(cmdCtx *CommandContext[C], input *CommandInput) []Suggestion
	Preprocessor       ComponentPreprocessor[C]
}

// Literal builds a LITERAL component matching any of name plus aliases
// (case-insensitively at parse time).
func Literal[C any](name string, aliases ...string) *erasedComponent[C] {
	return &erasedComponent[C]{
		Name:      name,
		Aliases:   append([]string{name}, aliases...),
		Type:      ComponentLiteral,
		ValueType: "literal",
	}
}

// Required builds a REQUIRED component backed by parser.
func Required[C any, T any](name string, parser Parser[C, T]) *erasedComponent[C] {
	return &erasedComponent[C]{
		Name:      name,
		Type:      ComponentRequired,
		ValueType: valueTypeName[T](),
		parser:    eraseParser[C](parser),
	}
}

// Optional builds an OPTIONAL component backed by parser, with no default
// (if absent and unset, the context simply has no value for name).
func Optional[C any, T any](name string, parser Parser[C, T]) *erasedComponent[C] {
	return &erasedComponent[C]{
		Name:      name,
		Type:      ComponentOptional,
		ValueType: valueTypeName[T](),
		parser:    eraseParser[C](parser),
	}
}

// WithDefaultValue attaches a DefaultValue to an OPTIONAL component. Panics if
// called on a non-OPTIONAL component (LITERALs never carry defaults, §3).
func WithDefaultValue[C any, T any](comp *erasedComponent[C], def DefaultValue[C, T]) *erasedComponent[C] {
	if comp.Type != ComponentOptional {
		panic("cloudtree: only OPTIONAL components may carry a default value")
	}
	comp.defaultValue = eraseDefault[C](def)
	comp.hasDefault = true
	return comp
}

// WithSuggestions attaches a SuggestionProvider, used in preference to the
// parser's own Suggestions method.
func (c *erasedComponent[C]) WithSuggestions(provider func(cmdCtx *CommandContext[C], input *CommandInput) []Suggestion) *erasedComponent[C] {
	c.SuggestionProvider = provider
	return c
}

// WithPreprocessor attaches a ComponentPreprocessor.
func (c *erasedComponent[C]) WithPreprocessor(p ComponentPreprocessor[C]) *erasedComponent[C] {
	c.Preprocessor = p
	return c
}

// WithDescription attaches help text.
func (c *erasedComponent[C]) WithDescription(desc string) *erasedComponent[C] {
	c.Description = ArgumentDescription{Description: desc}
	return c
}

func valueTypeName[T any]() string {
	var zero T
	return typeNameOf(zero)
}
