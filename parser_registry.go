package cloudtree

import "fmt"

// ParserRegistry resolves a standard parser either by the value type it
// produces (used when a component declares no explicit parser name) or by
// an explicit name (§4.2.3). Registration is closed-world per manager: the
// same type or name may not be registered twice.
type ParserRegistry[C any] struct {
	byType map[string]func() erasedParser[C]
	byName map[string]func() erasedParser[C]
}

// NewParserRegistry builds an empty registry.
func NewParserRegistry[C any]() *ParserRegistry[C] {
	return &ParserRegistry[C]{
		byType: map[string]func() erasedParser[C]{},
		byName: map[string]func() erasedParser[C]{},
	}
}

// RegisterType associates typeName (as produced by valueTypeName[T]) with a
// parser factory, used when a component names only a Go type.
func (r *ParserRegistry[C]) RegisterType(typeName string, factory func() erasedParser[C]) error {
	if _, exists := r.byType[typeName]; exists {
		return fmt.Errorf("cloudtree: parser already registered for type %q", typeName)
	}
	r.byType[typeName] = factory
	return nil
}

// RegisterName associates a parser name (e.g. "quoted", "greedy") with a
// factory. Named parsers are only resolved by explicit request, never
// picked implicitly by type (§4.2.3: "by-name only for named").
func (r *ParserRegistry[C]) RegisterName(name string, factory func() erasedParser[C]) error {
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("cloudtree: parser already registered under name %q", name)
	}
	r.byName[name] = factory
	return nil
}

// ResolveType looks up a parser factory by the type it produces.
func (r *ParserRegistry[C]) ResolveType(typeName string) (func() erasedParser[C], bool) {
	factory, ok := r.byType[typeName]
	return factory, ok
}

// ResolveName looks up a parser factory by explicit name.
func (r *ParserRegistry[C]) ResolveName(name string) (func() erasedParser[C], bool) {
	factory, ok := r.byName[name]
	return factory, ok
}
