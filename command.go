package cloudtree

import "fmt"

// SenderTypeOfFunc derives a stable type tag for a sender, used to check a
// Command's required sender types (§3 "a set of required sender types").
type SenderTypeOfFunc[C any] func(sender C) string

// CommandHandler is the user-supplied logic invoked at a terminal node.
type CommandHandler[C any] func(cmdCtx *CommandContext[C]) error

// Command describes one executable path: the ordered sequence of
// components from root, a permission, required sender types, the handler,
// and metadata (§3). Commands are created by a builder and never mutated
// after registration.
type Command[C any] struct {
	Components  []*erasedComponent[C]
	Flags       []*erasedFlagComponent[C]
	Permission  Permission
	SenderTypes []string
	Handler     CommandHandler[C]
	Meta        *CommandMeta
}

// CommandBuilder builds a Command via fluent chaining (§6 Registration API).
type CommandBuilder[C any] struct {
	components  []*erasedComponent[C]
	flags       []*erasedFlagComponent[C]
	permission  Permission
	senderTypes []string
	handler     CommandHandler[C]
	meta        *CommandMeta
}

// NewCommandBuilder starts a builder rooted at a LITERAL component named
// name (plus aliases).
func NewCommandBuilder[C any](name string, aliases ...string) *CommandBuilder[C] {
	b := &CommandBuilder[C]{meta: NewCommandMeta()}
	return b.AddComponent(Literal[C](name, aliases...))
}

// AddComponent appends an already-constructed component (built via
// Literal, Required[C,T], or Optional[C,T], since Go methods cannot carry
// their own type parameters).
func (b *CommandBuilder[C]) AddComponent(comp *erasedComponent[C]) *CommandBuilder[C] {
	b.components = append(b.components, comp)
	return b
}

// Literal appends another LITERAL component (for multi-word command paths,
// e.g. "config set").
func (b *CommandBuilder[C]) Literal(name string, aliases ...string) *CommandBuilder[C] {
	return b.AddComponent(Literal[C](name, aliases...))
}

// Permission sets the command's permission.
func (b *CommandBuilder[C]) Permission(p Permission) *CommandBuilder[C] {
	b.permission = p
	return b
}

// SenderType appends an allowed sender type tag; an empty set means any
// sender may use the command.
func (b *CommandBuilder[C]) SenderType(tag string) *CommandBuilder[C] {
	b.senderTypes = append(b.senderTypes, tag)
	return b
}

// Handler sets the command's handler.
func (b *CommandBuilder[C]) Handler(fn CommandHandler[C]) *CommandBuilder[C] {
	b.handler = fn
	return b
}

// BuilderMeta stashes a value into the command's metadata map.
func BuilderMeta[C any, V any](b *CommandBuilder[C], key CloudKey[V], value V) *CommandBuilder[C] {
	MetaSet(b.meta, key, value)
	return b
}

// Build validates the component sequence (no REQUIRED after an OPTIONAL,
// property 2 in §8) and returns the finished Command. The other rule, no
// LITERAL carrying a default, is already enforced by construction
// (WithDefaultValue panics), so Build only checks ordering.
func (b *CommandBuilder[C]) Build() (*Command[C], error) {
	seenOptional := false
	for _, comp := range b.components {
		if comp.Type == ComponentOptional {
			seenOptional = true
			continue
		}
		if comp.Type == ComponentRequired && seenOptional {
			return nil, fmt.Errorf("cloudtree: REQUIRED component %q may not follow an OPTIONAL component", comp.Name)
		}
	}

	return &Command[C]{
		Components:  b.components,
		Flags:       b.flags,
		Permission:  b.permission,
		SenderTypes: b.senderTypes,
		Handler:     b.handler,
		Meta:        b.meta,
	}, nil
}
