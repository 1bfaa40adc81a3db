package cloudtree

import "context"

// ParsingContext records, for one parsed component, the exact substring of
// the input it consumed and (for LITERAL components) the alias matched.
// See spec §3 / testable property 10.
type ParsingContext struct {
	Name     string
	Consumed string
	Alias    string
}

// FlagContext exposes the parsed values of a command's flags (§4.2.1).
type FlagContext struct {
	present map[string]bool
	values  map[string]any
}

func newFlagContext() *FlagContext {
	return &FlagContext{present: map[string]bool{}, values: map[string]any{}}
}

// WasPresent reports whether a flag (by its long name) appeared in the input.
func (f *FlagContext) WasPresent(name string) bool {
	return f.present[name]
}

// GetValue returns a flag's stored value and whether it was set.
func (f *FlagContext) GetValue(name string) (any, bool) {
	v, ok := f.values[name]
	return v, ok
}

// GetValueOrDefault returns a flag's stored value, or def if it was never set.
func (f *FlagContext) GetValueOrDefault(name string, def any) any {
	if v, ok := f.values[name]; ok {
		return v
	}
	return def
}

func (f *FlagContext) set(name string, value any) {
	f.present[name] = true
	f.values[name] = value
}

// CommandContext is the per-execution mutable store threaded through one
// parse/execute/suggest call. C is the platform's sender type.
type CommandContext[C any] struct {
	// Context carries cancellation/deadlines through suspending parser,
	// handler, and suggestion-provider invocations (§5).
	Context context.Context

	Sender C

	// IsSuggestions is true while this context is being used to compute
	// completions, so default values and component preprocessors must not
	// perform observable side effects (§4.2.2, §4.4).
	IsSuggestions bool

	values  map[string]any
	parsing map[string]ParsingContext
	meta    map[string]any
	flags   *FlagContext
}

// NewCommandContext creates an empty context for sender over ctx.
func NewCommandContext[C any](ctx context.Context, sender C) *CommandContext[C] {
	return &CommandContext[C]{
		Context: ctx,
		Sender:  sender,
		values:  map[string]any{},
		parsing: map[string]ParsingContext{},
		meta:    map[string]any{},
		flags:   newFlagContext(),
	}
}

// Flags returns the context's FlagContext.
func (c *CommandContext[C]) Flags() *FlagContext { return c.flags }

// store inserts a typed value under a component's name.
func (c *CommandContext[C]) store(name string, value any) {
	c.values[name] = value
}

// Get retrieves an erased value by component name.
func (c *CommandContext[C]) Get(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// GetOrDefault retrieves an erased value, falling back to def.
func (c *CommandContext[C]) GetOrDefault(name string, def any) any {
	if v, ok := c.values[name]; ok {
		return v
	}
	return def
}

// ContextGet is a type-safe accessor restoring a value's static type from a
// component's name, avoiding unsafe casts at call sites (design notes §9).
func ContextGet[T any, C any](c *CommandContext[C], name string) (T, bool) {
	var zero T
	v, ok := c.values[name]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// ContextMustGet is ContextGet but panics if the value is absent or of the
// wrong type; intended for use inside handlers, where the tree walk
// guarantees the value was already parsed successfully.
func ContextMustGet[T any, C any](c *CommandContext[C], name string) T {
	v, ok := ContextGet[T](c, name)
	if !ok {
		panic("cloudtree: no value stored for component " + name)
	}
	return v
}

// ParsingContextFor returns the recorded ParsingContext for a component, if any.
func (c *CommandContext[C]) ParsingContextFor(name string) (ParsingContext, bool) {
	pc, ok := c.parsing[name]
	return pc, ok
}

func (c *CommandContext[C]) recordParsing(pc ParsingContext) {
	c.parsing[pc.Name] = pc
}

// MetaGet retrieves a value stashed by a preprocessor/postprocessor under
// a string key; used for the "processed" marker (§4.2 step 2) and any
// platform-specific bookkeeping.
func (c *CommandContext[C]) MetaGet(key string) (any, bool) {
	v, ok := c.meta[key]
	return v, ok
}

// MetaSet stashes a value under a string key.
func (c *CommandContext[C]) MetaSet(key string, value any) {
	c.meta[key] = value
}
