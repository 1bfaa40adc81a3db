package cloudtree

import (
	"fmt"
	"sort"
)

// CommandNode is one node of the command tree (§3). The tree exclusively
// owns its nodes; components are exclusively owned by the node that
// carries them.
type CommandNode[C any] struct {
	component *erasedComponent[C] // nil only for the root
	children  []*CommandNode[C]
	command   *Command[C] // nullable; non-nil for leaves, optional for interior nodes
	parent    *CommandNode[C]
	meta      *CommandMeta
}

func newCommandNode[C any](component *erasedComponent[C], parent *CommandNode[C]) *CommandNode[C] {
	return &CommandNode[C]{component: component, parent: parent, meta: NewCommandMeta()}
}

// Component returns the node's edge label, or nil for the root.
func (n *CommandNode[C]) Component() *erasedComponent[C] { return n.component }

// Parent returns the node's parent, or nil for the root.
func (n *CommandNode[C]) Parent() *CommandNode[C] { return n.parent }

// Command returns the Command owning this node, if any.
func (n *CommandNode[C]) Command() *Command[C] { return n.command }

// Meta returns the node's metadata map (permission, required sender types, …).
func (n *CommandNode[C]) Meta() *CommandMeta { return n.meta }

// Children returns the node's immediate children in registration order
// (use orderedChildren for parse/suggestion priority order).
func (n *CommandNode[C]) Children() []*CommandNode[C] {
	return append([]*CommandNode[C]{}, n.children...)
}

// orderedChildren returns children ordered LITERALs first (insertion
// order), then REQUIREDs, then OPTIONALs (§4.1 "Ordering within a node's
// children"), which determines both parse priority and suggestion order.
func (n *CommandNode[C]) orderedChildren() []*CommandNode[C] {
	out := append([]*CommandNode[C]{}, n.children...)
	sort.SliceStable(out, func(i, j int) bool {
		return componentRank(out[i].component) < componentRank(out[j].component)
	})
	return out
}

func componentRank[C any](comp *erasedComponent[C]) int {
	if comp == nil {
		return -1
	}
	switch comp.Type {
	case ComponentLiteral:
		return 0
	case ComponentRequired:
		return 1
	case ComponentOptional:
		return 2
	default:
		return 3
	}
}

// AmbiguousNodeError is returned at registration when a new component
// would collide with an existing sibling under the ambiguity rule (§4.1).
type AmbiguousNodeError struct {
	Component string
	Reason    string
}

func (e *AmbiguousNodeError) Error() string {
	return fmt.Sprintf("ambiguous command node %q: %s", e.Component, e.Reason)
}

// insertChild finds or creates, under n, the child equivalent to comp (the
// insertion step of §4.1):
//   - LITERAL: any existing LITERAL child sharing an alias with comp is
//     equivalent and is extended with comp's new aliases.
//   - REQUIRED/OPTIONAL: an existing child with the same name and the same
//     ValueType is equivalent.
//
// If no equivalent child exists, a new one is created after checking the
// ambiguity rule (unless allowUnsafe is set).
func (n *CommandNode[C]) insertChild(comp *erasedComponent[C], allowUnsafe bool) (*CommandNode[C], error) {
	for _, child := range n.children {
		if componentsEquivalent(child.component, comp) {
			mergeAliases(child.component, comp)
			return child, nil
		}
	}

	if !allowUnsafe {
		if err := n.checkAmbiguity(comp); err != nil {
			return nil, err
		}
	}

	child := newCommandNode(comp, n)
	n.children = append(n.children, child)
	return child, nil
}

func componentsEquivalent[C any](a, b *erasedComponent[C]) bool {
	if a.Type != b.Type {
		return false
	}
	if a.Type == ComponentLiteral {
		for _, alias := range b.Aliases {
			for _, existing := range a.Aliases {
				if alias == existing {
					return true
				}
			}
		}
		return false
	}
	return a.Name == b.Name && a.ValueType == b.ValueType
}

func mergeAliases[C any](dst, src *erasedComponent[C]) {
	if dst.Type != ComponentLiteral {
		return
	}
	for _, alias := range src.Aliases {
		found := false
		for _, existing := range dst.Aliases {
			if existing == alias {
				found = true
				break
			}
		}
		if !found {
			dst.Aliases = append(dst.Aliases, alias)
		}
	}
}

// checkAmbiguity enforces: at most one non-LITERAL child per value type,
// and no LITERAL child whose alias equals the name of any sibling.
func (n *CommandNode[C]) checkAmbiguity(comp *erasedComponent[C]) error {
	if comp.Type == ComponentLiteral {
		for _, alias := range comp.Aliases {
			for _, sibling := range n.children {
				if sibling.component.Type != ComponentLiteral && sibling.component.Name == alias {
					return &AmbiguousNodeError{Component: comp.Name,
						Reason: fmt.Sprintf("literal alias %q collides with sibling argument %q", alias, sibling.component.Name)}
				}
			}
		}
		return nil
	}

	for _, sibling := range n.children {
		if sibling.component.Type == ComponentLiteral {
			for _, alias := range sibling.component.Aliases {
				if alias == comp.Name {
					return &AmbiguousNodeError{Component: comp.Name,
						Reason: fmt.Sprintf("argument name collides with sibling literal alias %q", alias)}
				}
			}
			continue
		}
		if sibling.component.ValueType == comp.ValueType {
			return &AmbiguousNodeError{Component: comp.Name,
				Reason: fmt.Sprintf("node already has a %s child of type %s (%q)", sibling.component.Type, comp.ValueType, sibling.component.Name)}
		}
	}
	return nil
}

// removeChild drops child from n's children, used by CommandManager.Unregister.
func (n *CommandNode[C]) removeChild(child *CommandNode[C]) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// isLeaf reports whether the node has no children.
func (n *CommandNode[C]) isLeaf() bool { return len(n.children) == 0 }
