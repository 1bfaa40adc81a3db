package cloudtree

import "strings"

// Suggestion is a candidate completion, optionally tooltipped with a
// platform-rendered Message handle (§4.4/GLOSSARY). Message is kept
// abstract as `any` since captions/localisation are an external collaborator.
type Suggestion struct {
	Text    string
	Tooltip any
}

// NewSuggestion builds a bare suggestion with no tooltip.
func NewSuggestion(text string) Suggestion { return Suggestion{Text: text} }

// NewSuggestionWithTooltip builds a suggestion carrying a tooltip handle.
func NewSuggestionWithTooltip(text string, tooltip any) Suggestion {
	return Suggestion{Text: text, Tooltip: tooltip}
}

// suggestEngine walks the tree producing completions for a partial line
// (§4.4).
type suggestEngine[C any] struct {
	manager *CommandManager[C]
}

// Suggest computes completions for sender's partial line.
func (m *CommandManager[C]) Suggest(cmdCtx *CommandContext[C], partial string) []Suggestion {
	cmdCtx.IsSuggestions = true
	input := NewCommandInput(partial)
	literalsOffered := map[string]bool{}
	suggestions := walkSuggest(m, m.root, cmdCtx, input, literalsOffered)
	return dedupeSuggestions(filterSuggestions(suggestions, input, partial, m.Settings.ForceSuggestionLowercase))
}

func walkSuggest[C any](m *CommandManager[C], node *CommandNode[C], cmdCtx *CommandContext[C], input *CommandInput, literalsOffered map[string]bool) []Suggestion {
	if input.IsEmpty(true) {
		return collectSuggestionsAt(m, node, cmdCtx, input, literalsOffered)
	}

	// If the remaining input is a single (possibly partial) token with no
	// trailing separator, this node's children are the suggestion source.
	trimmed := strings.TrimLeft(input.Remaining(), " \t")
	if !strings.ContainsAny(trimmed, " \t") {
		return collectSuggestionsAt(m, node, cmdCtx, input, literalsOffered)
	}

	for _, child := range node.orderedChildren() {
		attempt := input.Copy()
		childCtx := cmdCtx
		if child.component != nil {
			if err := tryConsumeForSuggestion(child, childCtx, attempt); err != nil {
				continue
			}
		} else {
			continue
		}
		// This child fully consumed the current (complete) token; descend.
		return walkSuggest(m, child, cmdCtx, attempt, literalsOffered)
	}
	return nil
}

func tryConsumeForSuggestion[C any](node *CommandNode[C], cmdCtx *CommandContext[C], input *CommandInput) error {
	comp := node.component
	if comp.Type == ComponentLiteral {
		token := input.ReadString()
		for _, alias := range comp.Aliases {
			if strings.EqualFold(alias, token) {
				return nil
			}
		}
		return errLiteralMismatch
	}
	return comp.parser.parseInto(comp.Name, cmdCtx, input)
}

func collectSuggestionsAt[C any](m *CommandManager[C], node *CommandNode[C], cmdCtx *CommandContext[C], input *CommandInput, literalsOffered map[string]bool) []Suggestion {
	var out []Suggestion
	for _, child := range node.orderedChildren() {
		if child.component == nil {
			continue
		}
		comp := child.component
		if comp.Type == ComponentLiteral {
			for _, alias := range comp.Aliases {
				if literalsOffered[alias] {
					continue
				}
				literalsOffered[alias] = true
				out = append(out, NewSuggestion(alias))
			}
			continue
		}

		var provided []Suggestion
		if comp.SuggestionProvider != nil {
			provided = comp.SuggestionProvider(cmdCtx, input.Copy())
		} else {
			provided = comp.parser.suggest(cmdCtx, input.Copy())
		}
		for _, s := range provided {
			if literalsOffered[s.Text] {
				continue
			}
			out = append(out, s)
		}
	}
	return out
}

// filterSuggestions applies the two post-filters from §4.4: drop
// suggestions equal to an already-offered literal (handled above via
// literalsOffered) and trim the last space-separated prefix of the
// partial input from any suggestion text that contains it.
//
// forceLowercase implements FORCE_SUGGESTION_LOWERCASE (§6): when set, the
// prefix match is done case-insensitively (both sides lowercased before
// comparing) and the returned suggestion text itself is normalised to
// lowercase; when unset, matching stays case-sensitive as before.
func filterSuggestions(suggestions []Suggestion, input *CommandInput, partial string, forceLowercase bool) []Suggestion {
	prefix := LastToken(strings.TrimRight(partial, ""))
	if prefix == "" {
		if !forceLowercase {
			return suggestions
		}
		out := make([]Suggestion, 0, len(suggestions))
		for _, s := range suggestions {
			out = append(out, Suggestion{Text: strings.ToLower(s.Text), Tooltip: s.Tooltip})
		}
		return out
	}

	matchPrefix := prefix
	out := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		text := s.Text
		matchText := text
		if forceLowercase {
			text = strings.ToLower(text)
			matchText = text
			matchPrefix = strings.ToLower(prefix)
		}
		if idx := strings.Index(matchText, matchPrefix); idx == 0 {
			// Already anchored at the start; nothing to trim.
		} else if idx := strings.LastIndex(matchText, " "+matchPrefix); idx >= 0 {
			text = text[idx+1:]
		}
		out = append(out, Suggestion{Text: text, Tooltip: s.Tooltip})
	}
	return out
}

func dedupeSuggestions(suggestions []Suggestion) []Suggestion {
	seen := map[string]bool{}
	out := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if seen[s.Text] {
			continue
		}
		seen[s.Text] = true
		out = append(out, s)
	}
	return out
}
