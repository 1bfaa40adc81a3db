package cloudtree

import (
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// CommandInput is an immutable-view tokenizer over a single command line.
// Unlike gargle's stack-based tokenizer (tokenize.go), CommandInput never
// mutates the caller's view of the raw line: every read advances an
// internal cursor and Copy gives a cheap snapshot for look-ahead, which
// the suggestion engine relies on heavily (§4.4).
type CommandInput struct {
	raw    string
	cursor int
}

// NewCommandInput creates a tokenizer over raw. Leading whitespace is not
// trimmed eagerly; ReadString/PeekString do that on demand.
func NewCommandInput(raw string) *CommandInput {
	return &CommandInput{raw: raw}
}

// Remaining returns the untouched remainder of the line, whitespace and all.
func (in *CommandInput) Remaining() string {
	return in.raw[in.cursor:]
}

// RemainingLength is len(in.Remaining()).
func (in *CommandInput) RemainingLength() int {
	return len(in.raw) - in.cursor
}

// SkipWhitespace advances past any leading spaces/tabs.
func (in *CommandInput) SkipWhitespace() {
	rest := in.raw[in.cursor:]
	trimmed := strings.TrimLeft(rest, " \t")
	in.cursor += len(rest) - len(trimmed)
}

// IsEmpty reports whether there is no more input to parse. When
// ignoreWhitespace is true, trailing whitespace with no tokens left does
// not count as non-empty.
func (in *CommandInput) IsEmpty(ignoreWhitespace bool) bool {
	rest := in.raw[in.cursor:]
	if ignoreWhitespace {
		rest = strings.TrimLeft(rest, " \t")
	}
	return rest == ""
}

// PeekString returns the first whitespace-delimited token without
// consuming it. It returns "" if the input is empty.
func (in *CommandInput) PeekString() string {
	save := in.cursor
	tok := in.ReadString()
	in.cursor = save
	return tok
}

// ReadString consumes and returns the first whitespace-delimited token. It
// returns "" if the input is (ignoring whitespace) empty.
func (in *CommandInput) ReadString() string {
	in.SkipWhitespace()
	rest := in.raw[in.cursor:]
	if rest == "" {
		return ""
	}
	idx := strings.IndexAny(rest, " \t")
	if idx < 0 {
		in.cursor = len(in.raw)
		return rest
	}
	in.cursor += idx
	return rest[:idx]
}

// ReadStringSkipWhitespace is ReadString followed by SkipWhitespace, so the
// cursor sits at the start of the following token (if any).
func (in *CommandInput) ReadStringSkipWhitespace() string {
	tok := in.ReadString()
	in.SkipWhitespace()
	return tok
}

// ReadRemaining consumes and returns everything left in the line,
// including internal whitespace (used by greedy string parsers, §4.7).
func (in *CommandInput) ReadRemaining() string {
	in.SkipWhitespace()
	rest := in.raw[in.cursor:]
	in.cursor = len(in.raw)
	return rest
}

// ReadQuotedString consumes one shell-style token: a bare word, or a
// run of `"…"`/`'…'` groups that may themselves span embedded whitespace.
// Quote handling is delegated to go-shellquote rather than hand-rolled,
// matching the grouping rules a platform's own shell would apply.
func (in *CommandInput) ReadQuotedString() (string, error) {
	in.SkipWhitespace()
	rest := in.raw[in.cursor:]
	if rest == "" {
		return "", nil
	}

	end := len(rest)
	inSingle, inDouble := false, false
loop:
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case ' ', '\t':
			if !inSingle && !inDouble {
				end = i
				break loop
			}
		}
	}
	raw := rest[:end]

	fields, err := shellquote.Split(raw)
	if err != nil {
		return "", err
	}
	in.cursor += end
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], nil
}

// Copy returns a cheap, independent snapshot of the current read position.
// Advancing the copy never affects the original (used for suggestion
// look-ahead and for REQUIRED sibling retry, §4.2).
func (in *CommandInput) Copy() *CommandInput {
	cp := *in
	return &cp
}

// Cursor exposes the current byte offset, used by ParsingContext to record
// exactly which substring a component consumed.
func (in *CommandInput) Cursor() int { return in.cursor }

// Raw returns the unmodified original line this input was built from.
func (in *CommandInput) Raw() string { return in.raw }

// LastToken returns the final whitespace-separated chunk of a string,
// used by the suggestion engine's trim-before-space post-filter (§4.4).
func LastToken(s string) string {
	idx := strings.LastIndexAny(s, " \t")
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}
