package cloudtree

import (
	"strings"
)

// erasedFlagComponent is a flag: a component whose value, once parsed,
// lands in the CommandContext's FlagContext rather than its main value map
// (§4.2.1). Presence-only flags (no backing parser) are true/false.
type erasedFlagComponent[C any] struct {
	Name         string
	Short        rune
	Placeholder  string
	Description  ArgumentDescription
	presenceOnly bool
	parser       erasedParser[C]
}

// Flag declares a value-carrying flag: `--name <value>` or `-x <value>`.
func Flag[C any, T any](name string, short rune, parser Parser[C, T]) *erasedFlagComponent[C] {
	return &erasedFlagComponent[C]{Name: name, Short: short, parser: eraseParser[C](parser)}
}

// PresenceFlag declares a presence-only flag: `--name` or `-x`, with no
// value. A repeated presence flag is deduplicated, not an error (§4.2.1).
func PresenceFlag[C any](name string, short rune) *erasedFlagComponent[C] {
	return &erasedFlagComponent[C]{Name: name, Short: short, presenceOnly: true}
}

// WithPlaceholder sets the value placeholder shown in usage text.
func (f *erasedFlagComponent[C]) WithPlaceholder(placeholder string) *erasedFlagComponent[C] {
	f.Placeholder = placeholder
	return f
}

// WithDescription sets the flag's help text.
func (f *erasedFlagComponent[C]) WithDescription(desc string) *erasedFlagComponent[C] {
	f.Description = ArgumentDescription{Description: desc}
	return f
}

// AddFlag attaches a flag to a command builder.
func (b *CommandBuilder[C]) AddFlag(flag *erasedFlagComponent[C]) *CommandBuilder[C] {
	b.flags = append(b.flags, flag)
	return b
}

func isFlagToken(token string) bool {
	if len(token) < 2 {
		return false
	}
	return strings.HasPrefix(token, "-") && token != "--"
}

// findFlag resolves a long or short flag name against a command's declared
// flags.
func findFlag[C any](cmd *Command[C], long string, short rune) *erasedFlagComponent[C] {
	for _, f := range cmd.Flags {
		if long != "" && f.Name == long {
			return f
		}
		if short != 0 && f.Short == short {
			return f
		}
	}
	return nil
}

// parseFlagToken consumes one `--name[=value]`, `-x[value]`, or (when
// liberal is true) combined `-abc` token (and its value tokens, if any)
// from input, storing results into cmdCtx.Flags() (§4.2.1).
// LIBERAL_FLAG_PARSING (§6) gates whether a multi-character short-flag run
// expands into several presence flags at all: with liberal parsing off,
// "-abc" is rejected outright once 'a' resolves to a presence-only flag
// and "bc" remains, rather than silently swallowing "bc" as if it were a
// value; a non-presence first flag still attaches "bc" as its value
// either way, since that form is unambiguous regardless of the setting.
func parseFlagToken[C any](cmd *Command[C], cmdCtx *CommandContext[C], input *CommandInput, liberal bool) error {
	token := input.ReadString()

	if strings.HasPrefix(token, "--") {
		name := token[2:]
		value := ""
		hasInlineValue := false
		if idx := strings.IndexByte(name, '='); idx >= 0 {
			value = name[idx+1:]
			name = name[:idx]
			hasInlineValue = true
		}

		flag := findFlag(cmd, name, 0)
		negated := false
		if flag == nil && strings.HasPrefix(name, "no-") {
			// "--no-name" negates a presence-only boolean flag: the
			// teacher's NegatedBoolVar does the same for its bool values.
			if nf := findFlag(cmd, name[3:], 0); nf != nil && nf.presenceOnly {
				flag = nf
				negated = true
			}
		}
		if flag == nil {
			return NewArgumentParseError(name, &unknownFlagError{Name: name})
		}

		if flag.presenceOnly {
			cmdCtx.Flags().set(flag.Name, !negated)
			return nil
		}

		if !hasInlineValue {
			value, _ = readFlagValueTokens(flag, input)
		}
		valueInput := NewCommandInput(value)
		parsed, err := flag.parser.parseValue(cmdCtx, valueInput)
		if err != nil {
			return NewArgumentParseError(flag.Name, err)
		}
		cmdCtx.Flags().set(flag.Name, parsed)
		return nil
	}

	// Short flag(s): "-x", "-xyz" (combined presence-only), or "-xVALUE".
	chars := token[1:]
	if liberal && allPresenceOnly(cmd, chars) {
		for _, r := range chars {
			flag := findFlag(cmd, "", r)
			cmdCtx.Flags().set(flag.Name, true)
		}
		return nil
	}

	r := []rune(chars)[0]
	flag := findFlag(cmd, "", r)
	if flag == nil {
		return NewArgumentParseError(string(r), &unknownFlagError{Name: string(r)})
	}
	if flag.presenceOnly {
		cmdCtx.Flags().set(flag.Name, true)
		rest := string([]rune(chars)[1:])
		if rest != "" {
			if !liberal {
				return NewArgumentParseError(flag.Name, &unknownFlagError{Name: "-" + chars})
			}
			// Expand the remainder as more combined short flags, then
			// advance input past any value tokens the recursive call read.
			synthetic := prependToken(input, "-"+rest)
			err := parseFlagToken(cmd, cmdCtx, synthetic, liberal)
			if extra := synthetic.Cursor() - len("-"+rest) - 1; extra > 0 {
				input.cursor += extra
			}
			return err
		}
		return nil
	}

	rest := string([]rune(chars)[1:])
	var value string
	if rest != "" {
		value = rest
	} else {
		value, _ = readFlagValueTokens(flag, input)
	}
	valueInput := NewCommandInput(value)
	parsed, err := flag.parser.parseValue(cmdCtx, valueInput)
	if err != nil {
		return NewArgumentParseError(flag.Name, err)
	}
	cmdCtx.Flags().set(flag.Name, parsed)
	return nil
}

// allPresenceOnly reports whether every character in chars names a
// presence-only flag on cmd, the condition under which "-abc" expands to
// "-a -b -c" rather than treating 'a' as a value-carrying flag whose value
// is "bc" (§4.2.1).
func allPresenceOnly[C any](cmd *Command[C], chars string) bool {
	if chars == "" {
		return false
	}
	for _, r := range chars {
		flag := findFlag(cmd, "", r)
		if flag == nil || !flag.presenceOnly {
			return false
		}
	}
	return true
}

// readFlagValueTokens consumes the tokens that make up a flag's value. If
// the flag's parser is the flag-yielding string-array parser, tokens are
// consumed until the next flag sigil or end-of-input; otherwise exactly
// one token is consumed.
func readFlagValueTokens[C any](flag *erasedFlagComponent[C], input *CommandInput) (string, bool) {
	if isFlagYieldingParser(flag.parser) {
		var tokens []string
		for {
			input.SkipWhitespace()
			if input.IsEmpty(true) {
				break
			}
			if isFlagToken(input.PeekString()) {
				break
			}
			tokens = append(tokens, input.ReadString())
		}
		return strings.Join(tokens, " "), true
	}

	if input.IsEmpty(true) {
		return "", false
	}
	return input.ReadString(), true
}

type unknownFlagError struct{ Name string }

func (e *unknownFlagError) Error() string { return "unknown flag: " + e.Name }

// prependToken wraps a synthetic remaining line so a recursive call to
// parseFlagToken can continue expanding a combined short-flag run.
func prependToken(input *CommandInput, token string) *CommandInput {
	rest := input.Remaining()
	if rest == "" {
		return NewCommandInput(token)
	}
	return NewCommandInput(token + " " + rest)
}
