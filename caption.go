package cloudtree

import "strings"

// Caption is a localisable message identifier with named variables (§6).
type Caption struct {
	Key       string
	Variables map[string]string
}

// NewCaption builds a Caption from alternating key/value variable pairs.
func NewCaption(key string, kv ...string) Caption {
	vars := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		vars[kv[i]] = kv[i+1]
	}
	return Caption{Key: key, Variables: vars}
}

// Standard caption keys emitted by the core (§4.5/§6).
const (
	CaptionArgumentParseFailure = "cloudtree.caption.argument.parse.failure"
	CaptionNoSuchCommand        = "cloudtree.caption.no.such.command"
	CaptionNoPermission         = "cloudtree.caption.no.permission"
	CaptionInvalidSender        = "cloudtree.caption.invalid.sender"
	CaptionInvalidSyntax        = "cloudtree.caption.invalid.syntax"
	CaptionNumberOutOfRange     = "cloudtree.caption.number.out.of.range"
	CaptionRegexMismatch        = "cloudtree.caption.regex.mismatch"
	CaptionUnexpectedError      = "cloudtree.caption.unexpected.error"
)

// CaptionRegistry resolves a Caption to a localised, variable-substituted
// string. The core only ever queries it when formatting error messages.
type CaptionRegistry struct {
	messages map[string]string
}

// NewCaptionRegistry creates a registry seeded with default English
// messages for every standard caption key.
func NewCaptionRegistry() *CaptionRegistry {
	r := &CaptionRegistry{messages: map[string]string{
		CaptionArgumentParseFailure: "Invalid input for argument {name}: {reason}",
		CaptionNoSuchCommand:        "Unknown command: {command}",
		CaptionNoPermission:         "You do not have permission to perform this command",
		CaptionInvalidSender:        "This command may not be used by {sender}",
		CaptionInvalidSyntax:        "Invalid syntax. Usage: {syntax}",
		CaptionNumberOutOfRange:     "{input} is not in the range {min} to {max}",
		CaptionRegexMismatch:        "{input} does not match the expected format {pattern}",
		CaptionUnexpectedError:      "An unexpected error occurred",
	}}
	return r
}

// Register overrides (or adds) the message template for a caption key.
func (r *CaptionRegistry) Register(key, template string) {
	r.messages[key] = template
}

// Format substitutes {name}-style placeholders from c.Variables into the
// registered template for c.Key.
func (r *CaptionRegistry) Format(c Caption) string {
	template, ok := r.messages[c.Key]
	if !ok {
		template = c.Key
	}
	for name, value := range c.Variables {
		template = strings.ReplaceAll(template, "{"+name+"}", value)
	}
	return template
}
