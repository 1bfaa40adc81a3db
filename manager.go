package cloudtree

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ManagerSettings is the configuration surface in spec §6.
type ManagerSettings struct {
	// AllowUnsafeRegistration disables post-first-parse registration
	// guards and ambiguity checks.
	AllowUnsafeRegistration bool
	// OverrideExistingCommands allows re-registering the same command path.
	OverrideExistingCommands bool
	// ForceSuggestionLowercase normalises suggestion filtering to lowercase.
	ForceSuggestionLowercase bool
	// LiberalFlagParsing accepts combined presence flags ("-abc" expanding
	// to "-a -b -c") and, at a node that carries a command, consumes a
	// flag token before any child of that node is tried. When false, a
	// combined short-flag run is rejected unless it is a single
	// value-carrying flag, and a flag token is only recognized once no
	// child can consume it. Either way, flags are only recognized at a
	// node that carries a command, never before its positionals.
	LiberalFlagParsing bool
}

type registrationState int

const (
	stateRegistering registrationState = iota
	stateAfterRegistration
)

// CommandManager owns the command tree and every per-manager registry:
// preprocessors, postprocessors, the parser registry, the exception
// controller, and the caption registry (§6).
type CommandManager[C any] struct {
	Settings ManagerSettings

	root  *CommandNode[C]
	state registrationState

	preprocessors  []CommandPreprocessor[C]
	postprocessors []CommandPostprocessor[C]

	Parsers    *ParserRegistry[C]
	Exceptions *ExceptionController[C]
	Captions   *CaptionRegistry

	hasPermission HasPermissionFunc
	senderTypeOf  SenderTypeOfFunc[C]
	logger        *log.Logger
}

// NewCommandManager builds an empty manager. hasPermission resolves named
// permissions against a sender; senderTypeOf derives a sender's type tag
// for required-sender-type checks. Either may be nil if unused.
func NewCommandManager[C any](hasPermission HasPermissionFunc, senderTypeOf SenderTypeOfFunc[C]) *CommandManager[C] {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel})
	captions := NewCaptionRegistry()
	m := &CommandManager[C]{
		root:          &CommandNode[C]{meta: NewCommandMeta()},
		Parsers:       NewParserRegistry[C](),
		Captions:      captions,
		Exceptions:    NewExceptionController[C](captions, logger),
		hasPermission: hasPermission,
		senderTypeOf:  senderTypeOf,
		logger:        logger,
	}
	return m
}

// SetLogger overrides the logger used by default exception handlers.
func (m *CommandManager[C]) SetLogger(logger *log.Logger) {
	m.logger = logger
	m.Exceptions = NewExceptionController[C](m.Captions, logger)
}

// Root returns the tree's root node.
func (m *CommandManager[C]) Root() *CommandNode[C] { return m.root }

// AddPreprocessor registers a CommandPreprocessor, run in insertion order.
func (m *CommandManager[C]) AddPreprocessor(p CommandPreprocessor[C]) {
	m.preprocessors = append(m.preprocessors, p)
}

// AddPostprocessor registers a CommandPostprocessor, run in insertion order.
func (m *CommandManager[C]) AddPostprocessor(p CommandPostprocessor[C]) {
	m.postprocessors = append(m.postprocessors, p)
}

// checkRegistrationAllowed enforces the REGISTERING/AFTER_REGISTRATION
// state machine (§4.1): once any parse has occurred, registration is
// locked unless ALLOW_UNSAFE_REGISTRATION is set.
func (m *CommandManager[C]) checkRegistrationAllowed() error {
	if m.state == stateAfterRegistration && !m.Settings.AllowUnsafeRegistration {
		return &registrationLockedError{}
	}
	return nil
}

type registrationLockedError struct{}

func (e *registrationLockedError) Error() string {
	return "cloudtree: registration is locked after the first parse (set AllowUnsafeRegistration to override)"
}

// Register inserts cmd into the tree, splitting or extending shared
// prefixes (§4.1). Fails if the exact path is already owned by a command
// and OverrideExistingCommands is false, or if the insertion would
// introduce an ambiguous sibling and AllowUnsafeRegistration is false.
func (m *CommandManager[C]) Register(cmd *Command[C]) error {
	if err := m.checkRegistrationAllowed(); err != nil {
		return err
	}
	if len(cmd.Components) == 0 {
		return &emptyCommandError{}
	}

	node := m.root
	for _, comp := range cmd.Components {
		child, err := node.insertChild(comp, m.Settings.AllowUnsafeRegistration)
		if err != nil {
			return err
		}
		node = child
	}

	if node.command != nil && !m.Settings.OverrideExistingCommands {
		return &duplicateCommandError{}
	}
	node.command = cmd
	return nil
}

type emptyCommandError struct{}

func (e *emptyCommandError) Error() string { return "cloudtree: a command must have at least one component" }

type duplicateCommandError struct{}

func (e *duplicateCommandError) Error() string {
	return "cloudtree: command already registered (set OverrideExistingCommands to override)"
}

// Unregister removes cmd's owning node's command pointer. If the platform
// never re-registers a replacement, the trailing path of now-childless,
// command-less nodes is pruned back toward the root.
func (m *CommandManager[C]) Unregister(cmd *Command[C]) {
	node := m.findNodeForCommand(cmd)
	if node == nil {
		return
	}
	node.command = nil
	for node != nil && node.parent != nil && node.isLeaf() && node.command == nil {
		parent := node.parent
		parent.removeChild(node)
		node = parent
	}
}

func (m *CommandManager[C]) findNodeForCommand(cmd *Command[C]) *CommandNode[C] {
	node := m.root
	for _, comp := range cmd.Components {
		var next *CommandNode[C]
		for _, child := range node.children {
			if componentsEquivalent(child.component, comp) {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return node
}

// Parse runs the full parser pipeline of spec §4.2 over raw and returns
// the selected Command on success.
func (m *CommandManager[C]) Parse(cmdCtx *CommandContext[C], raw string) (*Command[C], error) {
	m.state = stateAfterRegistration

	input := NewCommandInput(raw)
	for _, pre := range m.preprocessors {
		if err := pre(cmdCtx, input); err != nil {
			return nil, err
		}
	}
	markProcessed(cmdCtx)
	if !wasProcessed(cmdCtx) { // asserted present; see preprocessor.go
		panic("cloudtree: processed marker missing after preprocessors")
	}

	if len(m.root.children) == 0 {
		return nil, &NoSuchCommandError{SuppliedCommand: strings.TrimSpace(raw)}
	}

	liberal := m.Settings.LiberalFlagParsing

	node := m.root
	for {
		input.SkipWhitespace()

		token := input.PeekString()
		isFlag := token != "" && node.command != nil && isFlagToken(token)

		// LIBERAL_FLAG_PARSING (§6) controls when a flag token is taken at
		// a node that carries a command (isFlag is false elsewhere). When
		// liberal, the flag is consumed before any child is tried. When
		// strict, a flag token is only recognized once no child can
		// consume anything further here.
		if isFlag && liberal {
			if err := parseFlagToken(node.command, cmdCtx, input, liberal); err != nil {
				return nil, err
			}
			continue
		}

		// Once no child can consume anything further (child == nil, err ==
		// nil), a command already matched at this node wins once the input
		// is empty; OPTIONAL children with defaults are walked
		// through on the way here by tryChildren itself.
		child, err := tryChildren(node, cmdCtx, input)
		if child != nil {
			node = child
			continue
		}

		if isFlag {
			if ferr := parseFlagToken(node.command, cmdCtx, input, liberal); ferr != nil {
				return nil, ferr
			}
			continue
		}

		if err != nil {
			return nil, err
		}

		if node.command != nil && input.IsEmpty(true) {
			break
		}
		if node == m.root {
			return nil, &NoSuchCommandError{SuppliedCommand: token}
		}
		return nil, &InvalidSyntaxError{CorrectSyntax: buildSyntax(node)}
	}

	cmd := node.command

	permResult := EvaluatePermission(cmd.Permission, any(cmdCtx.Sender), m.hasPermission)
	if !permResult.Allowed {
		return nil, &NoPermissionError{Result: permResult}
	}

	if len(cmd.SenderTypes) > 0 && m.senderTypeOf != nil {
		actual := m.senderTypeOf(cmdCtx.Sender)
		allowed := false
		for _, t := range cmd.SenderTypes {
			if t == actual {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, &InvalidCommandSenderError{RequiredTypes: cmd.SenderTypes, ActualType: actual}
		}
	}

	for _, post := range m.postprocessors {
		if err := post(cmdCtx); err != nil {
			return nil, err
		}
	}

	return cmd, nil
}

// tryChildren attempts node's ordered children against input, implementing
// the per-step rules of §4.2 step 3. On success it returns the matched
// child (input is advanced to reflect what that child consumed); on
// failure with no match it returns the first REQUIRED parse error seen (if
// any, for surfacing as ArgumentParseException).
func tryChildren[C any](node *CommandNode[C], cmdCtx *CommandContext[C], input *CommandInput) (*CommandNode[C], error) {
	var firstErr error
	hadToken := !input.IsEmpty(true)

	for _, child := range node.orderedChildren() {
		comp := child.component

		switch comp.Type {
		case ComponentLiteral:
			attempt := input.Copy()
			token := attempt.ReadString()
			alias := matchingAlias(comp, token)
			if alias == "" {
				continue
			}
			cmdCtx.recordParsing(ParsingContext{Name: comp.Name, Consumed: token, Alias: alias})
			*input = *attempt
			if comp.Preprocessor != nil {
				if err := comp.Preprocessor(cmdCtx, input); err != nil {
					return nil, err
				}
			}
			return child, nil

		case ComponentRequired:
			attempt := input.Copy()
			startCursor := attempt.Cursor()
			err := comp.parser.parseInto(comp.Name, cmdCtx, attempt)
			if err == nil {
				consumed := strings.TrimSpace(attempt.Raw()[startCursor:attempt.Cursor()])
				cmdCtx.recordParsing(ParsingContext{Name: comp.Name, Consumed: consumed})
				*input = *attempt
				if comp.Preprocessor != nil {
					if perr := comp.Preprocessor(cmdCtx, input); perr != nil {
						return nil, perr
					}
				}
				return child, nil
			}
			// Only surface an ArgumentParseException when a token was
			// actually present to misparse; an entirely absent required
			// argument is an InvalidSyntaxException (missing, not malformed).
			if hadToken && firstErr == nil {
				firstErr = NewArgumentParseError(comp.Name, err)
			}
			continue

		case ComponentOptional:
			attempt := input.Copy()
			startCursor := attempt.Cursor()
			err := comp.parser.parseInto(comp.Name, cmdCtx, attempt)
			if err == nil {
				consumed := strings.TrimSpace(attempt.Raw()[startCursor:attempt.Cursor()])
				cmdCtx.recordParsing(ParsingContext{Name: comp.Name, Consumed: consumed})
				*input = *attempt
				if comp.Preprocessor != nil {
					if perr := comp.Preprocessor(cmdCtx, input); perr != nil {
						return nil, perr
					}
				}
				return child, nil
			}
			if comp.hasDefault {
				if derr := comp.defaultValue.evaluate(comp.Name, comp, cmdCtx); derr != nil {
					return nil, derr
				}
			}
			return child, nil
		}
	}

	return nil, firstErr
}

// matchingAlias returns the exact registered alias matching token
// case-insensitively, or "" if none match.
func matchingAlias[C any](comp *erasedComponent[C], token string) string {
	for _, alias := range comp.Aliases {
		if strings.EqualFold(alias, token) {
			return alias
		}
	}
	return ""
}
