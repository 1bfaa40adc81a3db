package cloudtree

import (
	"fmt"
	"io"
	"os"
)

// HelpCommand builds a standard "help [command...]" command whose handler
// writes usage for the named subcommand path, or the manager's root if no
// path is given, generalizing the teacher's NewHelpCommand (usage.go) from
// a single flat command group to a walk over cloudtree's node tree. writer
// defaults to os.Stdout if nil.
func (m *CommandManager[C]) HelpCommand(writer io.Writer) *Command[C] {
	if writer == nil {
		writer = os.Stdout
	}
	uw := DefaultUsageWriter()
	uw.Writer = writer

	path := WithDefaultValue[C, []string](
		Optional[C, []string]("command", StringArrayParser[C]()),
		ConstantDefault[C, []string](nil),
	)

	cmd, err := NewCommandBuilder[C]("help").
		AddComponent(path).
		Handler(func(cmdCtx *CommandContext[C]) error {
			args, _ := ContextGet[[]string](cmdCtx, "command")
			node, err := m.resolveHelpPath(args)
			if err != nil {
				return err
			}
			return FormatUsage(uw, node)
		}).
		Build()
	if err != nil {
		// Only fails if the component ordering is invalid, which it never
		// is for this fixed, hand-built command.
		panic(err)
	}
	return cmd
}

// resolveHelpPath walks args as a sequence of literal subcommand names
// starting at the manager's root, mirroring writeCommandHelp's subcommand
// lookup in the teacher.
func (m *CommandManager[C]) resolveHelpPath(args []string) (*CommandNode[C], error) {
	node := m.root
nextArg:
	for _, arg := range args {
		for _, child := range node.children {
			if child.component.Type == ComponentLiteral && matchingAlias(child.component, arg) != "" {
				node = child
				continue nextArg
			}
		}
		return nil, fmt.Errorf("%q is not a valid command", arg)
	}
	return node, nil
}
