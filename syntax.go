package cloudtree

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"syscall"
	"unsafe"

	"github.com/ckarenz/wordwrap"
)

// buildSyntax renders the canonical usage string for the path from root to
// node, e.g. "give <player> <item> [amount]", used as InvalidSyntaxError's
// CorrectSyntax and as the one-line summary in help output.
func buildSyntax[C any](node *CommandNode[C]) string {
	var parts []string
	for n := node; n != nil && n.component != nil; n = n.parent {
		parts = append([]string{syntaxFragment(n.component)}, parts...)
	}
	return strings.Join(parts, " ")
}

func syntaxFragment[C any](comp *erasedComponent[C]) string {
	switch comp.Type {
	case ComponentLiteral:
		return comp.Name
	case ComponentRequired:
		return "<" + comp.Name + ">"
	case ComponentOptional:
		return "[" + comp.Name + "]"
	default:
		return comp.Name
	}
}

// UsageWriter formats help text for a CommandNode subtree, generalizing the
// teacher's two-column flag/command layout to cloudtree's node-per-edge
// model instead of gargle's flat Command/Flag/Arg triad.
type UsageWriter struct {
	Indent         string
	Divider        string
	MaxFirstColumn int
	MaxLineWidth   int
	Writer         io.Writer
}

// DefaultUsageWriter mirrors the teacher's defaultUsage singleton.
func DefaultUsageWriter() *UsageWriter {
	return &UsageWriter{Indent: "  ", Divider: "  ", MaxFirstColumn: 35}
}

// FormatUsage writes usage for the command reached at node: the one-line
// syntax summary, the child literals (subcommands) or, only when the node
// has no literal children, its required/optional arguments, and the flags
// of the command at node. A package-level generic function, since Go methods
// cannot carry their own type parameters (design notes §9).
func FormatUsage[C any](u *UsageWriter, node *CommandNode[C]) error {
	w := u.Writer
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w, "Usage:", buildSyntax(node))

	maxWidth := u.MaxLineWidth
	if maxWidth == 0 {
		if width, err := ttyWidth(); err == nil {
			maxWidth = width
		} else {
			maxWidth = 80
		}
	}

	var literals, args []*CommandNode[C]
	for _, child := range node.orderedChildren() {
		switch child.component.Type {
		case ComponentLiteral:
			literals = append(literals, child)
		default:
			args = append(args, child)
		}
	}
	sort.Slice(literals, func(i, j int) bool { return literals[i].component.Name < literals[j].component.Name })

	if len(literals) != 0 {
		fmt.Fprintln(w, "\nSubcommands:")
		rows := make([][2]string, 0, len(literals))
		for _, child := range literals {
			rows = append(rows, [2]string{u.Indent + child.component.Name, child.component.Description.Description})
		}
		u.formatTwoColumns(w, rows, maxWidth)
	} else if len(args) != 0 {
		fmt.Fprintln(w, "\nArguments:")
		rows := make([][2]string, 0, len(args))
		for _, child := range args {
			rows = append(rows, [2]string{u.Indent + syntaxFragment(child.component), child.component.Description.Description})
		}
		u.formatTwoColumns(w, rows, maxWidth)
	}

	if node.command != nil && len(node.command.Flags) != 0 {
		fmt.Fprintln(w, "\nFlags:")
		rows := make([][2]string, 0, len(node.command.Flags))
		for _, flag := range node.command.Flags {
			rows = append(rows, [2]string{u.Indent + flagSyntax(flag), flag.Description.Description})
		}
		u.formatTwoColumns(w, rows, maxWidth)
	}

	return nil
}

func flagSyntax[C any](flag *erasedFlagComponent[C]) string {
	var s string
	if flag.Short != 0 {
		s += "-" + string(flag.Short) + ", "
	}
	s += "--" + flag.Name
	if !flag.presenceOnly {
		placeholder := flag.Placeholder
		if placeholder == "" {
			placeholder = "VALUE"
		}
		s += " " + placeholder
	}
	return s
}

func (u *UsageWriter) formatTwoColumns(w io.Writer, rows [][2]string, width int) {
	var leftWidth int
	for _, row := range rows {
		if size := len(row[0]); size > leftWidth {
			leftWidth = size
		}
	}
	if u.MaxFirstColumn != 0 && leftWidth > u.MaxFirstColumn {
		leftWidth = u.MaxFirstColumn
	}

	for _, row := range rows {
		leftScan := wordwrap.NewScanner(strings.NewReader(row[0]), leftWidth)
		rightScan := wordwrap.NewScanner(strings.NewReader(row[1]), width-leftWidth-len(u.Divider))
		for {
			left, leftErr := leftScan.ReadLine()
			right, rightErr := rightScan.ReadLine()
			if leftErr == io.EOF && rightErr == io.EOF {
				break
			}
			fmt.Fprintf(w, "%-*s%s%s\n", leftWidth, left, u.Divider, right)
		}
	}
}

func ttyWidth() (int, error) {
	type windowSize struct {
		Rows    uint16
		Columns uint16
		Width   uint16
		Height  uint16
	}

	ws := &windowSize{}
	retCode, _, _ := syscall.Syscall(
		syscall.SYS_IOCTL,
		uintptr(syscall.Stdin),
		uintptr(syscall.TIOCGWINSZ),
		uintptr(unsafe.Pointer(ws)))
	if int(retCode) == -1 {
		return 0, errors.New("no TTY enabled")
	}
	return int(ws.Columns), nil
}
