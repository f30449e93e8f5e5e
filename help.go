package argtree

import (
	"context"
	"io"

	tctx "github.com/mwantia/argtree/context"
	"github.com/mwantia/argtree/errors"
	"github.com/mwantia/argtree/tree"
)

const helpDoc = `Show the list of commands, or the help of one command.
:param command: path of the command to describe`

var helpFlags = []string{"-h", "--help"}

func (d *Dispatcher) initHelpCommand() error {
	_, err := d.Register(Command{
		Name: "help",
		Params: []Param{
			{Name: "command", Annotation: "ZeroOrMore"},
		},
		Doc:     helpDoc,
		Handler: d.helpCommand,
	})
	return err
}

func (d *Dispatcher) helpCommand(ctx context.Context, command []string) error {
	w := tctx.Stdout(ctx)
	if len(command) == 0 {
		return d.help.Overview(w, d.tree.Root())
	}

	node, ok := d.tree.Find(command...)
	if !ok {
		parent, matched, rest := d.tree.Resolve(command)
		de := errors.Dispatch(errors.KindUnknownCommand, append([]string{"help"}, matched...))
		de.Token = rest[0]
		de.Candidates = parent.Candidates()
		return de
	}
	return d.help.Command(w, node)
}

func (d *Dispatcher) writeHelp(w io.Writer, node *tree.Node) error {
	if node.IsRoot() {
		return d.help.Overview(w, node)
	}
	return d.help.Command(w, node)
}

// wantsHelp reports whether a help flag appears before "--" and node does not
// declare the flag itself.
func wantsHelp(node *tree.Node, rest []string) bool {
	declared := make(map[string]bool)
	for _, spec := range node.Specs {
		for _, name := range spec.Names() {
			declared[name] = true
		}
	}

	for _, token := range rest {
		if token == "--" {
			return false
		}
		for _, flag := range helpFlags {
			if token == flag && !declared[flag] {
				return true
			}
		}
	}
	return false
}
