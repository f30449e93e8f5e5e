// Package help renders usage lines and command descriptions from the command tree.
package help

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mwantia/argtree/arg"
	"github.com/mwantia/argtree/tree"
	"golang.org/x/term"
)

const defaultWidth = 80

type Renderer struct {
	Prog  string
	Width int
	Color bool

	Description string
}

// New returns a renderer sized to the terminal on stdout. Colour is enabled only on a
// terminal and when neither NO_COLOR nor TERM=dumb ask otherwise.
func New(prog string) *Renderer {
	r := &Renderer{
		Prog:  prog,
		Width: defaultWidth,
	}

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if cols, _, err := term.GetSize(fd); err == nil && cols > 20 {
			r.Width = cols
		}
		r.Color = colorAllowed()
	}
	return r
}

func colorAllowed() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	termName := os.Getenv("TERM")
	return termName != "" && termName != "dumb"
}

func (r *Renderer) heading(text string) string {
	c := color.New(color.Bold, color.FgCyan)
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

// Usage returns the one-line synopsis of node.
func (r *Renderer) Usage(node *tree.Node) string {
	parts := []string{}
	if r.Prog != "" {
		parts = append(parts, r.Prog)
	}
	parts = append(parts, node.Path()...)

	if !node.HasHandler() {
		if candidates := node.Candidates(); len(candidates) > 0 {
			parts = append(parts, "{"+strings.Join(candidates, ",")+"}", "...")
		}
		return strings.Join(parts, " ")
	}

	var positionals []string
	for _, spec := range node.Specs {
		if spec.Hidden {
			continue
		}
		if spec.Positional() {
			positionals = append(positionals, positionalUsage(spec))
			continue
		}
		parts = append(parts, flagUsage(spec))
	}
	return strings.Join(append(parts, positionals...), " ")
}

func flagUsage(spec *arg.Spec) string {
	text := strings.Join(append([]string{spec.Flagged()}, valueUsage(spec)...), " ")
	if spec.Required {
		return text
	}
	return "[" + text + "]"
}

func valueUsage(spec *arg.Spec) []string {
	if !spec.Action.TakesValues() {
		return nil
	}

	labels := spec.Labels()
	switch spec.Arity.Kind {
	case arg.ArityZeroOrOne:
		return []string{"[" + labels[0] + "]"}
	case arg.ArityZeroOrMore:
		return []string{"[" + labels[0] + " ...]"}
	case arg.ArityOneOrMore:
		return []string{labels[0], "[" + labels[0] + " ...]"}
	default:
		return labels
	}
}

func positionalUsage(spec *arg.Spec) string {
	labels := spec.Labels()
	switch spec.Arity.Kind {
	case arg.ArityZeroOrOne:
		return "[" + labels[0] + "]"
	case arg.ArityZeroOrMore:
		return "[" + labels[0] + " ...]"
	case arg.ArityOneOrMore:
		return labels[0] + " [" + labels[0] + " ...]"
	}

	text := strings.Join(labels, " ")
	if !spec.Required {
		return "[" + text + "]"
	}
	return text
}

// Command writes the full help of node: usage, description, arguments and subcommands.
func (r *Renderer) Command(w io.Writer, node *tree.Node) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", r.heading("usage:"), r.Usage(node))
	if node.Help != "" {
		fmt.Fprintf(&b, "\n%s\n", r.wrap(node.Help))
	}
	if len(node.Aliases) > 0 {
		fmt.Fprintf(&b, "\n%s %s\n", r.heading("aliases:"), joinPaths(node.Aliases))
	}

	var positionals, options [][2]string
	for _, spec := range node.Specs {
		if spec.Hidden {
			continue
		}
		if spec.Positional() {
			positionals = append(positionals, [2]string{spec.Labels()[0], describe(spec)})
		} else {
			options = append(options, [2]string{optionLabel(spec), describe(spec)})
		}
	}

	r.section(&b, "positional arguments:", positionals)
	r.section(&b, "options:", options)

	var commands [][2]string
	for _, child := range node.Children() {
		commands = append(commands, [2]string{child.Segment, summary(child)})
	}
	r.section(&b, "commands:", commands)

	_, err := io.WriteString(w, b.String())
	return err
}

// Overview writes the list of every command below root.
func (r *Renderer) Overview(w io.Writer, root *tree.Node) error {
	var b strings.Builder

	usage := "<command> [arguments]"
	if r.Prog != "" {
		usage = r.Prog + " " + usage
	}
	fmt.Fprintf(&b, "%s %s\n", r.heading("usage:"), usage)
	if r.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", r.wrap(r.Description))
	}

	var commands [][2]string
	root.Walk(func(node *tree.Node) bool {
		if node.HasHandler() {
			name := node.Name()
			if len(node.Aliases) > 0 {
				name = fmt.Sprintf("%s (%s)", name, joinPaths(node.Aliases))
			}
			commands = append(commands, [2]string{name, node.Help})
		}
		return true
	})
	r.section(&b, "commands:", commands)

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) section(b *strings.Builder, title string, rows [][2]string) {
	if len(rows) == 0 {
		return
	}

	fmt.Fprintf(b, "\n%s\n", r.heading(title))

	tw := tabwriter.NewWriter(b, 0, 4, 3, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "  %s\t%s\n", row[0], row[1])
	}
	tw.Flush()
}

func (r *Renderer) wrap(text string) string {
	width := r.Width
	if width <= 20 || len(text) <= width {
		return text
	}

	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		if line != "" && len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		if line != "" {
			line += " "
		}
		line += word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func optionLabel(spec *arg.Spec) string {
	text := strings.Join(append([]string{spec.Flagged()}, valueUsage(spec)...), " ")
	if len(spec.Aliases) > 0 {
		text = fmt.Sprintf("%s (%s)", text, strings.Join(spec.Aliases, ", "))
	}
	return text
}

func describe(spec *arg.Spec) string {
	text := spec.Help
	if spec.Action == arg.ActionStore && spec.Default != nil {
		if text != "" {
			text += " "
		}
		text += fmt.Sprintf("(default: %v)", spec.Default)
	}
	return text
}

func summary(node *tree.Node) string {
	if node.HasHandler() {
		text := node.Help
		if len(node.Aliases) > 0 {
			text = strings.TrimSpace(fmt.Sprintf("%s (aliases: %s)", text, joinPaths(node.Aliases)))
		}
		return text
	}
	return "{" + strings.Join(node.Candidates(), ",") + "}"
}

func joinPaths(paths [][]string) string {
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = strings.Join(path, " ")
	}
	return strings.Join(names, ", ")
}
