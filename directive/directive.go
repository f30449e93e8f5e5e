// Package directive reads the structured lines of a command's documentation.
//
// Everything before the first directive line is the command description. A directive
// line has the form ":name target: payload"; the names param, alias, choices and
// metavar are understood, any other name is skipped.
package directive

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mwantia/argtree/arg"
)

const (
	Param   = "param"
	Alias   = "alias"
	Choices = "choices"
	Metavar = "metavar"
)

var pattern = regexp.MustCompile(`^:([A-Za-z_]+)(\s.*)?$`)

// Directive is one recognised directive line.
type Directive struct {
	Name    string
	Target  string
	Payload string
	// Line is the 1-based line number inside the documentation text.
	Line int
}

// Doc is the parsed documentation of one command. Maps are keyed by target name.
type Doc struct {
	Help string

	Params   map[string]string
	Hidden   map[string]bool
	Aliases  map[string][]string
	Choices  map[string]string
	Metavars map[string][]string

	// Directives holds all recognised directives in encounter order.
	Directives []Directive
}

// Targets returns every target named by a directive, in encounter order and without duplicates.
func (d *Doc) Targets() []Directive {
	seen := make(map[string]bool)
	targets := make([]Directive, 0, len(d.Directives))
	for _, dir := range d.Directives {
		if seen[dir.Target] {
			continue
		}
		seen[dir.Target] = true
		targets = append(targets, dir)
	}
	return targets
}

// Parse splits text into the command description and its directives.
func Parse(text string) (*Doc, error) {
	doc := &Doc{
		Params:   make(map[string]string),
		Hidden:   make(map[string]bool),
		Aliases:  make(map[string][]string),
		Choices:  make(map[string]string),
		Metavars: make(map[string][]string),
	}

	var description []string
	inDescription := true

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		match := pattern.FindStringSubmatch(line)
		if match == nil || !known(match[1]) {
			if inDescription && line != "" && !strings.HasPrefix(line, ":") {
				description = append(description, line)
			}
			continue
		}

		inDescription = false
		target, payload, _ := strings.Cut(match[2], ":")
		dir := Directive{
			Name:    match[1],
			Target:  strings.TrimSpace(target),
			Payload: strings.TrimSpace(payload),
			Line:    i + 1,
		}
		if dir.Target == "" || strings.ContainsAny(dir.Target, " \t") {
			return nil, fmt.Errorf("line %d: ':%s' directive requires a single target name", dir.Line, dir.Name)
		}

		if err := doc.apply(dir); err != nil {
			return nil, fmt.Errorf("line %d: ':%s %s': %w", dir.Line, dir.Name, dir.Target, err)
		}
		doc.Directives = append(doc.Directives, dir)
	}

	doc.Help = strings.Join(description, " ")
	return doc, nil
}

func known(name string) bool {
	switch name {
	case Param, Alias, Choices, Metavar:
		return true
	}
	return false
}

func (d *Doc) apply(dir Directive) error {
	switch dir.Name {
	case Param:
		if strings.HasPrefix(dir.Payload, arg.Suppress) {
			d.Hidden[dir.Target] = true
			d.Params[dir.Target] = ""
			return nil
		}
		d.Params[dir.Target] = dir.Payload

	case Alias:
		aliases := splitStrip(dir.Payload)
		if len(aliases) == 0 {
			return fmt.Errorf("requires at least one alias")
		}
		for _, alias := range aliases {
			if kind, name := arg.KindOf(alias); kind == arg.Positional || name == "" || strings.HasPrefix(name, "-") {
				return fmt.Errorf("alias '%s' must start with '-' or '--'", alias)
			}
		}
		d.Aliases[dir.Target] = append(d.Aliases[dir.Target], aliases...)

	case Choices:
		if dir.Payload == "" {
			return fmt.Errorf("requires at least one choice")
		}
		d.Choices[dir.Target] = dir.Payload

	case Metavar:
		labels := splitStrip(dir.Payload)
		if len(labels) == 0 {
			return fmt.Errorf("requires at least one metavar name")
		}
		for i, label := range labels {
			labels[i] = strings.Trim(label, `"'`)
		}
		d.Metavars[dir.Target] = labels
	}

	return nil
}

func splitStrip(payload string) []string {
	var parts []string
	for _, part := range strings.Split(payload, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
