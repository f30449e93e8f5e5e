package binder

import (
	"fmt"

	"github.com/mwantia/argtree/arg"
)

// Bound is the result of a successful bind: one value per argument.
type Bound struct {
	// Values maps every argument name to its bound or default value.
	Values map[string]any
	// Args holds the same values in handler declaration order.
	Args []any

	specs   []*arg.Spec
	present map[string]bool

	occurrences map[string][][]string
}

// Given reports whether the argument appeared in the input.
func (b *Bound) Given(name string) bool {
	return b.present[name]
}

// Specs returns the argument specifications the values were bound against.
func (b *Bound) Specs() []*arg.Spec {
	return b.specs
}

// Tokens renders the bound values back into a canonical token list.
// Binding the returned tokens against the same specs yields the same values.
func (b *Bound) Tokens() []string {
	var (
		tokens      []string
		positionals []string
		separate    bool
	)

	flags := make(map[string]bool)
	for _, spec := range b.specs {
		if !spec.Positional() {
			for _, name := range spec.Names() {
				flags[name] = true
			}
		}
	}

	for _, spec := range b.specs {
		value := b.Values[spec.Name]

		if spec.Positional() {
			if !b.present[spec.Name] {
				continue
			}
			for _, text := range render(value) {
				separate = separate || flags[text] || text == terminator
				positionals = append(positionals, text)
			}
			continue
		}

		rendered := b.flagTokens(spec, value)
		tokens = append(tokens, rendered...)
		// A bare optional value would swallow the first positional on rebind.
		if n := len(rendered); n > 0 && spec.Arity.Kind == arg.ArityZeroOrOne && spec.Action.TakesValues() && flags[rendered[n-1]] {
			separate = true
		}
	}

	if separate && len(positionals) > 0 {
		tokens = append(tokens, terminator)
	}
	return append(tokens, positionals...)
}

func (b *Bound) flagTokens(spec *arg.Spec, value any) []string {
	name := spec.Flagged()

	switch spec.Action {
	case arg.ActionStoreTrue:
		if value == true {
			return []string{name}
		}
	case arg.ActionStoreFalse:
		if value == false {
			return []string{name}
		}
	case arg.ActionStoreConst:
		if b.present[spec.Name] {
			return []string{name}
		}
	case arg.ActionCount:
		n, _ := value.(int)
		if base, ok := spec.Default.(int); ok {
			n -= base
		}
		var tokens []string
		for i := 0; i < n; i++ {
			tokens = append(tokens, name)
		}
		return tokens
	case arg.ActionCustom:
		// Custom actions are replayed from their raw tokens.
		var tokens []string
		for _, raw := range b.occurrences[spec.Name] {
			tokens = append(tokens, name)
			tokens = append(tokens, raw...)
		}
		return tokens
	case arg.ActionAppend, arg.ActionExtend:
		if !b.present[spec.Name] {
			return nil
		}
		return b.repeatedTokens(spec, name, value)
	default:
		if !b.present[spec.Name] {
			return nil
		}
		if value == nil {
			return []string{name}
		}
		return append([]string{name}, render(value)...)
	}

	return nil
}

func (b *Bound) repeatedTokens(spec *arg.Spec, name string, value any) []string {
	items, _ := value.([]any)

	if spec.Action == arg.ActionExtend {
		size := 1
		if n, ok := spec.Arity.Fixed(); ok {
			size = n
		}
		var tokens []string
		for i := 0; i < len(items); i += size {
			end := min(i+size, len(items))
			tokens = append(tokens, name)
			tokens = append(tokens, render(items[i:end])...)
		}
		return tokens
	}

	var tokens []string
	for _, item := range items {
		tokens = append(tokens, name)
		tokens = append(tokens, render(item)...)
	}
	return tokens
}

func render(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		texts := make([]string, 0, len(v))
		for _, item := range v {
			texts = append(texts, fmt.Sprint(item))
		}
		return texts
	default:
		return []string{fmt.Sprint(v)}
	}
}
