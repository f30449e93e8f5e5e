// Package compiler turns a handler's declared parameters and its documentation into
// the ordered argument specifications the binder matches input against.
package compiler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mwantia/argtree/annotation"
	"github.com/mwantia/argtree/arg"
	"github.com/mwantia/argtree/coerce"
	"github.com/mwantia/argtree/directive"
	"github.com/mwantia/argtree/errors"
)

type Options struct {
	// IgnoreDoc skips directive parsing; the whole text becomes the help.
	IgnoreDoc bool
	// IgnoreAnnotations compiles every parameter as a plain positional string.
	IgnoreAnnotations bool
}

// Result is the compiled grammar of one command.
type Result struct {
	Help  string
	Specs []*arg.Spec
}

// Compile builds one Spec per parameter, in declaration order. Directives found in doc
// override what the annotations declared. Every failure is an *errors.CompileError.
func Compile(params []Param, doc string, registry *coerce.Registry, opts Options) (*Result, error) {
	if registry == nil {
		registry = coerce.NewRegistry()
	}

	result := &Result{
		Specs: make([]*arg.Spec, 0, len(params)),
	}
	byName := make(map[string]*arg.Spec, len(params))

	for i, p := range params {
		if p.Name == "" {
			return nil, errors.Compile(fmt.Sprintf("#%d", i), "parameter name must not be empty")
		}
		if _, exists := byName[p.Name]; exists {
			return nil, errors.Compile(p.Name, "duplicate parameter name")
		}

		spec, err := compileParam(i, p, registry, opts)
		if err != nil {
			return nil, err
		}

		result.Specs = append(result.Specs, spec)
		byName[p.Name] = spec
	}

	if opts.IgnoreDoc {
		result.Help = trimDoc(doc)
	} else {
		parsed, err := directive.Parse(doc)
		if err != nil {
			return nil, errors.CompileWrap(err, "", "invalid documentation")
		}
		if err := applyDoc(parsed, byName, registry); err != nil {
			return nil, err
		}
		result.Help = parsed.Help
	}

	if err := validate(result.Specs); err != nil {
		return nil, err
	}

	return result, nil
}

func compileParam(index int, p Param, registry *coerce.Registry, opts Options) (*arg.Spec, error) {
	var tokens []annotation.Token
	if !opts.IgnoreAnnotations {
		parsed, err := annotation.Parse(p.Annotation)
		if err != nil {
			return nil, errors.CompileWrap(err, p.Name, "invalid annotation")
		}
		tokens = append(parsed, p.Tokens...)
	}

	res, err := annotation.Resolve(tokens, registry)
	if err != nil {
		return nil, errors.CompileWrap(err, p.Name, "invalid annotation")
	}

	spec := &arg.Spec{
		Name:   p.Name,
		Kind:   arg.Positional,
		Arity:  arg.Implicit,
		Action: arg.ActionStore,
		Index:  index,
	}
	if res.HasKind {
		spec.Kind = res.Kind
		spec.Required = res.Required
	}
	if res.HasArity {
		spec.Arity = res.Arity
	}

	if err := resolveAction(spec, p, res); err != nil {
		return nil, err
	}
	if err := resolveType(spec, p, res, registry); err != nil {
		return nil, err
	}
	if res.HasChoices {
		spec.Choices = res.Choices
	}

	resolveDefault(spec, p)
	return spec, nil
}

func resolveAction(spec *arg.Spec, p Param, res *annotation.Resolution) error {
	flagged := spec.Kind != arg.Positional

	switch {
	case res.HasAction:
		spec.Action = res.Action
		spec.Custom, spec.CustomName = res.Custom, res.CustomName
	case flagged && isBool(p.Default):
		if p.Default.(bool) {
			spec.Action = arg.ActionStoreFalse
		} else {
			spec.Action = arg.ActionStoreTrue
		}
	case flagged && !res.HasArity && !res.HasType && p.Default == nil && p.GoType != nil && p.GoType.Kind() == reflect.Bool:
		spec.Action = arg.ActionStoreTrue
	}

	if !flagged {
		if spec.Action != arg.ActionStore {
			return errors.Compile(p.Name, "action '%s' requires a flag or option", spec.Action)
		}
		return nil
	}

	if !spec.Action.TakesValues() {
		if res.HasArity {
			return errors.Compile(p.Name, "action '%s' does not take values, arity '%s' is not allowed", spec.Action, spec.Arity)
		}
		if res.HasChoices {
			return errors.Compile(p.Name, "action '%s' does not take values, choices are not allowed", spec.Action)
		}
		return nil
	}

	if spec.Arity.Open() {
		return errors.Compile(p.Name, "%s '%s' cannot take an open arity '%s'", spec.Kind, spec.Flagged(), spec.Arity)
	}
	return nil
}

func resolveType(spec *arg.Spec, p Param, res *annotation.Resolution, registry *coerce.Registry) error {
	switch spec.Action {
	case arg.ActionStoreTrue, arg.ActionStoreFalse:
		spec.Type = coerce.Bool
		if res.HasType && res.Type != coerce.Bool {
			return errors.Compile(p.Name, "action '%s' implies type bool, not '%s'", spec.Action, res.Type)
		}
		return nil
	case arg.ActionCount:
		spec.Type = coerce.Int
		if res.HasType && res.Type != coerce.Int {
			return errors.Compile(p.Name, "'count' implies type int and does not accept '%s'", res.Type)
		}
		return nil
	case arg.ActionStoreConst:
		return nil
	}

	switch {
	case res.HasType:
		spec.Type = res.Type
	case res.HasChoices:
		spec.Type = coerce.String
		if name := commonType(res.Choices); name != "" {
			spec.Type = name
		}
	default:
		spec.Type = coerce.String
		if name := elemType(p.GoType); name != "" && registry.Has(name) {
			spec.Type = name
		}
	}

	fn, err := registry.Lookup(spec.Type)
	if err != nil {
		return errors.CompileWrap(err, p.Name, "invalid type")
	}
	spec.Coerce = fn
	return nil
}

// commonType picks int or float when every choice is numeric. Mixed choice lists stay
// strings and are matched by their string form.
func commonType(choices []any) string {
	name := ""
	for _, choice := range choices {
		var next string
		switch choice.(type) {
		case int:
			next = coerce.Int
		case float64:
			next = coerce.Float
		default:
			return ""
		}
		if name != "" && name != next {
			return ""
		}
		name = next
	}
	return name
}

func resolveDefault(spec *arg.Spec, p Param) {
	switch spec.Action {
	case arg.ActionStoreTrue:
		spec.Default = false
	case arg.ActionStoreFalse:
		spec.Default = true
	case arg.ActionStoreConst:
		spec.Const = p.Default
	case arg.ActionCount:
		spec.Default = 0
		if n, ok := p.Default.(int); ok {
			spec.Default = n
		}
	default:
		spec.Default = p.Default
	}

	if spec.Positional() {
		switch spec.Arity.Kind {
		case arg.ArityZeroOrOne, arg.ArityZeroOrMore:
			spec.Required = false
		default:
			spec.Required = !p.hasDefault()
		}
	}
}

func applyDoc(doc *directive.Doc, byName map[string]*arg.Spec, registry *coerce.Registry) error {
	for _, dir := range doc.Targets() {
		if _, ok := byName[dir.Target]; !ok {
			return errors.Compile(dir.Target, ":%s directive names no such parameter", dir.Name)
		}
	}

	for name, help := range doc.Params {
		byName[name].Help = help
		if doc.Hidden[name] {
			byName[name].Hidden = true
			byName[name].Help = arg.Suppress
		}
	}

	for name, aliases := range doc.Aliases {
		spec := byName[name]
		if spec.Positional() {
			return errors.Compile(name, "aliases are only allowed for flags and options")
		}
		spec.Aliases = append(spec.Aliases, aliases...)
	}

	for name, expr := range doc.Choices {
		spec := byName[name]
		if !spec.Action.TakesValues() {
			return errors.Compile(name, "action '%s' does not take values, choices are not allowed", spec.Action)
		}
		values, err := registry.ParseLiterals(expr)
		if err != nil {
			return errors.CompileWrap(err, name, "invalid choices '%s'", expr)
		}
		spec.Choices = values
	}

	for name, labels := range doc.Metavars {
		spec := byName[name]
		if !spec.Action.TakesValues() {
			return errors.Compile(name, "action '%s' does not take values, metavars are not allowed", spec.Action)
		}
		want := 1
		if n, ok := spec.Arity.Fixed(); ok {
			want = n
		}
		if len(labels) != want {
			return errors.Compile(name, "%d metavars given, arity '%s' requires %d", len(labels), spec.Arity, want)
		}
		spec.Metavars = labels
	}

	return nil
}

func validate(specs []*arg.Spec) error {
	names := make(map[string]string)
	var open *arg.Spec

	for _, spec := range specs {
		if spec.Positional() {
			if open != nil {
				return errors.Compile(spec.Name, "positional follows '%s' which takes '%s' values", open.Name, open.Arity)
			}
			if spec.Arity.Open() {
				open = spec
			}
		} else {
			for _, name := range spec.Names() {
				if owner, exists := names[name]; exists {
					return errors.Compile(spec.Name, "name '%s' is already used by '%s'", name, owner)
				}
				names[name] = spec.Name
			}
		}

		if err := validateChoices(spec); err != nil {
			return err
		}
	}

	return nil
}

func validateChoices(spec *arg.Spec) error {
	if len(spec.Choices) == 0 || spec.Default == nil {
		return nil
	}

	values := []any{spec.Default}
	if rv := reflect.ValueOf(spec.Default); rv.Kind() == reflect.Slice {
		values = values[:0]
		for i := 0; i < rv.Len(); i++ {
			values = append(values, rv.Index(i).Interface())
		}
	}

	for _, value := range values {
		if _, ok := spec.Match(value); !ok {
			return errors.Compile(spec.Name, "default %v must be one of the choices %s", value, spec.ChoiceList())
		}
	}
	return nil
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func trimDoc(doc string) string {
	var lines []string
	for _, line := range strings.Split(doc, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}
