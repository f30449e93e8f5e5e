// Package binder matches the argument tokens of one command against its specifications.
//
// A token is a flag or option only if it exactly matches a declared name or alias.
// Everything else is data and fills the positionals in declaration order, so a
// negative number like "-3" is a value unless a flag "-3" was declared. A lone "--"
// ends flag recognition.
package binder

import (
	stderrors "errors"

	"github.com/mwantia/argtree/arg"
	"github.com/mwantia/argtree/errors"
)

const terminator = "--"

type slot struct {
	spec   *arg.Spec
	values []any
	closed bool
}

func (s *slot) capacity() int {
	switch s.spec.Arity.Kind {
	case arg.ArityExactly:
		return s.spec.Arity.N
	case arg.ArityZeroOrMore, arg.ArityOneOrMore:
		return -1
	default:
		return 1
	}
}

func (s *slot) full() bool {
	if s.closed {
		return true
	}
	c := s.capacity()
	return c >= 0 && len(s.values) >= c
}

type state struct {
	path    []string
	tokens  []string
	pos     int
	flags   map[string]*arg.Spec
	slots   []*slot
	values  map[string]any
	present map[string]bool
	counts  map[string]int
	extra   []string
	literal bool

	// occurrences keeps the raw value tokens of custom actions for rendering.
	occurrences map[string][][]string
}

// Bind matches tokens against specs. path is only used to annotate errors.
// All failures are *errors.DispatchError values.
func Bind(path []string, specs []*arg.Spec, tokens []string) (*Bound, error) {
	s := &state{
		path:    path,
		tokens:  tokens,
		flags:   make(map[string]*arg.Spec),
		values:  make(map[string]any),
		present: make(map[string]bool),
		counts:  make(map[string]int),

		occurrences: make(map[string][][]string),
	}

	for _, spec := range specs {
		if spec.Positional() {
			s.slots = append(s.slots, &slot{spec: spec})
			continue
		}
		for _, name := range spec.Names() {
			s.flags[name] = spec
		}
	}

	for s.pos < len(s.tokens) {
		token := s.tokens[s.pos]
		s.pos++

		if !s.literal && token == terminator {
			s.literal = true
			continue
		}

		if spec, ok := s.flag(token); ok {
			s.closeOpen()
			if err := s.consumeFlag(spec, token); err != nil {
				return nil, err
			}
			continue
		}

		if err := s.consumeData(token); err != nil {
			return nil, err
		}
	}

	return s.finish(specs)
}

func (s *state) flag(token string) (*arg.Spec, bool) {
	if s.literal {
		return nil, false
	}
	spec, ok := s.flags[token]
	return spec, ok
}

// isValue reports whether the token at i may be consumed as a value.
func (s *state) isValue(i int) bool {
	if i >= len(s.tokens) {
		return false
	}
	if s.literal {
		return true
	}
	token := s.tokens[i]
	_, isFlag := s.flags[token]
	return !isFlag && token != terminator
}

// closeOpen ends an open positional run that already holds a value.
func (s *state) closeOpen() {
	for _, sl := range s.slots {
		if sl.closed || sl.full() {
			continue
		}
		if sl.capacity() < 0 && len(sl.values) > 0 {
			sl.closed = true
		}
		return
	}
}

func (s *state) consumeFlag(spec *arg.Spec, token string) error {
	s.present[spec.Name] = true

	switch spec.Action {
	case arg.ActionStoreTrue:
		s.values[spec.Name] = true
		return nil
	case arg.ActionStoreFalse:
		s.values[spec.Name] = false
		return nil
	case arg.ActionStoreConst:
		s.values[spec.Name] = spec.Const
		return nil
	case arg.ActionCount:
		s.counts[spec.Name]++
		return nil
	}

	start := s.pos
	value, err := s.flagValue(spec, token)
	if err != nil {
		return err
	}

	switch spec.Action {
	case arg.ActionAppend:
		list, _ := s.values[spec.Name].([]any)
		s.values[spec.Name] = append(list, value)
	case arg.ActionExtend:
		list, _ := s.values[spec.Name].([]any)
		if many, ok := value.([]any); ok {
			list = append(list, many...)
		} else {
			list = append(list, value)
		}
		s.values[spec.Name] = list
	case arg.ActionCustom:
		previous, ok := s.values[spec.Name]
		if !ok {
			previous = spec.Default
		}
		next, err := spec.Custom(previous, value)
		if err != nil {
			de := errors.Dispatch(errors.KindInvalidValue, s.path)
			de.Argument = spec.Flagged()
			de.Token = token
			de.Expected = spec.CustomName + " action"
			de.Err = err
			return de
		}
		s.values[spec.Name] = next
		s.occurrences[spec.Name] = append(s.occurrences[spec.Name], s.tokens[start:s.pos])
	default:
		s.values[spec.Name] = value
	}
	return nil
}

// flagValue consumes the value tokens of a flag. A ZeroOrOne flag given without a
// value binds its Const when one is set and its Default otherwise, so a bare
// "--level" on a parameter defaulting to 1 binds 1 rather than nil.
func (s *state) flagValue(spec *arg.Spec, token string) (any, error) {
	switch spec.Arity.Kind {
	case arg.ArityZeroOrOne:
		if !s.isValue(s.pos) {
			if spec.Const != nil {
				return spec.Const, nil
			}
			return spec.Default, nil
		}
		raw := s.tokens[s.pos]
		s.pos++
		return s.convert(spec, raw)

	case arg.ArityExactly:
		values := make([]any, 0, spec.Arity.N)
		for i := 0; i < spec.Arity.N; i++ {
			if !s.isValue(s.pos) {
				return nil, s.missing(spec, token)
			}
			value, err := s.convert(spec, s.tokens[s.pos])
			if err != nil {
				return nil, err
			}
			values = append(values, value)
			s.pos++
		}
		return values, nil

	default:
		if !s.isValue(s.pos) {
			return nil, s.missing(spec, token)
		}
		raw := s.tokens[s.pos]
		s.pos++
		return s.convert(spec, raw)
	}
}

func (s *state) consumeData(token string) error {
	for _, sl := range s.slots {
		if sl.full() {
			continue
		}
		value, err := s.convert(sl.spec, token)
		if err != nil {
			return err
		}
		sl.values = append(sl.values, value)
		s.present[sl.spec.Name] = true
		return nil
	}

	s.extra = append(s.extra, token)
	return nil
}

func (s *state) convert(spec *arg.Spec, raw string) (any, error) {
	value, err := spec.Convert(raw)
	if err == nil {
		return value, nil
	}

	if stderrors.Is(err, arg.ErrNotAChoice) {
		de := errors.Dispatch(errors.KindInvalidChoice, s.path)
		de.Argument = spec.Flagged()
		de.Token = raw
		de.Expected = spec.ChoiceList()
		return nil, de
	}

	de := errors.Dispatch(errors.KindInvalidValue, s.path)
	de.Argument = spec.Flagged()
	de.Token = raw
	de.Expected = spec.Type + " value"
	de.Err = err
	return nil, de
}

func (s *state) missing(spec *arg.Spec, token string) error {
	de := errors.Dispatch(errors.KindMissingArgument, s.path)
	de.Argument = token
	de.Expected = spec.Values().Describe()
	return de
}

func (s *state) finish(specs []*arg.Spec) (*Bound, error) {
	bySlot := make(map[string]*slot, len(s.slots))
	for _, sl := range s.slots {
		bySlot[sl.spec.Name] = sl
	}

	for _, spec := range specs {
		if spec.Positional() {
			sl := bySlot[spec.Name]
			if len(sl.values) == 0 && !spec.Required {
				continue
			}
			if len(sl.values) < spec.Arity.Min() {
				return nil, s.missing(spec, spec.Name)
			}
			continue
		}
		if spec.Required && !s.present[spec.Name] {
			return nil, s.missing(spec, spec.Flagged())
		}
	}

	if len(s.extra) > 0 {
		de := errors.Dispatch(errors.KindUnexpectedArgument, s.path)
		de.Token = s.extra[0]
		return nil, de
	}

	bound := &Bound{
		Values:  make(map[string]any, len(specs)),
		Args:    make([]any, len(specs)),
		specs:   specs,
		present: s.present,

		occurrences: s.occurrences,
	}

	for i, spec := range specs {
		var value any
		if spec.Positional() {
			value = positionalValue(spec, bySlot[spec.Name].values)
		} else {
			value = s.flagResult(spec)
		}
		bound.Values[spec.Name] = value
		bound.Args[i] = value
	}

	return bound, nil
}

func positionalValue(spec *arg.Spec, values []any) any {
	if len(values) == 0 {
		if spec.Default != nil || !spec.Arity.Multiple() {
			return spec.Default
		}
		return []any{}
	}
	if spec.Arity.Multiple() {
		return values
	}
	return values[0]
}

func (s *state) flagResult(spec *arg.Spec) any {
	if spec.Action == arg.ActionCount {
		base, _ := spec.Default.(int)
		return base + s.counts[spec.Name]
	}
	if value, ok := s.values[spec.Name]; ok {
		return value
	}
	return spec.Default
}
