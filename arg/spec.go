package arg

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Suppress is the help text sentinel that hides an argument from rendered help.
const Suppress = "SUPPRESS"

var ErrNotAChoice = errors.New("value is not one of the allowed choices")

// Spec is the fully resolved shape of one argument of one command.
// Specs are built once by the compiler and never modified afterwards.
type Spec struct {
	Name     string   `json:"name"`
	Kind     Kind     `json:"kind"`
	Arity    Arity    `json:"arity"`
	Action   Action   `json:"action"`
	Required bool     `json:"required"`
	Type     string   `json:"type"`
	Default  any      `json:"default,omitempty"`
	Const    any      `json:"const,omitempty"`
	Choices  []any    `json:"choices,omitempty"`
	Aliases  []string `json:"aliases,omitempty"`
	Help     string   `json:"help,omitempty"`
	Hidden   bool     `json:"hidden,omitempty"`
	Metavars []string `json:"metavars,omitempty"`
	// Index is the position of the parameter in the handler declaration.
	Index int `json:"index"`

	Coerce func(string) (any, error) `json:"-"`
	// Custom is set for ActionCustom and names the registered action in CustomName.
	Custom     CustomFunc `json:"-"`
	CustomName string     `json:"custom,omitempty"`
}

// Flagged returns the name as typed on the command line ("--squared", "-a", "files").
func (s *Spec) Flagged() string {
	return s.Kind.Marker() + s.Name
}

// Names returns the flagged name followed by all aliases in declaration order.
func (s *Spec) Names() []string {
	return append([]string{s.Flagged()}, s.Aliases...)
}

func (s *Spec) Positional() bool {
	return s.Kind == Positional
}

// Values returns how many value tokens follow a flag or option name.
func (s *Spec) Values() Arity {
	if !s.Action.TakesValues() {
		return Exactly(0)
	}
	return s.Arity
}

// Convert coerces one raw token into the element type and checks it against the choices.
// Errors wrapping ErrNotAChoice signal an invalid choice, all others an invalid value.
func (s *Spec) Convert(raw string) (any, error) {
	var value any = raw
	if s.Coerce != nil {
		v, err := s.Coerce(raw)
		if err != nil {
			return nil, err
		}
		value = v
	}

	if len(s.Choices) == 0 {
		return value, nil
	}

	if choice, ok := s.Match(value); ok {
		return choice, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotAChoice, s.ChoiceList())
}

// Match looks up value in the choices, comparing by value first and by string form second.
// The matching choice literal is returned so that "2" binds to the declared 2.
func (s *Spec) Match(value any) (any, bool) {
	for _, choice := range s.Choices {
		if reflect.DeepEqual(choice, value) {
			return choice, true
		}
	}
	text := fmt.Sprint(value)
	for _, choice := range s.Choices {
		if fmt.Sprint(choice) == text {
			return choice, true
		}
	}
	return nil, false
}

// ChoiceList renders the choices for messages and help.
func (s *Spec) ChoiceList() string {
	parts := make([]string, 0, len(s.Choices))
	for _, choice := range s.Choices {
		if str, ok := choice.(string); ok {
			parts = append(parts, fmt.Sprintf("'%s'", str))
		} else {
			parts = append(parts, fmt.Sprint(choice))
		}
	}
	return strings.Join(parts, ", ")
}

// Labels returns the display labels for the values of this argument,
// one per value for fixed arities and exactly one otherwise.
func (s *Spec) Labels() []string {
	count := 1
	if n, ok := s.Arity.Fixed(); ok {
		count = n
	}

	switch {
	case len(s.Metavars) == count:
		return append([]string(nil), s.Metavars...)
	case len(s.Metavars) == 1:
		labels := make([]string, count)
		for i := range labels {
			labels[i] = s.Metavars[0]
		}
		return labels
	}

	label := s.Name
	if len(s.Choices) > 0 {
		parts := make([]string, 0, len(s.Choices))
		for _, choice := range s.Choices {
			parts = append(parts, fmt.Sprint(choice))
		}
		label = "{" + strings.Join(parts, ",") + "}"
	} else if !s.Positional() {
		label = strings.ToUpper(strings.ReplaceAll(s.Name, "-", "_"))
	}

	labels := make([]string, count)
	for i := range labels {
		labels[i] = label
	}
	return labels
}

func (s *Spec) String() string {
	return fmt.Sprintf("%s(%s, nargs=%s, action=%s, type=%s)", s.Flagged(), s.Kind, s.Arity, s.Action, s.Type)
}
