package annotation

import (
	"fmt"

	"github.com/mwantia/argtree/arg"
	"github.com/mwantia/argtree/coerce"
)

// Resolution is the folded result of an annotation. Every field is only meaningful
// when its matching Has flag is set; unset fields fall back to compiler defaults.
type Resolution struct {
	Kind     arg.Kind
	Required bool
	HasKind  bool

	Arity    arg.Arity
	HasArity bool

	Action     arg.Action
	Custom     arg.CustomFunc
	CustomName string
	HasAction  bool

	Type    string
	HasType bool

	Choices    []any
	HasChoices bool
}

// Resolve folds the tokens left to right. Each concern may be set once; a second
// kind, arity, action or choice token, or a second differing type, is rejected.
func Resolve(tokens []Token, registry *coerce.Registry) (*Resolution, error) {
	res := &Resolution{}

	for _, token := range tokens {
		switch token.Tag {
		case TagKind:
			if res.HasKind {
				return nil, fmt.Errorf("duplicate kind '%s'", token)
			}
			res.Kind, res.Required, res.HasKind = token.Kind, token.Required, true

		case TagArity:
			if res.HasArity {
				return nil, fmt.Errorf("duplicate arity '%s'", token)
			}
			res.Arity, res.HasArity = token.Arity, true
			if err := res.setType(token.Type, registry); err != nil {
				return nil, err
			}

		case TagAction:
			if res.HasAction {
				return nil, fmt.Errorf("duplicate action '%s'", token)
			}
			res.Action, res.HasAction = token.Action, true
			if token.Action == arg.ActionCustom {
				fn, ok := registry.Action(token.Custom)
				if !ok {
					return nil, fmt.Errorf("unknown action '%s'", token.Custom)
				}
				res.Custom, res.CustomName = fn, token.Custom
			}
			if err := res.setType(token.Type, registry); err != nil {
				return nil, err
			}

		case TagType:
			if err := res.setType(token.Type, registry); err != nil {
				return nil, err
			}

		case TagChoices:
			if res.HasChoices {
				return nil, fmt.Errorf("duplicate choices '%s'", token)
			}
			values := token.Values
			if token.Expr != "" {
				parsed, err := registry.ParseLiterals(token.Expr)
				if err != nil {
					return nil, fmt.Errorf("invalid choices '%s': %w", token.Expr, err)
				}
				values = parsed
			}
			if len(values) == 0 {
				return nil, fmt.Errorf("choices must not be empty")
			}
			res.Choices, res.HasChoices = values, true

		default:
			return nil, fmt.Errorf("unsupported annotation token '%s'", token)
		}
	}

	return res, nil
}

func (r *Resolution) setType(name string, registry *coerce.Registry) error {
	if name == "" || name == "any" || name == "Any" {
		return nil
	}
	if !registry.Has(name) {
		return fmt.Errorf("unknown type '%s'", name)
	}
	if r.HasType && canonical(r.Type) != canonical(name) {
		return fmt.Errorf("conflicting types '%s' and '%s'", r.Type, name)
	}

	r.Type, r.HasType = name, true
	return nil
}

func canonical(name string) string {
	if name == "string" {
		return coerce.String
	}
	return name
}
