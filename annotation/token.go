// Package annotation implements the small token algebra used to declare the shape of a
// handler parameter: its kind (flag, option), arity, element type, choices and action.
package annotation

import (
	"fmt"

	"github.com/mwantia/argtree/arg"
)

type Tag int

const (
	TagKind Tag = iota
	TagArity
	TagType
	TagChoices
	TagAction
)

func (t Tag) String() string {
	switch t {
	case TagKind:
		return "kind"
	case TagArity:
		return "arity"
	case TagType:
		return "type"
	case TagChoices:
		return "choices"
	default:
		return "action"
	}
}

// Token is one element of an annotation. Only the fields relevant to Tag are used;
// arity and action tokens may also carry an element type.
type Token struct {
	Tag      Tag
	Kind     arg.Kind
	Required bool
	Arity    arg.Arity
	Action   arg.Action
	Type     string
	Values   []any
	Expr     string
	// Custom names a registered custom action.
	Custom string
	// Text is the source form of the token, used in error messages.
	Text string
}

func (t Token) String() string {
	if t.Text != "" {
		return t.Text
	}
	return t.Tag.String()
}

func Flag() Token {
	return Token{Tag: TagKind, Kind: arg.Flag, Text: "Flag"}
}

func Option() Token {
	return Token{Tag: TagKind, Kind: arg.Option, Text: "Option"}
}

func RequiredFlag() Token {
	return Token{Tag: TagKind, Kind: arg.Flag, Required: true, Text: "RequiredFlag"}
}

func RequiredOption() Token {
	return Token{Tag: TagKind, Kind: arg.Option, Required: true, Text: "RequiredOption"}
}

func Exactly(n int, elem ...string) Token {
	return arityToken(arg.Exactly(n), fmt.Sprintf("Exactly%d", n), elem)
}

func ZeroOrOne(elem ...string) Token {
	return arityToken(arg.ZeroOrOne, "ZeroOrOne", elem)
}

func ZeroOrMore(elem ...string) Token {
	return arityToken(arg.ZeroOrMore, "ZeroOrMore", elem)
}

func OneOrMore(elem ...string) Token {
	return arityToken(arg.OneOrMore, "OneOrMore", elem)
}

func arityToken(arity arg.Arity, text string, elem []string) Token {
	t := Token{Tag: TagArity, Arity: arity, Text: text}
	if len(elem) > 0 {
		t.Type = elem[0]
	}
	return t
}

// Type names an element type from the coercion registry.
func Type(name string) Token {
	return Token{Tag: TagType, Type: name, Text: name}
}

// Choices restricts the argument to the given values.
func Choices(values ...any) Token {
	return Token{Tag: TagChoices, Values: values, Text: "Choices"}
}

// ChoicesExpr restricts the argument to the values of a literal list, e.g. "'a', 'b', range(1,3)".
func ChoicesExpr(expr string) Token {
	return Token{Tag: TagChoices, Expr: expr, Text: "Choices[" + expr + "]"}
}

func StoreAction() Token {
	return Token{Tag: TagAction, Action: arg.ActionStore, Text: "StoreAction"}
}

func StoreTrueAction() Token {
	return Token{Tag: TagAction, Action: arg.ActionStoreTrue, Text: "StoreTrueAction"}
}

func StoreFalseAction() Token {
	return Token{Tag: TagAction, Action: arg.ActionStoreFalse, Text: "StoreFalseAction"}
}

func StoreConstAction() Token {
	return Token{Tag: TagAction, Action: arg.ActionStoreConst, Text: "StoreConstAction"}
}

func CountAction() Token {
	return Token{Tag: TagAction, Action: arg.ActionCount, Text: "CountAction"}
}

func AppendAction(elem ...string) Token {
	t := Token{Tag: TagAction, Action: arg.ActionAppend, Text: "AppendAction"}
	if len(elem) > 0 {
		t.Type = elem[0]
	}
	return t
}

func ExtendAction(elem ...string) Token {
	t := Token{Tag: TagAction, Action: arg.ActionExtend, Text: "ExtendAction"}
	if len(elem) > 0 {
		t.Type = elem[0]
	}
	return t
}

// CustomAction folds every occurrence through the action registered under name.
func CustomAction(name string) Token {
	return Token{Tag: TagAction, Action: arg.ActionCustom, Custom: name, Text: "CustomAction[" + name + "]"}
}
