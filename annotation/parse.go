package annotation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mwantia/argtree/coerce"
)

// Parse reads an annotation expression such as "Option | Exactly2[int]" or
// "OneOrMore[float]" into its tokens, left to right. Names that are not markers
// become type tokens and are resolved later against the coercion registry.
func Parse(expr string) ([]Token, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	parts, err := coerce.SplitTopLevel(expr, '|')
	if err != nil {
		return nil, err
	}

	tokens := make([]Token, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty element in annotation '%s'", expr)
		}

		token, err := parsePart(part)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

func parsePart(part string) (Token, error) {
	name, inner, hasInner, err := splitBracket(part)
	if err != nil {
		return Token{}, err
	}

	var token Token
	switch name {
	case "Flag":
		token = Flag()
	case "Option":
		token = Option()
	case "RequiredFlag":
		token = RequiredFlag()
	case "RequiredOption":
		token = RequiredOption()
	case "ZeroOrOne":
		token = ZeroOrOne()
	case "ZeroOrMore":
		token = ZeroOrMore()
	case "OneOrMore":
		token = OneOrMore()
	case "StoreAction":
		token = StoreAction()
	case "StoreTrueAction":
		token = StoreTrueAction()
	case "StoreFalseAction":
		token = StoreFalseAction()
	case "StoreConstAction":
		token = StoreConstAction()
	case "CountAction":
		token = CountAction()
	case "AppendAction":
		token = AppendAction()
	case "ExtendAction":
		token = ExtendAction()
	case "CustomAction":
		if !hasInner {
			return Token{}, fmt.Errorf("CustomAction requires an action name, e.g. CustomAction[toggle]")
		}
		return CustomAction(inner), nil
	case "Choices":
		if !hasInner {
			return Token{}, fmt.Errorf("Choices requires a value list, e.g. Choices['a', 'b']")
		}
		return ChoicesExpr(inner), nil
	default:
		if n, ok := exactlyCount(name); ok {
			token = Exactly(n)
			break
		}
		if hasInner {
			return Token{}, fmt.Errorf("'%s' does not take a parameter", name)
		}
		return Type(name), nil
	}

	if hasInner {
		if token.Tag != TagArity && (token.Tag != TagAction || !token.Action.TakesValues()) {
			return Token{}, fmt.Errorf("'%s' does not take a parameter", name)
		}
		token.Type = strings.TrimSpace(inner)
		token.Text = part
	}

	return token, nil
}

func exactlyCount(name string) (int, bool) {
	if !strings.HasPrefix(name, "Exactly") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(name, "Exactly"))
	if err != nil || n < 1 || n > 9 {
		return 0, false
	}
	return n, true
}

func splitBracket(part string) (name, inner string, hasInner bool, err error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		return part, "", false, nil
	}
	if !strings.HasSuffix(part, "]") {
		return "", "", false, fmt.Errorf("malformed annotation element '%s'", part)
	}

	name = strings.TrimSpace(part[:open])
	inner = strings.TrimSpace(part[open+1 : len(part)-1])
	if inner == "" {
		return "", "", false, fmt.Errorf("empty brackets in '%s'", part)
	}
	return name, inner, true, nil
}
