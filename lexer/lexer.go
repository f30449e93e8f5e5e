// Package lexer splits a command line into tokens with shell-like quoting.
//
// Unquoted whitespace separates tokens. Single and double quotes group characters into
// one token and are removed. A backslash takes the next character literally, inside or
// outside of quotes. No variable expansion, globbing or operators are recognised.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
)

// SyntaxError reports a line that cannot be split.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// Split tokenizes line.
func Split(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inToken bool
		quote   rune
		quoteAt int
		escaped bool
	)

	for offset, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false

		case r == '\\':
			escaped = true
			inToken = true

		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}

		case r == '\'' || r == '"':
			quote = r
			quoteAt = offset
			inToken = true

		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}

		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if escaped {
		return nil, &SyntaxError{Offset: len(line), Msg: "trailing backslash"}
	}
	if quote != 0 {
		return nil, &SyntaxError{Offset: quoteAt, Msg: fmt.Sprintf("unterminated %c quote", quote)}
	}
	if inToken {
		tokens = append(tokens, current.String())
	}

	return tokens, nil
}

// Quote renders token so that Split reads it back unchanged.
func Quote(token string) string {
	if token == "" {
		return `""`
	}
	if !strings.ContainsAny(token, " \t\n\r\v\f'\"\\") {
		return token
	}

	var b strings.Builder
	b.WriteByte('"')
	for _, r := range token {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// Join quotes and joins tokens into one line.
func Join(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, token := range tokens {
		quoted[i] = Quote(token)
	}
	return strings.Join(quoted, " ")
}
