package coerce

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLiterals evaluates a comma separated list of literals into a finite list of values.
// Items may be quoted strings, integers, floats, booleans, range(start, stop[, step])
// or the name of a choice set registered with RegisterChoices.
func (r *Registry) ParseLiterals(expr string) ([]any, error) {
	expr = strings.TrimSpace(expr)
	if len(expr) >= 2 && (expr[0] == '[' && expr[len(expr)-1] == ']' || expr[0] == '{' && expr[len(expr)-1] == '}') {
		expr = strings.TrimSpace(expr[1 : len(expr)-1])
	}
	if expr == "" {
		return nil, fmt.Errorf("empty choice list")
	}

	items, err := SplitTopLevel(expr, ',')
	if err != nil {
		return nil, err
	}

	var values []any
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		parsed, err := r.parseLiteral(item)
		if err != nil {
			return nil, err
		}
		values = append(values, parsed...)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("empty choice list")
	}
	return values, nil
}

func (r *Registry) parseLiteral(item string) ([]any, error) {
	switch {
	case item[0] == '\'' || item[0] == '"':
		s, err := unquote(item)
		if err != nil {
			return nil, err
		}
		return []any{s}, nil
	case strings.HasPrefix(item, "range(") && strings.HasSuffix(item, ")"):
		return parseRange(item[len("range(") : len(item)-1])
	case item == "true" || item == "True":
		return []any{true}, nil
	case item == "false" || item == "False":
		return []any{false}, nil
	}

	if v, err := strconv.ParseInt(item, 0, 64); err == nil {
		return []any{int(v)}, nil
	}
	if v, err := strconv.ParseFloat(item, 64); err == nil {
		return []any{v}, nil
	}
	if values, ok := r.Choices(item); ok {
		return append([]any(nil), values...), nil
	}

	return nil, fmt.Errorf("cannot evaluate choice literal '%s'", item)
}

func parseRange(args string) ([]any, error) {
	parts := strings.Split(args, ",")
	if len(parts) < 1 || len(parts) > 3 {
		return nil, fmt.Errorf("range expects 1 to 3 arguments, got %d", len(parts))
	}

	nums := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid range argument '%s'", part)
		}
		nums[i] = v
	}

	start, stop, step := 0, nums[0], 1
	if len(nums) > 1 {
		start, stop = nums[0], nums[1]
	}
	if len(nums) > 2 {
		step = nums[2]
	}
	if step == 0 {
		return nil, fmt.Errorf("range step must not be zero")
	}

	var values []any
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		values = append(values, i)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("range(%s) is empty", args)
	}
	return values, nil
}

func unquote(item string) (string, error) {
	quote := item[0]
	if len(item) < 2 || item[len(item)-1] != quote {
		return "", fmt.Errorf("unterminated string literal %s", item)
	}

	var b strings.Builder
	body := item[1 : len(item)-1]
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
		}
		b.WriteByte(body[i])
	}
	return b.String(), nil
}

// SplitTopLevel splits s on sep, ignoring separators inside quotes or brackets.
func SplitTopLevel(s string, sep byte) ([]string, error) {
	var (
		parts []string
		depth int
		quote byte
		start int
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced '%c' in '%s'", c, s)
			}
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in '%s'", s)
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced brackets in '%s'", s)
	}

	return append(parts, s[start:]), nil
}
