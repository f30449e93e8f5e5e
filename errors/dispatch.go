package errors

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindUnknownCommand Kind = iota
	KindMissingArgument
	KindInvalidValue
	KindInvalidChoice
	KindUnexpectedArgument
	KindMalformedInput
)

var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMissingArgument    = errors.New("missing argument")
	ErrInvalidValue       = errors.New("invalid value")
	ErrInvalidChoice      = errors.New("invalid choice")
	ErrUnexpectedArgument = errors.New("unexpected argument")
	ErrMalformedInput     = errors.New("malformed input")
)

func (k Kind) String() string {
	return k.sentinel().Error()
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnknownCommand:
		return ErrUnknownCommand
	case KindMissingArgument:
		return ErrMissingArgument
	case KindInvalidValue:
		return ErrInvalidValue
	case KindInvalidChoice:
		return ErrInvalidChoice
	case KindUnexpectedArgument:
		return ErrUnexpectedArgument
	default:
		return ErrMalformedInput
	}
}

// DispatchError describes why a line could not be resolved against the command tree.
// It carries enough context to build a precise message without parsing the input again.
type DispatchError struct {
	Kind Kind
	// Path holds the command segments that were matched before the failure.
	Path []string
	// Argument is the flagged or positional name of the offending argument, if any.
	Argument string
	// Token is the raw input token that caused the failure, if any.
	Token string
	// Expected describes what would have been accepted (value count, choices).
	Expected string
	// Candidates lists valid next command segments for UnknownCommand.
	Candidates []string
	// Usage is the usage line of the command that was reached.
	Usage string
	Err   error
}

func (e *DispatchError) Error() string {
	var b strings.Builder
	b.WriteString("argtree: ")
	if len(e.Path) > 0 {
		b.WriteString(strings.Join(e.Path, " "))
		b.WriteString(": ")
	}

	switch e.Kind {
	case KindUnknownCommand:
		if e.Token != "" {
			fmt.Fprintf(&b, "unknown command '%s'", e.Token)
		} else {
			b.WriteString("incomplete command")
		}
		if len(e.Candidates) > 0 {
			fmt.Fprintf(&b, " (choose from %s)", strings.Join(e.Candidates, ", "))
		}
	case KindMissingArgument:
		fmt.Fprintf(&b, "missing argument '%s'", e.Argument)
		if e.Expected != "" {
			fmt.Fprintf(&b, ": expected %s", e.Expected)
		}
	case KindInvalidValue:
		fmt.Fprintf(&b, "argument '%s': invalid value '%s'", e.Argument, e.Token)
		if e.Expected != "" {
			fmt.Fprintf(&b, " (expected %s)", e.Expected)
		}
	case KindInvalidChoice:
		fmt.Fprintf(&b, "argument '%s': invalid choice '%s'", e.Argument, e.Token)
		if e.Expected != "" {
			fmt.Fprintf(&b, " (choose from %s)", e.Expected)
		}
	case KindUnexpectedArgument:
		fmt.Fprintf(&b, "unexpected argument '%s'", e.Token)
	default:
		b.WriteString("malformed input")
	}

	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind, so callers can use errors.Is(err, ErrInvalidChoice).
func (e *DispatchError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func Dispatch(kind Kind, path []string) *DispatchError {
	return &DispatchError{
		Kind: kind,
		Path: append([]string(nil), path...),
	}
}

// AsDispatch unwraps err into a DispatchError if it is one.
func AsDispatch(err error) (*DispatchError, bool) {
	var de *DispatchError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
