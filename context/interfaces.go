package context

import (
	"context"
	"io"
)

// CallContext is the context a handler runs in. It carries the streams of one
// dispatch call, so concurrent calls never observe each other's redirections.
type CallContext interface {
	context.Context

	ID() string
	Path() []string

	Stdout() io.Writer
	Stderr() io.Writer
	Stdin() io.Reader
}
