package context

import (
	"context"
	"io"
	"os"
)

type callKey struct{}

// Streams are the input and output handles of one call. Nil fields fall back
// to the process streams.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

type contextImpl struct {
	context.Context

	id      string
	path    []string
	streams Streams
}

func WithCall(ctx context.Context, id string, path []string, streams Streams) CallContext {
	if streams.Stdout == nil {
		streams.Stdout = os.Stdout
	}
	if streams.Stderr == nil {
		streams.Stderr = os.Stderr
	}
	if streams.Stdin == nil {
		streams.Stdin = os.Stdin
	}

	return &contextImpl{
		Context: ctx,
		id:      id,
		path:    append([]string(nil), path...),
		streams: streams,
	}
}

// From finds the call context in ctx or any context derived from it.
func From(ctx context.Context) (CallContext, bool) {
	if ctx == nil {
		return nil, false
	}
	call, ok := ctx.Value(callKey{}).(CallContext)
	return call, ok
}

func (c *contextImpl) Value(key any) any {
	if _, ok := key.(callKey); ok {
		return c
	}
	return c.Context.Value(key)
}

func (c *contextImpl) ID() string {
	return c.id
}

func (c *contextImpl) Path() []string {
	return c.path
}

func (c *contextImpl) Stdout() io.Writer {
	return c.streams.Stdout
}

func (c *contextImpl) Stderr() io.Writer {
	return c.streams.Stderr
}

func (c *contextImpl) Stdin() io.Reader {
	return c.streams.Stdin
}

// Stdout returns the output stream of the call in ctx, or os.Stdout outside of a call.
func Stdout(ctx context.Context) io.Writer {
	if call, ok := From(ctx); ok {
		return call.Stdout()
	}
	return os.Stdout
}

func Stderr(ctx context.Context) io.Writer {
	if call, ok := From(ctx); ok {
		return call.Stderr()
	}
	return os.Stderr
}

func Stdin(ctx context.Context) io.Reader {
	if call, ok := From(ctx); ok {
		return call.Stdin()
	}
	return os.Stdin
}
