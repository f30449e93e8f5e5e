package argtree

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/argtree/binder"
	tctx "github.com/mwantia/argtree/context"
	"github.com/mwantia/argtree/errors"
	"github.com/mwantia/argtree/history"
	"github.com/mwantia/argtree/lexer"
)

type executeOptions struct {
	errorHandler ErrorHandler
	streams      tctx.Streams
	instance     any
}

// ExecuteOption adjusts a single call.
type ExecuteOption func(*executeOptions)

// WithErrorHandler passes dispatch errors to handler instead of returning them.
func WithErrorHandler(handler ErrorHandler) ExecuteOption {
	return func(opts *executeOptions) {
		opts.errorHandler = handler
	}
}

func WithStdout(w io.Writer) ExecuteOption {
	return func(opts *executeOptions) {
		opts.streams.Stdout = w
	}
}

func WithStderr(w io.Writer) ExecuteOption {
	return func(opts *executeOptions) {
		opts.streams.Stderr = w
	}
}

func WithStdin(r io.Reader) ExecuteOption {
	return func(opts *executeOptions) {
		opts.streams.Stdin = r
	}
}

// WithInstance supplies the receiver for handlers registered as method expressions.
func WithInstance(instance any) ExecuteOption {
	return func(opts *executeOptions) {
		opts.instance = instance
	}
}

func (d *Dispatcher) newExecuteOptions(opts []ExecuteOption) *executeOptions {
	options := &executeOptions{
		errorHandler: d.options.ErrorHandler,
		streams: tctx.Streams{
			Stdout: d.options.Stdout,
			Stderr: d.options.Stderr,
			Stdin:  d.options.Stdin,
		},
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Execute splits line into tokens, resolves the command and calls its handler.
// It returns whatever the handler returned. Dispatch errors are returned unless an
// error handler is set, in which case it receives them and Execute returns nil, nil.
func (d *Dispatcher) Execute(ctx context.Context, line string, opts ...ExecuteOption) (any, error) {
	return d.execute(ctx, uuid.NewString(), line, nil, d.newExecuteOptions(opts))
}

// ExecuteArgs is Execute for input that is already split. The first element names
// the command.
func (d *Dispatcher) ExecuteArgs(ctx context.Context, argv []string, opts ...ExecuteOption) (any, error) {
	tokens := append([]string{}, argv...)
	return d.execute(ctx, uuid.NewString(), lexer.Join(argv), tokens, d.newExecuteOptions(opts))
}

func (d *Dispatcher) execute(ctx context.Context, id, line string, tokens []string, opts *executeOptions) (any, error) {
	if err := d.errs.Errors(); err != nil {
		return nil, err
	}

	var (
		result any
		path   []string
		err    error
	)

	if tokens == nil {
		tokens, err = lexer.Split(line)
		if err != nil {
			de := errors.Dispatch(errors.KindMalformedInput, nil)
			de.Token = line
			de.Err = err
			err = de
		}
	}
	if err == nil {
		result, path, err = d.dispatch(ctx, id, tokens, opts)
	}

	d.record(ctx, history.Entry{
		ID:    id,
		Time:  time.Now(),
		Line:  line,
		Path:  path,
		Error: errorText(err),
	})

	if err == nil {
		return result, nil
	}

	d.log.Debug("call %s failed: %v", id, err)
	if de, ok := errors.AsDispatch(err); ok && opts.errorHandler != nil {
		opts.errorHandler(de)
		return nil, nil
	}
	return nil, err
}

func (d *Dispatcher) dispatch(ctx context.Context, id string, tokens []string, opts *executeOptions) (any, []string, error) {
	d.mu.RLock()
	node, matched, rest := d.tree.Resolve(tokens)
	d.mu.RUnlock()

	call := tctx.WithCall(ctx, id, matched, opts.streams)

	if d.options.HelpMode == HelpFlag && wantsHelp(node, rest) {
		d.log.Debug("call %s: help for '%s'", id, node.Name())
		return nil, matched, d.writeHelp(call.Stdout(), node)
	}

	h, ok := node.Handler.(*handler)
	if !ok {
		de := errors.Dispatch(errors.KindUnknownCommand, matched)
		if len(rest) > 0 {
			de.Token = rest[0]
		}
		de.Candidates = node.Candidates()
		de.Usage = d.help.Usage(node)
		return nil, matched, de
	}

	bound, err := binder.Bind(matched, node.Specs, rest)
	if err != nil {
		if de, ok := errors.AsDispatch(err); ok {
			de.Usage = d.help.Usage(node)
		}
		return nil, matched, err
	}

	d.log.Debug("call %s: %s %v", id, node.Name(), bound.Values)

	result, err := h.call(call, opts.instance, bound.Args)
	if stderrors.Is(err, errors.ErrHandlerPanic) {
		d.log.Error("call %s: command '%s' panicked: %v", id, node.Name(), err)
	}
	return result, matched, err
}

func (d *Dispatcher) record(ctx context.Context, entry history.Entry) {
	if err := d.history.Append(context.WithoutCancel(ctx), entry); err != nil {
		d.log.Warn("failed to append to history store '%s': %v", d.history.Name(), err)
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Pending is a call started by ExecuteAsync.
type Pending struct {
	id     string
	done   chan struct{}
	cancel context.CancelFunc

	result any
	err    error
}

// ExecuteAsync runs Execute on its own goroutine. The call receives a context that
// Cancel cancels; handlers that honour their context return early.
func (d *Dispatcher) ExecuteAsync(ctx context.Context, line string, opts ...ExecuteOption) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	p := &Pending{
		id:     uuid.NewString(),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	options := d.newExecuteOptions(opts)
	go func() {
		defer close(p.done)
		defer cancel()

		p.result, p.err = d.execute(ctx, p.id, line, nil, options)
	}()

	return p
}

// ID is the call id handlers see through their call context.
func (p *Pending) ID() string {
	return p.id
}

func (p *Pending) Done() <-chan struct{} {
	return p.done
}

func (p *Pending) Cancel() {
	p.cancel()
}

// Wait blocks until the call completes or ctx is done.
func (p *Pending) Wait(ctx context.Context) (any, error) {
	select {
	case <-p.done:
		return p.result, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
