// Package shell runs an interactive read-eval loop on top of a dispatcher.
package shell

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mwantia/argtree"
	"github.com/mwantia/argtree/errors"
	"github.com/mwantia/argtree/lexer"
	"github.com/mwantia/argtree/log"
	"github.com/peterh/liner"
)

const (
	DefaultPrompt       = "> "
	DefaultHistoryLimit = 500
)

var exitCommands = []string{"exit", "quit"}

type Shell struct {
	dispatcher *argtree.Dispatcher
	log        *log.Logger

	prompt       string
	historyLimit int
	interactive  *bool

	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

type Option func(*Shell)

func WithPrompt(prompt string) Option {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

// WithHistoryLimit sets how many lines are loaded from the history store on start.
func WithHistoryLimit(limit int) Option {
	return func(s *Shell) {
		s.historyLimit = limit
	}
}

// WithInteractive forces line editing on or off instead of detecting a terminal.
func WithInteractive(interactive bool) Option {
	return func(s *Shell) {
		s.interactive = &interactive
	}
}

func WithStreams(stdout, stderr io.Writer, stdin io.Reader) Option {
	return func(s *Shell) {
		s.stdout = stdout
		s.stderr = stderr
		s.stdin = stdin
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Shell) {
		s.log = logger
	}
}

func New(d *argtree.Dispatcher, opts ...Option) *Shell {
	s := &Shell{
		dispatcher:   d,
		prompt:       DefaultPrompt,
		historyLimit: DefaultHistoryLimit,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		stdin:        os.Stdin,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.NewLogger("shell", log.Warn, "", false)
	}
	return s
}

// Run reads lines until exit, quit, end of input or ctx is done. Line editing is
// used when stdin is a terminal.
func (s *Shell) Run(ctx context.Context) error {
	if s.isInteractive() {
		return s.runInteractive(ctx)
	}
	return s.runLines(ctx)
}

func (s *Shell) isInteractive() bool {
	if s.interactive != nil {
		return *s.interactive
	}
	f, ok := s.stdin.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s *Shell) runLines(ctx context.Context) error {
	scanner := bufio.NewScanner(s.stdin)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.handle(ctx, scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

func (s *Shell) runInteractive(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(s.Complete)
	s.loadHistory(ctx, line)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := line.Prompt(s.prompt)
		if err != nil {
			if stderrors.Is(err, io.EOF) || stderrors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return fmt.Errorf("failed to read line: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if !s.handle(ctx, input) {
			return nil
		}
	}
}

func (s *Shell) loadHistory(ctx context.Context, line *liner.State) {
	store := s.dispatcher.History()
	entries, err := store.List(ctx, s.historyLimit)
	if err != nil {
		s.log.Warn("failed to load history from '%s': %v", store.Name(), err)
		return
	}
	for _, entry := range entries {
		line.AppendHistory(entry.Line)
	}
}

// handle executes one line and reports whether the loop should continue.
func (s *Shell) handle(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return true
	}
	if slices.Contains(exitCommands, input) {
		return false
	}

	result, err := s.dispatcher.Execute(ctx, input,
		argtree.WithStdout(s.stdout),
		argtree.WithStderr(s.stderr),
		argtree.WithStdin(s.stdin),
		argtree.WithErrorHandler(s.reportError),
	)
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return true
	}
	if result != nil {
		fmt.Fprintln(s.stdout, result)
	}
	return true
}

func (s *Shell) reportError(de *errors.DispatchError) {
	fmt.Fprintln(s.stderr, de)
	if de.Usage != "" && de.Kind != errors.KindMalformedInput {
		fmt.Fprintf(s.stderr, "usage: %s\n", de.Usage)
	}
}

// Complete returns the completed lines for the partial input line: subcommands from
// the command dictionary and the flag names of the command reached.
func (s *Shell) Complete(line string) []string {
	tokens, err := lexer.Split(line)
	if err != nil {
		return nil
	}

	prefix := ""
	if len(tokens) > 0 && !strings.HasSuffix(line, " ") {
		prefix = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}

	var candidates []string

	completions := s.dispatcher.Completions()
	depth := 0
	for _, token := range tokens {
		next, ok := completions[token]
		if !ok {
			break
		}
		completions = next
		depth++
	}
	if depth == len(tokens) {
		for name := range completions {
			candidates = append(candidates, name)
		}
		if depth == 0 {
			candidates = append(candidates, exitCommands...)
		}
	}

	node, _, _ := s.dispatcher.Lookup(tokens)
	if node.HasHandler() {
		for _, spec := range node.Specs {
			if !spec.Positional() && !spec.Hidden {
				candidates = append(candidates, spec.Names()...)
			}
		}
	}

	base := ""
	if len(tokens) > 0 {
		base = lexer.Join(tokens) + " "
	}

	var lines []string
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate, prefix) {
			lines = append(lines, base+candidate)
		}
	}
	slices.Sort(lines)
	return slices.Compact(lines)
}
