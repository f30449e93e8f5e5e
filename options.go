package argtree

import (
	"io"

	"github.com/mwantia/argtree/coerce"
	"github.com/mwantia/argtree/errors"
	"github.com/mwantia/argtree/history"
	"github.com/mwantia/argtree/log"
	"github.com/mwantia/argtree/tree"
)

// HelpMode selects how help is offered on the command line.
type HelpMode int

const (
	// HelpCommand adds a "help [command ...]" command.
	HelpCommand HelpMode = iota
	// HelpFlag makes -h and --help print the help of the command they follow.
	HelpFlag
	// HelpNone offers no help at all.
	HelpNone
)

// ErrorHandler receives dispatch errors instead of the caller.
type ErrorHandler func(*errors.DispatchError)

type Options struct {
	Prog        string
	Description string
	HelpMode    HelpMode
	Separator   string
	Hyphen      string
	Types       *coerce.Registry

	LogLevel      log.LogLevel
	LogFile       string
	LogJSON       bool
	NoTerminalLog bool
	Logger        *log.Logger

	History      history.Store
	ErrorHandler ErrorHandler

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		HelpMode:  HelpCommand,
		Separator: tree.DefaultSeparator,
		Hyphen:    tree.DefaultHyphen,
		LogLevel:  log.Warn,
	}
}

// WithProg sets the program name shown in usage lines.
func WithProg(prog string) Option {
	return func(opts *Options) error {
		opts.Prog = prog
		return nil
	}
}

func WithDescription(description string) Option {
	return func(opts *Options) error {
		opts.Description = description
		return nil
	}
}

func WithHelpMode(mode HelpMode) Option {
	return func(opts *Options) error {
		if mode < HelpCommand || mode > HelpNone {
			return errors.Compile("", "invalid help mode %d", mode)
		}
		opts.HelpMode = mode
		return nil
	}
}

// WithSeparator sets the subcommand separator used in registered names ("_" by default).
func WithSeparator(separator string) Option {
	return func(opts *Options) error {
		if separator == "" {
			return errors.Compile("", "separator must not be empty")
		}
		opts.Separator = separator
		return nil
	}
}

// WithHyphenReplacement sets the string that stands for "-" in registered names ("__" by default).
func WithHyphenReplacement(hyphen string) Option {
	return func(opts *Options) error {
		opts.Hyphen = hyphen
		return nil
	}
}

// WithTypes replaces the type registry used to resolve annotations.
func WithTypes(types *coerce.Registry) Option {
	return func(opts *Options) error {
		opts.Types = types
		return nil
	}
}

func WithLogLevel(logLevel log.LogLevel) Option {
	return func(opts *Options) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithoutTerminalLog() Option {
	return func(opts *Options) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithLogFile(logFile string) Option {
	return func(opts *Options) error {
		opts.LogFile = logFile
		return nil
	}
}

// WithJSONLog writes log lines as JSON objects.
func WithJSONLog() Option {
	return func(opts *Options) error {
		opts.LogJSON = true
		return nil
	}
}

// WithLogger replaces the logger built from the log options.
func WithLogger(logger *log.Logger) Option {
	return func(opts *Options) error {
		opts.Logger = logger
		return nil
	}
}

// WithHistory records every executed line in store. Without it the dispatcher keeps
// the newest memory.DefaultLimit lines in memory.
func WithHistory(store history.Store) Option {
	return func(opts *Options) error {
		opts.History = store
		return nil
	}
}

// WithDefaultErrorHandler sets the error handler used when a call does not pass one.
func WithDefaultErrorHandler(handler ErrorHandler) Option {
	return func(opts *Options) error {
		opts.ErrorHandler = handler
		return nil
	}
}

// WithDefaultStreams sets the streams used when a call does not pass its own.
func WithDefaultStreams(stdout, stderr io.Writer, stdin io.Reader) Option {
	return func(opts *Options) error {
		opts.Stdout = stdout
		opts.Stderr = stderr
		opts.Stdin = stdin
		return nil
	}
}
