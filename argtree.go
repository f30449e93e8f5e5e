package argtree

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/mwantia/argtree/coerce"
	"github.com/mwantia/argtree/compiler"
	"github.com/mwantia/argtree/errors"
	"github.com/mwantia/argtree/help"
	"github.com/mwantia/argtree/history"
	"github.com/mwantia/argtree/history/memory"
	"github.com/mwantia/argtree/log"
	"github.com/mwantia/argtree/tree"
)

// Param declares one handler parameter, see compiler.Param.
type Param = compiler.Param

// Command is everything needed to register one handler.
type Command struct {
	// Name is the registered identifier. The separator splits it into subcommands
	// ("led_on" is "led on") and the hyphen replacement stands for "-".
	Name string
	// Params are declared in the order of the handler's parameters.
	Params []Param
	// Doc is the description, optionally followed by directive lines.
	Doc string
	// Aliases are full alternative paths for the command.
	Aliases []string
	Handler any

	IgnoreDoc         bool
	IgnoreAnnotations bool
}

// Dispatcher owns one command tree. Commands are registered first, then lines are
// executed against the tree; the two phases must not overlap.
type Dispatcher struct {
	mu sync.RWMutex

	options *Options
	log     *log.Logger
	tree    *tree.Tree
	help    *help.Renderer
	history history.Store

	errs errors.Errors
}

func New(opts ...Option) (*Dispatcher, error) {
	options := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	if options.Types == nil {
		options.Types = coerce.NewRegistry()
	}
	if options.History == nil {
		options.History = memory.NewMemoryStore(memory.DefaultLimit)
	}

	logger := options.Logger
	if logger == nil {
		logger = log.NewLogger("argtree", options.LogLevel, options.LogFile, options.NoTerminalLog)
		logger.JSON = options.LogJSON
	}

	renderer := help.New(options.Prog)
	renderer.Description = options.Description

	d := &Dispatcher{
		options: options,
		log:     logger.Named("dispatch"),
		tree:    tree.New(tree.WithSeparator(options.Separator), tree.WithHyphen(options.Hyphen)),
		help:    renderer,
		history: options.History,
	}

	if options.HelpMode == HelpCommand {
		if err := d.initHelpCommand(); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Register compiles the command and inserts it into the tree. A failed registration
// is also remembered: every later Execute returns it.
func (d *Dispatcher) Register(cmd Command) (*tree.Node, error) {
	node, err := d.register(cmd)
	if err != nil {
		d.errs.Add(err)
		d.log.Warn("failed to register command '%s': %v", cmd.Name, err)
		return nil, err
	}

	d.log.Debug("registered command '%s' with %d arguments", node.Name(), len(node.Specs))
	return node, nil
}

// MustRegister is like Register but panics on error.
func (d *Dispatcher) MustRegister(cmd Command) *tree.Node {
	node, err := d.Register(cmd)
	if err != nil {
		panic(err)
	}
	return node
}

func (d *Dispatcher) register(cmd Command) (*tree.Node, error) {
	h, err := newHandler(cmd.Handler, len(cmd.Params))
	if err != nil {
		return nil, &errors.CompileError{
			Command: cmd.Name,
			Msg:     "invalid handler",
			Err:     err,
		}
	}

	params := make([]Param, len(cmd.Params))
	for i, p := range cmd.Params {
		if p.GoType == nil {
			p.GoType = h.params[i]
		}
		params[i] = p
	}

	result, err := compiler.Compile(params, cmd.Doc, d.options.Types, compiler.Options{
		IgnoreDoc:         cmd.IgnoreDoc,
		IgnoreAnnotations: cmd.IgnoreAnnotations,
	})
	if err != nil {
		return nil, withCommand(err, cmd.Name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	node, err := d.tree.Insert(cmd.Name, cmd.Aliases, result.Help, result.Specs, h)
	if err != nil {
		return nil, withCommand(err, cmd.Name)
	}
	return node, nil
}

func withCommand(err error, name string) error {
	var ce *errors.CompileError
	if stderrors.As(err, &ce) && ce.Command == "" {
		ce.Command = name
	}
	return err
}

// Err returns the joined registration errors, if any.
func (d *Dispatcher) Err() error {
	return d.errs.Errors()
}

// Tree returns the root of the command tree. It must not be modified.
func (d *Dispatcher) Tree() *tree.Node {
	return d.tree.Root()
}

// Completions returns the nested command dictionary used for shell completion.
func (d *Dispatcher) Completions() tree.Completions {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.tree.Completions()
}

// Lookup resolves leading tokens the same way Execute does.
func (d *Dispatcher) Lookup(tokens []string) (*tree.Node, []string, []string) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.tree.Resolve(tokens)
}

func (d *Dispatcher) History() history.Store {
	return d.history
}

func (d *Dispatcher) Help() *help.Renderer {
	return d.help
}

// Close releases the history store.
func (d *Dispatcher) Close() error {
	if err := d.history.Close(); err != nil {
		return fmt.Errorf("failed to close history store '%s': %w", d.history.Name(), err)
	}
	return nil
}
