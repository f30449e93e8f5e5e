package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mwantia/argtree"
	"github.com/mwantia/argtree/config"
	"github.com/mwantia/argtree/shell"
)

const configEnv = "ARGTREE_CONFIG"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	opts := []argtree.Option{
		argtree.WithProg("argtree"),
		argtree.WithDescription("Demo commands built on the argtree dispatcher."),
	}

	if path := os.Getenv(configEnv); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		cfgOpts, err := cfg.Options(ctx)
		if err != nil {
			return err
		}
		opts = append(opts, cfgOpts...)
	}

	d, err := argtree.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	defer d.Close()

	registerCommands(d)
	if err := d.Err(); err != nil {
		return err
	}

	if len(args) == 0 {
		return shell.New(d, shell.WithPrompt("argtree> ")).Run(ctx)
	}

	result, err := d.ExecuteArgs(ctx, args)
	if err != nil {
		return err
	}
	if result != nil {
		fmt.Println(result)
	}
	return nil
}
