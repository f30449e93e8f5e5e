// Package config loads dispatcher settings from a YAML or TOML file.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mwantia/argtree"
	"github.com/mwantia/argtree/history"
	"github.com/mwantia/argtree/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Prog        string `yaml:"prog" toml:"prog"`
	Description string `yaml:"description" toml:"description"`
	// Help is one of "command", "flag" or "none".
	Help      string `yaml:"help" toml:"help"`
	Separator string `yaml:"separator" toml:"separator"`
	Hyphen    string `yaml:"hyphen" toml:"hyphen"`

	Log     LogConfig     `yaml:"log" toml:"log"`
	History HistoryConfig `yaml:"history" toml:"history"`
}

type LogConfig struct {
	Level      string `yaml:"level" toml:"level"`
	File       string `yaml:"file" toml:"file"`
	JSON       bool   `yaml:"json" toml:"json"`
	NoTerminal bool   `yaml:"no_terminal" toml:"no_terminal"`
}

type HistoryConfig struct {
	// Address of the primary store, e.g. "sqlite://history.db". Lists are read from it.
	Address string `yaml:"address" toml:"address"`
	// Mirrors receive every entry as well.
	Mirrors []string `yaml:"mirrors" toml:"mirrors"`
}

// Load reads path, choosing the format by its extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config '%s': %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data as YAML or TOML; format is a file extension such as ".toml".
func Parse(data []byte, format string) (*Config, error) {
	cfg := &Config{}

	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case "toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format '%s'", format)
	}

	return cfg, nil
}

// Options converts the config into dispatcher options. The history store is opened
// here and is closed by the dispatcher.
func (c *Config) Options(ctx context.Context) ([]argtree.Option, error) {
	var opts []argtree.Option

	if c.Prog != "" {
		opts = append(opts, argtree.WithProg(c.Prog))
	}
	if c.Description != "" {
		opts = append(opts, argtree.WithDescription(c.Description))
	}
	if c.Help != "" {
		mode, err := ParseHelpMode(c.Help)
		if err != nil {
			return nil, err
		}
		opts = append(opts, argtree.WithHelpMode(mode))
	}
	if c.Separator != "" {
		opts = append(opts, argtree.WithSeparator(c.Separator))
	}
	if c.Hyphen != "" {
		opts = append(opts, argtree.WithHyphenReplacement(c.Hyphen))
	}

	if c.Log.Level != "" {
		level, err := log.Parse(c.Log.Level)
		if err != nil {
			return nil, err
		}
		opts = append(opts, argtree.WithLogLevel(level))
	}
	if c.Log.File != "" {
		opts = append(opts, argtree.WithLogFile(c.Log.File))
	}
	if c.Log.JSON {
		opts = append(opts, argtree.WithJSONLog())
	}
	if c.Log.NoTerminal {
		opts = append(opts, argtree.WithoutTerminalLog())
	}

	if c.History.Address != "" {
		store, err := c.History.Open(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, argtree.WithHistory(store))
	}

	return opts, nil
}

// Open opens the primary store and its mirrors.
func (h HistoryConfig) Open(ctx context.Context) (history.Store, error) {
	primary, err := OpenHistory(ctx, h.Address)
	if err != nil {
		return nil, err
	}
	if len(h.Mirrors) == 0 {
		return primary, nil
	}

	stores := []history.Store{primary}
	for _, address := range h.Mirrors {
		store, err := OpenHistory(ctx, address)
		if err != nil {
			for _, opened := range stores {
				opened.Close()
			}
			return nil, err
		}
		stores = append(stores, store)
	}
	return history.Multi(stores...), nil
}

func ParseHelpMode(mode string) (argtree.HelpMode, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "command":
		return argtree.HelpCommand, nil
	case "flag":
		return argtree.HelpFlag, nil
	case "none":
		return argtree.HelpNone, nil
	default:
		return argtree.HelpNone, fmt.Errorf("invalid help mode '%s'", mode)
	}
}
