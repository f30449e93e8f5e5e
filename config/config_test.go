package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mwantia/argtree"
	"github.com/mwantia/argtree/config"
	"github.com/mwantia/argtree/history"
	"github.com/mwantia/argtree/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
prog: demo
description: A demo shell.
help: flag
log:
  level: debug
  json: true
history:
  address: ":memory:"
  mirrors:
    - ":memory:"
`

const tomlConfig = `
prog = "demo"
description = "A demo shell."
help = "flag"

[log]
level = "debug"
json = true

[history]
address = ":memory:"
mirrors = [":memory:"]
`

func TestParse(t *testing.T) {
	want := &config.Config{
		Prog:        "demo",
		Description: "A demo shell.",
		Help:        "flag",
		Log: config.LogConfig{
			Level: "debug",
			JSON:  true,
		},
		History: config.HistoryConfig{
			Address: ":memory:",
			Mirrors: []string{":memory:"},
		},
	}

	for format, data := range map[string]string{".yaml": yamlConfig, "toml": tomlConfig} {
		t.Run(format, func(t *testing.T) {
			cfg, err := config.Parse([]byte(data), format)
			require.NoError(t, err)
			if diff := cmp.Diff(want, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, err := config.Parse([]byte(yamlConfig), ".json")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "argtree.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlConfig), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Prog)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Options(t *testing.T) {
	cfg, err := config.Parse([]byte(yamlConfig), "yaml")
	require.NoError(t, err)

	opts, err := cfg.Options(context.Background())
	require.NoError(t, err)

	d, err := argtree.New(append(opts, argtree.WithLogger(log.Discard()))...)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, d.Close())
	})

	d.MustRegister(argtree.Command{
		Name:    "ping",
		Handler: func() string { return "pong" },
	})

	result, err := d.Execute(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "pong", result)

	// help is a flag here, not a command
	_, err = d.Execute(context.Background(), "help")
	assert.Error(t, err)

	assert.Equal(t, "multi", d.History().Name())
	entries, err := d.History().List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestConfig_OptionsErrors(t *testing.T) {
	tests := map[string]*config.Config{
		"help mode": {Help: "sometimes"},
		"log level": {Log: config.LogConfig{Level: "loud"}},
		"history":   {History: config.HistoryConfig{Address: "ftp://nowhere"}},
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := cfg.Options(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestOpenHistory(t *testing.T) {
	store, err := config.OpenHistory(context.Background(), ":memory:")
	require.NoError(t, err)
	assert.Equal(t, "memory", store.Name())
	require.NoError(t, store.Close())

	store, err = config.OpenHistory(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", store.Name())
	require.NoError(t, store.Close())

	_, err = config.OpenHistory(context.Background(), "ftp://nowhere")
	assert.ErrorIs(t, err, history.ErrUnknownScheme)
}
