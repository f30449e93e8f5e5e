package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/dustin/go-humanize"
	"github.com/mwantia/argtree"
	tctx "github.com/mwantia/argtree/context"
)

// registerCommands adds the demo commands. Failures are collected by the
// dispatcher and reported through d.Err.
func registerCommands(d *argtree.Dispatcher) {
	commands := []argtree.Command{
		{
			Name:    "reverse",
			Params:  []argtree.Param{{Name: "value"}},
			Doc:     "Reverse a string.\n:param value: text to reverse",
			Aliases: []string{"rev"},
			Handler: reverse,
		},
		{
			Name: "add",
			Params: []argtree.Param{
				{Name: "values", Annotation: "OneOrMore[float]"},
				{Name: "squared", Annotation: "Option", Default: false},
			},
			Doc: `Add numbers.
:param values: numbers to add
:param squared: square every number first
:alias squared: -s`,
			Handler: add,
		},
		{
			Name: "led_on",
			Params: []argtree.Param{
				{Name: "level", Annotation: "RequiredOption | int"},
				{Name: "color", Annotation: "Option", Default: "white"},
			},
			Doc: `Switch the led on.
:param level: brightness
:choices level: range(1, 11)
:choices color: 'white', 'red', 'green', 'blue'
:alias color: -c`,
			Handler: func(ctx context.Context, level int, color string) {
				fmt.Fprintf(tctx.Stdout(ctx), "led on: %s at %d\n", color, level)
			},
		},
		{
			Name: "led_off",
			Doc:  "Switch the led off.",
			Handler: func(ctx context.Context) {
				fmt.Fprintln(tctx.Stdout(ctx), "led off")
			},
		},
		{
			Name: "echo",
			Params: []argtree.Param{
				{Name: "words", Annotation: "ZeroOrMore"},
				{Name: "n", Annotation: "Flag", Default: false},
			},
			Doc: `Print the words separated by spaces.
:param n: do not print the trailing newline`,
			Handler: func(ctx context.Context, words []string, n bool) {
				out := strings.Join(words, " ")
				if !n {
					out += "\n"
				}
				fmt.Fprint(tctx.Stdout(ctx), out)
			},
		},
		{
			Name: "ls",
			Params: []argtree.Param{
				{Name: "path", Annotation: "ZeroOrOne", Default: "."},
				{Name: "all", Annotation: "Option", Default: false},
				{Name: "min-size", Annotation: "Option | bytes", Default: uint64(0)},
			},
			Doc: `List a directory with human readable sizes.
:param all: include hidden entries
:param min-size: skip files smaller than this, e.g. 10KB
:alias all: -a
:metavar min-size: SIZE`,
			Handler: ls,
		},
		{
			Name: "semver_compare",
			Params: []argtree.Param{
				{Name: "a"},
				{Name: "b"},
			},
			Doc:     "Compare two semantic versions and print -1, 0 or 1.",
			Aliases: []string{"vercmp"},
			Handler: func(a, b *semver.Version) int {
				return a.Compare(b)
			},
		},
		{
			Name:   "sleep",
			Params: []argtree.Param{{Name: "duration"}},
			Doc:    "Wait for a duration such as 1.5s, or until interrupted.",
			Handler: func(ctx context.Context, duration time.Duration) error {
				select {
				case <-time.After(duration):
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		},
		{
			Name: "history",
			Params: []argtree.Param{
				{Name: "limit", Annotation: "Option | int", Default: 20},
			},
			Doc: "Show the most recent command lines.",
			Handler: func(ctx context.Context, limit int) error {
				entries, err := d.History().List(ctx, limit)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(tctx.Stdout(ctx), 0, 4, 2, ' ', 0)
				for _, entry := range entries {
					status := "ok"
					if entry.Error != "" {
						status = "failed"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\n", humanize.Time(entry.Time), status, entry.Line)
				}
				return w.Flush()
			},
		},
	}

	for _, cmd := range commands {
		d.Register(cmd)
	}
}

func reverse(value string) string {
	runes := []rune(value)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func add(values []float64, squared bool) float64 {
	sum := 0.0
	for _, v := range values {
		if squared {
			v *= v
		}
		sum += v
	}
	return sum
}

func ls(ctx context.Context, path string, all bool, minSize uint64) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(tctx.Stdout(ctx), 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, entry := range entries {
		if !all && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}

		name := entry.Name()
		size := "-"
		if entry.IsDir() {
			name += string(filepath.Separator)
		} else {
			if uint64(info.Size()) < minSize {
				continue
			}
			size = humanize.Bytes(uint64(info.Size()))
		}
		fmt.Fprintf(w, "%s\t  %s\t%s\n", size, info.ModTime().Format(time.DateTime), name)
	}
	return w.Flush()
}
