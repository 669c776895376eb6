// Lantern is a deterministic, data-driven engine for classic text
// adventures. With no game directory it plays the built-in game.
// Usage: lantern [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [game_directory]
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jsredmond/lantern/cli"
	"github.com/jsredmond/lantern/engine"
	"github.com/jsredmond/lantern/gamedata"
	"github.com/jsredmond/lantern/loader"
	"github.com/jsredmond/lantern/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	trace := false
	seed := time.Now().UnixNano()
	var gameDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("lantern %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires an integer\n")
				os.Exit(1)
			}
			i++
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed requires an integer\n")
				os.Exit(1)
			}
			seed = n
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}

	// Load and compile Lua game content; the embedded game is the
	// default when no directory is given.
	var defs *loader.Defs
	var err error
	if gameDir == "" {
		defs, err = gamedata.Default()
	} else {
		defs, err = loader.Load(gameDir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	g, err := newGame(defs, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		os.Exit(1)
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		banner(defs)
		c := cli.New(g, defs, seed)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		exit(c.Fault)
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		banner(defs)
		c := cli.New(g, defs, seed)
		c.Trace = trace
		c.Run()
		exit(c.Fault)
	}

	if err := tui.Run(g, defs, seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newGame(defs *loader.Defs, seed int64) (*engine.Game, error) {
	w, err := defs.Build()
	if err != nil {
		return nil, err
	}
	vt, err := defs.Vocabulary()
	if err != nil {
		return nil, err
	}
	return engine.New(w, vt, defs.Meta, seed)
}

func banner(defs *loader.Defs) {
	fmt.Printf("%s v%s by %s\n\n", defs.Meta.Title, defs.Meta.Version, defs.Meta.Author)
}

func exit(fault error) {
	if fault != nil {
		os.Exit(1)
	}
	os.Exit(0)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
