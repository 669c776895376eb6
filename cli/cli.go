// Package cli provides terminal I/O, meta-command dispatch, and the
// plain scanner play loop.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jsredmond/lantern/engine"
	"github.com/jsredmond/lantern/engine/save"
	"github.com/jsredmond/lantern/loader"
	"github.com/jsredmond/lantern/savestore"
	"github.com/jsredmond/lantern/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Game        *engine.Game
	Defs        *loader.Defs
	In          io.Reader
	Out         io.Writer
	CatalogPath string
	Seed        int64
	Trace       bool
	EchoInput   bool   // echo each input line after the prompt (for script playback)
	lastCmd     string // for "again"/"g" repeat

	// Fault is set when the engine reports an internal inconsistency;
	// main uses it for the exit code.
	Fault error
}

// New creates a CLI wired to the given game.
func New(g *engine.Game, defs *loader.Defs, seed int64) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Game:        g,
		Defs:        defs,
		In:          os.Stdin,
		Out:         os.Stdout,
		CatalogPath: filepath.Join(home, ".lantern", "saves.db"),
		Seed:        seed,
	}
}

// Run starts the game loop. It shows the intro, describes the starting
// room, then loops: prompt, input, dispatch, output.
func (c *CLI) Run() {
	if c.Game.Meta.Intro != "" {
		c.printLine(c.Game.Meta.Intro)
		c.printLine("")
	}

	result, err := c.Game.Step("look")
	if c.fault(err) {
		return
	}
	c.printResult(result)

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result, err := c.Game.Step(input)
		if c.fault(err) {
			return
		}
		c.printResult(result)
		if c.Trace {
			c.printTrace(input, result)
		}

		if c.Game.QuitRequested {
			c.printSystem("Goodbye.")
			return
		}
		if c.Game.RestartRequested {
			if !c.restart() {
				return
			}
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/saves":
		c.cmdSaves()

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	case "/teleport":
		c.debugErr(c.Game.DebugTeleport(arg))

	case "/give":
		c.debugErr(c.Game.DebugGive(arg))

	case "/settimer":
		if len(parts) < 3 {
			c.printSystem("Usage: /settimer <event> <ticks>")
			break
		}
		ticks, err := strconv.Atoi(parts[2])
		if err != nil {
			c.printSystem("Usage: /settimer <event> <ticks>")
			break
		}
		c.debugErr(c.Game.DebugSetTimer(arg, ticks))

	case "/advance":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			c.printSystem("Usage: /advance <turns>")
			break
		}
		for _, line := range c.Game.DebugAdvanceTurns(n) {
			c.printLine(line)
		}
		c.printSystem(fmt.Sprintf("Advanced %d turns (now turn %d).", n, c.Game.Turn))

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Marshal(save.Snapshot(c.Game))
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	store, err := c.openCatalog()
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	defer store.Close()

	if err := store.Put(name, c.Game.Turn, c.Game.Score, data); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	store, err := c.openCatalog()
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	defer store.Close()

	data, err := store.Get(name)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	sd, err := save.Unmarshal(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	if err := save.Restore(c.Game, sd); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game loaded from %s (turn %d).", name, sd.Turn))

	// Show current room after loading.
	result, err := c.Game.Step("look")
	if c.fault(err) {
		return
	}
	c.printResult(result)
}

func (c *CLI) cmdSaves() {
	store, err := c.openCatalog()
	if err != nil {
		c.printSystem(fmt.Sprintf("List failed: %v", err))
		return
	}
	defer store.Close()

	slots, err := store.List()
	if err != nil {
		c.printSystem(fmt.Sprintf("List failed: %v", err))
		return
	}
	if len(slots) == 0 {
		c.printSystem("No saved games.")
		return
	}
	for _, sl := range slots {
		c.printSystem(fmt.Sprintf("%-16s turn %-4d score %-4d %s",
			sl.Name, sl.Turn, sl.Score, sl.SavedAt.Format("2006-01-02 15:04")))
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]      — Save game (default: quicksave)",
		"  /load [name]      — Load game (default: quicksave)",
		"  /saves            — List saved games",
		"  /quit             — Exit game",
		"  /help             — Show this help",
		"  /state            — Debug: dump current state",
		"  /trace            — Toggle debug trace output",
		"  /teleport <room>  — Debug: move to a room",
		"  /give <object>    — Debug: conjure an object into your hands",
		"  /settimer <ev> <n>— Debug: arm an event timer",
		"  /advance <n>      — Debug: run n turns of world time",
		"",
		"Game commands:",
		"  look (l)              — Describe the room",
		"  examine <thing> (x)   — Look closely at something",
		"  go <dir>              — Move (or just type n/s/e/w/u/d)",
		"  take/get <item>       — Pick something up",
		"  drop <item>           — Put something down",
		"  put <item> in <thing> — Stow an item in a container",
		"  open / close          — Open or close something",
		"  read <thing>          — Read text",
		"  light / extinguish    — Work a light source",
		"  attack <foe> with <weapon>",
		"  inventory (i)         — Check what you're carrying",
		"  wait (z)              — Let time pass",
		"  score / diagnose      — Check progress and health",
		"  again (g)             — Repeat your last command",
		"  save goes through /save; quit through /quit or 'quit'",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	g := c.Game
	c.printSystem(fmt.Sprintf("Turn: %d  Score: %d  State: %v", g.Turn, g.Score, g.State))
	c.printSystem(fmt.Sprintf("Location: %s", g.World.Here()))
	c.printSystem(fmt.Sprintf("Inventory: %v", g.World.Inventory()))
	c.printSystem(fmt.Sprintf("It=%q Them=%v", g.Refs.It, g.Refs.Them))
	c.printSystem(fmt.Sprintf("Events: %v", g.Events.States()))
}

// restart rebuilds a fresh game from the compiled definitions.
func (c *CLI) restart() bool {
	w, err := c.Defs.Build()
	if err != nil {
		c.printSystem(fmt.Sprintf("Restart failed: %v", err))
		return false
	}
	vt, err := c.Defs.Vocabulary()
	if err != nil {
		c.printSystem(fmt.Sprintf("Restart failed: %v", err))
		return false
	}
	g, err := engine.New(w, vt, c.Defs.Meta, c.Seed)
	if err != nil {
		c.printSystem(fmt.Sprintf("Restart failed: %v", err))
		return false
	}
	c.Game = g
	c.lastCmd = ""
	c.printLine("")
	if c.Game.Meta.Intro != "" {
		c.printLine(c.Game.Meta.Intro)
		c.printLine("")
	}
	result, err := c.Game.Step("look")
	if c.fault(err) {
		return false
	}
	c.printResult(result)
	return true
}

func (c *CLI) openCatalog() (*savestore.Store, error) {
	if err := os.MkdirAll(filepath.Dir(c.CatalogPath), 0o755); err != nil {
		return nil, err
	}
	return savestore.Open(c.CatalogPath)
}

// fault reports an engine inconsistency and stops the session.
func (c *CLI) fault(err error) bool {
	if err == nil {
		return false
	}
	c.Fault = err
	c.printSystem(fmt.Sprintf("Internal error: %v", err))
	return true
}

func (c *CLI) debugErr(err error) {
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	result, err := c.Game.Step("look")
	if c.fault(err) {
		return
	}
	c.printResult(result)
}

func (c *CLI) printTrace(input string, result types.Result) {
	c.printSystem(fmt.Sprintf("[trace] input=%q success=%v turn=%d score=%d",
		input, result.Success, c.Game.Turn, c.Game.Score))
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
