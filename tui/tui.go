package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jsredmond/lantern/engine"
	"github.com/jsredmond/lantern/engine/save"
	"github.com/jsredmond/lantern/loader"
	"github.com/jsredmond/lantern/savestore"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the terminal UI.
type Model struct {
	game *engine.Game
	defs *loader.Defs
	seed int64

	viewport viewport.Model
	input    textinput.Model
	history  *recall

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width       int
	height      int
	ready       bool
	trace       bool
	quitting    bool
	lastCmd     string
	catalogPath string
	fault       error
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given game.
func New(g *engine.Game, defs *loader.Defs, seed int64) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	home, _ := os.UserHomeDir()
	return Model{
		game:        g,
		defs:        defs,
		seed:        seed,
		input:       ti,
		history:     newRecall(100),
		catalogPath: filepath.Join(home, ".lantern", "saves.db"),
	}
}

// Run starts the Bubble Tea program.
func Run(g *engine.Game, defs *loader.Defs, seed int64) error {
	m := New(g, defs, seed)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.fault != nil {
		return fm.fault
	}
	return nil
}

// Init returns the initial command that produces intro text and first look.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		var lines []string

		meta := m.game.Meta
		lines = append(lines, meta.Title+" v"+meta.Version+" by "+meta.Author)
		lines = append(lines, "")

		if meta.Intro != "" {
			lines = append(lines, meta.Intro)
			lines = append(lines, "")
		}

		result, err := m.game.Step("look")
		if err != nil {
			return gameOutputMsg{lines: []string{err.Error()}, isSystem: true}
		}
		lines = append(lines, result.Output...)

		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Back(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Forward(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Remember(input)

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Game command.
	result, err := m.game.Step(input)
	if err != nil {
		m.fault = err
		m.quitting = true
		return m, tea.Quit
	}
	output := result.Output
	if m.trace {
		output = append(output, fmt.Sprintf("[trace] success=%v turn=%d score=%d",
			result.Success, m.game.Turn, m.game.Score))
	}
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})

	if m.game.QuitRequested {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.RestartRequested {
		return m.restart()
	}
	return m, nil
}

// restart rebuilds a fresh game from the compiled definitions.
func (m Model) restart() (tea.Model, tea.Cmd) {
	w, err := m.defs.Build()
	if err != nil {
		m.fault = err
		m.quitting = true
		return m, tea.Quit
	}
	vt, err := m.defs.Vocabulary()
	if err != nil {
		m.fault = err
		m.quitting = true
		return m, tea.Quit
	}
	g, err := engine.New(w, vt, m.defs.Meta, m.seed)
	if err != nil {
		m.fault = err
		m.quitting = true
		return m, tea.Quit
	}
	m.game = g
	m.lastCmd = ""
	m.rawLines = nil
	return m, m.initialOutput()
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Preserves existing newlines within the text.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/saves":
		return m.cmdSaves(), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) openCatalog() (*savestore.Store, error) {
	if err := os.MkdirAll(filepath.Dir(m.catalogPath), 0o755); err != nil {
		return nil, err
	}
	return savestore.Open(m.catalogPath)
}

func (m *Model) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Marshal(save.Snapshot(m.game))
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	store, err := m.openCatalog()
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}
	defer store.Close()

	if err := store.Put(name, m.game.Turn, m.game.Score, data); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}
	return []string{fmt.Sprintf("Game saved to %s.", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	store, err := m.openCatalog()
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	defer store.Close()

	data, err := store.Get(name)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	sd, err := save.Unmarshal(data)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	if err := save.Restore(m.game, sd); err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	output := []string{fmt.Sprintf("Game loaded from %s (turn %d).", name, sd.Turn)}
	result, err := m.game.Step("look")
	if err != nil {
		return append(output, err.Error())
	}
	output = append(output, result.Output...)
	return output
}

func (m *Model) cmdSaves() []string {
	store, err := m.openCatalog()
	if err != nil {
		return []string{fmt.Sprintf("List failed: %v", err)}
	}
	defer store.Close()

	slots, err := store.List()
	if err != nil {
		return []string{fmt.Sprintf("List failed: %v", err)}
	}
	if len(slots) == 0 {
		return []string{"No saved games."}
	}
	var out []string
	for _, sl := range slots {
		out = append(out, fmt.Sprintf("%-16s turn %-4d score %-4d %s",
			sl.Name, sl.Turn, sl.Score, sl.SavedAt.Format("2006-01-02 15:04")))
	}
	return out
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /save [name]  — Save game (default: quicksave)",
		"  /load [name]  — Load game (default: quicksave)",
		"  /saves        — List saved games",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"  /trace        — Toggle debug trace output",
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
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	g := m.game
	return []string{
		fmt.Sprintf("Turn: %d  Score: %d  State: %v", g.Turn, g.Score, g.State),
		fmt.Sprintf("Location: %s", g.World.Here()),
		fmt.Sprintf("Inventory: %v", g.World.Inventory()),
		fmt.Sprintf("It=%q Them=%v", g.Refs.It, g.Refs.Them),
	}
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
