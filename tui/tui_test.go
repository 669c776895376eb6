package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jsredmond/lantern/engine"
	"github.com/jsredmond/lantern/loader"
)

const testGameSource = `
game{
  title = "Lantern Test",
  author = "Tester",
  version = "1.0.0",
  start = "hall",
  intro = "Welcome to the test.",
}

room{
  id = "hall",
  name = "Grand Hall",
  long = "A grand hall.",
  exits = { north = "garden" },
}

room{
  id = "garden",
  name = "Garden",
  long = "A peaceful garden.",
  exits = { south = "hall" },
}

object{
  id = "key",
  name = "rusty key",
  synonyms = {"key"},
  adjectives = {"rusty"},
  location = "hall",
  flags = {"takeable"},
}
`

// testModel builds a model around a minimal compiled game.
func testModel(t *testing.T) Model {
	t.Helper()
	fsys := fstest.MapFS{
		"game.lua": &fstest.MapFile{Data: []byte(testGameSource)},
	}
	defs, err := loader.LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	w, err := defs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	vt, err := defs.Vocabulary()
	if err != nil {
		t.Fatalf("Vocabulary: %v", err)
	}
	g, err := engine.New(w, vt, defs.Meta, 1)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	m := New(g, defs, 1)
	m.catalogPath = filepath.Join(t.TempDir(), "saves.db")
	return m
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"There is a brass lantern here.", kindItems},
		{"  A rusty key", kindItems},
		{"The body of a troll lies here.", kindItems},
		{"It is pitch black. You are likely to be eaten by a grue.", kindDanger},
		{"You can't go that way.", kindRefusal},
		{"Which button do you mean, the red button or the blue button?", kindRefusal},
		{"What do you want to take?", kindRefusal},
		{"There was no verb in that sentence!", kindRefusal},
		{`I don't know the word "xyzzy".`, kindRefusal},
		{"[trace] success=true turn=3 score=0", kindTrace},
		{"A grand hall.", kindNarrative},
		{"Taken.", kindNarrative},
		{"", kindNarrative},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"The great hall stretches before you with its vaulted ceiling.", 30,
			"The great hall stretches\nbefore you with its vaulted\nceiling."},
		{"", 80, ""},
		{"one", 80, "one"},
		{"a b c d e", 3, "a b\nc d\ne"},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestRecallWalk(t *testing.T) {
	r := newRecall(8)
	for _, line := range []string{"look", "go north", "take key"} {
		r.Remember(line)
	}

	script := []struct {
		op   string
		want string
		ok   bool
	}{
		{"back", "take key", true},
		{"back", "go north", true},
		{"back", "look", true},
		{"back", "look", true}, // sticks at the oldest
		{"forward", "go north", true},
		{"forward", "take key", true},
		{"forward", "", false}, // past the newest: back to live input
		{"forward", "", false},
	}
	for i, st := range script {
		var got string
		var ok bool
		if st.op == "back" {
			got, ok = r.Back()
		} else {
			got, ok = r.Forward()
		}
		if got != st.want || ok != st.ok {
			t.Errorf("step %d %s = (%q, %v), want (%q, %v)",
				i, st.op, got, ok, st.want, st.ok)
		}
	}
}

func TestRecallEmpty(t *testing.T) {
	r := newRecall(4)
	if _, ok := r.Back(); ok {
		t.Error("Back on empty recall returned an entry")
	}
	if _, ok := r.Forward(); ok {
		t.Error("Forward on empty recall returned an entry")
	}
}

func TestRecallLimitAndDedup(t *testing.T) {
	r := newRecall(2)
	r.Remember("look")
	r.Remember("look") // consecutive repeat, not recorded
	r.Remember("wait")
	r.Remember("inventory") // evicts "look"

	if len(r.lines) != 2 {
		t.Fatalf("recorded %d lines, want 2", len(r.lines))
	}
	for _, want := range []string{"inventory", "wait", "wait"} {
		if got, _ := r.Back(); got != want {
			t.Errorf("Back = %q, want %q", got, want)
		}
	}
}

func TestRecallRememberResetsCursor(t *testing.T) {
	r := newRecall(4)
	r.Remember("look")
	r.Remember("wait")
	r.Back() // "wait"
	r.Back() // "look"

	// A new submission always lands the cursor back on live input.
	r.Remember("score")
	if got, _ := r.Back(); got != "score" {
		t.Errorf("Back after Remember = %q, want %q", got, "score")
	}
}

func TestHandleMeta_Quit(t *testing.T) {
	m := testModel(t)

	_, quit := m.handleMeta("/quit")
	if !quit {
		t.Error("expected quit=true for /quit")
	}

	_, quit = m.handleMeta("/exit")
	if !quit {
		t.Error("expected quit=true for /exit")
	}
}

func TestHandleMeta_SaveAndLoad(t *testing.T) {
	m := testModel(t)

	output, quit := m.handleMeta("/save test")
	if quit {
		t.Error("save should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Game saved") {
		t.Errorf("expected save confirmation, got %v", output)
	}

	output, quit = m.handleMeta("/load test")
	if quit {
		t.Error("load should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Game loaded from test") {
		t.Errorf("expected load confirmation, got %v", output)
	}
}

func TestHandleMeta_LoadNonexistent(t *testing.T) {
	m := testModel(t)

	output, quit := m.handleMeta("/load nonexistent")
	if quit {
		t.Error("load should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Load failed") {
		t.Errorf("expected load failure, got %v", output)
	}
}

func TestHandleMeta_Saves(t *testing.T) {
	m := testModel(t)

	output, _ := m.handleMeta("/saves")
	if len(output) == 0 || !strings.Contains(output[0], "No saved games") {
		t.Errorf("expected empty catalog message, got %v", output)
	}

	m.handleMeta("/save first")
	output, _ = m.handleMeta("/saves")
	joined := strings.Join(output, "\n")
	if !strings.Contains(joined, "first") {
		t.Errorf("expected saved slot in listing, got %v", output)
	}
}

func TestHandleMeta_Help(t *testing.T) {
	m := testModel(t)

	output, quit := m.handleMeta("/help")
	if quit {
		t.Error("help should not quit")
	}

	joined := strings.Join(output, "\n")
	for _, expected := range []string{"/save", "/load", "/quit", "look", "inventory"} {
		if !strings.Contains(joined, expected) {
			t.Errorf("expected %q in help output", expected)
		}
	}
}

func TestHandleMeta_Trace(t *testing.T) {
	m := testModel(t)

	output, _ := m.handleMeta("/trace")
	if !m.trace {
		t.Error("expected trace to be enabled")
	}
	if len(output) == 0 || !strings.Contains(output[0], "enabled") {
		t.Errorf("expected enabled message, got %v", output)
	}

	output, _ = m.handleMeta("/trace")
	if m.trace {
		t.Error("expected trace to be disabled")
	}
	if len(output) == 0 || !strings.Contains(output[0], "disabled") {
		t.Errorf("expected disabled message, got %v", output)
	}
}

func TestHandleMeta_Unknown(t *testing.T) {
	m := testModel(t)

	output, quit := m.handleMeta("/bogus")
	if quit {
		t.Error("unknown command should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Unknown command") {
		t.Errorf("expected unknown command message, got %v", output)
	}
}

func TestHandleMeta_State(t *testing.T) {
	m := testModel(t)

	output, quit := m.handleMeta("/state")
	if quit {
		t.Error("state should not quit")
	}

	joined := strings.Join(output, "\n")
	if !strings.Contains(joined, "Location: hall") {
		t.Error("expected location in state output")
	}
	if !strings.Contains(joined, "Turn:") {
		t.Error("expected turn count in state output")
	}
}

func TestRenderStatusBar(t *testing.T) {
	m := testModel(t)
	m.width = 80

	bar := m.renderStatusBar()
	if !strings.Contains(bar, "Grand Hall") {
		t.Error("expected room name in status bar")
	}
	if !strings.Contains(bar, "Score: 0") {
		t.Error("expected score in status bar")
	}
}
