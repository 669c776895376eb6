package world

import (
	"strings"
	"testing"
)

// testWorld builds a two-room world with a container, some portable
// items, and a lamp.
func testWorld(t *testing.T) *World {
	t.Helper()
	w := New()
	w.Rooms["hall"] = &Room{
		ID:    "hall",
		Name:  "Hall",
		Long:  "A grand hall.",
		Exits: map[string]Exit{"north": {To: "cave"}},
	}
	w.Rooms["cave"] = &Room{
		ID:    "cave",
		Name:  "Cave",
		Long:  "A damp cave.",
		Dark:  true,
		Exits: map[string]Exit{"south": {To: "hall"}},
	}
	w.Objects["chest"] = &Object{
		ID: "chest", Name: "chest", Synonyms: []string{"chest"},
		Location: Nowhere, Flags: FlagContainer | FlagOpen | FlagFixed,
	}
	w.Objects["coin"] = &Object{
		ID: "coin", Name: "gold coin", Synonyms: []string{"coin"},
		Location: Nowhere, Flags: FlagTakeable,
	}
	w.Objects["lamp"] = &Object{
		ID: "lamp", Name: "lamp", Synonyms: []string{"lamp"},
		Location: Nowhere, Flags: FlagTakeable | FlagLightSource,
	}
	for _, p := range []struct{ id, dest string }{
		{"chest", "hall"}, {"coin", "chest"}, {"lamp", "hall"}, {Player, "hall"},
	} {
		if err := w.Move(p.id, p.dest); err != nil {
			t.Fatalf("placing %s: %v", p.id, err)
		}
	}
	return w
}

func TestMove(t *testing.T) {
	w := testWorld(t)

	if err := w.Move("lamp", Player); err != nil {
		t.Fatalf("Move to player: %v", err)
	}
	if got := w.Get("lamp").Location; got != Player {
		t.Errorf("lamp location = %q, want %q", got, Player)
	}
	if !w.Carrying("lamp") {
		t.Error("Carrying(lamp) = false after move to player")
	}
	// The hall must no longer list the lamp.
	for _, id := range w.Rooms["hall"].Contents {
		if id == "lamp" {
			t.Error("hall still lists lamp after move")
		}
	}
	if err := w.Check(); err != nil {
		t.Errorf("Check after move: %v", err)
	}
}

func TestMoveRepeatedNeverDuplicates(t *testing.T) {
	w := testWorld(t)

	// Moving an object to the holder it is already in must not create
	// a second contents entry.
	for i := 0; i < 3; i++ {
		if err := w.Move("coin", "chest"); err != nil {
			t.Fatalf("Move #%d: %v", i, err)
		}
	}
	count := 0
	for _, id := range w.Get("chest").Contents {
		if id == "coin" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("chest lists coin %d times, want 1", count)
	}
	if err := w.Check(); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestMoveToNowhere(t *testing.T) {
	w := testWorld(t)

	if err := w.Move("coin", Nowhere); err != nil {
		t.Fatalf("Move to nowhere: %v", err)
	}
	if got := w.Get("coin").Location; got != Nowhere {
		t.Errorf("coin location = %q, want %q", got, Nowhere)
	}
	if len(w.Get("chest").Contents) != 0 {
		t.Errorf("chest contents = %v, want empty", w.Get("chest").Contents)
	}
	if err := w.Check(); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestMoveErrors(t *testing.T) {
	w := testWorld(t)

	if err := w.Move("ghost", "hall"); err == nil {
		t.Error("Move of unknown object succeeded")
	}
	if err := w.Move("coin", "limbo"); err == nil {
		t.Error("Move to unknown destination succeeded")
	}
	// A failed move leaves the world intact.
	if err := w.Check(); err != nil {
		t.Errorf("Check after failed moves: %v", err)
	}
}

func TestCheckDetectsCorruption(t *testing.T) {
	w := testWorld(t)

	// Break the invariant by editing Location behind Move's back.
	w.Get("coin").Location = "hall"
	err := w.Check()
	if err == nil {
		t.Fatal("Check accepted corrupt world")
	}
	if !strings.Contains(err.Error(), "world corrupt") {
		t.Errorf("Check error = %q, want world corrupt", err)
	}
}

func TestCarryingNested(t *testing.T) {
	w := testWorld(t)

	w.Objects["sack"] = &Object{
		ID: "sack", Name: "sack", Synonyms: []string{"sack"},
		Location: Nowhere, Flags: FlagTakeable | FlagContainer | FlagOpen,
	}
	if err := w.Move("sack", Player); err != nil {
		t.Fatal(err)
	}
	if err := w.Move("coin", "sack"); err != nil {
		t.Fatal(err)
	}
	if !w.Carrying("coin") {
		t.Error("Carrying(coin) = false for coin inside carried sack")
	}
	if w.Carrying("chest") {
		t.Error("Carrying(chest) = true for object in room")
	}
}

func TestFlags(t *testing.T) {
	obj := &Object{}
	obj.Set(FlagOpen | FlagContainer)
	if !obj.Has(FlagOpen) || !obj.Has(FlagContainer) {
		t.Error("Set/Has mismatch")
	}
	if obj.Has(FlagOpen | FlagLocked) {
		t.Error("Has reported a flag that was never set")
	}
	obj.Clear(FlagOpen)
	if obj.Has(FlagOpen) {
		t.Error("Clear did not clear")
	}
}

func TestParseFlag(t *testing.T) {
	if f, ok := ParseFlag("takeable"); !ok || f != FlagTakeable {
		t.Errorf("ParseFlag(takeable) = %v, %v", f, ok)
	}
	if _, ok := ParseFlag("bogus"); ok {
		t.Error("ParseFlag accepted unknown name")
	}
}

func TestKnownAsAndDescribedBy(t *testing.T) {
	obj := &Object{
		Synonyms:   []string{"button", "switch"},
		Adjectives: []string{"red", "round"},
	}
	if !obj.KnownAs("button") || !obj.KnownAs("switch") {
		t.Error("KnownAs missed a synonym")
	}
	if obj.KnownAs("lever") {
		t.Error("KnownAs matched a stranger")
	}
	if !obj.DescribedBy([]string{"red"}) {
		t.Error("DescribedBy rejected a matching adjective")
	}
	if !obj.DescribedBy(nil) {
		t.Error("DescribedBy rejected the empty adjective list")
	}
	if obj.DescribedBy([]string{"red", "blue"}) {
		t.Error("DescribedBy accepted a wrong adjective")
	}
}
