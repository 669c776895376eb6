package loader

import (
	"strings"
	"testing"

	"github.com/jsredmond/lantern/types"
	"github.com/jsredmond/lantern/world"
)

func TestLoad_MinimalGame(t *testing.T) {
	defs, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if defs.Meta.Title != "Minimal Test Game" {
		t.Errorf("Title = %q, want %q", defs.Meta.Title, "Minimal Test Game")
	}
	if defs.Meta.Start != "hall" {
		t.Errorf("Start = %q, want %q", defs.Meta.Start, "hall")
	}
	if len(defs.Rooms) != 1 || defs.Rooms[0].ID != "hall" {
		t.Fatalf("Rooms = %+v, want one hall", defs.Rooms)
	}
	if defs.Rooms[0].Long != "A grand hall." {
		t.Errorf("hall long = %q", defs.Rooms[0].Long)
	}
}

func TestLoad_FullGame(t *testing.T) {
	defs, err := Load("testdata/full")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Game metadata.
	if defs.Meta.Title != "Full Test Game" {
		t.Errorf("Title = %q", defs.Meta.Title)
	}
	if defs.Meta.MaxScore != 7 {
		t.Errorf("MaxScore = %d", defs.Meta.MaxScore)
	}
	if defs.Meta.TrophyCase != "chest" {
		t.Errorf("TrophyCase = %q", defs.Meta.TrophyCase)
	}

	// Rooms.
	if len(defs.Rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(defs.Rooms))
	}
	var passage RoomDef
	for _, rd := range defs.Rooms {
		if rd.ID == "passage" {
			passage = rd
		}
	}
	if !passage.Dark {
		t.Error("passage not dark")
	}
	north := passage.Exits["north"]
	if north.To != "vault" || north.Door != "iron_door" || north.FailText != "The iron door is shut." {
		t.Errorf("passage north exit = %+v", north)
	}
	if passage.Exits["east"].IfFlag != "wall_open" {
		t.Errorf("passage east exit = %+v", passage.Exits["east"])
	}

	// Objects and actors share one definition list; the actor flag is
	// implied by the actor{} form.
	var warden, idol ObjectDef
	for _, od := range defs.Objects {
		switch od.ID {
		case "warden":
			warden = od
		case "idol":
			idol = od
		}
	}
	if !warden.Hostile || !warden.Aggressive || !warden.Wanders {
		t.Errorf("warden = %+v", warden)
	}
	found := false
	for _, f := range warden.Flags {
		if f == "actor" {
			found = true
		}
	}
	if !found {
		t.Error("actor{} did not imply the actor flag")
	}
	if idol.Value != 7 || idol.Size != 2 {
		t.Errorf("idol = %+v", idol)
	}
}

func TestBuild(t *testing.T) {
	defs, err := Load("testdata/full")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	w, err := defs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := w.Check(); err != nil {
		t.Fatalf("built world fails containment check: %v", err)
	}
	torch := w.Get("torch")
	if !torch.Has(world.FlagLightSource | world.FlagLit) {
		t.Error("torch flags not parsed")
	}
	if torch.Fuel != 20 {
		t.Errorf("torch fuel = %d", torch.Fuel)
	}
	if w.Get("warden").Phase != types.PhaseHostile {
		t.Error("hostile actor did not start hostile")
	}
	if got := w.Get("iron_door"); !got.Has(world.FlagLocked) {
		t.Error("iron door not locked")
	}

	// Global scenery lands in the world list, not a room.
	foundMist := false
	for _, id := range w.Scenery {
		if id == "mist" {
			foundMist = true
		}
	}
	if !foundMist {
		t.Error("global object missing from world scenery")
	}
	if w.Get("mist").Location != world.Nowhere {
		t.Errorf("mist location = %q, want nowhere", w.Get("mist").Location)
	}

	// Build returns a fresh world each call.
	w2, err := defs.Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := w2.Move("idol", "entrance"); err != nil {
		t.Fatal(err)
	}
	if w.Get("idol").Location != "vault" {
		t.Error("mutating one build leaked into another")
	}
}

func TestVocabulary(t *testing.T) {
	defs, err := Load("testdata/full")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	vt, err := defs.Vocabulary()
	if err != nil {
		t.Fatalf("Vocabulary: %v", err)
	}

	if e, ok := vt.Classify("idol"); !ok || e.Primary != types.RoleNoun {
		t.Errorf("idol = %+v, %v", e, ok)
	}
	if e, ok := vt.Classify("golden"); !ok || e.Primary != types.RoleAdjective {
		t.Errorf("golden = %+v, %v", e, ok)
	}
	// Built-ins survive the extension.
	if vt.Expand("x") != "examine" {
		t.Error("built-in vocabulary lost")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("testdata/does_not_exist"); err == nil {
		t.Error("Load accepted a missing directory")
	}
}

func TestCompileRejectsBadContent(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{
			name: "no game block",
			code: `room{id = "hall", name = "Hall"}`,
			want: "no game{} block",
		},
		{
			name: "room without id",
			code: `game{title = "T", start = "hall"}
			       room{name = "Hall"}`,
			want: "room with no id",
		},
		{
			name: "unknown flag",
			code: `game{title = "T", start = "hall"}
			       room{id = "hall", name = "Hall"}
			       object{id = "rock", name = "rock", synonyms = {"rock"},
			              location = "hall", flags = {"levitating"}}`,
			want: "unknown flag",
		},
		{
			name: "missing start room",
			code: `game{title = "T", start = "nave"}
			       room{id = "hall", name = "Hall"}`,
			want: "start",
		},
		{
			name: "sandboxed stdlib",
			code: `game{title = "T", start = "hall"}
			       room{id = "hall", name = "Hall"}
			       dofile("evil.lua")`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileSources([]source{{name: "game.lua", code: tt.code}})
			if tt.name == "unknown flag" {
				// Flag names are checked at Build, not compile.
				defs, cerr := compileSources([]source{{name: "game.lua", code: tt.code}})
				if cerr != nil {
					t.Fatalf("compile: %v", cerr)
				}
				if _, berr := defs.Build(); berr == nil ||
					!strings.Contains(berr.Error(), tt.want) {
					t.Errorf("Build error = %v, want %q", berr, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("compile accepted bad content")
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}
