package gamedata

import (
	"strings"
	"testing"

	"github.com/jsredmond/lantern/engine"
	"github.com/jsredmond/lantern/world"
)

func TestDefaultGameLoads(t *testing.T) {
	defs, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if defs.Meta.Title == "" || defs.Meta.Start == "" {
		t.Fatalf("incomplete metadata: %+v", defs.Meta)
	}

	w, err := defs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := w.Check(); err != nil {
		t.Fatalf("built world corrupt: %v", err)
	}

	// Each treasure scores on pickup and again on deposit, so the
	// values must add up to half the advertised maximum score.
	total := 0
	for _, id := range w.SortedObjectIDs() {
		obj := w.Get(id)
		if obj.Has(world.FlagTreasure) {
			total += obj.Value
		}
	}
	if total*2 != defs.Meta.MaxScore {
		t.Errorf("treasure values sum to %d, max_score is %d", total, defs.Meta.MaxScore)
	}

	if lunch := w.Get("lunch"); lunch == nil || !lunch.Has(world.FlagEdible) {
		t.Error("the kitchen should hold something edible")
	}
}

func TestOpeningTranscript(t *testing.T) {
	defs, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
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

	steps := []struct {
		input string
		want  string
	}{
		{"look", "West of House"},
		{"open mailbox", "Opening the small mailbox reveals: a leaflet"},
		{"take leaflet", "Taken."},
		{"read leaflet", "WELCOME TO THE GREAT UNDERGROUND!"},
	}
	for _, st := range steps {
		res, err := g.Step(st.input)
		if err != nil {
			t.Fatalf("Step(%q): %v", st.input, err)
		}
		found := false
		for _, line := range res.Output {
			if strings.Contains(line, st.want) {
				found = true
			}
		}
		if !found {
			t.Errorf("Step(%q) output = %v, want %q", st.input, res.Output, st.want)
		}
	}
}
