package loader

import (
	"strings"
	"testing"

	"github.com/jsredmond/lantern/engine"
	"github.com/jsredmond/lantern/world"
)

// baseDefs returns a minimal valid definition set to perturb.
func baseDefs() *Defs {
	return &Defs{
		Meta: engine.Meta{Title: "T", Start: "hall"},
		Rooms: []RoomDef{
			{ID: "hall", Name: "Hall",
				Exits: map[string]world.Exit{"north": {To: "hall"}}},
		},
		Objects: []ObjectDef{
			{ID: "rock", Name: "rock", Synonyms: []string{"rock"}, Location: "hall"},
		},
	}
}

func TestValidate(t *testing.T) {
	if err := validate(baseDefs()); err != nil {
		t.Fatalf("valid defs rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Defs)
		want   string
	}{
		{
			name: "duplicate room",
			mutate: func(d *Defs) {
				d.Rooms = append(d.Rooms, RoomDef{ID: "hall", Name: "Hall Again"})
			},
			want: "duplicate room",
		},
		{
			name: "reserved room id",
			mutate: func(d *Defs) {
				d.Rooms = append(d.Rooms, RoomDef{ID: world.Nowhere})
			},
			want: "reserved",
		},
		{
			name: "reserved object id",
			mutate: func(d *Defs) {
				d.Objects = append(d.Objects,
					ObjectDef{ID: world.Player, Synonyms: []string{"me"}})
			},
			want: "reserved",
		},
		{
			name: "duplicate object",
			mutate: func(d *Defs) {
				d.Objects = append(d.Objects,
					ObjectDef{ID: "rock", Synonyms: []string{"rock"}})
			},
			want: "duplicate object",
		},
		{
			name: "room and object share id",
			mutate: func(d *Defs) {
				d.Objects = append(d.Objects,
					ObjectDef{ID: "hall", Synonyms: []string{"hall"}})
			},
			want: "both a room and an object",
		},
		{
			name: "object without synonyms",
			mutate: func(d *Defs) {
				d.Objects = append(d.Objects, ObjectDef{ID: "mute"})
			},
			want: "no synonyms",
		},
		{
			name:   "no start room",
			mutate: func(d *Defs) { d.Meta.Start = "" },
			want:   "no start room",
		},
		{
			name:   "missing start room",
			mutate: func(d *Defs) { d.Meta.Start = "nave" },
			want:   "does not exist",
		},
		{
			name:   "missing trophy case",
			mutate: func(d *Defs) { d.Meta.TrophyCase = "vitrine" },
			want:   "trophy case",
		},
		{
			name: "exit to unknown room",
			mutate: func(d *Defs) {
				d.Rooms[0].Exits["south"] = world.Exit{To: "abyss"}
			},
			want: "unknown room",
		},
		{
			name: "exit with unknown door",
			mutate: func(d *Defs) {
				d.Rooms[0].Exits["north"] = world.Exit{To: "hall", Door: "portcullis"}
			},
			want: "unknown door",
		},
		{
			name: "unknown scenery",
			mutate: func(d *Defs) {
				d.Rooms[0].Scenery = []string{"fresco"}
			},
			want: "unknown scenery",
		},
		{
			name: "object in unknown location",
			mutate: func(d *Defs) {
				d.Objects[0].Location = "limbo"
			},
			want: "unknown location",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := baseDefs()
			tt.mutate(d)
			err := validate(d)
			if err == nil {
				t.Fatal("validate accepted bad defs")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}
