// Package save serializes the full session — object graph, scheduler,
// clock, score, pronoun memory, RNG position — to JSON and restores it
// into an equivalent live game. Round-trip fidelity is a hard
// requirement: a restored game must behave identically to the original
// under the same inputs.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/jsredmond/lantern/engine"
	"github.com/jsredmond/lantern/engine/schedule"
	"github.com/jsredmond/lantern/types"
	"github.com/jsredmond/lantern/world"
)

// FormatVersion guards against loading saves from older layouts.
const FormatVersion = 1

// ObjectState is the mutable part of one object.
type ObjectState struct {
	Location string   `json:"location"`
	Flags    uint32   `json:"flags"`
	Contents []string `json:"contents"`
	Phase    int      `json:"phase,omitempty"`
	Strength int      `json:"strength,omitempty"`
}

// RoomState is the mutable part of one room.
type RoomState struct {
	Contents []string `json:"contents"`
	Visited  bool     `json:"visited"`
}

// Data is the serializable snapshot.
type Data struct {
	Format    int    `json:"format"`
	Game      string `json:"game"`
	Version   string `json:"version"`
	Turn      int    `json:"turn"`
	Score     int    `json:"score"`
	State     int    `json:"state"`
	Verbose   bool   `json:"verbose"`
	DarkTurns int    `json:"dark_turns"`

	Refs       types.Refs             `json:"refs"`
	WorldFlags map[string]bool        `json:"world_flags"`
	Objects    map[string]ObjectState `json:"objects"`
	Rooms      map[string]RoomState   `json:"rooms"`
	Events     []schedule.State       `json:"events"`

	RNGSeed     int64 `json:"rng_seed"`
	RNGPosition int64 `json:"rng_position"`
}

// Snapshot captures the game into save data.
func Snapshot(g *engine.Game) *Data {
	d := &Data{
		Format:      FormatVersion,
		Game:        g.Meta.Title,
		Version:     g.Meta.Version,
		Turn:        g.Turn,
		Score:       g.Score,
		State:       int(g.State),
		Verbose:     g.Verbose,
		DarkTurns:   g.DarkTurns,
		Refs:        g.Refs,
		WorldFlags:  map[string]bool{},
		Objects:     map[string]ObjectState{},
		Rooms:       map[string]RoomState{},
		Events:      g.Events.States(),
		RNGSeed:     g.RNG.Seed(),
		RNGPosition: g.RNG.Position(),
	}
	for name, v := range g.World.Flags {
		d.WorldFlags[name] = v
	}
	for _, id := range g.World.SortedObjectIDs() {
		obj := g.World.Get(id)
		d.Objects[id] = ObjectState{
			Location: obj.Location,
			Flags:    uint32(obj.Flags),
			Contents: append([]string(nil), obj.Contents...),
			Phase:    int(obj.Phase),
			Strength: obj.Strength,
		}
	}
	for id, room := range g.World.Rooms {
		d.Rooms[id] = RoomState{
			Contents: append([]string(nil), room.Contents...),
			Visited:  room.Visited,
		}
	}
	return d
}

// Marshal renders save data as indented JSON.
func Marshal(d *Data) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal parses save data and validates the format version.
func Unmarshal(raw []byte) (*Data, error) {
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parsing save: %w", err)
	}
	if d.Format != FormatVersion {
		return nil, fmt.Errorf("save format %d not supported (want %d)", d.Format, FormatVersion)
	}
	if d.Refs.Recency == nil {
		d.Refs.Recency = map[string]int{}
	}
	return &d, nil
}

// Restore applies save data onto a live game built from the same
// definitions. Saves referencing unknown objects, rooms, or events are
// rejected: they belong to a different world.
func Restore(g *engine.Game, d *Data) error {
	if d.Game != "" && d.Game != g.Meta.Title {
		return fmt.Errorf("save is for %q, not %q", d.Game, g.Meta.Title)
	}
	for id := range d.Objects {
		if g.World.Get(id) == nil {
			return fmt.Errorf("save references unknown object %q", id)
		}
	}
	for id := range d.Rooms {
		if _, ok := g.World.Rooms[id]; !ok {
			return fmt.Errorf("save references unknown room %q", id)
		}
	}

	for id, st := range d.Objects {
		obj := g.World.Get(id)
		obj.Location = st.Location
		obj.Flags = world.Flag(st.Flags)
		obj.Contents = append([]string(nil), st.Contents...)
		obj.Phase = types.Phase(st.Phase)
		obj.Strength = st.Strength
	}
	for id, st := range d.Rooms {
		room := g.World.Rooms[id]
		room.Contents = append([]string(nil), st.Contents...)
		room.Visited = st.Visited
	}
	g.World.Flags = map[string]bool{}
	for name, v := range d.WorldFlags {
		g.World.Flags[name] = v
	}

	if err := g.Events.Restore(d.Events); err != nil {
		return err
	}

	g.Turn = d.Turn
	g.Score = d.Score
	g.State = types.GameState(d.State)
	g.Verbose = d.Verbose
	g.DarkTurns = d.DarkTurns
	g.Refs = d.Refs
	g.RNG = engine.RestoreRNG(d.RNGSeed, d.RNGPosition)

	// A corrupt snapshot must not become a live world.
	return g.World.Check()
}
