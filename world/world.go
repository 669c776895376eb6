// Package world implements the mutable object graph: rooms, objects,
// actors, containment, and the per-turn scope computation the parser
// depends on. Objects are created once at initialization and relocated
// for the life of a session — never destroyed, only moved to Nowhere.
package world

import (
	"fmt"
	"sort"

	"github.com/jsredmond/lantern/types"
)

// Nowhere is the sentinel location for objects removed from play
// (consumed, destroyed, not yet introduced). Reserved: no room or
// object may use it as an ID.
const Nowhere = "nowhere"

// Player is the ID of the player's avatar object. Its Contents list is
// the inventory; its Location is the current room.
const Player = "player"

// Flag is a capability bit on an object. Handlers dispatch on these
// instead of a type hierarchy.
type Flag uint32

const (
	FlagTakeable Flag = 1 << iota
	FlagContainer
	FlagOpen
	FlagLocked
	FlagLightSource
	FlagLit
	FlagReadable
	FlagFixed // fixed in place, immovable scenery
	FlagActor
	FlagWeapon
	FlagTreasure
	FlagDoor
	FlagEdible
	FlagTransparent // contents visible while closed
)

var flagNames = map[string]Flag{
	"takeable":    FlagTakeable,
	"container":   FlagContainer,
	"open":        FlagOpen,
	"locked":      FlagLocked,
	"light":       FlagLightSource,
	"lit":         FlagLit,
	"readable":    FlagReadable,
	"fixed":       FlagFixed,
	"actor":       FlagActor,
	"weapon":      FlagWeapon,
	"treasure":    FlagTreasure,
	"door":        FlagDoor,
	"edible":      FlagEdible,
	"transparent": FlagTransparent,
}

// ParseFlag maps a flag name from game data to its bit.
func ParseFlag(name string) (Flag, bool) {
	f, ok := flagNames[name]
	return f, ok
}

// Object is a single thing in the world: item, scenery, door, or actor.
type Object struct {
	ID         string
	Name       string   // display name, e.g. "brass lantern"
	Synonyms   []string // nouns that refer to it: "lamp", "lantern"
	Adjectives []string // "brass"
	Location   string   // room ID, container/actor ID, Player, or Nowhere
	Flags      Flag
	Contents   []string // ordered child object IDs
	Text       string   // text revealed by "read" when FlagReadable
	Value      int      // score awarded on first take, for treasures
	Size       int
	Fuel       int // turns of fuel per stage, for light sources

	// Actor fields, meaningful only when FlagActor is set.
	Phase      types.Phase
	Strength   int // hit points; <= 0 means beaten
	Skill      int // to-hit modifier
	Wanders    bool
	Aggressive bool // attacks unprovoked once aware of the player
}

// Has reports whether the object carries all given flags.
func (o *Object) Has(f Flag) bool { return o.Flags&f == f }

// Set turns the given flags on.
func (o *Object) Set(f Flag) { o.Flags |= f }

// Clear turns the given flags off.
func (o *Object) Clear(f Flag) { o.Flags &^= f }

// KnownAs reports whether the given noun refers to this object.
func (o *Object) KnownAs(noun string) bool {
	for _, s := range o.Synonyms {
		if s == noun {
			return true
		}
	}
	return false
}

// DescribedBy reports whether every given adjective applies to this object.
func (o *Object) DescribedBy(adjectives []string) bool {
	for _, want := range adjectives {
		found := false
		for _, have := range o.Adjectives {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Exit is one directional connection out of a room. Exits need not be
// symmetric. An exit may be gated by a door object (must be open) or a
// global flag.
type Exit struct {
	To       string
	Door     string // door object ID that must be open, "" if unconditional
	IfFlag   string // global flag that must be set, "" if unconditional
	FailText string // shown when the exit is barred
}

// Room is one location. Contents is the ordered list of object IDs
// directly in the room, kept consistent with each object's Location.
type Room struct {
	ID       string
	Name     string
	Short    string
	Long     string
	Exits    map[string]Exit
	Contents []string
	Scenery  []string // room-scoped scenery IDs, in scope only while here
	Dark     bool
	Visited  bool
}

// World is the complete mutable object graph. Single writer per turn;
// no locking discipline is needed.
type World struct {
	Rooms   map[string]*Room
	Objects map[string]*Object
	Scenery []string        // world-global scenery, always in scope
	Flags   map[string]bool // global named flags for conditional exits etc.
}

// New returns an empty world with a player object placed Nowhere.
func New() *World {
	w := &World{
		Rooms:   map[string]*Room{},
		Objects: map[string]*Object{},
		Flags:   map[string]bool{},
	}
	w.Objects[Player] = &Object{
		ID:       Player,
		Name:     "you",
		Location: Nowhere,
		Flags:    FlagActor,
		Strength: 5,
	}
	return w
}

// Here returns the player's current room ID.
func (w *World) Here() string {
	return w.Objects[Player].Location
}

// HereRoom returns the player's current room, or nil when the player is
// Nowhere (pre-initialization only).
func (w *World) HereRoom() *Room {
	return w.Rooms[w.Here()]
}

// Get returns the object with the given ID, or nil.
func (w *World) Get(id string) *Object {
	return w.Objects[id]
}

// Inventory returns a copy of the player's carried object IDs in order.
func (w *World) Inventory() []string {
	inv := w.Objects[Player].Contents
	out := make([]string, len(inv))
	copy(out, inv)
	return out
}

// Carrying reports whether the player carries the object, directly or
// inside a carried container.
func (w *World) Carrying(id string) bool {
	obj := w.Objects[id]
	for obj != nil && obj.Location != Nowhere {
		if obj.Location == Player {
			return true
		}
		if _, isRoom := w.Rooms[obj.Location]; isRoom {
			return false
		}
		obj = w.Objects[obj.Location]
	}
	return false
}

// Move relocates an object atomically: it is removed from its current
// holder's contents and appended to the destination's, and its Location
// updated, in one step. dest may be a room ID, a container/actor object
// ID, Player, or Nowhere. An object is never observed in two places.
func (w *World) Move(id, dest string) error {
	obj, ok := w.Objects[id]
	if !ok {
		return fmt.Errorf("move: no such object %q", id)
	}
	if dest != Nowhere {
		_, isRoom := w.Rooms[dest]
		_, isObj := w.Objects[dest]
		if !isRoom && !isObj {
			return fmt.Errorf("move: no such destination %q for %q", dest, id)
		}
	}

	// Detach from the current holder.
	switch loc := obj.Location; {
	case loc == Nowhere:
	default:
		if room, ok := w.Rooms[loc]; ok {
			room.Contents = removeID(room.Contents, id)
		} else if holder, ok := w.Objects[loc]; ok {
			holder.Contents = removeID(holder.Contents, id)
		}
	}

	// Attach to the new holder.
	obj.Location = dest
	if dest != Nowhere {
		if room, ok := w.Rooms[dest]; ok {
			room.Contents = append(room.Contents, id)
		} else {
			w.Objects[dest].Contents = append(w.Objects[dest].Contents, id)
		}
	}
	return nil
}

func removeID(list []string, id string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// InRoom returns a copy of the object IDs directly in the given room.
func (w *World) InRoom(roomID string) []string {
	room, ok := w.Rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]string, len(room.Contents))
	copy(out, room.Contents)
	return out
}

// Check verifies the containment invariant: every placed object appears
// exactly once in its holder's contents, and every content entry points
// back. A violation is an engine fault, not a player error.
func (w *World) Check() error {
	for id, obj := range w.Objects {
		loc := obj.Location
		if loc == Nowhere {
			continue
		}
		var contents []string
		if room, ok := w.Rooms[loc]; ok {
			contents = room.Contents
		} else if holder, ok := w.Objects[loc]; ok {
			contents = holder.Contents
		} else {
			return fmt.Errorf("world corrupt: object %q located in unknown %q", id, loc)
		}
		found := 0
		for _, c := range contents {
			if c == id {
				found++
			}
		}
		if found != 1 {
			return fmt.Errorf("world corrupt: object %q appears %d times in %q", id, found, loc)
		}
	}
	for hid, holder := range w.Objects {
		for _, cid := range holder.Contents {
			child, ok := w.Objects[cid]
			if !ok {
				return fmt.Errorf("world corrupt: %q contains unknown object %q", hid, cid)
			}
			if child.Location != hid {
				return fmt.Errorf("world corrupt: %q lists %q but its location is %q", hid, cid, child.Location)
			}
		}
	}
	for rid, room := range w.Rooms {
		for _, cid := range room.Contents {
			child, ok := w.Objects[cid]
			if !ok {
				return fmt.Errorf("world corrupt: room %q contains unknown object %q", rid, cid)
			}
			if child.Location != rid {
				return fmt.Errorf("world corrupt: room %q lists %q but its location is %q", rid, cid, child.Location)
			}
		}
	}
	return nil
}

// SortedObjectIDs returns all object IDs sorted, for deterministic
// iteration in saves and dumps.
func (w *World) SortedObjectIDs() []string {
	ids := make([]string, 0, len(w.Objects))
	for id := range w.Objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
