package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/jsredmond/lantern/engine"
	"github.com/jsredmond/lantern/engine/vocab"
	"github.com/jsredmond/lantern/types"
	"github.com/jsredmond/lantern/world"
)

// Defs is the immutable compiled form of a game's Lua content. Build
// produces a fresh live world each call, so restarts and tests get
// clean state.
type Defs struct {
	Meta    engine.Meta
	Rooms   []RoomDef
	Objects []ObjectDef
}

// RoomDef describes one room.
type RoomDef struct {
	ID      string
	Name    string
	Short   string
	Long    string
	Exits   map[string]world.Exit
	Scenery []string
	Dark    bool
}

// ObjectDef describes one object or actor.
type ObjectDef struct {
	ID         string
	Name       string
	Synonyms   []string
	Adjectives []string
	Location   string
	Flags      []string
	Text       string
	Value      int
	Size       int
	Fuel       int
	Global     bool // world-global scenery, in scope everywhere

	// Actor-only.
	Strength   int
	Skill      int
	Aggressive bool
	Wanders    bool
	Hostile    bool // starts in the hostile phase
}

// compile lowers the collected Lua tables to definitions.
func compile(coll *collector) (*Defs, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no game{} block defined")
	}
	d := &Defs{
		Meta: engine.Meta{
			Title:      getString(coll.game, "title"),
			Author:     getString(coll.game, "author"),
			Version:    getString(coll.game, "version"),
			Start:      getString(coll.game, "start"),
			Intro:      getString(coll.game, "intro"),
			MaxScore:   getInt(coll.game, "max_score"),
			TrophyCase: getString(coll.game, "trophy_case"),
		},
	}

	for _, tbl := range coll.rooms {
		room, err := compileRoom(tbl)
		if err != nil {
			return nil, err
		}
		d.Rooms = append(d.Rooms, room)
	}
	for _, tbl := range coll.objects {
		obj, err := compileObject(tbl, false)
		if err != nil {
			return nil, err
		}
		d.Objects = append(d.Objects, obj)
	}
	for _, tbl := range coll.actors {
		obj, err := compileObject(tbl, true)
		if err != nil {
			return nil, err
		}
		d.Objects = append(d.Objects, obj)
	}
	return d, nil
}

func compileRoom(tbl *lua.LTable) (RoomDef, error) {
	room := RoomDef{
		ID:      getString(tbl, "id"),
		Name:    getString(tbl, "name"),
		Short:   getString(tbl, "short"),
		Long:    getString(tbl, "long"),
		Exits:   map[string]world.Exit{},
		Scenery: getStrings(tbl, "scenery"),
		Dark:    getBool(tbl, "dark"),
	}
	if room.ID == "" {
		return room, fmt.Errorf("room with no id")
	}

	exits, ok := tbl.RawGetString("exits").(*lua.LTable)
	if ok {
		var err error
		exits.ForEach(func(k, v lua.LValue) {
			dir, okK := k.(lua.LString)
			if !okK {
				err = fmt.Errorf("room %s: exit key must be a direction", room.ID)
				return
			}
			switch dest := v.(type) {
			case lua.LString:
				room.Exits[string(dir)] = world.Exit{To: string(dest)}
			case *lua.LTable:
				room.Exits[string(dir)] = world.Exit{
					To:       getString(dest, "to"),
					Door:     getString(dest, "door"),
					IfFlag:   getString(dest, "if_flag"),
					FailText: getString(dest, "fail"),
				}
			default:
				err = fmt.Errorf("room %s: exit %s must be a room id or table", room.ID, dir)
			}
		})
		if err != nil {
			return room, err
		}
	}
	return room, nil
}

func compileObject(tbl *lua.LTable, isActor bool) (ObjectDef, error) {
	obj := ObjectDef{
		ID:         getString(tbl, "id"),
		Name:       getString(tbl, "name"),
		Synonyms:   getStrings(tbl, "synonyms"),
		Adjectives: getStrings(tbl, "adjectives"),
		Location:   getString(tbl, "location"),
		Flags:      getStrings(tbl, "flags"),
		Text:       getString(tbl, "text"),
		Value:      getInt(tbl, "value"),
		Size:       getInt(tbl, "size"),
		Fuel:       getInt(tbl, "fuel"),
		Global:     getBool(tbl, "global"),
		Strength:   getInt(tbl, "strength"),
		Skill:      getInt(tbl, "skill"),
		Aggressive: getBool(tbl, "aggressive"),
		Wanders:    getBool(tbl, "wanders"),
		Hostile:    getBool(tbl, "hostile"),
	}
	if obj.ID == "" {
		return obj, fmt.Errorf("object with no id")
	}
	if obj.Location == "" {
		obj.Location = world.Nowhere
	}
	if isActor {
		obj.Flags = append(obj.Flags, "actor")
	}
	return obj, nil
}

// Build assembles a fresh live world from the definitions.
func (d *Defs) Build() (*world.World, error) {
	w := world.New()

	for _, rd := range d.Rooms {
		exits := make(map[string]world.Exit, len(rd.Exits))
		for dir, e := range rd.Exits {
			exits[dir] = e
		}
		w.Rooms[rd.ID] = &world.Room{
			ID:      rd.ID,
			Name:    rd.Name,
			Short:   rd.Short,
			Long:    rd.Long,
			Exits:   exits,
			Scenery: append([]string(nil), rd.Scenery...),
			Dark:    rd.Dark,
		}
	}

	for _, od := range d.Objects {
		var flags world.Flag
		for _, name := range od.Flags {
			f, ok := world.ParseFlag(name)
			if !ok {
				return nil, fmt.Errorf("object %s: unknown flag %q", od.ID, name)
			}
			flags |= f
		}
		obj := &world.Object{
			ID:         od.ID,
			Name:       od.Name,
			Synonyms:   append([]string(nil), od.Synonyms...),
			Adjectives: append([]string(nil), od.Adjectives...),
			Location:   world.Nowhere,
			Flags:      flags,
			Text:       od.Text,
			Value:      od.Value,
			Size:       od.Size,
			Fuel:       od.Fuel,
			Strength:   od.Strength,
			Skill:      od.Skill,
			Aggressive: od.Aggressive,
			Wanders:    od.Wanders,
		}
		if od.Hostile {
			obj.Phase = types.PhaseHostile
		}
		w.Objects[od.ID] = obj
		if od.Global {
			w.Scenery = append(w.Scenery, od.ID)
		}
	}

	// Placement second pass, so containers exist before their
	// contents move in.
	for _, od := range d.Objects {
		if od.Location == world.Nowhere {
			continue
		}
		if err := w.Move(od.ID, od.Location); err != nil {
			return nil, fmt.Errorf("placing %s: %w", od.ID, err)
		}
	}
	return w, nil
}

// Vocabulary builds the word table: the engine's built-ins extended
// with every noun and adjective the game content introduces.
func (d *Defs) Vocabulary() (*vocab.Table, error) {
	vt, err := vocab.Build()
	if err != nil {
		return nil, err
	}
	for _, od := range d.Objects {
		for _, noun := range od.Synonyms {
			vt.AddNoun(noun)
		}
		for _, adj := range od.Adjectives {
			vt.AddAdjective(adj)
		}
	}
	return vt, nil
}

// --- Lua table accessors ---

func getString(tbl *lua.LTable, key string) string {
	if v, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(v)
	}
	return ""
}

func getInt(tbl *lua.LTable, key string) int {
	if v, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(v)
	}
	return 0
}

func getBool(tbl *lua.LTable, key string) bool {
	if v, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(v)
	}
	return false
}

func getStrings(tbl *lua.LTable, key string) []string {
	arr, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	arr.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}
