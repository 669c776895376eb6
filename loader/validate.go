package loader

import (
	"fmt"

	"github.com/jsredmond/lantern/world"
)

// validate cross-checks references before any world is built, so
// content errors surface at load time rather than mid-session.
func validate(d *Defs) error {
	rooms := map[string]bool{}
	for _, rd := range d.Rooms {
		if rooms[rd.ID] {
			return fmt.Errorf("duplicate room id %q", rd.ID)
		}
		if rd.ID == world.Nowhere || rd.ID == world.Player {
			return fmt.Errorf("room id %q is reserved", rd.ID)
		}
		rooms[rd.ID] = true
	}

	objects := map[string]bool{}
	for _, od := range d.Objects {
		if objects[od.ID] {
			return fmt.Errorf("duplicate object id %q", od.ID)
		}
		if od.ID == world.Nowhere || od.ID == world.Player {
			return fmt.Errorf("object id %q is reserved", od.ID)
		}
		if rooms[od.ID] {
			return fmt.Errorf("id %q used for both a room and an object", od.ID)
		}
		objects[od.ID] = true
		if len(od.Synonyms) == 0 {
			return fmt.Errorf("object %q has no synonyms; it can never be referenced", od.ID)
		}
	}

	if d.Meta.Start == "" {
		return fmt.Errorf("game has no start room")
	}
	if !rooms[d.Meta.Start] {
		return fmt.Errorf("start room %q does not exist", d.Meta.Start)
	}
	if tc := d.Meta.TrophyCase; tc != "" && !objects[tc] {
		return fmt.Errorf("trophy case %q does not exist", tc)
	}

	for _, rd := range d.Rooms {
		for dir, exit := range rd.Exits {
			if !rooms[exit.To] {
				return fmt.Errorf("room %q: exit %s leads to unknown room %q", rd.ID, dir, exit.To)
			}
			if exit.Door != "" && !objects[exit.Door] {
				return fmt.Errorf("room %q: exit %s gated by unknown door %q", rd.ID, dir, exit.Door)
			}
		}
		for _, id := range rd.Scenery {
			if !objects[id] {
				return fmt.Errorf("room %q: unknown scenery object %q", rd.ID, id)
			}
		}
	}

	for _, od := range d.Objects {
		loc := od.Location
		if loc == world.Nowhere || loc == world.Player {
			continue
		}
		if !rooms[loc] && !objects[loc] {
			return fmt.Errorf("object %q: unknown location %q", od.ID, loc)
		}
	}
	return nil
}
