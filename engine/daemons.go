package engine

import (
	"fmt"
	"sort"

	"github.com/jsredmond/lantern/types"
	"github.com/jsredmond/lantern/world"
)

// dirExit pairs an exit with its direction for deterministic iteration.
type dirExit struct {
	Dir string
	world.Exit
}

// sortedExits returns a room's exits in direction order, so daemon
// movement draws the same RNG sequence for the same world state.
func sortedExits(room *world.Room) []dirExit {
	dirs := make([]string, 0, len(room.Exits))
	for d := range room.Exits {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	out := make([]dirExit, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, dirExit{Dir: d, Exit: room.Exits[d]})
	}
	return out
}

// actorDaemon drives one actor's state machine each turn:
// idle → aware → hostile → fleeing or dead. Wandering actors also take
// their movement step here. Reports whether it narrated anything.
func (g *Game) actorDaemon(id string) bool {
	actor := g.World.Get(id)
	if actor == nil || actor.Phase == types.PhaseDead {
		return false
	}
	before := len(g.pending)
	here := g.World.Here()

	switch {
	case actor.Phase == types.PhaseFleeing:
		g.flee(actor)
		if actor.Location != here {
			actor.Phase = types.PhaseAware
		}

	case actor.Location == here && actor.Phase == types.PhaseIdle:
		actor.Phase = types.PhaseAware
		g.say(fmt.Sprintf("The %s eyes you warily.", actor.Name))

	case actor.Location == here && actor.Phase == types.PhaseAware && actor.Aggressive:
		actor.Phase = types.PhaseHostile
		g.say(fmt.Sprintf("The %s moves to attack you!", actor.Name))

	case actor.Location == here && actor.Phase == types.PhaseHostile:
		g.actorSwing(actor)

	default:
		if actor.Wanders {
			if g.wander(actor) && actor.Location == here {
				g.say(fmt.Sprintf("A %s slips into the room.", actor.Name))
			}
			if actor.Location == here {
				g.stealTreasure(actor)
			}
		}
	}
	return len(g.pending) != before
}

// wander takes one step of a weighted random walk. The actor may stay
// put (weight 2) or take any open exit leading to a room with a way
// back (weight 1 each) — it never enters a room it cannot leave toward
// where it came from.
func (g *Game) wander(actor *world.Object) bool {
	room := g.World.Rooms[actor.Location]
	if room == nil {
		return false
	}
	destinations := []string{""} // stay put
	weights := []int{2}
	for _, de := range sortedExits(room) {
		dest := g.World.Rooms[de.To]
		if dest == nil || de.Door != "" || de.IfFlag != "" {
			continue
		}
		if !hasReturnEdge(dest, room.ID) {
			continue
		}
		destinations = append(destinations, de.To)
		weights = append(weights, 1)
	}
	to := destinations[g.RNG.WeightedPick(weights)]
	if to == "" {
		return false
	}
	wasHere := actor.Location == g.World.Here()
	if err := g.World.Move(actor.ID, to); err != nil {
		return false
	}
	if wasHere {
		g.say(fmt.Sprintf("The %s slips out of the room.", actor.Name))
	}
	return true
}

// hasReturnEdge reports whether dest has any unconditional exit back.
func hasReturnEdge(dest *world.Room, from string) bool {
	for _, exit := range dest.Exits {
		if exit.To == from && exit.Door == "" && exit.IfFlag == "" {
			return true
		}
	}
	return false
}

// stealTreasure gives a light-fingered actor a chance to pocket a
// treasure lying in its room.
func (g *Game) stealTreasure(actor *world.Object) {
	room := g.World.Rooms[actor.Location]
	if room == nil {
		return
	}
	for _, id := range g.World.InRoom(room.ID) {
		obj := g.World.Get(id)
		if obj == nil || !obj.Has(world.FlagTreasure) {
			continue
		}
		if !g.RNG.Chance(30) {
			continue
		}
		if err := g.World.Move(id, actor.ID); err != nil {
			return
		}
		if room.ID == g.World.Here() {
			g.say(fmt.Sprintf("The %s deftly pockets the %s.", actor.Name, obj.Name))
		}
		return
	}
}

// flee moves a frightened actor one room away from the player.
func (g *Game) flee(actor *world.Object) {
	room := g.World.Rooms[actor.Location]
	if room == nil {
		return
	}
	for _, de := range sortedExits(room) {
		dest := g.World.Rooms[de.To]
		if dest == nil || de.Door != "" || de.IfFlag != "" || de.To == g.World.Here() {
			continue
		}
		wasHere := actor.Location == g.World.Here()
		if err := g.World.Move(actor.ID, de.To); err != nil {
			return
		}
		if wasHere {
			g.say(fmt.Sprintf("The %s flees the room!", actor.Name))
		}
		return
	}
}

// fuelInterrupt burns one stage of a light source's fuel: two dimming
// warnings, then the light goes out for good. Each firing schedules
// the next stage — cross-event mutation the scheduler contract makes
// visible within the same pass.
func (g *Game) fuelInterrupt(id string) bool {
	obj := g.World.Get(id)
	if obj == nil || !obj.Has(world.FlagLit) {
		return false
	}
	nearby := g.World.Carrying(id) || obj.Location == g.World.Here()

	switch {
	case !g.World.Flags["fuel_warn1:"+id]:
		g.World.Flags["fuel_warn1:"+id] = true
		g.Events.Enable("fuel:"+id, obj.Fuel)
		if nearby {
			g.say(fmt.Sprintf("The %s appears a bit dimmer.", obj.Name))
			return true
		}
	case !g.World.Flags["fuel_warn2:"+id]:
		g.World.Flags["fuel_warn2:"+id] = true
		g.Events.Enable("fuel:"+id, obj.Fuel)
		if nearby {
			g.say(fmt.Sprintf("The %s is definitely dimmer now.", obj.Name))
			return true
		}
	default:
		obj.Clear(world.FlagLit)
		g.World.Flags["burned_out:"+id] = true
		if nearby {
			g.say(fmt.Sprintf("The %s has gone out.", obj.Name))
			if room := g.World.HereRoom(); room != nil && room.Dark && !g.World.LitHere() {
				g.say("It is now pitch black.")
			}
			return true
		}
	}
	return false
}

// darknessDaemon stalks the player through unlit rooms: one turn of
// grace with a warning, then each further turn risks death.
func (g *Game) darknessDaemon() bool {
	room := g.World.HereRoom()
	if room == nil || !room.Dark || g.World.LitHere() {
		g.DarkTurns = 0
		return false
	}
	g.DarkTurns++
	if g.DarkTurns == 1 {
		g.say("It is pitch black. You are likely to be eaten by a grue.")
		return true
	}
	if g.RNG.Chance(25) {
		g.die("Oh, no! You have walked into the slavering fangs of a lurking grue!")
		return true
	}
	return false
}
