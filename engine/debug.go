package engine

import (
	"fmt"

	"github.com/jsredmond/lantern/world"
)

// Out-of-band mutators used by tooling to construct specific states.
// They bypass the parser entirely and mutate the world and scheduler
// directly; nothing here counts as a player turn except AdvanceTurns.

// DebugTeleport moves the player to the given room.
func (g *Game) DebugTeleport(roomID string) error {
	if _, ok := g.World.Rooms[roomID]; !ok {
		return fmt.Errorf("debug: no such room %q", roomID)
	}
	if err := g.World.Move(world.Player, roomID); err != nil {
		return err
	}
	g.World.HereRoom().Visited = true
	return nil
}

// DebugGive forces an object into the player's inventory.
func (g *Game) DebugGive(objectID string) error {
	if g.World.Get(objectID) == nil {
		return fmt.Errorf("debug: no such object %q", objectID)
	}
	return g.World.Move(objectID, world.Player)
}

// DebugSetTimer enables an event with the given countdown (interrupts)
// or just enables it (daemons).
func (g *Game) DebugSetTimer(eventID string, ticks int) error {
	if g.Events.Get(eventID) == nil {
		return fmt.Errorf("debug: no such event %q", eventID)
	}
	g.Events.Enable(eventID, ticks)
	return nil
}

// DebugAdvanceTurns runs n scheduler passes without player commands,
// advancing the turn counter as real turns would.
func (g *Game) DebugAdvanceTurns(n int) []string {
	for i := 0; i < n; i++ {
		g.Turn++
		g.Events.Tick()
	}
	return g.drainPending()
}
