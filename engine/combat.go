package engine

import (
	"fmt"

	"github.com/jsredmond/lantern/types"
	"github.com/jsredmond/lantern/world"
)

// toHitThreshold is what a d10 plus the attacker's skill must reach.
const toHitThreshold = 7

// blow is one entry of the fixed damage-severity table. A fatal blow
// kills outright regardless of remaining strength.
type blow struct {
	damage int
	fatal  bool
}

var severityTable = []blow{
	{damage: 1}, {damage: 1}, {damage: 2}, {damage: 2}, {damage: 3},
	{fatal: true},
}

// swing resolves one attack: a to-hit draw against the threshold, then
// on a hit a severity draw from the fixed table.
func (g *Game) swing(attacker *world.Object) (hit bool, b blow) {
	roll := g.RNG.Roll(10)
	if roll+attacker.Skill < toHitThreshold {
		return false, blow{}
	}
	return true, severityTable[g.RNG.Pick(len(severityTable))]
}

// doAttackActor handles the player attacking an actor. Attacking
// always provokes: the target goes hostile even if the swing misses.
func doAttackActor(g *Game, cmd types.Command) ([]string, bool) {
	target := g.World.Get(cmd.Direct)
	if target.Phase == types.PhaseDead {
		return []string{fmt.Sprintf("Attacking the dead %s is pointless.", target.Name)}, false
	}

	weapon := g.World.Get(cmd.Indirect)
	if weapon == nil {
		weapon = g.carriedWeapon()
	}
	if weapon != nil && !weapon.Has(world.FlagWeapon) {
		return []string{fmt.Sprintf("Attacking with a %s is hardly effective.", weapon.Name)}, false
	}

	if target.Phase != types.PhaseHostile {
		target.Phase = types.PhaseHostile
	}

	if weapon == nil {
		return []string{fmt.Sprintf(
			"Attacking the %s with your bare hands is suicidal.", target.Name)}, false
	}

	player := g.World.Get(world.Player)
	hit, b := g.swing(player)
	if !hit {
		return []string{g.Pools.Pick("miss", g.RNG.Pick(64))}, true
	}
	if b.fatal {
		out := []string{fmt.Sprintf("It's a well-aimed blow! The %s drops dead.", target.Name)}
		return append(out, g.killActor(target)...), true
	}
	target.Strength -= b.damage
	if target.Strength <= 0 {
		out := []string{fmt.Sprintf("The fatal wound fells the %s.", target.Name)}
		return append(out, g.killActor(target)...), true
	}
	// A badly hurt actor may lose its nerve.
	if target.Strength <= 1 && target.Wanders && g.RNG.Chance(50) {
		target.Phase = types.PhaseFleeing
		return []string{fmt.Sprintf("The %s staggers from the blow.", target.Name)}, true
	}
	return []string{fmt.Sprintf("You wound the %s with the %s.", target.Name, weapon.Name)}, true
}

// carriedWeapon returns the first weapon in inventory, or nil.
func (g *Game) carriedWeapon() *world.Object {
	for _, id := range g.World.Inventory() {
		if obj := g.World.Get(id); obj.Has(world.FlagWeapon) {
			return obj
		}
	}
	return nil
}

// killActor marks the actor dead, spills its inventory into its room,
// and disables every scheduler event it owns.
func (g *Game) killActor(actor *world.Object) []string {
	actor.Phase = types.PhaseDead
	g.Events.DisableOwned(actor.ID)

	var out []string
	room := actor.Location
	for _, id := range append([]string(nil), actor.Contents...) {
		if err := g.World.Move(id, room); err == nil {
			out = append(out, fmt.Sprintf("The %s falls to the ground.", g.Name(id)))
		}
	}
	return out
}

// actorSwing is one daemon-driven attack on the player.
func (g *Game) actorSwing(actor *world.Object) bool {
	hit, b := g.swing(actor)
	if !hit {
		g.say(g.Pools.Pick("dodge", g.RNG.Pick(64)))
		return true
	}
	player := g.World.Get(world.Player)
	if b.fatal {
		g.die(fmt.Sprintf("The %s delivers a killing blow.", actor.Name))
		return true
	}
	player.Strength -= b.damage
	if player.Strength <= 0 {
		g.die(fmt.Sprintf("The %s's blow is too much for you.", actor.Name))
		return true
	}
	g.say(fmt.Sprintf("The %s wounds you!", actor.Name))
	return true
}
