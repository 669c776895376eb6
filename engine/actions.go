package engine

import (
	"fmt"
	"strings"

	"github.com/jsredmond/lantern/types"
	"github.com/jsredmond/lantern/world"
)

// handler executes one command. The bool is gameplay success; engine
// faults are returned by execute itself, not by handlers.
type handler func(*Game, types.Command) ([]string, bool)

// capEntry binds a handler to an object capability. For a given verb,
// the first entry whose flags the direct object carries overrides the
// verb's generic handler. This is the engine's polymorphism point:
// behavior varies by capability set, not by a type hierarchy.
type capEntry struct {
	need world.Flag
	fn   handler
}

var capDispatch = map[string][]capEntry{
	"open":       {{world.FlagContainer, doOpenContainer}, {world.FlagDoor, doOpenDoor}},
	"close":      {{world.FlagContainer, doCloseContainer}, {world.FlagDoor, doCloseDoor}},
	"read":       {{world.FlagReadable, doReadText}},
	"light":      {{world.FlagLightSource, doLightSource}},
	"extinguish": {{world.FlagLightSource, doExtinguishSource}},
	"attack":     {{world.FlagActor, doAttackActor}},
	"eat":        {{world.FlagEdible, doEat}},
	"examine":    {{world.FlagContainer, doExamineContainer}, {world.FlagActor, doExamineActor}},
	"hello":      {{world.FlagActor, doGreetActor}},
	"lock":       {{world.FlagLocked, doAlreadyLocked}, {world.FlagContainer, doLock}, {world.FlagDoor, doLock}},
	"unlock":     {{world.FlagLocked, doUnlock}},
}

var genericHandlers = map[string]handler{
	"go":        doGo,
	"enter":     doEnter,
	"exit":      doExit,
	"look":      doLook,
	"examine":   doExamine,
	"take":      doTake,
	"drop":      doDrop,
	"put":       doPut,
	"inventory": doInventory,
	"wait":      doWait,
	"score":     doScore,
	"diagnose":  doDiagnose,
	"read":      doExamine,
	"drink":     doDrink,
	"hello":     doHello,
	"jump":      doJump,
	"throw":     doThrow,
	"quit":      doQuit,
	"restart":   doRestart,
	"verbose":   doVerbose,
	"brief":     doBrief,
}

// flavorPools routes leftover generic verbs to a fixed response pool.
var flavorPools = map[string]string{
	"push": "no_effect", "pull": "no_effect", "move": "no_effect",
	"turn": "no_effect", "rub": "no_effect", "wave": "no_effect",
	"smell": "no_effect", "listen": "no_effect", "knock": "no_effect",
	"climb": "refusal", "pray": "no_effect", "shout": "no_effect",
	"open": "refusal", "close": "refusal", "light": "refusal",
	"extinguish": "refusal", "attack": "refusal", "eat": "refusal",
	"lock": "refusal", "unlock": "refusal",
}

// execute dispatches a command to its handler: capability-specific
// first, then the verb's generic handler, then a flavor pool draw.
func (g *Game) execute(cmd types.Command) ([]string, bool, error) {
	if cmd.Direct != "" {
		obj := g.World.Get(cmd.Direct)
		if obj == nil {
			return nil, false, fmt.Errorf("executor: command references unknown object %q", cmd.Direct)
		}
		for _, entry := range capDispatch[cmd.Verb] {
			if obj.Has(entry.need) {
				out, ok := entry.fn(g, cmd)
				return out, ok, nil
			}
		}
	}
	if fn, ok := genericHandlers[cmd.Verb]; ok {
		out, success := fn(g, cmd)
		return out, success, nil
	}
	pool, ok := flavorPools[cmd.Verb]
	if !ok {
		pool = "refusal"
	}
	return []string{g.Pools.Pick(pool, g.RNG.Pick(64))}, false, nil
}

// --- movement ---

func doGo(g *Game, cmd types.Command) ([]string, bool) {
	room := g.World.HereRoom()
	exit, ok := room.Exits[cmd.Direction]
	if !ok {
		return []string{"You can't go that way."}, false
	}
	if exit.IfFlag != "" && !g.World.Flags[exit.IfFlag] {
		return []string{barredText(exit)}, false
	}
	if exit.Door != "" {
		if door := g.World.Get(exit.Door); door != nil && !door.Has(world.FlagOpen) {
			return []string{barredText(exit)}, false
		}
	}
	if err := g.World.Move(world.Player, exit.To); err != nil {
		return []string{"You can't go that way."}, false
	}
	dest := g.World.HereRoom()
	out := g.describeRoom(dest, !dest.Visited || g.Verbose)
	dest.Visited = true
	return out, true
}

func doEnter(g *Game, cmd types.Command) ([]string, bool) {
	return doGo(g, types.Command{Verb: "go", Direction: "in"})
}

func doExit(g *Game, cmd types.Command) ([]string, bool) {
	return doGo(g, types.Command{Verb: "go", Direction: "out"})
}

func barredText(exit world.Exit) string {
	if exit.FailText != "" {
		return exit.FailText
	}
	return "The way is blocked."
}

// --- observation ---

func doLook(g *Game, cmd types.Command) ([]string, bool) {
	if cmd.Direct != "" {
		// "look at X" and "look in X" delegate by preposition.
		if cmd.Prep == "in" || cmd.Prep == "inside" {
			return doExamineContainer(g, cmd)
		}
		return doExamine(g, cmd)
	}
	return g.describeRoom(g.World.HereRoom(), true), true
}

func doExamine(g *Game, cmd types.Command) ([]string, bool) {
	if cmd.Direct == "" {
		return []string{"Look at what?"}, false
	}
	obj := g.World.Get(cmd.Direct)
	if obj.Text != "" {
		return []string{obj.Text}, true
	}
	return []string{fmt.Sprintf("There's nothing special about the %s.", obj.Name)}, true
}

func doExamineContainer(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if !obj.Has(world.FlagContainer) {
		return doExamine(g, cmd)
	}
	if !obj.Has(world.FlagOpen) && !obj.Has(world.FlagTransparent) {
		return []string{fmt.Sprintf("The %s is closed.", obj.Name)}, false
	}
	if len(obj.Contents) == 0 {
		return []string{fmt.Sprintf("The %s is empty.", obj.Name)}, true
	}
	return []string{fmt.Sprintf("The %s contains:", obj.Name) + listContents(g, obj)}, true
}

func doExamineActor(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if obj.Phase == types.PhaseDead {
		return []string{fmt.Sprintf("The %s is clearly dead.", obj.Name)}, true
	}
	return doExamine(g, cmd)
}

func doReadText(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if g.World.HereRoom().Dark && !g.World.LitHere() {
		return []string{"It's too dark to read."}, false
	}
	return []string{obj.Text}, true
}

// --- manipulation ---

func doTake(g *Game, cmd types.Command) ([]string, bool) {
	if cmd.Direct == "" {
		return []string{"Take what?"}, false
	}
	obj := g.World.Get(cmd.Direct)
	switch {
	case g.World.Carrying(obj.ID) && obj.Location == world.Player:
		return []string{"You already have that."}, false
	case obj.Has(world.FlagActor):
		return []string{fmt.Sprintf("The %s would object to that.", obj.Name)}, false
	case obj.Has(world.FlagFixed) || !obj.Has(world.FlagTakeable):
		return []string{"You can't take that."}, false
	}
	if err := g.World.Move(obj.ID, world.Player); err != nil {
		return []string{"You can't take that."}, false
	}
	var out []string
	out = append(out, "Taken.")
	// Treasures score once, on first pickup.
	if obj.Has(world.FlagTreasure) && obj.Value > 0 && !g.World.Flags["scored:"+obj.ID] {
		g.World.Flags["scored:"+obj.ID] = true
		g.Score += obj.Value
	}
	return out, true
}

func doDrop(g *Game, cmd types.Command) ([]string, bool) {
	if cmd.Direct == "" {
		return []string{"Drop what?"}, false
	}
	obj := g.World.Get(cmd.Direct)
	if !g.World.Carrying(obj.ID) {
		return []string{"You're not carrying that."}, false
	}
	if err := g.World.Move(obj.ID, g.World.Here()); err != nil {
		return []string{"You can't drop that here."}, false
	}
	return []string{"Dropped."}, true
}

func doPut(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	dest := g.World.Get(cmd.Indirect)
	if dest == nil || !dest.Has(world.FlagContainer) {
		return []string{fmt.Sprintf("You can't put anything in the %s.", g.Name(cmd.Indirect))}, false
	}
	if !dest.Has(world.FlagOpen) {
		return []string{fmt.Sprintf("The %s is closed.", dest.Name)}, false
	}
	if !g.World.Carrying(obj.ID) {
		return []string{"You're not carrying that."}, false
	}
	if obj.ID == dest.ID {
		return []string{"How exactly would that work?"}, false
	}
	if err := g.World.Move(obj.ID, dest.ID); err != nil {
		return []string{"It won't fit."}, false
	}
	out := []string{"Done."}
	// Treasures score a second time when first deposited in the trophy
	// container.
	if dest.ID == g.Meta.TrophyCase && obj.Has(world.FlagTreasure) && obj.Value > 0 &&
		!g.World.Flags["deposited:"+obj.ID] {
		g.World.Flags["deposited:"+obj.ID] = true
		g.Score += obj.Value
	}
	g.checkVictory()
	return out, true
}

func doOpenContainer(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if obj.Has(world.FlagLocked) {
		return []string{fmt.Sprintf("The %s is locked.", obj.Name)}, false
	}
	if obj.Has(world.FlagOpen) {
		return []string{"It's already open."}, false
	}
	obj.Set(world.FlagOpen)
	if len(obj.Contents) > 0 {
		return []string{fmt.Sprintf("Opening the %s reveals:", obj.Name) + listContents(g, obj)}, true
	}
	return []string{"Opened."}, true
}

func doOpenDoor(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if obj.Has(world.FlagLocked) {
		return []string{fmt.Sprintf("The %s is locked.", obj.Name)}, false
	}
	if obj.Has(world.FlagOpen) {
		return []string{"It's already open."}, false
	}
	obj.Set(world.FlagOpen)
	return []string{fmt.Sprintf("The %s opens.", obj.Name)}, true
}

func doCloseContainer(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if !obj.Has(world.FlagOpen) {
		return []string{"It's already closed."}, false
	}
	obj.Clear(world.FlagOpen)
	return []string{"Closed."}, true
}

func doCloseDoor(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if !obj.Has(world.FlagOpen) {
		return []string{"It's already closed."}, false
	}
	obj.Clear(world.FlagOpen)
	return []string{fmt.Sprintf("The %s closes.", obj.Name)}, true
}

func doLock(g *Game, cmd types.Command) ([]string, bool) {
	return []string{"It doesn't seem to lock from this side."}, false
}

func doAlreadyLocked(g *Game, cmd types.Command) ([]string, bool) {
	return []string{"It's already locked."}, false
}

func doUnlock(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if cmd.Indirect == "" {
		return []string{fmt.Sprintf("Unlock the %s with what?", obj.Name)}, false
	}
	key := g.World.Get(cmd.Indirect)
	if !g.World.Carrying(key.ID) {
		return []string{"You're not carrying that."}, false
	}
	if !key.KnownAs("key") {
		return []string{fmt.Sprintf("The %s won't unlock it.", key.Name)}, false
	}
	obj.Clear(world.FlagLocked)
	return []string{fmt.Sprintf("The %s is now unlocked.", obj.Name)}, true
}

// --- light sources ---

func doLightSource(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if obj.Has(world.FlagLit) {
		return []string{"It's already on."}, false
	}
	if g.World.Flags["burned_out:"+obj.ID] {
		return []string{fmt.Sprintf("The %s has burned out.", obj.Name)}, false
	}
	obj.Set(world.FlagLit)
	// Lighting starts (or resumes) the fuel countdown.
	if obj.Fuel > 0 {
		if ev := g.Events.Get("fuel:" + obj.ID); ev != nil {
			ticks := ev.Ticks
			if ticks <= 0 {
				ticks = obj.Fuel
			}
			g.Events.Enable("fuel:"+obj.ID, ticks)
		}
	}
	out := []string{fmt.Sprintf("The %s is now on.", obj.Name)}
	if room := g.World.HereRoom(); room != nil && room.Dark {
		out = append(out, g.describeRoom(room, !room.Visited || g.Verbose)...)
		room.Visited = true
	}
	return out, true
}

func doExtinguishSource(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if !obj.Has(world.FlagLit) {
		return []string{"It's already off."}, false
	}
	obj.Clear(world.FlagLit)
	g.Events.Disable("fuel:" + obj.ID)
	out := []string{fmt.Sprintf("The %s is now off.", obj.Name)}
	if room := g.World.HereRoom(); room != nil && room.Dark && !g.World.LitHere() {
		out = append(out, "It is now pitch black.")
	}
	return out, true
}

// --- sundries ---

func doInventory(g *Game, cmd types.Command) ([]string, bool) {
	inv := g.World.Inventory()
	if len(inv) == 0 {
		return []string{"You are empty-handed."}, true
	}
	out := []string{"You are carrying:"}
	for _, id := range inv {
		obj := g.World.Get(id)
		out = append(out, "  A "+obj.Name)
		if obj.Has(world.FlagContainer) && (obj.Has(world.FlagOpen) || obj.Has(world.FlagTransparent)) {
			for _, cid := range obj.Contents {
				out = append(out, "    A "+g.Name(cid))
			}
		}
	}
	return out, true
}

func doWait(g *Game, cmd types.Command) ([]string, bool) {
	// Waiting passes extra time: two additional clock ticks beyond
	// the one every turn gets.
	out := []string{"Time passes."}
	for i := 0; i < 2 && g.State == types.StatePlaying; i++ {
		g.Turn++
		g.Events.Tick()
	}
	return out, true
}

func doScore(g *Game, cmd types.Command) ([]string, bool) {
	line := fmt.Sprintf("Your score is %d (total of %d points), in %d moves.",
		g.Score, g.Meta.MaxScore, g.Turn)
	return []string{line}, true
}

func doDiagnose(g *Game, cmd types.Command) ([]string, bool) {
	me := g.World.Get(world.Player)
	switch {
	case me.Strength >= 5:
		return []string{"You are in perfect health."}, true
	case me.Strength >= 3:
		return []string{"You have a few scratches."}, true
	default:
		return []string{"You have serious wounds. Rest would do you good."}, true
	}
}

func doEat(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if !g.World.Carrying(obj.ID) {
		return []string{"You're not holding that."}, false
	}
	// Eaten food leaves play; nothing is ever deleted from the world.
	if err := g.World.Move(obj.ID, world.Nowhere); err != nil {
		return []string{"You can't eat that."}, false
	}
	return []string{fmt.Sprintf("You devour the %s. It hits the spot.", obj.Name)}, true
}

func doDrink(g *Game, cmd types.Command) ([]string, bool) {
	return []string{g.Pools.Pick("refusal", g.RNG.Pick(64))}, false
}

func doHello(g *Game, cmd types.Command) ([]string, bool) {
	return []string{g.Pools.Pick("greeting", g.RNG.Pick(64))}, true
}

func doGreetActor(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if obj.Phase == types.PhaseHostile {
		return []string{fmt.Sprintf("The %s isn't interested in conversation.", obj.Name)}, false
	}
	return []string{fmt.Sprintf("The %s nods at you.", obj.Name)}, true
}

func doJump(g *Game, cmd types.Command) ([]string, bool) {
	return []string{g.Pools.Pick("jump_fail", g.RNG.Pick(64))}, true
}

func doThrow(g *Game, cmd types.Command) ([]string, bool) {
	obj := g.World.Get(cmd.Direct)
	if obj == nil || !g.World.Carrying(obj.ID) {
		return []string{"You're not carrying that."}, false
	}
	if err := g.World.Move(obj.ID, g.World.Here()); err != nil {
		return []string{"You can't throw that."}, false
	}
	return []string{"Thrown."}, true
}

// QuitRequested and RestartRequested are polled by the front-end after
// each step; quitting and restarting are boundary concerns.

func doQuit(g *Game, cmd types.Command) ([]string, bool) {
	g.QuitRequested = true
	return []string{fmt.Sprintf("Your score is %d, in %d moves.", g.Score, g.Turn)}, true
}

func doRestart(g *Game, cmd types.Command) ([]string, bool) {
	g.RestartRequested = true
	return nil, true
}

func doVerbose(g *Game, cmd types.Command) ([]string, bool) {
	g.Verbose = true
	return []string{"Maximum verbosity."}, true
}

func doBrief(g *Game, cmd types.Command) ([]string, bool) {
	g.Verbose = false
	return []string{"Brief descriptions."}, true
}

// --- helpers ---

// describeRoom renders a room: name, description (long on first visit
// or in verbose mode), and visible objects including the contents of
// open containers. In the dark it renders only the darkness warning.
func (g *Game) describeRoom(room *world.Room, full bool) []string {
	if room == nil {
		return []string{"You are nowhere. That shouldn't happen."}
	}
	if room.Dark && !g.World.LitHere() {
		return []string{"It is pitch black. You are likely to be eaten by a grue."}
	}

	out := []string{room.Name}
	if full && room.Long != "" {
		out = append(out, room.Long)
	} else if room.Short != "" {
		out = append(out, room.Short)
	}

	for _, id := range room.Contents {
		if id == world.Player {
			continue
		}
		obj := g.World.Get(id)
		if obj.Has(world.FlagActor) {
			if obj.Phase == types.PhaseDead {
				out = append(out, fmt.Sprintf("The body of a %s lies here.", obj.Name))
			} else {
				out = append(out, fmt.Sprintf("There is a %s here.", obj.Name))
			}
		} else {
			out = append(out, fmt.Sprintf("There is a %s here.", obj.Name))
		}
		if obj.Has(world.FlagContainer) && (obj.Has(world.FlagOpen) || obj.Has(world.FlagTransparent)) && len(obj.Contents) > 0 {
			out = append(out, fmt.Sprintf("The %s contains:", obj.Name)+listContents(g, obj))
		}
	}
	return out
}

func listContents(g *Game, obj *world.Object) string {
	var names []string
	for _, id := range obj.Contents {
		names = append(names, "a "+g.Name(id))
	}
	return " " + strings.Join(names, ", ")
}

// checkVictory wins the game once every treasure rests in the trophy
// container, when the game defines one.
func (g *Game) checkVictory() {
	if g.Meta.TrophyCase == "" || g.State != types.StatePlaying {
		return
	}
	for _, id := range g.World.SortedObjectIDs() {
		obj := g.World.Get(id)
		if obj.Has(world.FlagTreasure) && obj.Location != g.Meta.TrophyCase {
			return
		}
	}
	g.win()
}
