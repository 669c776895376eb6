// Package engine orchestrates a turn: lex, classify, parse, execute,
// then run the event scheduler. It owns the single context object
// (Game) that bundles the world, clock, score, pronoun memory, and the
// seedable RNG — there are no module-level singletons.
package engine

import (
	"fmt"

	"github.com/jsredmond/lantern/engine/lexer"
	"github.com/jsredmond/lantern/engine/messages"
	"github.com/jsredmond/lantern/engine/parser"
	"github.com/jsredmond/lantern/engine/schedule"
	"github.com/jsredmond/lantern/engine/vocab"
	"github.com/jsredmond/lantern/types"
	"github.com/jsredmond/lantern/world"
)

// Meta holds game metadata from the loaded definitions.
type Meta struct {
	Title    string
	Author   string
	Version  string
	Start    string // starting room ID
	Intro    string
	MaxScore int

	// TrophyCase names the container that, once it holds every
	// treasure, completes the game. Empty disables the victory check.
	TrophyCase string
}

// Game is the complete session: world, scheduler, RNG, turn clock,
// score, pronoun memory, and terminal-state tracking.
type Game struct {
	World  *world.World
	Vocab  *vocab.Table
	Events *schedule.Registry
	Pools  messages.Pools
	RNG    *RNG
	Meta   Meta

	Turn    int
	Score   int
	State   types.GameState
	Refs    types.Refs
	Verbose bool

	// Boundary signals, polled by the front-end after each step.
	QuitRequested    bool
	RestartRequested bool

	// DarkTurns counts consecutive turns spent in unlit darkness.
	DarkTurns int

	pending []string // output produced by scheduler events this turn
}

// deathPenalty is deducted from the score when the player dies.
const deathPenalty = 10

// New assembles a game from a built world and metadata. The player is
// placed in the starting room and the standard events (light-source
// fuel, darkness, actor daemons) are registered from world content.
func New(w *world.World, vt *vocab.Table, meta Meta, seed int64) (*Game, error) {
	pools, err := messages.Load()
	if err != nil {
		return nil, err
	}
	g := &Game{
		World:  w,
		Vocab:  vt,
		Events: schedule.NewRegistry(),
		Pools:  pools,
		RNG:    NewRNG(seed),
		Meta:   meta,
		Refs:   types.Refs{Recency: map[string]int{}},
	}
	if meta.Start != "" {
		if err := w.Move(world.Player, meta.Start); err != nil {
			return nil, fmt.Errorf("placing player: %w", err)
		}
	}
	if room := w.HereRoom(); room != nil {
		room.Visited = true
	}
	if err := g.registerEvents(); err != nil {
		return nil, err
	}
	return g, nil
}

// registerEvents wires the standard daemons and interrupts from world
// content, in a fixed order: fuel interrupts, actor daemons, darkness
// last so it sees the turn's actor movement.
func (g *Game) registerEvents() error {
	for _, id := range g.World.SortedObjectIDs() {
		obj := g.World.Get(id)
		if obj.Has(world.FlagLightSource) && obj.Fuel > 0 {
			oid := id
			ev := schedule.Event{ID: "fuel:" + oid, Kind: schedule.Interrupt}
			if err := g.Events.Register(ev, func() bool { return g.fuelInterrupt(oid) }); err != nil {
				return err
			}
			// A lamp already lit at initialization starts its clock.
			if obj.Has(world.FlagLit) {
				g.Events.Enable("fuel:"+oid, obj.Fuel)
			}
		}
	}
	for _, id := range g.World.SortedObjectIDs() {
		obj := g.World.Get(id)
		if !obj.Has(world.FlagActor) || id == world.Player {
			continue
		}
		aid := id
		ev := schedule.Event{
			ID: "actor:" + aid, Kind: schedule.Daemon, Enabled: true, Owner: aid,
		}
		if err := g.Events.Register(ev, func() bool { return g.actorDaemon(aid) }); err != nil {
			return err
		}
	}
	ev := schedule.Event{ID: "darkness", Kind: schedule.Daemon, Enabled: true}
	return g.Events.Register(ev, g.darknessDaemon)
}

// Step processes one line of player input and returns the result. A
// non-nil error is an engine fault (corrupt state), not a gameplay
// failure; gameplay failures come back as Success=false results.
func (g *Game) Step(input string) (types.Result, error) {
	var res types.Result

	if g.State != types.StatePlaying {
		res.Output = append(res.Output, "The game is over. Type RESTART to play again.")
		return res, nil
	}

	tokens := lexer.Tokenize(input)
	if len(tokens) == 0 {
		res.Output = append(res.Output, "I beg your pardon?")
		return res, nil
	}
	tokens = g.Vocab.Tag(tokens)

	// Scope is recomputed before every parse, never cached.
	scope := g.World.Scope()

	cmd, err := parser.Parse(tokens, scope, &g.Refs)
	if err != nil {
		// Parse failures are reported and do not consume a turn.
		res.Output = append(res.Output, err.Error())
		return res, nil
	}

	scoreBefore := g.Score
	out, ok, fault := g.execute(cmd)
	if fault != nil {
		return res, fault
	}
	res.Output = append(res.Output, out...)
	res.Success = ok

	if ok {
		g.rememberRefs(cmd)
	}

	// A handler ran: the turn advances and the clock ticks, in fixed
	// registration order, before the next prompt.
	g.Turn++
	g.Events.Tick()
	res.Output = append(res.Output, g.drainPending()...)

	if g.State == types.StateDead {
		res.Output = append(res.Output, g.deathNotice()...)
	}

	res.ScoreDelta = g.Score - scoreBefore

	if err := g.World.Check(); err != nil {
		return res, err
	}
	return res, nil
}

// say queues text produced by scheduler events for this turn's output.
func (g *Game) say(lines ...string) {
	g.pending = append(g.pending, lines...)
}

func (g *Game) drainPending() []string {
	out := g.pending
	g.pending = nil
	return out
}

// rememberRefs updates the pronoun memory after a successful command.
func (g *Game) rememberRefs(cmd types.Command) {
	if cmd.Direct != "" {
		g.Refs.It = cmd.Direct
		g.Refs.Them = []string{cmd.Direct}
		g.Refs.Recency[cmd.Direct] = g.Turn
	}
	if cmd.Indirect != "" {
		g.Refs.Them = append(g.Refs.Them, cmd.Indirect)
		g.Refs.Recency[cmd.Indirect] = g.Turn
	}
}

// die transitions the session to the dead terminal state.
func (g *Game) die(cause string) {
	if g.State == types.StateDead {
		return
	}
	g.State = types.StateDead
	g.Score -= deathPenalty
	g.say(cause)
}

func (g *Game) deathNotice() []string {
	return []string{
		"",
		"    ****  You have died  ****",
		"",
		fmt.Sprintf("Your score was %d, in %d moves.", g.Score, g.Turn),
		"Type RESTART to try again.",
	}
}

// win transitions the session to the won terminal state.
func (g *Game) win() {
	g.State = types.StateWon
	g.say("", "Your quest is complete!",
		fmt.Sprintf("Your score is %d (out of %d), in %d moves.",
			g.Score, g.Meta.MaxScore, g.Turn))
}

// Name returns an object's display name, falling back to its ID.
func (g *Game) Name(id string) string {
	if obj := g.World.Get(id); obj != nil && obj.Name != "" {
		return obj.Name
	}
	return id
}
