// Package schedule runs the per-turn clock: interrupts count down and
// fire once, daemons fire every turn while enabled. Events run in a
// fixed registration order over a live registry — an event firing may
// enable or disable events later in the same pass.
package schedule

import "fmt"

// Kind distinguishes the two event flavors.
type Kind int

const (
	// Interrupt fires once when its countdown reaches zero, then
	// disables itself.
	Interrupt Kind = iota
	// Daemon fires every turn while enabled.
	Daemon
)

// FireFunc runs an event's behavior. The return value reports whether
// the firing produced a player-visible effect this turn.
type FireFunc func() bool

// Event is one scheduled entry. Expended interrupts are disabled, not
// deleted, so saves can restore the full registry by ID.
type Event struct {
	ID      string
	Kind    Kind
	Enabled bool
	Ticks   int    // turns until an interrupt fires
	Owner   string // actor ID this event belongs to, "" if none
	fire    FireFunc
}

// Registry is an insertion-ordered collection of events, keyed by ID.
type Registry struct {
	order  []string
	events map[string]*Event
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{events: map[string]*Event{}}
}

// Register adds an event. IDs must be unique; re-registering an ID is
// an engine fault.
func (r *Registry) Register(ev Event, fire FireFunc) error {
	if _, exists := r.events[ev.ID]; exists {
		return fmt.Errorf("schedule: duplicate event %q", ev.ID)
	}
	ev.fire = fire
	r.events[ev.ID] = &ev
	r.order = append(r.order, ev.ID)
	return nil
}

// Get returns the event with the given ID, or nil.
func (r *Registry) Get(id string) *Event {
	return r.events[id]
}

// Enable turns an event on. For interrupts, ticks sets the countdown.
func (r *Registry) Enable(id string, ticks int) {
	if ev, ok := r.events[id]; ok {
		ev.Enabled = true
		if ev.Kind == Interrupt {
			ev.Ticks = ticks
		}
	}
}

// Disable turns an event off without removing it.
func (r *Registry) Disable(id string) {
	if ev, ok := r.events[id]; ok {
		ev.Enabled = false
	}
}

// DisableOwned disables every event owned by the given actor, used
// when an actor dies.
func (r *Registry) DisableOwned(owner string) {
	for _, ev := range r.events {
		if ev.Owner == owner {
			ev.Enabled = false
		}
	}
}

// Tick advances the clock one turn. Events are visited in registration
// order; the ID list is snapshotted so events registered mid-pass wait
// for the next turn, but enable/disable of existing events takes
// effect immediately within the pass. Returns whether any event
// produced a visible effect.
func (r *Registry) Tick() bool {
	visible := false
	snapshot := make([]string, len(r.order))
	copy(snapshot, r.order)

	for _, id := range snapshot {
		ev, ok := r.events[id]
		if !ok || !ev.Enabled {
			continue
		}
		switch ev.Kind {
		case Daemon:
			if ev.fire() {
				visible = true
			}
		case Interrupt:
			ev.Ticks--
			if ev.Ticks > 0 {
				continue
			}
			ev.Enabled = false
			if ev.fire() {
				visible = true
			}
		}
	}
	return visible
}

// States returns the serializable state of every event in registration
// order, for saving.
func (r *Registry) States() []State {
	out := make([]State, 0, len(r.order))
	for _, id := range r.order {
		ev := r.events[id]
		out = append(out, State{ID: id, Enabled: ev.Enabled, Ticks: ev.Ticks})
	}
	return out
}

// Restore applies saved states onto registered events. Unknown IDs are
// an engine fault: the registry is built from code, so a mismatch
// means the save is from a different world.
func (r *Registry) Restore(states []State) error {
	for _, st := range states {
		ev, ok := r.events[st.ID]
		if !ok {
			return fmt.Errorf("schedule: save references unknown event %q", st.ID)
		}
		ev.Enabled = st.Enabled
		ev.Ticks = st.Ticks
	}
	return nil
}

// State is an event's saved form.
type State struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
	Ticks   int    `json:"ticks"`
}
