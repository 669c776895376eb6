// Package types defines the shared data structures for the Lantern engine.
// This package contains only type definitions — no logic, no methods.
package types

// Role is the grammatical classification of a word.
type Role int

const (
	RoleUnknown Role = iota
	RoleVerb
	RoleNoun
	RoleAdjective
	RoleDirection
	RolePreposition
	RoleArticle
	RolePronoun
	RoleConjunction
)

// RoleSet is a bitmask of Roles. A word may carry several roles (a color
// word is both noun and adjective) but exactly one primary role.
type RoleSet uint16

// Has reports whether the set contains the given role.
func (rs RoleSet) Has(r Role) bool { return rs&(1<<uint(r)) != 0 }

// With returns the set with the given role added.
func (rs RoleSet) With(r Role) RoleSet { return rs | 1<<uint(r) }

// Token is a single classified word of player input.
type Token struct {
	Word     string  // normalized (lowercased, canonical) form
	Original string  // text as typed
	Role     Role    // primary role, used to break grammar-level ambiguity
	Roles    RoleSet // every role the word can play
}

// Command is the parsed, fully resolved representation of a player action.
// Object references are world object IDs. Immutable once produced.
type Command struct {
	Verb      string
	Direct    string // direct object ID, "" if the verb takes none
	Indirect  string // indirect object ID, "" if absent
	Prep      string // preposition joining direct and indirect
	Direction string // for movement commands
}

// Result is the outcome of executing one command.
type Result struct {
	Output     []string
	Success    bool
	ScoreDelta int
}

// Refs is the pronoun-reference memory carried across turns. "it" binds
// to It, "them" to Them. Recency maps object ID to the turn it was last
// referenced, used to break noun+adjective ties.
type Refs struct {
	It      string
	Them    []string
	Recency map[string]int
}

// Phase is an actor's behavior state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAware
	PhaseHostile
	PhaseFleeing
	PhaseDead
)

// GameState marks the overall session state. Dead and Won are terminal
// states, distinct from ordinary command failures.
type GameState int

const (
	StatePlaying GameState = iota
	StateDead
	StateWon
)
