package parser

import (
	"fmt"
	"strings"
)

// Parse failures are typed errors carrying enough detail to render a
// specific player-facing message. They are normal outcomes, never used
// as control flow exceptions.

// NoVerbError indicates the input contained no recognized verb.
type NoVerbError struct{}

func (e *NoVerbError) Error() string {
	return "There was no verb in that sentence!"
}

// UnknownWordError indicates a word outside the vocabulary.
type UnknownWordError struct {
	Word string
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("I don't know the word %q.", e.Word)
}

// NotInScopeError indicates a noun phrase matched nothing the player
// can currently reference.
type NotInScopeError struct {
	Name string
}

func (e *NotInScopeError) Error() string {
	return fmt.Sprintf("You can't see any %s here!", e.Name)
}

// AmbiguousError indicates a noun phrase matched several in-scope
// objects. Candidates holds their display names so the caller can ask
// a clarifying question.
type AmbiguousError struct {
	Noun       string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("Which %s do you mean, the %s?",
		e.Noun, strings.Join(e.Candidates, " or the "))
}

// MissingNounError indicates a verb that needs an object got none.
type MissingNounError struct {
	Verb string
}

func (e *MissingNounError) Error() string {
	return fmt.Sprintf("What do you want to %s?", e.Verb)
}

// SyntaxMismatchError indicates the words didn't fit any pattern
// registered for the verb.
type SyntaxMismatchError struct {
	Verb string
}

func (e *SyntaxMismatchError) Error() string {
	return "I couldn't understand that sentence."
}
