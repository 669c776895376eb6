// Package parser consumes classified tokens plus the set of objects in
// scope and produces either a structured Command or a typed parse
// error. It reads the world for scope but never mutates it.
package parser

import (
	"strings"

	"github.com/jsredmond/lantern/types"
	"github.com/jsredmond/lantern/world"
)

// Parse matches tagged tokens against the verb's registered syntax
// patterns and resolves noun phrases against scope.
//
//  1. Identify the verb (a bare direction is shorthand for "go").
//  2. Try the verb's patterns most specific first; the first
//     structural match wins.
//  3. Resolve each noun phrase (article* adjective* noun) against
//     scope, filtering by adjectives, then breaking remaining ties by
//     most-recently-mentioned. Still ambiguous → AmbiguousError.
//
// refs is read for pronoun binding and recency; Parse never writes it.
func Parse(tokens []types.Token, scope []*world.Object, refs *types.Refs) (types.Command, error) {
	if len(tokens) == 0 {
		return types.Command{}, &NoVerbError{}
	}

	// A lone direction word ("north", "n") is shorthand for "go".
	if len(tokens) == 1 && tokens[0].Roles.Has(types.RoleDirection) {
		return types.Command{Verb: "go", Direction: tokens[0].Word}, nil
	}

	if tokens[0].Role != types.RoleVerb {
		if tokens[0].Role == types.RoleUnknown {
			return types.Command{}, &UnknownWordError{Word: tokens[0].Original}
		}
		return types.Command{}, &NoVerbError{}
	}
	verb := tokens[0].Word
	rest := tokens[1:]

	// Reject unknown words before grammar: the player should hear
	// about the word, not the sentence shape.
	for _, tok := range rest {
		if tok.Role == types.RoleUnknown {
			return types.Command{}, &UnknownWordError{Word: tok.Original}
		}
	}

	for _, syn := range syntaxesFor(verb) {
		cmd, matched, err := tryPattern(verb, syn, rest, scope, refs)
		if !matched {
			continue
		}
		return cmd, err
	}

	if len(rest) == 0 {
		return types.Command{}, &MissingNounError{Verb: verb}
	}
	return types.Command{}, &SyntaxMismatchError{Verb: verb}
}

// tryPattern attempts one structural match. matched=false means the
// pattern did not fit and the next should be tried; matched=true with
// a non-nil error means the shape fit but resolution failed, which is
// final (first structural match wins).
func tryPattern(verb string, syn syntax, rest []types.Token,
	scope []*world.Object, refs *types.Refs) (types.Command, bool, error) {

	switch syn.kind {
	case verbOnly:
		if len(rest) != 0 {
			return types.Command{}, false, nil
		}
		return types.Command{Verb: verb}, true, nil

	case verbDir:
		if len(rest) != 1 || !rest[0].Roles.Has(types.RoleDirection) {
			return types.Command{}, false, nil
		}
		return types.Command{Verb: verb, Direction: rest[0].Word}, true, nil

	case verbObj:
		if len(rest) == 0 || hasPrep(rest, nil) >= 0 {
			return types.Command{}, false, nil
		}
		id, err := resolvePhrase(rest, scope, refs)
		if err != nil {
			return types.Command{}, true, withVerb(err, verb)
		}
		return types.Command{Verb: verb, Direct: id}, true, nil

	case verbPrepObj:
		if len(rest) < 2 || !isPrep(rest[0], syn.preps) {
			return types.Command{}, false, nil
		}
		id, err := resolvePhrase(rest[1:], scope, refs)
		if err != nil {
			return types.Command{}, true, withVerb(err, verb)
		}
		return types.Command{Verb: verb, Direct: id, Prep: rest[0].Word}, true, nil

	case verbObjPrepObj:
		at := hasPrep(rest, syn.preps)
		if at <= 0 || at == len(rest)-1 {
			return types.Command{}, false, nil
		}
		direct, err := resolvePhrase(rest[:at], scope, refs)
		if err != nil {
			return types.Command{}, true, withVerb(err, verb)
		}
		indirect, err := resolvePhrase(rest[at+1:], scope, refs)
		if err != nil {
			return types.Command{}, true, withVerb(err, verb)
		}
		return types.Command{
			Verb: verb, Direct: direct, Indirect: indirect, Prep: rest[at].Word,
		}, true, nil
	}
	return types.Command{}, false, nil
}

// withVerb fills the verb into errors minted deep in phrase
// resolution, where the verb isn't known.
func withVerb(err error, verb string) error {
	switch e := err.(type) {
	case *MissingNounError:
		if e.Verb == "" {
			e.Verb = verb
		}
	case *SyntaxMismatchError:
		if e.Verb == "" {
			e.Verb = verb
		}
	}
	return err
}

// hasPrep returns the index of the first token usable as a preposition
// (restricted to accepted when non-nil), or -1.
func hasPrep(tokens []types.Token, accepted []string) int {
	for i, tok := range tokens {
		if isPrep(tok, accepted) {
			return i
		}
	}
	return -1
}

func isPrep(tok types.Token, accepted []string) bool {
	if !tok.Roles.Has(types.RolePreposition) {
		return false
	}
	if accepted == nil {
		return true
	}
	for _, p := range accepted {
		if tok.Word == p {
			return true
		}
	}
	return false
}

// resolvePhrase resolves one noun phrase (article* adjective* noun) to
// a single in-scope object ID.
func resolvePhrase(tokens []types.Token, scope []*world.Object, refs *types.Refs) (string, error) {
	// Pronouns bind to the reference memory.
	if len(tokens) == 1 && tokens[0].Role == types.RolePronoun {
		return resolvePronoun(tokens[0].Word, scope, refs)
	}

	// Strip articles, keep noun- or adjective-capable words.
	var words []types.Token
	for _, tok := range tokens {
		switch {
		case tok.Role == types.RoleArticle:
		case tok.Roles.Has(types.RoleNoun) || tok.Roles.Has(types.RoleAdjective):
			words = append(words, tok)
		default:
			return "", &SyntaxMismatchError{}
		}
	}
	if len(words) == 0 {
		return "", &MissingNounError{}
	}

	// The last word is the head noun; everything before it must be
	// usable as an adjective and must all apply.
	head := words[len(words)-1]
	if !head.Roles.Has(types.RoleNoun) {
		return "", &SyntaxMismatchError{}
	}
	noun := head.Word
	adjectives := make([]string, 0, len(words)-1)
	for _, tok := range words[:len(words)-1] {
		if !tok.Roles.Has(types.RoleAdjective) {
			return "", &SyntaxMismatchError{}
		}
		adjectives = append(adjectives, tok.Word)
	}

	phrase := strings.Join(append(append([]string{}, adjectives...), noun), " ")

	var candidates []*world.Object
	for _, obj := range scope {
		if obj.KnownAs(noun) && obj.DescribedBy(adjectives) {
			candidates = append(candidates, obj)
		}
	}

	switch len(candidates) {
	case 0:
		return "", &NotInScopeError{Name: phrase}
	case 1:
		return candidates[0].ID, nil
	}

	// Tie with identical noun and adjectives: the most recently
	// mentioned object wins. With no clear winner, ask.
	if refs != nil && refs.Recency != nil {
		best, bestTurn, dup := "", -1, false
		for _, obj := range candidates {
			turn, ok := refs.Recency[obj.ID]
			if !ok {
				continue
			}
			switch {
			case turn > bestTurn:
				best, bestTurn, dup = obj.ID, turn, false
			case turn == bestTurn:
				dup = true
			}
		}
		if best != "" && !dup {
			return best, nil
		}
	}

	names := make([]string, len(candidates))
	for i, obj := range candidates {
		names[i] = obj.Name
	}
	return "", &AmbiguousError{Noun: noun, Candidates: names}
}

// resolvePronoun binds "it" or "them" to the remembered referents,
// provided they are still in scope.
func resolvePronoun(word string, scope []*world.Object, refs *types.Refs) (string, error) {
	find := func(id string) *world.Object {
		for _, obj := range scope {
			if obj.ID == id {
				return obj
			}
		}
		return nil
	}

	if refs == nil {
		return "", &NotInScopeError{Name: word}
	}
	switch word {
	case "it":
		if refs.It != "" && find(refs.It) != nil {
			return refs.It, nil
		}
	case "them":
		var live []*world.Object
		for _, id := range refs.Them {
			if obj := find(id); obj != nil {
				live = append(live, obj)
			}
		}
		if len(live) == 1 {
			return live[0].ID, nil
		}
		if len(live) > 1 {
			names := make([]string, len(live))
			for i, obj := range live {
				names[i] = obj.Name
			}
			return "", &AmbiguousError{Noun: word, Candidates: names}
		}
	}
	return "", &NotInScopeError{Name: word}
}
