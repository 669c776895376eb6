// Package vocab classifies words into grammatical roles and expands
// abbreviations and synonyms. The built-in table ships as embedded
// YAML; game data extends the noun and adjective sets at load time.
// Pure lookups over a static table — no side effects after build.
package vocab

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jsredmond/lantern/types"
)

//go:embed words.yaml
var wordsYAML []byte

// Entry is the classification of one word.
type Entry struct {
	Roles     types.RoleSet
	Primary   types.Role
	Canonical string // canonical form for synonyms and abbreviations
}

// Table is a built vocabulary. Safe for concurrent reads; never
// mutated after Build except through AddNoun/AddAdjective during
// world loading.
type Table struct {
	entries map[string]*Entry
}

type wordsFile struct {
	Verbs []struct {
		Words []string `yaml:"words"`
	} `yaml:"verbs"`
	Directions []struct {
		Word   string `yaml:"word"`
		Abbrev string `yaml:"abbrev"`
	} `yaml:"directions"`
	Prepositions []string `yaml:"prepositions"`
	Articles     []string `yaml:"articles"`
	Pronouns     []string `yaml:"pronouns"`
	Conjunctions []string `yaml:"conjunctions"`
}

// Build parses the embedded word table into a fresh vocabulary.
func Build() (*Table, error) {
	var wf wordsFile
	if err := yaml.Unmarshal(wordsYAML, &wf); err != nil {
		return nil, fmt.Errorf("parsing built-in vocabulary: %w", err)
	}

	t := &Table{entries: map[string]*Entry{}}

	for _, v := range wf.Verbs {
		if len(v.Words) == 0 {
			continue
		}
		canonical := v.Words[0]
		for _, w := range v.Words {
			t.addRole(w, types.RoleVerb, canonical)
		}
	}
	for _, d := range wf.Directions {
		t.addRole(d.Word, types.RoleDirection, d.Word)
		if d.Abbrev != "" {
			t.addRole(d.Abbrev, types.RoleDirection, d.Word)
		}
	}
	for _, w := range wf.Prepositions {
		t.addRole(w, types.RolePreposition, w)
	}
	for _, w := range wf.Articles {
		t.addRole(w, types.RoleArticle, w)
	}
	for _, w := range wf.Pronouns {
		t.addRole(w, types.RolePronoun, w)
	}
	for _, w := range wf.Conjunctions {
		t.addRole(w, types.RoleConjunction, w)
	}
	return t, nil
}

// rolePrecedence orders roles for picking a word's primary role. A word
// classified as both direction and preposition ("in") is primarily a
// direction; the parser consults the full role set positionally. This
// is a deliberate, fixed resolution policy.
var rolePrecedence = []types.Role{
	types.RoleVerb,
	types.RoleDirection,
	types.RolePreposition,
	types.RoleArticle,
	types.RolePronoun,
	types.RoleConjunction,
	types.RoleAdjective,
	types.RoleNoun,
}

func precedence(r types.Role) int {
	for i, p := range rolePrecedence {
		if p == r {
			return i
		}
	}
	return len(rolePrecedence)
}

func (t *Table) addRole(word string, role types.Role, canonical string) {
	e, ok := t.entries[word]
	if !ok {
		e = &Entry{Primary: role, Canonical: canonical}
		t.entries[word] = e
	}
	e.Roles = e.Roles.With(role)
	if precedence(role) < precedence(e.Primary) {
		e.Primary = role
		e.Canonical = canonical
	}
}

// AddNoun registers a noun from game data. Nouns never displace an
// existing primary classification.
func (t *Table) AddNoun(word string) { t.addRole(word, types.RoleNoun, word) }

// AddAdjective registers an adjective from game data.
func (t *Table) AddAdjective(word string) { t.addRole(word, types.RoleAdjective, word) }

// Classify returns the entry for a word, or ok=false for a word not in
// the vocabulary. Unknown words become RoleUnknown tokens, which the
// parser reports as an unknown-word error rather than ignoring.
func (t *Table) Classify(word string) (Entry, bool) {
	if e, ok := t.entries[word]; ok {
		return *e, true
	}
	return Entry{}, false
}

// Expand returns the canonical form of a word ("n" → "north",
// "i" → "inventory", "get" → "take"). Unknown words map to themselves.
func (t *Table) Expand(word string) string {
	if e, ok := t.entries[word]; ok && e.Canonical != "" {
		return e.Canonical
	}
	return word
}

// Tag classifies each token in place: fills Role, Roles, and rewrites
// Word to the canonical form. It also collapses the handful of
// two-word verb phrases ("pick up", "turn on", "turn off", "put down")
// into their single-verb equivalents.
func (t *Table) Tag(tokens []types.Token) []types.Token {
	tokens = t.collapsePhrases(tokens)
	for i := range tokens {
		e, ok := t.entries[tokens[i].Word]
		if !ok {
			tokens[i].Role = types.RoleUnknown
			tokens[i].Roles = 0
			continue
		}
		tokens[i].Word = e.Canonical
		tokens[i].Role = e.Primary
		tokens[i].Roles = e.Roles
	}
	return tokens
}

// phrasalVerbs maps "verb particle" pairs to a canonical verb.
var phrasalVerbs = map[[2]string]string{
	{"pick", "up"}:   "take",
	{"put", "down"}:  "drop",
	{"turn", "on"}:   "light",
	{"turn", "off"}:  "extinguish",
	{"blow", "out"}:  "extinguish",
	{"switch", "on"}: "light",
}

func (t *Table) collapsePhrases(tokens []types.Token) []types.Token {
	if len(tokens) < 2 {
		return tokens
	}
	if verb, ok := phrasalVerbs[[2]string{tokens[0].Word, tokens[1].Word}]; ok {
		merged := types.Token{Word: verb, Original: tokens[0].Original + " " + tokens[1].Original}
		return append([]types.Token{merged}, tokens[2:]...)
	}
	// Trailing particle: "pick the sword up".
	last := len(tokens) - 1
	if verb, ok := phrasalVerbs[[2]string{tokens[0].Word, tokens[last].Word}]; ok {
		merged := types.Token{Word: verb, Original: tokens[0].Original}
		return append([]types.Token{merged}, tokens[1:last]...)
	}
	return tokens
}
