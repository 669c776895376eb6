package parser

// patternKind is the structural shape of a command.
type patternKind int

const (
	verbOnly patternKind = iota
	verbDir         // go <direction>
	verbObj         // take <obj>
	verbPrepObj     // look at <obj>
	verbObjPrepObj  // put <obj> in <obj>
)

// syntax is one registered pattern for a verb. Patterns for a verb are
// tried in registration order, most specific first; the first
// structural match wins.
type syntax struct {
	kind  patternKind
	preps []string // accepted prepositions for the prep slot
}

// syntaxes is the fixed grammar. Verbs absent from this table accept a
// bare object ("verb <obj>") and nothing else.
var syntaxes = map[string][]syntax{
	"look": {
		{kind: verbPrepObj, preps: []string{"at", "in", "inside", "under", "behind"}},
		{kind: verbOnly},
	},
	"examine": {
		{kind: verbObj},
	},
	"go": {
		{kind: verbDir},
	},
	"enter": {{kind: verbOnly}},
	"exit":  {{kind: verbOnly}},
	"take": {
		{kind: verbObj},
	},
	"drop": {
		{kind: verbObj},
	},
	"put": {
		{kind: verbObjPrepObj, preps: []string{"in", "into", "inside", "on", "onto"}},
	},
	"open":  {{kind: verbObj}},
	"close": {{kind: verbObj}},
	"lock": {
		{kind: verbObjPrepObj, preps: []string{"with"}},
		{kind: verbObj},
	},
	"unlock": {
		{kind: verbObjPrepObj, preps: []string{"with"}},
		{kind: verbObj},
	},
	"read":        {{kind: verbObj}},
	"light":       {{kind: verbObj}},
	"extinguish":  {{kind: verbObj}},
	"attack": {
		{kind: verbObjPrepObj, preps: []string{"with"}},
		{kind: verbObj},
	},
	"throw": {
		{kind: verbObjPrepObj, preps: []string{"at", "to"}},
		{kind: verbObj},
	},
	"turn": {
		{kind: verbObjPrepObj, preps: []string{"with"}},
		{kind: verbObj},
	},
	"inventory": {{kind: verbOnly}},
	"wait":      {{kind: verbOnly}},
	"score":     {{kind: verbOnly}},
	"diagnose":  {{kind: verbOnly}},
	"quit":      {{kind: verbOnly}},
	"restart":   {{kind: verbOnly}},
	"verbose":   {{kind: verbOnly}},
	"brief":     {{kind: verbOnly}},
	"eat":   {{kind: verbObj}},
	"drink": {{kind: verbObj}},
	"hello": {
		{kind: verbObj},
		{kind: verbOnly},
	},
	"jump": {
		{kind: verbObj},
		{kind: verbOnly},
	},
	"push":  {{kind: verbObj}},
	"pull":  {{kind: verbObj}},
	"move":  {{kind: verbObj}},
	"climb": {{kind: verbObj}},
	"rub":   {{kind: verbObj}},
	"smell": {
		{kind: verbObj},
		{kind: verbOnly},
	},
	"listen": {
		{kind: verbPrepObj, preps: []string{"to"}},
		{kind: verbOnly},
	},
	"wave": {
		{kind: verbObj},
		{kind: verbOnly},
	},
	"pray":  {{kind: verbOnly}},
	"shout": {{kind: verbOnly}},
	"knock": {
		{kind: verbPrepObj, preps: []string{"on", "at"}},
		{kind: verbObj},
	},
}

// syntaxesFor returns the patterns for a verb, falling back to the
// generic verb+object shape.
func syntaxesFor(verb string) []syntax {
	if s, ok := syntaxes[verb]; ok {
		return s
	}
	return []syntax{{kind: verbObj}}
}
