package lexer

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "whitespace only", input: "   \t ", want: nil},
		{name: "single word", input: "look", want: []string{"look"}},
		{name: "lowercased", input: "TAKE Lamp", want: []string{"take", "lamp"}},
		{name: "punctuation stripped", input: "open the mailbox.", want: []string{"open", "the", "mailbox"}},
		{name: "comma and bang", input: "troll, attack!", want: []string{"troll", "attack"}},
		{name: "inner hyphen kept", input: "open trap-door", want: []string{"open", "trap-door"}},
		{name: "apostrophe kept", input: "take adventurer's lamp", want: []string{"take", "adventurer's", "lamp"}},
		{name: "pure punctuation dropped", input: "take ... lamp", want: []string{"take", "lamp"}},
		{name: "extra spaces", input: "  go   north  ", want: []string{"go", "north"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %d tokens, want %d", tt.input, len(tokens), len(tt.want))
			}
			for i, tok := range tokens {
				if tok.Word != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, tok.Word, tt.want[i])
				}
			}
		})
	}
}

func TestTokenizePreservesOriginal(t *testing.T) {
	tokens := Tokenize("TAKE Lamp!")
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens", len(tokens))
	}
	if tokens[0].Original != "TAKE" {
		t.Errorf("Original = %q, want TAKE", tokens[0].Original)
	}
	if tokens[1].Original != "Lamp!" {
		t.Errorf("Original = %q, want Lamp!", tokens[1].Original)
	}
}
