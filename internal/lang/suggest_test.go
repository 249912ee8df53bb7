package lang

import (
	"strings"
	"testing"
)

func TestSuggestOp(t *testing.T) {
	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{"crea", "create", true},
		{"creat", "create", true},
		{"sarch", "search", true},
		{"pus", "push", true},
		{"travrse", "traverse", true},
		{"encde", "encode", true},

		// A known keyword is not the misspelled part.
		{"create", "", false},
		{"push", "", false},

		// Too short to suggest from.
		{"cr", "", false},
		{"", "", false},

		// Nothing plausible.
		{"frobnicate", "", false},
		{"hello", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := suggestOp(tt.word)
			if ok != tt.ok {
				t.Fatalf("suggestOp(%q) ok = %v, want %v", tt.word, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("suggestOp(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestSuggestStructure(t *testing.T) {
	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{"stak", "stack", true},
		{"stck", "stack", true},
		{"binry_tree", "binary_tree", true},
		{"hufman", "huffman", true},

		{"stack", "", false},
		{"rope", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := suggestStructure(tt.word)
			if ok != tt.ok {
				t.Fatalf("suggestStructure(%q) ok = %v, want %v", tt.word, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("suggestStructure(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
		ok     bool
	}{
		{"leading op typo", []string{"creat", "stack"}, "create", true},
		{"structure typo after valid op", []string{"create", "stak", "with", "1"}, "stack", true},
		{"op typo wins over structure typo", []string{"creat", "stak"}, "create", true},
		{"no fields", nil, "", false},
		{"nothing close", []string{"hello", "world"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := suggestCommand(tt.fields)
			if ok != tt.ok {
				t.Fatalf("suggestCommand(%v) ok = %v, want %v", tt.fields, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("suggestCommand(%v) = %q, want %q", tt.fields, got, tt.want)
			}
		})
	}
}

func TestParseSuggestsCorrections(t *testing.T) {
	tests := []struct {
		input   string
		wantHas string
	}{
		{"sarch 5", `did you mean "search"`},
		{"creat stack with 1, 2", `did you mean "create"`},
		{"create stak with 1", `did you mean "stack"`},
		{"create bnary_tree with 1, 2", `did you mean "binary_tree"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.input)
			}
			if !strings.Contains(err.Error(), tt.wantHas) {
				t.Errorf("Parse(%q) error = %q, want it to contain %q", tt.input, err.Error(), tt.wantHas)
			}
		})
	}
}

func TestParseNoSuggestionForGarbage(t *testing.T) {
	_, err := Parse("frobnicate 5")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("expected no suggestion, got %q", err.Error())
	}
}
