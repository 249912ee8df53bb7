package tree

import (
	"errors"
	"testing"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/engine"
)

func TestHuffmanBuild(t *testing.T) {
	h := NewHuffman(nil)

	trace, err := h.Build([]command.FreqPair{
		{Char: 'a', Count: 5},
		{Char: 'b', Count: 9},
		{Char: 'c', Count: 12},
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if !h.Built() {
		t.Fatal("tree should report built")
	}
	if h.Len() != 5 {
		t.Errorf("expected 5 nodes (3 leaves + 2 internal), got %d", h.Len())
	}

	codes := h.Codes()
	want := map[string]string{"a": "10", "b": "11", "c": "0"}
	for ch, bits := range want {
		if codes[ch] != bits {
			t.Errorf("code for %q = %q, want %q", ch, codes[ch], bits)
		}
	}

	// One frame for the starting forest, one per merge, one for the
	// code table.
	if trace.Op != "huffman.build" {
		t.Errorf("trace op = %q, want huffman.build", trace.Op)
	}
	if trace.Len() != 4 {
		t.Fatalf("expected 4 trace steps, got %d", trace.Len())
	}

	steps := trace.Steps
	if steps[0].Description != "build huffman tree from 3 symbols" {
		t.Errorf("initial frame %q", steps[0].Description)
	}
	if len(steps[0].State.Nodes) != 3 || len(steps[0].State.Edges) != 0 {
		t.Errorf("initial forest should be 3 loose leaves, got %d nodes %d edges",
			len(steps[0].State.Nodes), len(steps[0].State.Edges))
	}
	if steps[1].Description != `merged "a"(5) and "b"(9) into node 14` {
		t.Errorf("first merge frame %q", steps[1].Description)
	}
	if len(steps[1].Highlights) != 3 {
		t.Errorf("merge frame should highlight both operands and the result, got %d", len(steps[1].Highlights))
	}
	if steps[2].Description != `merged "c"(12) and node 14 into node 26` {
		t.Errorf("second merge frame %q", steps[2].Description)
	}
	if steps[3].Description != "generated code table" {
		t.Errorf("final frame %q", steps[3].Description)
	}
	if len(steps[3].State.Codes) != 3 {
		t.Errorf("final frame should carry the code table, got %v", steps[3].State.Codes)
	}
}

func TestHuffmanRoundTrip(t *testing.T) {
	h := NewHuffman(nil)
	if _, err := h.Build([]command.FreqPair{
		{Char: 'a', Count: 5},
		{Char: 'b', Count: 9},
		{Char: 'c', Count: 12},
	}); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	tests := []struct {
		text string
		bits string
	}{
		{"abc", "10110"},
		{"ccc", "000"},
		{"bacab", "111001011"},
		{"", ""},
	}

	for _, tt := range tests {
		encoded, err := h.Encode(tt.text)
		if err != nil {
			t.Fatalf("encode %q failed: %v", tt.text, err)
		}
		if encoded != tt.bits {
			t.Errorf("encode %q = %q, want %q", tt.text, encoded, tt.bits)
		}

		decoded, err := h.Decode(encoded)
		if err != nil {
			t.Fatalf("decode %q failed: %v", encoded, err)
		}
		if decoded != tt.text {
			t.Errorf("decode %q = %q, want %q", encoded, decoded, tt.text)
		}
	}
}

func TestHuffmanDeterministicRebuild(t *testing.T) {
	// Equal frequencies force every merge through the tie-break; two
	// builds from the same table must agree.
	table := []command.FreqPair{
		{Char: 'a', Count: 1},
		{Char: 'b', Count: 1},
		{Char: 'c', Count: 1},
		{Char: 'd', Count: 1},
	}

	h := NewHuffman(nil)
	if _, err := h.Build(table); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	first := h.Codes()

	want := map[string]string{"a": "00", "b": "01", "c": "10", "d": "11"}
	for ch, bits := range want {
		if first[ch] != bits {
			t.Errorf("code for %q = %q, want %q", ch, first[ch], bits)
		}
	}

	if _, err := h.Build(table); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	second := h.Codes()

	if len(first) != len(second) {
		t.Fatalf("rebuild changed table size: %d vs %d", len(first), len(second))
	}
	for ch, bits := range first {
		if second[ch] != bits {
			t.Errorf("rebuild changed code for %q: %q vs %q", ch, bits, second[ch])
		}
	}
	if h.Len() != 7 {
		t.Errorf("rebuild should replace the tree, got %d nodes", h.Len())
	}
}

func TestHuffmanSingleSymbol(t *testing.T) {
	h := NewHuffman(nil)
	trace, err := h.Build([]command.FreqPair{{Char: 'x', Count: 7}})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if code := h.Codes()["x"]; code != "0" {
		t.Errorf("single symbol code = %q, want %q", code, "0")
	}
	// No merges: the starting forest frame and the code-table frame.
	if trace.Len() != 2 {
		t.Errorf("expected 2 trace steps, got %d", trace.Len())
	}

	encoded, err := h.Encode("xxx")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "000" {
		t.Errorf("encode xxx = %q, want 000", encoded)
	}
	decoded, err := h.Decode("000")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "xxx" {
		t.Errorf("decode 000 = %q, want xxx", decoded)
	}
}

func TestHuffmanRepeatedCharAccumulates(t *testing.T) {
	h := NewHuffman(nil)
	if _, err := h.Build([]command.FreqPair{
		{Char: 'a', Count: 2},
		{Char: 'b', Count: 4},
		{Char: 'a', Count: 3},
	}); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// a accumulates to 5, so b(4) sorts first and takes the left edge.
	codes := h.Codes()
	if codes["b"] != "0" || codes["a"] != "1" {
		t.Errorf("expected b=0 a=1, got %v", codes)
	}
	if h.Len() != 3 {
		t.Errorf("expected 3 nodes, got %d", h.Len())
	}
}

func TestHuffmanBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		freqs []command.FreqPair
	}{
		{"empty table", nil},
		{"zero count", []command.FreqPair{{Char: 'a', Count: 0}}},
		{"negative count", []command.FreqPair{{Char: 'a', Count: -3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHuffman(nil)
			if _, err := h.Build(tt.freqs); !errors.Is(err, engine.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if h.Built() {
				t.Error("failed build must not mark the tree built")
			}
		})
	}
}

func TestHuffmanEncodeSkipsUnknown(t *testing.T) {
	h := NewHuffman(nil)
	if _, err := h.Build([]command.FreqPair{
		{Char: 'a', Count: 5},
		{Char: 'b', Count: 9},
	}); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	encoded, err := h.Encode("a!b z")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "01" {
		t.Errorf("unknown characters should be skipped, got %q", encoded)
	}
}

func TestHuffmanDecodeErrors(t *testing.T) {
	h := NewHuffman(nil)
	if _, err := h.Build([]command.FreqPair{
		{Char: 'a', Count: 5},
		{Char: 'b', Count: 9},
		{Char: 'c', Count: 12},
	}); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if _, err := h.Decode("01x"); !errors.Is(err, engine.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for non-bit input, got %v", err)
	}
	// "10" decodes to a, leaving a dangling "1".
	if _, err := h.Decode("101"); !errors.Is(err, engine.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for trailing bits, got %v", err)
	}
}

func TestHuffmanUnbuilt(t *testing.T) {
	h := NewHuffman(nil)

	if _, err := h.Encode("abc"); !errors.Is(err, engine.ErrInvalidArgument) {
		t.Errorf("encode before build should fail, got %v", err)
	}
	if _, err := h.Decode("010"); !errors.Is(err, engine.ErrInvalidArgument) {
		t.Errorf("decode before build should fail, got %v", err)
	}
	if len(h.Snapshot().Codes) != 0 {
		t.Error("unbuilt snapshot should carry no code table")
	}
}

func TestHuffmanSnapshot(t *testing.T) {
	h := NewHuffman(nil)
	if _, err := h.Build([]command.FreqPair{
		{Char: 'a', Count: 5},
		{Char: 'b', Count: 9},
		{Char: 'c', Count: 12},
	}); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	snap := h.Snapshot()
	if snap.Type != "huffman" {
		t.Errorf("expected type huffman, got %q", snap.Type)
	}
	if len(snap.Nodes) != 5 || len(snap.Edges) != 4 {
		t.Fatalf("expected 5 nodes and 4 edges, got %d and %d", len(snap.Nodes), len(snap.Edges))
	}

	children := map[uint64]int{}
	leaves := 0
	for _, e := range snap.Edges {
		children[e.From]++
	}
	for _, n := range snap.Nodes {
		switch children[n.ID] {
		case 0:
			leaves++
			if n.Char == "" {
				t.Errorf("leaf %d should carry a character", n.ID)
			}
		case 2:
			if n.Char != "" {
				t.Errorf("internal node %d should not carry a character", n.ID)
			}
		default:
			t.Errorf("node %d has %d children", n.ID, children[n.ID])
		}
	}
	if leaves != 3 {
		t.Errorf("expected 3 leaves, got %d", leaves)
	}

	if snap.Nodes[0].Value != 26 {
		t.Errorf("root frequency = %d, want 26", snap.Nodes[0].Value)
	}
}
