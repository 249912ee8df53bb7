package tree

import (
	"container/heap"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/structlab/internal/command"
	"github.com/dshills/structlab/internal/engine"
	"github.com/dshills/structlab/internal/snapshot"
)

// Huffman is the Huffman coding tree. Build repeatedly merges the two
// lowest-frequency pending nodes; ties break on queue insertion order,
// and leaves enter the queue in sorted character order, so rebuilding
// from the same table always yields the same tree. Every internal node
// has exactly two children and every leaf carries one source character.
type Huffman struct {
	root  *node
	size  int
	ids   *engine.IDSource
	codes map[rune]string
}

// NewHuffman creates an empty, unbuilt Huffman tree.
func NewHuffman(ids *engine.IDSource) *Huffman {
	if ids == nil {
		ids = engine.NewIDSource()
	}
	return &Huffman{ids: ids}
}

// Type returns command.StructureHuffman.
func (t *Huffman) Type() command.StructureType {
	return command.StructureHuffman
}

// Len returns the node count, internal nodes included.
func (t *Huffman) Len() int {
	return t.size
}

// Built reports whether a build has completed.
func (t *Huffman) Built() bool {
	return t.root != nil
}

// Build constructs the tree from a frequency table and regenerates the
// code table. Counts for a repeated character accumulate. The returned
// trace carries one frame per merge plus a final frame holding the code
// table.
func (t *Huffman) Build(freqs []command.FreqPair) (*snapshot.Trace, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: empty frequency table", engine.ErrInvalidArgument)
	}

	counts := make(map[rune]int, len(freqs))
	for _, f := range freqs {
		if f.Count <= 0 {
			return nil, fmt.Errorf("%w: frequency %d for %q must be positive", engine.ErrInvalidArgument, f.Count, string(f.Char))
		}
		counts[f.Char] += f.Count
	}

	chars := make([]rune, 0, len(counts))
	for c := range counts {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	t.Clear()

	// pending mirrors the queue contents in insertion order; the heap
	// decides merge order, pending keeps forest frames deterministic.
	queue := &mergeQueue{}
	pending := make([]*node, 0, len(chars))
	for _, c := range chars {
		leaf := newNode(t.ids, counts[c])
		leaf.char = c
		heap.Push(queue, leaf)
		pending = append(pending, leaf)
		t.size++
	}

	trace := snapshot.NewTrace("huffman.build")
	trace.Add(fmt.Sprintf("build huffman tree from %d symbols", len(chars)),
		captureForest(t.Type(), pending, t.size))

	for queue.Len() > 1 {
		a := heap.Pop(queue).(*node)
		b := heap.Pop(queue).(*node)

		merged := newNode(t.ids, a.value+b.value)
		merged.left = a
		merged.right = b
		heap.Push(queue, merged)
		t.size++
		pending = mergePending(pending, a, b, merged)

		trace.Add(fmt.Sprintf("merged %s and %s into node %d", huffLabel(a), huffLabel(b), merged.value),
			captureForest(t.Type(), pending, t.size),
			a.id, b.id, merged.id)
	}

	t.root = heap.Pop(queue).(*node)
	t.generateCodes()

	final := t.Snapshot()
	trace.Add("generated code table", final, t.root.id)

	return trace, nil
}

// Codes returns the character to bit-string table with string keys, the
// shape external consumers read.
func (t *Huffman) Codes() map[string]string {
	out := make(map[string]string, len(t.codes))
	for c, bits := range t.codes {
		out[string(c)] = bits
	}
	return out
}

// Encode concatenates the code of every character of text. Characters
// absent from the table are skipped, not errors.
func (t *Huffman) Encode(text string) (string, error) {
	if !t.Built() {
		return "", fmt.Errorf("%w: huffman tree not built", engine.ErrInvalidArgument)
	}

	var sb strings.Builder
	for _, c := range text {
		if bits, ok := t.codes[c]; ok {
			sb.WriteString(bits)
		}
	}
	return sb.String(), nil
}

// Decode greedily matches growing bit prefixes against the reverse code
// table. Unmatched trailing bits are an error; the partial result is
// discarded.
func (t *Huffman) Decode(bits string) (string, error) {
	if !t.Built() {
		return "", fmt.Errorf("%w: huffman tree not built", engine.ErrInvalidArgument)
	}

	reverse := make(map[string]rune, len(t.codes))
	for c, code := range t.codes {
		reverse[code] = c
	}

	var sb strings.Builder
	prefix := ""
	for _, b := range bits {
		if b != '0' && b != '1' {
			return "", fmt.Errorf("%w: %q is not a bit", engine.ErrInvalidArgument, string(b))
		}
		prefix += string(b)
		if c, ok := reverse[prefix]; ok {
			sb.WriteRune(c)
			prefix = ""
		}
	}
	if prefix != "" {
		return "", fmt.Errorf("%w: %d unmatched trailing bits", engine.ErrInvalidArgument, len(prefix))
	}
	return sb.String(), nil
}

// Clear removes the tree and its code table.
func (t *Huffman) Clear() {
	t.root = nil
	t.size = 0
	t.codes = nil
}

// Snapshot returns a serializable view of the tree, including the code
// table once built.
func (t *Huffman) Snapshot() snapshot.Tree {
	snap := capture(t.Type(), t.root, t.size)
	if t.Built() {
		snap.Codes = t.Codes()
	}
	return snap
}

// generateCodes assigns "0" per left edge and "1" per right edge. A tree
// that is a single leaf gets the one-bit code "0" rather than an empty
// string.
func (t *Huffman) generateCodes() {
	t.codes = make(map[rune]string)
	if t.root == nil {
		return
	}
	if t.root.char != 0 {
		t.codes[t.root.char] = "0"
		return
	}
	assignCodes(t.root, "", t.codes)
}

func assignCodes(n *node, prefix string, codes map[rune]string) {
	if n == nil {
		return
	}
	if n.char != 0 {
		codes[n.char] = prefix
		return
	}
	assignCodes(n.left, prefix+"0", codes)
	assignCodes(n.right, prefix+"1", codes)
}

// huffLabel names a node for trace descriptions: the character for a
// leaf, the frequency for an internal node.
func huffLabel(n *node) string {
	if n.char != 0 {
		return fmt.Sprintf("%q(%d)", string(n.char), n.value)
	}
	return fmt.Sprintf("node %d", n.value)
}

// mergePending removes a and b from the forest order and appends merged.
func mergePending(pending []*node, a, b, merged *node) []*node {
	out := pending[:0]
	for _, n := range pending {
		if n != a && n != b {
			out = append(out, n)
		}
	}
	return append(out, merged)
}

// mergeQueue is the build priority queue: lowest frequency first, with
// ties broken by insertion order so merges are reproducible.
type mergeQueue struct {
	items []mergeItem
	seq   int
}

type mergeItem struct {
	n   *node
	seq int
}

func (q *mergeQueue) Len() int { return len(q.items) }

func (q *mergeQueue) Less(i, j int) bool {
	if q.items[i].n.value != q.items[j].n.value {
		return q.items[i].n.value < q.items[j].n.value
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *mergeQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

func (q *mergeQueue) Push(x any) {
	q.items = append(q.items, mergeItem{n: x.(*node), seq: q.seq})
	q.seq++
}

func (q *mergeQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item.n
}
