package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/structlab/internal/dispatcher/handler"
	"github.com/dshills/structlab/internal/snapshot"
)

// RenderResult formats a dispatch outcome for the REPL: the status line,
// then the post-command structure when the result carries a snapshot.
func RenderResult(result handler.Result) string {
	var sb strings.Builder
	sb.WriteString(RenderStatus(result))

	if s, ok := result.LinearSnapshot(); ok {
		sb.WriteByte('\n')
		sb.WriteString(RenderLinear(s))
	} else if t, ok := result.TreeSnapshot(); ok {
		sb.WriteByte('\n')
		sb.WriteString(RenderTree(t))
	}
	return sb.String()
}

// RenderStatus formats the status and message on one line.
func RenderStatus(result handler.Result) string {
	if result.IsError() {
		return fmt.Sprintf("error: %v", result.Error)
	}
	return fmt.Sprintf("%s: %s", result.Status, result.Message)
}

// RenderLinear formats a linear snapshot on one line. Stack elements
// list bottom to top.
func RenderLinear(s snapshot.Linear) string {
	var sb strings.Builder
	sb.WriteString(s.Type)
	sb.WriteString(" [")
	for i, v := range s.Elements {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	fmt.Fprintf(&sb, "] size=%d", s.Size)
	if s.Capacity > 0 {
		fmt.Fprintf(&sb, " cap=%d", s.Capacity)
	}
	return sb.String()
}

// RenderTree formats a tree snapshot sideways: the right subtree prints
// above its parent and the left below, indented by depth. Huffman leaves
// carry their character, and the code table prints last.
func RenderTree(s snapshot.Tree) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s size=%d height=%d", s.Type, s.Size, s.Height)
	if s.IsEmpty() {
		sb.WriteString(" (empty)")
		return sb.String()
	}

	nodes := make(map[uint64]snapshot.Node, len(s.Nodes))
	for _, n := range s.Nodes {
		nodes[n.ID] = n
	}
	left := make(map[uint64]uint64, len(s.Edges))
	right := make(map[uint64]uint64, len(s.Edges))
	for _, e := range s.Edges {
		if e.Dir == "right" {
			right[e.From] = e.To
		} else {
			left[e.From] = e.To
		}
	}

	var root uint64
	for _, n := range s.Nodes {
		if n.Parent == 0 {
			root = n.ID
			break
		}
	}

	var walk func(id uint64, depth int)
	walk = func(id uint64, depth int) {
		n, ok := nodes[id]
		if !ok {
			return
		}
		if r, ok := right[id]; ok {
			walk(r, depth+1)
		}
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(strconv.Itoa(n.Value))
		if n.Char != "" {
			fmt.Fprintf(&sb, " %q", n.Char)
		}
		if l, ok := left[id]; ok {
			walk(l, depth+1)
		}
	}
	walk(root, 0)

	if len(s.Codes) > 0 {
		chars := make([]string, 0, len(s.Codes))
		for c := range s.Codes {
			chars = append(chars, c)
		}
		sort.Strings(chars)

		sb.WriteString("\ncodes:")
		for _, c := range chars {
			fmt.Fprintf(&sb, " %s=%s", c, s.Codes[c])
		}
	}
	return sb.String()
}
