// Package lang implements the command language front end: the classifier
// that assigns raw text to a command family, the two family grammars, and
// the normalizer that produces canonical command records.
//
// # Pipeline
//
// Raw text passes through three pure stages before it reaches the
// dispatcher:
//
//	text -> Classify -> Parse -> Normalize -> command.Command
//
// Classify is keyword-driven and side effect free: structure names and
// traversal orders decide the family first (linear names win over tree
// names), then operation words that belong to exactly one family
// (push/pop/peek are linear, search/traverse/build/encode/decode are
// tree). The single token "clear" is the one global command. Compile
// runs all three stages.
//
// # Grammars
//
// The linear and tree families have separate grammars sharing one token
// vocabulary:
//
//	create <type> [with v1,v2,...] [size N]
//	insert <value> [at <pos>] in <name>          (linear)
//	insert <value> [at <path>] in <name>         (tree)
//	delete <value> | at <pos> from <name>        (linear)
//	delete <value> [at <path>] from <name>       (tree)
//	delete at <path> from <name>                 (tree)
//	get <value> | at <pos> from <name>
//	push <value> to <name>
//	pop from <name>
//	peek <name>
//	search <value> in <name>
//	traverse <preorder|inorder|postorder|levelorder>
//	build <bst|avl> with v1,v2,...
//	build huffman with c1:f1,c2:f2,...
//	encode "<text>" [using huffman]
//	decode <bits> [using huffman]
//	clear [<name>]
//
// A tree path is a sequence of 0 (left) and 1 (right) steps, written as
// comma-separated runs of digits ("0,1" and "01" are the same path); the
// word "root" names the empty path. A tree delete with both a value and
// a path treats the value as the expected value at that path.
//
// The legacy dotted form "tree.<type>.<op> args" resolves to the same
// command shape; it supports create, insert, search, delete, traverse,
// and clear.
//
// # Errors
//
// The three stages fail with three sentinels: ErrParse for text that
// matches no production of its family grammar, ErrClassify for text
// matching no family at all, and ErrNormalize for commands whose
// argument shape is incomplete or contradictory. None of them ever
// reaches an engine.
package lang
