// Package command defines the typed command model shared by the language
// front-end, the dispatcher, and the structure engines.
//
// A Command is produced once per input line by the lang package and is
// immutable after normalization. The dispatcher matches on the Op tag
// exhaustively; optional arguments (value, target, path, frequency pairs)
// are carried as typed fields rather than an untyped argument bag.
//
// # Families
//
// Every command belongs to exactly one family:
//
//   - FamilyLinear: array list, linked list, stack operations
//   - FamilyTree: binary tree, BST, AVL, Huffman operations
//   - FamilyGlobal: the bare "clear" that resets both families
//
// # Targets
//
// The delete and get operations accept either a position or a value. The
// grammar disambiguates with an explicit "at" marker, and normalization
// records the outcome as a Target tagged TargetPosition or TargetValue so
// downstream code never re-inspects surface text.
package command
