package command

// Family identifies which command family a command belongs to.
type Family uint8

const (
	// FamilyUnknown indicates the text matched no known family.
	FamilyUnknown Family = iota
	// FamilyLinear indicates an array list, linked list, or stack command.
	FamilyLinear
	// FamilyTree indicates a binary tree, BST, AVL, or Huffman command.
	FamilyTree
	// FamilyGlobal indicates a command that affects both families.
	FamilyGlobal
)

// String returns a string representation of the family.
func (f Family) String() string {
	switch f {
	case FamilyLinear:
		return "linear"
	case FamilyTree:
		return "tree"
	case FamilyGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// Source indicates the origin of a command.
type Source uint8

const (
	// SourceTyped indicates the command was typed interactively.
	SourceTyped Source = iota
	// SourceScript indicates the command came from a script or scenario file.
	SourceScript
	// SourceLua indicates the command originated from a Lua script.
	SourceLua
	// SourceReplay indicates the command was replayed from a build queue.
	SourceReplay
)

// String returns a string representation of the command source.
func (s Source) String() string {
	switch s {
	case SourceScript:
		return "script"
	case SourceLua:
		return "lua"
	case SourceReplay:
		return "replay"
	default:
		return "typed"
	}
}

// TargetKind distinguishes a by-position argument from a by-value argument.
type TargetKind uint8

const (
	// TargetValue indicates the argument names an element value.
	TargetValue TargetKind = iota
	// TargetPosition indicates the argument names an index or position.
	TargetPosition
)

// String returns a string representation of the target kind.
func (k TargetKind) String() string {
	if k == TargetPosition {
		return "position"
	}
	return "value"
}

// Target is the normalized form of an ambiguous delete/get argument.
type Target struct {
	// Kind tags the argument as a position or a value.
	Kind TargetKind

	// Value is the index (TargetPosition) or element value (TargetValue).
	Value int
}

// Dir is one step in a root-relative tree path.
type Dir uint8

const (
	// DirLeft descends into the left child.
	DirLeft Dir = 0
	// DirRight descends into the right child.
	DirRight Dir = 1
)

// String returns "left" or "right".
func (d Dir) String() string {
	if d == DirRight {
		return "right"
	}
	return "left"
}

// FreqPair is one character/count entry in a Huffman frequency table.
type FreqPair struct {
	// Char is the source character.
	Char rune

	// Count is the character's frequency. Always positive after parsing.
	Count int
}

// Command is a single normalized operation ready for dispatch.
// It is immutable after normalization; the With* methods return copies.
type Command struct {
	// Family is the command family resolved during classification.
	Family Family

	// Op is the operation tag dispatched on.
	Op Op

	// Structure is the canonical structure type the command targets.
	// StructureNone for family-wide operations such as clear.
	Structure StructureType

	// Name is the canonical structure name as given in the surface text
	// (e.g. "array_list"), empty when the command carried no name.
	Name string

	// Value is the primary value argument (insert, push, search),
	// nil when the operation takes none.
	Value *int

	// Values holds the initial value list for create/build.
	Values []int

	// Target is the normalized position/value argument for insert,
	// delete, get, and set; nil when the operation carries none.
	Target *Target

	// Path is an explicit left/right descent for tree insert/delete.
	// A non-nil empty path addresses the root.
	Path []Dir

	// Expect is the optional expected value for a path delete.
	Expect *int

	// Capacity is the requested initial capacity (create ... size N),
	// zero when unspecified.
	Capacity int

	// Freqs is the frequency table for a Huffman build.
	Freqs []FreqPair

	// Text is the payload for encode.
	Text string

	// Bits is the bit-string payload for decode.
	Bits string

	// Order is the traversal order for traverse.
	Order Traversal

	// Source indicates where the command originated.
	Source Source

	// Raw is the original input text, retained for logging and events.
	Raw string
}

// WithSource returns a copy of the command with the given source.
func (c Command) WithSource(src Source) Command {
	c.Source = src
	return c
}

// HasPath reports whether an explicit tree path was supplied.
// The empty path (root) is a valid explicit path.
func (c Command) HasPath() bool {
	return c.Path != nil
}

// Key returns the registry key for the command, e.g. "linear.push".
func (c Command) Key() string {
	return c.Family.String() + "." + c.Op.String()
}
