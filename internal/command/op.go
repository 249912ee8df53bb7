package command

// Op identifies the operation a command performs.
type Op uint8

const (
	// OpNone is the zero operation.
	OpNone Op = iota
	// OpCreate creates a structure, optionally with initial values.
	OpCreate
	// OpInsert inserts a value, optionally at a position or path.
	OpInsert
	// OpDelete removes an element by value, position, or path.
	OpDelete
	// OpGet reads an element by value or position.
	OpGet
	// OpSet overwrites the element at a position.
	OpSet
	// OpIndexOf reports the first position of a value.
	OpIndexOf
	// OpPush pushes a value onto the stack.
	OpPush
	// OpPop removes and returns the top of the stack.
	OpPop
	// OpPeek returns the top of the stack without removing it.
	OpPeek
	// OpClear empties a structure, or both families for FamilyGlobal.
	OpClear
	// OpSearch looks a value up in an ordered tree.
	OpSearch
	// OpTraverse walks a binary tree in a given order.
	OpTraverse
	// OpBuild constructs a tree from a value list or frequency table.
	OpBuild
	// OpEncode encodes text through the Huffman code table.
	OpEncode
	// OpDecode decodes a bit-string through the Huffman tree.
	OpDecode
)

// String returns the surface name of the operation.
func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpGet:
		return "get"
	case OpSet:
		return "set"
	case OpIndexOf:
		return "index_of"
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpPeek:
		return "peek"
	case OpClear:
		return "clear"
	case OpSearch:
		return "search"
	case OpTraverse:
		return "traverse"
	case OpBuild:
		return "build"
	case OpEncode:
		return "encode"
	case OpDecode:
		return "decode"
	default:
		return "none"
	}
}

// ParseOp maps a surface keyword to its operation. Returns OpNone for
// unrecognized words.
func ParseOp(word string) Op {
	switch word {
	case "create":
		return OpCreate
	case "insert":
		return OpInsert
	case "delete", "remove":
		return OpDelete
	case "get":
		return OpGet
	case "set":
		return OpSet
	case "index_of", "indexof":
		return OpIndexOf
	case "push":
		return OpPush
	case "pop":
		return OpPop
	case "peek":
		return OpPeek
	case "clear":
		return OpClear
	case "search", "find":
		return OpSearch
	case "traverse":
		return OpTraverse
	case "build", "build_huffman":
		return OpBuild
	case "encode":
		return OpEncode
	case "decode":
		return OpDecode
	default:
		return OpNone
	}
}
