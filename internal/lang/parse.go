package lang

import (
	"fmt"
	"strings"

	"github.com/dshills/structlab/internal/command"
)

// Parse classifies text and runs it through its family grammar, returning
// the raw command record. The result still carries surface argument
// shapes; Normalize resolves them. Use Compile for the full front end.
func Parse(text string) (command.Command, error) {
	raw := strings.TrimSpace(text)

	family := Classify(raw)
	if family == command.FamilyUnknown {
		if s, ok := suggestCommand(strings.Fields(strings.ToLower(raw))); ok {
			return command.Command{}, fmt.Errorf("%w: cannot determine command family for %q (did you mean %q?)", ErrClassify, raw, s)
		}
		return command.Command{}, fmt.Errorf("%w: cannot determine command family for %q", ErrClassify, raw)
	}

	toks, err := lex(raw)
	if err != nil {
		return command.Command{}, err
	}
	p := &parser{toks: toks}

	var cmd command.Command
	switch family {
	case command.FamilyGlobal:
		cmd, err = p.parseGlobal()
	case command.FamilyLinear:
		cmd, err = p.parseLinear()
	default:
		cmd, err = p.parseTree()
	}
	if err != nil {
		return command.Command{}, err
	}

	cmd.Family = family
	cmd.Raw = raw
	return cmd, nil
}

// parser is a recursive-descent parser over the token stream.
type parser struct {
	toks []token
	pos  int
}

// cur returns the current token without consuming it.
func (p *parser) cur() token {
	return p.toks[p.pos]
}

// next consumes and returns the current token. The EOF token is never
// consumed.
func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

// acceptWord consumes the current token if it is the given keyword.
func (p *parser) acceptWord(word string) bool {
	t := p.cur()
	if t.kind == tokenWord && strings.EqualFold(t.text, word) {
		p.pos++
		return true
	}
	return false
}

// expectWord consumes the given keyword or fails.
func (p *parser) expectWord(word string) error {
	t := p.next()
	if t.kind != tokenWord || !strings.EqualFold(t.text, word) {
		return fmt.Errorf("%w: expected %q, got %q", ErrParse, word, t.text)
	}
	return nil
}

// expectNumber consumes a number token or fails.
func (p *parser) expectNumber() (token, error) {
	t := p.next()
	if t.kind != tokenNumber {
		return t, fmt.Errorf("%w: expected a number, got %q", ErrParse, t.text)
	}
	return t, nil
}

// expectEnd fails when input remains.
func (p *parser) expectEnd() error {
	if t := p.cur(); t.kind != tokenEOF {
		return fmt.Errorf("%w: unexpected trailing input %q", ErrParse, t.text)
	}
	return nil
}

// parseGlobal handles the bare global clear.
func (p *parser) parseGlobal() (command.Command, error) {
	if err := p.expectWord("clear"); err != nil {
		return command.Command{}, err
	}
	if err := p.expectEnd(); err != nil {
		return command.Command{}, err
	}
	return command.Command{Op: command.OpClear}, nil
}

// parseLinear handles the linear family grammar.
func (p *parser) parseLinear() (command.Command, error) {
	op, err := p.opWord()
	if err != nil {
		return command.Command{}, err
	}

	switch op {
	case command.OpCreate:
		return p.parseCreate(command.FamilyLinear)
	case command.OpInsert:
		return p.parseLinearInsert()
	case command.OpDelete, command.OpGet:
		return p.parseLinearTarget(op)
	case command.OpSet:
		return p.parseSet()
	case command.OpIndexOf:
		return p.parseIndexOf()
	case command.OpPush:
		return p.parsePush()
	case command.OpPop:
		return p.parsePop()
	case command.OpPeek:
		return p.parsePeek()
	case command.OpClear:
		return p.parseClear(command.FamilyLinear)
	default:
		return command.Command{}, fmt.Errorf("%w: %q is not a linear command", ErrParse, op)
	}
}

// parseTree handles the tree family grammar, including the dotted legacy
// form.
func (p *parser) parseTree() (command.Command, error) {
	if p.cur().kind == tokenWord && strings.EqualFold(p.cur().text, "tree") &&
		p.toks[p.pos+1].kind == tokenDot {
		return p.parseDotted()
	}

	op, err := p.opWord()
	if err != nil {
		return command.Command{}, err
	}

	switch op {
	case command.OpCreate:
		return p.parseCreate(command.FamilyTree)
	case command.OpInsert:
		return p.parseTreeInsert()
	case command.OpDelete:
		return p.parseTreeDelete()
	case command.OpSearch:
		return p.parseSearch()
	case command.OpTraverse:
		return p.parseTraverse()
	case command.OpBuild:
		return p.parseBuild()
	case command.OpEncode:
		return p.parseEncode()
	case command.OpDecode:
		return p.parseDecode()
	case command.OpClear:
		return p.parseClear(command.FamilyTree)
	default:
		return command.Command{}, fmt.Errorf("%w: %q is not a tree command", ErrParse, op)
	}
}

// opWord consumes the leading operation keyword.
func (p *parser) opWord() (command.Op, error) {
	t := p.next()
	if t.kind != tokenWord {
		return command.OpNone, fmt.Errorf("%w: expected a command word, got %q", ErrParse, t.text)
	}
	op := command.ParseOp(strings.ToLower(t.text))
	if op == command.OpNone {
		if s, ok := suggestOp(t.text); ok {
			return command.OpNone, fmt.Errorf("%w: unknown command %q (did you mean %q?)", ErrParse, t.text, s)
		}
		return command.OpNone, fmt.Errorf("%w: unknown command %q", ErrParse, t.text)
	}
	return op, nil
}

// structureName consumes a structure name belonging to the given family.
func (p *parser) structureName(family command.Family) (command.StructureType, error) {
	t := p.next()
	if t.kind != tokenWord {
		return command.StructureNone, fmt.Errorf("%w: expected a structure name, got %q", ErrParse, t.text)
	}
	st := command.ParseStructureType(t.text)
	if st == command.StructureNone {
		if s, ok := suggestStructure(t.text); ok {
			return command.StructureNone, fmt.Errorf("%w: unknown structure name %q (did you mean %q?)", ErrParse, t.text, s)
		}
		return command.StructureNone, fmt.Errorf("%w: unknown structure name %q", ErrParse, t.text)
	}
	if st.Family() != family {
		return command.StructureNone, fmt.Errorf("%w: %q is not a %s structure", ErrParse, t.text, family)
	}
	return st, nil
}

// parseCreate handles: create <type> [with values] [size N].
// A Huffman create takes frequency pairs after "with"; the size clause
// exists for the linear family only.
func (p *parser) parseCreate(family command.Family) (command.Command, error) {
	st, err := p.structureName(family)
	if err != nil {
		return command.Command{}, err
	}
	cmd := command.Command{Op: command.OpCreate, Structure: st, Name: st.String()}

	if p.acceptWord("with") {
		if st == command.StructureHuffman {
			cmd.Freqs, err = p.parseFreqs()
		} else {
			cmd.Values, err = p.parseValues()
		}
		if err != nil {
			return command.Command{}, err
		}
	}

	if family == command.FamilyLinear && p.acceptWord("size") {
		t, err := p.expectNumber()
		if err != nil {
			return command.Command{}, err
		}
		if t.num <= 0 {
			return command.Command{}, fmt.Errorf("%w: size must be positive, got %d", ErrParse, t.num)
		}
		cmd.Capacity = t.num
	}

	return cmd, p.expectEnd()
}

// parseLinearInsert handles: insert <value> [at <pos>] in <name>.
// Without the at clause the insert appends.
func (p *parser) parseLinearInsert() (command.Command, error) {
	v, err := p.expectNumber()
	if err != nil {
		return command.Command{}, err
	}
	cmd := command.Command{Op: command.OpInsert, Value: &v.num}

	if p.acceptWord("at") {
		t, err := p.expectNumber()
		if err != nil {
			return command.Command{}, err
		}
		cmd.Target = &command.Target{Kind: command.TargetPosition, Value: t.num}
	}

	if err := p.expectWord("in"); err != nil {
		return command.Command{}, err
	}
	if cmd.Structure, err = p.structureName(command.FamilyLinear); err != nil {
		return command.Command{}, err
	}
	cmd.Name = cmd.Structure.String()
	return cmd, p.expectEnd()
}

// parseLinearTarget handles: delete|get <value> from <name> and
// delete|get at <pos> from <name>.
func (p *parser) parseLinearTarget(op command.Op) (command.Command, error) {
	cmd := command.Command{Op: op}

	if p.acceptWord("at") {
		t, err := p.expectNumber()
		if err != nil {
			return command.Command{}, err
		}
		cmd.Target = &command.Target{Kind: command.TargetPosition, Value: t.num}
	} else {
		v, err := p.expectNumber()
		if err != nil {
			return command.Command{}, err
		}
		cmd.Value = &v.num
	}

	if err := p.expectWord("from"); err != nil {
		return command.Command{}, err
	}
	st, err := p.structureName(command.FamilyLinear)
	if err != nil {
		return command.Command{}, err
	}
	cmd.Structure, cmd.Name = st, st.String()
	return cmd, p.expectEnd()
}

// parseSet handles: set <pos> to <value> in <name>.
func (p *parser) parseSet() (command.Command, error) {
	pos, err := p.expectNumber()
	if err != nil {
		return command.Command{}, err
	}
	if err := p.expectWord("to"); err != nil {
		return command.Command{}, err
	}
	v, err := p.expectNumber()
	if err != nil {
		return command.Command{}, err
	}
	cmd := command.Command{
		Op:     command.OpSet,
		Value:  &v.num,
		Target: &command.Target{Kind: command.TargetPosition, Value: pos.num},
	}

	if err := p.expectWord("in"); err != nil {
		return command.Command{}, err
	}
	st, err := p.structureName(command.FamilyLinear)
	if err != nil {
		return command.Command{}, err
	}
	cmd.Structure, cmd.Name = st, st.String()
	return cmd, p.expectEnd()
}

// parseIndexOf handles: index_of <value> in <name>.
func (p *parser) parseIndexOf() (command.Command, error) {
	v, err := p.expectNumber()
	if err != nil {
		return command.Command{}, err
	}
	if err := p.expectWord("in"); err != nil {
		return command.Command{}, err
	}
	st, err := p.structureName(command.FamilyLinear)
	if err != nil {
		return command.Command{}, err
	}
	cmd := command.Command{Op: command.OpIndexOf, Structure: st, Name: st.String(), Value: &v.num}
	return cmd, p.expectEnd()
}

// parsePush handles: push <value> to <name>.
func (p *parser) parsePush() (command.Command, error) {
	v, err := p.expectNumber()
	if err != nil {
		return command.Command{}, err
	}
	if err := p.expectWord("to"); err != nil {
		return command.Command{}, err
	}
	st, err := p.structureName(command.FamilyLinear)
	if err != nil {
		return command.Command{}, err
	}
	cmd := command.Command{Op: command.OpPush, Structure: st, Name: st.String(), Value: &v.num}
	return cmd, p.expectEnd()
}

// parsePop handles: pop from <name>.
func (p *parser) parsePop() (command.Command, error) {
	if err := p.expectWord("from"); err != nil {
		return command.Command{}, err
	}
	st, err := p.structureName(command.FamilyLinear)
	if err != nil {
		return command.Command{}, err
	}
	return command.Command{Op: command.OpPop, Structure: st, Name: st.String()}, p.expectEnd()
}

// parsePeek handles: peek <name>.
func (p *parser) parsePeek() (command.Command, error) {
	st, err := p.structureName(command.FamilyLinear)
	if err != nil {
		return command.Command{}, err
	}
	return command.Command{Op: command.OpPeek, Structure: st, Name: st.String()}, p.expectEnd()
}

// parseClear handles the family clear: clear <name>.
func (p *parser) parseClear(family command.Family) (command.Command, error) {
	st, err := p.structureName(family)
	if err != nil {
		return command.Command{}, err
	}
	return command.Command{Op: command.OpClear, Structure: st, Name: st.String()}, p.expectEnd()
}

// parseTreeInsert handles: insert <value> [at <path>] in <name>.
func (p *parser) parseTreeInsert() (command.Command, error) {
	v, err := p.expectNumber()
	if err != nil {
		return command.Command{}, err
	}
	cmd := command.Command{Op: command.OpInsert, Value: &v.num}

	if p.acceptWord("at") {
		if cmd.Path, err = p.parsePath(); err != nil {
			return command.Command{}, err
		}
	}

	if err := p.expectWord("in"); err != nil {
		return command.Command{}, err
	}
	st, err := p.structureName(command.FamilyTree)
	if err != nil {
		return command.Command{}, err
	}
	cmd.Structure, cmd.Name = st, st.String()
	return cmd, p.expectEnd()
}

// parseTreeDelete handles: delete <value> [at <path>] from <name> and
// delete at <path> from <name>. A value together with a path is the
// expected value at that path.
func (p *parser) parseTreeDelete() (command.Command, error) {
	cmd := command.Command{Op: command.OpDelete}
	var err error

	if p.acceptWord("at") {
		if cmd.Path, err = p.parsePath(); err != nil {
			return command.Command{}, err
		}
	} else {
		v, err := p.expectNumber()
		if err != nil {
			return command.Command{}, err
		}
		cmd.Value = &v.num
		if p.acceptWord("at") {
			if cmd.Path, err = p.parsePath(); err != nil {
				return command.Command{}, err
			}
		}
	}

	if err := p.expectWord("from"); err != nil {
		return command.Command{}, err
	}
	st, err := p.structureName(command.FamilyTree)
	if err != nil {
		return command.Command{}, err
	}
	cmd.Structure, cmd.Name = st, st.String()
	return cmd, p.expectEnd()
}

// parseSearch handles: search <value> in <name>.
func (p *parser) parseSearch() (command.Command, error) {
	v, err := p.expectNumber()
	if err != nil {
		return command.Command{}, err
	}
	if err := p.expectWord("in"); err != nil {
		return command.Command{}, err
	}
	st, err := p.structureName(command.FamilyTree)
	if err != nil {
		return command.Command{}, err
	}
	cmd := command.Command{Op: command.OpSearch, Structure: st, Name: st.String(), Value: &v.num}
	return cmd, p.expectEnd()
}

// parseTraverse handles: traverse <order>.
func (p *parser) parseTraverse() (command.Command, error) {
	t := p.next()
	if t.kind != tokenWord {
		return command.Command{}, fmt.Errorf("%w: expected a traversal order, got %q", ErrParse, t.text)
	}
	order := command.ParseTraversal(t.text)
	if order == command.TraverseNone {
		return command.Command{}, fmt.Errorf("%w: unknown traversal order %q", ErrParse, t.text)
	}
	return command.Command{Op: command.OpTraverse, Order: order}, p.expectEnd()
}

// parseBuild handles: build <bst|avl> with values and
// build huffman with freq pairs.
func (p *parser) parseBuild() (command.Command, error) {
	st, err := p.structureName(command.FamilyTree)
	if err != nil {
		return command.Command{}, err
	}
	cmd := command.Command{Op: command.OpBuild, Structure: st, Name: st.String()}

	switch st {
	case command.StructureBST, command.StructureAVL:
		if err := p.expectWord("with"); err != nil {
			return command.Command{}, err
		}
		if cmd.Values, err = p.parseValues(); err != nil {
			return command.Command{}, err
		}
	case command.StructureHuffman:
		if err := p.expectWord("with"); err != nil {
			return command.Command{}, err
		}
		if cmd.Freqs, err = p.parseFreqs(); err != nil {
			return command.Command{}, err
		}
	default:
		return command.Command{}, fmt.Errorf("%w: build supports bst, avl, and huffman, not %q", ErrParse, st)
	}

	return cmd, p.expectEnd()
}

// parseEncode handles: encode "<text>" [using huffman].
func (p *parser) parseEncode() (command.Command, error) {
	t := p.next()
	if t.kind != tokenString {
		return command.Command{}, fmt.Errorf("%w: encode takes a double-quoted string, got %q", ErrParse, t.text)
	}
	cmd := command.Command{
		Op:        command.OpEncode,
		Structure: command.StructureHuffman,
		Name:      command.StructureHuffman.String(),
		Text:      t.text,
	}
	if err := p.usingClause(); err != nil {
		return command.Command{}, err
	}
	return cmd, p.expectEnd()
}

// parseDecode handles: decode <bits> [using huffman].
func (p *parser) parseDecode() (command.Command, error) {
	t, err := p.expectNumber()
	if err != nil {
		return command.Command{}, err
	}
	for _, c := range t.text {
		if c != '0' && c != '1' {
			return command.Command{}, fmt.Errorf("%w: decode takes a bit string, got %q", ErrParse, t.text)
		}
	}
	cmd := command.Command{
		Op:        command.OpDecode,
		Structure: command.StructureHuffman,
		Name:      command.StructureHuffman.String(),
		Bits:      t.text,
	}
	if err := p.usingClause(); err != nil {
		return command.Command{}, err
	}
	return cmd, p.expectEnd()
}

// usingClause consumes an optional "using huffman".
func (p *parser) usingClause() error {
	if !p.acceptWord("using") {
		return nil
	}
	st, err := p.structureName(command.FamilyTree)
	if err != nil {
		return err
	}
	if st != command.StructureHuffman {
		return fmt.Errorf("%w: encode and decode work through the huffman tree, not %q", ErrParse, st)
	}
	return nil
}

// parseDotted handles the legacy form: tree.<type>.<op> [args].
func (p *parser) parseDotted() (command.Command, error) {
	p.next() // tree
	p.next() // dot

	st, err := p.structureName(command.FamilyTree)
	if err != nil {
		return command.Command{}, err
	}
	if t := p.next(); t.kind != tokenDot {
		return command.Command{}, fmt.Errorf("%w: expected %q after the structure type, got %q", ErrParse, ".", t.text)
	}

	op, err := p.opWord()
	if err != nil {
		return command.Command{}, err
	}
	cmd := command.Command{Op: op, Structure: st, Name: st.String()}

	switch op {
	case command.OpCreate:
		if p.cur().kind != tokenEOF {
			if cmd.Values, err = p.parseValues(); err != nil {
				return command.Command{}, err
			}
		}
	case command.OpInsert, command.OpSearch, command.OpDelete:
		v, err := p.expectNumber()
		if err != nil {
			return command.Command{}, err
		}
		cmd.Value = &v.num
	case command.OpTraverse:
		t := p.next()
		if t.kind != tokenWord {
			return command.Command{}, fmt.Errorf("%w: expected a traversal order, got %q", ErrParse, t.text)
		}
		cmd.Order = command.ParseTraversal(t.text)
		if cmd.Order == command.TraverseNone {
			return command.Command{}, fmt.Errorf("%w: unknown traversal order %q", ErrParse, t.text)
		}
	case command.OpClear:
		// no arguments
	default:
		return command.Command{}, fmt.Errorf("%w: %q is not available in dotted form", ErrParse, op)
	}

	return cmd, p.expectEnd()
}

// parseValues handles a comma-separated integer list.
func (p *parser) parseValues() ([]int, error) {
	t, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	values := []int{t.num}

	for p.cur().kind == tokenComma {
		p.next()
		if t, err = p.expectNumber(); err != nil {
			return nil, err
		}
		values = append(values, t.num)
	}
	return values, nil
}

// parseFreqs handles a comma-separated char:count list. A character may
// be a bare word, a digit, or a quoted string, one character long.
func (p *parser) parseFreqs() ([]command.FreqPair, error) {
	pair, err := p.parseFreqPair()
	if err != nil {
		return nil, err
	}
	freqs := []command.FreqPair{pair}

	for p.cur().kind == tokenComma {
		p.next()
		if pair, err = p.parseFreqPair(); err != nil {
			return nil, err
		}
		freqs = append(freqs, pair)
	}
	return freqs, nil
}

func (p *parser) parseFreqPair() (command.FreqPair, error) {
	t := p.next()
	switch t.kind {
	case tokenWord, tokenNumber, tokenString:
	default:
		return command.FreqPair{}, fmt.Errorf("%w: expected a character, got %q", ErrParse, t.text)
	}
	runes := []rune(t.text)
	if len(runes) != 1 {
		return command.FreqPair{}, fmt.Errorf("%w: frequency character %q must be a single character", ErrParse, t.text)
	}

	if c := p.next(); c.kind != tokenColon {
		return command.FreqPair{}, fmt.Errorf("%w: expected %q after %q, got %q", ErrParse, ":", t.text, c.text)
	}
	count, err := p.expectNumber()
	if err != nil {
		return command.FreqPair{}, err
	}
	return command.FreqPair{Char: runes[0], Count: count.num}, nil
}

// parsePath handles a tree path: comma-separated runs of 0/1 digits, or
// the word "root" for the empty path.
func (p *parser) parsePath() ([]command.Dir, error) {
	if p.acceptWord("root") {
		return []command.Dir{}, nil
	}

	path := []command.Dir{}
	steps, err := p.pathSteps()
	if err != nil {
		return nil, err
	}
	path = append(path, steps...)

	for p.cur().kind == tokenComma {
		p.next()
		if steps, err = p.pathSteps(); err != nil {
			return nil, err
		}
		path = append(path, steps...)
	}
	return path, nil
}

// pathSteps expands one digit run into left/right steps.
func (p *parser) pathSteps() ([]command.Dir, error) {
	t, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	steps := make([]command.Dir, 0, len(t.text))
	for _, c := range t.text {
		switch c {
		case '0':
			steps = append(steps, command.DirLeft)
		case '1':
			steps = append(steps, command.DirRight)
		default:
			return nil, fmt.Errorf("%w: path steps must be 0 or 1, got %q", ErrParse, t.text)
		}
	}
	return steps, nil
}
