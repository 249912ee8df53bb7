package lang

import (
	"fmt"
	"strconv"
)

// tokenKind identifies the lexical class of a token.
type tokenKind uint8

const (
	// tokenEOF marks the end of input.
	tokenEOF tokenKind = iota

	// tokenWord is a bare word: a keyword, structure name, or character.
	tokenWord

	// tokenNumber is an integer literal, possibly negative.
	tokenNumber

	// tokenString is a double-quoted string; text holds the content
	// without the quotes.
	tokenString

	// tokenColon separates a character from its count in a frequency pair.
	tokenColon

	// tokenComma separates list entries and path steps.
	tokenComma

	// tokenDot separates the segments of the dotted legacy form.
	tokenDot
)

// String returns a string representation of the token kind.
func (k tokenKind) String() string {
	switch k {
	case tokenWord:
		return "word"
	case tokenNumber:
		return "number"
	case tokenString:
		return "string"
	case tokenColon:
		return "colon"
	case tokenComma:
		return "comma"
	case tokenDot:
		return "dot"
	default:
		return "eof"
	}
}

// token is one lexical unit of a command line.
type token struct {
	kind tokenKind

	// text is the raw token text. Number tokens keep their digit string
	// so paths ("01") and bit strings ("10110") survive leading zeros.
	text string

	// num is the parsed value of a number token.
	num int

	// pos is the byte offset of the token in the input.
	pos int
}

// lex splits a command line into tokens. Words end at whitespace or at
// one of the structural delimiters (comma, colon, dot, quote), so any
// printable character can appear inside a word.
func lex(input string) ([]token, error) {
	toks := make([]token, 0, 8)
	i := 0

	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++

		case c == ',':
			toks = append(toks, token{kind: tokenComma, text: ",", pos: i})
			i++

		case c == ':':
			toks = append(toks, token{kind: tokenColon, text: ":", pos: i})
			i++

		case c == '.':
			toks = append(toks, token{kind: tokenDot, text: ".", pos: i})
			i++

		case c == '"':
			start := i
			i++
			for i < len(input) && input[i] != '"' {
				i++
			}
			if i >= len(input) {
				return nil, fmt.Errorf("%w: unterminated string at offset %d", ErrParse, start)
			}
			toks = append(toks, token{kind: tokenString, text: input[start+1 : i], pos: start})
			i++

		case c == '-' || isDigit(c):
			start := i
			if c == '-' {
				i++
				if i >= len(input) || !isDigit(input[i]) {
					return nil, fmt.Errorf("%w: expected a digit after %q at offset %d", ErrParse, "-", start)
				}
			}
			for i < len(input) && isDigit(input[i]) {
				i++
			}
			text := input[start:i]
			n, err := strconv.Atoi(text)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q at offset %d", ErrParse, text, start)
			}
			toks = append(toks, token{kind: tokenNumber, text: text, num: n, pos: start})

		default:
			start := i
			for i < len(input) && !isDelimiter(input[i]) {
				i++
			}
			toks = append(toks, token{kind: tokenWord, text: input[start:i], pos: start})
		}
	}

	toks = append(toks, token{kind: tokenEOF, pos: len(input)})
	return toks, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',', ':', '.', '"':
		return true
	}
	return false
}
