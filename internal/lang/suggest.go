package lang

import "strings"

// Suggestions for misspelled keywords. A candidate matches when the
// typed word is a character subsequence of it; candidates are scored
// and the best one is offered if it clears the floor. Too-short words
// match half the vocabulary, so they get no suggestion.

const (
	suggestMinLen = 3
	suggestFloor  = 150
)

// opWords are the operation keywords the parsers accept.
var opWords = []string{
	"create", "insert", "delete", "remove", "get", "set", "index_of",
	"push", "pop", "peek", "clear",
	"search", "find", "traverse", "build", "encode", "decode",
}

// structureWords are the structure names and their accepted aliases.
var structureWords = []string{
	"array_list", "arraylist", "array",
	"linked_list", "linkedlist", "list",
	"stack",
	"binary_tree", "bst", "avl", "huffman",
}

func suggestOp(word string) (string, bool) {
	return suggest(word, opWords)
}

func suggestStructure(word string) (string, bool) {
	return suggest(word, structureWords)
}

// suggestCommand proposes a correction for text that failed to
// classify: a misspelled leading operation word, or failing that, a
// misspelled structure name anywhere in the command.
func suggestCommand(fields []string) (string, bool) {
	if len(fields) == 0 {
		return "", false
	}
	if s, ok := suggestOp(fields[0]); ok {
		return s, ok
	}
	for _, f := range fields[1:] {
		if s, ok := suggestStructure(f); ok {
			return s, ok
		}
	}
	return "", false
}

// suggest returns the best-scoring candidate for word, if any clears
// the floor. Ties break alphabetically so suggestions are stable.
func suggest(word string, candidates []string) (string, bool) {
	query := []rune(strings.ToLower(strings.TrimSpace(word)))
	if len(query) < suggestMinLen {
		return "", false
	}

	var best string
	bestScore := 0
	for _, c := range candidates {
		// An exact keyword is not the misspelled part.
		if string(query) == c {
			return "", false
		}
		score := scoreCandidate(query, []rune(c))
		if score > bestScore || (score == bestScore && score > 0 && c < best) {
			best = c
			bestScore = score
		}
	}
	if bestScore < suggestFloor {
		return "", false
	}
	return best, true
}

// scoreCandidate scores a candidate against the query with a greedy
// left-to-right subsequence scan. Zero means no match. Consecutive
// runs, prefix matches, and short candidates score higher; gaps and
// late first matches score lower.
func scoreCandidate(query, text []rune) int {
	matches := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(text) && qi < len(query); i++ {
		if text[i] == query[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(query) {
		return 0
	}

	score := 100
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			score += 20
		}
	}
	if matches[0] == 0 {
		score += 25
	} else {
		score -= matches[0]
	}
	if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
		score -= gap * 2
	}
	if len(text) < 20 {
		score += 20 - len(text)
	}
	if len(text) >= len(query) {
		prefix := true
		for i, qr := range query {
			if text[i] != qr {
				prefix = false
				break
			}
		}
		if prefix {
			score += 50
		}
	}
	if score < 1 {
		score = 1
	}
	return score
}
