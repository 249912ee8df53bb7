package lang

import "errors"

var (
	// ErrParse indicates text that does not match its family grammar.
	ErrParse = errors.New("parse error")

	// ErrClassify indicates text that matches no known command family.
	ErrClassify = errors.New("classification error")

	// ErrNormalize indicates a command whose arguments are incomplete
	// or contradictory.
	ErrNormalize = errors.New("normalization error")
)
