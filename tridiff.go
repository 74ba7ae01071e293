// Package tridiff compares three texts pairwise and as a trio and renders
// the result as a self-contained HTML report.
//
// Each pair of texts (A-B, A-C, B-C) is tokenized at line, word or
// character granularity, aligned into an edit script, and rendered as
// colored spans:
//
//	A: the quick brown fox
//	B: the quick red fox
//
// renders "the quick " as unchanged text, "red" as a replacement whose
// tooltip shows "A: brown → B: red", and " fox" as unchanged text. A
// line-level tri-summary then lists every line where the three texts do
// not all agree, marking whether one text differs or all three do.
//
// Alignment uses github.com/pmezard/go-difflib by default, with
// github.com/dacharyc/diffx available as an alternative.
package tridiff

import "errors"

var (
	// ErrEmptyInput is returned by Assemble when all three texts are empty.
	ErrEmptyInput = errors.New("please enter at least one non-empty text")

	// ErrUnknownMode is wrapped by ParseMode for unrecognized names.
	ErrUnknownMode = errors.New("unknown diff mode")

	// ErrUnknownAlgorithm is wrapped by ParseAlgorithm for unrecognized names.
	ErrUnknownAlgorithm = errors.New("unknown diff algorithm")
)

// Tag identifies the kind of an edit operation.
type Tag int

const (
	// TagEqual indicates the ranges are identical.
	TagEqual Tag = iota
	// TagInsert indicates tokens were added to B.
	TagInsert
	// TagDelete indicates tokens were removed from A.
	TagDelete
	// TagReplace indicates tokens of A were replaced by tokens of B.
	TagReplace
)

// String returns a human-readable representation of the tag.
func (t Tag) String() string {
	switch t {
	case TagEqual:
		return "equal"
	case TagInsert:
		return "insert"
	case TagDelete:
		return "delete"
	case TagReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// EditOp is one operation of an edit script. A[I1:I2] maps onto B[J1:J2].
//
// A complete script covers both sequences in order: the first op starts
// at (0, 0), every op starts where the previous one ended, and the last
// op ends at (len(A), len(B)).
type EditOp struct {
	Tag Tag
	I1  int
	I2  int
	J1  int
	J2  int
}

// HasChanges returns true if the script contains any non-equal operation.
func HasChanges(ops []EditOp) bool {
	for _, op := range ops {
		if op.Tag != TagEqual {
			return true
		}
	}
	return false
}
