package tridiff

import (
	"fmt"
	"strings"

	"github.com/dacharyc/diffx"
	"github.com/pmezard/go-difflib/difflib"
)

// Algorithm selects the alignment strategy.
type Algorithm int

const (
	// AlgorithmMatcher finds the longest contiguous matching blocks and
	// recurses on either side of them (Ratcliff/Obershelp). It tends to
	// produce matches that "look right" to people.
	AlgorithmMatcher Algorithm = iota
	// AlgorithmHistogram uses histogram-style diffing, anchoring on
	// low-frequency tokens.
	AlgorithmHistogram
)

// String returns the name accepted by ParseAlgorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmMatcher:
		return "matcher"
	case AlgorithmHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// ParseAlgorithm converts "matcher" or "histogram" into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "matcher":
		return AlgorithmMatcher, nil
	case "histogram":
		return AlgorithmHistogram, nil
	default:
		return 0, fmt.Errorf("%w: %q (use matcher or histogram)", ErrUnknownAlgorithm, s)
	}
}

// AlignOptions configures the aligner.
type AlignOptions struct {
	// Algorithm is the alignment strategy. The zero value is AlgorithmMatcher.
	Algorithm Algorithm

	// AutoJunk enables the matcher's popularity heuristic: when B has at
	// least 200 tokens, tokens occurring in more than 1% of it are never
	// used to start a match. This speeds up large inputs but can hide
	// matches on frequently repeated lines, so it is off by default.
	// Ignored by AlgorithmHistogram.
	AutoJunk bool
}

// DefaultAlignOptions returns AlignOptions with default settings.
func DefaultAlignOptions() AlignOptions {
	return AlignOptions{Algorithm: AlgorithmMatcher}
}

// Align computes the edit script that turns a into b.
//
// Adjacent equal operations are always merged, delete and insert runs
// that meet between two equal operations are reported as one replace,
// and no operation is empty on both sides.
func Align(a, b []string, opts AlignOptions) []EditOp {
	if opts.Algorithm == AlgorithmHistogram {
		return alignHistogram(a, b)
	}
	return alignMatcher(a, b, opts.AutoJunk)
}

// alignMatcher translates go-difflib opcodes into EditOps.
func alignMatcher(a, b []string, autoJunk bool) []EditOp {
	m := difflib.NewMatcherWithJunk(a, b, autoJunk, nil)
	codes := m.GetOpCodes()

	ops := make([]EditOp, 0, len(codes))
	for _, c := range codes {
		op := EditOp{I1: c.I1, I2: c.I2, J1: c.J1, J2: c.J2}
		switch c.Tag {
		case 'e':
			op.Tag = TagEqual
		case 'i':
			op.Tag = TagInsert
		case 'd':
			op.Tag = TagDelete
		case 'r':
			op.Tag = TagReplace
		default:
			continue
		}
		ops = append(ops, op)
	}
	return ops
}

// alignHistogram runs the diffx histogram diff and normalizes its
// equal/insert/delete stream into the EditOp form.
func alignHistogram(a, b []string) []EditOp {
	return normalizeDiffxOps(diffx.DiffHistogram(a, b))
}

// normalizeDiffxOps folds a diffx op stream into merged EditOps. The
// stream only reports equal, insert and delete, possibly split into
// several adjacent pieces; everything between two equal runs is one
// change.
func normalizeDiffxOps(ops []diffx.DiffOp) []EditOp {
	var result []EditOp

	// [i, ai) and [j, bj) hold the pending change; ai and bj are the cursors.
	i, j, ai, bj := 0, 0, 0, 0

	flush := func() {
		switch {
		case ai > i && bj > j:
			result = append(result, EditOp{Tag: TagReplace, I1: i, I2: ai, J1: j, J2: bj})
		case ai > i:
			result = append(result, EditOp{Tag: TagDelete, I1: i, I2: ai, J1: j, J2: bj})
		case bj > j:
			result = append(result, EditOp{Tag: TagInsert, I1: i, I2: ai, J1: j, J2: bj})
		}
		i, j = ai, bj
	}

	for _, op := range ops {
		switch op.Type {
		case diffx.Equal:
			size := op.AEnd - op.AStart
			if size == 0 {
				continue
			}
			flush()
			if n := len(result); n > 0 && result[n-1].Tag == TagEqual {
				result[n-1].I2 += size
				result[n-1].J2 += size
			} else {
				result = append(result, EditOp{Tag: TagEqual, I1: ai, I2: ai + size, J1: bj, J2: bj + size})
			}
			ai += size
			bj += size
			i, j = ai, bj
		case diffx.Delete:
			ai += op.AEnd - op.AStart
		case diffx.Insert:
			bj += op.BEnd - op.BStart
		}
	}
	flush()

	return result
}
