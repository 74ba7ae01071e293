package tridiff

import "fmt"

// PairStatistics holds token counts for one pairwise comparison.
type PairStatistics struct {
	OldTokens  int     // tokens in the left text
	NewTokens  int     // tokens in the right text
	Common     int     // tokens inside equal operations
	Deleted    int     // left tokens inside delete operations
	Inserted   int     // right tokens inside insert operations
	Replaced   int     // left tokens inside replace operations
	Similarity float64 // 0 (nothing shared) to 1 (identical)
}

// ComputeStatistics calculates statistics for an edit script. Similarity
// is twice the number of common tokens over the total number of tokens.
func ComputeStatistics(a, b []string, ops []EditOp) PairStatistics {
	st := PairStatistics{
		OldTokens: len(a),
		NewTokens: len(b),
	}

	for _, op := range ops {
		switch op.Tag {
		case TagEqual:
			st.Common += op.I2 - op.I1
		case TagDelete:
			st.Deleted += op.I2 - op.I1
		case TagInsert:
			st.Inserted += op.J2 - op.J1
		case TagReplace:
			st.Replaced += op.I2 - op.I1
		}
	}

	total := st.OldTokens + st.NewTokens
	if total == 0 {
		st.Similarity = 1.0
	} else {
		st.Similarity = 2.0 * float64(st.Common) / float64(total)
	}
	return st
}

// Identical reports whether the two sides had no differences.
func (s PairStatistics) Identical() bool {
	return s.Deleted == 0 && s.Inserted == 0 && s.Replaced == 0
}

// String summarizes the statistics in one line.
func (s PairStatistics) String() string {
	return fmt.Sprintf("%d common, %d replaced, %d deleted, %d inserted (%d%% similar)",
		s.Common, s.Replaced, s.Deleted, s.Inserted, percent(s.Similarity))
}

// percent converts a ratio to a whole percentage, rounding down.
func percent(ratio float64) int {
	return int(ratio * 100)
}
