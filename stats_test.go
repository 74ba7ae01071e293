package tridiff

import (
	"math"
	"testing"
)

func TestComputeStatistics(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		mode Mode
		want PairStatistics
	}{
		{
			name: "identical",
			a:    "hello world",
			b:    "hello world",
			mode: ModeWord,
			want: PairStatistics{OldTokens: 3, NewTokens: 3, Common: 3, Similarity: 1},
		},
		{
			name: "both empty",
			mode: ModeWord,
			want: PairStatistics{Similarity: 1},
		},
		{
			name: "appended char",
			a:    "abc",
			b:    "abcd",
			mode: ModeChar,
			want: PairStatistics{OldTokens: 3, NewTokens: 4, Common: 3, Inserted: 1, Similarity: 6.0 / 7.0},
		},
		{
			name: "full replace",
			a:    "foo",
			b:    "bar",
			mode: ModeChar,
			want: PairStatistics{OldTokens: 3, NewTokens: 3, Replaced: 3},
		},
		{
			name: "deleted word",
			a:    "one two",
			b:    "one ",
			mode: ModeWord,
			want: PairStatistics{OldTokens: 3, NewTokens: 2, Common: 2, Deleted: 1, Similarity: 4.0 / 5.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := Tokenize(tt.a, tt.mode), Tokenize(tt.b, tt.mode)
			got := ComputeStatistics(a, b, Align(a, b, DefaultAlignOptions()))

			if math.Abs(got.Similarity-tt.want.Similarity) > 1e-9 {
				t.Errorf("Similarity = %v, want %v", got.Similarity, tt.want.Similarity)
			}
			got.Similarity, tt.want.Similarity = 0, 0
			if got != tt.want {
				t.Errorf("ComputeStatistics() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPairStatisticsIdentical(t *testing.T) {
	if !(PairStatistics{Common: 5, Similarity: 1}).Identical() {
		t.Error("Identical() = false for unchanged pair")
	}
	for _, st := range []PairStatistics{{Deleted: 1}, {Inserted: 1}, {Replaced: 1}} {
		if st.Identical() {
			t.Errorf("Identical() = true for %+v", st)
		}
	}
}

func TestPairStatisticsString(t *testing.T) {
	st := PairStatistics{Common: 3, Replaced: 1, Deleted: 2, Inserted: 4, Similarity: 0.666}
	want := "3 common, 1 replaced, 2 deleted, 4 inserted (66% similar)"
	if got := st.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		ratio float64
		want  int
	}{
		{0, 0},
		{0.5, 50},
		{0.999, 99},
		{1, 100},
	}
	for _, tt := range tests {
		if got := percent(tt.ratio); got != tt.want {
			t.Errorf("percent(%v) = %d, want %d", tt.ratio, got, tt.want)
		}
	}
}
