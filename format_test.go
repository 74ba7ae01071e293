package tridiff

import (
	"slices"
	"strings"
	"testing"
)

func formatText(a, b string, mode Mode, opts FormatOptions) string {
	ta, tb := Tokenize(a, mode), Tokenize(b, mode)
	return FormatPair(ta, tb, Align(ta, tb, DefaultAlignOptions()), opts)
}

func TestFormatPair(t *testing.T) {
	markers := DefaultFormatOptions()

	tests := []struct {
		name     string
		a, b     string
		mode     Mode
		opts     FormatOptions
		expected string
	}{
		{
			name:     "identical",
			a:        "hello world",
			b:        "hello world",
			mode:     ModeWord,
			opts:     markers,
			expected: "hello world",
		},
		{
			name:     "replace is delete then insert",
			a:        "hello world",
			b:        "hello there",
			mode:     ModeWord,
			opts:     markers,
			expected: "hello [-world-]{+there+}",
		},
		{
			name:     "insert",
			a:        "abc",
			b:        "abcd",
			mode:     ModeChar,
			opts:     markers,
			expected: "abc{+d+}",
		},
		{
			name:     "delete",
			a:        "one two",
			b:        "one ",
			mode:     ModeWord,
			opts:     markers,
			expected: "one [-two-]",
		},
		{
			name:     "lines",
			a:        "a\nb\n",
			b:        "a\nc\n",
			mode:     ModeLine,
			opts:     markers,
			expected: "a\n[-b\n-]{+c\n+}",
		},
		{
			name: "custom markers",
			a:    "old",
			b:    "new",
			mode: ModeWord,
			opts: FormatOptions{
				StartDelete: "<del>",
				StopDelete:  "</del>",
				StartInsert: "<ins>",
				StopInsert:  "</ins>",
			},
			expected: "<del>old</del><ins>new</ins>",
		},
		{
			name: "color replaces markers",
			a:    "keep old",
			b:    "keep new",
			mode: ModeWord,
			opts: FormatOptions{
				StartDelete: "[-", StopDelete: "-]", StartInsert: "{+", StopInsert: "+}",
				UseColor:    true,
				DeleteColor: ANSIDeleteColor,
				InsertColor: ANSIInsertColor,
				ColorReset:  ANSIReset,
			},
			expected: "keep " + ANSIDeleteColor + "old" + ANSIReset + ANSIInsertColor + "new" + ANSIReset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatText(tt.a, tt.b, tt.mode, tt.opts)
			if result != tt.expected {
				t.Errorf("FormatPair(%q, %q) = %q, want %q", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestFormatPairSuppress(t *testing.T) {
	a, b := "keep old here", "keep new here"

	tests := []struct {
		name     string
		mutate   func(*FormatOptions)
		expected string
	}{
		{"no deleted", func(o *FormatOptions) { o.NoDeleted = true }, "keep {+new+} here"},
		{"no inserted", func(o *FormatOptions) { o.NoInserted = true }, "keep [-old-] here"},
		{"no common", func(o *FormatOptions) { o.NoCommon = true }, "[-old-]{+new+}"},
		{"only common", func(o *FormatOptions) { o.NoDeleted, o.NoInserted = true, true }, "keep  here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultFormatOptions()
			tt.mutate(&opts)
			if got := formatText(a, b, ModeWord, opts); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatSummary(t *testing.T) {
	if got := FormatSummary(nil, SummaryOptions{}); got != "No multi-way line-level differences detected.\n" {
		t.Errorf("FormatSummary(nil) = %q", got)
	}

	out := FormatSummary(Summarize("line1\nline2", "line1\nX", "line1\nY", SummaryOptions{}), SummaryOptions{})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header and one row:\n%s", len(lines), out)
	}
	for _, want := range []string{"#", "Text A", "Text B", "Text C", "Diff Type"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("header missing %q: %q", want, lines[0])
		}
	}
	for _, want := range []string{"2", `"line2"`, `"X"`, `"Y"`, BadgeAllDiffer} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row missing %q: %q", want, lines[1])
		}
	}
}

func TestFormatSummaryMissing(t *testing.T) {
	opts := SummaryOptions{DistinguishMissing: true}
	out := FormatSummary(Summarize("a\nb", "a", "a\nb", opts), opts)
	if !strings.Contains(out, "(missing)") {
		t.Errorf("missing marker not shown:\n%s", out)
	}

	out = FormatSummary(Summarize("a\nb", "a", "a\nb", SummaryOptions{}), SummaryOptions{})
	if strings.Contains(out, "(missing)") || !strings.Contains(out, `""`) {
		t.Errorf("absent line should show as empty:\n%s", out)
	}
}

func TestColorNames(t *testing.T) {
	names := ColorNames()
	if len(names) != 16 {
		t.Errorf("ColorNames() has %d names, want 16", len(names))
	}
	for _, name := range names {
		if _, err := ParseColor(name + ":" + name); err != nil {
			t.Errorf("ParseColor(%q) as foreground and background: %v", name, err)
		}
	}
	if !slices.Contains(names, "brightcyan") {
		t.Error("ColorNames() missing brightcyan")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    string
		wantErr bool
	}{
		{name: "empty string", spec: "", want: ""},
		{name: "foreground", spec: "red", want: "\033[31m"},
		{name: "foreground and background", spec: "red:white", want: "\033[31m\033[47m"},
		{name: "background only", spec: ":blue", want: "\033[44m"},
		{name: "case insensitive", spec: "RED", want: "\033[31m"},
		{name: "whitespace", spec: "  brightred  ", want: "\033[91m"},
		{name: "bright background", spec: "black:brightwhite", want: "\033[30m\033[107m"},
		{name: "last base color", spec: "white:black", want: "\033[37m\033[40m"},
		{name: "bright alone is not a color", spec: "bright", wantErr: true},
		{name: "invalid color", spec: "notacolor", wantErr: true},
		{name: "invalid background", spec: "red:notacolor", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseColor(%q) expected error, got nil", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) unexpected error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseColorSpec(t *testing.T) {
	tests := []struct {
		name       string
		spec       string
		wantDelete string
		wantInsert string
		wantErr    bool
	}{
		{name: "delete only keeps default insert", spec: "red", wantDelete: "\033[31m", wantInsert: ANSIInsertColor},
		{name: "both colors", spec: "red,green", wantDelete: "\033[31m", wantInsert: "\033[32m"},
		{name: "with backgrounds", spec: "red:white,green:black", wantDelete: "\033[31m\033[47m", wantInsert: "\033[32m\033[40m"},
		{name: "invalid delete color", spec: "notacolor,green", wantErr: true},
		{name: "invalid insert color", spec: "red,notacolor", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			del, ins, err := ParseColorSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseColorSpec(%q) expected error, got nil", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColorSpec(%q) unexpected error: %v", tt.spec, err)
			}
			if del != tt.wantDelete || ins != tt.wantInsert {
				t.Errorf("ParseColorSpec(%q) = %q, %q; want %q, %q", tt.spec, del, ins, tt.wantDelete, tt.wantInsert)
			}
		})
	}
}
