package tridiff

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"
)

// FormatOptions configures terminal output of a pair.
type FormatOptions struct {
	// StartDelete is the string to mark the beginning of deleted text.
	// Default: "[-"
	StartDelete string

	// StopDelete is the string to mark the end of deleted text.
	// Default: "-]"
	StopDelete string

	// StartInsert is the string to mark the beginning of inserted text.
	// Default: "{+"
	StartInsert string

	// StopInsert is the string to mark the end of inserted text.
	// Default: "+}"
	StopInsert string

	// NoDeleted, when true, suppresses deleted text from output.
	NoDeleted bool

	// NoInserted, when true, suppresses inserted text from output.
	NoInserted bool

	// NoCommon, when true, suppresses unchanged text from output.
	NoCommon bool

	// UseColor enables ANSI color output. When true, DeleteColor and
	// InsertColor are used instead of text markers.
	UseColor bool

	// DeleteColor is the ANSI escape sequence for deleted text color.
	DeleteColor string

	// InsertColor is the ANSI escape sequence for inserted text color.
	InsertColor string

	// ColorReset is the ANSI escape sequence to reset colors.
	// Default: "\033[0m"
	ColorReset string
}

// ANSI escape code constants
const (
	ANSIReset       = "\033[0m"
	ANSIDeleteColor = "\033[0;31;1m" // bold red
	ANSIInsertColor = "\033[0;32;1m" // bold green
)

// colorNames lists the eight base terminal colors in SGR order.
var colorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// ColorNames returns every accepted color name: the base colors followed
// by their "bright" variants.
func ColorNames() []string {
	names := slices.Clone(colorNames)
	for _, name := range colorNames {
		names = append(names, "bright"+name)
	}
	return names
}

// sgrColor returns the SGR escape for a color name, as a background color
// when background is set.
func sgrColor(name string, background bool) (string, bool) {
	code := 30
	if background {
		code = 40
	}
	if base, ok := strings.CutPrefix(name, "bright"); ok {
		name = base
		code += 60
	}
	i := slices.Index(colorNames, name)
	if i < 0 {
		return "", false
	}
	return fmt.Sprintf("\033[%dm", code+i), true
}

// ParseColor converts "fg", "fg:bg" or ":bg" into an ANSI escape
// sequence. Names are case-insensitive; an empty spec means no color.
func ParseColor(spec string) (string, error) {
	fg, bg, _ := strings.Cut(spec, ":")
	fg = strings.ToLower(strings.TrimSpace(fg))
	bg = strings.ToLower(strings.TrimSpace(bg))

	var seq string
	if fg != "" {
		code, ok := sgrColor(fg, false)
		if !ok {
			return "", fmt.Errorf("unknown color: %s", fg)
		}
		seq = code
	}
	if bg != "" {
		code, ok := sgrColor(bg, true)
		if !ok {
			return "", fmt.Errorf("unknown background color: %s", bg)
		}
		seq += code
	}
	return seq, nil
}

// ParseColorSpec parses "delete_color,insert_color" where each color is
// "fg" or "fg:bg" (e.g. "red,green" or "red:white,green:black"). When only
// one color is given, insertions keep the default bold green.
func ParseColorSpec(spec string) (deleteColor, insertColor string, err error) {
	del, ins, hasIns := strings.Cut(spec, ",")

	deleteColor, err = ParseColor(del)
	if err != nil {
		return "", "", fmt.Errorf("delete color: %w", err)
	}

	insertColor = ANSIInsertColor
	if hasIns {
		insertColor, err = ParseColor(ins)
		if err != nil {
			return "", "", fmt.Errorf("insert color: %w", err)
		}
	}

	return deleteColor, insertColor, nil
}

// DefaultFormatOptions returns FormatOptions with default settings.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		StartDelete: "[-",
		StopDelete:  "-]",
		StartInsert: "{+",
		StopInsert:  "+}",
		ColorReset:  ANSIReset,
		DeleteColor: ANSIDeleteColor,
		InsertColor: ANSIInsertColor,
	}
}

// FormatPair renders an edit script for a terminal. Deleted text is
// wrapped in the delete markers (or color), inserted text in the insert
// markers, and a replacement is shown as a deletion followed by an
// insertion.
func FormatPair(a, b []string, ops []EditOp, opts FormatOptions) string {
	var sb strings.Builder
	for _, op := range ops {
		aChunk := strings.Join(a[op.I1:op.I2], "")
		bChunk := strings.Join(b[op.J1:op.J2], "")

		switch op.Tag {
		case TagEqual:
			if !opts.NoCommon {
				sb.WriteString(bChunk)
			}
		case TagDelete:
			writeDeleted(&sb, aChunk, opts)
		case TagInsert:
			writeInserted(&sb, bChunk, opts)
		case TagReplace:
			writeDeleted(&sb, aChunk, opts)
			writeInserted(&sb, bChunk, opts)
		}
	}
	return sb.String()
}

func writeDeleted(sb *strings.Builder, text string, opts FormatOptions) {
	if opts.NoDeleted {
		return
	}
	if opts.UseColor {
		sb.WriteString(opts.DeleteColor + text + opts.ColorReset)
		return
	}
	sb.WriteString(opts.StartDelete + text + opts.StopDelete)
}

func writeInserted(sb *strings.Builder, text string, opts FormatOptions) {
	if opts.NoInserted {
		return
	}
	if opts.UseColor {
		sb.WriteString(opts.InsertColor + text + opts.ColorReset)
		return
	}
	sb.WriteString(opts.StartInsert + text + opts.StopInsert)
}

// FormatSummary renders tri-summary rows as an aligned plain-text table.
func FormatSummary(rows []LineRow, opts SummaryOptions) string {
	if len(rows) == 0 {
		return "No multi-way line-level differences detected.\n"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tText A\tText B\tText C\tDiff Type")
	for _, r := range rows {
		cells := make([]string, 3)
		for k, line := range r.Lines {
			cells[k] = fmt.Sprintf("%q", line)
			if opts.DistinguishMissing && !r.Present[k] {
				cells[k] = "(missing)"
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Number, cells[0], cells[1], cells[2], r.Badge())
	}
	_ = tw.Flush()
	return sb.String()
}
