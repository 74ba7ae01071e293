package tridiff

import (
	"fmt"
	"html"
	"strings"
)

// Badges shown in the tri-summary.
const (
	BadgeOneDiffers = "one differs"
	BadgeAllDiffer  = "all differ"
)

// NoDifferencesNotice replaces the tri-summary table when every line matches.
const NoDifferencesNotice = "<p><strong>No multi-way line-level differences detected.</strong></p>"

var badgeStyles = map[string]string{
	BadgeOneDiffers: "background:#4dabf7;color:#fff;padding:2px 6px;border-radius:6px;font-size:0.8em;",
	BadgeAllDiffer:  "background:#f03e3e;color:#fff;padding:2px 6px;border-radius:6px;font-size:0.8em;",
}

// SummaryOptions configures the tri-summary.
type SummaryOptions struct {
	// DistinguishMissing, when true, treats a line beyond the end of a
	// shorter text as different from a blank line and marks it as missing.
	// When false, a missing line compares equal to an empty one.
	DistinguishMissing bool
}

// LineRow is one line of the tri-summary where the texts do not all agree.
type LineRow struct {
	Number   int       // 1-based line number
	Lines    [3]string // the line in A, B and C ("" when absent)
	Present  [3]bool   // whether each text has this line at all
	Distinct int       // number of distinct values among Lines
}

// Badge returns the label for the row's distinct count.
func (r LineRow) Badge() string {
	if r.Distinct >= 3 {
		return BadgeAllDiffer
	}
	return BadgeOneDiffers
}

// lineKey identifies a line value for distinct counting.
type lineKey struct {
	missing bool
	text    string
}

// Summarize compares a, b and c line by line and returns the rows where
// the three texts do not all agree. Lines are always compared whole,
// whatever granularity the pairwise diffs use.
func Summarize(a, b, c string, opts SummaryOptions) []LineRow {
	texts := [3][]string{SplitLines(a), SplitLines(b), SplitLines(c)}
	n := max(len(texts[0]), len(texts[1]), len(texts[2]))

	var rows []LineRow
	for i := 0; i < n; i++ {
		row := LineRow{Number: i + 1}
		seen := make(map[lineKey]struct{}, 3)
		for k, lines := range texts {
			if i < len(lines) {
				row.Lines[k] = lines[i]
				row.Present[k] = true
			}
			key := lineKey{text: row.Lines[k]}
			if opts.DistinguishMissing && !row.Present[k] {
				key = lineKey{missing: true}
			}
			seen[key] = struct{}{}
		}
		row.Distinct = len(seen)
		if row.Distinct > 1 {
			rows = append(rows, row)
		}
	}
	return rows
}

// RenderSummary renders tri-summary rows as an HTML table, or the
// no-differences notice when there are none.
func RenderSummary(rows []LineRow, opts SummaryOptions) string {
	if len(rows) == 0 {
		return NoDifferencesNotice
	}

	var sb strings.Builder
	sb.WriteString(`<table class="tri-summary" style="width:100%; border-collapse: collapse; table-layout: fixed;">
  <thead>
    <tr style="text-align:left; border-bottom:1px solid #ccc;">
      <th style="width:50px;">#</th>
      <th>Text A</th>
      <th>Text B</th>
      <th>Text C</th>
      <th style="width:120px;">Diff Type</th>
    </tr>
  </thead>
  <tbody>
`)
	for _, r := range rows {
		fmt.Fprintf(&sb, "<tr>\n  <td style=\"color:#999;\">%d</td>\n", r.Number)
		for k, line := range r.Lines {
			sb.WriteString(`  <td><pre style="white-space: pre-wrap; margin:0;">`)
			if opts.DistinguishMissing && !r.Present[k] {
				fmt.Fprintf(&sb, `<span class="%s" style="%s">(missing)</span>`, classMissing, spanStyles[classMissing])
			} else {
				sb.WriteString(html.EscapeString(line))
			}
			sb.WriteString("</pre></td>\n")
		}
		badge := r.Badge()
		fmt.Fprintf(&sb, "  <td><span class=\"badge\" style=\"%s\">%s</span></td>\n</tr>\n", badgeStyles[badge], badge)
	}
	sb.WriteString("  </tbody>\n</table>\n")
	return sb.String()
}
