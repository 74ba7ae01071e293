package tridiff

import (
	"html"
	"strings"
)

// Span classes used in rendered pair fragments.
const (
	ClassSame    = "same"
	ClassChange  = "chg"
	ClassDelete  = "del"
	ClassInsert  = "add"
	classMissing = "missing"
)

// spanStyles holds the inline style of each span class so fragments stay
// readable when saved on their own.
var spanStyles = map[string]string{
	ClassInsert:  "background-color: #d4f8d4;",
	ClassDelete:  "background-color: #ffd6d6; text-decoration: line-through;",
	ClassChange:  "background-color: #fff3bf;",
	ClassSame:    "color: #888;",
	classMissing: "color: #bbb; font-style: italic;",
}

// RenderPair renders an edit script between a and b as HTML spans.
//
// Unchanged, replaced and inserted text is shown as it appears in b;
// deleted text is shown as it appears in a and struck through. Changed
// spans carry a title describing the change.
func RenderPair(a, b []string, ops []EditOp) string {
	var sb strings.Builder
	for _, op := range ops {
		aChunk := strings.Join(a[op.I1:op.I2], "")
		bChunk := strings.Join(b[op.J1:op.J2], "")

		switch op.Tag {
		case TagEqual:
			writeSpan(&sb, ClassSame, bChunk, "")
		case TagReplace:
			writeSpan(&sb, ClassChange, bChunk, "A: "+aChunk+" → B: "+bChunk)
		case TagDelete:
			writeSpan(&sb, ClassDelete, aChunk, "Deleted from A: "+aChunk)
		case TagInsert:
			writeSpan(&sb, ClassInsert, bChunk, "Inserted in B: "+bChunk)
		}
	}
	return sb.String()
}

// writeSpan escapes text and title, then wraps them in a styled span.
func writeSpan(sb *strings.Builder, class, text, title string) {
	sb.WriteString(`<span class="`)
	sb.WriteString(class)
	sb.WriteString(`" style="`)
	sb.WriteString(spanStyles[class])
	sb.WriteString(`"`)
	if title != "" {
		sb.WriteString(` title="`)
		sb.WriteString(html.EscapeString(title))
		sb.WriteString(`"`)
	}
	sb.WriteString(`>`)
	sb.WriteString(html.EscapeString(text))
	sb.WriteString(`</span>`)
}
