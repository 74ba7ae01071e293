package tridiff

import (
	"embed"
	"html/template"
	"io"
	"strings"
)

// Report file metadata used by shells that offer the document for download.
const (
	ReportFileName    = "3_way_diff.html"
	ReportContentType = "text/html"
)

// DefaultTitle is the document title used when Options.Title is empty.
const DefaultTitle = "3‑Way Diff"

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// Input holds everything a user supplies for one comparison.
type Input struct {
	A, B, C string
	Mode    Mode
}

// Empty reports whether all three texts are empty.
func (in Input) Empty() bool {
	return in.A == "" && in.B == "" && in.C == ""
}

// Options configures report generation.
type Options struct {
	Align   AlignOptions
	Summary SummaryOptions
	// Title is the document title. If empty, DefaultTitle is used.
	Title string
}

// DefaultOptions returns Options with default settings.
func DefaultOptions() Options {
	return Options{
		Align: DefaultAlignOptions(),
		Title: DefaultTitle,
	}
}

// PairDiff is the comparison of two of the three texts.
type PairDiff struct {
	Left        string // label of the left text, e.g. "A"
	Right       string // label of the right text, e.g. "B"
	LeftTokens  []string
	RightTokens []string
	Ops         []EditOp
	Fragment    template.HTML
	Stats       PairStatistics
}

// DiffPair tokenizes, aligns and renders one pair of texts.
func DiffPair(left, leftText, right, rightText string, mode Mode, opts AlignOptions) PairDiff {
	a := Tokenize(leftText, mode)
	b := Tokenize(rightText, mode)
	ops := Align(a, b, opts)

	return PairDiff{
		Left:        left,
		Right:       right,
		LeftTokens:  a,
		RightTokens: b,
		Ops:         ops,
		Fragment:    template.HTML(RenderPair(a, b, ops)),
		Stats:       ComputeStatistics(a, b, ops),
	}
}

// Report is the outcome of comparing three texts.
type Report struct {
	Title   string
	Mode    Mode
	Pairs   []PairDiff // A vs B, A vs C, B vs C
	Rows    []LineRow
	Summary template.HTML
}

// Assemble compares the three texts of in and builds the report. It
// returns ErrEmptyInput when all three texts are empty.
func Assemble(in Input, opts Options) (*Report, error) {
	if in.Empty() {
		return nil, ErrEmptyInput
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	rows := Summarize(in.A, in.B, in.C, opts.Summary)
	return &Report{
		Title: title,
		Mode:  in.Mode,
		Pairs: []PairDiff{
			DiffPair("A", in.A, "B", in.B, in.Mode, opts.Align),
			DiffPair("A", in.A, "C", in.C, in.Mode, opts.Align),
			DiffPair("B", in.B, "C", in.C, in.Mode, opts.Align),
		},
		Rows:    rows,
		Summary: template.HTML(RenderSummary(rows, opts.Summary)),
	}, nil
}

// HasChanges reports whether any pair differs.
func (r *Report) HasChanges() bool {
	for _, p := range r.Pairs {
		if HasChanges(p.Ops) {
			return true
		}
	}
	return false
}

// WriteTo writes the complete HTML document to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := reportTemplate.ExecuteTemplate(cw, "report", r)
	return cw.n, err
}

// HTML returns the complete, self-contained HTML document.
func (r *Report) HTML() (string, error) {
	var sb strings.Builder
	if _, err := r.WriteTo(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Body returns the report sections without the surrounding document, for
// embedding in another page.
func (r *Report) Body() (template.HTML, error) {
	var sb strings.Builder
	if err := reportTemplate.ExecuteTemplate(&sb, "body", r); err != nil {
		return "", err
	}
	return template.HTML(sb.String()), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
