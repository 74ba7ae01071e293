package web

import (
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zeebo/blake3"

	"github.com/dacharyc/tridiff"
	"github.com/dacharyc/tridiff/internal/logging"
)

// diffRequest is the form or JSON body of a comparison.
type diffRequest struct {
	A    string `form:"a" json:"a"`
	B    string `form:"b" json:"b"`
	C    string `form:"c" json:"c"`
	Mode string `form:"mode" json:"mode"`
}

// pageData feeds index.html.tmpl.
type pageData struct {
	A, B, C string
	Mode    string
	Modes   []string
	Warning string
	Error   string
	Body    template.HTML
}

type pairResponse struct {
	Left       string  `json:"left"`
	Right      string  `json:"right"`
	Changed    bool    `json:"changed"`
	Common     int     `json:"common"`
	Replaced   int     `json:"replaced"`
	Deleted    int     `json:"deleted"`
	Inserted   int     `json:"inserted"`
	Similarity float64 `json:"similarity"`
}

type rowResponse struct {
	Line  int       `json:"line"`
	Lines [3]string `json:"lines"`
	Badge string    `json:"badge"`
}

type diffResponse struct {
	Mode    string         `json:"mode"`
	HTML    string         `json:"html"`
	Pairs   []pairResponse `json:"pairs"`
	Summary []rowResponse  `json:"summary"`
}

const (
	emptyWarning = "Please enter at least one non-empty text."
	failedReport = "The report could not be generated."
)

func modeNames() []string {
	var names []string
	for _, m := range tridiff.Modes() {
		names = append(names, m.String())
	}
	return names
}

func (s *Server) page(req diffRequest) pageData {
	mode := s.defaultMode.String()
	if m, err := tridiff.ParseMode(req.Mode); err == nil {
		mode = m.String()
	}
	return pageData{A: req.A, B: req.B, C: req.C, Mode: mode, Modes: modeNames()}
}

// input validates req and converts it into report input.
func (s *Server) input(req diffRequest) (tridiff.Input, error) {
	in := tridiff.Input{A: req.A, B: req.B, C: req.C, Mode: s.defaultMode}
	if req.Mode != "" {
		mode, err := tridiff.ParseMode(req.Mode)
		if err != nil {
			return in, err
		}
		in.Mode = mode
	}
	return in, nil
}

func (s *Server) assemble(c *gin.Context, in tridiff.Input) (*tridiff.Report, error) {
	report, err := s.build(in, s.opts)
	if err != nil {
		return nil, err
	}
	logging.FromContext(c.Request.Context(), s.logger).Debug("report built",
		"mode", in.Mode.String(),
		"bytes_a", len(in.A), "bytes_b", len(in.B), "bytes_c", len(in.C),
		"summary_rows", len(report.Rows))
	return report, nil
}

// bindStatus maps a binding error onto an HTTP status.
func bindStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html.tmpl", s.page(diffRequest{}))
}

func (s *Server) handleDiff(c *gin.Context) {
	var req diffRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(err)
		data := s.page(req)
		data.Error = "Could not read the submitted form."
		c.HTML(bindStatus(err), "index.html.tmpl", data)
		return
	}

	data := s.page(req)
	in, err := s.input(req)
	if err != nil {
		_ = c.Error(err)
		data.Error = err.Error()
		c.HTML(http.StatusBadRequest, "index.html.tmpl", data)
		return
	}

	report, err := s.assemble(c, in)
	if errors.Is(err, tridiff.ErrEmptyInput) {
		data.Warning = emptyWarning
		c.HTML(http.StatusOK, "index.html.tmpl", data)
		return
	}
	if err == nil {
		data.Body, err = report.Body()
	}
	if err != nil {
		_ = c.Error(err)
		data.Error = failedReport
		c.HTML(http.StatusInternalServerError, "index.html.tmpl", data)
		return
	}
	c.HTML(http.StatusOK, "index.html.tmpl", data)
}

func (s *Server) handleDownload(c *gin.Context) {
	var req diffRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(err)
		c.String(bindStatus(err), "could not read the submitted form")
		return
	}
	in, err := s.input(req)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	report, err := s.assemble(c, in)
	if errors.Is(err, tridiff.ErrEmptyInput) {
		c.String(http.StatusUnprocessableEntity, emptyWarning)
		return
	}
	var html string
	if err == nil {
		html, err = report.HTML()
	}
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, failedReport)
		return
	}

	doc := []byte(html)
	sum := blake3.Sum256(doc)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tridiff.ReportFileName))
	c.Header("ETag", `"`+hex.EncodeToString(sum[:])+`"`)
	c.Data(http.StatusOK, tridiff.ReportContentType+"; charset=utf-8", doc)
}

func (s *Server) handleAPIDiff(c *gin.Context) {
	var req diffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.JSON(bindStatus(err), gin.H{"error": "invalid request body"})
		return
	}
	in, err := s.input(req)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report, err := s.assemble(c, in)
	if errors.Is(err, tridiff.ErrEmptyInput) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"warning": emptyWarning})
		return
	}
	var resp diffResponse
	if err == nil {
		resp, err = newDiffResponse(report)
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failedReport})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func newDiffResponse(report *tridiff.Report) (diffResponse, error) {
	html, err := report.HTML()
	if err != nil {
		return diffResponse{}, err
	}
	resp := diffResponse{
		Mode:    report.Mode.String(),
		HTML:    html,
		Pairs:   make([]pairResponse, 0, len(report.Pairs)),
		Summary: make([]rowResponse, 0, len(report.Rows)),
	}
	for _, p := range report.Pairs {
		resp.Pairs = append(resp.Pairs, pairResponse{
			Left:       p.Left,
			Right:      p.Right,
			Changed:    !p.Stats.Identical(),
			Common:     p.Stats.Common,
			Replaced:   p.Stats.Replaced,
			Deleted:    p.Stats.Deleted,
			Inserted:   p.Stats.Inserted,
			Similarity: p.Stats.Similarity,
		})
	}
	for _, r := range report.Rows {
		resp.Summary = append(resp.Summary, rowResponse{Line: r.Number, Lines: r.Lines, Badge: r.Badge()})
	}
	return resp, nil
}
