// Package report extracts temperature time-bin tables from EnergyPlus
// tabular HTML reports (eplustbl.htm).
//
// A report lists sections as
//
//	<p>Report:<b> Time Bin Results</b></p>
//	<p>For:<b> ZONE 1: Zone Mean Air Temperature</b></p>
//	<table> ... </table>
//
// Time-bin tables start with one or more header rows ("Interval Start",
// "Interval End") naming the temperature band of every column, followed by
// one row per period (months, "Total"). The extractor groups values by band;
// every row of a group is [subject, period, hours].
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"

	"github.com/dbtoolbox/dbtoolbox/internal/logging"
	"github.com/dbtoolbox/dbtoolbox/internal/resulttree"
)

// ErrNoTimeBins is returned when a report contains no time-bin tables.
var ErrNoTimeBins = errors.New("report contains no Time Bin Results tables")

// Extensions are the report file suffixes offered by the file picker.
var Extensions = []string{".htm", ".html"}

const (
	timeBinReport = "time bin results"
	summaryPeriod = "total"
)

// ParseError describes a time-bin table that could not be read.
type ParseError struct {
	Subject string
	Table   int // 1-based index among time-bin tables
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("time bin table %d (%s): %s", e.Table, e.Subject, e.Reason)
	}
	return fmt.Sprintf("time bin table %d: %s", e.Table, e.Reason)
}

// Kind labels the error for notifications.
func (e *ParseError) Kind() string { return "ParseError" }

// Extractor reads time-bin tables from a report file.
type Extractor struct {
	// SummaryOnly keeps only the summary ("Total") row of every table.
	SummaryOnly bool

	logger *logging.Logger
}

// NewExtractor creates an extractor.
func NewExtractor(summaryOnly bool, logger *logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Extractor{SummaryOnly: summaryOnly, logger: logger.Component("report")}
}

// Extract opens path and parses it.
func (e *Extractor) Extract(ctx context.Context, path string) (*resulttree.GroupedTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	data, err := e.ExtractFrom(f)
	if err != nil {
		return nil, err
	}
	e.logger.Info().
		Str("path", path).
		Int("groups", data.Len()).
		Bool("summary_only", e.SummaryOnly).
		Msg("extracted time bins")
	return data, nil
}

// ExtractFrom parses an HTML report read from r. The character set is taken
// from the document's meta tags, defaulting to windows-1252 like EnergyPlus.
func (e *Extractor) ExtractFrom(r io.Reader) (*resulttree.GroupedTable, error) {
	decoded, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("failed to detect report encoding: %w", err)
	}
	doc, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	w := &walker{extractor: e, out: resulttree.NewGroupedTable()}
	if err := w.walk(doc); err != nil {
		return nil, err
	}
	if w.tables == 0 {
		return nil, ErrNoTimeBins
	}
	return w.out, nil
}

type walker struct {
	extractor *Extractor
	report    string
	subject   string
	tables    int
	out       *resulttree.GroupedTable
}

func (w *walker) walk(n *html.Node) error {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.P:
			w.section(textOf(n))
		case atom.Table:
			if strings.EqualFold(w.report, timeBinReport) {
				w.tables++
				return w.table(n)
			}
			return nil
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := w.walk(c); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) section(text string) {
	switch {
	case strings.HasPrefix(text, "Report:"):
		w.report = strings.TrimSpace(strings.TrimPrefix(text, "Report:"))
		w.subject = ""
	case strings.HasPrefix(text, "For:"):
		w.subject = strings.TrimSpace(strings.TrimPrefix(text, "For:"))
	}
}

func (w *walker) table(n *html.Node) error {
	rows := tableRows(n)

	var header [][]string
	body := rows
	for len(body) > 0 && isHeaderRow(body[0]) {
		header = append(header, body[0])
		body = body[1:]
	}
	if len(header) == 0 {
		return &ParseError{Subject: w.subject, Table: w.tables, Reason: "missing interval header"}
	}

	bands := bandLabels(header)
	if len(bands) == 0 {
		return &ParseError{Subject: w.subject, Table: w.tables, Reason: "no temperature bands"}
	}

	for _, band := range bands {
		w.out.AddGroup(band.label)
	}

	for _, row := range body {
		if len(row) == 0 {
			continue
		}
		period := row[0]
		if w.extractor.SummaryOnly && !strings.EqualFold(period, summaryPeriod) {
			continue
		}
		for _, band := range bands {
			var cell any
			if band.col < len(row) {
				cell = scalar(row[band.col])
			}
			w.out.Append(band.label, w.subject, period, cell)
		}
	}
	return nil
}

type band struct {
	col   int
	label string
}

// bandLabels names every value column by joining its header cells, e.g.
// "70 - 75" for an Interval Start of 70 and an Interval End of 75.
func bandLabels(header [][]string) []band {
	width := 0
	for _, row := range header {
		if len(row) > width {
			width = len(row)
		}
	}

	var bands []band
	for col := 1; col < width; col++ {
		var parts []string
		for _, row := range header {
			if col < len(row) && row[col] != "" {
				parts = append(parts, row[col])
			}
		}
		if len(parts) == 0 {
			continue
		}
		bands = append(bands, band{col: col, label: strings.Join(parts, " - ")})
	}
	return bands
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(row[0])
	return first == "" || strings.HasPrefix(first, "interval")
}

func tableRows(table *html.Node) [][]string {
	var rows [][]string
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
					cells = append(cells, textOf(c))
				}
			}
			rows = append(rows, cells)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(table)
	return rows
}

// textOf returns the whitespace-collapsed text content of n.
func textOf(n *html.Node) string {
	var b strings.Builder
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// scalar converts numeric cells to float64 and keeps everything else as
// text.
func scalar(s string) any {
	if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return v
	}
	return s
}
