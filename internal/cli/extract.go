package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dbtoolbox/dbtoolbox/internal/config"
	"github.com/dbtoolbox/dbtoolbox/internal/export"
	"github.com/dbtoolbox/dbtoolbox/internal/guard"
	"github.com/dbtoolbox/dbtoolbox/internal/notify"
	"github.com/dbtoolbox/dbtoolbox/internal/progress"
	"github.com/dbtoolbox/dbtoolbox/internal/resulttree"
	"github.com/dbtoolbox/dbtoolbox/internal/tool"
	ustr "github.com/dbtoolbox/dbtoolbox/internal/util/strings"
)

func newExtractCmd() *cobra.Command {
	var doExport bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract temperature distribution time bins from a report",
		Long: `Run the temperature distribution tool without the GUI.

The report is parsed, the result printed as a table on stdout and, with
--export, written as CSV into the output directory. Failures are printed
on stderr and end the command with a non-zero exit status.

Examples:
  dbtoolbox extract --report ./run/eplustbl.htm --summary
  dbtoolbox extract --export --output-dir ./results`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			spinner := progress.NewStderrSpinner("Extracting")
			return runExtract(GetContext(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, spinner, doExport)
		},
	}

	cmd.Flags().BoolVar(&doExport, "export", false, "Write the result as CSV into the output directory")

	return cmd
}

// runExtract drives a temperature panel headlessly. Failures are reported
// through the terminal notifier and returned as an error naming their kind.
func runExtract(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config, indicator guard.Indicator, doExport bool) error {
	log := GetLogger()

	notifiers := guard.MultiNotifier{terminalNotifier{w: stderr}}
	if cfg.Notify {
		notifiers = append(notifiers, notify.NewNotifier(true, log))
	}

	panel := tool.NewTemperaturePanel(cfg, tool.Frontend{
		Indicator: indicator,
		Notifier:  notifiers,
		Logger:    log,
	})

	state := panel.Trigger(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	if state == tool.StateIdleWithError {
		return fmt.Errorf("extraction failed (%s)", panel.LastOutcome().Kind)
	}

	renderForest(stdout, panel.Model().Forest())

	if doExport {
		if outcome := panel.Export(ctx); outcome.Failed() {
			return fmt.Errorf("export failed (%s)", outcome.Kind)
		}
	}
	return nil
}

// renderForest prints the forest as a table, one line per row. The group
// label is printed on the first row of its group only.
func renderForest(w io.Writer, f resulttree.Forest) {
	if f.Len() == 0 {
		_, _ = fmt.Fprintf(w, "(%s)\n", ustr.Count(0, "group"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, 0, f.Columns+1)
	for _, h := range export.Header(f.Columns) {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for i, g := range f.Groups {
		if i > 0 {
			t.AppendSeparator()
		}
		if len(g.Children) == 0 {
			t.AppendRow(tableRow(g.Label, nil, f.Columns))
			continue
		}
		label := g.Label
		for _, r := range g.Children {
			t.AppendRow(tableRow(label, r.Cells, f.Columns))
			label = ""
		}
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%s, %s)\n", ustr.Count(f.Len(), "group"), ustr.Count(f.RowCount(), "row"))
}

func tableRow(label string, cells []string, columns int) table.Row {
	row := make(table.Row, 0, columns+1)
	row = append(row, label)
	for i := 0; i < columns; i++ {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		row = append(row, cell)
	}
	return row
}

// terminalNotifier prints notifications as single lines.
type terminalNotifier struct {
	w io.Writer
}

func (n terminalNotifier) Notify(note guard.Notification) {
	_, _ = fmt.Fprintf(n.w, "[%s] %s: %s\n", strings.ToUpper(note.Severity.String()), note.Title, note.Message)
}
