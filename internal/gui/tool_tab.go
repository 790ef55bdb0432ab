package gui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dbtoolbox/dbtoolbox/internal/logging"
	"github.com/dbtoolbox/dbtoolbox/internal/tool"
)

// ToolTab is the tab content of one tool panel: description, report and
// output selectors, the result tree and the action bar.
type ToolTab struct {
	ctx    context.Context
	panel  *tool.Panel
	status *StatusBar
	logger *logging.Logger

	report *PathSelector
	output *PathSelector
	tree   *ResultTree

	refreshBtn  *widget.Button
	exportBtn   *widget.Button
	exportAsBtn *widget.Button
	clearBtn    *widget.Button
}

// NewToolTab creates the tab. status must be the panel's busy indicator.
func NewToolTab(ctx context.Context, panel *tool.Panel, status *StatusBar, logger *logging.Logger) *ToolTab {
	if logger == nil {
		logger = logging.Nop()
	}
	t := &ToolTab{
		ctx:    ctx,
		panel:  panel,
		status: status,
		logger: logger.Component("tab"),
		report: NewPathSelector(panel.Report()),
		output: NewPathSelector(panel.Output()),
		tree:   NewResultTree(panel.Model()),
	}

	t.refreshBtn = NewPrimaryButtonWithIcon("", theme.ViewRefreshIcon(), t.Refresh)
	t.exportBtn = widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), t.Export)
	t.exportAsBtn = widget.NewButton("Export as...", t.ExportAs)
	t.clearBtn = widget.NewButtonWithIcon("", theme.ContentClearIcon(), panel.Clear)

	status.OnBusyChanged(t.setBusy)
	return t
}

// Refresh runs the tool in the background; the status bar spins until it
// returns. Taps while a run is in progress are ignored by the panel.
func (t *ToolTab) Refresh() {
	go t.panel.Trigger(t.ctx)
}

// Export writes the result into the output directory in the background.
func (t *ToolTab) Export() {
	go t.panel.Export(t.ctx)
}

// ExportAs asks for a destination file first.
func (t *ToolTab) ExportAs() {
	t.panel.ExportTo(t.ctx, nil)
}

func (t *ToolTab) setBusy(busy bool) {
	for _, btn := range []*widget.Button{t.refreshBtn, t.exportBtn, t.exportAsBtn, t.clearBtn} {
		if busy {
			btn.Disable()
		} else {
			btn.Enable()
		}
	}
}

// Build creates the tab layout.
func (t *ToolTab) Build() fyne.CanvasObject {
	description := widget.NewLabel(t.panel.Description())
	description.Wrapping = fyne.TextWrapWord

	header := container.NewVBox(
		description,
		VerticalSpacer(8),
		labeledRow("Report", t.report),
		labeledRow("Output", t.output),
		widget.NewSeparator(),
	)

	actions := container.NewHBox(
		t.status,
		layout.NewSpacer(),
		t.clearBtn,
		t.exportAsBtn,
		t.exportBtn,
		t.refreshBtn,
	)
	footer := container.NewVBox(widget.NewSeparator(), actions)

	return container.NewBorder(header, footer, nil, nil, t.tree)
}
