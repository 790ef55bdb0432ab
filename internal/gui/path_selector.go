package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dbtoolbox/dbtoolbox/internal/selector"
)

// PathSelector shows a selector's current path next to a button that opens
// its picker.
type PathSelector struct {
	widget.BaseWidget

	sel    *selector.Selector
	label  *widget.Label
	button *widget.Button
}

// NewPathSelector creates the widget and binds it to sel.
func NewPathSelector(sel *selector.Selector) *PathSelector {
	ps := &PathSelector{sel: sel}
	ps.label = widget.NewLabel("")
	ps.label.Truncation = fyne.TextTruncateEllipsis

	icon := theme.FileIcon()
	if sel.Kind() == selector.KindDirectory {
		icon = theme.FolderOpenIcon()
	}
	ps.button = widget.NewButtonWithIcon("", icon, sel.RequestChange)

	sel.SetLabel(labelFunc(ps.label.SetText))
	ps.ExtendBaseWidget(ps)
	return ps
}

// Text returns the rendered path.
func (ps *PathSelector) Text() string {
	return ps.label.Text
}

// CreateRenderer implements fyne.Widget
func (ps *PathSelector) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, ps.button, ps.label))
}

// labelFunc adapts a setter to selector.Label.
type labelFunc func(text string)

func (f labelFunc) SetText(text string) { f(text) }
