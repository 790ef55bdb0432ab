package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// VerticalSpacer creates a fixed-height vertical spacer for adding breathing room
// between sections. Use standardized heights for consistency:
//   - Small: 8
//   - Medium: 16
//   - Large: 24
func VerticalSpacer(height float32) fyne.CanvasObject {
	spacer := canvas.NewRectangle(nil) // Transparent
	spacer.SetMinSize(fyne.NewSize(0, height))
	return spacer
}

// WithMinSize stacks content over a transparent rectangle so the result is
// never smaller than size. Fyne windows have no minimum size of their own.
func WithMinSize(content fyne.CanvasObject, size fyne.Size) fyne.CanvasObject {
	floor := canvas.NewRectangle(nil)
	floor.SetMinSize(size)
	return container.NewStack(floor, content)
}

// NewPrimaryButtonWithIcon creates a button with an icon and white text on blue background.
// Fyne only uses ColorNameForegroundOnPrimary for HighImportance buttons.
func NewPrimaryButtonWithIcon(label string, icon fyne.Resource, tapped func()) *widget.Button {
	btn := widget.NewButtonWithIcon(label, icon, tapped)
	btn.Importance = widget.HighImportance
	return btn
}

// labeledRow puts a fixed-width caption left of content.
func labeledRow(caption string, content fyne.CanvasObject) fyne.CanvasObject {
	label := widget.NewLabel(caption)
	label.TextStyle = fyne.TextStyle{Bold: true}
	return container.NewBorder(nil, nil, label, nil, content)
}
