package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dbtoolbox/dbtoolbox/internal/guard"
)

// dialogNotifier shows notifications as dialogs carrying the severity icon.
// Notify returns as soon as the dialog is queued; it does not wait for the
// user to dismiss it.
type dialogNotifier struct {
	window fyne.Window
}

// NewDialogNotifier creates a notifier that opens its dialogs over window.
// Notify may be called from any goroutine.
func NewDialogNotifier(window fyne.Window) guard.Notifier {
	return &dialogNotifier{window: window}
}

func (n *dialogNotifier) Notify(note guard.Notification) {
	fyne.Do(func() {
		n.dialog(note).Show()
	})
}

func (n *dialogNotifier) dialog(note guard.Notification) dialog.Dialog {
	message := widget.NewLabel(note.Message)
	message.Wrapping = fyne.TextWrapWord

	content := container.NewBorder(nil, nil,
		container.NewCenter(widget.NewIcon(severityIcon(note.Severity))), nil,
		message,
	)

	d := dialog.NewCustom(note.Title, "OK", content, n.window)
	d.Resize(fyne.NewSize(420, 160))
	return d
}

func severityIcon(s guard.Severity) fyne.Resource {
	switch s {
	case guard.SeverityInformation:
		return theme.InfoIcon()
	case guard.SeverityError:
		return theme.ErrorIcon()
	default:
		return theme.WarningIcon()
	}
}
