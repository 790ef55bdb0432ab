package gui

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dbtoolbox/dbtoolbox/internal/events"
	"github.com/dbtoolbox/dbtoolbox/internal/tool"
	ustr "github.com/dbtoolbox/dbtoolbox/internal/util/strings"
)

// StatusLevel represents the type of status being displayed
type StatusLevel int

const (
	// StatusInfo is the default info level
	StatusInfo StatusLevel = iota
	// StatusSuccess indicates a successful operation
	StatusSuccess
	// StatusWarning indicates a warning condition
	StatusWarning
	// StatusError indicates an error condition
	StatusError
)

// StatusBar shows the last tool event and doubles as the busy indicator:
// while busy the level icon is replaced by a spinner. It implements
// guard.Indicator.
type StatusBar struct {
	widget.BaseWidget

	mu     sync.RWMutex
	busy   bool
	onBusy []func(busy bool)

	icon    *widget.Icon
	label   *widget.Label
	spinner *widget.Activity
}

// NewStatusBar creates a new status bar with default "Ready" message
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.label = widget.NewLabel("Ready")
	sb.label.TextStyle = fyne.TextStyle{Italic: true}
	sb.label.Truncation = fyne.TextTruncateEllipsis
	sb.icon = widget.NewIcon(theme.InfoIcon())
	sb.spinner = widget.NewActivity()
	sb.spinner.Hide()
	sb.ExtendBaseWidget(sb)
	return sb
}

// SetStatus updates the status message and level
func (sb *StatusBar) SetStatus(message string, level StatusLevel) {
	fyne.Do(func() {
		sb.label.SetText(message)
		sb.icon.SetResource(levelIcon(level))
	})
}

// Busy implements guard.Indicator.
func (sb *StatusBar) Busy() bool {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.busy
}

// SetBusy implements guard.Indicator. Listeners registered with
// OnBusyChanged run on the UI goroutine.
func (sb *StatusBar) SetBusy(busy bool) {
	sb.mu.Lock()
	sb.busy = busy
	listeners := append([]func(bool){}, sb.onBusy...)
	sb.mu.Unlock()

	fyne.Do(func() {
		if busy {
			sb.icon.Hide()
			sb.spinner.Show()
			sb.spinner.Start()
		} else {
			sb.spinner.Stop()
			sb.spinner.Hide()
			sb.icon.Show()
		}
		for _, fn := range listeners {
			fn(busy)
		}
	})
}

// OnBusyChanged registers fn to follow the busy state, e.g. to disable
// buttons while an action runs.
func (sb *StatusBar) OnBusyChanged(fn func(busy bool)) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.onBusy = append(sb.onBusy, fn)
}

// ShowEvent renders an application event.
func (sb *StatusBar) ShowEvent(event events.Event) {
	message, level, ok := describeEvent(event)
	if ok {
		sb.SetStatus(message, level)
	}
}

// CreateRenderer implements fyne.Widget
func (sb *StatusBar) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewHBox(sb.icon, sb.spinner, sb.label)
	return widget.NewSimpleRenderer(content)
}

func levelIcon(level StatusLevel) fyne.Resource {
	switch level {
	case StatusSuccess:
		return theme.ConfirmIcon()
	case StatusWarning:
		return theme.WarningIcon()
	case StatusError:
		return theme.ErrorIcon()
	default:
		return theme.InfoIcon()
	}
}

// describeEvent maps an event to its status line. ok is false for events
// the status bar does not show.
func describeEvent(event events.Event) (message string, level StatusLevel, ok bool) {
	switch e := event.(type) {
	case *events.PathChangedEvent:
		return fmt.Sprintf("%s: %s", e.Selector, e.Path), StatusInfo, true
	case *events.ToolStateEvent:
		switch e.NewState {
		case tool.StateRunning.String():
			return "Extracting...", StatusInfo, true
		case tool.StateIdleWithResult.String():
			return ustr.Count(e.Groups, "temperature band") + " extracted", StatusSuccess, true
		case tool.StateIdleWithError.String():
			return fmt.Sprintf("%s: %s", e.ErrKind, e.ErrMsg), StatusError, true
		case tool.StateIdle.String():
			return "Ready", StatusInfo, true
		}
	case *events.ExportedEvent:
		return fmt.Sprintf("Exported %s to %s", ustr.Count(e.Rows, "row"), e.Path), StatusSuccess, true
	}
	return "", StatusInfo, false
}
