// Package gui provides the graphical user interface for dbtoolbox.
package gui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"

	"github.com/dbtoolbox/dbtoolbox/internal/config"
	"github.com/dbtoolbox/dbtoolbox/internal/events"
	"github.com/dbtoolbox/dbtoolbox/internal/guard"
	"github.com/dbtoolbox/dbtoolbox/internal/logging"
	"github.com/dbtoolbox/dbtoolbox/internal/notify"
	"github.com/dbtoolbox/dbtoolbox/internal/tool"
	"github.com/dbtoolbox/dbtoolbox/internal/version"
)

const (
	appID       = "com.designbuilder.dbtoolbox"
	windowTitle = "DB Toolbox"
)

// MinWindowSize is the smallest size the main window content allows.
var MinWindowSize = fyne.NewSize(600, 400)

// LaunchGUI opens the main window and blocks until it is closed.
func LaunchGUI(cfg *config.Config) error {
	guiLogger := logging.NewLogger("gui")
	logging.SetGlobalLevel(logging.ParseLevel("gui", cfg.Verbose))
	guiLogger.Info().Str("version", version.Version).Msg("starting GUI")

	myApp := app.NewWithID(appID)
	myApp.Settings().SetTheme(&toolboxTheme{})

	mainWindow := myApp.NewWindow(windowTitle)
	mainWindow.SetMaster()

	ui := NewUI(cfg, mainWindow, guiLogger)
	ui.Start()

	mainWindow.SetContent(ui.Build())
	mainWindow.Resize(fyne.NewSize(900, 600))
	mainWindow.CenterOnScreen()
	mainWindow.SetOnClosed(ui.Stop)

	mainWindow.ShowAndRun()
	return nil
}

// UI represents the main user interface
type UI struct {
	window fyne.Window
	bus    *events.EventBus
	logger *logging.Logger

	status  *StatusBar
	panel   *tool.Panel
	toolTab *ToolTab

	ctx    context.Context
	cancel context.CancelFunc
}

// NewUI creates the UI and its tool panel.
func NewUI(cfg *config.Config, window fyne.Window, logger *logging.Logger) *UI {
	ctx, cancel := context.WithCancel(context.Background())
	bus := events.NewEventBus(events.DefaultBuffer)
	status := NewStatusBar()

	notifiers := guard.MultiNotifier{NewDialogNotifier(window)}
	if cfg.Notify {
		notifiers = append(notifiers, notify.NewNotifier(true, logger))
	}

	panel := tool.NewTemperaturePanel(cfg, tool.Frontend{
		Picker:    NewPicker(window, logger),
		Indicator: status,
		Notifier:  notifiers,
		EventBus:  bus,
		Logger:    logger,
	})

	return &UI{
		window:  window,
		bus:     bus,
		logger:  logger,
		status:  status,
		panel:   panel,
		toolTab: NewToolTab(ctx, panel, status, logger),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Build creates the UI layout
func (ui *UI) Build() fyne.CanvasObject {
	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon(ui.panel.Name(), theme.GridIcon(), ui.toolTab.Build()),
	)
	tabs.SelectIndex(0)
	return WithMinSize(tabs, MinWindowSize)
}

// Start begins event monitoring
func (ui *UI) Start() {
	go ui.monitorEvents(ui.bus.SubscribeAll())
}

// Stop cancels running work and stops event monitoring
func (ui *UI) Stop() {
	ui.cancel()
	ui.bus.Close()
}

func (ui *UI) monitorEvents(ch <-chan events.Event) {
	// ShowEvent updates widgets through fyne.Do.
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			ui.logger.Debug().Str("event", string(event.Type())).Msg("event")
			ui.status.ShowEvent(event)

		case <-ui.ctx.Done():
			return
		}
	}
}
