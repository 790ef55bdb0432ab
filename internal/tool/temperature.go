package tool

import (
	"github.com/dbtoolbox/dbtoolbox/internal/config"
	"github.com/dbtoolbox/dbtoolbox/internal/events"
	"github.com/dbtoolbox/dbtoolbox/internal/guard"
	"github.com/dbtoolbox/dbtoolbox/internal/logging"
	"github.com/dbtoolbox/dbtoolbox/internal/report"
	"github.com/dbtoolbox/dbtoolbox/internal/selector"
)

// TemperatureName is the tab title of the temperature distribution tool.
const TemperatureName = "Temperature distribution"

// TemperatureDescription explains the tool above its selectors.
const TemperatureDescription = `EnergyPlus reports temperature distribution time bins in great detail.
This utility extracts only the summary row.`

// Frontend is what a front end supplies to build a panel.
type Frontend struct {
	Picker    selector.Picker
	Indicator guard.Indicator
	Notifier  guard.Notifier
	EventBus  *events.EventBus
	Logger    *logging.Logger
}

// NewTemperaturePanel builds the temperature distribution tool: a report
// selector filtered to HTML reports, an output directory selector and the
// EnergyPlus time-bin extractor, all seeded from cfg.
func NewTemperaturePanel(cfg *config.Config, fe Frontend) *Panel {
	reportSel := selector.NewFileSelector(fe.Picker,
		selector.WithCaption("Select EnergyPlus report"),
		selector.WithExtensions(report.Extensions...),
		selector.WithPath(cfg.ReportPath),
		selector.WithEventBus(fe.EventBus),
		selector.WithLogger(fe.Logger),
	)
	outputSel := selector.NewDirectorySelector(fe.Picker,
		selector.WithCaption("Select output directory"),
		selector.WithPath(cfg.OutputDir),
		selector.WithEventBus(fe.EventBus),
		selector.WithLogger(fe.Logger),
	)

	return NewPanel(Config{
		Name:        TemperatureName,
		Description: TemperatureDescription,
		Report:      reportSel,
		Output:      outputSel,
		Extractor:   report.NewExtractor(cfg.SummaryOnly, fe.Logger),
		Indicator:   fe.Indicator,
		Notifier:    fe.Notifier,
		Severity:    cfg.NotifySeverity,
		Columns:     cfg.Columns,
		EventBus:    fe.EventBus,
		Logger:      fe.Logger,
	})
}
