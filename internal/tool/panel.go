// Package tool implements the tool panel: a description, a report and an
// output selector, an action trigger guarded by a busy indicator and an
// error boundary, and the result tree the action fills.
package tool

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dbtoolbox/dbtoolbox/internal/events"
	"github.com/dbtoolbox/dbtoolbox/internal/export"
	"github.com/dbtoolbox/dbtoolbox/internal/guard"
	"github.com/dbtoolbox/dbtoolbox/internal/logging"
	"github.com/dbtoolbox/dbtoolbox/internal/resulttree"
	"github.com/dbtoolbox/dbtoolbox/internal/selector"
	ustr "github.com/dbtoolbox/dbtoolbox/internal/util/strings"
)

var (
	// ErrNoReport is returned when the trigger fires without a report path.
	ErrNoReport = errors.New("no report file selected")

	// ErrNoResult is returned when exporting before a successful run.
	ErrNoResult = errors.New("no result to export")

	// ErrNoOutputDir is returned when exporting without an output directory.
	ErrNoOutputDir = errors.New("no output directory selected")
)

// Extractor produces grouped tabular data from a report file.
type Extractor interface {
	Extract(ctx context.Context, reportPath string) (*resulttree.GroupedTable, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(ctx context.Context, reportPath string) (*resulttree.GroupedTable, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, reportPath string) (*resulttree.GroupedTable, error) {
	return f(ctx, reportPath)
}

// Config holds the collaborators of a Panel. Report, Output and Extractor
// are required.
type Config struct {
	Name        string
	Description string

	Report    *selector.Selector
	Output    *selector.Selector
	Extractor Extractor

	Indicator guard.Indicator
	Notifier  guard.Notifier
	Severity  guard.Severity
	Columns   int

	EventBus *events.EventBus
	Logger   *logging.Logger
}

// Panel runs one tool. All methods are safe for concurrent use; a trigger
// while a run is in progress is ignored.
type Panel struct {
	name        string
	description string

	report    *selector.Selector
	output    *selector.Selector
	extractor Extractor

	busy     *guard.BusyGuard
	boundary *guard.ErrorBoundary
	notifier guard.Notifier
	model    *resulttree.Model

	bus    *events.EventBus
	logger *logging.Logger

	mu        sync.Mutex
	state     State
	last      guard.Outcome
	listeners []StateFunc
}

// NewPanel creates a panel in StateIdle with an empty result.
func NewPanel(cfg Config) *Panel {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.Component("tool")

	return &Panel{
		name:        cfg.Name,
		description: cfg.Description,
		report:      cfg.Report,
		output:      cfg.Output,
		extractor:   cfg.Extractor,
		busy:        guard.NewBusyGuard(cfg.Indicator),
		boundary: guard.NewErrorBoundary(cfg.Notifier,
			guard.WithSeverity(cfg.Severity),
			guard.WithBoundaryLogger(logger)),
		notifier: cfg.Notifier,
		model:    resulttree.NewModel(cfg.Columns),
		bus:      cfg.EventBus,
		logger:   logger,
	}
}

// Name returns the tab title.
func (p *Panel) Name() string { return p.name }

// Description returns the explanatory text shown above the selectors.
func (p *Panel) Description() string { return p.description }

// Report returns the report file selector.
func (p *Panel) Report() *selector.Selector { return p.report }

// Output returns the output directory selector.
func (p *Panel) Output() *selector.Selector { return p.output }

// Model returns the display model.
func (p *Panel) Model() *resulttree.Model { return p.model }

// State returns the current state.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// LastOutcome returns the outcome of the most recent run or export.
func (p *Panel) LastOutcome() guard.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// OnStateChanged registers a listener for state transitions. Listeners run
// synchronously on the goroutine that caused the transition.
func (p *Panel) OnStateChanged(fn StateFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Trigger runs the extractor against the selected report and installs the
// result. It returns the state the panel ends in. On failure the error is
// reported once through the notifier and the previous result stays on
// display. A cancelled ctx returns the panel to the state it had before.
func (p *Panel) Trigger(ctx context.Context) State {
	prev, ok := p.begin()
	if !ok {
		p.logger.Debug().Msg("trigger ignored, run in progress")
		return StateRunning
	}

	// A panicking extractor leaves the panel in the state it had before.
	next := prev
	var outcome guard.Outcome
	groups := 0
	defer func() { p.finish(next, outcome, groups) }()

	release := p.busy.Enter()
	defer release()

	start := time.Now()
	cancelled := false

	outcome = p.boundary.Run(func() error {
		path, ok := p.report.CurrentPath().Get()
		if !ok {
			return ErrNoReport
		}
		data, err := p.extractor.Extract(ctx, path)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				cancelled = true
				return nil
			}
			return err
		}
		forest := resulttree.Build(data, p.model.Columns())
		p.model.Replace(forest)
		groups = forest.Len()
		return nil
	})

	switch {
	case cancelled:
		p.logger.Info().Msg("extraction cancelled")
	case outcome.Failed():
		next = StateIdleWithError
	default:
		next = StateIdleWithResult
		p.logger.Info().
			Int("groups", groups).
			Dur("elapsed", time.Since(start)).
			Msg("extraction finished")
	}
	return next
}

// Export writes the displayed result into the selected output directory.
// The file is never overwritten: a numeric suffix is added on collision.
func (p *Panel) Export(ctx context.Context) guard.Outcome {
	return p.runExport(ctx, func(forest resulttree.Forest) (export.Result, error) {
		dir, ok := p.output.CurrentPath().Get()
		if !ok {
			return export.Result{}, ErrNoOutputDir
		}
		return export.ToDir(ctx, dir, export.DefaultName, forest)
	})
}

// ExportTo asks for a destination with the save picker and writes the
// displayed result there. done, if not nil, receives the outcome; it is not
// called when the picker is cancelled.
func (p *Panel) ExportTo(ctx context.Context, done func(guard.Outcome)) {
	picker := p.output.Picker()
	if picker == nil {
		return
	}
	start := p.output.CurrentPath()
	if start.IsSet() {
		start = selector.Some(filepath.Join(start.String(), export.DefaultName))
	}
	picker.SaveFile(selector.SaveRequest{
		Caption:   "Export as...",
		Start:     start,
		Extension: ".csv",
	}, func(path string, ok bool) {
		if !ok || path == "" {
			return
		}
		outcome := p.runExport(ctx, func(forest resulttree.Forest) (export.Result, error) {
			return export.ToFile(ctx, path, forest)
		})
		if done != nil {
			done(outcome)
		}
	})
}

// Clear discards the displayed result and returns the panel to StateIdle.
// It does nothing while a run is in progress.
func (p *Panel) Clear() {
	p.mu.Lock()
	if p.state == StateRunning {
		p.mu.Unlock()
		return
	}
	old := p.state
	p.state = StateIdle
	p.last = guard.Outcome{}
	listeners := append([]StateFunc(nil), p.listeners...)
	p.mu.Unlock()

	p.model.Clear()
	p.notifyState(listeners, old, StateIdle, guard.Outcome{}, 0)
}

func (p *Panel) runExport(ctx context.Context, write func(resulttree.Forest) (export.Result, error)) guard.Outcome {
	if p.State() == StateRunning {
		p.logger.Debug().Msg("export ignored, run in progress")
		return guard.Outcome{}
	}

	var res export.Result
	outcome := p.boundary.Run(func() error {
		if p.model.Empty() {
			return ErrNoResult
		}
		var err error
		res, err = guard.Busy(p.busy, func() (export.Result, error) {
			return write(p.model.Forest())
		})
		return err
	})

	p.mu.Lock()
	p.last = outcome
	p.mu.Unlock()

	if outcome.Failed() {
		return outcome
	}

	p.logger.Info().Str("path", res.Path).Int("rows", res.Rows).Msg("result exported")
	p.bus.Publish(&events.ExportedEvent{
		BaseEvent: events.BaseEvent{EventType: events.EventExported, Time: time.Now()},
		Tool:      p.name,
		Path:      res.Path,
		Rows:      res.Rows,
	})
	if p.notifier != nil {
		p.notifier.Notify(guard.Notification{
			Severity: guard.SeverityInformation,
			Title:    "Export finished",
			Message:  fmt.Sprintf("Wrote %s to %s", ustr.Count(res.Rows, "row"), res.Path),
		})
	}
	return outcome
}

// begin moves the panel to StateRunning. It reports false if a run is
// already in progress.
func (p *Panel) begin() (State, bool) {
	p.mu.Lock()
	if p.state == StateRunning {
		p.mu.Unlock()
		return StateRunning, false
	}
	prev := p.state
	p.state = StateRunning
	listeners := append([]StateFunc(nil), p.listeners...)
	p.mu.Unlock()

	p.notifyState(listeners, prev, StateRunning, guard.Outcome{}, 0)
	return prev, true
}

func (p *Panel) finish(next State, outcome guard.Outcome, groups int) {
	p.mu.Lock()
	p.state = next
	p.last = outcome
	listeners := append([]StateFunc(nil), p.listeners...)
	p.mu.Unlock()

	p.notifyState(listeners, StateRunning, next, outcome, groups)
}

func (p *Panel) notifyState(listeners []StateFunc, old, next State, outcome guard.Outcome, groups int) {
	for _, fn := range listeners {
		fn(old, next)
	}
	p.bus.PublishToolState(events.ToolStateEvent{
		Tool:     p.name,
		OldState: old.String(),
		NewState: next.String(),
		Groups:   groups,
		ErrKind:  outcome.Kind,
		ErrMsg:   outcome.Message,
	})
}
