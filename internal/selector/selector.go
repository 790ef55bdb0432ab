// Package selector binds a single filesystem path to a platform picker.
//
// A Selector remembers the chosen path, renders it on a Label and notifies
// listeners when the user picks a path that differs from the current one.
// Programmatic assignment through SetCurrentPath always re-renders the label
// but never notifies.
package selector

import (
	"sync"

	"github.com/dbtoolbox/dbtoolbox/internal/events"
	"github.com/dbtoolbox/dbtoolbox/internal/logging"
)

// Kind distinguishes file selectors from directory selectors.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// ChangeFunc receives the newly selected path.
type ChangeFunc func(path string)

// Selector tracks one selected path. CurrentPath may be read from any
// goroutine; the other methods belong to the UI goroutine.
type Selector struct {
	kind      Kind
	caption   string
	filter    ExtensionFilter
	picker    Picker
	label     Label
	mu        sync.RWMutex
	current   Path
	listeners []ChangeFunc
	bus       *events.EventBus
	logger    *logging.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithCaption sets the picker title.
func WithCaption(caption string) Option {
	return func(s *Selector) { s.caption = caption }
}

// WithExtensions sets the picker's display filter. Ignored by directory
// selectors.
func WithExtensions(exts ...string) Option {
	return func(s *Selector) { s.filter = ExtensionFilter(exts) }
}

// WithPath pre-seeds the selection.
func WithPath(path string) Option {
	return func(s *Selector) { s.current = Some(path) }
}

// WithEventBus publishes a PathChangedEvent after every accepted change.
func WithEventBus(bus *events.EventBus) Option {
	return func(s *Selector) { s.bus = bus }
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Selector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileSelector creates a selector that picks a single file.
func NewFileSelector(picker Picker, opts ...Option) *Selector {
	return newSelector(KindFile, "Select file", picker, opts)
}

// NewDirectorySelector creates a selector that picks a directory.
func NewDirectorySelector(picker Picker, opts ...Option) *Selector {
	return newSelector(KindDirectory, "Select directory", picker, opts)
}

func newSelector(kind Kind, caption string, picker Picker, opts []Option) *Selector {
	s := &Selector{
		kind:    kind,
		caption: caption,
		picker:  picker,
		label:   nopLabel{},
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if kind == KindDirectory {
		s.filter = nil
	}
	s.logger = s.logger.Component("selector")
	return s
}

// Kind returns whether this selector picks files or directories.
func (s *Selector) Kind() Kind {
	return s.kind
}

// Caption returns the picker title.
func (s *Selector) Caption() string {
	return s.caption
}

// Filter returns the extension filter (nil for directory selectors).
func (s *Selector) Filter() ExtensionFilter {
	return s.filter
}

// Picker returns the picker the selector opens.
func (s *Selector) Picker() Picker {
	return s.picker
}

// SetLabel attaches the label that renders the selection and draws the
// current value on it.
func (s *Selector) SetLabel(label Label) {
	if label == nil {
		label = nopLabel{}
	}
	s.label = label
	s.label.SetText(s.CurrentPath().String())
}

// OnChanged registers a listener for accepted changes. Listeners run
// synchronously, in registration order, after the new path is stored.
func (s *Selector) OnChanged(fn ChangeFunc) {
	s.listeners = append(s.listeners, fn)
}

// CurrentPath returns the selection; None if nothing was ever set.
func (s *Selector) CurrentPath() Path {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetCurrentPath stores path and re-renders the label, even when the value
// is unchanged. It never notifies listeners. An empty path clears the
// selection.
func (s *Selector) SetCurrentPath(path string) {
	next := Some(path)
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	s.label.SetText(next.String())
}

// RequestChange opens the picker seeded with the current selection. A
// cancelled picker changes nothing; a confirmed path is accepted through
// Accept.
func (s *Selector) RequestChange() {
	done := func(path string, ok bool) {
		if !ok || path == "" {
			s.logger.Debug().Str("kind", s.kind.String()).Msg("picker cancelled")
			return
		}
		s.Accept(path)
	}

	switch s.kind {
	case KindDirectory:
		s.picker.OpenDirectory(DirectoryRequest{
			Caption: s.caption,
			Start:   s.CurrentPath(),
		}, done)
	default:
		s.picker.OpenFile(FileRequest{
			Caption: s.caption,
			Start:   s.CurrentPath(),
			Filter:  s.filter,
		}, done)
	}
}

// Accept applies a path confirmed by the user. When it differs from the
// current selection the state is updated first, then listeners are called
// and the change is published. It reports whether a change was emitted.
func (s *Selector) Accept(path string) bool {
	if path == "" {
		return false
	}
	next := Some(path)
	if next.Equal(s.CurrentPath()) {
		s.logger.Debug().Str("path", next.String()).Msg("selection unchanged")
		return false
	}

	s.SetCurrentPath(path)
	s.logger.Debug().
		Str("kind", s.kind.String()).
		Str("path", next.String()).
		Msg("selection changed")

	for _, fn := range s.listeners {
		fn(next.String())
	}
	s.bus.PublishPathChanged(s.caption, next.String())
	return true
}
