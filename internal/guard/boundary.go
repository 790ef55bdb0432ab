package guard

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dbtoolbox/dbtoolbox/internal/logging"
)

// Severity selects the notification style used for a contained failure.
// The zero value means "not configured".
type Severity int

const (
	SeverityInformation Severity = iota + 1
	SeverityWarning
	SeverityError
)

// DefaultSeverity is used when none is configured.
const DefaultSeverity = SeverityWarning

func (s Severity) String() string {
	switch s {
	case SeverityInformation:
		return "information"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity accepts the names returned by Severity.String plus the
// short forms "info" and "warn".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "information", "info":
		return SeverityInformation, nil
	case "", "warning", "warn":
		return SeverityWarning, nil
	case "error", "critical":
		return SeverityError, nil
	default:
		return DefaultSeverity, fmt.Errorf("unknown severity %q (want information, warning or error)", s)
	}
}

// Notification is what the user sees when an action fails.
type Notification struct {
	Severity Severity
	Title    string // short error kind
	Message  string
}

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

// Notify calls f.
func (f NotifierFunc) Notify(n Notification) { f(n) }

// MultiNotifier fans a notification out to several notifiers in order.
type MultiNotifier []Notifier

// Notify forwards n to every notifier.
func (m MultiNotifier) Notify(n Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(n)
		}
	}
}

// Kinder is implemented by errors that name their own kind.
type Kinder interface {
	Kind() string
}

// KindOf returns a short label for err: the Kind of the first error in the
// chain implementing Kinder, otherwise the type name of the outermost error
// that is not a plain wrapper. Errors created with errors.New or fmt.Errorf
// are labelled "Error".
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	var k Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		t := reflect.TypeOf(e)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		switch t.PkgPath() {
		case "errors", "fmt":
			continue
		}
		if t.Name() != "" {
			return t.Name()
		}
	}
	return "Error"
}

// Outcome records what happened inside an ErrorBoundary.
type Outcome struct {
	Err     error
	Kind    string
	Message string
}

// Failed reports whether the action failed.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// ErrorBoundary runs fallible actions, reports their failures and never lets
// an error escape to the caller. A boundary may be reused for any number of
// actions.
type ErrorBoundary struct {
	notifier Notifier
	severity Severity
	logger   *logging.Logger
}

// BoundaryOption configures an ErrorBoundary.
type BoundaryOption func(*ErrorBoundary)

// WithSeverity sets the notification severity. The zero Severity keeps the
// default.
func WithSeverity(s Severity) BoundaryOption {
	return func(b *ErrorBoundary) {
		if s != 0 {
			b.severity = s
		}
	}
}

// WithBoundaryLogger sets the logger used to record contained failures.
func WithBoundaryLogger(logger *logging.Logger) BoundaryOption {
	return func(b *ErrorBoundary) { b.logger = logger }
}

// NewErrorBoundary creates a boundary reporting through notifier with the
// default Warning severity.
func NewErrorBoundary(notifier Notifier, opts ...BoundaryOption) *ErrorBoundary {
	b := &ErrorBoundary{
		notifier: notifier,
		severity: DefaultSeverity,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Severity returns the configured severity.
func (b *ErrorBoundary) Severity() Severity {
	return b.severity
}

// Run executes action. If it returns an error the boundary notifies the user
// once, logs the failure and returns an Outcome describing it. Run never
// returns the error itself: a failure always ends at the boundary.
func (b *ErrorBoundary) Run(action func() error) Outcome {
	err := action()
	if err == nil {
		return Outcome{}
	}

	outcome := Outcome{
		Err:     err,
		Kind:    KindOf(err),
		Message: err.Error(),
	}

	b.logger.Warn().
		Str("kind", outcome.Kind).
		Str("severity", b.severity.String()).
		Err(err).
		Msg("action failed")

	if b.notifier != nil {
		b.notifier.Notify(Notification{
			Severity: b.severity,
			Title:    outcome.Kind,
			Message:  outcome.Message,
		})
	}
	return outcome
}
