// Package progress renders the busy state of headless runs on the terminal.
package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// DefaultInterval is how often the spinner advances.
const DefaultInterval = 100 * time.Millisecond

// Spinner is a guard.Indicator drawing an indeterminate progress bar while
// busy. A disabled spinner only tracks the state, so output piped to a file
// stays clean.
type Spinner struct {
	mu          sync.Mutex
	w           io.Writer
	description string
	enabled     bool
	interval    time.Duration

	busy bool
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, description string, enabled bool) *Spinner {
	return &Spinner{
		w:           w,
		description: description,
		enabled:     enabled,
		interval:    DefaultInterval,
	}
}

// NewStderrSpinner creates a spinner on stderr, enabled only when stderr is
// a terminal.
func NewStderrSpinner(description string) *Spinner {
	return NewSpinner(os.Stderr, description, term.IsTerminal(int(os.Stderr.Fd())))
}

// Busy implements guard.Indicator.
func (s *Spinner) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// SetBusy implements guard.Indicator.
func (s *Spinner) SetBusy(busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if busy == s.busy {
		return
	}
	s.busy = busy
	if !s.enabled {
		return
	}
	if busy {
		s.start()
	} else {
		s.finish()
	}
}

func (s *Spinner) start() {
	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(s.w),
		progressbar.OptionSetDescription(s.description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go spin(s.bar, s.interval, s.stop, s.done)
}

func (s *Spinner) finish() {
	close(s.stop)
	<-s.done
	_ = s.bar.Finish()
	s.bar = nil
}

func spin(bar *progressbar.ProgressBar, interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}
