package progress

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dbtoolbox/dbtoolbox/internal/guard"
)

// syncBuffer guards a bytes.Buffer written by the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerRendersWhileBusy(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out, "Extracting", true)
	s.interval = 5 * time.Millisecond

	s.SetBusy(true)
	assert.True(t, s.Busy())
	time.Sleep(30 * time.Millisecond)
	s.SetBusy(false)

	assert.False(t, s.Busy())
	assert.Contains(t, out.String(), "Extracting")
}

func TestDisabledSpinnerWritesNothing(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out, "Extracting", false)

	s.SetBusy(true)
	assert.True(t, s.Busy())
	s.SetBusy(false)

	assert.Empty(t, out.String())
}

func TestSpinnerUnderBusyGuard(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out, "Extracting", true)
	g := guard.NewBusyGuard(s)

	release := g.Enter()
	assert.True(t, s.Busy())
	release()
	release()
	assert.False(t, s.Busy())

	s.SetBusy(false)
	assert.False(t, s.Busy())
}
