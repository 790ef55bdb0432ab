package guard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	got []Notification
}

func (r *recordingNotifier) Notify(n Notification) {
	r.got = append(r.got, n)
}

type parseError struct{ table string }

func (e *parseError) Error() string { return "malformed table " + e.table }
func (e *parseError) Kind() string  { return "ParseError" }

func TestBusyGuardActiveDuringAction(t *testing.T) {
	ind := &FlagIndicator{}
	g := NewBusyGuard(ind)

	var during bool
	_, err := Busy(g, func() (struct{}, error) {
		during = ind.Busy()
		return struct{}{}, nil
	})

	require.NoError(t, err)
	assert.True(t, during)
	assert.False(t, ind.Busy())
}

func TestBusyGuardRestoresOnError(t *testing.T) {
	ind := &FlagIndicator{}
	g := NewBusyGuard(ind)

	v, err := Busy(g, func() (int, error) {
		return 0, errors.New("boom")
	})

	assert.EqualError(t, err, "boom")
	assert.Zero(t, v)
	assert.False(t, ind.Busy())
}

func TestBusyGuardRestoresOnPanic(t *testing.T) {
	ind := &FlagIndicator{}
	g := NewBusyGuard(ind)

	assert.Panics(t, func() {
		_, _ = Busy(g, func() (int, error) { panic("defect") })
	})
	assert.False(t, ind.Busy())
}

func TestBusyGuardRestoresPriorState(t *testing.T) {
	ind := &FlagIndicator{}
	g := NewBusyGuard(ind)

	outer := g.Enter()
	inner := g.Enter()
	assert.True(t, ind.Busy())

	inner()
	assert.True(t, ind.Busy(), "nested release restores the outer busy state")
	inner()
	assert.True(t, ind.Busy(), "release is idempotent")

	outer()
	assert.False(t, ind.Busy())
}

func TestBusyGuardTransitions(t *testing.T) {
	var seen []bool
	ind := &FlagIndicator{OnChange: func(b bool) { seen = append(seen, b) }}
	g := NewBusyGuard(ind)

	release := g.Enter()
	release()

	assert.Equal(t, []bool{true, false}, seen)
}

func TestNilIndicatorIsNoop(t *testing.T) {
	g := NewBusyGuard(nil)
	release := g.Enter()
	release()

	var nilGuard *BusyGuard
	nilGuard.Enter()()
}

func TestErrorBoundaryContainsFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	b := NewErrorBoundary(notifier)

	outcome := b.Run(func() error { return &parseError{table: "Time Bin Results"} })

	require.True(t, outcome.Failed())
	assert.Equal(t, "ParseError", outcome.Kind)
	assert.Equal(t, "malformed table Time Bin Results", outcome.Message)
	require.Len(t, notifier.got, 1)
	assert.Equal(t, Notification{
		Severity: SeverityWarning,
		Title:    "ParseError",
		Message:  "malformed table Time Bin Results",
	}, notifier.got[0])
}

func TestErrorBoundaryIsReusable(t *testing.T) {
	notifier := &recordingNotifier{}
	b := NewErrorBoundary(notifier, WithSeverity(SeverityError))

	for i := 0; i < 3; i++ {
		outcome := b.Run(func() error { return errors.New("cannot read report") })
		assert.True(t, outcome.Failed())
	}

	ok := b.Run(func() error { return nil })
	assert.False(t, ok.Failed())

	require.Len(t, notifier.got, 3)
	for _, n := range notifier.got {
		assert.Equal(t, SeverityError, n.Severity)
		assert.Equal(t, "Error", n.Title)
		assert.Equal(t, "cannot read report", n.Message)
	}
}

func TestErrorBoundarySuccessDoesNotNotify(t *testing.T) {
	notifier := &recordingNotifier{}
	b := NewErrorBoundary(notifier)

	ran := false
	outcome := b.Run(func() error { ran = true; return nil })

	assert.True(t, ran)
	assert.False(t, outcome.Failed())
	assert.Empty(t, notifier.got)
}

func TestBusyAroundBoundaryClearsIndicator(t *testing.T) {
	ind := &FlagIndicator{}
	g := NewBusyGuard(ind)
	notifier := &recordingNotifier{}
	b := NewErrorBoundary(notifier)

	outcome, err := Busy(g, func() (Outcome, error) {
		return b.Run(func() error { return errors.New("bad input") }), nil
	})

	require.NoError(t, err)
	assert.True(t, outcome.Failed())
	assert.False(t, ind.Busy())
	assert.Len(t, notifier.got, 1)
}

func TestKindOf(t *testing.T) {
	_, statErr := os.Stat("/definitely/not/here/eplustbl.htm")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"errors.New", errors.New("x"), "Error"},
		{"fmt wrapped plain", fmt.Errorf("ctx: %w", errors.New("x")), "Error"},
		{"path error", statErr, "PathError"},
		{"wrapped path error", fmt.Errorf("open report: %w", statErr), "PathError"},
		{"kinder", &parseError{}, "ParseError"},
		{"wrapped kinder", fmt.Errorf("extract: %w", &parseError{}), "ParseError"},
		{"joined", errors.Join(errors.New("a"), errors.New("b")), "Error"},
		{"fs sentinel", fs.ErrNotExist, "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"information", SeverityInformation, false},
		{"Info", SeverityInformation, false},
		{"", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{"ERROR", SeverityError, false},
		{"fatal", SeverityWarning, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Severity {
	t.Helper()
	sev, err := ParseSeverity(s)
	require.NoError(t, err)
	return sev
}

func TestMultiNotifier(t *testing.T) {
	a, b := &recordingNotifier{}, &recordingNotifier{}
	m := MultiNotifier{a, nil, b}
	m.Notify(Notification{Title: "Error", Message: "x"})
	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 1)
}

func TestZeroSeverityKeepsDefault(t *testing.T) {
	b := NewErrorBoundary(nil, WithSeverity(0))
	assert.Equal(t, DefaultSeverity, b.Severity())
}
