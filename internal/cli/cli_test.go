package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbtoolbox/dbtoolbox/internal/config"
	"github.com/dbtoolbox/dbtoolbox/internal/guard"
	"github.com/dbtoolbox/dbtoolbox/internal/resulttree"
	"github.com/dbtoolbox/dbtoolbox/internal/version"
)

var reportFixture = filepath.Join("..", "report", "testdata", "eplustbl.htm")

func testConfig(t *testing.T, report string) *config.Config {
	t.Helper()
	return &config.Config{
		ReportPath:     report,
		OutputDir:      t.TempDir(),
		Columns:        resulttree.DefaultColumns,
		SummaryOnly:    true,
		NotifySeverity: guard.SeverityWarning,
	}
}

func TestRunExtractRendersTable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := testConfig(t, reportFixture)
	indicator := &guard.FlagIndicator{}
	var transitions []bool
	indicator.OnChange = func(busy bool) { transitions = append(transitions, busy) }

	err := runExtract(context.Background(), &stdout, &stderr, cfg, indicator, false)
	require.NoError(t, err, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "GROUP")
	assert.Contains(t, out, "COLUMN 1")
	assert.Contains(t, out, "less than - 70.00")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "(3 groups, 6 rows)")
	assert.Empty(t, stderr.String())
	assert.Equal(t, []bool{true, false}, transitions)
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "time_bins.csv"))
}

func TestRunExtractExports(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := testConfig(t, reportFixture)

	err := runExtract(context.Background(), &stdout, &stderr, cfg, &guard.FlagIndicator{}, true)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(cfg.OutputDir, "time_bins.csv"))
	assert.Contains(t, stderr.String(), "[INFORMATION] Export finished: Wrote 6 rows to ")
}

func TestRunExtractMissingReport(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := testConfig(t, filepath.Join(t.TempDir(), "eplustbl.htm"))

	err := runExtract(context.Background(), &stdout, &stderr, cfg, &guard.FlagIndicator{}, false)
	require.Error(t, err)

	assert.Equal(t, "extraction failed (PathError)", err.Error())
	assert.Empty(t, stdout.String())
	assert.True(t, strings.HasPrefix(stderr.String(), "[WARNING] PathError: "), stderr.String())
}

func TestRunExtractCancelled(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runExtract(ctx, &stdout, &stderr, testConfig(t, reportFixture), &guard.FlagIndicator{}, false)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stdout.String())
}

func TestRenderForest(t *testing.T) {
	data := resulttree.NewGroupedTable()
	data.Set("90F", resulttree.Table{{"Jan", 5}, {"Feb", 3}})
	data.AddGroup("95F")

	var out bytes.Buffer
	renderForest(&out, resulttree.Build(data, 3))

	text := out.String()
	assert.Contains(t, text, "COLUMN 3")
	assert.NotContains(t, text, "COLUMN 4")
	assert.Equal(t, 1, strings.Count(text, "90F"), "group label is printed once")
	assert.Contains(t, text, "95F")
	assert.Contains(t, text, "Feb")
	assert.Contains(t, text, "(2 groups, 2 rows)")
}

func TestRenderEmptyForest(t *testing.T) {
	var out bytes.Buffer
	renderForest(&out, resulttree.Build(resulttree.NewGroupedTable(), 3))
	assert.Equal(t, "(0 groups)\n", out.String())
}

func TestTerminalNotifier(t *testing.T) {
	var out bytes.Buffer
	n := terminalNotifier{w: &out}

	n.Notify(guard.Notification{Severity: guard.SeverityError, Title: "ParseError", Message: "no time bins"})

	assert.Equal(t, "[ERROR] ParseError: no time bins\n", out.String())
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()
	AddCommands(root)

	for _, name := range []string{"extract", "version", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"report", "output-dir", "severity", "columns", "summary", "verbose", "notify"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
	extract, _, err := root.Find([]string{"extract"})
	require.NoError(t, err)
	assert.NotNil(t, extract.Flags().Lookup("export"))
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCmd()
	AddCommands(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())

	assert.Equal(t, version.String()+"\n", out.String())
}

func TestExtractCommandReportsFailure(t *testing.T) {
	root := NewRootCmd()
	AddCommands(root)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{
		"extract",
		"--report", filepath.Join(t.TempDir(), "eplustbl.htm"),
		"--output-dir", t.TempDir(),
	})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PathError")
	assert.Contains(t, errOut.String(), "[WARNING] PathError")
}

func TestExtractCommandRejectsBadSeverity(t *testing.T) {
	root := NewRootCmd()
	AddCommands(root)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"extract", "--severity", "loud"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown severity")
}
