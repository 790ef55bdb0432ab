package report

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbtoolbox/dbtoolbox/internal/resulttree"
)

const (
	zone1 = "BLOCK1:ZONE1: Zone Mean Air Temperature"
	zone2 = "BLOCK1:ZONE2: Zone Mean Air Temperature"
)

func TestExtractAllRows(t *testing.T) {
	data, err := NewExtractor(false, nil).Extract(context.Background(), "testdata/eplustbl.htm")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"less than - 70.00",
		"70.00 - 90.00",
		"90.00 - more than",
	}, data.Labels())

	rows, ok := data.Get("less than - 70.00")
	require.True(t, ok)
	assert.Equal(t, resulttree.Table{
		{zone1, "January", 700.0},
		{zone1, "February", 600.0},
		{zone1, "Total", 1300.0},
		{zone2, "January", 744.0},
		{zone2, "Total", 744.0},
	}, rows)

	rows, _ = data.Get("90.00 - more than")
	require.Len(t, rows, 5)
	assert.Equal(t, resulttree.Row{zone2, "Total", "n/a"}, rows[4])
}

func TestExtractSummaryOnly(t *testing.T) {
	data, err := NewExtractor(true, nil).Extract(context.Background(), "testdata/eplustbl.htm")
	require.NoError(t, err)

	rows, ok := data.Get("70.00 - 90.00")
	require.True(t, ok)
	assert.Equal(t, resulttree.Table{
		{zone1, "Total", 116.0},
		{zone2, "Total", 0.0},
	}, rows)
}

func TestExtractMissingFile(t *testing.T) {
	_, err := NewExtractor(false, nil).Extract(context.Background(), "testdata/missing.htm")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestExtractCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor(false, nil).Extract(ctx, "testdata/eplustbl.htm")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractNoTimeBins(t *testing.T) {
	doc := `<html><body>
<p>Report:<b> Annual Building Utility Performance Summary</b></p>
<table><tr><td></td><td>kWh</td></tr><tr><td>Total</td><td>1</td></tr></table>
</body></html>`

	_, err := NewExtractor(false, nil).ExtractFrom(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrNoTimeBins)
}

func TestExtractMalformedTable(t *testing.T) {
	doc := `<html><body>
<p>Report:<b> Time Bin Results</b></p>
<p>For:<b> ZONE1</b></p>
<table><tr><td>January</td><td>5</td></tr></table>
</body></html>`

	_, err := NewExtractor(false, nil).ExtractFrom(strings.NewReader(doc))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "ZONE1", perr.Subject)
	assert.Equal(t, 1, perr.Table)
	assert.Equal(t, "ParseError", perr.Kind())
	assert.Contains(t, err.Error(), "missing interval header")
}

func TestExtractShortRowsLeaveEmptyCells(t *testing.T) {
	doc := `<html><body>
<p>Report:<b> Time Bin Results</b></p>
<table>
<tr><td></td><td>90F</td><td>95F</td></tr>
<tr><td>Jan</td><td>5</td></tr>
</table>
</body></html>`

	data, err := NewExtractor(false, nil).ExtractFrom(strings.NewReader(doc))
	require.NoError(t, err)

	rows, _ := data.Get("95F")
	assert.Equal(t, resulttree.Table{{"", "Jan", nil}}, rows)
}

func TestScalar(t *testing.T) {
	assert.Equal(t, 1300.0, scalar("1,300"))
	assert.Equal(t, 0.5, scalar("0.50"))
	assert.Equal(t, "n/a", scalar("n/a"))
}
