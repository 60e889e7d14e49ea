package layoutview

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/layoutview/pkg/layoutview/classifier"
	"github.com/ukaji3/layoutview/pkg/layoutview/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

// newFixtureWorkbook builds the three-sheet sample workbook plus an empty
// sheet and a hidden sheet.
func newFixtureWorkbook(t *testing.T) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	require.NoError(t, f.SetSheetName("Sheet1", "Data Sheet"))
	for _, name := range []string{"Form Sheet", "Sparse Sheet", "Blank", "Archive"} {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}

	setRows(t, f, "Data Sheet", [][]any{
		{"Name", "Age", "City"},
		{"Alice", 25, "New York"},
		{"Bob", 30, "London"},
		{"Charlie", 35, "Tokyo"},
	})
	setRows(t, f, "Form Sheet", [][]any{
		{"Field", "Value"},
		{"Name"},
		{"Email"},
		{"Age"},
		{"City"},
	})
	setRows(t, f, "Sparse Sheet", [][]any{
		{"A", "B", "C"},
		{1, "", 9},
		{2, 0, 10},
		{0, 0, 11},
		{4, 8, 12},
	})
	setRows(t, f, "Archive", [][]any{{"old"}})
	require.NoError(t, f.SetSheetVisible("Archive", false))

	return f
}

func setRows(t *testing.T, f *excelize.File, sheet string, rows [][]any) {
	t.Helper()
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
}

func saveFixture(t *testing.T, f *excelize.File) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestClassifyWorkbook(t *testing.T) {
	path := saveFixture(t, newFixtureWorkbook(t))

	opts := DefaultOptions()
	opts.Logger = zaptest.NewLogger(t)
	results, err := Classify(context.Background(), path, opts)
	require.NoError(t, err)
	require.Len(t, results, 5)

	expected := []struct {
		name    string
		layout  models.LayoutKind
		visible string
	}{
		{"Data Sheet", models.LayoutTabular, models.VisibilityVisible},
		{"Form Sheet", models.LayoutForm, models.VisibilityVisible},
		{"Sparse Sheet", models.LayoutTabular, models.VisibilityVisible},
		{"Blank", models.LayoutEmpty, models.VisibilityVisible},
		{"Archive", models.LayoutUnknown, models.VisibilityHidden},
	}
	for i, want := range expected {
		assert.Equal(t, want.name, results[i].SheetName)
		assert.Equal(t, want.layout, results[i].Layout, "%s: %s", want.name, results[i].Reason)
		assert.Equal(t, want.visible, results[i].Visible, want.name)
	}

	assert.Equal(t, 0.0, results[0].Metrics.Sparsity)
	assert.Equal(t, "A1:C4", results[0].Range)
	assert.InDelta(t, 0.4, results[1].Metrics.Sparsity, 1e-9)
	assert.InDelta(t, 1.0/15.0, results[2].Metrics.Sparsity, 1e-9)
	assert.Equal(t, 1.0, results[3].Metrics.Sparsity)
}

func TestClassifyPreservesSheetOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := excelize.NewFile()
	defer f.Close()
	names := []string{"Zeta", "Alpha", "Mid", "Beta", "Omega", "Gamma"}
	require.NoError(t, f.SetSheetName("Sheet1", names[0]))
	for _, name := range names[1:] {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	for i, name := range names {
		setRows(t, f, name, [][]any{{"k", "v"}, {"a", i}, {"b", i + 1}})
	}
	path := saveFixture(t, f)

	sequential, err := Classify(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, sequential, len(names))
	for i, name := range names {
		assert.Equal(t, name, sequential[i].SheetName)
	}

	parallel, err := Classify(context.Background(), path, Options{Workers: 4})
	require.NoError(t, err)
	if diff := cmp.Diff(sequential, parallel); diff != "" {
		t.Errorf("parallel classification differs (-sequential +parallel):\n%s", diff)
	}
}

func TestClassifySkipHidden(t *testing.T) {
	path := saveFixture(t, newFixtureWorkbook(t))

	results, err := Classify(context.Background(), path, Options{SkipHidden: true})
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.NotEqual(t, "Archive", r.SheetName)
	}
}

func TestClassifyReader(t *testing.T) {
	f := newFixtureWorkbook(t)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	results, err := ClassifyReader(context.Background(), bytes.NewReader(buf.Bytes()), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, models.LayoutTabular, results[0].Layout)
}

func TestClassifyErrors(t *testing.T) {
	dir := t.TempDir()

	notXLSX := filepath.Join(dir, "plain.xlsx")
	require.NoError(t, os.WriteFile(notXLSX, []byte("just some text"), 0644))

	tests := []struct {
		name     string
		path     string
		sentinel error
		kind     ErrorKind
	}{
		{"missing file", filepath.Join(dir, "missing.xlsx"), ErrFileNotFound, KindNotFound},
		{"not a workbook", notXLSX, ErrInvalidFormat, KindFormat},
		{"directory", dir, ErrIO, KindIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Classify(context.Background(), tt.path, DefaultOptions())
			require.Error(t, err)
			assert.Nil(t, results)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.kind, KindOf(err))

			var wbErr *WorkbookError
			require.True(t, errors.As(err, &wbErr))
			assert.Equal(t, "open", wbErr.Op)
		})
	}
}

func TestClassifyCanceled(t *testing.T) {
	path := saveFixture(t, newFixtureWorkbook(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Classify(ctx, path, DefaultOptions())
	assert.Nil(t, results)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, KindCanceled, KindOf(err))
}

func TestClassifyInvalidThresholds(t *testing.T) {
	th := classifier.DefaultThresholds()
	th.TabularMaxSparsity = -1

	_, err := Classify(context.Background(), "unused.xlsx", Options{Thresholds: &th})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tabular_max_sparsity")
}

func TestClassifySheetReportsDefects(t *testing.T) {
	ragged := &models.Sheet{
		Name: "Ragged",
		Grid: [][]models.Cell{{models.TextCell("a")}, {}},
	}

	_, err := classifySheet(ragged, classifier.DefaultThresholds())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, KindInternal, KindOf(err))

	var sheetErr *SheetError
	require.True(t, errors.As(err, &sheetErr))
	assert.Equal(t, "Ragged", sheetErr.SheetName)
	assert.Equal(t, "classify", sheetErr.Stage)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindFormat, KindOf(NewSheetError("S", "load", ErrInvalidFormat)))
}
