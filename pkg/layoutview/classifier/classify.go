package classifier

import (
	"fmt"

	"github.com/ukaji3/layoutview/pkg/layoutview/models"
	"github.com/xuri/excelize/v2"
)

// Classify decides the layout of a sheet.
//
// Rules are evaluated in a fixed order and the first match wins: Empty,
// Tabular, Form, Sparse, then Unknown. Classify never fails and returns the
// same result for the same grid and thresholds.
func Classify(sheet *models.Sheet, th Thresholds) models.SheetClassification {
	result := models.SheetClassification{
		Visible: models.VisibilityVisible,
	}
	if sheet == nil {
		result.Layout = models.LayoutEmpty
		result.Reason = "empty: no non-empty cells"
		result.Metrics = models.Metrics{Sparsity: 1, ColumnDensity: []float64{}, DominantColumns: []int{}, ColumnTypes: []string{}}
		return result
	}

	result.SheetName = sheet.Name
	if !sheet.Visible {
		result.Visible = models.VisibilityHidden
	}

	p := newProfile(sheet.Grid)
	m := models.Metrics{
		Sparsity:        p.sparsity(),
		HeaderSignal:    headerSignal(sheet.Grid),
		ColumnDensity:   p.columnDensity(),
		DominantColumns: p.dominantColumns(),
		RowCount:        p.rows,
		ColCount:        p.cols,
		TotalCells:      p.totalCells(),
		DataCells:       p.dataCells,
		NumericRatio:    p.numericRatio(),
		ColumnTypes:     p.columnTypes(),
	}
	if p.dataCells > 0 {
		m.Density = 1 - m.Sparsity
	}
	result.Metrics = m

	if p.dataCells > 0 {
		result.FirstRow = sheet.FirstRow
		result.FirstCol = sheet.FirstCol
		result.EndRow = sheet.FirstRow + p.rows - 1
		result.EndCol = sheet.FirstCol + p.cols - 1
		result.Range = rangeRef(result.FirstRow, result.FirstCol, result.EndRow, result.EndCol)
		result.FirstCellContent = sample(sheet.Grid[0][0])
		result.LastRowFirstCellContent = sample(sheet.Grid[p.rows-1][0])
	}

	result.Layout, result.Reason = decide(p, m, th)
	return result
}

func decide(p profile, m models.Metrics, th Thresholds) (models.LayoutKind, string) {
	if p.dataCells == 0 {
		return models.LayoutEmpty, "empty: no non-empty cells"
	}

	dataRows := p.rows - 1
	if m.HeaderSignal && m.Sparsity < th.TabularMaxSparsity && dataRows >= th.TabularMinDataRows {
		return models.LayoutTabular, fmt.Sprintf("tabular: header row, sparsity %.3f < %.2f, %d data rows",
			m.Sparsity, th.TabularMaxSparsity, dataRows)
	}

	if ok, share := isForm(p, m, th); ok {
		return models.LayoutForm, fmt.Sprintf("form: columns %v hold %.3f of data, other columns <= %.2f dense",
			m.DominantColumns, share, th.FormMaxOtherDensity)
	}

	if m.Sparsity >= th.SparseMinSparsity {
		return models.LayoutSparse, fmt.Sprintf("sparse: sparsity %.3f >= %.2f", m.Sparsity, th.SparseMinSparsity)
	}

	return models.LayoutUnknown, fmt.Sprintf("unknown: sparsity %.3f, header signal %t", m.Sparsity, m.HeaderSignal)
}

// isForm checks the label/value rule and returns the dominant share.
func isForm(p profile, m models.Metrics, th Thresholds) (bool, float64) {
	if p.cols < 2 || p.rows < th.FormMinRows || len(m.DominantColumns) != 2 {
		return false, 0
	}
	a, b := m.DominantColumns[0], m.DominantColumns[1]
	if p.colCounts[a] == 0 || p.colCounts[b] == 0 {
		return false, 0
	}
	share := float64(p.colCounts[a]+p.colCounts[b]) / float64(p.dataCells)
	if share <= th.FormMinDominantShare {
		return false, share
	}
	for c, d := range m.ColumnDensity {
		if c == a || c == b {
			continue
		}
		if d > th.FormMaxOtherDensity {
			return false, share
		}
	}
	return true, share
}

// rangeRef converts 0-based bounds to A1 notation, e.g. "A1:C4".
func rangeRef(firstRow, firstCol, endRow, endCol int) string {
	start, err := excelize.CoordinatesToCellName(firstCol+1, firstRow+1)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(endCol+1, endRow+1)
	if err != nil {
		return ""
	}
	return start + ":" + end
}

func sample(c models.Cell) *string {
	if c.IsEmpty() {
		return nil
	}
	s := c.String()
	return &s
}
