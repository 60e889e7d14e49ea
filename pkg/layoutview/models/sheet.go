package models

// Sheet is one worksheet cropped to the bounding box of its non-empty cells.
//
// Grid is rectangular: every row has ColCount cells. A sheet without data
// has an empty grid.
type Sheet struct {
	// Name is the sheet name as declared in the workbook.
	Name string
	// Visible is false for hidden and very hidden sheets.
	Visible bool
	// FirstRow is the 0-based row of the bounding box in the original sheet.
	FirstRow int
	// FirstCol is the 0-based column of the bounding box in the original sheet.
	FirstCol int
	// Grid holds the cells row by row.
	Grid [][]Cell
}

// NewSheet builds a visible Sheet from raw rows of any length. Leading and
// trailing all-empty rows and columns are dropped and short rows are padded
// with empty cells.
func NewSheet(name string, rows [][]Cell) *Sheet {
	s := &Sheet{Name: name, Visible: true}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return s
	}

	s.FirstRow = minRow
	s.FirstCol = minCol
	width := maxCol - minCol + 1
	s.Grid = make([][]Cell, 0, maxRow-minRow+1)
	for r := minRow; r <= maxRow; r++ {
		row := make([]Cell, width)
		src := rows[r]
		for c := minCol; c <= maxCol && c < len(src); c++ {
			row[c-minCol] = src[c]
		}
		s.Grid = append(s.Grid, row)
	}
	return s
}

// RowCount returns the number of rows in the bounding box.
func (s *Sheet) RowCount() int {
	if s == nil {
		return 0
	}
	return len(s.Grid)
}

// ColCount returns the number of columns in the bounding box.
func (s *Sheet) ColCount() int {
	if s == nil || len(s.Grid) == 0 {
		return 0
	}
	return len(s.Grid[0])
}

// findDataBounds finds the bounding box of non-empty cells.
// All four values are -1 when there is no data.
func findDataBounds(rows [][]Cell) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			if minRow < 0 {
				minRow = rowIdx
			}
			maxRow = rowIdx
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}
