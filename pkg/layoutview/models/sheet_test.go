package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSheetCropsToBoundingBox(t *testing.T) {
	rows := [][]Cell{
		{},
		{EmptyCell(), EmptyCell(), TextCell("a")},
		{EmptyCell(), NumberCell(1)},
		{EmptyCell(), TextCell("   "), EmptyCell(), EmptyCell()},
	}

	s := NewSheet("S", rows)
	require.Equal(t, 2, s.RowCount())
	require.Equal(t, 2, s.ColCount())
	assert.Equal(t, 1, s.FirstRow)
	assert.Equal(t, 1, s.FirstCol)
	assert.True(t, s.Visible)

	assert.True(t, s.Grid[0][0].IsEmpty())
	assert.Equal(t, "a", s.Grid[0][1].Text)
	assert.Equal(t, CellNumber, s.Grid[1][0].Kind)
	assert.True(t, s.Grid[1][1].IsEmpty(), "short rows are padded")
}

func TestNewSheetWithoutData(t *testing.T) {
	s := NewSheet("Blank", [][]Cell{{EmptyCell(), TextCell("")}, nil})
	assert.Equal(t, 0, s.RowCount())
	assert.Equal(t, 0, s.ColCount())
	assert.Equal(t, "Blank", s.Name)

	var nilSheet *Sheet
	assert.Equal(t, 0, nilSheet.RowCount())
	assert.Equal(t, 0, nilSheet.ColCount())
}

func TestCellEmptiness(t *testing.T) {
	tests := []struct {
		name  string
		cell  Cell
		empty bool
	}{
		{"zero value", Cell{}, true},
		{"blank text", TextCell(""), true},
		{"whitespace text", TextCell(" \t"), true},
		{"text", TextCell("data"), false},
		{"numeric zero", NumberCell(0), false},
		{"number", NumberCell(42), false},
	}

	for _, tt := range tests {
		if got := tt.cell.IsEmpty(); got != tt.empty {
			t.Errorf("%s: IsEmpty() = %v, expected %v", tt.name, got, tt.empty)
		}
	}
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "25", NumberCell(25).String())
	assert.Equal(t, "200.5", NumberCell(200.5).String())
	assert.Equal(t, "Name", TextCell("Name").String())
	assert.Equal(t, "", EmptyCell().String())
	assert.Equal(t, "number", CellNumber.String())
	assert.Equal(t, "empty", CellEmpty.String())
}
