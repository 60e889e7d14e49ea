// Package parser provides Excel file parsing utilities.
package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/layoutview/pkg/layoutview/models"
	"github.com/xuri/excelize/v2"
)

// LoadSheet reads a sheet into a typed cell grid cropped to its data.
func LoadSheet(f *excelize.File, sheetName string) (*models.Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make([][]models.Cell, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, cellValue := range row {
			if strings.TrimSpace(cellValue) == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = typedCell(cellType, cellValue)
		}
		grid[rowIdx] = cells
	}

	sheet := models.NewSheet(sheetName, grid)
	visible, err := f.GetSheetVisible(sheetName)
	if err != nil {
		return nil, err
	}
	sheet.Visible = visible
	return sheet, nil
}

// typedCell maps a raw cell value and its stored type to a Cell.
// Error values are empty and booleans are numbers.
func typedCell(cellType excelize.CellType, raw string) models.Cell {
	switch cellType {
	case excelize.CellTypeError:
		return models.EmptyCell()
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.TextCell(raw)
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return models.NumberCell(1)
		}
		return models.NumberCell(0)
	default:
		return parseValue(raw)
	}
}

// parseValue attempts to parse a string value as a number.
// Returns a number cell on success, or a text cell otherwise.
func parseValue(s string) models.Cell {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return models.NumberCell(f)
	}
	return models.TextCell(s)
}
