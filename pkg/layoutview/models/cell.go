// Package models defines data structures for sheet layout classification.
package models

import (
	"strconv"
	"strings"
)

// CellKind is the type of a cell value.
type CellKind uint8

const (
	// CellEmpty is an absent, blank or error cell.
	CellEmpty CellKind = iota
	// CellNumber is a numeric (or boolean) cell.
	CellNumber
	// CellText is a non-blank string cell.
	CellText
)

// String returns the lower-case kind name used in column type metrics.
func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "number"
	case CellText:
		return "text"
	default:
		return "empty"
	}
}

// Cell is a single typed cell value.
type Cell struct {
	// Kind is the value type.
	Kind CellKind
	// Number holds the value when Kind is CellNumber.
	Number float64
	// Text holds the value when Kind is CellText.
	Text string
}

// EmptyCell returns an empty cell.
func EmptyCell() Cell {
	return Cell{}
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

// TextCell returns a text cell. Blank or whitespace-only text is empty.
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// IsEmpty reports whether the cell carries no data. Numeric zero is data.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns the cell content as displayed in sampled fields.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}
