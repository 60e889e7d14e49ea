package models

// LayoutKind is the detected layout of a sheet.
type LayoutKind string

const (
	// LayoutTabular is a header row followed by uniform data rows.
	LayoutTabular LayoutKind = "Tabular"
	// LayoutForm is label/value pairs concentrated in two columns.
	LayoutForm LayoutKind = "Form"
	// LayoutSparse is scattered cells without a dominant structure.
	LayoutSparse LayoutKind = "Sparse"
	// LayoutEmpty is a sheet without any non-empty cell.
	LayoutEmpty LayoutKind = "Empty"
	// LayoutUnknown is a sheet that clears no classification threshold.
	LayoutUnknown LayoutKind = "Unknown"
)

// Visibility labels.
const (
	VisibilityVisible = "Visible"
	VisibilityHidden  = "Hidden"
)

// Metrics holds the measurements a classification was derived from.
type Metrics struct {
	// Sparsity is the fraction of empty cells in the bounding box.
	Sparsity float64 `json:"sparsity" yaml:"sparsity"`
	// HeaderSignal reports a text header row above numeric data.
	HeaderSignal bool `json:"header_signal" yaml:"header_signal"`
	// ColumnDensity is the non-empty fraction of each column.
	ColumnDensity []float64 `json:"column_density" yaml:"column_density"`
	// DominantColumns are the (up to two) columns holding the most data, ascending.
	DominantColumns []int `json:"dominant_columns" yaml:"dominant_columns"`
	// RowCount is the bounding box height.
	RowCount int `json:"row_count" yaml:"row_count"`
	// ColCount is the bounding box width.
	ColCount int `json:"col_count" yaml:"col_count"`
	// TotalCells is RowCount * ColCount.
	TotalCells int `json:"total_cells" yaml:"total_cells"`
	// DataCells is the number of non-empty cells.
	DataCells int `json:"data_cells" yaml:"data_cells"`
	// Density is 1 - Sparsity (0 for an empty sheet).
	Density float64 `json:"density" yaml:"density"`
	// NumericRatio is the fraction of non-empty cells holding numbers.
	NumericRatio float64 `json:"numeric_ratio" yaml:"numeric_ratio"`
	// ColumnTypes is empty, number, text or mixed per column, over data rows.
	ColumnTypes []string `json:"column_types" yaml:"column_types"`
}

// SheetClassification is the layout verdict for one sheet.
type SheetClassification struct {
	// SheetName is the sheet name as declared in the workbook.
	SheetName string `json:"sheet_name" yaml:"sheet_name"`
	// Layout is the detected layout.
	Layout LayoutKind `json:"layout" yaml:"layout"`
	// Reason names the rule that decided the layout.
	Reason string `json:"reason" yaml:"reason"`
	// Range is the bounding box in A1 notation (empty for an empty sheet).
	Range string `json:"range,omitempty" yaml:"range,omitempty"`
	// Visible is Visible or Hidden.
	Visible string `json:"visible" yaml:"visible"`
	// FirstRow is the 0-based first row of the bounding box.
	FirstRow int `json:"first_row" yaml:"first_row"`
	// FirstCol is the 0-based first column of the bounding box.
	FirstCol int `json:"first_col" yaml:"first_col"`
	// EndRow is the 0-based last row of the bounding box.
	EndRow int `json:"end_row" yaml:"end_row"`
	// EndCol is the 0-based last column of the bounding box.
	EndCol int `json:"end_col" yaml:"end_col"`
	// FirstCellContent is the first cell of the first row of the box.
	FirstCellContent *string `json:"first_cell_content,omitempty" yaml:"first_cell_content,omitempty"`
	// LastRowFirstCellContent is the first cell of the last row of the box.
	LastRowFirstCellContent *string `json:"last_row_first_cell_content,omitempty" yaml:"last_row_first_cell_content,omitempty"`
	// Metrics holds the supporting measurements.
	Metrics Metrics `json:"metrics" yaml:"metrics"`
}
