package classifier

import (
	"sort"

	"github.com/ukaji3/layoutview/pkg/layoutview/models"
)

// profile holds the counts gathered in one pass over a grid.
type profile struct {
	rows, cols int
	dataCells  int
	numbers    int
	colCounts  []int
	// per-column kinds seen below the header row
	colNumbers []int
	colTexts   []int
}

func newProfile(grid [][]models.Cell) profile {
	p := profile{rows: len(grid)}
	if p.rows > 0 {
		p.cols = len(grid[0])
	}
	p.colCounts = make([]int, p.cols)
	p.colNumbers = make([]int, p.cols)
	p.colTexts = make([]int, p.cols)

	dataStart := 1
	if p.rows == 1 {
		dataStart = 0
	}

	for r, row := range grid {
		for c := 0; c < p.cols && c < len(row); c++ {
			cell := row[c]
			if cell.IsEmpty() {
				continue
			}
			p.dataCells++
			p.colCounts[c]++
			if cell.Kind == models.CellNumber {
				p.numbers++
			}
			if r < dataStart {
				continue
			}
			switch cell.Kind {
			case models.CellNumber:
				p.colNumbers[c]++
			case models.CellText:
				p.colTexts[c]++
			}
		}
	}
	return p
}

func (p profile) totalCells() int {
	return p.rows * p.cols
}

func (p profile) sparsity() float64 {
	total := p.totalCells()
	if total == 0 {
		return 1
	}
	return float64(total-p.dataCells) / float64(total)
}

func (p profile) columnDensity() []float64 {
	density := make([]float64, p.cols)
	if p.rows == 0 {
		return density
	}
	for c, n := range p.colCounts {
		density[c] = float64(n) / float64(p.rows)
	}
	return density
}

func (p profile) numericRatio() float64 {
	if p.dataCells == 0 {
		return 0
	}
	return float64(p.numbers) / float64(p.dataCells)
}

func (p profile) columnTypes() []string {
	types := make([]string, p.cols)
	for c := range types {
		switch {
		case p.colNumbers[c] > 0 && p.colTexts[c] > 0:
			types[c] = "mixed"
		case p.colNumbers[c] > 0:
			types[c] = models.CellNumber.String()
		case p.colTexts[c] > 0:
			types[c] = models.CellText.String()
		default:
			types[c] = models.CellEmpty.String()
		}
	}
	return types
}

// dominantColumns returns the (up to two) columns with the most non-empty
// cells, lower index first on ties, sorted ascending.
func (p profile) dominantColumns() []int {
	order := make([]int, p.cols)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return p.colCounts[order[i]] > p.colCounts[order[j]]
	})
	if len(order) > 2 {
		order = order[:2]
	}
	sort.Ints(order)
	return order
}

// headerSignal reports whether row 0 is all text and some later row holds
// a number under a text header cell.
func headerSignal(grid [][]models.Cell) bool {
	if len(grid) < 2 {
		return false
	}
	header := grid[0]
	if len(header) == 0 {
		return false
	}
	for _, cell := range header {
		if cell.Kind != models.CellText {
			return false
		}
	}
	for _, row := range grid[1:] {
		for c, cell := range row {
			if c < len(header) && cell.Kind == models.CellNumber && header[c].Kind == models.CellText {
				return true
			}
		}
	}
	return false
}
