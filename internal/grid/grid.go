// Package grid reads every row of a virtualized grid view.
//
// A grid reports RowCount logical rows but only materializes a window of
// VisibleRowCount rows; cells outside the window cannot be read until the
// current-row cursor brings them into view. Scrape pages the cursor a full
// window ahead so that reads within a window need no scrolling, and snaps to
// the last row once fewer than a window of rows remain.
package grid

import "fmt"

// View is the part of a grid control the scraper needs.
type View interface {
	RowCount() (int, error)
	VisibleRowCount() (int, error)
	SetCurrentRow(row int) error
	CellValue(row int, column string) (string, error)
}

// Move is one cursor reposition: before reading Row, the cursor is set to
// Cursor.
type Move struct {
	Row    int `yaml:"row"    json:"row"`
	Cursor int `yaml:"cursor" json:"cursor"`
}

// pager decides cursor moves row by row.
type pager struct {
	total   int
	visible int
	last    int // last cursor set, -1 before the first move
}

func newPager(total, visible int) *pager {
	if visible <= 0 {
		visible = 1
	}
	return &pager{total: total, visible: visible, last: -1}
}

// next returns the cursor row to set before reading row, if any.
func (p *pager) next(row int) (int, bool) {
	if p.visible == p.total {
		return 0, false
	}
	target := -1
	switch {
	case row%p.visible == 0 && row+p.visible <= p.total:
		target = row + p.visible - 1
	case p.total-row < p.visible:
		target = p.total - 1
	}
	if target < 0 || target == p.last {
		return 0, false
	}
	p.last = target
	return target, true
}

// Plan returns the cursor moves Scrape issues for a grid of total rows
// showing visible rows at a time.
func Plan(total, visible int) []Move {
	var moves []Move
	p := newPager(total, visible)
	for row := 0; row < total; row++ {
		if cursor, ok := p.next(row); ok {
			moves = append(moves, Move{Row: row, Cursor: cursor})
		}
	}
	return moves
}

// Scrape reads columns for every logical row of v, in row order. The result
// has one entry per row, each aligned with columns. Any read failure aborts
// the scrape.
func Scrape(v View, columns []string) ([][]string, error) {
	total, err := v.RowCount()
	if err != nil {
		return nil, fmt.Errorf("failed to read row count: %w", err)
	}
	visible, err := v.VisibleRowCount()
	if err != nil {
		return nil, fmt.Errorf("failed to read visible row count: %w", err)
	}

	rows := make([][]string, 0, total)
	p := newPager(total, visible)
	for row := 0; row < total; row++ {
		if cursor, ok := p.next(row); ok {
			if err := v.SetCurrentRow(cursor); err != nil {
				return nil, fmt.Errorf("failed to move cursor to row %d: %w", cursor, err)
			}
		}
		values := make([]string, 0, len(columns))
		for _, col := range columns {
			val, err := v.CellValue(row, col)
			if err != nil {
				return nil, fmt.Errorf("failed to read row %d column %q: %w", row, col, err)
			}
			values = append(values, val)
		}
		rows = append(rows, values)
	}
	return rows, nil
}
