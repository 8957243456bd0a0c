package session

import (
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/element"
	"github.com/mj1618/sapgui-cli/internal/grid"
	"github.com/mj1618/sapgui-cli/internal/platform"
)

// gridView adapts a GridView element to grid.View.
type gridView struct {
	h platform.Element
}

func (g gridView) RowCount() (int, error)        { return g.intProp("RowCount") }
func (g gridView) VisibleRowCount() (int, error) { return g.intProp("VisibleRowCount") }

func (g gridView) SetCurrentRow(row int) error {
	return g.h.Set("CurrentCellRow", row)
}

func (g gridView) CellValue(row int, column string) (string, error) {
	v, err := g.h.Call("GetCellValue", row, column)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return fmt.Sprint(v), nil
}

func (g gridView) intProp(name string) (int, error) {
	v, err := g.h.Get(name)
	if err != nil {
		return 0, err
	}
	return toInt(v)
}

func (c *Controller) gridAt(id string) (gridView, error) {
	el, err := c.Resolve(id)
	if err != nil {
		return gridView{}, err
	}
	gv, ok := el.(element.GridView)
	if !ok {
		return gridView{}, fmt.Errorf("%w: %s is a %s, not a grid view", element.ErrUnsupportedElementAction, id, el.TypeTag())
	}
	return gridView{h: gv.Handle()}, nil
}

// GridScrape reads columns for every row of the grid view at id.
func (c *Controller) GridScrape(id string, columns []string) ([][]string, error) {
	g, err := c.gridAt(id)
	if err != nil {
		return nil, err
	}
	rows, err := grid.Scrape(g, columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	c.logger.Debug("scraped grid", "id", id, "rows", len(rows), "columns", len(columns))
	return rows, nil
}

// GridPlan returns the cursor moves GridScrape would issue for the grid
// view at id.
func (c *Controller) GridPlan(id string) (total, visible int, moves []grid.Move, err error) {
	g, err := c.gridAt(id)
	if err != nil {
		return 0, 0, nil, err
	}
	if total, err = g.RowCount(); err != nil {
		return 0, 0, nil, err
	}
	if visible, err = g.VisibleRowCount(); err != nil {
		return 0, 0, nil, err
	}
	return total, visible, grid.Plan(total, visible), nil
}

// GridCell reads one cell of the grid view at id. The row must be within
// the materialized window.
func (c *Controller) GridCell(id, column string, row int) (string, error) {
	g, err := c.gridAt(id)
	if err != nil {
		return "", err
	}
	return g.CellValue(row, column)
}

// GridModifyCell writes value into a cell of the grid view at id.
func (c *Controller) GridModifyCell(id string, row int, column, value string) error {
	g, err := c.gridAt(id)
	if err != nil {
		return err
	}
	_, err = g.h.Call("modifyCell", row, column, value)
	return err
}

// TableSelectRow selects the row with absolute index in the table control
// at id.
func (c *Controller) TableSelectRow(id string, index int) error {
	el, err := c.Resolve(id)
	if err != nil {
		return err
	}
	tbl, ok := el.(element.Table)
	if !ok {
		return fmt.Errorf("%w: %s is a %s, not a table control", element.ErrUnsupportedElementAction, id, el.TypeTag())
	}
	v, err := tbl.Handle().Call("GetAbsoluteRow", index)
	if err != nil {
		return err
	}
	row, ok := v.(platform.Element)
	if !ok {
		return fmt.Errorf("%s: absolute row %d is not an object", id, index)
	}
	defer platform.Release(row)
	return row.Set("Selected", true)
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}
