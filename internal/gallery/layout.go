package gallery

// Columns is the number of grid columns.
const Columns = 2

// Cell is the placement of one entry in the grid.
type Cell struct {
	Index  int
	Column int
	Height float64
	Entry  MediaEntry
}

// CellHeight returns the display height of e at the given column width,
// preserving its aspect ratio. Entries without usable dimensions render square.
func CellHeight(e MediaEntry, columnWidth float64) float64 {
	w, h := e.DisplaySize()
	if w <= 0 || h <= 0 {
		return columnWidth
	}
	return columnWidth * float64(h) / float64(w)
}

// Layout places c into a Columns-wide grid in collection order.
func Layout(c Collection, columnWidth float64) []Cell {
	cells := make([]Cell, len(c))
	for i, e := range c {
		cells[i] = Cell{
			Index:  i,
			Column: i % Columns,
			Height: CellHeight(e, columnWidth),
			Entry:  e,
		}
	}
	return cells
}
