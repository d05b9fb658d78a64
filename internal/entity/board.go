package entity

const BoardSize = 9

var (
	rowLines = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
	}
	columnLines = [][3]int{
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
	}
	diagonalLines = [][3]int{
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board owns the nine cells of the grid. It does not validate moves, Game does.
type Board struct {
	cells [BoardSize]Cell
}

func NewBoard() *Board {
	board := &Board{}
	for i := range board.cells {
		board.cells[i] = NewCell(i)
	}

	return board
}

func (that *Board) Cell(index int) Cell {
	return that.cells[index]
}

// CheckCell - occupies the cell at index with marker.
func (that *Board) CheckCell(index int, marker string) {
	that.cells[index] = Cell{index: index, marker: marker}
}

// MarkWinningCells - flags the cell at index as part of the winning line, keeping its marker.
func (that *Board) MarkWinningCells(index int) {
	cell := that.cells[index]
	that.cells[index] = Cell{index: index, marker: cell.marker, winning: true}
}

func (that *Board) UncheckedCells() []Cell {
	return that.filter(false)
}

func (that *Board) CheckedCells() []Cell {
	return that.filter(true)
}

func (that *Board) filter(occupied bool) []Cell {
	cells := make([]Cell, 0, BoardSize)
	for _, cell := range that.cells {
		if cell.IsOccupied() == occupied {
			cells = append(cells, cell)
		}
	}

	return cells
}

func (that *Board) Rows() [][3]Cell {
	return that.lines(rowLines)
}

func (that *Board) Columns() [][3]Cell {
	return that.lines(columnLines)
}

func (that *Board) Diagonals() [][3]Cell {
	return that.lines(diagonalLines)
}

func (that *Board) lines(indexes [][3]int) [][3]Cell {
	lines := make([][3]Cell, len(indexes))
	for i, line := range indexes {
		lines[i] = [3]Cell{that.cells[line[0]], that.cells[line[1]], that.cells[line[2]]}
	}

	return lines
}

// Markers - returns the marker of every cell in index order.
func (that *Board) Markers() [BoardSize]string {
	var markers [BoardSize]string
	for i, cell := range that.cells {
		markers[i] = cell.marker
	}

	return markers
}
