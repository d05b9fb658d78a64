package entity

const EmptyCell = ""

// Cell is a single board position. It is a value: changing a cell means storing a new Cell in its slot.
type Cell struct {
	index   int
	marker  string
	winning bool
}

func NewCell(index int) Cell {
	return Cell{index: index}
}

func (that Cell) Index() int {
	return that.index
}

func (that Cell) Marker() string {
	return that.marker
}

func (that Cell) IsOccupied() bool {
	return that.marker != EmptyCell
}

func (that Cell) IsWinningCell() bool {
	return that.winning
}
