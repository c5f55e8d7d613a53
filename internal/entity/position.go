package entity

import "fmt"

// BoardSize is the number of rows and columns of the board. Coordinates are 1-based.
const BoardSize = 8

// Position is a square on the board addressed by column and row.
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Direction is a one-step diagonal displacement.
type Direction struct {
	DCol int
	DRow int
}

var (
	UpLeft    = Direction{DCol: -1, DRow: -1}
	UpRight   = Direction{DCol: 1, DRow: -1}
	DownLeft  = Direction{DCol: -1, DRow: 1}
	DownRight = Direction{DCol: 1, DRow: 1}

	// Diagonals lists every direction in the order candidates are generated.
	Diagonals = [4]Direction{UpLeft, UpRight, DownLeft, DownRight}
)

func NewPosition(col, row int) Position {
	return Position{Col: col, Row: row}
}

// Add returns the position one step along d. The result may be off the board.
func (that Position) Add(d Direction) Position {
	return Position{Col: that.Col + d.DCol, Row: that.Row + d.DRow}
}

// Step returns the position n steps along d.
func (that Position) Step(d Direction, n int) Position {
	return Position{Col: that.Col + n*d.DCol, Row: that.Row + n*d.DRow}
}

func (that Position) InBounds() bool {
	return that.Col >= 1 && that.Col <= BoardSize && that.Row >= 1 && that.Row <= BoardSize
}

// Sub returns the displacement from other to that.
func (that Position) Sub(other Position) (int, int) {
	return that.Col - other.Col, that.Row - other.Row
}

// Midpoint returns the square halfway between two positions.
func (that Position) Midpoint(other Position) Position {
	return Position{Col: (that.Col + other.Col) / 2, Row: (that.Row + other.Row) / 2}
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Col, that.Row)
}
