package entity

type Piece struct {
	ID       int      `json:"id"`
	Side     Side     `json:"side"`
	IsKing   bool     `json:"is_king"`
	Position Position `json:"position"`
}

// Directions returns the diagonals this piece may move along.
func (that Piece) Directions() []Direction {
	switch {
	case that.IsKing:
		return Diagonals[:]
	case that.Side == SideTop:
		return []Direction{DownLeft, DownRight}
	default:
		return []Direction{UpLeft, UpRight}
	}
}

// ReachesBackRank reports whether pos crowns a piece of this side.
func (that Piece) ReachesBackRank(pos Position) bool {
	return pos.Row == that.Side.BackRank()
}
