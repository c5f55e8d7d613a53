package entity

import "fmt"

// Side determines the movement direction of a player's non-king pieces.
type Side int

const (
	SideTop Side = iota + 1
	SideBottom
)

// PiecesPerPlayer is the number of pieces each player starts with.
const PiecesPerPlayer = 12

func (that Side) String() string {
	switch that {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return fmt.Sprintf("side(%d)", int(that))
	}
}

// Opponent returns the other side.
func (that Side) Opponent() Side {
	if that == SideTop {
		return SideBottom
	}
	return SideTop
}

// Forward returns the row step of a non-king piece of this side.
func (that Side) Forward() int {
	if that == SideTop {
		return 1
	}
	return -1
}

// BackRank returns the row where a piece of this side is crowned.
func (that Side) BackRank() int {
	if that == SideTop {
		return BoardSize
	}
	return 1
}

func (that Side) Valid() bool {
	return that == SideTop || that == SideBottom
}

type Player struct {
	Username        string `json:"username"`
	Side            Side   `json:"side"`
	IsActive        bool   `json:"is_active"`
	RemainingPieces int    `json:"remaining_pieces"`
	Color           Color  `json:"-"`
	AccentColor     Color  `json:"-"`
}

func NewPlayer(username string, side Side, color, accent Color) *Player {
	return &Player{
		Username:        username,
		Side:            side,
		RemainingPieces: PiecesPerPlayer,
		Color:           color,
		AccentColor:     accent,
	}
}

func (that Player) HasLost() bool {
	return that.RemainingPieces <= 0
}
