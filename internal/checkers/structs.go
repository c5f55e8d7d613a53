package checkers

import "github.com/rocketscienceinc/checkers-backend/internal/entity"

// State is the phase of the turn state machine.
type State int

const (
	StateAwaitingSelection State = iota
	StateAwaitingDestination
	StateGameOver
)

func (that State) String() string {
	switch that {
	case StateAwaitingSelection:
		return "awaiting_selection"
	case StateAwaitingDestination:
		return "awaiting_destination"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Result tells the caller what happened after a committed move.
type Result int

const (
	ResultTurnComplete Result = iota
	ResultContinueCapture
	ResultGameOver
)

func (that Result) String() string {
	switch that {
	case ResultTurnComplete:
		return "turn_complete"
	case ResultContinueCapture:
		return "continue_capture"
	case ResultGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Candidate is a destination square for a selected piece.
type Candidate struct {
	To      entity.Position `json:"to"`
	Capture bool            `json:"capture"`
}

// MoveRequest is what a client forwards after translating input into board coordinates.
type MoveRequest struct {
	PieceID int             `json:"piece_id"`
	To      entity.Position `json:"to"`
}

// Outcome describes a committed move.
type Outcome struct {
	PieceID  int             `json:"piece_id"`
	From     entity.Position `json:"from"`
	To       entity.Position `json:"to"`
	Captured *entity.Piece   `json:"captured,omitempty"`
	Promoted bool            `json:"promoted"`
	Result   Result          `json:"result"`
	Winner   *entity.Player  `json:"winner,omitempty"`
}
