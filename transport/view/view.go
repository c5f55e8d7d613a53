// Package view renders game sessions for clients.
package view

import (
	"github.com/rocketscienceinc/checkers-backend/internal/checkers"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
	"github.com/rocketscienceinc/checkers-backend/internal/usecase"
)

type Player struct {
	Username        string `json:"username"`
	Side            string `json:"side"`
	IsActive        bool   `json:"is_active"`
	RemainingPieces int    `json:"remaining_pieces"`
	Color           string `json:"color"`
	AccentColor     string `json:"accent_color"`
}

type Piece struct {
	ID       int             `json:"id"`
	Side     string          `json:"side"`
	IsKing   bool            `json:"is_king"`
	Position entity.Position `json:"position"`
}

type Game struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	State          string               `json:"state"`
	Players        []Player             `json:"players"`
	Pieces         []Piece              `json:"pieces"`
	Selected       *int                 `json:"selected,omitempty"`
	Candidates     []checkers.Candidate `json:"candidates,omitempty"`
	InContinuation bool                 `json:"in_continuation"`
	Winner         string               `json:"winner,omitempty"`
}

type Outcome struct {
	PieceID  int             `json:"piece_id"`
	From     entity.Position `json:"from"`
	To       entity.Position `json:"to"`
	Captured *Piece          `json:"captured,omitempty"`
	Promoted bool            `json:"promoted"`
	Result   string          `json:"result"`
	Winner   string          `json:"winner,omitempty"`
}

type Turn struct {
	Outcomes []Outcome `json:"outcomes"`
	Game     Game      `json:"game"`
}

func NewPlayer(player entity.Player) Player {
	return Player{
		Username:        player.Username,
		Side:            player.Side.String(),
		IsActive:        player.IsActive,
		RemainingPieces: player.RemainingPieces,
		Color:           player.Color.Hex(),
		AccentColor:     player.AccentColor.Hex(),
	}
}

func NewPiece(piece entity.Piece) Piece {
	return Piece{
		ID:       piece.ID,
		Side:     piece.Side.String(),
		IsKing:   piece.IsKing,
		Position: piece.Position,
	}
}

func NewGame(state *usecase.GameState) Game {
	game := state.Game

	out := Game{
		ID:             game.ID(),
		Name:           game.Name(),
		State:          state.State.String(),
		Selected:       state.Selected,
		Candidates:     state.Candidates,
		InContinuation: state.InContinuation,
	}

	for _, player := range game.Players() {
		out.Players = append(out.Players, NewPlayer(player))
	}

	for _, piece := range game.Pieces() {
		out.Pieces = append(out.Pieces, NewPiece(piece))
	}

	if winner, ok := game.Winner(); ok {
		out.Winner = winner.Side.String()
	}

	return out
}

func NewTurn(result *usecase.TurnResult) Turn {
	out := Turn{
		Outcomes: make([]Outcome, 0, len(result.Outcomes)),
		Game:     NewGame(result.State),
	}

	for _, outcome := range result.Outcomes {
		ov := Outcome{
			PieceID:  outcome.PieceID,
			From:     outcome.From,
			To:       outcome.To,
			Promoted: outcome.Promoted,
			Result:   outcome.Result.String(),
		}

		if outcome.Captured != nil {
			captured := NewPiece(*outcome.Captured)
			ov.Captured = &captured
		}

		if outcome.Winner != nil {
			ov.Winner = outcome.Winner.Side.String()
		}

		out.Outcomes = append(out.Outcomes, ov)
	}

	return out
}
