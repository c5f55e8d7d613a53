package usecase

import (
	"context"

	"github.com/rocketscienceinc/checkers-backend/internal/checkers"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

const defaultGameName = "Game 1"

type GameUseCase interface {
	NewGame(ctx context.Context, name string) (*GameState, error)
	GetGame(ctx context.Context, id string) (*GameState, error)
	EndGame(ctx context.Context, id string) error

	Select(ctx context.Context, id string, pos entity.Position) (*GameState, error)
	CancelSelection(ctx context.Context, id string) (*GameState, error)
	LegalMoves(ctx context.Context, id string) ([]checkers.MoveRequest, error)
	MakeMove(ctx context.Context, id string, req checkers.MoveRequest) (*TurnResult, error)
	BotTurn(ctx context.Context, id string) (*TurnResult, error)

	SaveGame(ctx context.Context, id string) (string, error)
	UpdateGame(ctx context.Context, id string) error
	LoadGame(ctx context.Context, id string) (*GameState, error)
	DeleteSavedGame(ctx context.Context, id string) error
}

// GameState is a snapshot of a session: a copy of the game plus the turn state.
type GameState struct {
	Game           *entity.Game
	State          checkers.State
	Selected       *int
	Candidates     []checkers.Candidate
	InContinuation bool
}

// TurnResult carries the moves committed by one request and the resulting state.
type TurnResult struct {
	Outcomes []*checkers.Outcome
	State    *GameState
}

func newGameState(controller *checkers.Controller) *GameState {
	state := &GameState{
		Game:           controller.Game(),
		State:          controller.State(),
		Candidates:     controller.Candidates(),
		InContinuation: controller.InContinuation(),
	}

	if selected, ok := controller.Selected(); ok {
		state.Selected = &selected
	}

	return state
}
