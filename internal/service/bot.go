package service

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/checkers"
)

type BotService interface {
	MakeTurn(controller *checkers.Controller) ([]*checkers.Outcome, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn plays random legal moves for the active player until the turn passes,
// following any capture chain to its end.
func (that *botService) MakeTurn(controller *checkers.Controller) ([]*checkers.Outcome, error) {
	if controller.State() == checkers.StateGameOver {
		return nil, apperror.ErrGameFinished
	}

	var outcomes []*checkers.Outcome

	for {
		moves := controller.LegalMoves()
		if len(moves) == 0 {
			if len(outcomes) == 0 {
				return nil, apperror.ErrNoAvailableMoves
			}
			return outcomes, nil
		}

		chosen := moves[rand.Intn(len(moves))] //nolint: gosec // it's ok

		outcome, err := controller.Play(chosen)
		if err != nil {
			return outcomes, fmt.Errorf("bot failed to make turn: %w", err)
		}

		outcomes = append(outcomes, outcome)

		if outcome.Result != checkers.ResultContinueCapture {
			return outcomes, nil
		}
	}
}
