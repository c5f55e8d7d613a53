package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/checkers-backend/internal/usecase"
	"github.com/rocketscienceinc/checkers-backend/transport/view"
)

var (
	ErrGameIDRequired   = errors.New("game_id is required")
	ErrPositionRequired = errors.New("position is required")
	ErrMoveRequired     = errors.New("move is required")
)

func (that *Server) handleNewGame(ctx context.Context, payload *Payload, c *client) error {
	state, err := that.gameUseCase.NewGame(ctx, payload.Name)
	if err != nil {
		return that.failed(c, actionNewGame, err)
	}

	that.subscribe(state.Game.ID(), c)

	that.logger.Info("game created over websocket", "gameID", state.Game.ID())

	return that.sendGame(c, actionNewGame, state)
}

// handleJoinGame subscribes the client to updates of a live game.
func (that *Server) handleJoinGame(ctx context.Context, payload *Payload, c *client) error {
	if payload.GameID == "" {
		return that.failed(c, actionJoinGame, ErrGameIDRequired)
	}

	state, err := that.gameUseCase.GetGame(ctx, payload.GameID)
	if err != nil {
		return that.failed(c, actionJoinGame, err)
	}

	that.subscribe(payload.GameID, c)

	return that.sendGame(c, actionJoinGame, state)
}

func (that *Server) handleLoadGame(ctx context.Context, payload *Payload, c *client) error {
	if payload.GameID == "" {
		return that.failed(c, actionLoadGame, ErrGameIDRequired)
	}

	state, err := that.gameUseCase.LoadGame(ctx, payload.GameID)
	if err != nil {
		return that.failed(c, actionLoadGame, err)
	}

	that.subscribe(state.Game.ID(), c)
	game := view.NewGame(state)
	that.broadcast(state.Game.ID(), c, ResponsePayload{Game: &game})

	return that.sendGame(c, actionLoadGame, state)
}

func (that *Server) handleLeaveGame(_ context.Context, payload *Payload, c *client) error {
	that.unsubscribe(payload.GameID, c)

	return c.sendMessage(actionLeaveGame, ResponsePayload{})
}

func (that *Server) handleSelect(ctx context.Context, payload *Payload, c *client) error {
	if payload.GameID == "" {
		return that.failed(c, actionSelect, ErrGameIDRequired)
	}

	if payload.Position == nil {
		return that.failed(c, actionSelect, ErrPositionRequired)
	}

	state, err := that.gameUseCase.Select(ctx, payload.GameID, *payload.Position)
	if err != nil {
		return that.failed(c, actionSelect, err)
	}

	game := view.NewGame(state)
	that.broadcast(payload.GameID, c, ResponsePayload{Game: &game})

	return c.sendMessage(actionSelect, ResponsePayload{Game: &game})
}

func (that *Server) handleCancel(ctx context.Context, payload *Payload, c *client) error {
	if payload.GameID == "" {
		return that.failed(c, actionCancel, ErrGameIDRequired)
	}

	state, err := that.gameUseCase.CancelSelection(ctx, payload.GameID)
	if err != nil {
		return that.failed(c, actionCancel, err)
	}

	game := view.NewGame(state)
	that.broadcast(payload.GameID, c, ResponsePayload{Game: &game})

	return c.sendMessage(actionCancel, ResponsePayload{Game: &game})
}

func (that *Server) handleLegalMoves(ctx context.Context, payload *Payload, c *client) error {
	if payload.GameID == "" {
		return that.failed(c, actionLegalMoves, ErrGameIDRequired)
	}

	moves, err := that.gameUseCase.LegalMoves(ctx, payload.GameID)
	if err != nil {
		return that.failed(c, actionLegalMoves, err)
	}

	return c.sendMessage(actionLegalMoves, ResponsePayload{Moves: moves})
}

func (that *Server) handleMove(ctx context.Context, payload *Payload, c *client) error {
	if payload.GameID == "" {
		return that.failed(c, actionMove, ErrGameIDRequired)
	}

	if payload.Move == nil {
		return that.failed(c, actionMove, ErrMoveRequired)
	}

	result, err := that.gameUseCase.MakeMove(ctx, payload.GameID, *payload.Move)
	if err != nil {
		return that.failed(c, actionMove, err)
	}

	return that.sendTurn(c, actionMove, payload.GameID, result)
}

func (that *Server) handleBotTurn(ctx context.Context, payload *Payload, c *client) error {
	if payload.GameID == "" {
		return that.failed(c, actionBotTurn, ErrGameIDRequired)
	}

	result, err := that.gameUseCase.BotTurn(ctx, payload.GameID)
	if err != nil {
		return that.failed(c, actionBotTurn, err)
	}

	return that.sendTurn(c, actionBotTurn, payload.GameID, result)
}

func (that *Server) sendGame(c *client, action string, state *usecase.GameState) error {
	game := view.NewGame(state)

	if err := c.sendMessage(action, ResponsePayload{Game: &game}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

// sendTurn answers the sender and pushes the same turn to everyone else watching the game.
func (that *Server) sendTurn(c *client, action, gameID string, result *usecase.TurnResult) error {
	turn := view.NewTurn(result)

	that.broadcast(gameID, c, ResponsePayload{Turn: &turn})

	if err := c.sendMessage(action, ResponsePayload{Turn: &turn}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

// failed reports a rejected request back to the client. Rejections are not
// connection errors, so only a failed write is returned.
func (that *Server) failed(c *client, action string, err error) error {
	that.logger.Debug("request rejected", "action", action, "error", err)

	if sendErr := c.sendMessage(action, ResponsePayload{Error: err.Error()}); sendErr != nil {
		return fmt.Errorf("failed to send error response: %w", sendErr)
	}

	return nil
}
