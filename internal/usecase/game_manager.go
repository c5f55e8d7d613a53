package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/checkers"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
	"github.com/rocketscienceinc/checkers-backend/internal/pkg"
)

type gameRepo interface {
	Save(ctx context.Context, game *entity.Game) (string, error)
	Update(ctx context.Context, game *entity.Game) error
	Load(ctx context.Context, id string) (*entity.Game, error)
	Delete(ctx context.Context, id string) error
}

type winNotifier interface {
	AnnounceWin(ctx context.Context, game *entity.Game, winner entity.Player) error
}

type botService interface {
	MakeTurn(controller *checkers.Controller) ([]*checkers.Outcome, error)
}

// GameManager owns the live sessions. Every session is driven by one controller,
// and all access to controllers is serialized by mu.
type GameManager struct {
	logger *slog.Logger

	gameRepo gameRepo
	notifier winNotifier
	bot      botService

	mu       sync.Mutex
	sessions map[string]*checkers.Controller
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, notifier winNotifier, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game-manager"),

		gameRepo: gameRepo,
		notifier: notifier,
		bot:      bot,

		sessions: make(map[string]*checkers.Controller),
	}
}

func (that *GameManager) NewGame(_ context.Context, name string) (*GameState, error) {
	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("error generating game ID: %w", err)
	}

	if name == "" {
		name = defaultGameName
	}

	controller := checkers.NewController(entity.NewGame(gameID, name))

	that.mu.Lock()
	that.sessions[gameID] = controller
	state := newGameState(controller)
	that.mu.Unlock()

	that.logger.Info("game created", "gameID", gameID, "name", name)

	return state, nil
}

func (that *GameManager) GetGame(_ context.Context, id string) (*GameState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.session(id)
	if err != nil {
		return nil, err
	}

	return newGameState(controller), nil
}

// EndGame drops a session. Stored copies are left alone.
func (that *GameManager) EndGame(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, err := that.session(id); err != nil {
		return err
	}

	delete(that.sessions, id)

	that.logger.Info("game ended", "gameID", id)

	return nil
}

func (that *GameManager) Select(_ context.Context, id string, pos entity.Position) (*GameState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.session(id)
	if err != nil {
		return nil, err
	}

	if _, err = controller.SelectAt(pos); err != nil {
		return nil, fmt.Errorf("failed to select piece: %w", err)
	}

	return newGameState(controller), nil
}

// CancelSelection drops the selected piece unless a capture chain is in progress.
func (that *GameManager) CancelSelection(_ context.Context, id string) (*GameState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.session(id)
	if err != nil {
		return nil, err
	}

	controller.Cancel()

	return newGameState(controller), nil
}

func (that *GameManager) LegalMoves(_ context.Context, id string) ([]checkers.MoveRequest, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.session(id)
	if err != nil {
		return nil, err
	}

	return controller.LegalMoves(), nil
}

func (that *GameManager) MakeMove(ctx context.Context, id string, req checkers.MoveRequest) (*TurnResult, error) {
	that.mu.Lock()

	controller, err := that.session(id)
	if err != nil {
		that.mu.Unlock()
		return nil, err
	}

	outcome, err := controller.Play(req)
	if err != nil {
		that.mu.Unlock()
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	result := &TurnResult{
		Outcomes: []*checkers.Outcome{outcome},
		State:    newGameState(controller),
	}
	that.mu.Unlock()

	that.announceIfWon(ctx, result)

	return result, nil
}

// BotTurn lets the random opponent play a whole turn for the active player.
func (that *GameManager) BotTurn(ctx context.Context, id string) (*TurnResult, error) {
	that.mu.Lock()

	controller, err := that.session(id)
	if err != nil {
		that.mu.Unlock()
		return nil, err
	}

	outcomes, err := that.bot.MakeTurn(controller)
	if err != nil {
		that.mu.Unlock()
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	result := &TurnResult{
		Outcomes: outcomes,
		State:    newGameState(controller),
	}
	that.mu.Unlock()

	that.announceIfWon(ctx, result)

	return result, nil
}

// SaveGame stores a snapshot of the session for the first time and returns its identifier.
func (that *GameManager) SaveGame(ctx context.Context, id string) (string, error) {
	snapshot, err := that.snapshot(id)
	if err != nil {
		return "", err
	}

	storedID, err := that.gameRepo.Save(ctx, snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to save game: %w", err)
	}

	that.logger.Info("game saved", "gameID", storedID)

	return storedID, nil
}

// UpdateGame overwrites the stored copy of the session.
func (that *GameManager) UpdateGame(ctx context.Context, id string) error {
	snapshot, err := that.snapshot(id)
	if err != nil {
		return err
	}

	if err = that.gameRepo.Update(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("game updated", "gameID", id)

	return nil
}

// LoadGame replaces the session with the stored game. On failure the current
// session is kept.
func (that *GameManager) LoadGame(ctx context.Context, id string) (*GameState, error) {
	game, err := that.gameRepo.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	controller := checkers.NewController(game)

	that.mu.Lock()
	that.sessions[game.ID()] = controller
	state := newGameState(controller)
	that.mu.Unlock()

	that.logger.Info("game loaded", "gameID", game.ID())

	return state, nil
}

// DeleteSavedGame removes a stored game. A live session with the same ID keeps running.
func (that *GameManager) DeleteSavedGame(ctx context.Context, id string) error {
	if err := that.gameRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete saved game: %w", err)
	}

	that.logger.Info("saved game deleted", "gameID", id)

	return nil
}

func (that *GameManager) snapshot(id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.session(id)
	if err != nil {
		return nil, err
	}

	return controller.Game(), nil
}

// session must be called with mu held.
func (that *GameManager) session(id string) (*checkers.Controller, error) {
	controller, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return controller, nil
}

// announceIfWon notifies about a win. Notification failures are logged only.
func (that *GameManager) announceIfWon(ctx context.Context, result *TurnResult) {
	if len(result.Outcomes) == 0 {
		return
	}

	last := result.Outcomes[len(result.Outcomes)-1]
	if last.Winner == nil {
		return
	}

	log := that.logger.With("method", "announceIfWon", "gameID", result.State.Game.ID())

	if err := that.notifier.AnnounceWin(context.WithoutCancel(ctx), result.State.Game, *last.Winner); err != nil {
		log.Error("failed to announce win", "error", err)
		return
	}

	log.Info("game won", "winner", last.Winner.Username)
}
