package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

type GameRepository interface {
	Save(ctx context.Context, game *entity.Game) (string, error)
	Update(ctx context.Context, game *entity.Game) error
	Load(ctx context.Context, id string) (*entity.Game, error)
	Delete(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(id string) string {
	return "game:" + id
}

func (that *dbGame) Save(ctx context.Context, game *entity.Game) (string, error) {
	gameJSON, err := json.Marshal(newGameRecord(game))
	if err != nil {
		return "", fmt.Errorf("could not marshal game: %w", err)
	}

	created, err := that.client.SetNX(ctx, gameKey(game.ID()), gameJSON, 0).Result()
	if err != nil {
		return "", fmt.Errorf("failed to set game: %w", err)
	}

	if !created {
		return "", fmt.Errorf("%w: %s", apperror.ErrGameAlreadyExists, game.ID())
	}

	return game.ID(), nil
}

func (that *dbGame) Update(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(newGameRecord(game))
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	updated, err := that.client.SetXX(ctx, gameKey(game.ID()), gameJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	if !updated {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, game.ID())
	}

	return nil
}

func (that *dbGame) Load(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var record gameRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return record.toEntity()
}

func (that *dbGame) Delete(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return nil
}
