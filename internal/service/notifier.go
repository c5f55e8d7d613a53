package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

// WinNotifier tells the presentation side that a game has been won.
type WinNotifier interface {
	AnnounceWin(ctx context.Context, game *entity.Game, winner entity.Player) error
}

// WinAnnouncement is the message published for a won game.
type WinAnnouncement struct {
	GameID          string `json:"game_id"`
	GameName        string `json:"game_name"`
	Winner          string `json:"winner"`
	Side            string `json:"side"`
	RemainingPieces int    `json:"remaining_pieces"`
	Message         string `json:"message"`
}

func NewWinAnnouncement(game *entity.Game, winner entity.Player) WinAnnouncement {
	return WinAnnouncement{
		GameID:          game.ID(),
		GameName:        game.Name(),
		Winner:          winner.Username,
		Side:            winner.Side.String(),
		RemainingPieces: winner.RemainingPieces,
		Message:         fmt.Sprintf("%s won the game with %d remaining pieces", winner.Username, winner.RemainingPieces),
	}
}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier announces wins in the application log.
func NewLogNotifier(logger *slog.Logger) WinNotifier {
	return &logNotifier{
		logger: logger.With("component", "win-notifier"),
	}
}

func (that *logNotifier) AnnounceWin(_ context.Context, game *entity.Game, winner entity.Player) error {
	announcement := NewWinAnnouncement(game, winner)

	that.logger.Info(announcement.Message, "gameID", announcement.GameID, "winner", announcement.Winner)

	return nil
}

type redisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier publishes wins as JSON on a Redis Pub/Sub channel.
func NewRedisNotifier(client *redis.Client, channel string) WinNotifier {
	return &redisNotifier{
		client:  client,
		channel: channel,
	}
}

func (that *redisNotifier) AnnounceWin(ctx context.Context, game *entity.Game, winner entity.Player) error {
	payload, err := json.Marshal(NewWinAnnouncement(game, winner))
	if err != nil {
		return fmt.Errorf("failed to marshal win announcement: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish win announcement: %w", err)
	}

	return nil
}
