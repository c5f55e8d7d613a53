package repository

import (
	"fmt"

	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

// gameRecord is the storage representation of a game. Entities carry no storage concerns.
type gameRecord struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Players []playerRecord `json:"players"`
	Pieces  []pieceRecord  `json:"pieces"`
}

type playerRecord struct {
	Username       string `json:"username"`
	Side           int    `json:"side"`
	IsActive       bool   `json:"is_active"`
	PiecesCount    int    `json:"pieces_count"`
	ColorHex       string `json:"color_hex"`
	AccentColorHex string `json:"accent_color_hex"`
}

type pieceRecord struct {
	ID     int  `json:"id"`
	Side   int  `json:"side"`
	IsKing bool `json:"is_king"`
	X      int  `json:"x"`
	Y      int  `json:"y"`
}

func newGameRecord(game *entity.Game) gameRecord {
	record := gameRecord{
		ID:   game.ID(),
		Name: game.Name(),
	}

	for _, player := range game.Players() {
		record.Players = append(record.Players, playerRecord{
			Username:       player.Username,
			Side:           int(player.Side),
			IsActive:       player.IsActive,
			PiecesCount:    player.RemainingPieces,
			ColorHex:       player.Color.Hex(),
			AccentColorHex: player.AccentColor.Hex(),
		})
	}

	for _, piece := range game.Pieces() {
		record.Pieces = append(record.Pieces, pieceRecord{
			ID:     piece.ID,
			Side:   int(piece.Side),
			IsKing: piece.IsKing,
			X:      piece.Position.Col,
			Y:      piece.Position.Row,
		})
	}

	return record
}

// toEntity rebuilds the game. Colors are parsed back from hex; positions are taken as stored.
func (that gameRecord) toEntity() (*entity.Game, error) {
	players := make([]entity.Player, 0, len(that.Players))
	for _, p := range that.Players {
		color, err := entity.ParseHexColor(p.ColorHex)
		if err != nil {
			return nil, fmt.Errorf("player %q color: %w", p.Username, err)
		}

		accent, err := entity.ParseHexColor(p.AccentColorHex)
		if err != nil {
			return nil, fmt.Errorf("player %q accent color: %w", p.Username, err)
		}

		players = append(players, entity.Player{
			Username:        p.Username,
			Side:            entity.Side(p.Side),
			IsActive:        p.IsActive,
			RemainingPieces: p.PiecesCount,
			Color:           color,
			AccentColor:     accent,
		})
	}

	pieces := make([]entity.Piece, 0, len(that.Pieces))
	for _, p := range that.Pieces {
		pieces = append(pieces, entity.Piece{
			ID:       p.ID,
			Side:     entity.Side(p.Side),
			IsKing:   p.IsKing,
			Position: entity.NewPosition(p.X, p.Y),
		})
	}

	game, err := entity.RestoreGame(that.ID, that.Name, players, pieces)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", that.ID, err)
	}

	return game, nil
}
