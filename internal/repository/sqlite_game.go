package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

type sqliteGame struct {
	conn *sql.DB
}

// NewSQLiteGameRepository stores games relationally in the games, players and pieces tables.
func NewSQLiteGameRepository(conn *sql.DB) GameRepository {
	return &sqliteGame{
		conn: conn,
	}
}

func (that *sqliteGame) Save(ctx context.Context, game *entity.Game) (string, error) {
	record := newGameRecord(game)

	err := that.inTx(ctx, func(tx *sql.Tx) error {
		exists, err := gameExists(ctx, tx, record.ID)
		if err != nil {
			return err
		}

		if exists {
			return fmt.Errorf("%w: %s", apperror.ErrGameAlreadyExists, record.ID)
		}

		if _, err = tx.ExecContext(ctx, `INSERT INTO games (id, name) VALUES (?, ?)`, record.ID, record.Name); err != nil {
			return fmt.Errorf("can't save game: %w", err)
		}

		return insertChildren(ctx, tx, record)
	})
	if err != nil {
		return "", err
	}

	return record.ID, nil
}

func (that *sqliteGame) Update(ctx context.Context, game *entity.Game) error {
	record := newGameRecord(game)

	return that.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE games SET name = ? WHERE id = ?`, record.Name, record.ID)
		if err != nil {
			return fmt.Errorf("can't update game: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("can't update game: %w", err)
		}

		if affected == 0 {
			return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, record.ID)
		}

		if err = deleteChildren(ctx, tx, record.ID); err != nil {
			return err
		}

		return insertChildren(ctx, tx, record)
	})
}

func (that *sqliteGame) Load(ctx context.Context, id string) (*entity.Game, error) {
	record := gameRecord{ID: id}

	err := that.conn.QueryRowContext(ctx, `SELECT name FROM games WHERE id = ?`, id).Scan(&record.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game: %w", err)
	}

	if record.Players, err = that.loadPlayers(ctx, id); err != nil {
		return nil, err
	}

	if record.Pieces, err = that.loadPieces(ctx, id); err != nil {
		return nil, err
	}

	return record.toEntity()
}

func (that *sqliteGame) Delete(ctx context.Context, id string) error {
	return that.inTx(ctx, func(tx *sql.Tx) error {
		if err := deleteChildren(ctx, tx, id); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("can't delete game: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("can't delete game: %w", err)
		}

		if affected == 0 {
			return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
		}

		return nil
	})
}

func (that *sqliteGame) loadPlayers(ctx context.Context, id string) ([]playerRecord, error) {
	query := `SELECT username, side, is_active, pieces_count, color_hex, accent_color_hex
		FROM players WHERE game_id = ? ORDER BY side`

	rows, err := that.conn.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("can't find players: %w", err)
	}
	defer rows.Close()

	var players []playerRecord
	for rows.Next() {
		var p playerRecord
		if err = rows.Scan(&p.Username, &p.Side, &p.IsActive, &p.PiecesCount, &p.ColorHex, &p.AccentColorHex); err != nil {
			return nil, fmt.Errorf("can't scan player: %w", err)
		}
		players = append(players, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read players: %w", err)
	}

	return players, nil
}

func (that *sqliteGame) loadPieces(ctx context.Context, id string) ([]pieceRecord, error) {
	query := `SELECT piece_id, side, is_king, x, y FROM pieces WHERE game_id = ? ORDER BY piece_id`

	rows, err := that.conn.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("can't find pieces: %w", err)
	}
	defer rows.Close()

	var pieces []pieceRecord
	for rows.Next() {
		var p pieceRecord
		if err = rows.Scan(&p.ID, &p.Side, &p.IsKing, &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("can't scan piece: %w", err)
		}
		pieces = append(pieces, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read pieces: %w", err)
	}

	return pieces, nil
}

func (that *sqliteGame) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}

func gameExists(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("can't check game: %w", err)
	}

	return count > 0, nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, record gameRecord) error {
	playerQuery := `INSERT INTO players (game_id, side, username, is_active, pieces_count, color_hex, accent_color_hex)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	for _, p := range record.Players {
		if _, err := tx.ExecContext(ctx, playerQuery,
			record.ID, p.Side, p.Username, p.IsActive, p.PiecesCount, p.ColorHex, p.AccentColorHex); err != nil {
			return fmt.Errorf("can't save player: %w", err)
		}
	}

	pieceQuery := `INSERT INTO pieces (game_id, piece_id, side, is_king, x, y) VALUES (?, ?, ?, ?, ?, ?)`

	for _, p := range record.Pieces {
		if _, err := tx.ExecContext(ctx, pieceQuery, record.ID, p.ID, p.Side, p.IsKing, p.X, p.Y); err != nil {
			return fmt.Errorf("can't save piece: %w", err)
		}
	}

	return nil
}

func deleteChildren(ctx context.Context, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE game_id = ?`, id); err != nil {
		return fmt.Errorf("can't delete players: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pieces WHERE game_id = ?`, id); err != nil {
		return fmt.Errorf("can't delete pieces: %w", err)
	}

	return nil
}
