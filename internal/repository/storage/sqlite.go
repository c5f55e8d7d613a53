package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		game_id          TEXT    NOT NULL REFERENCES games (id),
		side             INTEGER NOT NULL,
		username         TEXT    NOT NULL,
		is_active        INTEGER NOT NULL,
		pieces_count     INTEGER NOT NULL,
		color_hex        TEXT    NOT NULL,
		accent_color_hex TEXT    NOT NULL,
		PRIMARY KEY (game_id, side)
	)`,
	`CREATE TABLE IF NOT EXISTS pieces (
		game_id  TEXT    NOT NULL REFERENCES games (id),
		piece_id INTEGER NOT NULL,
		side     INTEGER NOT NULL,
		is_king  INTEGER NOT NULL,
		x        INTEGER NOT NULL,
		y        INTEGER NOT NULL,
		PRIMARY KEY (game_id, piece_id)
	)`,
}

type Storage struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*Storage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

func (that *Storage) Init(ctx context.Context) error {
	for _, query := range schema {
		if _, err := that.Connection.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("can't create table: %w", err)
		}
	}

	return nil
}

func (that *Storage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}
