package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/checkers-backend/testing/suite"
)

func sqliteRepo(t *testing.T) (context.Context, GameRepository) {
	ctx, st := suite.NewSQLite(t)
	return ctx, NewSQLiteGameRepository(st.SQL)
}

func TestGameRepository_SQLite(t *testing.T) {
	runGameRepositoryTests(t, sqliteRepo)
}
