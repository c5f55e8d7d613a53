package checkers

import (
	"testing"

	"github.com/rocketscienceinc/checkers-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(col, row int) entity.Position {
	return entity.NewPosition(col, row)
}

func top(id, col, row int) entity.Piece {
	return entity.Piece{ID: id, Side: entity.SideTop, Position: pos(col, row)}
}

func bottom(id, col, row int) entity.Piece {
	return entity.Piece{ID: id, Side: entity.SideBottom, Position: pos(col, row)}
}

func king(piece entity.Piece) entity.Piece {
	piece.IsKing = true
	return piece
}

// newBoard builds a game holding only the given pieces with active to move.
func newBoard(t *testing.T, active entity.Side, pieces ...entity.Piece) *entity.Game {
	t.Helper()

	counts := map[entity.Side]int{}
	for _, piece := range pieces {
		counts[piece.Side]++
	}

	ongoing := counts[entity.SideTop] > 0 && counts[entity.SideBottom] > 0

	players := []entity.Player{
		{Username: "Player 1", Side: entity.SideTop, RemainingPieces: counts[entity.SideTop]},
		{Username: "Player 2", Side: entity.SideBottom, RemainingPieces: counts[entity.SideBottom]},
	}
	players[active-1].IsActive = ongoing

	game, err := entity.RestoreGame("test", "test", players, pieces)
	require.NoError(t, err)

	return game
}

func destinations(candidates []Candidate) []entity.Position {
	var out []entity.Position
	for _, candidate := range candidates {
		out = append(out, candidate.To)
	}
	return out
}

func TestCandidates(t *testing.T) {
	t.Run("Top man moves down only", func(t *testing.T) {
		// Given: a fresh game
		game := entity.NewGame("g", "Game 1")
		piece, _ := game.OccupantAt(pos(2, 3))

		// When: generating candidates for a front-row top piece
		candidates := Candidates(game, piece)

		// Then: only the two downward diagonals are offered
		assert.Equal(t, []Candidate{{To: pos(1, 4)}, {To: pos(3, 4)}}, candidates)
	})

	t.Run("Bottom man moves up only", func(t *testing.T) {
		game := newBoard(t, entity.SideBottom, bottom(1, 4, 5), top(2, 8, 1))

		candidates := Candidates(game, bottom(1, 4, 5))

		assert.Equal(t, []entity.Position{pos(3, 4), pos(5, 4)}, destinations(candidates))
	})

	t.Run("King moves in all four directions", func(t *testing.T) {
		piece := king(top(1, 4, 4))
		game := newBoard(t, entity.SideTop, piece, bottom(2, 8, 8))

		candidates := Candidates(game, piece)

		assert.ElementsMatch(t,
			[]entity.Position{pos(3, 3), pos(5, 3), pos(3, 5), pos(5, 5)},
			destinations(candidates))
	})

	t.Run("Own pieces block and are never jumped", func(t *testing.T) {
		// Given: a fresh game
		game := entity.NewGame("g", "Game 1")
		piece, _ := game.OccupantAt(pos(4, 1))

		// When: generating candidates for a back-row piece
		candidates := Candidates(game, piece)

		// Then: nothing is available
		assert.Empty(t, candidates)
	})

	t.Run("Capture landing is added next to plain moves", func(t *testing.T) {
		// Given: an opposing piece down-left with an empty landing
		game := newBoard(t, entity.SideTop, top(1, 4, 1), bottom(2, 3, 2))

		// When: generating candidates
		candidates := Candidates(game, top(1, 4, 1))

		// Then: the plain move and the jump are both offered
		assert.Equal(t, []Candidate{
			{To: pos(2, 3), Capture: true},
			{To: pos(5, 2)},
		}, candidates)
	})

	t.Run("Landing off the board is excluded", func(t *testing.T) {
		game := newBoard(t, entity.SideTop, top(1, 2, 1), bottom(2, 1, 2))

		candidates := Candidates(game, top(1, 2, 1))

		assert.Equal(t, []Candidate{{To: pos(3, 2)}}, candidates)
	})

	t.Run("Occupied landing is excluded", func(t *testing.T) {
		game := newBoard(t, entity.SideTop, top(1, 4, 1), bottom(2, 3, 2), bottom(3, 2, 3))

		candidates := Candidates(game, top(1, 4, 1))

		assert.Equal(t, []Candidate{{To: pos(5, 2)}}, candidates)
	})

	t.Run("Inactive owner gets nothing", func(t *testing.T) {
		game := entity.NewGame("g", "Game 1")
		piece, _ := game.OccupantAt(pos(1, 6))

		assert.Empty(t, Candidates(game, piece))
	})
}

func TestCaptureCandidates(t *testing.T) {
	game := newBoard(t, entity.SideTop, top(1, 4, 1), bottom(2, 3, 2))

	captures := CaptureCandidates(game, top(1, 4, 1))

	require.Len(t, captures, 1)
	assert.Equal(t, pos(2, 3), captures[0].To)
}
