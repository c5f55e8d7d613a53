package checkers

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Select(t *testing.T) {
	t.Run("Selecting an active piece returns its candidates", func(t *testing.T) {
		// Given: a fresh game
		controller := NewController(entity.NewGame("g", "Game 1"))

		// When: the top player selects a front-row piece
		candidates, err := controller.SelectAt(pos(2, 3))

		// Then: the controller awaits a destination
		require.NoError(t, err)
		assert.Len(t, candidates, 2)
		assert.Equal(t, StateAwaitingDestination, controller.State())
		selected, ok := controller.Selected()
		require.True(t, ok)
		assert.Equal(t, 9, selected)
	})

	t.Run("Selecting an opponent piece is rejected", func(t *testing.T) {
		controller := NewController(entity.NewGame("g", "Game 1"))

		_, err := controller.SelectAt(pos(1, 6))

		require.ErrorIs(t, err, apperror.ErrInvalidSelection)
		assert.Equal(t, StateAwaitingSelection, controller.State())
	})

	t.Run("Selecting an empty square is rejected", func(t *testing.T) {
		controller := NewController(entity.NewGame("g", "Game 1"))

		_, err := controller.SelectAt(pos(4, 4))

		require.ErrorIs(t, err, apperror.ErrInvalidSelection)
	})

	t.Run("Selecting an unknown id is rejected", func(t *testing.T) {
		controller := NewController(entity.NewGame("g", "Game 1"))

		_, err := controller.Select(99)

		require.ErrorIs(t, err, apperror.ErrInvalidSelection)
	})

	t.Run("Reselecting switches the piece", func(t *testing.T) {
		controller := NewController(entity.NewGame("g", "Game 1"))

		_, err := controller.SelectAt(pos(2, 3))
		require.NoError(t, err)
		_, err = controller.SelectAt(pos(4, 3))
		require.NoError(t, err)

		selected, _ := controller.Selected()
		assert.Equal(t, 10, selected)
	})

	t.Run("Cancel drops the selection", func(t *testing.T) {
		controller := NewController(entity.NewGame("g", "Game 1"))
		_, err := controller.SelectAt(pos(2, 3))
		require.NoError(t, err)

		controller.Cancel()

		_, ok := controller.Selected()
		assert.False(t, ok)
		assert.Equal(t, StateAwaitingSelection, controller.State())
	})
}

func TestController_Move(t *testing.T) {
	t.Run("Moving onto an own piece is rejected without mutation", func(t *testing.T) {
		// Given: a fresh game with the top piece at (4,1) selected
		game := entity.NewGame("g", "Game 1")
		controller := NewController(game)
		before := game.Clone()

		_, err := controller.SelectAt(pos(4, 1))
		require.NoError(t, err)

		// When: it tries to move onto its own piece at (3,2)
		outcome, err := controller.Move(pos(3, 2))

		// Then: the move is illegal and nothing changed
		require.ErrorIs(t, err, apperror.ErrIllegalDestination)
		assert.Nil(t, outcome)
		assert.Equal(t, before.Pieces(), game.Pieces())
		assert.Equal(t, before.Players(), game.Players())
	})

	t.Run("Moving without a selection is rejected", func(t *testing.T) {
		controller := NewController(entity.NewGame("g", "Game 1"))

		_, err := controller.Move(pos(1, 4))

		require.ErrorIs(t, err, apperror.ErrNoSelection)
	})

	t.Run("Plain move ends the turn", func(t *testing.T) {
		// Given: a fresh game
		game := entity.NewGame("g", "Game 1")
		controller := NewController(game)

		// When: top plays (2,3) -> (1,4)
		outcome, err := controller.Play(MoveRequest{PieceID: 9, To: pos(1, 4)})

		// Then: the piece moved and bottom is active
		require.NoError(t, err)
		assert.Equal(t, ResultTurnComplete, outcome.Result)
		assert.Nil(t, outcome.Captured)
		assert.Equal(t, pos(2, 3), outcome.From)
		piece, _ := game.Piece(9)
		assert.Equal(t, pos(1, 4), piece.Position)
		assert.False(t, game.Player(entity.SideTop).IsActive)
		assert.True(t, game.Player(entity.SideBottom).IsActive)
		assert.Equal(t, StateAwaitingSelection, controller.State())
	})

	t.Run("Jump removes the midpoint piece and decrements its owner", func(t *testing.T) {
		// Given: top at (4,1), bottom at (3,2), (2,3) empty
		game := newBoard(t, entity.SideTop, top(1, 4, 1), bottom(2, 3, 2), bottom(3, 8, 8))
		controller := NewController(game)

		// When: top jumps to (2,3)
		outcome, err := controller.Play(MoveRequest{PieceID: 1, To: pos(2, 3)})

		// Then: the bottom piece is gone and bottom lost one piece
		require.NoError(t, err)
		require.NotNil(t, outcome.Captured)
		assert.Equal(t, 2, outcome.Captured.ID)
		_, ok := game.Piece(2)
		assert.False(t, ok)
		assert.Equal(t, 1, game.Player(entity.SideBottom).RemainingPieces)
		assert.Equal(t, ResultTurnComplete, outcome.Result)
		assert.True(t, game.Player(entity.SideBottom).IsActive)
		require.NoError(t, game.Validate())
	})

	t.Run("Top piece reaching the last row is crowned", func(t *testing.T) {
		game := newBoard(t, entity.SideTop, top(1, 3, 7), bottom(2, 8, 1))
		controller := NewController(game)

		outcome, err := controller.Play(MoveRequest{PieceID: 1, To: pos(4, 8)})

		require.NoError(t, err)
		assert.True(t, outcome.Promoted)
		piece, _ := game.Piece(1)
		assert.True(t, piece.IsKing)
	})

	t.Run("Bottom piece reaching the first row is crowned", func(t *testing.T) {
		game := newBoard(t, entity.SideBottom, bottom(1, 3, 2), top(2, 8, 8))
		controller := NewController(game)

		outcome, err := controller.Play(MoveRequest{PieceID: 1, To: pos(2, 1)})

		require.NoError(t, err)
		assert.True(t, outcome.Promoted)
	})

	t.Run("A king stays a king when leaving the back rank", func(t *testing.T) {
		game := newBoard(t, entity.SideTop, king(top(1, 4, 8)), bottom(2, 8, 1))
		controller := NewController(game)

		outcome, err := controller.Play(MoveRequest{PieceID: 1, To: pos(3, 7)})

		require.NoError(t, err)
		assert.False(t, outcome.Promoted)
		piece, _ := game.Piece(1)
		assert.True(t, piece.IsKing)
	})

	t.Run("Rejected Play restores the previous selection", func(t *testing.T) {
		controller := NewController(entity.NewGame("g", "Game 1"))
		_, err := controller.SelectAt(pos(2, 3))
		require.NoError(t, err)

		_, err = controller.Play(MoveRequest{PieceID: 10, To: pos(8, 8)})

		require.ErrorIs(t, err, apperror.ErrIllegalDestination)
		selected, ok := controller.Selected()
		require.True(t, ok)
		assert.Equal(t, 9, selected)
	})
}

func TestController_ForcedContinuation(t *testing.T) {
	// Given: top at (2,1) facing bottom pieces at (3,2) and (5,4)
	game := newBoard(t, entity.SideTop,
		top(1, 2, 1), top(2, 8, 1),
		bottom(3, 3, 2), bottom(4, 5, 4), bottom(5, 8, 7),
	)
	controller := NewController(game)

	// When: top captures (3,2)
	outcome, err := controller.Play(MoveRequest{PieceID: 1, To: pos(4, 3)})
	require.NoError(t, err)

	// Then: a further capture is pending for the same piece
	assert.Equal(t, ResultContinueCapture, outcome.Result)
	assert.True(t, controller.InContinuation())
	assert.True(t, game.Player(entity.SideTop).IsActive)
	assert.Equal(t, []Candidate{{To: pos(6, 5), Capture: true}}, controller.Candidates())
	assert.Equal(t, []MoveRequest{{PieceID: 1, To: pos(6, 5)}}, controller.LegalMoves())

	t.Run("Another piece cannot be selected", func(t *testing.T) {
		_, err := controller.Select(2)

		require.ErrorIs(t, err, apperror.ErrInvalidSelection)
	})

	t.Run("A quiet move is not allowed", func(t *testing.T) {
		_, err := controller.Move(pos(3, 4))

		require.ErrorIs(t, err, apperror.ErrIllegalDestination)
	})

	t.Run("Cancel does not break the chain", func(t *testing.T) {
		controller.Cancel()

		selected, ok := controller.Selected()
		require.True(t, ok)
		assert.Equal(t, 1, selected)
	})

	t.Run("Finishing the chain passes the turn", func(t *testing.T) {
		outcome, err := controller.Move(pos(6, 5))

		require.NoError(t, err)
		assert.Equal(t, ResultTurnComplete, outcome.Result)
		assert.False(t, controller.InContinuation())
		assert.True(t, game.Player(entity.SideBottom).IsActive)
		assert.Equal(t, 1, game.Player(entity.SideBottom).RemainingPieces)
	})
}

func TestController_Win(t *testing.T) {
	// Given: bottom has a single piece in front of a top piece
	game := newBoard(t, entity.SideTop, top(1, 2, 1), bottom(2, 3, 2))
	controller := NewController(game)

	// When: top captures it
	outcome, err := controller.Play(MoveRequest{PieceID: 1, To: pos(4, 3)})

	// Then: the game is over and top wins
	require.NoError(t, err)
	assert.Equal(t, ResultGameOver, outcome.Result)
	require.NotNil(t, outcome.Winner)
	assert.Equal(t, entity.SideTop, outcome.Winner.Side)
	assert.False(t, outcome.Winner.IsActive)
	assert.Equal(t, 0, game.Player(entity.SideBottom).RemainingPieces)
	assert.True(t, game.Player(entity.SideBottom).HasLost())
	assert.Equal(t, StateGameOver, controller.State())
	_, active := game.ActivePlayer()
	assert.False(t, active)

	// Then: nothing else is accepted
	_, err = controller.Select(1)
	require.ErrorIs(t, err, apperror.ErrGameFinished)
	_, err = controller.Move(pos(5, 4))
	require.ErrorIs(t, err, apperror.ErrGameFinished)
	_, err = controller.Play(MoveRequest{PieceID: 1, To: pos(5, 4)})
	require.ErrorIs(t, err, apperror.ErrGameFinished)
	assert.Empty(t, controller.LegalMoves())

	// Then: a controller over the finished game starts in game over
	assert.Equal(t, StateGameOver, NewController(game).State())
}

func TestController_GameSnapshot(t *testing.T) {
	// Given: a controller over a fresh board
	game := entity.NewGame("snapshot", "Game 1")
	controller := NewController(game)

	// When: the snapshot is mutated
	snapshot := controller.Game()
	snapshot.Finish()

	// Then: the wrapped game keeps its active player
	assert.NotSame(t, game, snapshot)
	_, active := game.ActivePlayer()
	assert.True(t, active)
	candidates, err := controller.Select(9)
	require.NoError(t, err)
	assert.NotEmpty(t, candidates)
}

func TestController_LegalMoves(t *testing.T) {
	controller := NewController(entity.NewGame("g", "Game 1"))

	moves := controller.LegalMoves()

	assert.Equal(t, []MoveRequest{
		{PieceID: 9, To: pos(1, 4)}, {PieceID: 9, To: pos(3, 4)},
		{PieceID: 10, To: pos(3, 4)}, {PieceID: 10, To: pos(5, 4)},
		{PieceID: 11, To: pos(5, 4)}, {PieceID: 11, To: pos(7, 4)},
		{PieceID: 12, To: pos(7, 4)},
	}, moves)
}

// TestController_RandomPlayouts plays random legal games and checks the
// invariants after every committed move.
func TestController_RandomPlayouts(t *testing.T) {
	const maxMoves = 400

	for seed := int64(1); seed <= 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		game := entity.NewGame("g", "random")
		controller := NewController(game)

		for i := 0; i < maxMoves && controller.State() != StateGameOver; i++ {
			moves := controller.LegalMoves()
			if len(moves) == 0 {
				break
			}

			req := moves[rng.Intn(len(moves))]
			before, _ := game.Piece(req.PieceID)
			activeBefore, _ := game.ActivePlayer()
			opponentBefore := game.Player(activeBefore.Side.Opponent()).RemainingPieces
			continuing := controller.InContinuation()

			outcome, err := controller.Play(req)
			require.NoError(t, err, "seed %d move %d", seed, i)

			after, _ := game.Piece(req.PieceID)
			jump := isJump(before.Position, req.To)

			if continuing {
				assert.True(t, jump, "continuation must capture")
			}
			if !before.IsKing {
				dRow := after.Position.Row - before.Position.Row
				assert.Equal(t, before.Side.Forward(), sign(dRow), "man moved backwards")
			}
			if before.IsKing {
				assert.True(t, after.IsKing, "king lost its crown")
			}
			if jump {
				assert.Equal(t, opponentBefore-1, game.Player(activeBefore.Side.Opponent()).RemainingPieces)
				require.NotNil(t, outcome.Captured)
			} else {
				assert.Equal(t, opponentBefore, game.Player(activeBefore.Side.Opponent()).RemainingPieces)
			}
			if outcome.Result == ResultContinueCapture {
				stillActive, _ := game.ActivePlayer()
				assert.Equal(t, activeBefore.Side, stillActive.Side)
			}

			require.NoError(t, game.Validate(), "seed %d move %d", seed, i)
		}
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
