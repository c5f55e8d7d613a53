package checkers

import (
	"fmt"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

// Controller drives the turns of a single game. It is the only mutator of the
// game it wraps and is not safe for concurrent use.
type Controller struct {
	game  *entity.Game
	state State

	selected   int
	candidates []Candidate
	// locked is set while the selected piece must keep capturing.
	locked bool
}

type selection struct {
	state      State
	selected   int
	candidates []Candidate
	locked     bool
}

func NewController(game *entity.Game) *Controller {
	controller := &Controller{game: game}
	if game.IsOver() {
		controller.state = StateGameOver
	}
	return controller
}

// Game returns a snapshot of the wrapped game.
func (that *Controller) Game() *entity.Game {
	return that.game.Clone()
}

func (that *Controller) State() State {
	return that.state
}

// Selected returns the selected piece id, if any.
func (that *Controller) Selected() (int, bool) {
	if that.state != StateAwaitingDestination {
		return 0, false
	}
	return that.selected, true
}

func (that *Controller) Candidates() []Candidate {
	return append([]Candidate(nil), that.candidates...)
}

// InContinuation reports whether the active player is in the middle of a capture chain.
func (that *Controller) InContinuation() bool {
	return that.locked
}

// Select picks a piece of the active player and returns its destinations.
func (that *Controller) Select(pieceID int) ([]Candidate, error) {
	if that.state == StateGameOver {
		return nil, apperror.ErrGameFinished
	}

	piece, ok := that.game.Piece(pieceID)
	if !ok {
		return nil, fmt.Errorf("%w: piece %d not found", apperror.ErrInvalidSelection, pieceID)
	}

	if !that.game.IsActive(piece.Side) {
		return nil, fmt.Errorf("%w: piece %d belongs to the inactive player", apperror.ErrInvalidSelection, pieceID)
	}

	if that.locked {
		if pieceID != that.selected {
			return nil, fmt.Errorf("%w: piece %d must continue capturing", apperror.ErrInvalidSelection, that.selected)
		}
		return that.Candidates(), nil
	}

	that.selected = pieceID
	that.candidates = Candidates(that.game, piece)
	that.state = StateAwaitingDestination

	return that.Candidates(), nil
}

// SelectAt picks the piece standing on pos.
func (that *Controller) SelectAt(pos entity.Position) ([]Candidate, error) {
	if that.state == StateGameOver {
		return nil, apperror.ErrGameFinished
	}

	piece, ok := that.game.OccupantAt(pos)
	if !ok {
		return nil, fmt.Errorf("%w: no piece at %s", apperror.ErrInvalidSelection, pos)
	}

	return that.Select(piece.ID)
}

// Cancel drops the current selection. A capture chain cannot be cancelled.
func (that *Controller) Cancel() {
	if that.locked || that.state != StateAwaitingDestination {
		return
	}
	that.clearSelection()
}

// Move commits the selected piece to dest. A rejected move leaves the game untouched.
func (that *Controller) Move(dest entity.Position) (*Outcome, error) {
	switch that.state {
	case StateGameOver:
		return nil, apperror.ErrGameFinished
	case StateAwaitingSelection:
		return nil, apperror.ErrNoSelection
	}

	piece, ok := that.game.Piece(that.selected)
	if !ok {
		return nil, fmt.Errorf("%w: selected piece %d is gone", apperror.ErrInvariantViolation, that.selected)
	}

	if _, ok = findCandidate(that.candidates, dest); !ok {
		return nil, fmt.Errorf("%w: piece %d cannot move to %s", apperror.ErrIllegalDestination, piece.ID, dest)
	}

	if that.game.IsOccupied(dest) {
		return nil, fmt.Errorf("%w: destination %s is occupied", apperror.ErrInvariantViolation, dest)
	}

	var captured *entity.Piece
	if isJump(piece.Position, dest) {
		victim, err := that.capturedBy(piece, dest)
		if err != nil {
			return nil, err
		}
		captured = &victim
	}

	outcome := &Outcome{
		PieceID:  piece.ID,
		From:     piece.Position,
		To:       dest,
		Captured: captured,
		Promoted: !piece.IsKing && piece.ReachesBackRank(dest),
	}

	if err := that.apply(outcome); err != nil {
		return nil, err
	}

	that.advance(outcome)

	return outcome, nil
}

// Play selects req.PieceID and moves it to req.To as one step. On rejection the
// previous selection is restored.
func (that *Controller) Play(req MoveRequest) (*Outcome, error) {
	saved := that.saveSelection()

	if _, err := that.Select(req.PieceID); err != nil {
		that.restoreSelection(saved)
		return nil, err
	}

	outcome, err := that.Move(req.To)
	if err != nil {
		that.restoreSelection(saved)
		return nil, err
	}

	return outcome, nil
}

// LegalMoves lists every request the active player may make right now.
func (that *Controller) LegalMoves() []MoveRequest {
	if that.state == StateGameOver {
		return nil
	}

	var moves []MoveRequest

	if that.locked {
		for _, candidate := range that.candidates {
			moves = append(moves, MoveRequest{PieceID: that.selected, To: candidate.To})
		}
		return moves
	}

	active, ok := that.game.ActivePlayer()
	if !ok {
		return nil
	}

	for _, piece := range that.game.PiecesOf(active.Side) {
		for _, candidate := range Candidates(that.game, piece) {
			moves = append(moves, MoveRequest{PieceID: piece.ID, To: candidate.To})
		}
	}

	return moves
}

func (that *Controller) capturedBy(piece entity.Piece, dest entity.Position) (entity.Piece, error) {
	mid := piece.Position.Midpoint(dest)

	victim, ok := that.game.OccupantAt(mid)
	if !ok {
		return entity.Piece{}, fmt.Errorf("%w: no piece to capture at %s", apperror.ErrInvariantViolation, mid)
	}

	if victim.Side == piece.Side {
		return entity.Piece{}, fmt.Errorf("%w: piece %d would capture its own side at %s",
			apperror.ErrInvariantViolation, piece.ID, mid)
	}

	if that.game.Player(victim.Side).RemainingPieces <= 0 {
		return entity.Piece{}, fmt.Errorf("%w: %s has no pieces to lose", apperror.ErrInvariantViolation, victim.Side)
	}

	return victim, nil
}

// apply performs an already validated move.
func (that *Controller) apply(outcome *Outcome) error {
	if err := that.game.MovePiece(outcome.PieceID, outcome.To); err != nil {
		return fmt.Errorf("failed to move piece: %w", err)
	}

	if outcome.Promoted {
		if err := that.game.CrownPiece(outcome.PieceID); err != nil {
			return fmt.Errorf("failed to crown piece: %w", err)
		}
	}

	if outcome.Captured != nil {
		if err := that.game.CapturePiece(outcome.Captured.ID); err != nil {
			return fmt.Errorf("failed to capture piece: %w", err)
		}
	}

	return nil
}

// advance moves the state machine forward after a committed move.
func (that *Controller) advance(outcome *Outcome) {
	if outcome.Captured != nil {
		if loser := that.game.Player(outcome.Captured.Side); loser.HasLost() {
			that.game.Finish()
			winner := that.game.Player(outcome.Captured.Side.Opponent())
			that.clearSelection()
			that.state = StateGameOver

			outcome.Winner = &winner
			outcome.Result = ResultGameOver
			return
		}

		moved, _ := that.game.Piece(outcome.PieceID)
		if next := CaptureCandidates(that.game, moved); len(next) > 0 {
			that.selected = moved.ID
			that.candidates = next
			that.locked = true
			that.state = StateAwaitingDestination

			outcome.Result = ResultContinueCapture
			return
		}
	}

	that.game.SwitchActivePlayer()
	that.clearSelection()
	outcome.Result = ResultTurnComplete
}

func (that *Controller) clearSelection() {
	that.selected = 0
	that.candidates = nil
	that.locked = false
	that.state = StateAwaitingSelection
}

func (that *Controller) saveSelection() selection {
	return selection{
		state:      that.state,
		selected:   that.selected,
		candidates: that.candidates,
		locked:     that.locked,
	}
}

func (that *Controller) restoreSelection(saved selection) {
	that.state = saved.state
	that.selected = saved.selected
	that.candidates = saved.candidates
	that.locked = saved.locked
}
