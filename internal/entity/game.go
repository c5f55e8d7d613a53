package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
)

var ErrInvalidGame = errors.New("invalid game state")

var (
	// TopLayout and BottomLayout are the starting squares of each side, in piece order.
	// Saved games depend on this table.
	TopLayout = [PiecesPerPlayer]Position{
		{2, 1}, {4, 1}, {6, 1}, {8, 1},
		{1, 2}, {3, 2}, {5, 2}, {7, 2},
		{2, 3}, {4, 3}, {6, 3}, {8, 3},
	}
	BottomLayout = [PiecesPerPlayer]Position{
		{1, 6}, {3, 6}, {5, 6}, {7, 6},
		{2, 7}, {4, 7}, {6, 7}, {8, 7},
		{1, 8}, {3, 8}, {5, 8}, {7, 8},
	}
)

// Game aggregates the two players and every live piece. Callers only get copies;
// mutation goes through the methods below.
type Game struct {
	id      string
	name    string
	players [2]*Player
	pieces  map[int]*Piece
	board   map[Position]int
}

// NewGame creates a game with the standard starting layout and the top player to move.
func NewGame(id, name string) *Game {
	game := &Game{
		id:     id,
		name:   name,
		pieces: make(map[int]*Piece, 2*PiecesPerPlayer),
		board:  make(map[Position]int, 2*PiecesPerPlayer),
	}

	top := NewPlayer("Player 1", SideTop, Silver, Gray)
	bottom := NewPlayer("Player 2", SideBottom, Gold, DarkOrange)
	top.IsActive = true

	game.players = [2]*Player{top, bottom}

	nextID := 1
	for _, layout := range []struct {
		side  Side
		table [PiecesPerPlayer]Position
	}{
		{SideTop, TopLayout},
		{SideBottom, BottomLayout},
	} {
		for _, pos := range layout.table {
			game.place(&Piece{ID: nextID, Side: layout.side, Position: pos})
			nextID++
		}
	}

	return game
}

// RestoreGame rebuilds a game from stored state without running placement logic.
func RestoreGame(id, name string, players []Player, pieces []Piece) (*Game, error) {
	if len(players) != 2 {
		return nil, fmt.Errorf("%w: expected 2 players, got %d", ErrInvalidGame, len(players))
	}

	game := &Game{
		id:     id,
		name:   name,
		pieces: make(map[int]*Piece, len(pieces)),
		board:  make(map[Position]int, len(pieces)),
	}

	for i := range players {
		player := players[i]
		if !player.Side.Valid() {
			return nil, fmt.Errorf("%w: player %q has no side", ErrInvalidGame, player.Username)
		}
		if game.players[player.Side-1] != nil {
			return nil, fmt.Errorf("%w: two players on side %s", ErrInvalidGame, player.Side)
		}
		game.players[player.Side-1] = &player
	}

	for i := range pieces {
		piece := pieces[i]
		if !piece.Side.Valid() {
			return nil, fmt.Errorf("%w: piece %d has no side", ErrInvalidGame, piece.ID)
		}
		if !piece.Position.InBounds() {
			return nil, fmt.Errorf("%w: piece %d off the board at %s", ErrInvalidGame, piece.ID, piece.Position)
		}
		if _, ok := game.pieces[piece.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate piece id %d", ErrInvalidGame, piece.ID)
		}
		if _, ok := game.board[piece.Position]; ok {
			return nil, fmt.Errorf("%w: two pieces at %s", ErrInvalidGame, piece.Position)
		}
		game.place(&piece)
	}

	if err := game.Validate(); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *Game) place(piece *Piece) {
	that.pieces[piece.ID] = piece
	that.board[piece.Position] = piece.ID
}

func (that *Game) ID() string {
	return that.id
}

func (that *Game) Name() string {
	return that.name
}

// Players returns copies of both players, top side first.
func (that *Game) Players() []Player {
	return []Player{*that.players[0], *that.players[1]}
}

func (that *Game) Player(side Side) Player {
	return *that.player(side)
}

func (that *Game) player(side Side) *Player {
	if side == SideBottom {
		return that.players[1]
	}
	return that.players[0]
}

// ActivePlayer returns the player to move, if any.
func (that *Game) ActivePlayer() (Player, bool) {
	for _, player := range that.players {
		if player.IsActive {
			return *player, true
		}
	}
	return Player{}, false
}

func (that *Game) IsActive(side Side) bool {
	return that.player(side).IsActive
}

// Pieces returns copies of all live pieces ordered by id.
func (that *Game) Pieces() []Piece {
	pieces := make([]Piece, 0, len(that.pieces))
	for _, piece := range that.pieces {
		pieces = append(pieces, *piece)
	}

	sort.Slice(pieces, func(i, j int) bool { return pieces[i].ID < pieces[j].ID })

	return pieces
}

func (that *Game) PiecesOf(side Side) []Piece {
	var pieces []Piece
	for _, piece := range that.Pieces() {
		if piece.Side == side {
			pieces = append(pieces, piece)
		}
	}
	return pieces
}

func (that *Game) Piece(id int) (Piece, bool) {
	piece, ok := that.pieces[id]
	if !ok {
		return Piece{}, false
	}
	return *piece, true
}

// OccupantAt returns the piece standing on pos.
func (that *Game) OccupantAt(pos Position) (Piece, bool) {
	id, ok := that.board[pos]
	if !ok {
		return Piece{}, false
	}
	return *that.pieces[id], true
}

func (that *Game) IsOccupied(pos Position) bool {
	_, ok := that.board[pos]
	return ok
}

// IsOver reports whether a player has no pieces left.
func (that *Game) IsOver() bool {
	return that.players[0].HasLost() || that.players[1].HasLost()
}

// Winner returns the player still holding pieces once the game is over.
func (that *Game) Winner() (Player, bool) {
	if !that.IsOver() {
		return Player{}, false
	}
	for _, player := range that.players {
		if !player.HasLost() {
			return *player, true
		}
	}
	return Player{}, false
}

// MovePiece relocates a piece to an empty square.
func (that *Game) MovePiece(id int, to Position) error {
	piece, ok := that.pieces[id]
	if !ok {
		return fmt.Errorf("%w: piece %d not found", apperror.ErrInvariantViolation, id)
	}
	if !to.InBounds() {
		return fmt.Errorf("%w: %s is off the board", apperror.ErrInvariantViolation, to)
	}
	if occupant, ok := that.board[to]; ok && occupant != id {
		return fmt.Errorf("%w: %s is occupied by piece %d", apperror.ErrInvariantViolation, to, occupant)
	}

	delete(that.board, piece.Position)
	piece.Position = to
	that.board[to] = id

	return nil
}

// CrownPiece makes a piece a king. Crowning is irreversible.
func (that *Game) CrownPiece(id int) error {
	piece, ok := that.pieces[id]
	if !ok {
		return fmt.Errorf("%w: piece %d not found", apperror.ErrInvariantViolation, id)
	}
	piece.IsKing = true
	return nil
}

// CapturePiece removes a piece and decrements its owner's remaining count.
func (that *Game) CapturePiece(id int) error {
	piece, ok := that.pieces[id]
	if !ok {
		return fmt.Errorf("%w: piece %d not found", apperror.ErrInvariantViolation, id)
	}

	owner := that.player(piece.Side)
	if owner.RemainingPieces <= 0 {
		return fmt.Errorf("%w: %s has no pieces left to lose", apperror.ErrInvariantViolation, piece.Side)
	}

	delete(that.board, piece.Position)
	delete(that.pieces, id)
	owner.RemainingPieces--

	return nil
}

// SwitchActivePlayer swaps the active flag of both players.
func (that *Game) SwitchActivePlayer() {
	for _, player := range that.players {
		player.IsActive = !player.IsActive
	}
}

// Finish deactivates both players.
func (that *Game) Finish() {
	for _, player := range that.players {
		player.IsActive = false
	}
}

// Validate checks the aggregate invariants.
func (that *Game) Validate() error {
	if that.players[0] == nil || that.players[1] == nil {
		return fmt.Errorf("%w: missing player", ErrInvalidGame)
	}

	counts := map[Side]int{}
	for _, piece := range that.pieces {
		counts[piece.Side]++
	}

	active := 0
	for _, player := range that.players {
		if player.RemainingPieces < 0 {
			return fmt.Errorf("%w: %s has a negative piece count", ErrInvalidGame, player.Side)
		}
		if player.RemainingPieces != counts[player.Side] {
			return fmt.Errorf("%w: %s counts %d pieces but has %d on the board",
				ErrInvalidGame, player.Side, player.RemainingPieces, counts[player.Side])
		}
		if player.IsActive {
			active++
		}
	}

	switch {
	case that.IsOver() && active != 0:
		return fmt.Errorf("%w: active player in a finished game", ErrInvalidGame)
	case !that.IsOver() && active != 1:
		return fmt.Errorf("%w: expected exactly one active player, got %d", ErrInvalidGame, active)
	}

	return nil
}

// Clone returns a deep copy of the game.
func (that *Game) Clone() *Game {
	clone := &Game{
		id:     that.id,
		name:   that.name,
		pieces: make(map[int]*Piece, len(that.pieces)),
		board:  make(map[Position]int, len(that.board)),
	}

	for i, player := range that.players {
		p := *player
		clone.players[i] = &p
	}

	for _, piece := range that.pieces {
		p := *piece
		clone.place(&p)
	}

	return clone
}
