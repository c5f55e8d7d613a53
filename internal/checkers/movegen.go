package checkers

import "github.com/rocketscienceinc/checkers-backend/internal/entity"

// Candidates returns the squares piece may move to. Adjacent empty squares are
// plain moves; an adjacent opposing piece adds the empty landing square behind it
// as a capture. Nothing is returned unless the piece's owner is the active player.
func Candidates(game *entity.Game, piece entity.Piece) []Candidate {
	if !game.IsActive(piece.Side) {
		return nil
	}

	var candidates []Candidate
	for _, dir := range piece.Directions() {
		next := piece.Position.Add(dir)
		if !next.InBounds() {
			continue
		}

		occupant, ok := game.OccupantAt(next)
		if !ok {
			candidates = append(candidates, Candidate{To: next})
			continue
		}

		if occupant.Side == piece.Side {
			continue
		}

		landing := piece.Position.Step(dir, 2)
		if landing.InBounds() && !game.IsOccupied(landing) {
			candidates = append(candidates, Candidate{To: landing, Capture: true})
		}
	}

	return candidates
}

// CaptureCandidates keeps only jump landings.
func CaptureCandidates(game *entity.Game, piece entity.Piece) []Candidate {
	var captures []Candidate
	for _, candidate := range Candidates(game, piece) {
		if candidate.Capture {
			captures = append(captures, candidate)
		}
	}
	return captures
}

func findCandidate(candidates []Candidate, to entity.Position) (Candidate, bool) {
	for _, candidate := range candidates {
		if candidate.To == to {
			return candidate, true
		}
	}
	return Candidate{}, false
}

func isJump(from, to entity.Position) bool {
	dc, dr := to.Sub(from)
	return abs(dc) == 2 && abs(dr) == 2
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
