// Package ai picks moves for the computer player. It looks at the current
// position only: safe captures of the most valuable piece first, then any
// safe move, then captures, then anything.
package ai

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/benbeisheim/xxlchess-backend/internal/model"
)

var ErrNoMoves = errors.New("no moves available")

// Selector is safe for use by several games at once.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSelector(seed uint64) *Selector {
	return &Selector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomSelector seeds the selector from the runtime's random source.
func NewRandomSelector() *Selector {
	return NewSelector(rand.Uint64())
}

// GetMove chooses a move for color. Callers are expected to have excluded
// checkmate and stalemate first; a side with no moves at all gets ErrNoMoves.
func (s *Selector) GetMove(board *model.BoardState, color model.PlayerColor) (model.SimpleMove, error) {
	allMoves := []model.SimpleMove{}
	captureMoves := []model.SimpleMove{}
	for _, piece := range board.PiecesOf(color) {
		for _, move := range board.PseudoLegalMoves(piece) {
			if board.IsOccupiedByOpponent(move.To, color) {
				captureMoves = append(captureMoves, move)
			}
			allMoves = append(allMoves, move)
		}
	}

	// Safe moves are re-derived from the moving piece for every entry of
	// allMoves, so a piece with n moves contributes its safe set n times.
	safeMoves := []model.SimpleMove{}
	for _, move := range allMoves {
		piece := board.PieceAt(move.From)
		safeMoves = append(safeMoves, board.LegalMoves(piece)...)
	}

	if len(safeMoves) > 0 {
		if best, ok := bestSafeCapture(board, color, captureMoves, safeMoves); ok {
			return best, nil
		}
		return s.selectRandomMove(safeMoves), nil
	}
	if len(captureMoves) > 0 {
		return s.selectRandomMove(captureMoves), nil
	}
	if len(allMoves) > 0 {
		return s.selectRandomMove(allMoves), nil
	}
	return model.SimpleMove{}, ErrNoMoves
}

// bestSafeCapture returns the safe capture of the highest valued piece; the
// first one encountered wins a tie.
func bestSafeCapture(board *model.BoardState, color model.PlayerColor, captureMoves, safeMoves []model.SimpleMove) (model.SimpleMove, bool) {
	safe := make(map[model.SimpleMove]struct{}, len(safeMoves))
	for _, move := range safeMoves {
		safe[move] = struct{}{}
	}

	var best model.SimpleMove
	bestScore := -1.0
	for _, move := range captureMoves {
		if _, ok := safe[move]; !ok {
			continue
		}
		target := board.PieceAt(move.To)
		if target != nil && target.Color != color && target.Type.Value() > bestScore {
			best = move
			bestScore = target.Type.Value()
		}
	}
	return best, bestScore >= 0
}

func (s *Selector) selectRandomMove(moves []model.SimpleMove) model.SimpleMove {
	s.mu.Lock()
	defer s.mu.Unlock()
	return moves[s.rng.IntN(len(moves))]
}
