package model

// simulate plays move with MovePieceImmediate, runs check on the resulting
// position and always puts the board back, including any captured piece.
func (b *BoardState) simulate(move SimpleMove, check func() bool) bool {
	captured := b.PieceAt(move.To)
	b.MovePieceImmediate(move.From, move.To)
	defer func() {
		b.MovePieceImmediate(move.To, move.From)
		if captured != nil {
			b.Board[move.To.Y][move.To.X] = captured
			captured.Position = move.To
		}
	}()
	return check()
}

// SafeMoves keeps the moves that do not leave the mover's king attacked.
func (b *BoardState) SafeMoves(piece *Piece, moves []SimpleMove) []SimpleMove {
	safeMoves := []SimpleMove{}
	for _, move := range moves {
		if b.PieceAt(move.From) != piece {
			continue
		}
		if isCastle(piece, move) && !b.castlePathSafe(piece, move) {
			continue
		}
		if !b.simulate(move, func() bool { return b.IsInCheck(piece.Color) }) {
			safeMoves = append(safeMoves, move)
		}
	}
	return safeMoves
}

// castlePathSafe forbids castling out of check or across an attacked square.
// The destination itself is covered by the regular simulation.
func (b *BoardState) castlePathSafe(king *Piece, move SimpleMove) bool {
	opponent := king.Color.Opponent()
	if b.IsSquareAttacked(move.From, opponent) {
		return false
	}
	dir := 1
	if move.To.X < move.From.X {
		dir = -1
	}
	for x := move.From.X + dir; x != move.To.X; x += dir {
		if b.IsSquareAttacked(Position{X: x, Y: move.From.Y}, opponent) {
			return false
		}
	}
	return true
}

// LegalMoves returns the safe subset of the piece's pseudo-legal moves.
func (b *BoardState) LegalMoves(piece *Piece) []SimpleMove {
	return b.SafeMoves(piece, b.PseudoLegalMoves(piece))
}

func (b *BoardState) LegalMovesFor(color PlayerColor) []SimpleMove {
	legalMoves := []SimpleMove{}
	for _, piece := range b.PiecesOf(color) {
		legalMoves = append(legalMoves, b.LegalMoves(piece)...)
	}
	return legalMoves
}

// IsLegal reports whether move is one of the safe moves of the piece on move.From.
func (b *BoardState) IsLegal(move SimpleMove) bool {
	piece := b.PieceAt(move.From)
	if piece == nil {
		return false
	}
	return containsMove(b.LegalMoves(piece), move)
}

func (b *BoardState) IsSquareAttacked(pos Position, attackingColor PlayerColor) bool {
	for _, piece := range b.PiecesOf(attackingColor) {
		for _, square := range b.Attacks(piece) {
			if square == pos {
				return true
			}
		}
	}
	return false
}

// IsInCheck is false when the color has no king on the board.
func (b *BoardState) IsInCheck(color PlayerColor) bool {
	king := b.King(color)
	if king == nil {
		return false
	}
	return b.IsSquareAttacked(king.Position, color.Opponent())
}

func (b *BoardState) IsCheckmate(color PlayerColor) bool {
	if b.King(color) == nil || !b.IsInCheck(color) {
		return false
	}
	return !b.hasSafeMove(color)
}

// IsStalemate is true when the color has a king that is not attacked and no safe move.
func (b *BoardState) IsStalemate(color PlayerColor) bool {
	if b.King(color) == nil || b.IsInCheck(color) {
		return false
	}
	return !b.hasSafeMove(color)
}

func (b *BoardState) hasSafeMove(color PlayerColor) bool {
	for _, piece := range b.PiecesOf(color) {
		if len(b.LegalMoves(piece)) > 0 {
			return true
		}
	}
	return false
}
