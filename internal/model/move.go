package model

type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply describes what CommitMove did. Piece is the mover as it was before the move.
type Ply struct {
	Piece          Piece           `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceType       `json:"promotion"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func containsMove(moves []SimpleMove, move SimpleMove) bool {
	for _, m := range moves {
		if m == move {
			return true
		}
	}
	return false
}
