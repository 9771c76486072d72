package model

import (
	"sort"
	"testing"
)

func place(t *testing.T, b *BoardState, pieceType PieceType, color PlayerColor, x, y int) *Piece {
	t.Helper()
	piece, err := b.PlacePiece(pieceType, color, Position{X: x, Y: y})
	if err != nil {
		t.Fatalf("place %s at (%d,%d): %v", pieceType, x, y, err)
	}
	return piece
}

func targets(moves []SimpleMove) []Position {
	squares := make([]Position, 0, len(moves))
	for _, move := range moves {
		squares = append(squares, move.To)
	}
	sortPositions(squares)
	return squares
}

func sortPositions(squares []Position) {
	sort.Slice(squares, func(i, j int) bool {
		if squares[i].X != squares[j].X {
			return squares[i].X < squares[j].X
		}
		return squares[i].Y < squares[j].Y
	})
}

func samePositions(a, b []Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
