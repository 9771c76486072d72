package model

import (
	"errors"
	"testing"
)

func TestMovePieceImmediateRoundTrip(t *testing.T) {
	board := NewBoard()
	rook := place(t, board, Rook, PlayerColorWhite, 3, 3)
	before := board.String()

	board.MovePieceImmediate(Position{X: 3, Y: 3}, Position{X: 3, Y: 8})
	if board.PieceAt(Position{X: 3, Y: 8}) != rook || rook.Position != (Position{X: 3, Y: 8}) {
		t.Fatalf("rook not relocated")
	}
	if !board.IsEmpty(Position{X: 3, Y: 3}) {
		t.Fatalf("source square still occupied")
	}

	board.MovePieceImmediate(Position{X: 3, Y: 8}, Position{X: 3, Y: 3})
	if board.String() != before {
		t.Fatalf("board not restored:\n%s", board.String())
	}
	if rook.HasMoved {
		t.Fatalf("MovePieceImmediate must not mark the piece as moved")
	}
}

func TestMovePieceImmediateIgnoresBadInput(t *testing.T) {
	board := NewBoard()
	place(t, board, Knight, PlayerColorBlack, 0, 0)
	before := board.String()

	board.MovePieceImmediate(Position{X: 0, Y: 0}, Position{X: 0, Y: 0})
	board.MovePieceImmediate(Position{X: 0, Y: 0}, Position{X: -1, Y: 0})
	board.MovePieceImmediate(Position{X: 5, Y: 5}, Position{X: 6, Y: 6})

	if board.String() != before {
		t.Fatalf("board changed:\n%s", board.String())
	}
}

func TestPlacePieceErrors(t *testing.T) {
	board := NewBoard()
	place(t, board, Pawn, PlayerColorWhite, 1, 1)

	if _, err := board.PlacePiece(Pawn, PlayerColorWhite, Position{X: 1, Y: 1}); !errors.Is(err, ErrSquareOccupied) {
		t.Errorf("expected ErrSquareOccupied, got %v", err)
	}
	if _, err := board.PlacePiece(Pawn, PlayerColorWhite, Position{X: 14, Y: 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestPieceAtOutOfBounds(t *testing.T) {
	board := NewBoard()
	for _, pos := range []Position{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 14, Y: 3}, {X: 3, Y: 14}} {
		if board.PieceAt(pos) != nil {
			t.Errorf("PieceAt(%s) should be nil", pos)
		}
		if board.IsEmpty(pos) {
			t.Errorf("IsEmpty(%s) should be false off the board", pos)
		}
	}
}

func TestCommitMoveCapture(t *testing.T) {
	board := NewBoard()
	rook := place(t, board, Rook, PlayerColorWhite, 5, 10)
	place(t, board, Knight, PlayerColorBlack, 5, 3)

	ply := board.CommitMove(Position{X: 5, Y: 10}, Position{X: 5, Y: 3})

	if ply.CapturedPiece == nil || ply.CapturedPiece.Type != Knight {
		t.Fatalf("expected knight capture, got %+v", ply.CapturedPiece)
	}
	if board.PieceAt(Position{X: 5, Y: 3}) != rook {
		t.Fatalf("rook not on target square")
	}
	if !rook.HasMoved {
		t.Errorf("rook should be marked as moved")
	}
	if board.LastMove == nil || board.LastMove.To != (Position{X: 5, Y: 3}) {
		t.Errorf("last move not recorded: %+v", board.LastMove)
	}
	if ply.Piece.HasMoved {
		t.Errorf("ply should describe the mover before the move")
	}
}

func TestCommitMoveCastles(t *testing.T) {
	tests := []struct {
		name       string
		kingTo     Position
		rookFrom   Position
		rookTo     Position
		untouchedX int
	}{
		{
			name:       "kingside",
			kingTo:     Position{X: 11, Y: 13},
			rookFrom:   Position{X: 13, Y: 13},
			rookTo:     Position{X: 10, Y: 13},
			untouchedX: 0,
		},
		{
			name:       "queenside",
			kingTo:     Position{X: 3, Y: 13},
			rookFrom:   Position{X: 0, Y: 13},
			rookTo:     Position{X: 4, Y: 13},
			untouchedX: 13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard()
			king := place(t, board, King, PlayerColorWhite, 7, 13)
			place(t, board, Rook, PlayerColorWhite, 0, 13)
			place(t, board, Rook, PlayerColorWhite, 13, 13)

			ply := board.CommitMove(king.Position, tt.kingTo)

			if board.PieceAt(tt.kingTo) != king {
				t.Fatalf("king not on %s", tt.kingTo)
			}
			rook := board.PieceAt(tt.rookTo)
			if rook == nil || rook.Type != Rook || !rook.HasMoved {
				t.Fatalf("rook not castled to %s", tt.rookTo)
			}
			if !board.IsEmpty(tt.rookFrom) {
				t.Fatalf("rook still on %s", tt.rookFrom)
			}
			if other := board.PieceAt(Position{X: tt.untouchedX, Y: 13}); other == nil || other.HasMoved {
				t.Fatalf("the other rook should not move")
			}
			if ply.CastleRookMove == nil || ply.CastleRookMove.From != tt.rookFrom || ply.CastleRookMove.To != tt.rookTo {
				t.Fatalf("unexpected rook move in ply: %+v", ply.CastleRookMove)
			}
		})
	}
}

func TestCommitMovePromotion(t *testing.T) {
	tests := []struct {
		name    string
		rule    PromotionRule
		color   PlayerColor
		from    Position
		to      Position
		promote bool
	}{
		{"far rank white", PromoteFarRank, PlayerColorWhite, Position{X: 2, Y: 1}, Position{X: 2, Y: 0}, true},
		{"far rank black", PromoteFarRank, PlayerColorBlack, Position{X: 2, Y: 12}, Position{X: 2, Y: 13}, true},
		{"far rank white midboard", PromoteFarRank, PlayerColorWhite, Position{X: 2, Y: 7}, Position{X: 2, Y: 6}, false},
		{"midline white", PromoteMidline, PlayerColorWhite, Position{X: 2, Y: 7}, Position{X: 2, Y: 6}, true},
		{"midline black", PromoteMidline, PlayerColorBlack, Position{X: 4, Y: 6}, Position{X: 4, Y: 7}, true},
		{"midline white own half", PromoteMidline, PlayerColorWhite, Position{X: 2, Y: 9}, Position{X: 2, Y: 8}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard()
			board.Promotion = tt.rule
			place(t, board, Pawn, tt.color, tt.from.X, tt.from.Y)

			ply := board.CommitMove(tt.from, tt.to)

			piece := board.PieceAt(tt.to)
			if piece == nil || piece.Color != tt.color {
				t.Fatalf("no %s piece on %s", tt.color, tt.to)
			}
			if tt.promote {
				if piece.Type != Queen || ply.Promotion != Queen || !piece.HasMoved {
					t.Fatalf("expected a moved queen, got %+v (ply promotion %q)", piece, ply.Promotion)
				}
				for _, p := range board.PiecesOf(tt.color) {
					if p.Type == Pawn {
						t.Fatalf("pawn still on the board at %s after promotion", p.Position)
					}
				}
			} else if piece.Type != Pawn || ply.Promotion != "" {
				t.Fatalf("pawn should not promote, got %+v", piece)
			}
		})
	}
}

func TestPiecesOfScansFileByFile(t *testing.T) {
	board := NewBoard()
	place(t, board, Rook, PlayerColorWhite, 9, 4)
	place(t, board, Knight, PlayerColorWhite, 2, 4)
	place(t, board, Bishop, PlayerColorWhite, 12, 1)
	place(t, board, Pawn, PlayerColorWhite, 2, 1)
	place(t, board, Queen, PlayerColorBlack, 0, 0)

	pieces := board.PiecesOf(PlayerColorWhite)
	want := []Position{{X: 2, Y: 1}, {X: 2, Y: 4}, {X: 9, Y: 4}, {X: 12, Y: 1}}
	if len(pieces) != len(want) {
		t.Fatalf("expected %d pieces, got %d", len(want), len(pieces))
	}
	for i, piece := range pieces {
		if piece.Position != want[i] {
			t.Errorf("piece %d: expected %s, got %s", i, want[i], piece.Position)
		}
	}
}

func TestPieceValues(t *testing.T) {
	values := map[PieceType]float64{
		Pawn: 1, Knight: 2, Camel: 2, Bishop: 3.625, General: 5, Rook: 5.25,
		Archbishop: 7.5, Chancellor: 8.5, Queen: 9.5, Amazon: 12, King: 0,
	}
	for pieceType, want := range values {
		if got := pieceType.Value(); got != want {
			t.Errorf("%s: expected %v, got %v", pieceType, want, got)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	board := NewBoard()
	place(t, board, Amazon, PlayerColorBlack, 6, 6)
	clone := board.Clone()

	clone.MovePieceImmediate(Position{X: 6, Y: 6}, Position{X: 6, Y: 7})

	if board.PieceAt(Position{X: 6, Y: 6}) == nil {
		t.Fatalf("moving on the clone changed the source board")
	}
	if board.PieceAt(Position{X: 6, Y: 6}).Position != (Position{X: 6, Y: 6}) {
		t.Fatalf("source piece position changed")
	}
}
