package model

import "testing"

func TestKnightMovesFromCentre(t *testing.T) {
	board := NewBoard()
	knight := place(t, board, Knight, PlayerColorWhite, 6, 6)

	got := targets(board.PseudoLegalMoves(knight))
	want := []Position{{4, 5}, {4, 7}, {5, 4}, {5, 8}, {7, 4}, {7, 8}, {8, 5}, {8, 7}}
	sortPositions(want)
	if !samePositions(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCamelMoves(t *testing.T) {
	board := NewBoard()
	camel := place(t, board, Camel, PlayerColorBlack, 6, 6)
	place(t, board, Pawn, PlayerColorBlack, 9, 7)
	place(t, board, Pawn, PlayerColorWhite, 3, 5)
	// Camels leap, so pieces in between do not matter.
	place(t, board, Pawn, PlayerColorWhite, 7, 6)

	got := targets(board.PseudoLegalMoves(camel))
	want := []Position{{9, 5}, {3, 7}, {3, 5}, {7, 9}, {7, 3}, {5, 9}, {5, 3}}
	sortPositions(want)
	if !samePositions(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	corner := place(t, board, Camel, PlayerColorWhite, 0, 0)
	got = targets(board.PseudoLegalMoves(corner))
	want = []Position{{1, 3}, {3, 1}}
	if !samePositions(got, want) {
		t.Fatalf("corner camel: expected %v, got %v", want, got)
	}
}

func TestSliderBlocking(t *testing.T) {
	tests := []struct {
		name    string
		blocker PlayerColor
		want    int
	}{
		{"open board", "", 26},
		{"friendly blocker", PlayerColorWhite, 17},
		{"enemy blocker", PlayerColorBlack, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard()
			rook := place(t, board, Rook, PlayerColorWhite, 0, 0)
			if tt.blocker != "" {
				place(t, board, Pawn, tt.blocker, 0, 5)
			}
			if got := len(board.PseudoLegalMoves(rook)); got != tt.want {
				t.Fatalf("expected %d moves, got %d", tt.want, got)
			}
		})
	}
}

func TestCompositeMoveCounts(t *testing.T) {
	tests := []struct {
		pieceType PieceType
		want      int
	}{
		{Rook, 26},
		{Bishop, 25},
		{Queen, 51},
		{Archbishop, 33},
		{Chancellor, 34},
		{Amazon, 59},
		{General, 8},
		{King, 8},
		{Knight, 8},
		{Camel, 8},
	}

	for _, tt := range tests {
		t.Run(string(tt.pieceType), func(t *testing.T) {
			board := NewBoard()
			piece := place(t, board, tt.pieceType, PlayerColorWhite, 6, 6)
			if got := len(board.PseudoLegalMoves(piece)); got != tt.want {
				t.Fatalf("expected %d moves, got %d", tt.want, got)
			}
		})
	}
}

func TestPawnMoves(t *testing.T) {
	board := NewBoard()
	white := place(t, board, Pawn, PlayerColorWhite, 5, 10)
	place(t, board, Knight, PlayerColorBlack, 4, 9)
	place(t, board, Knight, PlayerColorBlack, 5, 9)
	place(t, board, Knight, PlayerColorWhite, 6, 9)

	got := targets(board.PseudoLegalMoves(white))
	want := []Position{{4, 9}}
	if !samePositions(got, want) {
		t.Fatalf("blocked white pawn: expected %v, got %v", want, got)
	}

	black := place(t, board, Pawn, PlayerColorBlack, 10, 3)
	got = targets(board.PseudoLegalMoves(black))
	want = []Position{{10, 4}}
	if !samePositions(got, want) {
		t.Fatalf("black pawn: expected %v, got %v", want, got)
	}
}

func TestPawnAttacksIgnoreOccupancy(t *testing.T) {
	board := NewBoard()
	pawn := place(t, board, Pawn, PlayerColorWhite, 5, 10)

	got := board.Attacks(pawn)
	sortPositions(got)
	want := []Position{{4, 9}, {6, 9}}
	if !samePositions(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	edge := place(t, board, Pawn, PlayerColorBlack, 0, 4)
	got = board.Attacks(edge)
	want = []Position{{1, 5}}
	if !samePositions(got, want) {
		t.Fatalf("edge pawn: expected %v, got %v", want, got)
	}
}

func TestCastleMoveGeneration(t *testing.T) {
	kingside := Position{X: 11, Y: 13}
	queenside := Position{X: 3, Y: 13}

	tests := []struct {
		name  string
		setup func(t *testing.T, b *BoardState)
		want  []Position
	}{
		{
			name:  "both sides open",
			setup: func(t *testing.T, b *BoardState) {},
			want:  []Position{queenside, kingside},
		},
		{
			name: "rook has moved",
			setup: func(t *testing.T, b *BoardState) {
				b.PieceAt(Position{X: 13, Y: 13}).HasMoved = true
			},
			want: []Position{queenside},
		},
		{
			name: "path blocked",
			setup: func(t *testing.T, b *BoardState) {
				place(t, b, Knight, PlayerColorWhite, 1, 13)
			},
			want: []Position{kingside},
		},
		{
			name: "enemy rook in the corner",
			setup: func(t *testing.T, b *BoardState) {
				b.RemovePiece(Position{X: 13, Y: 13})
				place(t, b, Rook, PlayerColorBlack, 13, 13)
			},
			want: []Position{queenside},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard()
			king := place(t, board, King, PlayerColorWhite, 7, 13)
			place(t, board, Rook, PlayerColorWhite, 0, 13)
			place(t, board, Rook, PlayerColorWhite, 13, 13)
			tt.setup(t, board)

			got := []Position{}
			for _, move := range board.PseudoLegalMoves(king) {
				if isCastle(king, move) {
					got = append(got, move.To)
				}
			}
			sortPositions(got)
			if !samePositions(got, tt.want) {
				t.Fatalf("expected castles %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMovedKingCannotCastle(t *testing.T) {
	board := NewBoard()
	king := place(t, board, King, PlayerColorWhite, 7, 13)
	king.HasMoved = true
	place(t, board, Rook, PlayerColorWhite, 0, 13)
	place(t, board, Rook, PlayerColorWhite, 13, 13)

	for _, move := range board.PseudoLegalMoves(king) {
		if isCastle(king, move) {
			t.Fatalf("unexpected castle %v", move)
		}
	}
}

func TestAttacksNeverCastle(t *testing.T) {
	board := NewBoard()
	king := place(t, board, King, PlayerColorWhite, 7, 13)
	place(t, board, Rook, PlayerColorWhite, 0, 13)
	place(t, board, Rook, PlayerColorWhite, 13, 13)

	for _, square := range board.Attacks(king) {
		if abs(square.X-king.Position.X) > 1 {
			t.Fatalf("king attacks %s", square)
		}
	}
}
