package ai

import (
	"errors"
	"testing"

	"github.com/benbeisheim/xxlchess-backend/internal/model"
)

func newBoard(t *testing.T, pieces ...model.Piece) *model.BoardState {
	t.Helper()
	board := model.NewBoard()
	for _, p := range pieces {
		if _, err := board.PlacePiece(p.Type, p.Color, p.Position); err != nil {
			t.Fatalf("place %s: %v", p.Type, err)
		}
	}
	return board
}

func piece(pieceType model.PieceType, color model.PlayerColor, x, y int) model.Piece {
	return model.Piece{Type: pieceType, Color: color, Position: model.Position{X: x, Y: y}}
}

func TestPrefersCapturingTheRook(t *testing.T) {
	board := newBoard(t,
		piece(model.King, model.PlayerColorWhite, 0, 13),
		piece(model.Knight, model.PlayerColorWhite, 6, 6),
		piece(model.Rook, model.PlayerColorBlack, 8, 5),
		piece(model.Pawn, model.PlayerColorBlack, 8, 7),
		piece(model.King, model.PlayerColorBlack, 13, 0),
	)

	for seed := uint64(0); seed < 10; seed++ {
		move, err := NewSelector(seed).GetMove(board, model.PlayerColorWhite)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		want := model.SimpleMove{From: model.Position{X: 6, Y: 6}, To: model.Position{X: 8, Y: 5}}
		if move != want {
			t.Fatalf("seed %d: expected %v, got %v", seed, want, move)
		}
	}
}

func TestPrefersMostValuableCapture(t *testing.T) {
	board := newBoard(t,
		piece(model.King, model.PlayerColorWhite, 0, 13),
		piece(model.Knight, model.PlayerColorWhite, 6, 6),
		piece(model.Rook, model.PlayerColorBlack, 8, 5),
		piece(model.Queen, model.PlayerColorBlack, 4, 5),
		piece(model.King, model.PlayerColorBlack, 13, 0),
	)

	move, err := NewSelector(1).GetMove(board, model.PlayerColorWhite)
	if err != nil {
		t.Fatalf("GetMove: %v", err)
	}
	if move.To != (model.Position{X: 4, Y: 5}) {
		t.Fatalf("expected the queen capture, got %v", move)
	}
}

func TestSkipsCapturesThatExposeTheKing(t *testing.T) {
	board := newBoard(t,
		piece(model.King, model.PlayerColorWhite, 7, 13),
		piece(model.Knight, model.PlayerColorWhite, 7, 10),
		piece(model.Rook, model.PlayerColorBlack, 7, 2),
		piece(model.Queen, model.PlayerColorBlack, 9, 9),
		piece(model.King, model.PlayerColorBlack, 0, 0),
	)
	before := board.String()

	for seed := uint64(0); seed < 10; seed++ {
		move, err := NewSelector(seed).GetMove(board, model.PlayerColorWhite)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if move.From != (model.Position{X: 7, Y: 13}) {
			t.Fatalf("seed %d: pinned knight moved: %v", seed, move)
		}
		if !board.IsLegal(move) {
			t.Fatalf("seed %d: unsafe move %v", seed, move)
		}
	}
	if board.String() != before {
		t.Fatalf("selector modified the board")
	}
}

func TestNoMoves(t *testing.T) {
	board := newBoard(t, piece(model.King, model.PlayerColorBlack, 0, 0))

	if _, err := NewSelector(1).GetMove(board, model.PlayerColorWhite); !errors.Is(err, ErrNoMoves) {
		t.Fatalf("expected ErrNoMoves, got %v", err)
	}
}

func TestSeededSelectorIsDeterministic(t *testing.T) {
	board, err := model.ParseLayoutString(model.DefaultLayout)
	if err != nil {
		t.Fatalf("parse layout: %v", err)
	}

	a, b := NewSelector(42), NewSelector(42)
	for i := 0; i < 5; i++ {
		moveA, errA := a.GetMove(board, model.PlayerColorBlack)
		moveB, errB := b.GetMove(board, model.PlayerColorBlack)
		if errA != nil || errB != nil {
			t.Fatalf("GetMove: %v / %v", errA, errB)
		}
		if moveA != moveB {
			t.Fatalf("round %d: %v != %v", i, moveA, moveB)
		}
		if !board.IsLegal(moveA) {
			t.Fatalf("round %d: illegal move %v", i, moveA)
		}
	}
}

func TestEqualCapturesFollowFileOrder(t *testing.T) {
	board := newBoard(t,
		piece(model.King, model.PlayerColorWhite, 13, 13),
		piece(model.Knight, model.PlayerColorWhite, 2, 1),
		piece(model.Knight, model.PlayerColorWhite, 1, 9),
		piece(model.Pawn, model.PlayerColorBlack, 4, 2),
		piece(model.Pawn, model.PlayerColorBlack, 3, 10),
		piece(model.King, model.PlayerColorBlack, 13, 0),
	)

	move, err := NewSelector(5).GetMove(board, model.PlayerColorWhite)
	if err != nil {
		t.Fatalf("GetMove: %v", err)
	}
	want := model.SimpleMove{From: model.Position{X: 1, Y: 9}, To: model.Position{X: 3, Y: 10}}
	if move != want {
		t.Fatalf("expected the knight on the lower file to capture first, want %v got %v", want, move)
	}
}
