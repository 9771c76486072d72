package model

import "fmt"

const BoardSize = 14

type PieceType string

const (
	Pawn       PieceType = "pawn"
	Rook       PieceType = "rook"
	Knight     PieceType = "knight"
	Bishop     PieceType = "bishop"
	King       PieceType = "king"
	Queen      PieceType = "queen"
	Archbishop PieceType = "archbishop"
	Camel      PieceType = "camel"
	General    PieceType = "general"
	Amazon     PieceType = "amazon"
	Chancellor PieceType = "chancellor"
)

// pieceTypes is the closed set of kinds in layout symbol order.
var pieceTypes = []PieceType{Pawn, Rook, Knight, Bishop, King, Queen, Archbishop, Camel, General, Amazon, Chancellor}

// Value is the material value used by the computer player. The king has none.
func (p PieceType) Value() float64 {
	switch p {
	case Pawn:
		return 1
	case Rook:
		return 5.25
	case Knight:
		return 2
	case Bishop:
		return 3.625
	case Queen:
		return 9.5
	case Archbishop:
		return 7.5
	case Camel:
		return 2
	case General:
		return 5
	case Amazon:
		return 12
	case Chancellor:
		return 8.5
	}
	return 0
}

// Symbol is the upper-case layout character of the kind.
func (p PieceType) Symbol() byte {
	switch p {
	case Pawn:
		return 'P'
	case Rook:
		return 'R'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Archbishop:
		return 'H'
	case Camel:
		return 'C'
	case General:
		return 'G'
	case Amazon:
		return 'A'
	case Chancellor:
		return 'E'
	}
	return '?'
}

func (p PieceType) Valid() bool {
	return p.Symbol() != '?'
}

type Piece struct {
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	Position Position    `json:"position"`
	HasMoved bool        `json:"hasMoved"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func (p Position) add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func boundaryCheck(position Position) bool {
	return position.X >= 0 && position.X < BoardSize && position.Y >= 0 && position.Y < BoardSize
}

// PromotionRule decides which ranks turn a pawn into a queen.
type PromotionRule string

const (
	// PromoteFarRank promotes on the last rank: y=0 for white, y=13 for black.
	PromoteFarRank PromotionRule = "far_rank"
	// PromoteMidline promotes as soon as the pawn enters the opponent's half.
	PromoteMidline PromotionRule = "midline"
)

func (r PromotionRule) Valid() bool {
	return r == PromoteFarRank || r == PromoteMidline
}

func (r PromotionRule) promotes(color PlayerColor, y int) bool {
	if r == PromoteMidline {
		if color == PlayerColorWhite {
			return y < BoardSize/2
		}
		return y >= BoardSize/2
	}
	if color == PlayerColorWhite {
		return y == 0
	}
	return y == BoardSize-1
}

// BoardState is indexed Board[y][x]. Every occupied cell holds a piece whose
// Position equals the cell coordinates.
type BoardState struct {
	Board     [][]*Piece    `json:"board"`
	LastMove  *SimpleMove   `json:"lastMove"`
	Promotion PromotionRule `json:"-"`
}

func NewBoard() *BoardState {
	board := &BoardState{Promotion: PromoteFarRank}
	for i := 0; i < BoardSize; i++ {
		board.Board = append(board.Board, make([]*Piece, BoardSize))
	}
	return board
}

func (b *BoardState) PieceAt(pos Position) *Piece {
	if !boundaryCheck(pos) {
		return nil
	}
	return b.Board[pos.Y][pos.X]
}

func (b *BoardState) IsEmpty(pos Position) bool {
	return boundaryCheck(pos) && b.Board[pos.Y][pos.X] == nil
}

func (b *BoardState) IsOccupiedByOpponent(pos Position, color PlayerColor) bool {
	piece := b.PieceAt(pos)
	return piece != nil && piece.Color != color
}

// PlacePiece puts a new piece on an empty square. Used by layout loading.
func (b *BoardState) PlacePiece(pieceType PieceType, color PlayerColor, pos Position) (*Piece, error) {
	if !boundaryCheck(pos) {
		return nil, fmt.Errorf("place %s at %s: %w", pieceType, pos, ErrOutOfBounds)
	}
	if b.Board[pos.Y][pos.X] != nil {
		return nil, fmt.Errorf("place %s at %s: %w", pieceType, pos, ErrSquareOccupied)
	}
	piece := &Piece{Type: pieceType, Color: color, Position: pos}
	b.Board[pos.Y][pos.X] = piece
	return piece, nil
}

func (b *BoardState) RemovePiece(pos Position) *Piece {
	piece := b.PieceAt(pos)
	if piece != nil {
		b.Board[pos.Y][pos.X] = nil
	}
	return piece
}

// MovePieceImmediate relocates whatever stands on from to to, overwriting to.
// No legality check, capture bookkeeping, promotion or castling happens here.
func (b *BoardState) MovePieceImmediate(from, to Position) {
	if from == to || !boundaryCheck(from) || !boundaryCheck(to) {
		return
	}
	piece := b.Board[from.Y][from.X]
	if piece == nil {
		return
	}
	b.Board[to.Y][to.X] = piece
	b.Board[from.Y][from.X] = nil
	piece.Position = to
}

// CommitMove executes a game turn. The caller is responsible for legality.
func (b *BoardState) CommitMove(from, to Position) Ply {
	piece := b.PieceAt(from)
	if piece == nil || !boundaryCheck(to) {
		return Ply{From: from, To: to}
	}
	ply := Ply{
		Piece:         *piece,
		From:          from,
		To:            to,
		CapturedPiece: b.RemovePiece(to),
	}

	b.MovePieceImmediate(from, to)
	piece.HasMoved = true
	b.LastMove = &SimpleMove{From: from, To: to}

	if piece.Type == King && abs(to.X-from.X) == 4 {
		ply.CastleRookMove = b.castleRook(from, to)
	}

	if piece.Type == Pawn && b.Promotion.promotes(piece.Color, to.Y) {
		b.Board[to.Y][to.X] = &Piece{Type: Queen, Color: piece.Color, Position: to, HasMoved: true}
		ply.Promotion = Queen
	}
	return ply
}

// castleRook moves the edge rook next to the king, on the side the king came from.
func (b *BoardState) castleRook(from, to Position) *CastleRookMove {
	rookFrom := Position{X: 0, Y: to.Y}
	rookTo := Position{X: to.X + 1, Y: to.Y}
	if to.X > from.X {
		rookFrom.X = BoardSize - 1
		rookTo.X = to.X - 1
	}
	rook := b.PieceAt(rookFrom)
	if rook == nil {
		return nil
	}
	b.MovePieceImmediate(rookFrom, rookTo)
	rook.HasMoved = true
	return &CastleRookMove{From: rookFrom, To: rookTo}
}

// PiecesOf returns the pieces of a color file by file: x outer, y inner.
// The computer player breaks ties on this order.
func (b *BoardState) PiecesOf(color PlayerColor) []*Piece {
	pieces := []*Piece{}
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			if b.Board[y][x] != nil && b.Board[y][x].Color == color {
				pieces = append(pieces, b.Board[y][x])
			}
		}
	}
	return pieces
}

func (b *BoardState) King(color PlayerColor) *Piece {
	for _, piece := range b.PiecesOf(color) {
		if piece.Type == King {
			return piece
		}
	}
	return nil
}

func (b *BoardState) Clone() *BoardState {
	clone := NewBoard()
	clone.Promotion = b.Promotion
	if b.LastMove != nil {
		lastMove := *b.LastMove
		clone.LastMove = &lastMove
	}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if b.Board[y][x] != nil {
				piece := *b.Board[y][x]
				clone.Board[y][x] = &piece
			}
		}
	}
	return clone
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
