package model

var (
	rookDirs    = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs  = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	kingDirs    = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightJumps = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	camelJumps  = []Position{{X: 3, Y: 1}, {X: 3, Y: -1}, {X: -3, Y: 1}, {X: -3, Y: -1}, {X: 1, Y: 3}, {X: 1, Y: -3}, {X: -1, Y: 3}, {X: -1, Y: -3}}
)

// castleDistance is how far the king travels when castling.
const castleDistance = 4

// PseudoLegalMoves returns every move the piece's geometry allows, without
// looking at the safety of its own king.
func (b *BoardState) PseudoLegalMoves(piece *Piece) []SimpleMove {
	return b.generateMoves(piece, true)
}

// Attacks returns the squares the piece threatens. Pawns threaten both
// forward diagonals whether or not they are occupied; castling never attacks.
func (b *BoardState) Attacks(piece *Piece) []Position {
	squares := []Position{}
	if piece.Type == Pawn {
		dy := pawnDirection(piece.Color)
		for _, dx := range []int{-1, 1} {
			target := piece.Position.add(Position{X: dx, Y: dy})
			if boundaryCheck(target) {
				squares = append(squares, target)
			}
		}
		return squares
	}
	for _, move := range b.generateMoves(piece, false) {
		squares = append(squares, move.To)
	}
	return squares
}

func (b *BoardState) generateMoves(piece *Piece, withCastling bool) []SimpleMove {
	switch piece.Type {
	case Pawn:
		return b.pawnMoves(piece)
	case Rook:
		return b.slideMoves(piece, rookDirs)
	case Bishop:
		return b.slideMoves(piece, bishopDirs)
	case Queen:
		return append(b.slideMoves(piece, rookDirs), b.slideMoves(piece, bishopDirs)...)
	case Knight:
		return b.leapMoves(piece, knightJumps)
	case Camel:
		return b.leapMoves(piece, camelJumps)
	case Archbishop:
		return append(b.slideMoves(piece, bishopDirs), b.leapMoves(piece, knightJumps)...)
	case Chancellor:
		return append(b.slideMoves(piece, rookDirs), b.leapMoves(piece, knightJumps)...)
	case Amazon:
		moves := append(b.slideMoves(piece, rookDirs), b.slideMoves(piece, bishopDirs)...)
		return append(moves, b.leapMoves(piece, knightJumps)...)
	case General:
		return b.leapMoves(piece, kingDirs)
	case King:
		moves := b.leapMoves(piece, kingDirs)
		if withCastling {
			moves = append(moves, b.castleMoves(piece)...)
		}
		return moves
	default:
		return []SimpleMove{}
	}
}

// slideMoves walks each ray until the edge, stopping before a friendly piece
// and on an enemy one.
func (b *BoardState) slideMoves(piece *Piece, dirs []Position) []SimpleMove {
	moves := []SimpleMove{}
	for _, dir := range dirs {
		targetPos := piece.Position.add(dir)
		for boundaryCheck(targetPos) {
			target := b.Board[targetPos.Y][targetPos.X]
			if target == nil {
				moves = append(moves, SimpleMove{From: piece.Position, To: targetPos})
			} else if target.Color != piece.Color {
				moves = append(moves, SimpleMove{From: piece.Position, To: targetPos})
				break
			} else {
				break
			}
			targetPos = targetPos.add(dir)
		}
	}
	return moves
}

// leapMoves covers knights, camels and single king steps: no path blocking.
func (b *BoardState) leapMoves(piece *Piece, offsets []Position) []SimpleMove {
	moves := []SimpleMove{}
	for _, offset := range offsets {
		targetPos := piece.Position.add(offset)
		if !boundaryCheck(targetPos) {
			continue
		}
		if target := b.Board[targetPos.Y][targetPos.X]; target == nil || target.Color != piece.Color {
			moves = append(moves, SimpleMove{From: piece.Position, To: targetPos})
		}
	}
	return moves
}

func pawnDirection(color PlayerColor) int {
	if color == PlayerColorBlack {
		return 1
	}
	return -1
}

func (b *BoardState) pawnMoves(piece *Piece) []SimpleMove {
	pawnMoves := []SimpleMove{}
	dy := pawnDirection(piece.Color)
	forward := piece.Position.add(Position{X: 0, Y: dy})
	if b.IsEmpty(forward) {
		pawnMoves = append(pawnMoves, SimpleMove{From: piece.Position, To: forward})
	}
	for _, dx := range []int{-1, 1} {
		capture := piece.Position.add(Position{X: dx, Y: dy})
		if b.IsOccupiedByOpponent(capture, piece.Color) {
			pawnMoves = append(pawnMoves, SimpleMove{From: piece.Position, To: capture})
		}
	}
	return pawnMoves
}

// castleMoves offers the king a four-file move toward an unmoved edge rook
// of its own color when every square between them is empty. Whether the
// king crosses attacked squares is decided by the safety filter.
func (b *BoardState) castleMoves(king *Piece) []SimpleMove {
	moves := []SimpleMove{}
	if king.HasMoved {
		return moves
	}
	y := king.Position.Y
	for _, dir := range []int{-1, 1} {
		rookX := 0
		if dir > 0 {
			rookX = BoardSize - 1
		}
		to := Position{X: king.Position.X + castleDistance*dir, Y: y}
		if !boundaryCheck(to) || (rookX-to.X)*dir <= 0 {
			continue
		}
		rook := b.Board[y][rookX]
		if rook == nil || rook.Type != Rook || rook.Color != king.Color || rook.HasMoved {
			continue
		}
		if !b.rankClear(king.Position.X, rookX, y) {
			continue
		}
		moves = append(moves, SimpleMove{From: king.Position, To: to})
	}
	return moves
}

// rankClear reports whether every square strictly between the two files is empty.
func (b *BoardState) rankClear(fromX, toX, y int) bool {
	if fromX > toX {
		fromX, toX = toX, fromX
	}
	for x := fromX + 1; x < toX; x++ {
		if b.Board[y][x] != nil {
			return false
		}
	}
	return true
}

func isCastle(piece *Piece, move SimpleMove) bool {
	return piece.Type == King && move.From.Y == move.To.Y && abs(move.To.X-move.From.X) == castleDistance
}
