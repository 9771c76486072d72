package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// DefaultLayout is the standard XXL starting position. Upper case is black.
const DefaultLayout = `RNBHCGAKGCEBNR
PPPPPPPPPPPPPP










pppppppppppppp
rnbhcgakgcebnr
`

// PieceTypeFromSymbol maps a layout character, in either case, to its kind.
func PieceTypeFromSymbol(symbol rune) (PieceType, error) {
	upper := unicode.ToUpper(symbol)
	for _, pieceType := range pieceTypes {
		if rune(pieceType.Symbol()) == upper {
			return pieceType, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
}

// ParseLayout reads one line per rank from y=0. A space is an empty square,
// upper case letters are black pieces and lower case letters are white.
func ParseLayout(r io.Reader) (*BoardState, error) {
	board := NewBoard()
	scanner := bufio.NewScanner(r)
	y := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if y >= BoardSize {
			if strings.TrimSpace(line) == "" {
				continue
			}
			return nil, fmt.Errorf("layout line %d: %w", y+1, ErrOutOfBounds)
		}
		for x, symbol := range []rune(line) {
			if symbol == ' ' {
				continue
			}
			if x >= BoardSize {
				return nil, fmt.Errorf("layout line %d column %d: %w", y+1, x+1, ErrOutOfBounds)
			}
			pieceType, err := PieceTypeFromSymbol(symbol)
			if err != nil {
				return nil, fmt.Errorf("layout line %d column %d: %w", y+1, x+1, err)
			}
			color := PlayerColorWhite
			if unicode.IsUpper(symbol) {
				color = PlayerColorBlack
			}
			if _, err := board.PlacePiece(pieceType, color, Position{X: x, Y: y}); err != nil {
				return nil, err
			}
		}
		y++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return board, nil
}

func ParseLayoutString(layout string) (*BoardState, error) {
	return ParseLayout(strings.NewReader(layout))
}

// LoadLayout parses a layout file; an empty path yields DefaultLayout.
func LoadLayout(path string) (*BoardState, error) {
	if path == "" {
		return ParseLayoutString(DefaultLayout)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout %s: %w", path, err)
	}
	defer f.Close()
	return ParseLayout(f)
}

// String renders the board in the layout format, empty squares as dots.
func (b *BoardState) String() string {
	var sb strings.Builder
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			piece := b.Board[y][x]
			if piece == nil {
				sb.WriteByte('.')
				continue
			}
			symbol := piece.Type.Symbol()
			if piece.Color == PlayerColorWhite {
				symbol = byte(unicode.ToLower(rune(symbol)))
			}
			sb.WriteByte(symbol)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
