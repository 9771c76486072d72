package model

import "errors"

var (
	ErrOutOfBounds      = errors.New("square out of bounds")
	ErrSquareOccupied   = errors.New("square already occupied")
	ErrUnknownSymbol    = errors.New("unknown piece symbol")
	ErrNoPiece          = errors.New("no piece at from square")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNotInGame        = errors.New("player not in game")
	ErrIllegalMove      = errors.New("invalid move, not legal")
	ErrGameOver         = errors.New("game is over")
	ErrGameFull         = errors.New("game is full")
	ErrNotComputer      = errors.New("side to move is not a computer player")
	ErrAlreadyQueued    = errors.New("player already in queue")
	ErrReservedPlayerID = errors.New("player id is reserved")
	ErrAlreadyConnected = errors.New("player already connected")
)
