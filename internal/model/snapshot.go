package model

import (
	"fmt"
	"time"
)

// GameSnapshot is the persisted form of a game: the current position and
// seats only, never the move history.
type GameSnapshot struct {
	ID            string        `json:"id"`
	Pieces        []Piece       `json:"pieces"`
	Promotion     PromotionRule `json:"promotion"`
	ToMove        PlayerColor   `json:"toMove"`
	LastMove      *SimpleMove   `json:"lastMove"`
	Resolve       *string       `json:"resolve"`
	Winner        *PlayerColor  `json:"winner"`
	Players       GamePlayers   `json:"players"`
	WhiteTimeLeft time.Duration `json:"whiteTimeLeft"`
	BlackTimeLeft time.Duration `json:"blackTimeLeft"`
	Increment     time.Duration `json:"increment"`
	Untimed       bool          `json:"untimed"`
}

func (g *Game) Snapshot() GameSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	board := g.state.Board
	snapshot := GameSnapshot{
		ID:            g.ID,
		Pieces:        []Piece{},
		Promotion:     board.Promotion,
		ToMove:        g.state.ToMove,
		Resolve:       g.state.Resolve,
		Winner:        g.state.Winner,
		Players:       g.state.Players,
		WhiteTimeLeft: g.whiteClock.GetTimeLeft(),
		BlackTimeLeft: g.blackClock.GetTimeLeft(),
		Increment:     g.whiteClock.increment,
		Untimed:       g.whiteClock.untimed,
	}
	if board.LastMove != nil {
		lastMove := *board.LastMove
		snapshot.LastMove = &lastMove
	}
	for _, color := range []PlayerColor{PlayerColorWhite, PlayerColorBlack} {
		for _, piece := range board.PiecesOf(color) {
			snapshot.Pieces = append(snapshot.Pieces, *piece)
		}
	}
	return snapshot
}

// RestoreGame rebuilds a game from a snapshot. The clock of the side to
// move runs again as soon as the game is restored.
func RestoreGame(snapshot GameSnapshot) (*Game, error) {
	board := NewBoard()
	if snapshot.Promotion.Valid() {
		board.Promotion = snapshot.Promotion
	}
	for _, p := range snapshot.Pieces {
		if !p.Type.Valid() || !p.Color.Valid() {
			return nil, fmt.Errorf("restore game %s: bad piece %+v: %w", snapshot.ID, p, ErrUnknownSymbol)
		}
		piece, err := board.PlacePiece(p.Type, p.Color, p.Position)
		if err != nil {
			return nil, fmt.Errorf("restore game %s: %w", snapshot.ID, err)
		}
		piece.HasMoved = p.HasMoved
	}
	board.LastMove = snapshot.LastMove

	toMove := snapshot.ToMove
	if !toMove.Valid() {
		toMove = PlayerColorWhite
	}
	g := &Game{
		ID: snapshot.ID,
		state: GameState{
			Board:   board,
			ToMove:  toMove,
			Resolve: snapshot.Resolve,
			Winner:  snapshot.Winner,
			Players: snapshot.Players,
		},
		connections: NewGameConnections(),
		whiteClock:  restoreClock(snapshot.WhiteTimeLeft, snapshot),
		blackClock:  restoreClock(snapshot.BlackTimeLeft, snapshot),
	}
	if g.state.Resolve == nil {
		g.refreshStatus()
		g.startClockIfReady()
	} else {
		g.state.IsCheck = board.IsInCheck(toMove)
	}
	return g, nil
}

func restoreClock(timeLeft time.Duration, snapshot GameSnapshot) *Clock {
	if snapshot.Untimed {
		return NewClock(0, snapshot.Increment)
	}
	clock := NewClock(timeLeft, snapshot.Increment)
	clock.untimed = false
	return clock
}
