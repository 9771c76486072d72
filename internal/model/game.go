package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/xxlchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

const (
	ResolveCheckmate = "checkmate"
	ResolveStalemate = "stalemate"
	ResolveTimeout   = "timeout"
	ResolveResign    = "resign"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
	// writeMu serialises every write to the connections; lastSeq is guarded by it.
	writeMu sync.Mutex
	lastSeq uint64
}

// The Game struct focuses on a single game's state and its observers.
// Every read and mutation of the board goes through mu, so no caller ever
// sees a position in the middle of a legality simulation.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	// seq numbers broadcast states so an older one is never sent after a newer one.
	seq uint64
}

type GamePlayers struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type GameState struct {
	Sound   string       `json:"sound"`
	Board   *BoardState  `json:"boardState"`
	ToMove  PlayerColor  `json:"toMove"`
	IsCheck bool         `json:"isCheck"`
	Resolve *string      `json:"resolve"`
	Winner  *PlayerColor `json:"winner"`
	Players GamePlayers  `json:"players"`
	LastPly *Ply         `json:"lastPly"`
}

type GameOptions struct {
	Board     *BoardState
	BaseTime  time.Duration
	Increment time.Duration
}

// ComputerMoveChooser picks a move for color on the live board.
type ComputerMoveChooser func(board *BoardState, color PlayerColor) (SimpleMove, error)

func NewGame(id string, opts GameOptions) *Game {
	board := opts.Board
	if board == nil {
		board, _ = ParseLayoutString(DefaultLayout)
	} else {
		board = board.Clone()
	}
	g := &Game{
		ID:          id,
		state:       newGameState(board, opts.BaseTime),
		connections: NewGameConnections(),
		whiteClock:  NewClock(opts.BaseTime, opts.Increment),
		blackClock:  NewClock(opts.BaseTime, opts.Increment),
	}
	g.refreshStatus()
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

func newGameState(board *BoardState, baseTime time.Duration) GameState {
	return GameState{
		Board:  board,
		ToMove: PlayerColorWhite,
		Players: GamePlayers{
			White: ClientPlayer{Color: PlayerColorWhite, TimeLeft: tenths(baseTime)},
			Black: ClientPlayer{Color: PlayerColorBlack, TimeLeft: tenths(baseTime)},
		},
	}
}

func (g *Game) seat(color PlayerColor) *ClientPlayer {
	if color == PlayerColorWhite {
		return &g.state.Players.White
	}
	return &g.state.Players.Black
}

func (g *Game) clock(color PlayerColor) *Clock {
	if color == PlayerColorWhite {
		return g.whiteClock
	}
	return g.blackClock
}

// AddPlayer seats the player on the first free color, white first.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	if playerID == ComputerPlayerID {
		return "", ErrReservedPlayerID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, color := range []PlayerColor{PlayerColorWhite, PlayerColorBlack} {
		if g.seat(color).ID == playerID {
			return color, nil
		}
	}
	for _, color := range []PlayerColor{PlayerColorWhite, PlayerColorBlack} {
		if g.seat(color).ID == "" {
			g.seat(color).ID = playerID
			g.startClockIfReady()
			return color, nil
		}
	}
	return "", ErrGameFull
}

// TakeSeat seats a player, or the computer, on a specific color.
func (g *Game) TakeSeat(playerID string, color PlayerColor) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat := g.seat(color)
	if seat.ID != "" && seat.ID != playerID {
		return fmt.Errorf("%s seat: %w", color, ErrGameFull)
	}
	seat.ID = playerID
	seat.IsComputer = playerID == ComputerPlayerID
	g.startClockIfReady()
	return nil
}

// startClockIfReady starts the clock of the side to move once both seats
// are taken. Must be called with g.mu held.
func (g *Game) startClockIfReady() {
	if g.state.Resolve != nil || g.canSpectate() {
		return
	}
	g.clock(g.state.ToMove).Start()
}

// GetState returns a copy that is safe to read and marshal without the lock.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshotState()
}

func (g *Game) snapshotState() GameState {
	state := g.state
	state.Board = g.state.Board.Clone()
	state.Players.White.TimeLeft = tenths(g.whiteClock.GetTimeLeft())
	state.Players.Black.TimeLeft = tenths(g.blackClock.GetTimeLeft())
	return state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	_, ok := g.humanSeat(playerID)
	return ok
}

// humanSeat finds the color a human player sits on. Computer seats never match.
func (g *Game) humanSeat(playerID string) (PlayerColor, bool) {
	if playerID == "" {
		return "", false
	}
	for _, color := range []PlayerColor{PlayerColorWhite, PlayerColorBlack} {
		seat := g.seat(color)
		if seat.ID == playerID && !seat.IsComputer {
			return color, true
		}
	}
	return "", false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// ComputerToMove reports whether the side to move is the built-in opponent
// and the game is still running.
func (g *Game) ComputerToMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.Resolve == nil && g.seat(g.state.ToMove).IsComputer
}

// LegalMovesAt lists the safe moves of the piece on pos, for highlighting.
func (g *Game) LegalMovesAt(pos Position) []SimpleMove {
	g.mu.Lock()
	defer g.mu.Unlock()

	piece := g.state.Board.PieceAt(pos)
	if piece == nil {
		return []SimpleMove{}
	}
	return g.state.Board.LegalMoves(piece)
}

func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil {
		return ErrGameOver
	}
	color, ok := g.humanSeat(playerID)
	if !ok {
		return ErrNotInGame
	}
	if color != g.state.ToMove {
		return ErrNotYourTurn
	}
	if err := g.validateMove(move); err != nil {
		return err
	}
	return g.executeMove(SimpleMove{From: move.From, To: move.To})
}

// PlayComputerMove asks choose for the computer's move and commits it.
func (g *Game) PlayComputerMove(choose ComputerMoveChooser) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil {
		return ErrGameOver
	}
	if !g.seat(g.state.ToMove).IsComputer {
		return ErrNotComputer
	}
	move, err := choose(g.state.Board, g.state.ToMove)
	if err != nil {
		return fmt.Errorf("computer move for %s: %w", g.state.ToMove, err)
	}
	piece := g.state.Board.PieceAt(move.From)
	if piece == nil || piece.Color != g.state.ToMove {
		return fmt.Errorf("computer move %v: %w", move, ErrIllegalMove)
	}
	return g.executeMove(move)
}

func (g *Game) validateMove(move WSMove) error {
	if !boundaryCheck(move.From) || !boundaryCheck(move.To) {
		return fmt.Errorf("invalid move: %w", ErrOutOfBounds)
	}
	piece := g.state.Board.PieceAt(move.From)
	if piece == nil {
		return ErrNoPiece
	}
	if piece.Color != g.state.ToMove {
		return ErrNotYourTurn
	}
	if !g.state.Board.IsLegal(SimpleMove{From: move.From, To: move.To}) {
		return ErrIllegalMove
	}
	return nil
}

func (g *Game) executeMove(move SimpleMove) error {
	mover := g.state.ToMove
	g.clock(mover).Stop()
	if g.clock(mover).Expired() {
		g.resolve(ResolveTimeout, mover.Opponent())
		g.broadcast()
		return fmt.Errorf("%s ran out of time: %w", mover, ErrGameOver)
	}

	ply := g.state.Board.CommitMove(move.From, move.To)
	g.state.LastPly = &ply

	g.switchTurn()
	g.refreshStatus()

	switch {
	case g.state.IsCheck:
		g.state.Sound = "check"
	case ply.Promotion != "":
		g.state.Sound = "promote"
	case ply.CastleRookMove != nil:
		g.state.Sound = "castle"
	case ply.CapturedPiece != nil:
		g.state.Sound = "capture"
	default:
		g.state.Sound = "move"
	}

	if g.state.Resolve == nil {
		g.clock(g.state.ToMove).Start()
	}
	g.broadcast()
	return nil
}

// refreshStatus recomputes check and game end for the side to move.
func (g *Game) refreshStatus() {
	board := g.state.Board
	toMove := g.state.ToMove
	g.state.IsCheck = board.IsInCheck(toMove)
	if board.IsCheckmate(toMove) {
		g.resolve(ResolveCheckmate, toMove.Opponent())
	} else if board.IsStalemate(toMove) {
		g.resolve(ResolveStalemate, "")
	}
}

func (g *Game) resolve(result string, winner PlayerColor) {
	g.state.Resolve = &result
	if winner != "" {
		g.state.Winner = &winner
	}
	g.whiteClock.Stop()
	g.blackClock.Stop()
}

func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil {
		return ErrGameOver
	}
	color, ok := g.humanSeat(playerID)
	if !ok {
		return ErrNotInGame
	}
	g.resolve(ResolveResign, color.Opponent())
	g.broadcast()
	return nil
}

func (g *Game) switchTurn() {
	g.state.ToMove = g.state.ToMove.Opponent()
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	connID := fmt.Sprintf("%p", conn)

	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the existing connection; the caller closes the new one
		g.connections.mu.Unlock()
		return ErrAlreadyConnected
	}

	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection %s for player %s", g.ID, connID, playerID)

	g.mu.Lock()
	g.broadcast()
	g.mu.Unlock()
	return nil
}

// UnregisterConnection drops the player's connection if it is still conn.
func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Printf("game %s: unregistering connection %p for player %s", g.ID, conn, playerID)
		delete(g.connections.connections, playerID)
	}
}

// Send writes v to one connection of this game, never concurrently with a broadcast.
func (g *Game) Send(conn *websocket.Conn, v any) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()

	return conn.WriteJSON(v)
}

// broadcast must be called with g.mu held; the state is copied before the
// goroutine writes it out.
func (g *Game) broadcast() {
	g.seq++
	state := g.snapshotState()
	go g.broadcastState(g.seq, state)
}

// broadcastState sends state to every connection unless a newer state has
// already gone out. It reports whether the state was sent.
func (g *Game) broadcastState(seq uint64, state GameState) bool {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()

	if seq <= g.connections.lastSeq {
		return false
	}
	g.connections.lastSeq = seq

	jsonGameState, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return false
	}

	g.connections.mu.RLock()
	activeConnections := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	failed := []string{}
	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(jsonGameState),
		}); err != nil {
			log.Printf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			failed = append(failed, playerID)
		}
	}

	if len(failed) > 0 {
		g.connections.mu.Lock()
		for _, playerID := range failed {
			if g.connections.connections[playerID] == activeConnections[playerID] {
				delete(g.connections.connections, playerID)
			}
		}
		g.connections.mu.Unlock()
	}
	return true
}
