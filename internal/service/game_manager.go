// service/game_manager.go
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/xxlchess-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrInvalidColor = errors.New("invalid color")
)

// GameStore persists the current position of each game.
type GameStore interface {
	SaveGame(snapshot model.GameSnapshot) error
	LoadAll() ([]model.GameSnapshot, error)
}

// MoveSelector chooses the computer's move on the live board.
type MoveSelector interface {
	GetMove(board *model.BoardState, color model.PlayerColor) (model.SimpleMove, error)
}

type ManagerOptions struct {
	Board     *model.BoardState
	BaseTime  time.Duration
	Increment time.Duration
	Store     GameStore
	Selector  MoveSelector
	// MatchInterval is how often the matchmaking queue is polled; zero disables the poller.
	MatchInterval time.Duration
}

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	mu               sync.RWMutex
	opts             ManagerOptions
	stop             chan struct{}
	done             chan struct{}
}

func NewGameManager(opts ManagerOptions) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		opts:             opts,
		stop:             make(chan struct{}),
		done:             make(chan struct{}),
	}

	if opts.MatchInterval > 0 {
		go gm.processMatchmaking(opts.MatchInterval)
	} else {
		close(gm.done)
	}

	return gm
}

// Close stops the matchmaking poller.
func (gm *GameManager) Close() {
	select {
	case <-gm.stop:
	default:
		close(gm.stop)
	}
	<-gm.done
}

// Restore loads every stored game back into memory.
func (gm *GameManager) Restore() (int, error) {
	if gm.opts.Store == nil {
		return 0, nil
	}
	snapshots, err := gm.opts.Store.LoadAll()
	if err != nil {
		return 0, fmt.Errorf("restore games: %w", err)
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	restored := 0
	for _, snapshot := range snapshots {
		game, err := model.RestoreGame(snapshot)
		if err != nil {
			log.Printf("skipping stored game %s: %v", snapshot.ID, err)
			continue
		}
		gm.games[game.ID] = game
		restored++
	}
	return restored, nil
}

func (gm *GameManager) newGame(gameID string) *model.Game {
	return model.NewGame(gameID, model.GameOptions{
		Board:     gm.opts.Board,
		BaseTime:  gm.opts.BaseTime,
		Increment: gm.opts.Increment,
	})
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// Close any previous channel so its reader stops waiting
	if existingCh, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existingCh)
	}

	gm.matchingChannels[playerID] = ch
	return nil
}

func (gm *GameManager) processMatchmaking(interval time.Duration) {
	defer close(gm.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.stop:
			return
		case <-ticker.C:
			gm.matchPlayers()
		}
	}
}

// matchPlayers pairs queued players into new games until fewer than two remain.
func (gm *GameManager) matchPlayers() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for {
		player1, player2, ok := gm.queue.GetNextPair()
		if !ok {
			return
		}

		gameID := uuid.New().String()
		game := gm.newGame(gameID)

		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			log.Printf("matchmaking: adding player %s: %v", player1.ID, err)
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			log.Printf("matchmaking: adding player %s: %v", player2.ID, err)
			continue
		}
		gm.games[gameID] = game
		gm.persist(game)

		sendEventAndCleanup := func(playerID string, event model.MatchFoundEvent) bool {
			ch, ok := gm.matchingChannels[playerID]
			if !ok {
				return false
			}
			select {
			case ch <- mustJSON(event):
				delete(gm.matchingChannels, playerID)
				close(ch)
				return true
			default:
				log.Printf("matchmaking: player %s is not listening", playerID)
				return false
			}
		}

		sent1 := sendEventAndCleanup(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		sent2 := sendEventAndCleanup(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
		if !sent1 || !sent2 {
			// Players can still find the game through GET /api/game/:gameId
			log.Printf("matchmaking: game %s created but not every player was notified", gameID)
		}
	}
}

// UnregisterMatchmakingChannel forgets ch unless it has already been
// replaced by a newer channel for the same player.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	// The creator of the channel is responsible for closing it
	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func mustJSON(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	game := gm.newGame(gameID)
	gm.games[gameID] = game
	gm.persist(game)
	return nil
}

// CreateComputerGame seats the player on color and the computer on the
// other side. If the computer has white it moves straight away.
func (gm *GameManager) CreateComputerGame(gameID, playerID string, color model.PlayerColor) error {
	if playerID == model.ComputerPlayerID {
		return model.ErrReservedPlayerID
	}
	gm.mu.Lock()
	if _, exists := gm.games[gameID]; exists {
		gm.mu.Unlock()
		return ErrGameExists
	}
	game := gm.newGame(gameID)
	if err := game.TakeSeat(playerID, color); err != nil {
		gm.mu.Unlock()
		return err
	}
	if err := game.TakeSeat(model.ComputerPlayerID, color.Opponent()); err != nil {
		gm.mu.Unlock()
		return err
	}
	gm.games[gameID] = game
	gm.mu.Unlock()

	gm.playComputer(game)
	gm.persist(game)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%s: %w", gameID, ErrGameNotFound)
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}

	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", err
	}
	gm.persist(game)
	return color, nil
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if playerID == model.ComputerPlayerID {
		return model.ErrReservedPlayerID
	}
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) LeaveMatchmaking(playerID string) {
	gm.queue.Remove(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.GetState(), nil
}

func (gm *GameManager) LegalMoves(gameID string, pos model.Position) ([]model.SimpleMove, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	return game.LegalMovesAt(pos), nil
}

// MakeMove plays the player's move and, in a game against the computer,
// the computer's reply.
func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	if err := game.MakeMove(playerID, move); err != nil {
		if errors.Is(err, model.ErrGameOver) {
			gm.persist(game)
		}
		return err
	}
	gm.playComputer(game)
	gm.persist(game)
	return nil
}

func (gm *GameManager) Resign(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	if err := game.Resign(playerID); err != nil {
		return err
	}
	gm.persist(game)
	return nil
}

// playComputer answers with at most one computer move, so a game with the
// computer on both seats cannot keep the caller busy.
func (gm *GameManager) playComputer(game *model.Game) {
	if gm.opts.Selector == nil || !game.ComputerToMove() {
		return
	}
	if err := game.PlayComputerMove(gm.opts.Selector.GetMove); err != nil {
		log.Printf("game %s: computer move failed: %v", game.ID, err)
	}
}

func (gm *GameManager) persist(game *model.Game) {
	if gm.opts.Store == nil {
		return
	}
	if err := gm.opts.Store.SaveGame(game.Snapshot()); err != nil {
		log.Printf("game %s: failed to save: %v", game.ID, err)
	}
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.UnregisterConnection(playerID, conn)
}

// Send writes v to conn through the game's writer lock.
func (gm *GameManager) Send(gameID string, conn *websocket.Conn, v any) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.Send(conn, v)
}
