package service

import (
	"fmt"

	"github.com/benbeisheim/xxlchess-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager  *GameManager
	defaultColor model.PlayerColor
}

func NewGameService(gameManager *GameManager, defaultColor model.PlayerColor) *GameService {
	if !defaultColor.Valid() {
		defaultColor = model.PlayerColorWhite
	}
	return &GameService{
		gameManager:  gameManager,
		defaultColor: defaultColor,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

// CreateComputerGame starts a game against the built-in opponent. An empty
// color falls back to the configured player colour.
func (gs *GameService) CreateComputerGame(playerID string, color model.PlayerColor) (string, model.PlayerColor, error) {
	if color == "" {
		color = gs.defaultColor
	}
	if !color.Valid() {
		return "", "", fmt.Errorf("%q: %w", color, ErrInvalidColor)
	}
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateComputerGame(gameID, playerID, color); err != nil {
		return "", "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, color, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) GetLegalMoves(gameID string, pos model.Position) ([]model.SimpleMove, error) {
	return gs.gameManager.LegalMoves(gameID, pos)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) Resign(gameID string, playerID string) error {
	return gs.gameManager.Resign(gameID, playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) Send(gameID string, conn *websocket.Conn, v any) error {
	return gs.gameManager.Send(gameID, conn, v)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
