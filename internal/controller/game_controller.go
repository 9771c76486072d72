package controller

import (
	"errors"

	"github.com/benbeisheim/xxlchess-backend/internal/model"
	"github.com/benbeisheim/xxlchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	VsComputer bool              `json:"vsComputer"`
	Color      model.PlayerColor `json:"color"`
}

// statusFor maps engine and service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotInGame), errors.Is(err, model.ErrReservedPlayerID):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull), errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrNotYourTurn), errors.Is(err, model.ErrAlreadyQueued),
		errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrIllegalMove), errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrOutOfBounds), errors.Is(err, service.ErrInvalidColor):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	if req.VsComputer {
		playerID := c.Locals("playerID").(string)
		gameID, color, err := gc.gameService.CreateComputerGame(playerID, req.Color)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{
			"message": "Game created",
			"game_id": gameID,
			"color":   color,
		})
	}

	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(gameState)
}

// GetLegalMoves answers GET /api/game/:gameId/moves?x=&y= with the safe
// moves of the piece on that square.
func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	pos := model.Position{X: c.QueryInt("x", -1), Y: c.QueryInt("y", -1)}

	moves, err := gc.gameService.GetLegalMoves(gameID, pos)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"from":  pos,
		"moves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}

	if err := gc.gameService.HandleMove(gameID, playerID, move); err != nil {
		return errorResponse(c, err)
	}

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) Resign(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.Resign(gameID, playerID); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game resigned",
	})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}
