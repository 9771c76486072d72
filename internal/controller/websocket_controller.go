package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/benbeisheim/xxlchess-backend/internal/model"
	"github.com/benbeisheim/xxlchess-backend/internal/service"
	"github.com/benbeisheim/xxlchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("Failed to register connection: %v", err)
		if errors.Is(err, model.ErrAlreadyConnected) {
			c.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
			)
		}
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}

		if messageType == websocket.TextMessage {
			var msg ws.Message
			if err := json.Unmarshal(message, &msg); err != nil {
				log.Printf("parse error: %v", err)
				continue
			}

			if err := wsc.handleMessage(c, gameID, playerID, msg); err != nil {
				log.Printf("handle error: %v", err)
				wsc.sendError(c, gameID, err.Error())
			}
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID, c)
}

func (wsc *WebSocketController) handleMessage(c *websocket.Conn, gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeResign:
		return wsc.gameService.Resign(gameID, playerID)

	case ws.MessageTypeLegalMoves:
		var pos model.Position
		if err := json.Unmarshal(msg.Payload, &pos); err != nil {
			return err
		}
		moves, err := wsc.gameService.GetLegalMoves(gameID, pos)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, moves)
		if err != nil {
			return err
		}
		return wsc.gameService.Send(gameID, c, reply)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking waits on a websocket until the player is paired, sends
// the match event and closes.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals("playerID").(string)
	ch := make(chan string, 1)
	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, ch); err != nil {
		log.Printf("Failed to register matchmaking channel: %v", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	event, ok := <-ch
	if !ok {
		c.Close()
		return
	}
	if err := c.WriteMessage(websocket.TextMessage, []byte(event)); err != nil {
		log.Printf("matchmaking write error: %v", err)
	}
	c.Close()
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, gameID, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := wsc.gameService.Send(gameID, c, msg); err != nil {
		log.Printf("write error: %v", err)
	}
}
