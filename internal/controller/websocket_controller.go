package controller

import (
	"encoding/json"
	"log"

	"github.com/NavyAnt24/Chess/internal/model"
	"github.com/NavyAnt24/Chess/internal/service"
	"github.com/NavyAnt24/Chess/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"
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
	clientID, _ := c.Locals("clientID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, clientID, c); err != nil {
		log.Printf("Failed to register connection: %v", err)
		if !errors.Is(err, model.ErrConnectionExists) {
			c.Close()
		}
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			wsc.sendError(gameID, clientID, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, msg); err != nil {
			log.Printf("handle error: %v", err)
			wsc.sendError(gameID, clientID, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, clientID, c)
}

// handleMessage applies one inbound message. Successful moves reach every
// observer through the game's broadcast.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, move)
		return err
	default:
		return errors.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID, clientID, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		log.Printf("failed to build error message: %v", err)
		return
	}
	if err := wsc.gameService.Notify(gameID, clientID, msg); err != nil {
		log.Printf("failed to send error to client %s: %v", clientID, err)
	}
}
