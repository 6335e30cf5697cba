package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/hotseat-chess/internal/model"
	"github.com/benbeisheim/hotseat-chess/internal/service"
	"github.com/benbeisheim/hotseat-chess/internal/ws"
	"github.com/gofiber/fiber/v2/log"
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
	playerID, _ := c.Locals("wsPlayerID").(string)
	out := model.NewLockedObserver(c)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, out); err != nil {
		log.Warnf("failed to register connection for game %s: %v", gameID, err)
		if !errors.Is(err, model.ErrAlreadyConnected) {
			c.Close()
		}
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read error: %v", gameID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(out, fmt.Sprintf("parse error: %v", err))
			continue
		}

		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			wsc.sendError(out, err.Error())
			continue
		}
		if err := out.WriteJSON(reply); err != nil {
			log.Warnf("game %s: write error: %v", gameID, err)
			return
		}
	}
}

// handleMessage dispatches one inbound message and builds the direct reply.
// State changes reach every observer through the game's broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return ws.Message{}, err
		}
		result, err := wsc.gameService.HandleMove(gameID, playerID, move)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(ws.MessageTypeMoveResult, result)

	case ws.MessageTypeLegalMoves:
		var req ws.LegalMovesRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return ws.Message{}, err
		}
		moves, err := wsc.gameService.LegalMoves(gameID, req.From)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(ws.MessageTypeLegalMoves, map[string]interface{}{
			"from":  req.From,
			"moves": moves,
		})

	case ws.MessageTypeGameState:
		state, err := wsc.gameService.GetGameState(gameID)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(ws.MessageTypeGameState, state)

	default:
		return ws.Message{}, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(out model.Observer, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := out.WriteJSON(msg); err != nil {
		log.Debugf("failed to send error reply: %v", err)
	}
}
