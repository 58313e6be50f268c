package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/shashki-backend/internal/model"
	"github.com/benbeisheim/shashki-backend/internal/obslog"
	"github.com/benbeisheim/shashki-backend/internal/service"
	"github.com/benbeisheim/shashki-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// lockedConn serializes writes; broadcasts and replies to the reading
// goroutine may hit the same connection at once.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	connID, _ := c.Locals("wsConnID").(string)
	if connID == "" {
		connID = uuid.New().String()
	}
	log := obslog.L().With(zap.String("game_id", gameID), zap.String("conn_id", connID))

	conn := &lockedConn{conn: c}
	if err := wsc.gameService.RegisterConnection(gameID, connID, conn); err != nil {
		log.Warn("ws_register_failed", zap.Error(err))
		_ = c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, connID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug("ws_closed", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			sendError(conn, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, msg); err != nil {
			log.Debug("ws_message_rejected", zap.String("type", string(msg.Type)), zap.Error(err))
			sendError(conn, err.Error())
		}
	}
}

// handleMessage applies one client message. The resulting frame reaches
// this client through the game's broadcast like every other watcher.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	ctx := context.Background()
	switch msg.Type {
	case ws.MessageTypeClick:
		var sq model.Square
		if err := json.Unmarshal(msg.Payload, &sq); err != nil {
			return fmt.Errorf("invalid click payload: %w", err)
		}
		_, _, err := wsc.gameService.HandleClick(ctx, gameID, sq)
		return err

	case ws.MessageTypeMove:
		var req model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("invalid move payload: %w", err)
		}
		_, _, err := wsc.gameService.HandleMove(ctx, gameID, req)
		return err

	case ws.MessageTypeUndo:
		_, _, err := wsc.gameService.Undo(ctx, gameID)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.Reset(ctx, gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func sendError(conn model.FrameWriter, errorMsg string) {
	payload, err := json.Marshal(ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	_ = conn.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	})
}
