package model

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/shashki-backend/internal/obslog"
	"github.com/benbeisheim/shashki-backend/internal/ws"
	"go.uber.org/zap"
)

// FrameWriter is the outgoing side of a client connection.
type FrameWriter interface {
	WriteJSON(v interface{}) error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]FrameWriter // connID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]FrameWriter),
	}
}

// Describer fills in the presentation fields of a frame. last is the
// move that produced it, nil otherwise.
type Describer func(frame Frame, last *MoveResult) Frame

// Game is one hotseat session: a GameState, its undo history and the
// clients watching it. All methods are safe for concurrent use.
type Game struct {
	ID          string
	mu          sync.Mutex
	startedAt   time.Time
	state       GameState
	plies       int
	history     HistoryStore
	describe    Describer
	connections *GameConnections
}

func NewGame(id string, history HistoryStore) *Game {
	return &Game{
		ID:          id,
		startedAt:   time.Now(),
		state:       NewGameState(),
		history:     history,
		connections: NewGameConnections(),
	}
}

// SetDescriber installs the hook applied to every frame the game hands out.
func (g *Game) SetDescriber(d Describer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.describe = d
}

func (g *Game) Frame() Frame {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frame(nil)
}

// frame builds the current frame. g.mu must be held.
func (g *Game) frame(last *MoveResult) Frame {
	f := g.state.Frame()
	f.Plies = g.plies
	f.StartedAt = g.startedAt
	if g.describe != nil {
		f = g.describe(f, last)
	}
	return f
}

// publish builds the frame after a state change and sends it to every
// connection. It runs under g.mu so clients see frames in state order.
func (g *Game) publish(last *MoveResult) Frame {
	f := g.frame(last)
	g.Broadcast(f)
	return f
}

func (g *Game) StartedAt() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.startedAt
}

// Plies is the number of moves applied since the start, net of undos.
func (g *Game) Plies() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.plies
}

// Moves answers a legal-move query for sq without touching the selection.
func (g *Game) Moves(sq Square) ([]Move, error) {
	if !sq.OnBoard() {
		return nil, errOffBoard
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.MovesFrom(sq), nil
}

// Click applies a square click. The returned frame is the one broadcast.
func (g *Game) Click(ctx context.Context, sq Square) (ClickResult, Frame, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	before := g.state.Snapshot()
	res, err := g.state.Click(sq)
	if err != nil {
		return ClickResult{}, g.frame(nil), err
	}
	if res.Action == ClickMove {
		if err := g.record(ctx, before); err != nil {
			return ClickResult{}, g.frame(nil), err
		}
	}
	return res, g.publish(res.Result), nil
}

func (g *Game) Play(ctx context.Context, from, to Square) (MoveResult, Frame, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	before := g.state.Snapshot()
	res, err := g.state.Play(from, to)
	if err != nil {
		return MoveResult{}, g.frame(nil), err
	}
	if err := g.record(ctx, before); err != nil {
		return MoveResult{}, g.frame(nil), err
	}
	return res, g.publish(&res), nil
}

// record pushes the pre-move snapshot. If the store fails the move is
// rolled back so the game never gets ahead of its history.
func (g *Game) record(ctx context.Context, before Snapshot) error {
	if err := g.history.Push(ctx, g.ID, before); err != nil {
		g.state.Restore(before)
		return fmt.Errorf("push history: %w", err)
	}
	g.plies++
	return nil
}

// Undo restores the latest snapshot. It reports false when there was
// nothing to undo.
func (g *Game) Undo(ctx context.Context) (bool, Frame, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap, ok, err := g.history.Pop(ctx, g.ID)
	if err != nil {
		return false, g.frame(nil), fmt.Errorf("pop history: %w", err)
	}
	if !ok {
		return false, g.frame(nil), nil
	}
	g.state.Restore(snap)
	if g.plies > 0 {
		g.plies--
	}
	return true, g.publish(nil), nil
}

func (g *Game) Reset(ctx context.Context) (Frame, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.history.Clear(ctx, g.ID); err != nil {
		return g.frame(nil), fmt.Errorf("clear history: %w", err)
	}
	g.state.Reset()
	g.plies = 0
	g.startedAt = time.Now()
	return g.publish(nil), nil
}

// Attach sends conn the current frame and registers it, both under the
// game lock so no broadcast can slip in between.
func (g *Game) Attach(connID string, conn FrameWriter) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	msg, err := FrameMessage(g.frame(nil))
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(msg); err != nil {
		return err
	}
	g.RegisterConnection(connID, conn)
	return nil
}

func (g *Game) RegisterConnection(connID string, conn FrameWriter) {
	g.connections.mu.Lock()
	g.connections.connections[connID] = conn
	g.connections.mu.Unlock()
	obslog.L().Debug("ws_register", zap.String("game_id", g.ID), zap.String("conn_id", connID))
}

func (g *Game) UnregisterConnection(connID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	delete(g.connections.connections, connID)
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// Broadcast sends frame to every connection. Connections that fail to
// receive it are dropped. Game methods that change state broadcast on
// their own.
func (g *Game) Broadcast(frame Frame) {
	msg, err := FrameMessage(frame)
	if err != nil {
		obslog.L().Error("frame_marshal", zap.String("game_id", g.ID), zap.Error(err))
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for connID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			obslog.L().Warn("frame_send", zap.String("game_id", g.ID), zap.String("conn_id", connID), zap.Error(err))
			delete(g.connections.connections, connID)
		}
	}
}

// FrameMessage wraps frame in a websocket envelope.
func FrameMessage(frame Frame) (ws.Message, error) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return ws.Message{}, err
	}
	return ws.Message{Type: ws.MessageTypeFrame, Payload: payload}, nil
}
