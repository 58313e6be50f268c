// service/game_manager.go
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/shashki-backend/internal/model"
	"github.com/benbeisheim/shashki-backend/internal/msgcat"
	"github.com/benbeisheim/shashki-backend/internal/obslog"
	"github.com/benbeisheim/shashki-backend/internal/store"
	"go.uber.org/zap"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// ResultSaver archives finished games.
type ResultSaver interface {
	SaveResult(ctx context.Context, res store.GameResult) error
}

type GameManager struct {
	games   map[string]*model.Game
	history model.HistoryStore
	catalog *msgcat.Catalog
	results ResultSaver
	mu      sync.RWMutex
}

func NewGameManager(history model.HistoryStore, catalog *msgcat.Catalog) *GameManager {
	return &GameManager{
		games:   make(map[string]*model.Game),
		history: history,
		catalog: catalog,
	}
}

// AttachResults wires an archive for finished games.
func (gm *GameManager) AttachResults(r ResultSaver) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.results = r
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}
	game := model.NewGame(gameID, gm.history)
	game.SetDescriber(gm.describe)
	gm.games[gameID] = game
	obslog.L().Info("game_create", zap.String("game_id", gameID))
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) GetFrame(gameID string) (model.Frame, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Frame{}, err
	}
	return game.Frame(), nil
}

func (gm *GameManager) LegalMoves(gameID string, sq model.Square) ([]model.Move, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.Moves(sq)
}

func (gm *GameManager) Click(ctx context.Context, gameID string, sq model.Square) (model.ClickResult, model.Frame, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.ClickResult{}, model.Frame{}, err
	}
	res, frame, err := game.Click(ctx, sq)
	if err != nil {
		return res, frame, err
	}
	if res.Result != nil {
		gm.afterMove(ctx, game.ID, *res.Result, frame)
	}
	return res, frame, nil
}

func (gm *GameManager) MakeMove(ctx context.Context, gameID string, move model.MoveRequest) (model.MoveResult, model.Frame, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, model.Frame{}, err
	}
	res, frame, err := game.Play(ctx, move.From, move.To)
	if err != nil {
		return res, frame, err
	}
	gm.afterMove(ctx, game.ID, res, frame)
	return res, frame, nil
}

func (gm *GameManager) Undo(ctx context.Context, gameID string) (bool, model.Frame, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return false, model.Frame{}, err
	}
	undone, frame, err := game.Undo(ctx)
	if err != nil {
		return false, frame, err
	}
	if undone {
		obslog.L().Info("game_undo", zap.String("game_id", gameID), zap.Int("plies", frame.Plies))
	}
	return undone, frame, nil
}

func (gm *GameManager) Reset(ctx context.Context, gameID string) (model.Frame, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Frame{}, err
	}
	frame, err := game.Reset(ctx)
	if err != nil {
		return frame, err
	}
	obslog.L().Info("game_reset", zap.String("game_id", gameID))
	return frame, nil
}

func (gm *GameManager) RegisterConnection(gameID, connID string, conn model.FrameWriter) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	// the new client needs the current position
	return game.Attach(connID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, connID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(connID)
}

func (gm *GameManager) describe(frame model.Frame, last *model.MoveResult) model.Frame {
	if gm.catalog != nil {
		frame.Message = gm.catalog.Describe(frame, last)
	}
	return frame
}

// afterMove logs an applied move and archives the game once it is over.
// frame is the position the move produced, read under the game lock.
func (gm *GameManager) afterMove(ctx context.Context, gameID string, res model.MoveResult, frame model.Frame) {
	obslog.L().Info("game_move",
		zap.String("game_id", gameID),
		zap.String("mover", string(res.Mover)),
		zap.String("from", res.From.String()),
		zap.String("to", res.Move.To.String()),
		zap.Int("captured", res.Captured),
		zap.Bool("promoted", res.Promoted),
		zap.Bool("chain", res.ChainContinues),
	)
	if res.Outcome == model.OutcomeNone {
		return
	}
	obslog.L().Info("game_over", zap.String("game_id", gameID), zap.String("outcome", string(res.Outcome)))

	gm.mu.RLock()
	results := gm.results
	gm.mu.RUnlock()
	if results == nil {
		return
	}
	err := results.SaveResult(ctx, store.GameResult{
		GameID:    gameID,
		Outcome:   res.Outcome,
		Tally:     frame.Tally,
		Plies:     frame.Plies,
		StartedAt: frame.StartedAt,
		EndedAt:   time.Now(),
	})
	if err != nil {
		obslog.L().Error("game_result_save", zap.String("game_id", gameID), zap.Error(err))
	}
}
