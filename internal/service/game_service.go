package service

import (
	"context"
	"fmt"

	"github.com/benbeisheim/shashki-backend/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GameExists(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) GetFrame(gameID string) (model.Frame, error) {
	return gs.gameManager.GetFrame(gameID)
}

func (gs *GameService) LegalMoves(gameID string, sq model.Square) ([]model.Move, error) {
	return gs.gameManager.LegalMoves(gameID, sq)
}

func (gs *GameService) HandleClick(ctx context.Context, gameID string, sq model.Square) (model.ClickResult, model.Frame, error) {
	return gs.gameManager.Click(ctx, gameID, sq)
}

func (gs *GameService) HandleMove(ctx context.Context, gameID string, move model.MoveRequest) (model.MoveResult, model.Frame, error) {
	return gs.gameManager.MakeMove(ctx, gameID, move)
}

func (gs *GameService) Undo(ctx context.Context, gameID string) (bool, model.Frame, error) {
	return gs.gameManager.Undo(ctx, gameID)
}

func (gs *GameService) Reset(ctx context.Context, gameID string) (model.Frame, error) {
	return gs.gameManager.Reset(ctx, gameID)
}

func (gs *GameService) RegisterConnection(gameID, connID string, conn model.FrameWriter) error {
	return gs.gameManager.RegisterConnection(gameID, connID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, connID string) {
	gs.gameManager.UnregisterConnection(gameID, connID)
}
