package controller

import (
	"errors"

	"github.com/benbeisheim/shashki-backend/internal/model"
	"github.com/benbeisheim/shashki-backend/internal/obslog"
	"github.com/benbeisheim/shashki-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	frame, err := gc.gameService.GetFrame(gameID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"frame":   frame,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	frame, err := gc.gameService.GetFrame(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(frame)
}

// LegalMoves answers GET /moves?row=&col= without changing the selection.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	sq, err := squareFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), sq)
	if err != nil {
		return errorResponse(c, err)
	}
	if moves == nil {
		moves = []model.Move{}
	}
	return c.JSON(fiber.Map{
		"from":  sq,
		"moves": moves,
	})
}

func (gc *GameController) Click(c *fiber.Ctx) error {
	var sq model.Square
	if err := c.BodyParser(&sq); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid click body",
		})
	}
	res, frame, err := gc.gameService.HandleClick(c.UserContext(), c.Params("gameId"), sq)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"action": res.Action,
		"result": res.Result,
		"frame":  frame,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req model.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}
	res, frame, err := gc.gameService.HandleMove(c.UserContext(), c.Params("gameId"), req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"result": res,
		"frame":  frame,
	})
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	undone, frame, err := gc.gameService.Undo(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"undone": undone,
		"frame":  frame,
	})
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	frame, err := gc.gameService.Reset(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(frame)
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		obslog.L().Error("request_failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func squareFromQuery(c *fiber.Ctx) (model.Square, error) {
	if c.Query("row") == "" || c.Query("col") == "" {
		return model.Square{}, errors.New("row and col are required")
	}
	row := c.QueryInt("row", -1)
	col := c.QueryInt("col", -1)
	return model.Square{Row: row, Col: col}, nil
}
