package controller

import (
	"github.com/benbeisheim/shashki-backend/internal/middleware"
	"github.com/benbeisheim/shashki-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST and WebSocket endpoints on app.
func RegisterRoutes(app *fiber.App, gameService *service.GameService, origins []string) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	requireGame := middleware.RequireGame(gameService.GameExists)

	app.Get("/ws/game/:gameId", requireGame, middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}))

	api := app.Group("/api")

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", requireGame, gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", requireGame, gameController.LegalMoves)
	gameRoutes.Post("/:gameId/click", requireGame, gameController.Click)
	gameRoutes.Post("/:gameId/move", requireGame, gameController.MakeMove)
	gameRoutes.Post("/:gameId/undo", requireGame, gameController.Undo)
	gameRoutes.Post("/:gameId/reset", requireGame, gameController.Reset)
}
