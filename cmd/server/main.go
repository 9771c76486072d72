package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbeisheim/xxlchess-backend/internal/ai"
	"github.com/benbeisheim/xxlchess-backend/internal/config"
	"github.com/benbeisheim/xxlchess-backend/internal/controller"
	"github.com/benbeisheim/xxlchess-backend/internal/middleware"
	"github.com/benbeisheim/xxlchess-backend/internal/service"
	"github.com/benbeisheim/xxlchess-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	board, err := cfg.Board()
	if err != nil {
		log.Fatalf("layout: %v", err)
	}

	store, err := storage.NewStorage(cfg.DataDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer store.Close()

	// Initialize services
	gameManager := service.NewGameManager(service.ManagerOptions{
		Board:         board,
		BaseTime:      cfg.BaseTime(),
		Increment:     cfg.Increment(),
		Store:         store,
		Selector:      ai.NewRandomSelector(),
		MatchInterval: time.Second,
	})
	defer gameManager.Close()

	restored, err := gameManager.Restore()
	if err != nil {
		log.Printf("restore: %v", err)
	}
	log.Printf("restored %d games", restored)

	gameService := service.NewGameService(gameManager, cfg.PlayerColour)

	app := newApp(cfg, gameService)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Printf("listen: %v", err)
	}
}

func newApp(cfg config.Config, gameService *service.GameService) *fiber.App {
	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         cfg.AllowedOrigins,
	}

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/matchmaking", middleware.WebSocketUpgrade(false),
		websocket.New(wsController.HandleMatchmaking, wsConfig))
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(true),
		websocket.New(wsController.HandleConnection, wsConfig))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/resign", gameController.Resign)

	return app
}
