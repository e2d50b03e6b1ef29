package main

import (
	"strconv"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/lenskeep/studio/config"
	"github.com/lenskeep/studio/internal/api/v1/handlers"
	"github.com/lenskeep/studio/internal/api/v1/middleware"
	"github.com/lenskeep/studio/internal/api/v1/routes"
	"github.com/lenskeep/studio/internal/db"
	"github.com/lenskeep/studio/internal/db/repos"
	"github.com/lenskeep/studio/internal/logger"
	"github.com/lenskeep/studio/internal/notify"
	"github.com/lenskeep/studio/internal/services"
)

func main() {
	// Load .env file if present; real environments set variables directly
	_ = godotenv.Load()

	logger.InitializeAndConfigure()

	port, err := strconv.Atoi(config.GetEnv("DB_PORT", "5432"))
	if err != nil {
		logger.Fatalf("Invalid DB_PORT: %v", err)
	}
	database, err := db.New(db.Options{
		Host:     config.GetEnv("DB_HOST", ""),
		User:     config.GetEnv("DB_USER", ""),
		Password: config.GetEnv("DB_PASSWORD", ""),
		DBName:   config.GetEnv("DB_NAME", ""),
		Port:     port,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	company := config.LoadCompany()
	sender := notify.NewLogSender()

	jobRepo := repos.NewJobRepository(database)
	workRepo := repos.NewWorkRepository(database)
	taskRepo := repos.NewTaskRepository(database)

	workflow := services.NewWorkflowService(database)
	processor := services.NewProcessor(database, sender, company)
	rollup := services.NewRollupService(database)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})
	app.Use(middleware.Logger())

	routes.RegisterRoutes(
		app,
		handlers.NewJobHandler(jobRepo, workRepo, workflow, rollup),
		handlers.NewTaskHandler(taskRepo, processor),
	)

	addr := ":" + config.GetEnv("API_PORT", routes.DefaultPort)
	logger.Infof("Starting API server on %s", addr)
	if err := app.Listen(addr); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
