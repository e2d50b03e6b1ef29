// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/lenskeep/studio/internal/api/v1/handlers"
)

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Health check
	HealthCheck = "HealthCheck"

	// Job routes
	GetJobs     = "GetJobs"
	GetJob      = "GetJob"
	GetJobWorks = "GetJobWorks"
	CreateJob   = "CreateJob"
	ConfirmJob  = "ConfirmJob"

	// Task routes
	GetTask          = "GetTask"
	ProcessTask      = "ProcessTask"
	MarkTaskResponse = "MarkTaskResponse"
)

// RegisterRoutes configures all the v1 routes
//
// NOTE: route ordering is important because routes will try and match in the
// order they are registered; param urls (/:id) go after fixed slugs.
func RegisterRoutes(
	app *fiber.App,
	jobHandler *handlers.JobHandler,
	taskHandler *handlers.TaskHandler,
) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	// API v1 routes
	v1 := app.Group(APIv1Prefix)

	// Job endpoints
	jobs := v1.Group("/jobs")
	jobs.Get("/", jobHandler.ListJobs).Name(GetJobs)
	jobs.Get("/:id", jobHandler.GetJob).Name(GetJob)
	jobs.Get("/:id/works", jobHandler.ListJobWorks).Name(GetJobWorks)
	jobs.Post("/", jobHandler.CreateJob).Name(CreateJob)
	jobs.Post("/:id/confirm", jobHandler.ConfirmJob).Name(ConfirmJob)

	// Task endpoints
	tasks := v1.Group("/tasks")
	tasks.Get("/:id", taskHandler.GetTask).Name(GetTask)
	tasks.Post("/:id/process", taskHandler.ProcessTask).Name(ProcessTask)
	tasks.Post("/:id/response", taskHandler.MarkUserResponse).Name(MarkTaskResponse)
}
