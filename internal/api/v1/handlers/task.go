package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lenskeep/studio/internal/db/repos"
	"github.com/lenskeep/studio/internal/services"
)

// TaskHandler handles task related HTTP requests
type TaskHandler struct {
	taskRepo  *repos.TaskRepository
	processor *services.Processor
}

// NewTaskHandler creates a new instance of TaskHandler
func NewTaskHandler(taskRepo *repos.TaskRepository, processor *services.Processor) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo, processor: processor}
}

// GetTask handles retrieving a task by ID
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidID})
	}

	task, err := h.taskRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrMsgTaskNotFound})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   ErrMsgTaskListFailed,
			"details": err.Error(),
		})
	}
	return c.JSON(task)
}

// ProcessTask handles a staff triggered task transition
func (h *TaskHandler) ProcessTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidID})
	}

	if err := h.processor.Process(c.Context(), uint(id)); err != nil {
		return respondWithDomainError(c, err, ErrMsgTaskProcessFailed)
	}
	return c.JSON(fiber.Map{"processed": true})
}

// UserResponseRequest is the payload for a client response update
type UserResponseRequest struct {
	Reset bool `json:"reset"`
}

// MarkUserResponse handles advancing or resetting the client side of a task
func (h *TaskHandler) MarkUserResponse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidID})
	}

	var req UserResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   ErrMsgInvalidReqBody,
			"details": err.Error(),
		})
	}

	if err := h.processor.MarkUserResponse(c.Context(), uint(id), req.Reset); err != nil {
		return respondWithDomainError(c, err, ErrMsgTaskProcessFailed)
	}
	return c.JSON(fiber.Map{"updated": true})
}
