package handlers

import (
	"errors"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lenskeep/studio/internal/db/models"
	"github.com/lenskeep/studio/internal/db/repos"
	"github.com/lenskeep/studio/internal/services"
)

// JobHandler handles job related HTTP requests
type JobHandler struct {
	jobRepo  *repos.JobRepository
	workRepo *repos.WorkRepository
	workflow *services.Workflow
	rollup   *services.Rollup
}

// NewJobHandler creates a new instance of JobHandler
func NewJobHandler(jobRepo *repos.JobRepository, workRepo *repos.WorkRepository, workflow *services.Workflow, rollup *services.Rollup) *JobHandler {
	return &JobHandler{
		jobRepo:  jobRepo,
		workRepo: workRepo,
		workflow: workflow,
		rollup:   rollup,
	}
}

// CreateJobRequest is the payload for a client job intake request
type CreateJobRequest struct {
	Name        string     `json:"name"`
	ClientName  string     `json:"client_name"`
	ClientEmail string     `json:"client_email"`
	WorkflowID  *uint      `json:"workflow_id,omitempty"`
	PackageID   *uint      `json:"package_id,omitempty"`
	Venue       string     `json:"venue,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	StartTime   string     `json:"start_time,omitempty"`
	EndTime     string     `json:"end_time,omitempty"`
	Note        string     `json:"note,omitempty"`
}

// CreateJob handles a new job intake request
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	var req CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   ErrMsgInvalidReqBody,
			"details": err.Error(),
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgJobNameRequired,
		})
	}

	job := &models.Job{
		Name:        req.Name,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Status:      models.JobStatusRequest,
		WorkflowID:  req.WorkflowID,
		PackageID:   req.PackageID,
		Venue:       req.Venue,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Note:        req.Note,
	}
	if err := h.jobRepo.Create(c.Context(), job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   ErrMsgJobCreateFailed,
			"details": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// ListJobs handles listing jobs with optional status filter and pagination
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	opts := &models.ListOptions{
		Limit:  c.QueryInt("limit", models.DefaultPageSize),
		Offset: c.QueryInt("offset", 0),
	}

	var status *models.JobStatus
	if s := c.Query("status"); s != "" {
		parsed, err := models.ParseJobStatus(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   ErrMsgInvalidReqFormat,
				"details": err.Error(),
			})
		}
		status = &parsed
	}

	jobs, err := h.jobRepo.List(c.Context(), status, opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   ErrMsgJobListFailed,
			"details": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

// GetJob handles retrieving a job by ID, including completion percentage
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidID})
	}

	job, err := h.jobRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrMsgJobNotFound})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   ErrMsgJobGetFailed,
			"details": err.Error(),
		})
	}

	completion, err := h.rollup.JobCompletionPercentage(c.Context(), job.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   ErrMsgJobGetFailed,
			"details": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"job": job, "completion": completion})
}

// ConfirmJob handles confirming a job request, which instantiates its
// workflow and registers its invoice
func (h *JobHandler) ConfirmJob(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidID})
	}

	if err := h.workflow.ConfirmJob(c.Context(), uint(id)); err != nil {
		return respondWithDomainError(c, err, ErrMsgJobConfirmFailed)
	}
	return c.JSON(fiber.Map{"confirmed": true})
}

// ListJobWorks handles listing the work graph of a job
func (h *JobHandler) ListJobWorks(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidID})
	}

	works, err := h.workRepo.ListByJob(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   ErrMsgTaskListFailed,
			"details": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"works": works})
}

// respondWithDomainError maps workflow engine errors to HTTP status codes
func respondWithDomainError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrMissingWorkflow),
		errors.Is(err, services.ErrAlreadyInstantiated),
		errors.Is(err, services.ErrOutOfSequence),
		errors.Is(err, services.ErrInvoiceNotSettled),
		errors.Is(err, services.ErrAlreadyCompleted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   fallback,
			"details": err.Error(),
		})
	}
}
