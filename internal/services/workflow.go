package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/lenskeep/studio/internal/db/models"
	"github.com/lenskeep/studio/internal/db/repos"
	"github.com/lenskeep/studio/internal/logger"
)

// Workflow materializes the work and task graph for confirmed jobs
type Workflow struct {
	db *gorm.DB
}

// NewWorkflowService creates a new workflow service instance
func NewWorkflowService(db *gorm.DB) *Workflow {
	return &Workflow{db: db}
}

// ConfirmJob moves a job from request to confirmed, instantiates its work
// graph and registers its invoice. The whole confirmation is one
// transaction; a job cannot be confirmed without an assigned workflow.
func (s *Workflow) ConfirmJob(ctx context.Context, jobID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		jobRepo := repos.NewJobRepository(tx)
		job, err := jobRepo.GetByID(ctx, jobID)
		if err != nil {
			return err
		}
		if job.WorkflowID == nil {
			return fmt.Errorf("confirming job %q: %w", job.Name, ErrMissingWorkflow)
		}

		if job.Status != models.JobStatusConfirmed {
			if err := tx.WithContext(ctx).Model(&models.Job{}).
				Where("id = ?", job.ID).
				Update("status", models.JobStatusConfirmed).Error; err != nil {
				return err
			}
			job.Status = models.JobStatusConfirmed
		}

		if err := instantiate(ctx, tx, job); err != nil {
			return err
		}
		return registerInvoiceForJob(ctx, tx, job, job.PackageID != nil)
	})
}

// Instantiate builds the work and task graph for a job on its own. Most
// callers want ConfirmJob; this entry point exists for jobs confirmed through
// other channels.
func (s *Workflow) Instantiate(ctx context.Context, jobID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := repos.NewJobRepository(tx).GetByID(ctx, jobID)
		if err != nil {
			return err
		}
		return instantiate(ctx, tx, job)
	})
}

// instantiate creates one work per work type in the global catalog and, under
// each, one task per blueprint of the job's workflow. It refuses to run twice
// for the same job.
func instantiate(ctx context.Context, tx *gorm.DB, job *models.Job) error {
	if job.WorkflowID == nil {
		return fmt.Errorf("instantiating job %q: %w", job.Name, ErrMissingWorkflow)
	}

	jobRepo := repos.NewJobRepository(tx)
	existing, err := jobRepo.CountWorks(ctx, job.ID)
	if err != nil {
		return err
	}
	if existing > 0 {
		return fmt.Errorf("job %q already has %d works: %w", job.Name, existing, ErrAlreadyInstantiated)
	}

	wfRepo := repos.NewWorkflowRepository(tx)
	workTypes, err := wfRepo.ListWorkTypes(ctx)
	if err != nil {
		return err
	}

	workRepo := repos.NewWorkRepository(tx)
	for _, workType := range workTypes {
		work := &models.Work{
			JobID:     job.ID,
			Name:      workType.Name,
			WorkOrder: workType.WorkOrder,
		}
		if err := workRepo.Create(ctx, work); err != nil {
			return fmt.Errorf("creating work %q: %w", workType.Name, err)
		}

		blueprints, err := wfRepo.ListTemplates(ctx, *job.WorkflowID, workType.ID)
		if err != nil {
			return err
		}
		for i := range blueprints {
			if err := createTask(ctx, tx, job, work, &blueprints[i]); err != nil {
				return err
			}
		}
	}

	// Auto-completed tasks may already finish a phase
	works, err := workRepo.ListByJob(ctx, job.ID)
	if err != nil {
		return err
	}
	for _, work := range works {
		if err := refreshWorkCompletion(ctx, tx, work.ID); err != nil {
			return err
		}
	}

	logger.InfoWithFields("workflow instantiated", map[string]interface{}{
		"job_id": job.ID,
		"works":  len(works),
	})
	return nil
}

// createTask builds a task from one blueprint and persists it, together with
// any satellite records the kind requires at creation time.
func createTask(ctx context.Context, tx *gorm.DB, job *models.Job, work *models.Work, blueprint *models.WorkTemplate) error {
	task := buildTask(work.ID, blueprint)
	taskRepo := repos.NewTaskRepository(tx)
	if err := taskRepo.Create(ctx, task); err != nil {
		return fmt.Errorf("creating task %q: %w", blueprint.Name, err)
	}

	if task.Kind == models.TaskKindAppointment {
		// Appointments start prefilled from the job's scheduling data
		appointment := &models.Appointment{
			TaskID:     task.ID,
			Venue:      job.Venue,
			VenueNotes: job.VenueNotes,
			StartDate:  job.StartDate,
			EndDate:    job.EndDate,
			AllDay:     job.AllDay,
			StartTime:  job.StartTime,
			EndTime:    job.EndTime,
		}
		if err := repos.NewSatelliteRepository(tx).CreateAppointment(ctx, appointment); err != nil {
			return fmt.Errorf("creating appointment for task %q: %w", task.Name, err)
		}
		task.AppointmentID = &appointment.ID
		if err := taskRepo.Update(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

// buildTask translates one blueprint into a concrete task. The kind switch
// is a closed enum dispatch; every variant shares the base fields and layers
// its specialization on top.
func buildTask(workID uint, blueprint *models.WorkTemplate) *models.Task {
	task := &models.Task{
		WorkID:       workID,
		Name:         blueprint.Name,
		TaskOrder:    blueprint.StepNumber,
		Description:  blueprint.Description,
		Kind:         blueprint.Kind,
		Completed:    blueprint.AutoComplete,
		CheckInvoice: blueprint.CheckInvoice,
	}

	switch blueprint.Kind {
	case models.TaskKindSimple:
	case models.TaskKindEmail:
		task.EmailTemplateID = blueprint.EmailTemplateID
	case models.TaskKindContract:
		task.UserTask = true
		task.UserCompleted = models.UserResponsePending
		task.ContractTemplateID = blueprint.ContractTemplateID
	case models.TaskKindQuestionnaire:
		task.UserTask = true
		task.UserCompleted = models.UserResponsePending
		task.QuestTemplateID = blueprint.QuestTemplateID
	case models.TaskKindAppointment:
		// The email template carries the booking confirmation message
		task.UserTask = true
		task.UserCompleted = models.UserResponsePending
		task.EmailTemplateID = blueprint.EmailTemplateID
	}
	return task
}
