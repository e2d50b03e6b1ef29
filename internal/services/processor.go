package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lenskeep/studio/config"
	"github.com/lenskeep/studio/internal/db/models"
	"github.com/lenskeep/studio/internal/db/repos"
	"github.com/lenskeep/studio/internal/logger"
	"github.com/lenskeep/studio/internal/notify"
	"github.com/lenskeep/studio/internal/templates"
)

// Processor drives tasks through their transitions. Every Process call runs
// the guard chain, dispatches the kind specific side effect and rolls
// completion up to the owning work and job. Notifications happen before any
// state is persisted so a failed send never leaves a task marked as sent.
type Processor struct {
	db      *gorm.DB
	sender  notify.Sender
	company config.Company
}

// NewProcessor creates a new task processor
func NewProcessor(db *gorm.DB, sender notify.Sender, company config.Company) *Processor {
	return &Processor{db: db, sender: sender, company: company}
}

// Process runs one staff triggered transition on a task
func (p *Processor) Process(ctx context.Context, taskID uint) error {
	task, err := repos.NewTaskRepository(p.db).GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	work, err := repos.NewWorkRepository(p.db).GetByID(ctx, task.WorkID)
	if err != nil {
		return err
	}
	job, err := repos.NewJobRepository(p.db).GetByID(ctx, work.JobID)
	if err != nil {
		return err
	}

	if err := p.checkOrdering(ctx, job.ID, task); err != nil {
		return err
	}
	if task.CheckInvoice {
		if job.Invoice == nil || job.Invoice.ToBePaid() > 0 {
			return fmt.Errorf("task %q requires payment first: %w", task.Name, ErrInvoiceNotSettled)
		}
	}
	if task.Completed {
		return fmt.Errorf("task %q: %w", task.Name, ErrAlreadyCompleted)
	}

	switch {
	case !task.UserTask:
		if task.Kind == models.TaskKindEmail {
			if err := p.sendEmail(ctx, job, task); err != nil {
				return err
			}
		}
		return p.finish(ctx, task)

	case task.UserCompleted == models.UserResponsePending:
		switch task.Kind {
		case models.TaskKindContract:
			return p.shareContract(ctx, job, task)
		case models.TaskKindQuestionnaire:
			return p.shareQuestionnaire(ctx, job, task)
		case models.TaskKindAppointment:
			// No notification yet; the client confirms the slot first
			return p.markSent(ctx, task)
		}

	case task.UserCompleted == models.UserResponseCompleted:
		if task.Kind == models.TaskKindAppointment {
			if err := p.sendBookingConfirmation(ctx, job, task); err != nil {
				return err
			}
		}
		return p.finish(ctx, task)
	}

	logger.ErrorWithFields("task reached an impossible state", map[string]interface{}{
		"task_id":        task.ID,
		"kind":           task.Kind,
		"user_task":      task.UserTask,
		"user_completed": task.UserCompleted,
	})
	return fmt.Errorf("task %q kind %s response %s: %w",
		task.Name, task.Kind, task.UserCompleted, ErrInvalidState)
}

// MarkUserResponse advances the client side of the handshake one step
// forward, or back to pending when reset is set. Task completion is
// recomputed; kinds that need a staff follow up stay open until staff
// processes them again.
func (p *Processor) MarkUserResponse(ctx context.Context, taskID uint, reset bool) error {
	task, err := repos.NewTaskRepository(p.db).GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if !task.UserTask {
		return fmt.Errorf("task %q takes no client response: %w", task.Name, ErrInvalidState)
	}

	if reset {
		task.UserCompleted = models.UserResponsePending
	} else {
		switch task.UserCompleted {
		case models.UserResponsePending:
			task.UserCompleted = models.UserResponseSent
		case models.UserResponseSent:
			task.UserCompleted = models.UserResponseCompleted
		}
	}

	// Completion is terminal: once a task is done, further client responses
	// only move user_completed, never completed.
	if !task.Completed {
		task.Completed = task.UserCompleted == models.UserResponseCompleted &&
			!requiresStaffFollowUp(task.Kind)
	}

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repos.NewTaskRepository(tx).Update(ctx, task); err != nil {
			return err
		}
		if task.Kind == models.TaskKindAppointment && task.AppointmentID != nil {
			// The satellite record tracks the handshake: confirmed while the
			// client has responded, cleared again on reset
			confirmed := task.UserCompleted == models.UserResponseCompleted
			if err := tx.WithContext(ctx).Model(&models.Appointment{}).
				Where("id = ?", *task.AppointmentID).
				Update("confirmed", confirmed).Error; err != nil {
				return err
			}
		}
		return refreshWorkCompletion(ctx, tx, task.WorkID)
	})
}

// AcceptContract records the client's acceptance of the job's contract and
// advances the owning contract task
func (p *Processor) AcceptContract(ctx context.Context, jobID uint) error {
	satRepo := repos.NewSatelliteRepository(p.db)
	contract, err := satRepo.GetContractByJob(ctx, jobID)
	if err != nil {
		return err
	}
	contract.Status = models.ContractStatusAccepted
	contract.ContractDate = time.Now()
	if err := satRepo.UpdateContract(ctx, contract); err != nil {
		return err
	}

	task, err := repos.NewTaskRepository(p.db).GetByJobAndKind(ctx, jobID, models.TaskKindContract)
	if err != nil {
		return err
	}
	return p.MarkUserResponse(ctx, task.ID, false)
}

// SubmitQuestionnaire stores the client's answers and advances the owning
// questionnaire task
func (p *Processor) SubmitQuestionnaire(ctx context.Context, jobID uint, answers [5]string) error {
	satRepo := repos.NewSatelliteRepository(p.db)
	quest, err := satRepo.GetQuestionnaireByJob(ctx, jobID)
	if err != nil {
		return err
	}
	quest.AnswerOne = answers[0]
	quest.AnswerTwo = answers[1]
	quest.AnswerThree = answers[2]
	quest.AnswerFour = answers[3]
	quest.AnswerFive = answers[4]
	quest.QuestionnaireDate = time.Now()
	if err := satRepo.UpdateQuestionnaire(ctx, quest); err != nil {
		return err
	}

	task, err := repos.NewTaskRepository(p.db).GetByJobAndKind(ctx, jobID, models.TaskKindQuestionnaire)
	if err != nil {
		return err
	}
	return p.MarkUserResponse(ctx, task.ID, false)
}

// requiresStaffFollowUp reports whether the kind needs a staff Process call
// to finalize after the client responds
func requiresStaffFollowUp(kind models.TaskKind) bool {
	switch kind {
	case models.TaskKindContract, models.TaskKindQuestionnaire, models.TaskKindAppointment:
		return true
	}
	return false
}

// checkOrdering enforces that phases execute strictly in work order: a task
// may only be processed when its work is the first incomplete work that has
// tasks to process.
func (p *Processor) checkOrdering(ctx context.Context, jobID uint, task *models.Task) error {
	works, err := repos.NewWorkRepository(p.db).ListByJob(ctx, jobID)
	if err != nil {
		return err
	}
	for _, work := range works {
		if work.Completed || len(work.Tasks) == 0 {
			continue
		}
		if work.ID != task.WorkID {
			return fmt.Errorf("phase %q must complete before task %q: %w",
				work.Name, task.Name, ErrOutOfSequence)
		}
		return nil
	}
	// Every work is complete; the already-done guard reports the failure
	return nil
}

// finish marks the task completed and rolls completion up to its work
func (p *Processor) finish(ctx context.Context, task *models.Task) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Model(&models.Task{}).
			Where("id = ?", task.ID).
			Update("completed", true).Error; err != nil {
			return err
		}
		return refreshWorkCompletion(ctx, tx, task.WorkID)
	})
}

// markSent advances a user task to sent-to-user without a notification
func (p *Processor) markSent(ctx context.Context, task *models.Task) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Model(&models.Task{}).
			Where("id = ?", task.ID).
			Update("user_completed", models.UserResponseSent).Error; err != nil {
			return err
		}
		return refreshWorkCompletion(ctx, tx, task.WorkID)
	})
}

// render resolves a template against the placeholder whitelist
func (p *Processor) render(ctx context.Context, tpl templates.Template, job *models.Job, task *models.Task, appointment *models.Appointment) (templates.Template, error) {
	whitelist, err := repos.NewTemplateRepository(p.db).FieldWhitelist(ctx)
	if err != nil {
		return templates.Template{}, err
	}
	return templates.NewEngine(whitelist).Render(tpl, templates.Context{
		Job:         job,
		Task:        task,
		Appointment: appointment,
		Company:     p.company,
	})
}

// sendEmail resolves the task's email template and delivers it
func (p *Processor) sendEmail(ctx context.Context, job *models.Job, task *models.Task) error {
	if task.EmailTemplateID == nil {
		return fmt.Errorf("email task %q has no template: %w", task.Name, ErrInvalidState)
	}
	tmpl, err := repos.NewTemplateRepository(p.db).GetEmailTemplate(ctx, *task.EmailTemplateID)
	if err != nil {
		return err
	}
	rendered, err := p.render(ctx, templates.Template{Subject: tmpl.Subject, Body: tmpl.Body}, job, task, nil)
	if err != nil {
		return err
	}
	return p.sender.Send(ctx, job.ClientEmail, rendered.Subject, rendered.Body)
}

// shareContract sends the rendered contract with the invoice summary and
// records the open contract on the job
func (p *Processor) shareContract(ctx context.Context, job *models.Job, task *models.Task) error {
	if task.ContractTemplateID == nil {
		return fmt.Errorf("contract task %q has no template: %w", task.Name, ErrInvalidState)
	}
	tmpl, err := repos.NewTemplateRepository(p.db).GetContractTemplate(ctx, *task.ContractTemplateID)
	if err != nil {
		return err
	}
	rendered, err := p.render(ctx, templates.Template{Subject: tmpl.Subject, Body: tmpl.Body}, job, task, nil)
	if err != nil {
		return err
	}

	body := rendered.Body + invoiceSummary(job)
	if err := p.sender.Send(ctx, job.ClientEmail, rendered.Subject, body); err != nil {
		return err
	}

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contract := &models.JobContract{
			JobID:        job.ID,
			Body:         body,
			Status:       models.ContractStatusNotAccepted,
			ContractDate: time.Now(),
		}
		if err := repos.NewSatelliteRepository(tx).UpsertContract(ctx, contract); err != nil {
			return err
		}
		task.JobContractID = &contract.ID
		task.UserCompleted = models.UserResponseSent
		if err := repos.NewTaskRepository(tx).Update(ctx, task); err != nil {
			return err
		}
		return refreshWorkCompletion(ctx, tx, task.WorkID)
	})
}

// shareQuestionnaire sends the questionnaire and records it on the job
func (p *Processor) shareQuestionnaire(ctx context.Context, job *models.Job, task *models.Task) error {
	if task.QuestTemplateID == nil {
		return fmt.Errorf("questionnaire task %q has no template: %w", task.Name, ErrInvalidState)
	}
	tmpl, err := repos.NewTemplateRepository(p.db).GetQuestionnaireTemplate(ctx, *task.QuestTemplateID)
	if err != nil {
		return err
	}
	rendered, err := p.render(ctx, templates.Template{Subject: tmpl.Subject, Body: tmpl.Body}, job, task, nil)
	if err != nil {
		return err
	}
	if err := p.sender.Send(ctx, job.ClientEmail, rendered.Subject, rendered.Body); err != nil {
		return err
	}

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quest := &models.JobQuestionnaire{
			JobID:             job.ID,
			QuestTemplateID:   *task.QuestTemplateID,
			QuestionnaireDate: time.Now(),
		}
		if err := repos.NewSatelliteRepository(tx).UpsertQuestionnaire(ctx, quest); err != nil {
			return err
		}
		task.JobQuestionnaireID = &quest.ID
		task.UserCompleted = models.UserResponseSent
		if err := repos.NewTaskRepository(tx).Update(ctx, task); err != nil {
			return err
		}
		return refreshWorkCompletion(ctx, tx, task.WorkID)
	})
}

// sendBookingConfirmation delivers the confirmation email with the
// appointment details once the client has confirmed the slot
func (p *Processor) sendBookingConfirmation(ctx context.Context, job *models.Job, task *models.Task) error {
	if task.AppointmentID == nil || task.EmailTemplateID == nil {
		return fmt.Errorf("appointment task %q is missing its appointment or template: %w", task.Name, ErrInvalidState)
	}
	appointment, err := repos.NewSatelliteRepository(p.db).GetAppointment(ctx, *task.AppointmentID)
	if err != nil {
		return err
	}
	tmpl, err := repos.NewTemplateRepository(p.db).GetEmailTemplate(ctx, *task.EmailTemplateID)
	if err != nil {
		return err
	}
	rendered, err := p.render(ctx, templates.Template{Subject: tmpl.Subject, Body: tmpl.Body}, job, task, appointment)
	if err != nil {
		return err
	}
	return p.sender.Send(ctx, job.ClientEmail, rendered.Subject, rendered.Body)
}
