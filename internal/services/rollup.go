package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lenskeep/studio/internal/db/models"
	"github.com/lenskeep/studio/internal/db/repos"
)

// Rollup recomputes job level completion and invoice totals whenever a task
// or work changes
type Rollup struct {
	db *gorm.DB
}

// NewRollupService creates a new rollup service instance
func NewRollupService(db *gorm.DB) *Rollup {
	return &Rollup{db: db}
}

// tasksCompletedPercentage returns the completed share of the given tasks as
// a percentage. Zero tasks yields zero, not a division error.
func tasksCompletedPercentage(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	var completed int
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * 100
}

// WorkCompletionPercentage returns the completion percentage of one work
func (s *Rollup) WorkCompletionPercentage(ctx context.Context, workID uint) (float64, error) {
	work, err := repos.NewWorkRepository(s.db).GetByID(ctx, workID)
	if err != nil {
		return 0, err
	}
	return tasksCompletedPercentage(work.Tasks), nil
}

// WorkCompletionUpdate marks the work completed when all of its tasks are
// done and advances the owning job's phase marker
func (s *Rollup) WorkCompletionUpdate(ctx context.Context, workID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return refreshWorkCompletion(ctx, tx, workID)
	})
}

// JobCompletionPercentage returns the completed share of every task under
// the job
func (s *Rollup) JobCompletionPercentage(ctx context.Context, jobID uint) (float64, error) {
	tasks, err := repos.NewTaskRepository(s.db).ListByJob(ctx, jobID)
	if err != nil {
		return 0, err
	}
	return tasksCompletedPercentage(tasks), nil
}

// RegisterInvoiceForJob creates the job's invoice from its package, or
// recomputes the existing invoice's price and total. Safe to call repeatedly;
// it mutates the existing invoice rather than duplicating it.
func (s *Rollup) RegisterInvoiceForJob(ctx context.Context, jobID uint, hasPackage bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := repos.NewJobRepository(tx).GetByID(ctx, jobID)
		if err != nil {
			return err
		}
		return registerInvoiceForJob(ctx, tx, job, hasPackage)
	})
}

// refreshWorkCompletion recomputes one work's completed flag from its tasks
// and, when the work completes, moves the job's task status to the phase
// marker matching the work's name.
func refreshWorkCompletion(ctx context.Context, tx *gorm.DB, workID uint) error {
	work, err := repos.NewWorkRepository(tx).GetByID(ctx, workID)
	if err != nil {
		return err
	}

	if len(work.Tasks) == 0 || tasksCompletedPercentage(work.Tasks) < 100 {
		return nil
	}
	if !work.Completed {
		if err := tx.WithContext(ctx).Model(&models.Work{}).
			Where("id = ?", work.ID).
			Update("completed", true).Error; err != nil {
			return err
		}
	}

	marker, ok := models.PhaseMarkerForWork(work.Name)
	if !ok {
		// Works outside the fixed phase vocabulary do not move the marker
		return nil
	}
	return tx.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", work.JobID).
		Update("task_status", marker).Error
}

// registerInvoiceForJob is the transactional core of RegisterInvoiceForJob,
// shared with job confirmation.
func registerInvoiceForJob(ctx context.Context, tx *gorm.DB, job *models.Job, hasPackage bool) error {
	var price float64
	var description string
	if hasPackage && job.Package != nil {
		price = job.Package.TotalPrice()
		description = job.Package.Description
	}

	invRepo := repos.NewInvoiceRepository(tx)
	invoice, err := invRepo.GetByJob(ctx, job.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		invoice = &models.Invoice{
			JobID:       job.ID,
			Description: description,
			Price:       price,
			TotalPrice:  price,
		}
		return invRepo.Create(ctx, invoice)
	}
	if err != nil {
		return err
	}

	invoice.Price = price
	invoice.Description = description
	invoice.TotalPrice = price - price*invoice.Discount
	return invRepo.Update(ctx, invoice)
}

// invoiceSummary prepares the invoice breakdown shared alongside a contract
func invoiceSummary(job *models.Job) string {
	if job.Invoice == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nInvoice summary\n")
	fmt.Fprintf(&b, "Issue number: %s\n", job.Invoice.IssueNumber)
	if job.Package != nil {
		fmt.Fprintf(&b, "Selected package: %s\n", job.Package.Name)
		for _, line := range job.Package.Products {
			fmt.Fprintf(&b, "  %s x%d - %.2f\n", line.Product.Name, line.Units, line.Product.TotalPrice(line.Units))
		}
	}
	fmt.Fprintf(&b, "Subtotal: %.2f\n", job.Invoice.Price)
	fmt.Fprintf(&b, "Discount: %.2f\n", job.Invoice.Discount)
	fmt.Fprintf(&b, "Total: %.2f\n", job.Invoice.TotalPrice)
	return b.String()
}
