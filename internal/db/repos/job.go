// Package repos provides database repositories for the studio models
package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/lenskeep/studio/internal/db/models"
)

// JobRepository handles database operations for jobs
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new instance of JobRepository
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new job in the database
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// GetByID retrieves a job by ID with its workflow, package and invoice
func (r *JobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).
		Preload("Workflow").
		Preload("Package.Products.Product").
		Preload("Invoice.Payments").
		First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// List retrieves a paginated list of jobs, optionally filtered by status
func (r *JobRepository) List(ctx context.Context, status *models.JobStatus, opts *models.ListOptions) ([]models.Job, error) {
	var jobs []models.Job
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Find(&jobs).Error
	return jobs, err
}

// Update updates an existing job in the database
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// Delete removes a job and, through cascade constraints, its works and tasks
func (r *JobRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Job{}, id).Error
}

// CountWorks returns the number of work rows materialized for a job
func (r *JobRepository) CountWorks(ctx context.Context, jobID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Work{}).
		Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}
