package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/lenskeep/studio/internal/db/models"
)

// WorkRepository handles database operations for work phases
type WorkRepository struct {
	db *gorm.DB
}

// NewWorkRepository creates a new instance of WorkRepository
func NewWorkRepository(db *gorm.DB) *WorkRepository {
	return &WorkRepository{db: db}
}

// Create creates a new work in the database
func (r *WorkRepository) Create(ctx context.Context, work *models.Work) error {
	return r.db.WithContext(ctx).Create(work).Error
}

// GetByID retrieves a work by ID with its tasks
func (r *WorkRepository) GetByID(ctx context.Context, id uint) (*models.Work, error) {
	var work models.Work
	if err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_order ASC")
		}).
		First(&work, id).Error; err != nil {
		return nil, err
	}
	return &work, nil
}

// ListByJob retrieves all works for a job ordered by phase order, tasks included
func (r *WorkRepository) ListByJob(ctx context.Context, jobID uint) ([]models.Work, error) {
	var works []models.Work
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_order ASC")
		}).
		Where("job_id = ?", jobID).
		Order("work_order ASC").
		Find(&works).Error
	return works, err
}

// Update updates an existing work in the database
func (r *WorkRepository) Update(ctx context.Context, work *models.Work) error {
	return r.db.WithContext(ctx).Save(work).Error
}
