package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/lenskeep/studio/internal/db/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task in the database
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by ID from the database
func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByWork retrieves all tasks under one work in step order
func (r *TaskRepository) ListByWork(ctx context.Context, workID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where("work_id = ?", workID).
		Order("task_order ASC").
		Find(&tasks).Error
	return tasks, err
}

// ListByJob retrieves every task for a job, phase order first, step order second
func (r *TaskRepository) ListByJob(ctx context.Context, jobID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Joins("JOIN works ON works.id = tasks.work_id").
		Where("works.job_id = ?", jobID).
		Order("works.work_order ASC, tasks.task_order ASC").
		Find(&tasks).Error
	return tasks, err
}

// GetByJobAndKind retrieves the first task of the given kind under a job,
// phase order first
func (r *TaskRepository) GetByJobAndKind(ctx context.Context, jobID uint, kind models.TaskKind) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Joins("JOIN works ON works.id = tasks.work_id").
		Where("works.job_id = ? AND tasks.kind = ?", jobID, kind).
		Order("works.work_order ASC, tasks.task_order ASC").
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates an existing task in the database
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}
