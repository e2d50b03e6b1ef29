package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/lenskeep/studio/internal/db/models"
)

// WorkflowRepository handles database operations for workflow definitions,
// the work type catalog and work templates
type WorkflowRepository struct {
	db *gorm.DB
}

// NewWorkflowRepository creates a new instance of WorkflowRepository
func NewWorkflowRepository(db *gorm.DB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

// CreateDefinition creates a new workflow definition
func (r *WorkflowRepository) CreateDefinition(ctx context.Context, wf *models.WorkflowDefinition) error {
	return r.db.WithContext(ctx).Create(wf).Error
}

// GetDefinition retrieves a workflow definition by ID
func (r *WorkflowRepository) GetDefinition(ctx context.Context, id uint) (*models.WorkflowDefinition, error) {
	var wf models.WorkflowDefinition
	if err := r.db.WithContext(ctx).First(&wf, id).Error; err != nil {
		return nil, err
	}
	return &wf, nil
}

// ListDefinitions retrieves all workflow definitions
func (r *WorkflowRepository) ListDefinitions(ctx context.Context) ([]models.WorkflowDefinition, error) {
	var wfs []models.WorkflowDefinition
	err := r.db.WithContext(ctx).Order("name ASC").Find(&wfs).Error
	return wfs, err
}

// CreateWorkType adds a phase kind to the global catalog
func (r *WorkflowRepository) CreateWorkType(ctx context.Context, wt *models.WorkType) error {
	return r.db.WithContext(ctx).Create(wt).Error
}

// ListWorkTypes retrieves the global phase catalog in phase order
func (r *WorkflowRepository) ListWorkTypes(ctx context.Context) ([]models.WorkType, error) {
	var types []models.WorkType
	err := r.db.WithContext(ctx).Order("work_order ASC").Find(&types).Error
	return types, err
}

// CreateTemplate creates a new work template blueprint
func (r *WorkflowRepository) CreateTemplate(ctx context.Context, tmpl *models.WorkTemplate) error {
	return r.db.WithContext(ctx).Create(tmpl).Error
}

// ListTemplates retrieves the blueprints for one workflow and work type in
// step order
func (r *WorkflowRepository) ListTemplates(ctx context.Context, workflowID, workTypeID uint) ([]models.WorkTemplate, error) {
	var tmpls []models.WorkTemplate
	err := r.db.WithContext(ctx).
		Where("workflow_id = ? AND work_type_id = ?", workflowID, workTypeID).
		Order("step_number ASC").
		Find(&tmpls).Error
	return tmpls, err
}
