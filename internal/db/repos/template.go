package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/lenskeep/studio/internal/db/models"
)

// TemplateRepository handles database operations for message templates and
// the placeholder whitelist
type TemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new instance of TemplateRepository
func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetEmailTemplate retrieves an email template by ID
func (r *TemplateRepository) GetEmailTemplate(ctx context.Context, id uint) (*models.EmailTemplate, error) {
	var tmpl models.EmailTemplate
	if err := r.db.WithContext(ctx).First(&tmpl, id).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// GetContractTemplate retrieves a contract template by ID
func (r *TemplateRepository) GetContractTemplate(ctx context.Context, id uint) (*models.ContractTemplate, error) {
	var tmpl models.ContractTemplate
	if err := r.db.WithContext(ctx).First(&tmpl, id).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// GetQuestionnaireTemplate retrieves a questionnaire template by ID
func (r *TemplateRepository) GetQuestionnaireTemplate(ctx context.Context, id uint) (*models.QuestionnaireTemplate, error) {
	var tmpl models.QuestionnaireTemplate
	if err := r.db.WithContext(ctx).First(&tmpl, id).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// FieldWhitelist returns the placeholder whitelist as a map from placeholder
// name to its dotted object field path
func (r *TemplateRepository) FieldWhitelist(ctx context.Context) (map[string]string, error) {
	var fields []models.TemplateField
	if err := r.db.WithContext(ctx).Find(&fields).Error; err != nil {
		return nil, err
	}
	whitelist := make(map[string]string, len(fields))
	for _, f := range fields {
		whitelist[f.Field] = f.ObjectField
	}
	return whitelist, nil
}

// CreateField registers a placeholder in the whitelist
func (r *TemplateRepository) CreateField(ctx context.Context, field *models.TemplateField) error {
	return r.db.WithContext(ctx).Create(field).Error
}
