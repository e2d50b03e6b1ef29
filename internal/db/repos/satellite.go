package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lenskeep/studio/internal/db/models"
)

// SatelliteRepository handles database operations for the records created on
// demand by task processing: appointments, job contracts and questionnaires
type SatelliteRepository struct {
	db *gorm.DB
}

// NewSatelliteRepository creates a new instance of SatelliteRepository
func NewSatelliteRepository(db *gorm.DB) *SatelliteRepository {
	return &SatelliteRepository{db: db}
}

// CreateAppointment creates a new appointment in the database
func (r *SatelliteRepository) CreateAppointment(ctx context.Context, app *models.Appointment) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetAppointment retrieves an appointment by ID
func (r *SatelliteRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var app models.Appointment
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateAppointment updates an existing appointment
func (r *SatelliteRepository) UpdateAppointment(ctx context.Context, app *models.Appointment) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// GetContractByJob retrieves the contract for a job, if one exists
func (r *SatelliteRepository) GetContractByJob(ctx context.Context, jobID uint) (*models.JobContract, error) {
	var contract models.JobContract
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// UpsertContract creates the job's contract or refreshes its body and status
func (r *SatelliteRepository) UpsertContract(ctx context.Context, contract *models.JobContract) error {
	var existing models.JobContract
	err := r.db.WithContext(ctx).Where("job_id = ?", contract.JobID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(contract).Error
	}
	if err != nil {
		return err
	}
	existing.Body = contract.Body
	existing.Status = contract.Status
	existing.ContractDate = contract.ContractDate
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*contract = existing
	return nil
}

// UpdateContract updates an existing job contract
func (r *SatelliteRepository) UpdateContract(ctx context.Context, contract *models.JobContract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

// GetQuestionnaireByJob retrieves the questionnaire for a job, if one exists
func (r *SatelliteRepository) GetQuestionnaireByJob(ctx context.Context, jobID uint) (*models.JobQuestionnaire, error) {
	var quest models.JobQuestionnaire
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&quest).Error
	if err != nil {
		return nil, err
	}
	return &quest, nil
}

// UpsertQuestionnaire creates the job's questionnaire or relinks its template
func (r *SatelliteRepository) UpsertQuestionnaire(ctx context.Context, quest *models.JobQuestionnaire) error {
	var existing models.JobQuestionnaire
	err := r.db.WithContext(ctx).Where("job_id = ?", quest.JobID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(quest).Error
	}
	if err != nil {
		return err
	}
	existing.QuestTemplateID = quest.QuestTemplateID
	existing.QuestionnaireDate = quest.QuestionnaireDate
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*quest = existing
	return nil
}

// UpdateQuestionnaire updates an existing job questionnaire
func (r *SatelliteRepository) UpdateQuestionnaire(ctx context.Context, quest *models.JobQuestionnaire) error {
	return r.db.WithContext(ctx).Save(quest).Error
}
