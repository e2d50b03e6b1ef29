package repos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lenskeep/studio/internal/db"
	"github.com/lenskeep/studio/internal/db/models"
)

// DBRepositoryTestSuite provides a base test suite for repository tests
type DBRepositoryTestSuite struct {
	suite.Suite
	db           *gorm.DB
	ctx          context.Context
	jobRepo      *JobRepository
	workRepo     *WorkRepository
	taskRepo     *TaskRepository
	workflowRepo *WorkflowRepository
	templateRepo *TemplateRepository
	satRepo      *SatelliteRepository
	invoiceRepo  *InvoiceRepository
	catalogRepo  *CatalogRepository
}

func (s *DBRepositoryTestSuite) SetupTest() {
	// Create new in-memory database
	database, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_json=1"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	// Run migrations
	err = db.Migrate(database)
	require.NoError(s.T(), err, "Failed to run database migrations")

	// Initialize repositories
	s.db = database
	s.jobRepo = NewJobRepository(s.db)
	s.workRepo = NewWorkRepository(s.db)
	s.taskRepo = NewTaskRepository(s.db)
	s.workflowRepo = NewWorkflowRepository(s.db)
	s.templateRepo = NewTemplateRepository(s.db)
	s.satRepo = NewSatelliteRepository(s.db)
	s.invoiceRepo = NewInvoiceRepository(s.db)
	s.catalogRepo = NewCatalogRepository(s.db)
	s.ctx = context.Background()
}

func (s *DBRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

func (s *DBRepositoryTestSuite) createTestWorkflow() *models.WorkflowDefinition {
	wf := &models.WorkflowDefinition{
		Name:        "test-workflow",
		Description: "wedding coverage",
		Active:      true,
	}
	err := s.workflowRepo.CreateDefinition(s.ctx, wf)
	s.Require().NoError(err)
	return wf
}

func (s *DBRepositoryTestSuite) createTestJob() *models.Job {
	start := time.Now().AddDate(0, 1, 0)
	job := &models.Job{
		Name:        "test-job",
		ClientName:  "Ada Client",
		ClientEmail: "ada@example.com",
		Status:      models.JobStatusRequest,
		Venue:       "Riverside hall",
		StartDate:   &start,
	}
	err := s.jobRepo.Create(s.ctx, job)
	s.Require().NoError(err)
	return job
}

func (s *DBRepositoryTestSuite) createTestWork(jobID uint, name string, order int) *models.Work {
	work := &models.Work{
		JobID:     jobID,
		Name:      name,
		WorkOrder: order,
	}
	err := s.workRepo.Create(s.ctx, work)
	s.Require().NoError(err)
	return work
}

func (s *DBRepositoryTestSuite) createTestTask(workID uint, name string, order int, kind models.TaskKind) *models.Task {
	task := &models.Task{
		WorkID:    workID,
		Name:      name,
		TaskOrder: order,
		Kind:      kind,
	}
	if kind == models.TaskKindContract || kind == models.TaskKindQuestionnaire || kind == models.TaskKindAppointment {
		task.UserTask = true
	}
	err := s.taskRepo.Create(s.ctx, task)
	s.Require().NoError(err)
	return task
}

// TestDBRepository runs the test suite for the DBRepository to verify no panic
func TestDBRepository(t *testing.T) {
	suite.Run(t, new(DBRepositoryTestSuite))
}
