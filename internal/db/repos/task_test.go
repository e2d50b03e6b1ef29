package repos

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lenskeep/studio/internal/db/models"
)

type TaskRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func TestTaskRepository(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}

func (s *TaskRepositoryTestSuite) TestCreate() {
	job := s.createTestJob()
	work := s.createTestWork(job.ID, "Pre shoot", 4)

	task := s.createTestTask(work.ID, "Scout location", 1, models.TaskKindSimple)
	s.NotZero(task.ID)
	s.False(task.Completed)
}

func (s *TaskRepositoryTestSuite) TestCreateUserTaskDefaultsResponse() {
	job := s.createTestJob()
	work := s.createTestWork(job.ID, "Contract booking", 2)

	task := s.createTestTask(work.ID, "Share contract", 1, models.TaskKindContract)
	s.True(task.UserTask)
	s.Equal(models.UserResponsePending, task.UserCompleted)
}

func (s *TaskRepositoryTestSuite) TestCreateWithoutWorkFails() {
	task := &models.Task{
		Name: "orphan",
		Kind: models.TaskKindSimple,
	}
	err := s.taskRepo.Create(s.ctx, task)
	s.Error(err)
}

func (s *TaskRepositoryTestSuite) TestListByWorkOrdering() {
	job := s.createTestJob()
	work := s.createTestWork(job.ID, "Post shoot", 6)

	s.createTestTask(work.ID, "Deliver album", 3, models.TaskKindSimple)
	s.createTestTask(work.ID, "Cull photos", 1, models.TaskKindSimple)
	s.createTestTask(work.ID, "Edit selects", 2, models.TaskKindSimple)

	tasks, err := s.taskRepo.ListByWork(s.ctx, work.ID)
	s.NoError(err)
	s.Require().Len(tasks, 3)
	s.Equal("Cull photos", tasks[0].Name)
	s.Equal("Edit selects", tasks[1].Name)
	s.Equal("Deliver album", tasks[2].Name)
}

func (s *TaskRepositoryTestSuite) TestListByJob() {
	job := s.createTestJob()
	first := s.createTestWork(job.ID, "Pre shoot", 4)
	second := s.createTestWork(job.ID, "Main shoot", 5)
	s.createTestTask(second.ID, "Shoot", 1, models.TaskKindSimple)
	s.createTestTask(first.ID, "Scout location", 1, models.TaskKindSimple)

	other := s.createTestJob()
	otherWork := s.createTestWork(other.ID, "Pre shoot", 4)
	s.createTestTask(otherWork.ID, "Unrelated", 1, models.TaskKindSimple)

	tasks, err := s.taskRepo.ListByJob(s.ctx, job.ID)
	s.NoError(err)
	s.Require().Len(tasks, 2)
	s.Equal("Scout location", tasks[0].Name)
	s.Equal("Shoot", tasks[1].Name)
}

func (s *TaskRepositoryTestSuite) TestGetByJobAndKind() {
	job := s.createTestJob()
	work := s.createTestWork(job.ID, "Contract booking", 2)
	s.createTestTask(work.ID, "Send brochure", 1, models.TaskKindEmail)
	contract := s.createTestTask(work.ID, "Share contract", 2, models.TaskKindContract)

	found, err := s.taskRepo.GetByJobAndKind(s.ctx, job.ID, models.TaskKindContract)
	s.NoError(err)
	s.Equal(contract.ID, found.ID)

	_, err = s.taskRepo.GetByJobAndKind(s.ctx, job.ID, models.TaskKindQuestionnaire)
	s.Error(err)
}

func (s *TaskRepositoryTestSuite) TestUpdate() {
	job := s.createTestJob()
	work := s.createTestWork(job.ID, "Main shoot", 5)
	task := s.createTestTask(work.ID, "Shoot", 1, models.TaskKindSimple)

	task.Completed = true
	err := s.taskRepo.Update(s.ctx, task)
	s.NoError(err)

	updated, err := s.taskRepo.GetByID(s.ctx, task.ID)
	s.NoError(err)
	s.True(updated.Completed)
}

func (s *TaskRepositoryTestSuite) TestWorkGetByIDPreloadsTasks() {
	job := s.createTestJob()
	work := s.createTestWork(job.ID, "Pre shoot", 4)
	s.createTestTask(work.ID, "Fit dress", 2, models.TaskKindSimple)
	s.createTestTask(work.ID, "Scout location", 1, models.TaskKindSimple)

	found, err := s.workRepo.GetByID(s.ctx, work.ID)
	s.NoError(err)
	s.Require().Len(found.Tasks, 2)
	s.Equal("Scout location", found.Tasks[0].Name)
}

func (s *TaskRepositoryTestSuite) TestWorkListByJobOrdering() {
	job := s.createTestJob()
	s.createTestWork(job.ID, "Main shoot", 5)
	s.createTestWork(job.ID, "Job request", 1)
	s.createTestWork(job.ID, "Pre shoot", 4)

	works, err := s.workRepo.ListByJob(s.ctx, job.ID)
	s.NoError(err)
	s.Require().Len(works, 3)
	s.Equal("Job request", works[0].Name)
	s.Equal("Pre shoot", works[1].Name)
	s.Equal("Main shoot", works[2].Name)
}
