package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lenskeep/studio/internal/db/models"
)

type RollupServiceTestSuite struct {
	ServicesTestSuite
}

func TestRollupService(t *testing.T) {
	suite.Run(t, new(RollupServiceTestSuite))
}

func (s *RollupServiceTestSuite) TestWorkCompletionPercentage() {
	job := s.createConfirmedJob()
	work := s.findWork(job.ID, "Contract booking")

	pct, err := s.rollup.WorkCompletionPercentage(s.ctx, work.ID)
	s.NoError(err)
	s.Zero(pct)

	brochure := s.findTask(job.ID, "Send brochure")
	s.Require().NoError(s.processor.Process(s.ctx, brochure.ID))

	pct, err = s.rollup.WorkCompletionPercentage(s.ctx, work.ID)
	s.NoError(err)
	s.InDelta(50, pct, 0.001)
}

func (s *RollupServiceTestSuite) TestEmptyWorkPercentageIsZero() {
	job := s.createConfirmedJob()
	work := s.findWork(job.ID, "Job done")

	pct, err := s.rollup.WorkCompletionPercentage(s.ctx, work.ID)
	s.NoError(err)
	s.Zero(pct)
}

func (s *RollupServiceTestSuite) TestEmptyWorkNeverCompletes() {
	job := s.createConfirmedJob()
	work := s.findWork(job.ID, "Job done")

	s.Require().NoError(s.rollup.WorkCompletionUpdate(s.ctx, work.ID))
	s.False(s.findWork(job.ID, "Job done").Completed)
}

func (s *RollupServiceTestSuite) TestPartialWorkStaysOpen() {
	job := s.createConfirmedJob()
	work := s.findWork(job.ID, "Contract booking")

	brochure := s.findTask(job.ID, "Send brochure")
	s.Require().NoError(s.processor.Process(s.ctx, brochure.ID))

	s.Require().NoError(s.rollup.WorkCompletionUpdate(s.ctx, work.ID))
	s.False(s.findWork(job.ID, "Contract booking").Completed)
	s.Equal(models.TaskStatusRequestDone, s.reloadJob(job.ID).TaskStatus)
}

func (s *RollupServiceTestSuite) TestJobCompletionPercentage() {
	job := s.createConfirmedJob()

	// Seven tasks in total, one auto-completed at instantiation
	pct, err := s.rollup.JobCompletionPercentage(s.ctx, job.ID)
	s.NoError(err)
	s.InDelta(100.0/7, pct, 0.001)

	brochure := s.findTask(job.ID, "Send brochure")
	s.Require().NoError(s.processor.Process(s.ctx, brochure.ID))

	pct, err = s.rollup.JobCompletionPercentage(s.ctx, job.ID)
	s.NoError(err)
	s.InDelta(200.0/7, pct, 0.001)
}

func (s *RollupServiceTestSuite) TestRegisterInvoiceIsIdempotent() {
	job := s.createConfirmedJob()
	s.Require().NotNil(job.Invoice)
	firstID := job.Invoice.ID
	issueNumber := job.Invoice.IssueNumber

	// Re-registering recomputes the same invoice instead of duplicating it
	s.Require().NoError(s.rollup.RegisterInvoiceForJob(s.ctx, job.ID, true))

	invoice, err := s.invoiceRepo.GetByJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(firstID, invoice.ID)
	s.Equal(issueNumber, invoice.IssueNumber)
	s.InDelta(23000, invoice.TotalPrice, 0.001)

	var count int64
	s.Require().NoError(s.db.Model(&models.Invoice{}).Where("job_id = ?", job.ID).Count(&count).Error)
	s.EqualValues(1, count)
}

func (s *RollupServiceTestSuite) TestRegisterInvoiceAppliesDiscount() {
	job := s.createConfirmedJob()

	invoice, err := s.invoiceRepo.GetByJob(s.ctx, job.ID)
	s.Require().NoError(err)
	invoice.Discount = 0.1
	s.Require().NoError(s.invoiceRepo.Update(s.ctx, invoice))

	s.Require().NoError(s.rollup.RegisterInvoiceForJob(s.ctx, job.ID, true))

	invoice, err = s.invoiceRepo.GetByJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.InDelta(23000, invoice.Price, 0.001)
	s.InDelta(20700, invoice.TotalPrice, 0.001)
}
