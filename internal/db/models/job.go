package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// JobStatus represents the current state of a job in the system
type JobStatus string

// Job status constants
const (
	// JobStatusRequest indicates the job is a client request awaiting review
	JobStatusRequest JobStatus = "request"
	// JobStatusConfirmed indicates the job has been confirmed by staff
	JobStatusConfirmed JobStatus = "confirmed"
	// JobStatusDeclined indicates the job request was declined
	JobStatusDeclined JobStatus = "declined"
)

// String returns the string representation of the job status
func (s JobStatus) String() string {
	return string(s)
}

// ParseJobStatus converts a string to a JobStatus type
func ParseJobStatus(str string) (JobStatus, error) {
	switch str {
	case string(JobStatusRequest):
		return JobStatusRequest, nil
	case string(JobStatusConfirmed):
		return JobStatusConfirmed, nil
	case string(JobStatusDeclined):
		return JobStatusDeclined, nil
	default:
		return "", fmt.Errorf("invalid job status: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for JobStatus
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseJobStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// TaskStatus is the coarse phase marker kept on a job. It tracks the
// furthest completed work phase using a fixed, ordered vocabulary.
type TaskStatus string

// Job phase marker constants, in phase order
const (
	TaskStatusRequestDone    TaskStatus = "request-done"
	TaskStatusContractBooked TaskStatus = "contract-booked"
	TaskStatusConfirmed      TaskStatus = "confirmed"
	TaskStatusPreShoot       TaskStatus = "pre-shoot"
	TaskStatusMainShoot      TaskStatus = "main-shoot"
	TaskStatusPostShoot      TaskStatus = "post-shoot"
	TaskStatusDone           TaskStatus = "done"
)

// phaseMarkers maps a work phase name to the job task status it completes.
var phaseMarkers = map[string]TaskStatus{
	"Job request":      TaskStatusRequestDone,
	"Contract booking": TaskStatusContractBooked,
	"Job confirmation": TaskStatusConfirmed,
	"Pre shoot":        TaskStatusPreShoot,
	"Main shoot":       TaskStatusMainShoot,
	"Post shoot":       TaskStatusPostShoot,
	"Job done":         TaskStatusDone,
}

// PhaseMarkerForWork returns the job task status reached when the named work
// phase completes. The second return is false for phase names outside the
// fixed vocabulary.
func PhaseMarkerForWork(workName string) (TaskStatus, bool) {
	marker, ok := phaseMarkers[workName]
	return marker, ok
}

// Job represents one booked client engagement tracked end to end
type Job struct {
	gorm.Model
	Name        string     `json:"name" gorm:"not null; index"`
	ClientName  string     `json:"client_name" gorm:"not null"`
	ClientEmail string     `json:"client_email" gorm:"not null"`
	Status      JobStatus  `json:"status" gorm:"not null; index"`
	TaskStatus  TaskStatus `json:"task_status,omitempty" gorm:"index"`
	WorkflowID  *uint      `json:"workflow_id,omitempty" gorm:"index"`
	Workflow    *WorkflowDefinition
	PackageID   *uint `json:"package_id,omitempty" gorm:"index"`
	Package     *Package
	Venue       string     `json:"venue,omitempty" gorm:"type:text"`
	VenueNotes  string     `json:"venue_notes,omitempty" gorm:"type:text"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	AllDay      bool       `json:"all_day"`
	StartTime   string     `json:"start_time,omitempty"`
	EndTime     string     `json:"end_time,omitempty"`
	Note        string     `json:"note,omitempty" gorm:"type:text"`
	Works       []Work     `json:"works,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Invoice     *Invoice   `json:"invoice,omitempty"`
}

// Validate ensures that the job data is valid
func (j *Job) Validate() error {
	if j.Name == "" {
		return fmt.Errorf("job name cannot be empty")
	}
	if j.Status == JobStatusConfirmed && j.WorkflowID == nil {
		return fmt.Errorf("a confirmed job requires a workflow")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new job
func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.Status == "" {
		j.Status = JobStatusRequest
	}
	return j.Validate()
}

// BeforeSave is a GORM hook that keeps the confirmation invariant on updates
func (j *Job) BeforeSave(_ *gorm.DB) error {
	if j.Status == JobStatusConfirmed && j.WorkflowID == nil {
		return fmt.Errorf("a confirmed job requires a workflow")
	}
	return nil
}
