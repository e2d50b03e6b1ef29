package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Work is a materialized phase instance for one job, created from a WorkType
// at instantiation time. It completes when all of its tasks complete.
type Work struct {
	gorm.Model
	JobID     uint   `json:"job_id" gorm:"not null; index"`
	Name      string `json:"name" gorm:"not null"`
	WorkOrder int    `json:"work_order" gorm:"not null; index"`
	Completed bool   `json:"completed" gorm:"not null; default:false"`
	Tasks     []Task `json:"tasks,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// Validate ensures that the work data is valid
func (w *Work) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("work name cannot be empty")
	}
	if w.JobID == 0 {
		return fmt.Errorf("work requires a job")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new work
func (w *Work) BeforeCreate(_ *gorm.DB) error {
	return w.Validate()
}
